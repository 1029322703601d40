package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jokebox/jokebox/pkg/logger"
	"github.com/jokebox/jokebox/pkg/types"
)

// jokesResponse is the JSON body for collection endpoints.
type jokesResponse struct {
	Jokes []*types.Joke `json:"jokes"`
	Count int           `json:"count"`
}

// stepRequest is one step in a create request. Position is optional; steps
// without positions are numbered in the order they appear.
type stepRequest struct {
	Role     string `json:"role"`
	Position int    `json:"position,omitempty"`
	Content  string `json:"content"`
}

// createJokeRequest is the JSON body for POST /jokes.
type createJokeRequest struct {
	ID       string        `json:"id,omitempty"`
	Category string        `json:"category"`
	Rating   *float64      `json:"rating,omitempty"`
	Steps    []stepRequest `json:"steps"`
}

// ratingRequest is the JSON body for PUT /jokes/{id}/rating.
type ratingRequest struct {
	Rating *float64 `json:"rating"`
}

// messageResponse is the JSON confirmation body for mutations.
type messageResponse struct {
	Message string   `json:"message"`
	JokeID  string   `json:"joke_id,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "jokebox API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"received": body, "status": "echoed"})
}

// handleListJokes serves GET /jokes. Without a limit it returns every match
// in creation order; with a limit it returns a random sample. A seed query
// parameter makes the sample deterministic for stable paging.
func (s *Server) handleListJokes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var category *types.Category
	if raw := q.Get("category"); raw != "" {
		c, err := types.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category: "+raw)
			return
		}
		category = &c
	}

	var jokeType *types.JokeType
	if raw := q.Get("type"); raw != "" {
		t, err := types.ParseType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid type: "+raw)
			return
		}
		jokeType = &t
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "offset must be 0 or greater")
			return
		}
		offset = n
	}

	var seed *int64
	if raw := q.Get("seed"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		seed = &n
	}

	rawLimit := q.Get("limit")
	if rawLimit == "" {
		// No limit: every match, creation order, offset applied. A seed
		// only parameterizes sampling, so it is rejected here rather than
		// silently ignored.
		if seed != nil {
			writeError(w, http.StatusBadRequest, "seed requires a limit")
			return
		}
		jokes, err := s.listAll(category, jokeType, offset)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, jokesResponse{Jokes: jokes, Count: len(jokes)})
		return
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < minListLimit || limit > maxListLimit {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
		return
	}

	jokes, err := s.store.GetJokes(types.Filter{
		Category: category,
		Type:     jokeType,
		Count:    limit,
		Offset:   offset,
		Seed:     seed,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jokesResponse{Jokes: jokes, Count: len(jokes)})
}

// listAll fetches every joke and applies the category/type conjunction and
// the offset at the boundary.
func (s *Server) listAll(category *types.Category, jokeType *types.JokeType, offset int) ([]*types.Joke, error) {
	all, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}

	cats := types.Filter{Category: category, Type: jokeType}.CategorySet()
	jokes := all
	if cats != nil {
		allowed := map[types.Category]bool{}
		for _, c := range cats {
			allowed[c] = true
		}
		jokes = []*types.Joke{}
		for _, j := range all {
			if allowed[j.Category] {
				jokes = append(jokes, j)
			}
		}
	}

	if offset >= len(jokes) {
		return []*types.Joke{}, nil
	}
	return jokes[offset:], nil
}

func (s *Server) handleGetJoke(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	joke, err := s.store.GetByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joke)
}

func (s *Server) handleCreateJoke(w http.ResponseWriter, r *http.Request) {
	var req createJokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if len(req.Steps) == 0 {
		writeError(w, http.StatusUnprocessableEntity, types.ErrNoSteps.Error())
		return
	}

	category, err := types.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category: "+req.Category)
		return
	}
	if req.Rating != nil && !types.ValidRating(*req.Rating) {
		writeError(w, http.StatusBadRequest, types.ErrInvalidRating.Error())
		return
	}

	joke := &types.Joke{
		JokeID:   req.ID,
		Category: category,
		Rating:   req.Rating,
	}
	for i, sr := range req.Steps {
		role, err := types.ParseRole(sr.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid role: "+sr.Role)
			return
		}
		position := sr.Position
		if position == 0 {
			position = i + 1
		}
		joke.Steps = append(joke.Steps, types.Step{
			Role:     role,
			Position: position,
			Content:  sr.Content,
		})
	}

	if err := s.store.Add(joke); err != nil {
		writeStoreError(w, err)
		return
	}

	logger.Info("joke created",
		logger.String("joke_id", joke.JokeID),
		logger.String("category", string(joke.Category)),
		logger.Int("steps", len(joke.Steps)),
	)
	writeJSON(w, http.StatusCreated, joke)
}

func (s *Server) handleRateJoke(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required")
		return
	}
	// Range contract is enforced here, not in the store.
	if !types.ValidRating(*req.Rating) {
		writeError(w, http.StatusBadRequest, types.ErrInvalidRating.Error())
		return
	}

	if err := s.store.UpdateRating(id, *req.Rating); err != nil {
		writeStoreError(w, err)
		return
	}

	logger.Info("joke rated", logger.String("joke_id", id))
	writeJSON(w, http.StatusOK, messageResponse{
		Message: "joke rated successfully",
		JokeID:  id,
		Rating:  req.Rating,
	})
}

func (s *Server) handleDeleteJoke(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	logger.Info("joke deleted", logger.String("joke_id", id))
	writeJSON(w, http.StatusOK, messageResponse{
		Message: "joke deleted successfully",
		JokeID:  id,
	})
}
