// Package memory implements the Store contract in process memory. It mirrors
// the SQLite store's semantics without persistence and serves deployments
// that have no writable filesystem, as well as handler tests.
package memory

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jokebox/jokebox/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store keeps jokes in a map guarded by a read-write mutex. Returned jokes
// are deep copies; callers never alias internal state.
type Store struct {
	mu    sync.RWMutex
	jokes map[string]*types.Joke
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{jokes: make(map[string]*types.Joke)}
}

// NewSeeded creates an in-memory store pre-loaded with the same fixed sample
// set the SQLite store seeds on first startup.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()
	for i, sj := range sampleJokes {
		// Staggered backward from now so seed rows keep their relative
		// order and sort before anything added afterward.
		joke := &types.Joke{
			Category:  sj.category,
			CreatedAt: now.Add(time.Duration(i-len(sampleJokes)) * time.Millisecond),
			Steps: []types.Step{
				{Role: types.RoleSetup, Position: 1, Content: sj.setup},
				{Role: types.RolePunchline, Position: 2, Content: sj.punchline},
			},
		}
		// Seed data is fixed and valid; Add cannot fail on an empty store.
		_ = s.Add(joke)
	}
	return s
}

// Add stores a joke, generating identity and creation timestamp when absent.
// A caller-supplied identity that already exists fails with ErrDuplicateID.
func (s *Store) Add(joke *types.Joke) error {
	if joke == nil {
		return types.ErrInvalidID
	}
	if err := joke.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if joke.JokeID == "" {
		for i := 0; i < types.MaxIDAttempts; i++ {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			if _, taken := s.jokes[id.String()]; !taken {
				joke.JokeID = id.String()
				break
			}
		}
		if joke.JokeID == "" {
			return types.ErrIDExhausted
		}
	} else if _, taken := s.jokes[joke.JokeID]; taken {
		return types.ErrDuplicateID
	}

	if joke.CreatedAt.IsZero() {
		joke.CreatedAt = time.Now().UTC()
	}
	for i := range joke.Steps {
		if joke.Steps[i].StepID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			joke.Steps[i].StepID = id.String()
		}
		joke.Steps[i].JokeID = joke.JokeID
	}

	s.jokes[joke.JokeID] = cloneJoke(joke)
	return nil
}

// GetByID returns a copy of the joke with the given identity, steps in
// ascending position order. Returns ErrNotFound when absent.
func (s *Store) GetByID(id string) (*types.Joke, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	joke, ok := s.jokes[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return cloneJoke(joke), nil
}

// GetJokes returns a randomly sampled window of jokes matching the filter.
// With a seed set, the same filter draws the same page every call.
func (s *Store) GetJokes(filter types.Filter) ([]*types.Joke, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	candidates := s.matching(filter)
	s.mu.RUnlock()

	if filter.Seed != nil {
		r := rand.New(rand.NewPCG(uint64(*filter.Seed), uint64(len(candidates))))
		r.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	} else {
		rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	if filter.Offset >= len(candidates) {
		return []*types.Joke{}, nil
	}
	end := filter.Offset + filter.Count
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[filter.Offset:end], nil
}

// GetAll returns every joke ordered by creation time ascending, identity
// breaking ties.
func (s *Store) GetAll() ([]*types.Joke, error) {
	s.mu.RLock()
	jokes := make([]*types.Joke, 0, len(s.jokes))
	for _, joke := range s.jokes {
		jokes = append(jokes, cloneJoke(joke))
	}
	s.mu.RUnlock()

	sort.Slice(jokes, func(i, j int) bool {
		if !jokes[i].CreatedAt.Equal(jokes[j].CreatedAt) {
			return jokes[i].CreatedAt.Before(jokes[j].CreatedAt)
		}
		return jokes[i].JokeID < jokes[j].JokeID
	})
	return jokes, nil
}

// UpdateRating sets the rating of an existing joke. The numeric range is the
// caller's contract. Returns ErrNotFound when the identity is absent.
func (s *Store) UpdateRating(id string, rating float64) error {
	if id == "" {
		return types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	joke, ok := s.jokes[id]
	if !ok {
		return types.ErrNotFound
	}
	r := rating
	joke.Rating = &r
	return nil
}

// Delete removes a joke and its steps. Returns ErrNotFound when absent.
func (s *Store) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jokes[id]; !ok {
		return types.ErrNotFound
	}
	delete(s.jokes, id)
	return nil
}

// Close is a no-op; the store holds no external resources.
func (s *Store) Close() error {
	return nil
}

// matching returns copies of the jokes matching the filter's conjunctive
// category and type conditions, in a stable creation-time base order.
func (s *Store) matching(filter types.Filter) []*types.Joke {
	cats := filter.CategorySet()
	allowed := map[types.Category]bool{}
	for _, c := range cats {
		allowed[c] = true
	}

	var out []*types.Joke
	for _, joke := range s.jokes {
		if cats != nil && !allowed[joke.Category] {
			continue
		}
		out = append(out, cloneJoke(joke))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].JokeID < out[j].JokeID
	})
	return out
}

// cloneJoke deep-copies a joke so callers cannot mutate stored state.
func cloneJoke(j *types.Joke) *types.Joke {
	out := *j
	if j.Rating != nil {
		r := *j.Rating
		out.Rating = &r
	}
	out.Steps = make([]types.Step, len(j.Steps))
	copy(out.Steps, j.Steps)
	return &out
}

// sampleJoke mirrors the SQLite seed set definition.
type sampleJoke struct {
	category  types.Category
	setup     string
	punchline string
}

var sampleJokes = []sampleJoke{
	{types.CategoryScience, "Why don't scientists trust atoms?", "Because they make up everything!"},
	{types.CategoryGeneral, "Why did the scarecrow win an award?", "He was outstanding in his field!"},
	{types.CategoryFood, "Why don't eggs tell jokes?", "They'd crack each other up!"},
	{types.CategoryGeneral, "What do you call a bear with no teeth?", "A gummy bear!"},
	{types.CategoryProgramming, "Why do programmers prefer dark mode?", "Because light attracts bugs!"},
	{types.CategoryProgramming, "Why do Java developers wear glasses?", "Because they don't C#!"},
	{types.CategoryProgramming, "What's a programmer's favorite hangout spot?", "The foo bar!"},
	{types.CategoryTech, "Why do programmers always mix up Halloween and Christmas?", "Because Oct 31 equals Dec 25!"},
}
