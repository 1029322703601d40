package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jokebox/jokebox/internal/memory"
	"github.com/jokebox/jokebox/pkg/types"
)

// newTestServer returns a server over a freshly seeded in-memory store.
func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	store := memory.NewSeeded()
	return New(":0", store), store
}

// do runs one request against the server's handler and returns the recorder.
func do(t *testing.T, srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorder body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestRootEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "jokebox API is running", body["message"])
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestEchoEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("echoes the payload", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/echo", `{"hello":"world"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		decode(t, rec, &body)
		assert.Equal(t, "echoed", body["status"])
		assert.Equal(t, map[string]any{"hello": "world"}, body["received"])
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/echo", `{"hello":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListJokes(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("no limit returns everything", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body jokesResponse
		decode(t, rec, &body)
		assert.Equal(t, 8, body.Count)
		assert.Len(t, body.Jokes, 8)
	})

	t.Run("category filter", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes?category=programming", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body jokesResponse
		decode(t, rec, &body)
		assert.Equal(t, 3, body.Count)
		for _, joke := range body.Jokes {
			assert.Equal(t, types.CategoryProgramming, joke.Category)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes?type=tech", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body jokesResponse
		decode(t, rec, &body)
		assert.Equal(t, 4, body.Count)
	})

	t.Run("limit samples", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes?limit=3", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body jokesResponse
		decode(t, rec, &body)
		assert.Equal(t, 3, body.Count)
	})

	t.Run("seeded limit is stable", func(t *testing.T) {
		ids := func() []string {
			rec := do(t, srv, http.MethodGet, "/jokes?limit=5&seed=42", "")
			require.Equal(t, http.StatusOK, rec.Code)
			var body jokesResponse
			decode(t, rec, &body)
			out := make([]string, len(body.Jokes))
			for i, joke := range body.Jokes {
				out[i] = joke.JokeID
			}
			return out
		}
		assert.Equal(t, ids(), ids())
	})

	t.Run("offset without limit shifts the window", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes?offset=5", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body jokesResponse
		decode(t, rec, &body)
		assert.Equal(t, 3, body.Count)
	})

	tests := []struct {
		name   string
		target string
	}{
		{name: "invalid category", target: "/jokes?category=dad-jokes"},
		{name: "invalid type", target: "/jokes?type=science"},
		{name: "limit zero", target: "/jokes?limit=0"},
		{name: "limit too large", target: "/jokes?limit=51"},
		{name: "limit not a number", target: "/jokes?limit=abc"},
		{name: "negative offset", target: "/jokes?offset=-1"},
		{name: "invalid seed", target: "/jokes?limit=3&seed=abc"},
		{name: "seed without limit", target: "/jokes?seed=42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetJokeByID(t *testing.T) {
	srv, store := newTestServer(t)

	jokes, err := store.GetAll()
	require.NoError(t, err)
	id := jokes[0].JokeID

	t.Run("found", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes/"+id, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var joke types.Joke
		decode(t, rec, &joke)
		assert.Equal(t, id, joke.JokeID)
		require.Len(t, joke.Steps, 2)
		assert.Equal(t, 1, joke.Steps[0].Position)
	})

	t.Run("missing", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/jokes/no-such-joke", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateJoke(t *testing.T) {
	srv, store := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		body := `{
			"category": "science",
			"steps": [
				{"role": "setup", "content": "Why don't scientists trust atoms?"},
				{"role": "punchline", "content": "Because they make up everything!"}
			]
		}`
		rec := do(t, srv, http.MethodPost, "/jokes", body)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var joke types.Joke
		decode(t, rec, &joke)
		assert.NotEmpty(t, joke.JokeID)
		require.Len(t, joke.Steps, 2)
		assert.Equal(t, 1, joke.Steps[0].Position, "positions assigned in request order")
		assert.Equal(t, 2, joke.Steps[1].Position)

		stored, err := store.GetByID(joke.JokeID)
		require.NoError(t, err)
		assert.Equal(t, types.CategoryScience, stored.Category)
	})

	t.Run("no steps", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/jokes", `{"category":"science","steps":[]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate id", func(t *testing.T) {
		body := `{
			"id": "joke-dup",
			"category": "tech",
			"steps": [{"role": "setup", "content": "hi"}]
		}`
		rec := do(t, srv, http.MethodPost, "/jokes", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = do(t, srv, http.MethodPost, "/jokes", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "invalid category",
			body: `{"category":"dad-jokes","steps":[{"role":"setup","content":"x"}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			body: `{"category":"tech","steps":[{"role":"finale","content":"x"}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid rating",
			body: `{"category":"tech","rating":9,"steps":[{"role":"setup","content":"x"}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed json",
			body: `{"category":`,
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/jokes", tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRateJoke(t *testing.T) {
	srv, store := newTestServer(t)

	jokes, err := store.GetAll()
	require.NoError(t, err)
	id := jokes[0].JokeID

	t.Run("rated", func(t *testing.T) {
		rec := do(t, srv, http.MethodPut, "/jokes/"+id+"/rating", `{"rating":4.5}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		got, err := store.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 4.5, *got.Rating)
	})

	t.Run("out of range never reaches the store", func(t *testing.T) {
		rec := do(t, srv, http.MethodPut, "/jokes/"+id+"/rating", `{"rating":6}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		got, err := store.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 4.5, *got.Rating, "previous rating untouched")
	})

	t.Run("missing rating", func(t *testing.T) {
		rec := do(t, srv, http.MethodPut, "/jokes/"+id+"/rating", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, srv, http.MethodPut, "/jokes/no-such-joke/rating", `{"rating":3}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteJoke(t *testing.T) {
	srv, store := newTestServer(t)

	jokes, err := store.GetAll()
	require.NoError(t, err)
	id := jokes[0].JokeID

	rec := do(t, srv, http.MethodDelete, "/jokes/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body messageResponse
	decode(t, rec, &body)
	assert.Equal(t, id, body.JokeID)

	rec = do(t, srv, http.MethodGet, "/jokes/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/jokes/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorBodyShape(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/jokes/absent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, "joke not found", body.Error)
}
