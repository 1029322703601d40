package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jokebox/jokebox/pkg/types"
)

func twoStepJoke(category types.Category, setup, punchline string) *types.Joke {
	return &types.Joke{
		Category: category,
		Steps: []types.Step{
			{Role: types.RoleSetup, Position: 1, Content: setup},
			{Role: types.RolePunchline, Position: 2, Content: punchline},
		},
	}
}

func TestNewSeededMirrorsSampleSet(t *testing.T) {
	store := NewSeeded()

	jokes, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, jokes, 8)

	byCategory := map[types.Category]int{}
	for _, joke := range jokes {
		byCategory[joke.Category]++
		assert.NotEmpty(t, joke.JokeID)
		require.Len(t, joke.Steps, 2)
		assert.Equal(t, types.RoleSetup, joke.Steps[0].Role)
		assert.Equal(t, types.RolePunchline, joke.Steps[1].Role)
	}
	assert.Equal(t, map[types.Category]int{
		types.CategoryScience:     1,
		types.CategoryGeneral:     2,
		types.CategoryFood:        1,
		types.CategoryProgramming: 3,
		types.CategoryTech:        1,
	}, byCategory)
}

func TestAddThenGetByID(t *testing.T) {
	store := New()

	joke := twoStepJoke(types.CategoryScience, "setup", "punchline")
	require.NoError(t, store.Add(joke))
	assert.NotEmpty(t, joke.JokeID)

	got, err := store.GetByID(joke.JokeID)
	require.NoError(t, err)
	assert.Equal(t, joke.JokeID, got.JokeID)
	assert.Equal(t, types.CategoryScience, got.Category)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, joke.JokeID, got.Steps[0].JokeID)
}

func TestAddDuplicateID(t *testing.T) {
	store := New()

	first := twoStepJoke(types.CategoryTech, "first", "one")
	first.JokeID = "joke-dup"
	require.NoError(t, store.Add(first))

	second := twoStepJoke(types.CategoryFood, "second", "two")
	second.JokeID = "joke-dup"
	assert.ErrorIs(t, store.Add(second), types.ErrDuplicateID)

	got, err := store.GetByID("joke-dup")
	require.NoError(t, err)
	assert.Equal(t, types.CategoryTech, got.Category)
}

func TestAddRejectsInvalidJoke(t *testing.T) {
	store := New()

	bad := &types.Joke{Category: "dad-jokes"}
	assert.ErrorIs(t, store.Add(bad), types.ErrInvalidCategory)
}

func TestReturnedJokesAreCopies(t *testing.T) {
	store := NewSeeded()

	jokes, err := store.GetAll()
	require.NoError(t, err)

	// Mutating a returned joke must not leak into the store.
	jokes[0].Category = types.CategoryTech
	jokes[0].Steps[0].Content = "tampered"

	got, err := store.GetByID(jokes[0].JokeID)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", got.Steps[0].Content)
}

func TestUpdateRating(t *testing.T) {
	store := NewSeeded()

	jokes, err := store.GetAll()
	require.NoError(t, err)
	id := jokes[0].JokeID

	require.NoError(t, store.UpdateRating(id, 4.5))

	got, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.5, *got.Rating)

	assert.ErrorIs(t, store.UpdateRating("no-such-joke", 3), types.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := NewSeeded()

	jokes, err := store.GetAll()
	require.NoError(t, err)
	id := jokes[0].JokeID

	require.NoError(t, store.Delete(id))

	_, err = store.GetByID(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, store.Delete(id), types.ErrNotFound)
}

func TestGetJokesFilters(t *testing.T) {
	store := NewSeeded()
	programming := types.CategoryProgramming
	tech := types.TypeTech
	food := types.CategoryFood

	t.Run("category and count", func(t *testing.T) {
		jokes, err := store.GetJokes(types.Filter{Category: &programming, Count: 2})
		require.NoError(t, err)
		assert.Len(t, jokes, 2)
		for _, joke := range jokes {
			assert.Equal(t, programming, joke.Category)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		jokes, err := store.GetJokes(types.Filter{Type: &tech, Count: 10})
		require.NoError(t, err)
		assert.Len(t, jokes, 4)
	})

	t.Run("conjunction can be empty", func(t *testing.T) {
		jokes, err := store.GetJokes(types.Filter{Category: &food, Type: &tech, Count: 10})
		require.NoError(t, err)
		assert.Empty(t, jokes)
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := store.GetJokes(types.Filter{Count: 0})
		assert.ErrorIs(t, err, types.ErrInvalidCount)
	})
}

func TestGetJokesSeededIsDeterministic(t *testing.T) {
	store := NewSeeded()
	seed := int64(42)

	draw := func() []string {
		t.Helper()
		jokes, err := store.GetJokes(types.Filter{Count: 4, Seed: &seed})
		require.NoError(t, err)
		ids := make([]string, len(jokes))
		for i, joke := range jokes {
			ids[i] = joke.JokeID
		}
		return ids
	}

	assert.Equal(t, draw(), draw())
}

func TestGetAllOrdering(t *testing.T) {
	store := NewSeeded()

	added := twoStepJoke(types.CategoryGeneral, "latest", "joke")
	require.NoError(t, store.Add(added))

	jokes, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, jokes, 9)
	for i := 1; i < len(jokes); i++ {
		assert.False(t, jokes[i].CreatedAt.Before(jokes[i-1].CreatedAt))
	}
	assert.Equal(t, added.JokeID, jokes[len(jokes)-1].JokeID)
}
