// This file implements the filtered, randomly sampled GetJokes query.
// Randomization happens at the storage layer (ORDER BY RANDOM) rather than as
// a pre-shuffle of an in-memory list, so behavior stays correct as the
// collection grows. A caller-supplied seed switches to a deterministic
// ordering for reproducible paging.
package sqlite

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/jokebox/jokebox/pkg/types"
)

// GetJokes returns a window of at most filter.Count jokes matching the
// filter's conjunctive conditions, sampled uniformly without replacement.
// Steps are attached in ascending position order.
func (s *Store) GetJokes(filter types.Filter) ([]*types.Joke, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	where, args := filterClause(filter)

	if filter.Seed != nil {
		return s.getJokesSeeded(filter, where, args)
	}

	query := "SELECT joke_id, category, rating, created_at FROM jokes" + where +
		" ORDER BY RANDOM() LIMIT ?"
	args = append(args, filter.Count)
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jokes: %w", err)
	}
	defer rows.Close()

	jokes, err := collectJokes(rows)
	if err != nil {
		return nil, err
	}

	for _, joke := range jokes {
		if err := s.attachSteps(joke); err != nil {
			return nil, err
		}
	}
	return jokes, nil
}

// getJokesSeeded draws the same page for the same filter and seed: the
// matching identities are loaded in a stable base order, shuffled with a
// seeded generator, and the offset/count window of the result is hydrated.
// Only identities travel through memory, not full rows.
func (s *Store) getJokesSeeded(filter types.Filter, where string, args []any) ([]*types.Joke, error) {
	rows, err := s.db.Query(
		"SELECT joke_id FROM jokes"+where+" ORDER BY created_at ASC, joke_id ASC", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying joke IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning joke ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating joke IDs: %w", err)
	}

	window := sampleWindow(ids, filter)

	jokes := make([]*types.Joke, 0, len(window))
	for _, id := range window {
		joke, err := s.GetByID(id)
		if err != nil {
			return nil, err
		}
		jokes = append(jokes, joke)
	}
	return jokes, nil
}

// sampleWindow shuffles ids deterministically from the filter's seed and
// returns the offset/count window, clamped to the available matches.
func sampleWindow(ids []string, filter types.Filter) []string {
	r := rand.New(rand.NewPCG(uint64(*filter.Seed), uint64(len(ids))))
	r.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	if filter.Offset >= len(ids) {
		return nil
	}
	end := filter.Offset + filter.Count
	if end > len(ids) {
		end = len(ids)
	}
	return ids[filter.Offset:end]
}

// filterClause builds the conjunctive WHERE clause for the filter's category
// and type conditions. A category outside the type's mapped set produces a
// clause that matches nothing.
func filterClause(filter types.Filter) (string, []any) {
	cats := filter.CategorySet()
	if cats == nil {
		return "", nil
	}
	if len(cats) == 0 {
		// Legitimately empty conjunction.
		return " WHERE 1 = 0", nil
	}

	// Stable placeholder order keeps the generated SQL deterministic.
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	sort.Strings(names)

	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, n := range names {
		placeholders[i] = "?"
		args[i] = n
	}
	return " WHERE category IN (" + strings.Join(placeholders, ", ") + ")", args
}
