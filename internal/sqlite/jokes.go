// This file implements the CRUD operations of the Store contract: add with
// bounded identity-collision retry, lookup, rating update, and cascading
// delete. Every mutation that touches both the jokes and steps tables runs in
// a single transaction.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jokebox/jokebox/pkg/types"
)

// Add persists a joke and all of its steps atomically. A missing identity is
// generated; on collision a fresh identity is retried up to
// types.MaxIDAttempts times. A caller-supplied identity that collides fails
// fast with ErrDuplicateID instead of being silently regenerated.
//
// The caller's record is written back (identity, creation timestamp, step
// identities) only after the transaction commits; a failed Add leaves the
// input exactly as it was given.
func (s *Store) Add(joke *types.Joke) error {
	if joke == nil {
		return types.ErrInvalidID
	}
	if err := joke.Validate(); err != nil {
		return err
	}

	createdAt := joke.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	supplied := joke.JokeID != ""
	attempts := types.MaxIDAttempts
	if supplied {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		jokeID := joke.JokeID
		if !supplied {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generating joke ID: %w", err)
			}
			jokeID = id.String()
		}

		stepIDs, err := s.insertJoke(jokeID, createdAt, joke)
		if err == nil {
			joke.JokeID = jokeID
			joke.CreatedAt = createdAt
			for i := range joke.Steps {
				joke.Steps[i].StepID = stepIDs[i]
				joke.Steps[i].JokeID = jokeID
			}
			return nil
		}
		if errors.Is(err, types.ErrDuplicateID) && !supplied {
			continue
		}
		return err
	}

	return types.ErrIDExhausted
}

// insertJoke writes the joke row and its step rows in one transaction without
// touching the caller's record, and returns the step identities it persisted.
// Returns ErrDuplicateID when the identity already exists.
func (s *Store) insertJoke(jokeID string, createdAt time.Time, joke *types.Joke) ([]string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM jokes WHERE joke_id = ?", jokeID).Scan(&exists)
	if err == nil {
		return nil, types.ErrDuplicateID
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking joke existence: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO jokes (joke_id, category, rating, created_at) VALUES (?, ?, ?, ?)",
		jokeID, string(joke.Category), ratingValue(joke.Rating), createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting joke: %w", err)
	}

	stepIDs := make([]string, len(joke.Steps))
	for i := range joke.Steps {
		step := joke.Steps[i]
		stepID := step.StepID
		if stepID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("generating step ID: %w", err)
			}
			stepID = id.String()
		}
		stepIDs[i] = stepID

		_, err = tx.Exec(
			"INSERT INTO steps (step_id, joke_id, role, position, content) VALUES (?, ?, ?, ?, ?)",
			stepID, jokeID, string(step.Role), step.Position, step.Content,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting step %d: %w", step.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing joke: %w", err)
	}
	return stepIDs, nil
}

// GetByID retrieves a joke by exact identity with its steps attached in
// ascending position order. Returns ErrNotFound when absent.
func (s *Store) GetByID(id string) (*types.Joke, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := s.db.QueryRow(
		"SELECT joke_id, category, rating, created_at FROM jokes WHERE joke_id = ?", id,
	)
	joke, err := hydrateJoke(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting joke %s: %w", id, err)
	}

	if err := s.attachSteps(joke); err != nil {
		return nil, err
	}
	return joke, nil
}

// GetAll returns every joke ordered by creation time ascending, steps
// attached. Identity breaks creation-time ties so the order is total.
func (s *Store) GetAll() ([]*types.Joke, error) {
	rows, err := s.db.Query(
		"SELECT joke_id, category, rating, created_at FROM jokes ORDER BY created_at ASC, joke_id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying all jokes: %w", err)
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

// UpdateRating sets the rating of an existing joke. Succeeds only when the
// update affects exactly one row; absence is ErrNotFound, not a fault. The
// numeric range is validated at the service boundary, not here.
func (s *Store) UpdateRating(id string, rating float64) error {
	if id == "" {
		return types.ErrInvalidID
	}

	res, err := s.db.Exec("UPDATE jokes SET rating = ? WHERE joke_id = ?", rating, id)
	if err != nil {
		return fmt.Errorf("updating rating for joke %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting updated rows: %w", err)
	}
	if n != 1 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes a joke and its steps in one transaction. Steps are removed
// first so a joke delete never leaves orphaned step rows. Succeeds only when
// exactly one joke row was removed.
func (s *Store) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM steps WHERE joke_id = ?", id); err != nil {
		return fmt.Errorf("deleting steps for joke %s: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM jokes WHERE joke_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting joke %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting deleted rows: %w", err)
	}
	if n != 1 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing joke deletion: %w", err)
	}
	return nil
}

// attachSteps loads the joke's steps ordered by position ascending.
func (s *Store) attachSteps(joke *types.Joke) error {
	rows, err := s.db.Query(
		"SELECT step_id, joke_id, role, position, content FROM steps WHERE joke_id = ? ORDER BY position ASC",
		joke.JokeID,
	)
	if err != nil {
		return fmt.Errorf("querying steps for joke %s: %w", joke.JokeID, err)
	}
	defer rows.Close()

	var steps []types.Step
	for rows.Next() {
		var step types.Step
		var role string
		if err := rows.Scan(&step.StepID, &step.JokeID, &role, &step.Position, &step.Content); err != nil {
			return fmt.Errorf("scanning step: %w", err)
		}
		step.Role = types.Role(role)
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating steps: %w", err)
	}

	joke.Steps = steps
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateJoke scans one jokes row into a *types.Joke (without steps).
func hydrateJoke(row rowScanner) (*types.Joke, error) {
	var (
		joke      types.Joke
		category  string
		rating    sql.NullFloat64
		createdAt string
	)
	if err := row.Scan(&joke.JokeID, &category, &rating, &createdAt); err != nil {
		return nil, err
	}

	joke.Category = types.Category(category)
	if rating.Valid {
		r := rating.Float64
		joke.Rating = &r
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	joke.CreatedAt = ts

	return &joke, nil
}

// collectJokes drains a jokes result set into a slice. Returns an empty
// slice, not nil, when no rows match.
func collectJokes(rows *sql.Rows) ([]*types.Joke, error) {
	jokes := []*types.Joke{}
	for rows.Next() {
		joke, err := hydrateJoke(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating joke: %w", err)
		}
		jokes = append(jokes, joke)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jokes: %w", err)
	}
	return jokes, nil
}

// ratingValue converts an optional rating to its SQL value.
func ratingValue(r *float64) any {
	if r == nil {
		return nil
	}
	return *r
}
