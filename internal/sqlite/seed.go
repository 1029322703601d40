// This file seeds the sample joke set on first startup so the service is
// immediately usable without external data loading. Seeding is guarded by a
// row count and runs exactly once per database file.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jokebox/jokebox/pkg/types"
)

// sampleJoke describes one joke to seed on first startup.
type sampleJoke struct {
	category  types.Category
	setup     string
	punchline string
}

// sampleJokes is the fixed seed set inserted when the jokes table is empty.
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

// seedSampleJokes inserts the sample set if the jokes table is empty. All
// rows are written in a single transaction; creation timestamps are staggered
// backward from now so the seed order is preserved by created_at ordering and
// every seed row sorts before anything added afterward.
func seedSampleJokes(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM jokes").Scan(&count); err != nil {
		return fmt.Errorf("counting jokes: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, sj := range sampleJokes {
		jokeID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating seed joke ID: %w", err)
		}
		offset := time.Duration(i-len(sampleJokes)) * time.Millisecond
		createdAt := now.Add(offset).Format(timeLayout)

		_, err = tx.Exec(
			"INSERT INTO jokes (joke_id, category, rating, created_at) VALUES (?, ?, NULL, ?)",
			jokeID.String(), string(sj.category), createdAt,
		)
		if err != nil {
			return fmt.Errorf("seeding joke %d: %w", i+1, err)
		}

		steps := []struct {
			role     types.Role
			position int
			content  string
		}{
			{types.RoleSetup, 1, sj.setup},
			{types.RolePunchline, 2, sj.punchline},
		}
		for _, st := range steps {
			stepID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generating seed step ID: %w", err)
			}
			_, err = tx.Exec(
				"INSERT INTO steps (step_id, joke_id, role, position, content) VALUES (?, ?, ?, ?, ?)",
				stepID.String(), jokeID.String(), string(st.role), st.position, st.content,
			)
			if err != nil {
				return fmt.Errorf("seeding step %d of joke %d: %w", st.position, i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
