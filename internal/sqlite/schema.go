// Package sqlite implements the Store contract over a single-file embedded
// SQLite database. Schema is created on first use and a fixed sample set is
// seeded when the jokes table is empty.
package sqlite

// Schema DDL. Timestamps are stored as RFC3339 text in UTC. Step positions
// are unique per joke so retrieval order is never ambiguous.
const (
	createJokes = `CREATE TABLE IF NOT EXISTS jokes (
    joke_id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    rating REAL,
    created_at TEXT NOT NULL
);`

	createSteps = `CREATE TABLE IF NOT EXISTS steps (
    step_id TEXT PRIMARY KEY,
    joke_id TEXT NOT NULL,
    role TEXT NOT NULL,
    position INTEGER NOT NULL,
    content TEXT NOT NULL,
    FOREIGN KEY (joke_id) REFERENCES jokes(joke_id)
);`
)

// Index DDL for common queries.
const (
	idxJokesCategory  = `CREATE INDEX IF NOT EXISTS idx_jokes_category ON jokes(category);`
	idxJokesCreatedAt = `CREATE INDEX IF NOT EXISTS idx_jokes_created_at ON jokes(created_at);`
	idxStepsJoke      = `CREATE UNIQUE INDEX IF NOT EXISTS idx_steps_joke_position ON steps(joke_id, position);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createJokes,
	createSteps,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxJokesCategory,
	idxJokesCreatedAt,
	idxStepsJoke,
}
