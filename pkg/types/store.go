package types

import "errors"

// Store provides durable CRUD over jokes and their steps. Implementations:
// internal/sqlite (single-file embedded database) and internal/memory
// (non-persistent facade for deployments without a writable filesystem).
type Store interface {
	// Add persists a joke together with all of its steps atomically.
	// A missing identity is generated; a missing creation timestamp is set
	// to the current time. Returns ErrDuplicateID when a caller-supplied
	// identity already exists, ErrIDExhausted when generated identities
	// keep colliding past the retry bound.
	Add(joke *Joke) error

	// GetByID retrieves a joke by exact identity, steps attached in
	// ascending position order. Returns ErrNotFound when absent.
	GetByID(id string) (*Joke, error)

	// GetJokes returns a randomly sampled window of jokes matching the
	// filter. Fewer matches than Count returns all matches. Steps are
	// attached in ascending position order.
	GetJokes(filter Filter) ([]*Joke, error)

	// GetAll returns every joke ordered by creation time ascending, steps
	// attached. An empty store yields an empty slice, not an error.
	GetAll() ([]*Joke, error)

	// UpdateRating sets the rating of an existing joke. The numeric range
	// is the caller's contract; the store does not re-validate it.
	// Returns ErrNotFound when no row was updated.
	UpdateRating(id string, rating float64) error

	// Delete removes a joke and its steps in one transaction.
	// Returns ErrNotFound when no row was removed.
	Delete(id string) error

	// Close releases the underlying storage resources.
	Close() error
}

// Identity generation retries this many fresh IDs on collision before the
// store gives up with ErrIDExhausted. A probabilistic safety net for the
// vanishingly small chance of a generated-identity collision, not a
// correctness mechanism; the loop stays bounded.
const MaxIDAttempts = 10

// Store operation errors.
var (
	ErrNotFound    = errors.New("joke not found")
	ErrInvalidID   = errors.New("invalid joke ID")
	ErrDuplicateID = errors.New("joke ID already exists")
	ErrIDExhausted = errors.New("could not generate a unique joke ID")
)

// Record validation errors.
var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidType       = errors.New("invalid joke type")
	ErrInvalidRole       = errors.New("invalid step role")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrInvalidPosition   = errors.New("step position must be positive")
	ErrDuplicatePosition = errors.New("step positions must be unique")
	ErrInvalidContent    = errors.New("step content must not be empty")
	ErrNoSteps           = errors.New("joke must have at least one step")
)

// Filter validation errors.
var (
	ErrInvalidCount  = errors.New("count must be positive")
	ErrInvalidOffset = errors.New("offset must be 0 or greater")
)
