package types

import "time"

// Category classifies a joke. The set is closed; unrecognized values are a
// client error, not a storage error.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryScience     Category = "science"
	CategoryProgramming Category = "programming"
	CategoryFood        Category = "food"
	CategoryTech        Category = "tech"
)

// validCategories is the set of recognized category values.
var validCategories = map[Category]bool{
	CategoryGeneral:     true,
	CategoryScience:     true,
	CategoryProgramming: true,
	CategoryFood:        true,
	CategoryTech:        true,
}

// ParseCategory converts a raw string to a Category.
// Returns ErrInvalidCategory for values outside the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !validCategories[c] {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Role tags a step with its structural function inside a joke.
type Role string

const (
	RoleSetup     Role = "setup"
	RolePunchline Role = "punchline"
	RoleBridge    Role = "bridge"
	RoleTopper    Role = "topper"
	RoleCallback  Role = "callback"
)

// validRoles is the set of recognized step roles.
var validRoles = map[Role]bool{
	RoleSetup:     true,
	RolePunchline: true,
	RoleBridge:    true,
	RoleTopper:    true,
	RoleCallback:  true,
}

// ParseRole converts a raw string to a Role.
// Returns ErrInvalidRole for values outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !validRoles[r] {
		return "", ErrInvalidRole
	}
	return r, nil
}

// JokeType is a coarse grouping over categories used by the filter engine.
// A type maps to a fixed set of categories; filtering by type restricts
// results to jokes whose category is a member of that set.
type JokeType string

const (
	TypeGeneral JokeType = "general"
	TypeTech    JokeType = "tech"
)

// typeCategories maps each type to its member categories.
var typeCategories = map[JokeType][]Category{
	TypeGeneral: {CategoryGeneral, CategoryScience, CategoryFood},
	TypeTech:    {CategoryProgramming, CategoryTech},
}

// ParseType converts a raw string to a JokeType.
// Returns ErrInvalidType for values outside the closed set.
func ParseType(s string) (JokeType, error) {
	t := JokeType(s)
	if _, ok := typeCategories[t]; !ok {
		return "", ErrInvalidType
	}
	return t, nil
}

// Categories returns a copy of the category set this type maps to.
func (t JokeType) Categories() []Category {
	cats := typeCategories[t]
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// Rating bounds. A rating, when present, lies in this inclusive range.
const (
	RatingMin = 0.0
	RatingMax = 5.0
)

// ValidRating reports whether r lies inside the inclusive rating range.
func ValidRating(r float64) bool {
	return r >= RatingMin && r <= RatingMax
}

// Step is one ordered fragment of a joke's content. A step cannot exist
// without a parent joke; JokeID is a back-reference only, set by the store.
type Step struct {
	StepID   string `json:"id"`
	JokeID   string `json:"joke_id"`
	Role     Role   `json:"role"`
	Position int    `json:"position"` // presentation order inside the joke, starts at 1
	Content  string `json:"content"`
}

// Validate checks that the step is well-formed: recognized role, strictly
// positive position, and non-empty content.
func (s Step) Validate() error {
	if !validRoles[s.Role] {
		return ErrInvalidRole
	}
	if s.Position < 1 {
		return ErrInvalidPosition
	}
	if s.Content == "" {
		return ErrInvalidContent
	}
	return nil
}

// Joke is the core persisted record: a unique identity, a category, an
// optional rating, a creation timestamp, and an ordered sequence of steps.
// The store generates JokeID and CreatedAt at insertion time when absent.
type Joke struct {
	JokeID    string    `json:"id"`
	Category  Category  `json:"category"`
	Rating    *float64  `json:"rating,omitempty"` // nil means unrated
	CreatedAt time.Time `json:"created_at"`
	Steps     []Step    `json:"steps"`
}

// Validate checks category membership, the rating range, that at least one
// step is present, and every step. Step positions must be unique within the
// joke; position ties are rejected rather than left as undefined retrieval
// order.
func (j *Joke) Validate() error {
	if !validCategories[j.Category] {
		return ErrInvalidCategory
	}
	if j.Rating != nil && !ValidRating(*j.Rating) {
		return ErrInvalidRating
	}
	if len(j.Steps) == 0 {
		return ErrNoSteps
	}
	seen := make(map[int]bool, len(j.Steps))
	for _, s := range j.Steps {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Position] {
			return ErrDuplicatePosition
		}
		seen[s.Position] = true
	}
	return nil
}
