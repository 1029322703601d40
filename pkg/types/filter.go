package types

// Filter selects and windows the joke collection for GetJokes. Conditions are
// conjunctive: a category that is not a member of the type's mapped set
// legitimately yields an empty result.
//
// Sampling is uniform without replacement. With a nil Seed every call draws
// independently, so repeated calls with the same Offset are not guaranteed to
// return the same page; that is an intentional property of random discovery,
// not a defect. Supplying a Seed makes the ordering deterministic, which
// gives stable pagination across calls.
type Filter struct {
	Category *Category // restrict to one category
	Type     *JokeType // restrict to the type's category set
	Count    int       // maximum number of jokes returned
	Offset   int       // window start within the (randomly ordered) result
	Seed     *int64    // deterministic ordering when set
}

// Validate checks the window parameters.
func (f Filter) Validate() error {
	if f.Count < 1 {
		return ErrInvalidCount
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}

// CategorySet returns the conjunction of the category and type conditions as
// an explicit category list, or nil when the filter has no category
// condition at all.
func (f Filter) CategorySet() []Category {
	switch {
	case f.Category != nil && f.Type != nil:
		for _, c := range f.Type.Categories() {
			if c == *f.Category {
				return []Category{*f.Category}
			}
		}
		// Category outside the type's set: stricter than either alone.
		return []Category{}
	case f.Category != nil:
		return []Category{*f.Category}
	case f.Type != nil:
		return f.Type.Categories()
	default:
		return nil
	}
}
