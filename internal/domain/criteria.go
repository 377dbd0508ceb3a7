package domain

import "fmt"

// Default search bounds; Limit is always clamped to [1, 100] by Validate.
const (
	DefaultMinOverall  = 75
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// SearchCriteria is a filter specification for player searches.
// All set fields are combined as AND filters; nil pointers and empty
// strings impose no constraint.
type SearchCriteria struct {
	Position      *Position
	MinOverall    int // defaults to 75, see NewSearchCriteria
	MaxOverall    *int
	MinPotential  *int
	MaxAge        *int
	MinAge        *int
	MaxPrice      *int64
	MinPrice      *int64
	Nationality   string
	League        string
	PreferredFoot string
	Limit         int // defaults to 20
}

// NewSearchCriteria returns a criteria value with the default rating
// floor and result limit applied
func NewSearchCriteria() SearchCriteria {
	return SearchCriteria{
		MinOverall: DefaultMinOverall,
		Limit:      DefaultSearchLimit,
	}
}

// Validate checks criteria invariants
func (c SearchCriteria) Validate() error {
	if c.MinOverall < 40 || c.MinOverall > 99 {
		return fmt.Errorf("min overall must be between 40 and 99, got %d", c.MinOverall)
	}
	if c.MaxOverall != nil && *c.MaxOverall < c.MinOverall {
		return fmt.Errorf("max overall (%d) must be greater than or equal to min overall (%d)",
			*c.MaxOverall, c.MinOverall)
	}
	if c.MinAge != nil && c.MaxAge != nil && *c.MaxAge < *c.MinAge {
		return fmt.Errorf("max age (%d) must be greater than or equal to min age (%d)", *c.MaxAge, *c.MinAge)
	}
	if c.Limit < 1 || c.Limit > MaxSearchLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxSearchLimit, c.Limit)
	}

	return nil
}
