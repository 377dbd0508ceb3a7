// Package domain provides core domain models and types.
package domain

import (
	"fmt"
	"time"
)

// Contract status buckets derived from the months remaining until expiry.
const (
	ContractUnknown      = "Unknown"
	ContractExpiringSoon = "Expiring Soon"
	ContractLastYear     = "Last Year"
	ContractUnderTerm    = "Under Contract"
)

// Attributes holds the six skill ratings of a player, each in [0, 99]
type Attributes struct {
	Pace      int `json:"pace" msgpack:"pace"`
	Shooting  int `json:"shooting" msgpack:"shooting"`
	Passing   int `json:"passing" msgpack:"passing"`
	Dribbling int `json:"dribbling" msgpack:"dribbling"`
	Defending int `json:"defending" msgpack:"defending"`
	Physical  int `json:"physical" msgpack:"physical"`
}

// NewAttributes creates an attribute profile, rejecting out-of-range scores
func NewAttributes(pace, shooting, passing, dribbling, defending, physical int) (Attributes, error) {
	a := Attributes{
		Pace:      pace,
		Shooting:  shooting,
		Passing:   passing,
		Dribbling: dribbling,
		Defending: defending,
		Physical:  physical,
	}
	if err := a.Validate(); err != nil {
		return Attributes{}, err
	}
	return a, nil
}

// Validate checks that every score is within [0, 99]
func (a Attributes) Validate() error {
	for _, s := range []struct {
		name  string
		value int
	}{
		{"pace", a.Pace},
		{"shooting", a.Shooting},
		{"passing", a.Passing},
		{"dribbling", a.Dribbling},
		{"defending", a.Defending},
		{"physical", a.Physical},
	} {
		if s.value < 0 || s.value > 99 {
			return fmt.Errorf("attribute %s must be between 0 and 99, got %d", s.name, s.value)
		}
	}
	return nil
}

// Player is a single catalog record for a football player
type Player struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Nationality   string `json:"nationality"`
	Club          string `json:"club,omitempty"`   // empty = free agent
	League        string `json:"league,omitempty"` // empty = unknown
	Position      Position
	PreferredFoot string `json:"preferred_foot"`

	// Ratings
	OverallRating int `json:"overall_rating"`
	Potential     int `json:"potential"`

	// Market data, integer euros
	MarketValue   int64 `json:"market_value"`
	Wage          int64 `json:"wage,omitempty"`
	ReleaseClause int64 `json:"release_clause,omitempty"`

	Attributes Attributes `json:"attributes"`

	ContractExpiry *time.Time `json:"contract_expiry,omitempty"`
	LastUpdated    time.Time  `json:"last_updated"`
}

// Validate enforces the record invariants. A player failing validation
// must never be persisted.
func (p *Player) Validate() error {
	if p.Age < 16 || p.Age > 45 {
		return fmt.Errorf("age must be between 16 and 45, got %d", p.Age)
	}
	if p.OverallRating < 40 || p.OverallRating > 99 {
		return fmt.Errorf("overall rating must be between 40 and 99, got %d", p.OverallRating)
	}
	if p.Potential < 40 || p.Potential > 99 {
		return fmt.Errorf("potential must be between 40 and 99, got %d", p.Potential)
	}
	if p.Potential < p.OverallRating {
		return fmt.Errorf("potential (%d) must be greater than or equal to overall rating (%d)",
			p.Potential, p.OverallRating)
	}
	if p.MarketValue < 0 {
		return fmt.Errorf("market value must not be negative, got %d", p.MarketValue)
	}
	if p.Wage < 0 {
		return fmt.Errorf("wage must not be negative, got %d", p.Wage)
	}
	if p.ReleaseClause < 0 {
		return fmt.Errorf("release clause must not be negative, got %d", p.ReleaseClause)
	}
	if _, ok := ParsePosition(string(p.Position)); !ok {
		return fmt.Errorf("unknown position code %q", p.Position)
	}

	return p.Attributes.Validate()
}

// GrowthPotential returns the headroom between potential and current rating
func (p *Player) GrowthPotential() int {
	return p.Potential - p.OverallRating
}

// IsYoungTalent reports whether the player is under 23 with potential of 80+
func (p *Player) IsYoungTalent() bool {
	return p.Age < 23 && p.Potential >= 80
}

// ValuePerRating returns market value per overall rating point
func (p *Player) ValuePerRating() float64 {
	if p.OverallRating == 0 {
		return 0
	}
	return float64(p.MarketValue) / float64(p.OverallRating)
}

// ContractStatus buckets the time remaining until contract expiry
func (p *Player) ContractStatus() string {
	return p.ContractStatusAt(time.Now())
}

// ContractStatusAt is ContractStatus evaluated against an explicit reference time
func (p *Player) ContractStatusAt(now time.Time) string {
	if p.ContractExpiry == nil {
		return ContractUnknown
	}

	monthsLeft := p.ContractExpiry.Sub(now).Hours() / 24 / 30

	switch {
	case monthsLeft <= 6:
		return ContractExpiringSoon
	case monthsLeft <= 12:
		return ContractLastYear
	default:
		return ContractUnderTerm
	}
}
