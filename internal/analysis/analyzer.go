// Package analysis derives market and scouting insights from the player
// store. All operations are stateless reads; the store is never mutated.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldside/squadscout/internal/domain"
)

// Expected user-input conditions, surfaced as error values rather than
// failures of the analyzer itself.
var (
	ErrNotEnoughPlayers = errors.New("need at least 2 resolvable players to compare")
	ErrEmptySquad       = errors.New("no valid players in current squad")
)

// Candidate pool sizes fetched before post-processing.
const (
	valuePoolSize  = 50
	marketPoolSize = 100
)

// PlayerSource is the read-only slice of the store the analyzer needs
type PlayerSource interface {
	Search(c domain.SearchCriteria) ([]domain.Player, error)
	GetByID(id int64) (*domain.Player, error)
}

// Analyzer computes derived insights over a player source
type Analyzer struct {
	store PlayerSource
	log   zerolog.Logger
	now   func() time.Time
}

// New creates a new analyzer
func New(store PlayerSource, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		store: store,
		log:   log.With().Str("component", "analyzer").Logger(),
		now:   time.Now,
	}
}

// ValuePick pairs a player with their rating-per-euro value score
type ValuePick struct {
	Player domain.Player
	Score  float64 // overall rating x 1M / market value, 0 for free players
}

// BestValue ranks up to 50 searched players by value for money,
// best score first
func (a *Analyzer) BestValue(position *domain.Position, maxBudget *int64) ([]ValuePick, error) {
	criteria := domain.NewSearchCriteria()
	criteria.Position = position
	criteria.MaxPrice = maxBudget
	criteria.Limit = valuePoolSize

	players, err := a.store.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search value candidates: %w", err)
	}

	picks := make([]ValuePick, 0, len(players))
	for _, p := range players {
		score := 0.0
		if p.MarketValue > 0 {
			score = float64(p.OverallRating) * 1_000_000 / float64(p.MarketValue)
		}
		picks = append(picks, ValuePick{Player: p, Score: score})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Score > picks[j].Score
	})

	return picks, nil
}

// YoungTalents finds promising young players, ordered by potential then
// growth headroom
func (a *Analyzer) YoungTalents(maxAge, minPotential int) ([]domain.Player, error) {
	criteria := domain.NewSearchCriteria()
	criteria.MaxAge = &maxAge
	criteria.MinPotential = &minPotential
	criteria.Limit = valuePoolSize

	players, err := a.store.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search young talents: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Potential != players[j].Potential {
			return players[i].Potential > players[j].Potential
		}
		return players[i].GrowthPotential() > players[j].GrowthPotential()
	})

	return players, nil
}

// ExpiringContracts finds players whose contract ends within the
// threshold window from now, best rated first. Players without a known
// expiry are excluded.
func (a *Analyzer) ExpiringContracts(monthsThreshold int) ([]domain.Player, error) {
	criteria := domain.NewSearchCriteria()
	criteria.Limit = marketPoolSize

	players, err := a.store.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search for expiring contracts: %w", err)
	}

	threshold := a.now().AddDate(0, 0, monthsThreshold*30)

	var expiring []domain.Player
	for _, p := range players {
		if p.ContractExpiry != nil && !p.ContractExpiry.After(threshold) {
			expiring = append(expiring, p)
		}
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].OverallRating > expiring[j].OverallRating
	})

	return expiring, nil
}

// Attribute names in fixed comparison order.
var comparedAttributes = []string{
	"overall_rating", "potential",
	"pace", "shooting", "passing", "dribbling", "defending", "physical",
}

// AttributeWinner reports the best value for one attribute and every
// player achieving it
type AttributeWinner struct {
	Value   int      `json:"value"`
	Winners []string `json:"winners"`
}

// ComparedPlayer is one side of a comparison
type ComparedPlayer struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Age            int               `json:"age"`
	Position       domain.Position   `json:"position"`
	OverallRating  int               `json:"overall_rating"`
	Potential      int               `json:"potential"`
	MarketValue    int64             `json:"market_value"`
	Attributes     domain.Attributes `json:"attributes"`
	ValuePerRating float64           `json:"value_per_rating"`
}

// Comparison is a side-by-side report over two or more players
type Comparison struct {
	Players []ComparedPlayer           `json:"players"`
	Winners map[string]AttributeWinner `json:"winner_per_attribute"`
}

// Compare builds a side-by-side comparison for the given ids. Ids that
// do not resolve are dropped; fewer than 2 resolvable ids is an input
// error.
func (a *Analyzer) Compare(ids []int64) (*Comparison, error) {
	var players []domain.Player
	for _, id := range ids {
		p, err := a.store.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve player %d: %w", id, err)
		}
		if p != nil {
			players = append(players, *p)
		}
	}

	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	cmp := &Comparison{
		Winners: make(map[string]AttributeWinner, len(comparedAttributes)),
	}

	for _, p := range players {
		cmp.Players = append(cmp.Players, ComparedPlayer{
			ID:             p.ID,
			Name:           p.Name,
			Age:            p.Age,
			Position:       p.Position,
			OverallRating:  p.OverallRating,
			Potential:      p.Potential,
			MarketValue:    p.MarketValue,
			Attributes:     p.Attributes,
			ValuePerRating: p.ValuePerRating(),
		})
	}

	for _, attr := range comparedAttributes {
		best := AttributeWinner{Value: math.MinInt32}
		for _, p := range players {
			v := attributeValue(p, attr)
			switch {
			case v > best.Value:
				best = AttributeWinner{Value: v, Winners: []string{p.Name}}
			case v == best.Value:
				best.Winners = append(best.Winners, p.Name)
			}
		}
		cmp.Winners[attr] = best
	}

	return cmp, nil
}

func attributeValue(p domain.Player, attr string) int {
	switch attr {
	case "overall_rating":
		return p.OverallRating
	case "potential":
		return p.Potential
	case "pace":
		return p.Attributes.Pace
	case "shooting":
		return p.Attributes.Shooting
	case "passing":
		return p.Attributes.Passing
	case "dribbling":
		return p.Attributes.Dribbling
	case "defending":
		return p.Attributes.Defending
	case "physical":
		return p.Attributes.Physical
	default:
		return 0
	}
}
