package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/fieldside/squadscout/internal/domain"
)

// DefaultFormation is used when the caller does not name one
const DefaultFormation = "4-3-3"

// Number of weakest positions to address per run
const maxSuggestions = 3

// SuggestedSigning is one proposed replacement for a weak position
type SuggestedSigning struct {
	Position         domain.Position `json:"position"`
	CurrentAvgRating float64         `json:"current_avg_rating"`
	Name             string          `json:"name"`
	Rating           int             `json:"rating"`
	Price            int64           `json:"price"`
	Improvement      float64         `json:"improvement"`
}

// SquadAdvice is the result of a squad-improvement analysis
type SquadAdvice struct {
	Budget          int64                       `json:"budget"`
	Formation       string                      `json:"formation"`
	SquadAverages   map[domain.Position]float64 `json:"squad_analysis"`
	Suggestions     []SuggestedSigning          `json:"suggestions"`
	RemainingBudget int64                       `json:"remaining_budget"`
}

// SuggestImprovements groups the squad by position, finds the three
// weakest positions by average rating, and proposes one affordable
// replacement per position rated at least five points above the weak
// average. The budget is only decremented sequentially per pick; it is
// deliberately not re-validated once the running remainder goes
// negative, at which point further searches simply find nothing.
func (a *Analyzer) SuggestImprovements(squadIDs []int64, budget int64, formation string) (*SquadAdvice, error) {
	if formation == "" {
		formation = DefaultFormation
	}

	var squad []domain.Player
	for _, id := range squadIDs {
		p, err := a.store.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve squad player %d: %w", id, err)
		}
		if p != nil {
			squad = append(squad, *p)
		}
	}

	if len(squad) == 0 {
		return nil, ErrEmptySquad
	}

	ratingsByPosition := make(map[domain.Position][]int)
	for _, p := range squad {
		ratingsByPosition[p.Position] = append(ratingsByPosition[p.Position], p.OverallRating)
	}

	averages := make(map[domain.Position]float64, len(ratingsByPosition))
	for pos, ratings := range ratingsByPosition {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		averages[pos] = float64(sum) / float64(len(ratings))
	}

	// Weakest positions first; ties broken by position code for
	// deterministic output.
	weakest := make([]domain.Position, 0, len(averages))
	for pos := range averages {
		weakest = append(weakest, pos)
	}
	sort.Slice(weakest, func(i, j int) bool {
		if averages[weakest[i]] != averages[weakest[j]] {
			return averages[weakest[i]] < averages[weakest[j]]
		}
		return weakest[i] < weakest[j]
	})

	if len(weakest) > maxSuggestions {
		weakest = weakest[:maxSuggestions]
	}

	advice := &SquadAdvice{
		Budget:          budget,
		Formation:       formation,
		SquadAverages:   averages,
		RemainingBudget: budget,
	}

	for _, pos := range weakest {
		avg := averages[pos]
		remaining := advice.RemainingBudget

		criteria := domain.NewSearchCriteria()
		p := pos
		criteria.Position = &p
		criteria.MinOverall = clampRatingBound(int(avg) + 5)
		criteria.MaxPrice = &remaining
		criteria.Limit = 5

		candidates, err := a.store.Search(criteria)
		if err != nil {
			return nil, fmt.Errorf("failed to search replacements for %s: %w", pos, err)
		}
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		advice.Suggestions = append(advice.Suggestions, SuggestedSigning{
			Position:         pos,
			CurrentAvgRating: math.Round(avg*10) / 10,
			Name:             best.Name,
			Rating:           best.OverallRating,
			Price:            best.MarketValue,
			Improvement:      float64(best.OverallRating) - avg,
		})
		advice.RemainingBudget -= best.MarketValue
	}

	return advice, nil
}

// clampRatingBound keeps a derived rating floor inside the valid
// criteria range
func clampRatingBound(v int) int {
	if v < 40 {
		return 40
	}
	if v > 99 {
		return 99
	}
	return v
}
