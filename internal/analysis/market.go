package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fieldside/squadscout/internal/domain"
)

// DistStats holds descriptive statistics for one dimension of the market
type DistStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// ValueStats is DistStats for market values, in whole euros
type ValueStats struct {
	Average int64 `json:"average"`
	Median  int64 `json:"median"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
}

// MarketReport summarizes the market for one position
type MarketReport struct {
	Position         domain.Position  `json:"position"`
	TotalPlayers     int              `json:"total_players"`
	Rating           DistStats        `json:"rating_stats"`
	Value            ValueStats       `json:"value_stats"`
	Age              DistStats        `json:"age_stats"`
	AvgValueByRating map[string]int64 `json:"avg_values_by_rating"` // keyed by 5-point bucket, e.g. "80-84"
}

// PositionMarket analyzes market trends for one position over up to 100
// fetched records. Returns nil when no players match.
func (a *Analyzer) PositionMarket(position domain.Position) (*MarketReport, error) {
	criteria := domain.NewSearchCriteria()
	criteria.Position = &position
	criteria.Limit = marketPoolSize

	players, err := a.store.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search position market: %w", err)
	}
	if len(players) == 0 {
		return nil, nil
	}

	ratings := make([]float64, len(players))
	values := make([]float64, len(players))
	ages := make([]float64, len(players))
	for i, p := range players {
		ratings[i] = float64(p.OverallRating)
		values[i] = float64(p.MarketValue)
		ages[i] = float64(p.Age)
	}

	// Average value per 5-point rating bucket
	bucketTotals := make(map[string]float64)
	bucketCounts := make(map[string]int)
	for _, p := range players {
		bucket := ratingBucket(p.OverallRating)
		bucketTotals[bucket] += float64(p.MarketValue)
		bucketCounts[bucket]++
	}

	avgByRating := make(map[string]int64, len(bucketTotals))
	for bucket, total := range bucketTotals {
		avgByRating[bucket] = int64(total / float64(bucketCounts[bucket]))
	}

	ratingStats := describe(ratings)
	ratingStats.Average = math.Round(ratingStats.Average*10) / 10

	valueStats := describe(values)

	ageStats := describe(ages)
	ageStats.Average = math.Round(ageStats.Average*10) / 10

	return &MarketReport{
		Position:     position,
		TotalPlayers: len(players),
		Rating:       ratingStats,
		Value: ValueStats{
			Average: int64(valueStats.Average),
			Median:  int64(valueStats.Median),
			Min:     int64(valueStats.Min),
			Max:     int64(valueStats.Max),
		},
		Age:              ageStats,
		AvgValueByRating: avgByRating,
	}, nil
}

// ratingBucket maps a rating to its 5-point bucket label ("80-84")
func ratingBucket(rating int) string {
	lo := (rating / 5) * 5
	return fmt.Sprintf("%d-%d", lo, lo+4)
}

// describe computes mean, median, min and max over a non-empty sample
func describe(xs []float64) DistStats {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return DistStats{
		Average: stat.Mean(sorted, nil),
		Median:  median(sorted),
		Min:     floats.Min(sorted),
		Max:     floats.Max(sorted),
	}
}

// median over an already-sorted sample; even-length samples average the
// two middle elements
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
