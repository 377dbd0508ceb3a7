package ingest

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/fieldside/squadscout/internal/domain"
)

// Sample pools for the synthetic fallback dataset.
var (
	sampleFirstNames = []string{
		"Lionel", "Cristiano", "Kylian", "Erling", "Robert", "Sadio", "Mohamed", "Kevin",
		"Virgil", "Luka", "Toni", "Joshua", "Harry", "Raheem", "Jadon", "Marcus",
		"Pedri", "Gavi", "Jude", "Eduardo", "Vinicius", "Karim", "Antoine", "Luis",
	}
	sampleLastNames = []string{
		"Messi", "Ronaldo", "Mbappe", "Haaland", "Lewandowski", "Mane", "Salah", "De Bruyne",
		"van Dijk", "Modric", "Kroos", "Kimmich", "Kane", "Sterling", "Sancho", "Rashford",
		"Gonzalez", "Lopez", "Bellingham", "Camavinga", "Junior", "Benzema", "Griezmann", "Suarez",
	}
	sampleNationalities = []string{
		"Argentina", "Portugal", "France", "Norway", "Poland", "Senegal", "Egypt", "Belgium",
		"Netherlands", "Croatia", "Germany", "England", "Spain", "Brazil", "Morocco", "Italy",
	}
	sampleClubs = []string{
		"Real Madrid", "Barcelona", "Manchester City", "Liverpool", "Bayern Munich", "PSG",
		"Chelsea", "Manchester United", "Arsenal", "Tottenham", "Juventus", "AC Milan",
		"Inter Milan", "Atletico Madrid", "Borussia Dortmund", "RB Leipzig",
	}
)

// Generator produces synthetic player records used as the fallback
// dataset when the CSV snapshot is unavailable
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible output
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// Players generates count synthetic players with plausible correlated
// ratings, values and contracts. Every generated record passes Validate.
func (g *Generator) Players(count int) []domain.Player {
	players := make([]domain.Player, 0, count)
	now := time.Now()

	for i := 0; i < count; i++ {
		age := g.between(16, 35)
		overall := g.between(65, 95)

		potential := min(99, overall+g.between(0, 15))
		if age > 28 {
			// Older players have little headroom left
			potential = max(overall, min(99, overall+g.between(-5, 2)))
		}

		value := int64(math.Pow(float64(overall), 1.8)) * int64(g.between(10_000, 50_000))
		if age < 23 {
			value = int64(float64(value) * (1.2 + g.rand.Float64()*0.8))
		} else if age > 30 {
			value = int64(float64(value) * (0.3 + g.rand.Float64()*0.4))
		}

		var releaseClause int64
		if g.rand.Float64() > 0.5 {
			releaseClause = int64(float64(value) * (1.5 + g.rand.Float64()*1.5))
		}

		league := "La Liga"
		if g.rand.Float64() > 0.7 {
			league = "Premier League"
		}

		foot := "Right"
		if g.rand.Intn(2) == 0 {
			foot = "Left"
		}

		expiry := now.AddDate(0, 0, g.between(30, 1095))

		positions := domain.AllPositions()

		players = append(players, domain.Player{
			ID:            int64(i + 1),
			Name:          fmt.Sprintf("%s %s", g.pick(sampleFirstNames), g.pick(sampleLastNames)),
			Age:           age,
			Nationality:   g.pick(sampleNationalities),
			Club:          g.pick(sampleClubs),
			League:        league,
			Position:      positions[g.rand.Intn(len(positions))],
			PreferredFoot: foot,
			OverallRating: overall,
			Potential:     potential,
			MarketValue:   value,
			Wage:          int64(g.between(50_000, 500_000)),
			ReleaseClause: releaseClause,
			Attributes: domain.Attributes{
				Pace:      g.between(40, 99),
				Shooting:  g.between(40, 99),
				Passing:   g.between(40, 99),
				Dribbling: g.between(40, 99),
				Defending: g.between(40, 99),
				Physical:  g.between(40, 99),
			},
			ContractExpiry: &expiry,
			LastUpdated:    now,
		})
	}

	return players
}

// between returns a random int in [lo, hi] inclusive
func (g *Generator) between(lo, hi int) int {
	return lo + g.rand.Intn(hi-lo+1)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}
