package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldside/squadscout/internal/domain"
)

const testCSVHeader = "player_id,name,dob,country_name,club_name,club_league_name,positions,preferred_foot," +
	"overall_rating,potential,value,wage,release_clause,club_contract_valid_until," +
	"acceleration,sprint_speed,finishing,shot_power,short_passing,long_passing,dribbling," +
	"defensive_awareness,standing_tackle,strength,stamina\n"

func writeTestCSV(t *testing.T, rows string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "players.csv")
	err := os.WriteFile(path, []byte(testCSVHeader+rows), 0644)
	require.NoError(t, err)

	return path
}

func newTestLoader(path string) *Loader {
	l := NewLoader(path, zerolog.Nop())
	l.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads a well-formed row", func(t *testing.T) {
		path := writeTestCSV(t,
			"231747,Kylian Mbappe,1998-12-20,France,Real Madrid,La Liga,\"ST,LW\",Right,"+
				"91,94,€180M,€450K,€250.5M,2029-06-30,"+
				"97,96,93,90,85,80,92,35,30,77,88\n")

		players := newTestLoader(path).Load(0)
		require.Len(t, players, 1)

		p := players[0]
		assert.Equal(t, int64(231747), p.ID)
		assert.Equal(t, "Kylian Mbappe", p.Name)
		assert.Equal(t, 27, p.Age)
		assert.Equal(t, "France", p.Nationality)
		assert.Equal(t, "Real Madrid", p.Club)
		assert.Equal(t, "La Liga", p.League)
		assert.Equal(t, domain.PositionST, p.Position)
		assert.Equal(t, 91, p.OverallRating)
		assert.Equal(t, 94, p.Potential)
		assert.Equal(t, int64(180_000_000), p.MarketValue)
		assert.Equal(t, int64(450_000), p.Wage)
		assert.Equal(t, int64(250_500_000), p.ReleaseClause)
		require.NotNil(t, p.ContractExpiry)
		assert.Equal(t, time.Date(2029, 6, 30, 0, 0, 0, 0, time.UTC), *p.ContractExpiry)

		// pace = max(acceleration, sprint_speed), defending = max(awareness, tackle)
		assert.Equal(t, 97, p.Attributes.Pace)
		assert.Equal(t, 93, p.Attributes.Shooting)
		assert.Equal(t, 85, p.Attributes.Passing)
		assert.Equal(t, 92, p.Attributes.Dribbling)
		assert.Equal(t, 35, p.Attributes.Defending)
		assert.Equal(t, 88, p.Attributes.Physical)
	})

	t.Run("applies defaults for sparse rows", func(t *testing.T) {
		path := writeTestCSV(t, "5,,,,,,,,,,,,,,,,,,,,,,,,\n")

		players := newTestLoader(path).Load(0)
		require.Len(t, players, 1)

		p := players[0]
		assert.Equal(t, int64(5), p.ID)
		assert.Equal(t, "Player 1", p.Name)
		assert.Equal(t, 25, p.Age)
		assert.Equal(t, "Unknown", p.Nationality)
		assert.Empty(t, p.Club)
		assert.Equal(t, domain.PositionCM, p.Position)
		assert.Equal(t, "Right", p.PreferredFoot)
		assert.Equal(t, 75, p.OverallRating)
		assert.Equal(t, 75, p.Potential)
		assert.Equal(t, int64(0), p.MarketValue)
		assert.Nil(t, p.ContractExpiry)
		assert.Equal(t, domain.Attributes{
			Pace: 50, Shooting: 50, Passing: 50, Dribbling: 50, Defending: 50, Physical: 50,
		}, p.Attributes)
	})

	t.Run("skips rows that violate invariants but keeps the batch", func(t *testing.T) {
		// Second row has potential 70 below overall 90 after clamping,
		// which fails validation and must not abort ingestion.
		path := writeTestCSV(t,
			"1,Good Player,2000-01-01,Spain,,,CM,Right,80,85,€10M,,,2027,"+
				"70,72,60,65,75,70,68,55,50,70,75\n"+
				"2,Bad Player,2000-01-01,Spain,,,CM,Right,90,70,€10M,,,2027,"+
				"70,72,60,65,75,70,68,55,50,70,75\n"+
				"3,Another Good,2000-01-01,Spain,,,CM,Right,78,82,€5M,,,2027,"+
				"70,72,60,65,75,70,68,55,50,70,75\n")

		players := newTestLoader(path).Load(0)
		require.Len(t, players, 2)
		assert.Equal(t, "Good Player", players[0].Name)
		assert.Equal(t, "Another Good", players[1].Name)
	})

	t.Run("respects the row limit", func(t *testing.T) {
		path := writeTestCSV(t,
			"1,A,,,,,ST,,80,85,,,,,,,,,,,,,,,\n"+
				"2,B,,,,,ST,,80,85,,,,,,,,,,,,,,,\n"+
				"3,C,,,,,ST,,80,85,,,,,,,,,,,,,,,\n")

		players := newTestLoader(path).Load(2)
		assert.Len(t, players, 2)
	})

	t.Run("missing file yields empty result, not an error", func(t *testing.T) {
		players := newTestLoader(filepath.Join(t.TempDir(), "nope.csv")).Load(0)
		assert.Empty(t, players)
	})

	t.Run("warns on unparsable dates and keeps the row with defaults", func(t *testing.T) {
		path := writeTestCSV(t,
			"9,Odd Dates,someday,Spain,,,CM,Right,80,85,,,,never,,,,,,,,,,,\n")

		var buf bytes.Buffer
		l := NewLoader(path, zerolog.New(&buf))
		l.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

		players := l.Load(0)
		require.Len(t, players, 1)
		assert.Equal(t, 25, players[0].Age)
		assert.Nil(t, players[0].ContractExpiry)

		logged := buf.String()
		assert.Contains(t, logged, "Unparsable date of birth")
		assert.Contains(t, logged, "Unparsable contract date")
	})

	t.Run("bare contract year normalizes to end of year", func(t *testing.T) {
		path := writeTestCSV(t,
			"7,Year Only,,,,,GK,,82,84,,,,2027,,,,,,,,,,,\n")

		players := newTestLoader(path).Load(0)
		require.Len(t, players, 1)
		require.NotNil(t, players[0].ContractExpiry)
		assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), *players[0].ContractExpiry)
	})
}

func TestGeneratorPlayers(t *testing.T) {
	gen := NewGenerator(42)
	players := gen.Players(50)

	require.Len(t, players, 50)

	for _, p := range players {
		assert.NoError(t, p.Validate(), "generated player %s must be valid", p.Name)
		assert.GreaterOrEqual(t, p.Potential, p.OverallRating)
		assert.NotNil(t, p.ContractExpiry)
	}

	t.Run("seeded generator is reproducible", func(t *testing.T) {
		again := NewGenerator(42).Players(50)
		require.Len(t, again, 50)
		assert.Equal(t, players[0].Name, again[0].Name)
		assert.Equal(t, players[0].OverallRating, again[0].OverallRating)
	})
}
