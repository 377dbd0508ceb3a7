// Package ingest converts the external CSV snapshot into validated
// player records and provides the synthetic fallback generator.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldside/squadscout/internal/domain"
)

// Loader reads player records from a CSV snapshot
type Loader struct {
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// NewLoader creates a new CSV loader for the given file path
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{
		path: path,
		log:  log.With().Str("component", "csv_loader").Logger(),
		now:  time.Now,
	}
}

// row gives name-based access to the loose CSV columns.
// Missing columns and missing fields read as empty strings.
type row struct {
	header map[string]int
	fields []string
}

func (r row) get(col string) string {
	idx, ok := r.header[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

// Load reads up to limit players from the CSV file (0 = unlimited).
// Rows that fail conversion are skipped with a warning; a missing or
// unreadable file yields an empty slice so the caller can fall back to
// the synthetic generator.
func (l *Loader) Load(limit int) []domain.Player {
	batch := uuid.New().String()
	log := l.log.With().Str("batch", batch).Logger()

	f, err := os.Open(l.path)
	if err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("CSV file not readable, returning no players")
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	headerFields, err := reader.Read()
	if err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("Failed to read CSV header, returning no players")
		return nil
	}

	header := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		header[strings.TrimSpace(name)] = i
	}

	now := l.now()
	var players []domain.Player

	for rowNum := 0; limit <= 0 || rowNum < limit; rowNum++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("row", rowNum).Msg("Skipping malformed CSV row")
			continue
		}

		player, err := l.buildPlayer(row{header: header, fields: fields}, rowNum, now, log)
		if err != nil {
			log.Warn().Err(err).Int("row", rowNum).Msg("Skipping row that failed conversion")
			continue
		}

		players = append(players, player)
	}

	log.Info().Int("players", len(players)).Str("path", l.path).Msg("Loaded players from CSV")
	return players
}

// buildPlayer converts one CSV row into a validated player record
func (l *Loader) buildPlayer(r row, rowNum int, now time.Time, log zerolog.Logger) (domain.Player, error) {
	attrs, err := domain.NewAttributes(
		clampSkill(deriveSkill(r.get("acceleration"), r.get("sprint_speed"))),
		clampSkill(deriveSkill(r.get("finishing"), r.get("shot_power"))),
		clampSkill(deriveSkill(r.get("short_passing"), r.get("long_passing"))),
		clampSkill(safeInt(r.get("dribbling"), defaultSkill)),
		clampSkill(deriveSkill(r.get("defensive_awareness"), r.get("standing_tackle"))),
		clampSkill(deriveSkill(r.get("strength"), r.get("stamina"))),
	)
	if err != nil {
		return domain.Player{}, fmt.Errorf("invalid attributes: %w", err)
	}

	name := strings.TrimSpace(r.get("name"))
	if name == "" {
		name = fmt.Sprintf("Player %d", rowNum+1)
	}

	nationality := strings.TrimSpace(r.get("country_name"))
	if nationality == "" {
		nationality = defaultCountry
	}

	foot := strings.TrimSpace(r.get("preferred_foot"))
	if foot == "" {
		foot = defaultFoot
	}

	age, err := ageFromDOB(r.get("dob"), now)
	if err != nil {
		log.Warn().Err(err).Int("row", rowNum).Msg("Unparsable date of birth, using default age")
	}

	expiry, err := parseDate(r.get("club_contract_valid_until"))
	if err != nil {
		log.Warn().Err(err).Int("row", rowNum).Msg("Unparsable contract date, treating as absent")
	}

	player := domain.Player{
		ID:             int64(safeInt(r.get("player_id"), rowNum+1)),
		Name:           name,
		Age:            age,
		Nationality:    nationality,
		Club:           strings.TrimSpace(r.get("club_name")),
		League:         strings.TrimSpace(r.get("club_league_name")),
		Position:       primaryPosition(r.get("positions")),
		PreferredFoot:  foot,
		OverallRating:  clampRating(r.get("overall_rating")),
		Potential:      clampRating(r.get("potential")),
		MarketValue:    parseCurrency(r.get("value")),
		Wage:           parseCurrency(r.get("wage")),
		ReleaseClause:  parseCurrency(r.get("release_clause")),
		Attributes:     attrs,
		ContractExpiry: expiry,
		LastUpdated:    now,
	}

	if err := player.Validate(); err != nil {
		return domain.Player{}, err
	}

	return player, nil
}
