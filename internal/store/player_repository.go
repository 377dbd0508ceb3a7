// Package store persists player records to SQLite and serves indexed
// filtered searches and aggregate statistics.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fieldside/squadscout/internal/database"
	"github.com/fieldside/squadscout/internal/domain"
)

// schema is the single players table plus its query indexes.
// The indexes exist purely for performance and never affect results.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	nationality TEXT,
	club TEXT,
	league TEXT,
	position TEXT NOT NULL,
	preferred_foot TEXT NOT NULL DEFAULT 'Right',
	overall_rating INTEGER NOT NULL,
	potential INTEGER NOT NULL,
	market_value INTEGER NOT NULL,
	wage INTEGER,
	release_clause INTEGER,
	contract_expiry TEXT,
	attributes BLOB NOT NULL,
	last_updated TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_players_position ON players(position);
CREATE INDEX IF NOT EXISTS idx_players_overall ON players(overall_rating);
CREATE INDEX IF NOT EXISTS idx_players_age ON players(age);
CREATE INDEX IF NOT EXISTS idx_players_value ON players(market_value);
`

// playersColumns is the column list for the players table.
// Used to avoid SELECT * which can break when the schema changes;
// order must match scanPlayer expectations.
const playersColumns = `id, name, age, nationality, club, league, position, preferred_foot,
overall_rating, potential, market_value, wage, release_clause, contract_expiry, attributes, last_updated`

// Stats summarizes the store, or one position within it
type Stats struct {
	Count     int     `json:"total_players"`
	AvgRating float64 `json:"average_rating"` // rounded to one decimal
	AvgValue  int64   `json:"average_value"`  // truncated to whole euros
	AvgAge    float64 `json:"average_age"`    // rounded to one decimal
}

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPlayerRepository creates the repository and ensures the schema exists
func NewPlayerRepository(db *database.DB, log zerolog.Logger) (*PlayerRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize players schema: %w", err)
	}

	return &PlayerRepository{
		db:  db.Conn(),
		log: log.With().Str("repo", "player").Logger(),
	}, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting single and
// transactional upserts share one write path
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// Upsert inserts a player or fully replaces the existing record sharing
// the same id. The record is validated first; invalid records are never
// written.
func (r *PlayerRepository) Upsert(p domain.Player) error {
	return r.upsertInto(r.db, p)
}

func (r *PlayerRepository) upsertInto(ex execer, p domain.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid player %d: %w", p.ID, err)
	}

	attrs, err := msgpack.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode attributes for player %d: %w", p.ID, err)
	}

	var expiry interface{}
	if p.ContractExpiry != nil {
		expiry = p.ContractExpiry.UTC().Format(time.RFC3339)
	}

	query := `
		INSERT OR REPLACE INTO players (
			id, name, age, nationality, club, league, position, preferred_foot,
			overall_rating, potential, market_value, wage, release_clause,
			contract_expiry, attributes, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = ex.Exec(query,
		p.ID,
		p.Name,
		p.Age,
		p.Nationality,
		nullIfEmpty(p.Club),
		nullIfEmpty(p.League),
		p.Position.String(),
		p.PreferredFoot,
		p.OverallRating,
		p.Potential,
		p.MarketValue,
		p.Wage,
		p.ReleaseClause,
		expiry,
		attrs,
		p.LastUpdated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player %d: %w", p.ID, err)
	}

	return nil
}

// BulkUpsert writes a batch of players in a single transaction, skipping
// records that fail so one bad record does not poison the batch.
// Returns the number of records written, 0 when the transaction fails.
func (r *PlayerRepository) BulkUpsert(players []domain.Player) int {
	count := 0
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, p := range players {
			if err := r.upsertInto(tx, p); err != nil {
				r.log.Warn().Err(err).Int64("player_id", p.ID).Msg("Skipping player in bulk upsert")
				continue
			}
			count++
		}
		return nil
	})
	if err != nil {
		r.log.Error().Err(err).Msg("Bulk upsert transaction failed")
		return 0
	}

	return count
}

// GetByID returns a player by id, or nil when absent
func (r *PlayerRepository) GetByID(id int64) (*domain.Player, error) {
	query := "SELECT " + playersColumns + " FROM players WHERE id = ?"

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query player by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Player not found
	}

	player, err := scanPlayer(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	return &player, nil
}

// Search applies every set criteria field as an AND filter and returns
// records ordered by overall rating desc, potential desc, market value
// asc (id asc as the stable final tie-break), truncated to the limit.
func (r *PlayerRepository) Search(c domain.SearchCriteria) ([]domain.Player, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search criteria: %w", err)
	}

	query := "SELECT " + playersColumns + " FROM players WHERE overall_rating >= ?"
	args := []interface{}{c.MinOverall}

	if c.Position != nil {
		query += " AND position = ?"
		args = append(args, c.Position.String())
	}
	if c.MaxOverall != nil {
		query += " AND overall_rating <= ?"
		args = append(args, *c.MaxOverall)
	}
	if c.MinPotential != nil {
		query += " AND potential >= ?"
		args = append(args, *c.MinPotential)
	}
	if c.MaxAge != nil {
		query += " AND age <= ?"
		args = append(args, *c.MaxAge)
	}
	if c.MinAge != nil {
		query += " AND age >= ?"
		args = append(args, *c.MinAge)
	}
	if c.MaxPrice != nil {
		query += " AND market_value <= ?"
		args = append(args, *c.MaxPrice)
	}
	if c.MinPrice != nil {
		query += " AND market_value >= ?"
		args = append(args, *c.MinPrice)
	}
	if c.Nationality != "" {
		query += " AND nationality = ?"
		args = append(args, c.Nationality)
	}
	if c.League != "" {
		query += " AND league = ?"
		args = append(args, c.League)
	}
	if c.PreferredFoot != "" {
		query += " AND preferred_foot = ?"
		args = append(args, c.PreferredFoot)
	}

	query += " ORDER BY overall_rating DESC, potential DESC, market_value ASC, id ASC LIMIT ?"
	args = append(args, c.Limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// Positions returns the distinct position codes present in the store,
// lexicographically sorted
func (r *PlayerRepository) Positions() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT position FROM players ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []string
	for rows.Next() {
		var pos string
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetStats aggregates count and averages over the whole store, or over
// one position when given. An empty store yields zeroed stats.
func (r *PlayerRepository) GetStats(position *domain.Position) (Stats, error) {
	query := "SELECT COUNT(*), AVG(overall_rating), AVG(market_value), AVG(age) FROM players"
	args := []interface{}{}

	if position != nil {
		query += " WHERE position = ?"
		args = append(args, position.String())
	}

	var (
		count                       int
		avgRating, avgValue, avgAge sql.NullFloat64
	)
	if err := r.db.QueryRow(query, args...).Scan(&count, &avgRating, &avgValue, &avgAge); err != nil {
		return Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}

	return Stats{
		Count:     count,
		AvgRating: math.Round(avgRating.Float64*10) / 10,
		AvgValue:  int64(avgValue.Float64),
		AvgAge:    math.Round(avgAge.Float64*10) / 10,
	}, nil
}

// IsEmpty reports whether the store holds no players.
// Used by the fallback policy before querying.
func (r *PlayerRepository) IsEmpty() (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count players: %w", err)
	}

	return count == 0, nil
}

// scanPlayer converts the current row into a player record
func scanPlayer(rows *sql.Rows) (domain.Player, error) {
	var (
		p                   domain.Player
		nationality         sql.NullString
		club, league        sql.NullString
		wage, releaseClause sql.NullInt64
		expiry              sql.NullString
		attrs               []byte
		lastUpdated         string
		position            string
	)

	err := rows.Scan(
		&p.ID, &p.Name, &p.Age, &nationality, &club, &league, &position, &p.PreferredFoot,
		&p.OverallRating, &p.Potential, &p.MarketValue, &wage, &releaseClause,
		&expiry, &attrs, &lastUpdated,
	)
	if err != nil {
		return domain.Player{}, err
	}

	p.Nationality = nationality.String
	p.Club = club.String
	p.League = league.String
	p.Position = domain.Position(position)
	p.Wage = wage.Int64
	p.ReleaseClause = releaseClause.Int64

	if err := msgpack.Unmarshal(attrs, &p.Attributes); err != nil {
		return domain.Player{}, fmt.Errorf("failed to decode attributes: %w", err)
	}

	if expiry.Valid && expiry.String != "" {
		t, err := time.Parse(time.RFC3339, expiry.String)
		if err != nil {
			return domain.Player{}, fmt.Errorf("failed to parse contract expiry: %w", err)
		}
		p.ContractExpiry = &t
	}

	p.LastUpdated, err = time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return domain.Player{}, fmt.Errorf("failed to parse last updated: %w", err)
	}

	return p, nil
}

func nullIfEmpty(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
