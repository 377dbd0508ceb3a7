// Package services wires ingestion, storage and the fallback policy
// behind the query surface the CLI consumes.
package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fieldside/squadscout/internal/domain"
	"github.com/fieldside/squadscout/internal/ingest"
	"github.com/fieldside/squadscout/internal/store"
	"github.com/fieldside/squadscout/internal/utils"
)

// CatalogStore is the slice of the player store the service needs
type CatalogStore interface {
	BulkUpsert(players []domain.Player) int
	IsEmpty() (bool, error)
}

// PlayerProducer yields a batch of players for loading
type PlayerProducer interface {
	Load(limit int) []domain.Player
}

// Config holds catalog service settings
type Config struct {
	CSVRowLimit int // 0 = unlimited
	SampleSize  int // synthetic players generated when the CSV yields nothing
}

// CatalogService refreshes the player catalog from the CSV snapshot,
// falling back to the synthetic generator when the snapshot is
// unavailable.
type CatalogService struct {
	loader PlayerProducer
	gen    *ingest.Generator
	store  CatalogStore
	cfg    Config
	log    zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(loader PlayerProducer, gen *ingest.Generator, st CatalogStore, cfg Config, log zerolog.Logger) *CatalogService {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 200
	}

	return &CatalogService{
		loader: loader,
		gen:    gen,
		store:  st,
		cfg:    cfg,
		log:    log.With().Str("component", "catalog").Logger(),
	}
}

// Refresh ingests the CSV snapshot into the store, wholesale. When the
// CSV yields no players the synthetic generator supplies the dataset
// instead. Returns the number of records written.
func (s *CatalogService) Refresh() (int, error) {
	timer := utils.NewTimer("catalog_refresh", s.log)
	defer timer.Stop()

	players := s.loader.Load(s.cfg.CSVRowLimit)

	if len(players) == 0 {
		s.log.Warn().Int("sample_size", s.cfg.SampleSize).
			Msg("CSV yielded no players, generating synthetic dataset")
		players = s.gen.Players(s.cfg.SampleSize)
	}

	count := s.store.BulkUpsert(players)
	s.log.Info().Int("loaded", count).Int("candidates", len(players)).Msg("Catalog refreshed")

	return count, nil
}

// EnsurePopulated refreshes the catalog only when the store is empty.
// Query commands call this so a fresh install still produces results.
func (s *CatalogService) EnsurePopulated() error {
	empty, err := s.store.IsEmpty()
	if err != nil {
		return fmt.Errorf("failed to check store: %w", err)
	}
	if !empty {
		return nil
	}

	if _, err := s.Refresh(); err != nil {
		return fmt.Errorf("failed to populate empty store: %w", err)
	}

	return nil
}

// verify the real repository satisfies the store interface
var _ CatalogStore = (*store.PlayerRepository)(nil)
