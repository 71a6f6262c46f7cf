package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/riskibarqy/ft5-league/internal/platform/cache"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const snapshotCacheKey = "league:snapshot"

type DatasetServiceConfig struct {
	TTL         time.Duration
	LoadTimeout time.Duration
	Workers     int
	Location    *time.Location
	Clock       clock.Clock
	Logger      *logging.Logger
}

// DatasetService owns the current Snapshot. It loads the three documents
// concurrently, builds a new Snapshot and swaps it in whole.
type DatasetService struct {
	source   DocumentSource
	decoder  DatasetDecoder
	store    *cache.Store[*Snapshot]
	clock    clock.Clock
	location *time.Location
	workers  int
	logger   *logging.Logger
}

type fetchedDocument struct {
	name    Document
	payload []byte
}

func NewDatasetService(source DocumentSource, decoder DatasetDecoder, cfg DatasetServiceConfig) *DatasetService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	store := cache.NewStore[*Snapshot](cfg.TTL,
		cache.WithClock(clk),
		cache.WithLoadTimeout(cfg.LoadTimeout),
		cache.ServeStaleOnError(func(ctx context.Context, _ string, age time.Duration, err error) {
			logger.WarnContext(ctx, "serving previous league snapshot", "age", age, "error", err)
		}),
	)

	return &DatasetService{
		source:   source,
		decoder:  decoder,
		store:    store,
		clock:    clk,
		location: location,
		workers:  cfg.Workers,
		logger:   logger,
	}
}

// Current returns the cached snapshot, loading one when none is cached or the
// cached one has expired. When that load fails the expired snapshot is served.
func (s *DatasetService) Current(ctx context.Context) (*Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Current")
	defer span.End()

	return s.store.GetOrLoad(ctx, snapshotCacheKey, s.load)
}

// Reload forces a new load. On failure the previous snapshot stays current.
func (s *DatasetService) Reload(ctx context.Context) (*Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Reload")
	defer span.End()

	return s.store.Refresh(ctx, snapshotCacheKey, s.load)
}

// Today is the current calendar day in the league's time zone.
func (s *DatasetService) Today() time.Time {
	return s.clock.Now().In(s.location)
}

func (s *DatasetService) load(ctx context.Context) (*Snapshot, error) {
	start := s.clock.Now()

	raw, err := s.fetchAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "league data fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	dataset, err := s.decoder.DecodeDataset(ctx, raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "league data decode failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	snapshot, err := BuildSnapshot(ctx, dataset, s.Today(), s.workers)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "league snapshot loaded",
		"active_season", snapshot.ActiveSeason,
		"seasons", snapshot.Seasons,
		"players", snapshot.Players.Len(),
		"matches", len(snapshot.Matches),
		"standings", len(snapshot.Standings),
		"skipped_rows", snapshot.Skipped(),
		"duration", s.clock.Since(start),
	)
	return snapshot, nil
}

// fetchAll issues one fetch per document. The first failure cancels the rest.
func (s *DatasetService) fetchAll(ctx context.Context) (RawDocuments, error) {
	p := pool.NewWithResults[fetchedDocument]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, name := range Documents() {
		p.Go(func(ctx context.Context) (fetchedDocument, error) {
			payload, err := s.source.Fetch(ctx, name)
			if err != nil {
				return fetchedDocument{}, fmt.Errorf("fetch %s: %w", name, err)
			}
			return fetchedDocument{name: name, payload: payload}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(RawDocuments, len(results))
	for _, item := range results {
		out[item.name] = item.payload
	}
	return out, nil
}
