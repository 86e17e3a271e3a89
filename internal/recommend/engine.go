// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/models"
)

// ErrInvalidRequest is returned for requests the engine cannot serve,
// such as an unknown domain. It is not a GenerationError.
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Engine produces ranked recommendations from a DataSource.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	source DataSource

	scorers   []Scorer
	weights   map[string]float64
	rerankers []Reranker
	mu        sync.RWMutex

	// Random source for tie-breaking (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	emptyCount    atomic.Int64
	lastGenerated atomic.Int64 // unix nanos
}

// NewEngine creates a recommendation engine reading from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source DataSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("data source is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		source:  source,
		scorers: []Scorer{MoodScorer{}, WeatherScorer{}, RatingScorer{}},
		weights: cfg.Weights.ToMap(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for tie-breaking
	}, nil
}

// RegisterReranker adds a reranker to the post-processing pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Generate returns up to K items for the request, best first.
//
// Data source failures and malformed pools are returned as *GenerationError.
// An empty pool after filtering yields an empty, non-nil slice.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Generate(ctx context.Context, req Request) ([]models.Item, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if !req.Domain.Valid() {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: unknown domain %q", ErrInvalidRequest, req.Domain)
	}

	req = req.Clone()
	k := e.resolveK(req.K)
	logger := e.logger.With().
		Str("domain", req.Domain.String()).
		Str("request_id", req.RequestID).
		Logger()

	pool, err := e.query(ctx, &req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordGeneration(req.Domain.String(), "error", 0, time.Since(start))
		logger.Warn().Err(err).Msg("generation failed")
		return nil, &GenerationError{Domain: req.Domain, Cause: err}
	}

	candidates := applyFilter(&req, pool)
	if len(candidates) == 0 {
		e.emptyCount.Add(1)
		e.markGenerated()
		metrics.RecordGeneration(req.Domain.String(), "empty", 0, time.Since(start))
		logger.Debug().Int("pool", len(pool)).Msg("no candidates after filtering")
		return []models.Item{}, nil
	}

	scored := e.score(&req, candidates)
	e.rank(scored)
	scored = e.rerank(ctx, scored, k)
	if len(scored) > k {
		scored = scored[:k]
	}

	out := make([]models.Item, len(scored))
	for i := range scored {
		out[i] = scored[i].Item.Clone()
	}

	e.markGenerated()
	metrics.RecordGeneration(req.Domain.String(), "success", len(out), time.Since(start))
	logger.Debug().
		Int("pool", len(pool)).
		Int("candidates", len(candidates)).
		Int("returned", len(out)).
		Dur("latency", time.Since(start)).
		Msg("generation complete")

	return out, nil
}

// resolveK applies the request override and the MaxK cap.
func (e *Engine) resolveK(requested int) int {
	k := e.config.MaxItems
	if requested > 0 {
		k = requested
	}
	if k > MaxK {
		k = MaxK
	}
	return k
}

// query fetches and validates the candidate pool under the configured timeout.
func (e *Engine) query(ctx context.Context, req *Request) ([]models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	pool, err := e.source.Query(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("query data source: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("query data source: %w", err)
	}
	if err := validatePool(req.Domain, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// validatePool rejects items with missing identity, the wrong domain or
// duplicate IDs.
func validatePool(domain models.Domain, pool []models.Item) error {
	seen := make(map[string]struct{}, len(pool))
	for i := range pool {
		item := &pool[i]
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedData, err)
		}
		if item.Domain != domain {
			return fmt.Errorf("%w: item %s has domain %s, want %s", ErrMalformedData, item.ID, item.Domain, domain)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %s", ErrMalformedData, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// score combines scorer outputs. Weights are normalized over the scorers
// that reported a signal for each item.
func (e *Engine) score(req *Request, items []models.Item) []ScoredItem {
	scored := make([]ScoredItem, len(items))
	for i := range items {
		item := &items[i]
		breakdown := make(map[string]float64, len(e.scorers))
		var total, weightSum float64
		for _, s := range e.scorers {
			w := e.weights[s.Name()]
			if w <= 0 {
				continue
			}
			v, ok := s.Score(req, item)
			if !ok {
				continue
			}
			breakdown[s.Name()] = v
			total += w * v
			weightSum += w
		}
		var combined float64
		if weightSum > 0 {
			combined = total / weightSum
		}
		scored[i] = ScoredItem{Item: *item, Score: clamp01(combined), Scores: breakdown}
	}
	return scored
}

// rank sorts by descending score. Ties keep the order of a seeded shuffle.
func (e *Engine) rank(items []ScoredItem) {
	e.rngMu.Lock()
	e.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	e.rngMu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func (e *Engine) rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem {
	e.mu.RLock()
	rerankers := make([]Reranker, len(e.rerankers))
	copy(rerankers, e.rerankers)
	e.mu.RUnlock()

	for _, rr := range rerankers {
		items = rr.Rerank(ctx, items, k)
	}
	return items
}

func (e *Engine) markGenerated() {
	e.lastGenerated.Store(time.Now().UnixNano())
}

// Metrics returns current engine counters.
func (e *Engine) Metrics() Metrics {
	m := Metrics{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		EmptyResults: e.emptyCount.Load(),
	}
	if ts := e.lastGenerated.Load(); ts > 0 {
		m.LastGeneratedAt = time.Unix(0, ts)
	}
	return m
}
