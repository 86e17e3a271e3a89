// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package swipe

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
)

// Generator produces a recommendation list.
type Generator interface {
	Generate(ctx context.Context, req recommend.Request) ([]models.Item, error)
}

// Credits is the part of the ledger a generation spends.
type Credits interface {
	Consume() bool
	Refund()
}

// Favorites receives accepted cards. A non-nil error with changed == true
// means the in-memory set changed but persisting it did not complete.
type Favorites interface {
	Add(ctx context.Context, item models.Item, typ models.Domain) (changed bool, err error)
	Remove(ctx context.Context, id string) (changed bool, err error)
}

// Options configures a Controller.
type Options struct {
	// RefundOnError returns the spent credit when the engine fails.
	RefundOnError bool

	Logger zerolog.Logger
}

type decisionRecord struct {
	position int
	decision Decision
	itemID   string
	inserted bool
}

// Controller is the swipe state machine for one domain. It is safe for
// concurrent use.
type Controller struct {
	domain    models.Domain
	engine    Generator
	credits   Credits
	favorites Favorites
	refund    bool
	logger    zerolog.Logger

	mu       sync.Mutex
	state    State
	list     []models.Item
	cursor   int
	history  []decisionRecord
	epoch    uint64
	cancel   context.CancelFunc
	deciding bool
	closed   bool
}

// NewController creates an Idle controller.
//
//nolint:gocritic // hugeParam: Options carries a zerolog.Logger by value
func NewController(domain models.Domain, engine Generator, ledger Credits, favs Favorites, opts Options) *Controller {
	return &Controller{
		domain:    domain,
		engine:    engine,
		credits:   ledger,
		favorites: favs,
		refund:    opts.RefundOnError,
		logger:    opts.Logger.With().Str("component", "swipe").Str("domain", string(domain)).Logger(),
		state:     StateIdle,
	}
}

// Domain returns the controller's domain.
func (c *Controller) Domain() models.Domain {
	return c.domain
}

type savedState struct {
	state   State
	list    []models.Item
	cursor  int
	history []decisionRecord
}

// Generate spends one credit and replaces the list with a fresh
// recommendation. req.Domain is forced to the controller's domain.
//
// On engine failure the previous list and cursor are restored. The credit is
// refunded only when RefundOnError is set.
//
//nolint:gocritic // hugeParam: Request is copied on purpose
func (c *Controller) Generate(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return nil, ErrClosed
	case c.state == StateLoading:
		c.mu.Unlock()
		return nil, ErrBusy
	case c.deciding:
		c.mu.Unlock()
		return nil, ErrDecisionInFlight
	}

	prev := savedState{state: c.state, list: c.list, cursor: c.cursor, history: c.history}
	c.state = StateLoading
	c.epoch++
	epoch := c.epoch
	genCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	if !c.credits.Consume() {
		c.mu.Lock()
		if c.epoch == epoch {
			c.restore(prev)
		}
		c.mu.Unlock()
		return nil, credits.ErrInsufficientCredits
	}

	req.Domain = c.domain
	items, err := c.engine.Generate(genCtx, req)

	c.mu.Lock()
	if c.closed || c.epoch != epoch {
		c.mu.Unlock()
		c.logger.Debug().Uint64("epoch", epoch).Msg("Discarding stale generation")
		return nil, ErrStaleGeneration
	}
	c.cancel = nil

	if err != nil {
		c.restore(prev)
		c.mu.Unlock()

		refunded := false
		if c.refund {
			c.credits.Refund()
			refunded = true
		}
		c.logger.Warn().Err(err).Bool("refunded", refunded).Msg("Generation failed")
		return nil, err
	}

	c.list = models.CloneItems(items)
	if c.list == nil {
		c.list = []models.Item{}
	}
	c.cursor = 0
	c.history = nil
	if len(c.list) == 0 {
		c.state = StateIdle
	} else {
		c.state = StatePresenting
	}
	out := models.CloneItems(c.list)
	c.mu.Unlock()

	return out, nil
}

func (c *Controller) restore(prev savedState) {
	c.state = prev.state
	c.list = prev.list
	c.cursor = prev.cursor
	c.history = prev.history
	c.cancel = nil
}

// Decide applies d to the current card.
//
// In Idle the call is a no-op and returns OutcomeNoOp. When accepting, the
// returned error may be a persistence error even though the decision was
// applied; Result is valid in that case.
func (c *Controller) Decide(ctx context.Context, d Decision) (Result, error) {
	return c.decide(ctx, 0, false, d)
}

// DecideAt applies d only if position is still the current card.
func (c *Controller) DecideAt(ctx context.Context, position int, d Decision) (Result, error) {
	return c.decide(ctx, position, true, d)
}

func (c *Controller) decide(ctx context.Context, position int, checkPosition bool, d Decision) (Result, error) {
	if d != DecisionAccept && d != DecisionReject {
		return Result{}, ErrInvalidDecision
	}

	c.mu.Lock()
	if err := c.checkInteractive(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	if c.state == StateIdle {
		res := Result{Outcome: OutcomeNoOp, Position: c.cursor, Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		metrics.RecordSwipeDecision(string(c.domain), string(OutcomeNoOp))
		return res, nil
	}
	if checkPosition && position != c.cursor {
		c.mu.Unlock()
		return Result{}, ErrStaleDecision
	}

	pos := c.cursor
	item := c.list[pos].Clone()

	if d == DecisionReject {
		c.advanceLocked(decisionRecord{position: pos, decision: d, itemID: item.ID})
		res := Result{Outcome: OutcomeRejected, Item: &item, Position: pos, Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		metrics.RecordSwipeDecision(string(c.domain), string(OutcomeRejected))
		return res, nil
	}

	c.deciding = true
	c.mu.Unlock()

	inserted, favErr := c.favorites.Add(ctx, item, c.domain)

	c.mu.Lock()
	c.deciding = false
	if c.closed {
		c.mu.Unlock()
		return Result{}, ErrClosed
	}
	c.advanceLocked(decisionRecord{position: pos, decision: d, itemID: item.ID, inserted: inserted})
	res := Result{
		Outcome:         OutcomeAccepted,
		Item:            &item,
		Position:        pos,
		FavoriteChanged: inserted,
		Snapshot:        c.snapshotLocked(),
	}
	c.mu.Unlock()

	metrics.RecordSwipeDecision(string(c.domain), string(OutcomeAccepted))
	if favErr != nil {
		c.logger.Warn().Err(favErr).Str("item_id", item.ID).Msg("Accepted favorite not persisted")
	}
	return res, favErr
}

func (c *Controller) checkInteractive() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.state == StateLoading:
		return ErrBusy
	case c.deciding:
		return ErrDecisionInFlight
	}
	return nil
}

func (c *Controller) advanceLocked(rec decisionRecord) {
	c.history = append(c.history, rec)
	c.cursor++
	if c.cursor >= len(c.list) {
		c.state = StateIdle
	}
}

// Undo reverts the most recent decision on the current list. If that
// decision inserted a favorite, the favorite is removed again.
func (c *Controller) Undo(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if err := c.checkInteractive(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	if len(c.history) == 0 {
		c.mu.Unlock()
		return Result{}, ErrNothingToUndo
	}

	rec := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.cursor = rec.position
	c.state = StatePresenting
	item := c.list[rec.position].Clone()

	if !rec.inserted {
		res := Result{Outcome: OutcomeUndone, Item: &item, Position: rec.position, Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		return res, nil
	}

	c.deciding = true
	c.mu.Unlock()

	removed, favErr := c.favorites.Remove(ctx, rec.itemID)

	c.mu.Lock()
	c.deciding = false
	res := Result{
		Outcome:         OutcomeUndone,
		Item:            &item,
		Position:        rec.position,
		FavoriteChanged: removed,
		Snapshot:        c.snapshotLocked(),
	}
	c.mu.Unlock()

	if favErr != nil {
		c.logger.Warn().Err(favErr).Str("item_id", rec.itemID).Msg("Undo removal not persisted")
	}
	return res, favErr
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Domain:  c.domain,
		State:   c.state,
		Cursor:  c.cursor,
		Items:   models.CloneItems(c.list),
		CanUndo: len(c.history) > 0 && c.state != StateLoading,
	}
	if snap.Items == nil {
		snap.Items = []models.Item{}
	}
	if c.state == StatePresenting && c.cursor < len(c.list) {
		cur := c.list[c.cursor].Clone()
		snap.Current = &cur
		snap.Remaining = len(c.list) - c.cursor
	}
	return snap
}

// Close cancels any pending generation and moves to Idle. Later calls
// return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = StateIdle
	c.list = nil
	c.cursor = 0
	c.history = nil
}
