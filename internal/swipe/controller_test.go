// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package swipe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/favorites"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
)

func movie(id string) models.Item {
	return models.Item{
		ID:     id,
		Domain: models.DomainMovie,
		Title:  "Movie " + id,
		Genre:  "Drama",
		Rating: 4,
		Movie:  &models.MovieDetails{Year: 2010},
	}
}

func movies(ids ...string) []models.Item {
	out := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, movie(id))
	}
	return out
}

// fakeEngine returns items or err and counts calls. When gate is non-nil,
// Generate blocks until gate is closed or ctx ends.
type fakeEngine struct {
	items   []models.Item
	err     error
	gate    chan struct{}
	started chan struct{}
	calls   atomic.Int32
	lastReq recommend.Request
}

func (f *fakeEngine) Generate(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	f.calls.Add(1)
	f.lastReq = req
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return models.CloneItems(f.items), nil
}

// storeFavorites adapts favorites.Store to the Favorites interface.
type storeFavorites struct {
	store   *favorites.Store
	entered chan struct{}
	gate    chan struct{}
	err     error
}

func (s *storeFavorites) Add(_ context.Context, item models.Item, typ models.Domain) (bool, error) {
	if s.gate != nil {
		s.entered <- struct{}{}
		<-s.gate
	}
	return s.store.Add(item, typ), s.err
}

func (s *storeFavorites) Remove(_ context.Context, id string) (bool, error) {
	return s.store.Remove(id), s.err
}

type fixture struct {
	ctrl   *Controller
	engine *fakeEngine
	ledger *credits.Ledger
	favs   *storeFavorites
}

func newFixture(balance int, items []models.Item, refund bool) *fixture {
	f := &fixture{
		engine: &fakeEngine{items: items},
		ledger: credits.NewLedger(balance),
		favs:   &storeFavorites{store: favorites.NewStore(time.Now)},
	}
	f.ctrl = NewController(models.DomainMovie, f.engine, f.ledger, f.favs, Options{
		RefundOnError: refund,
		Logger:        zerolog.Nop(),
	})
	return f
}

func TestScenario_GenerateAcceptRejectAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(10, movies("a", "b", "c"), false)

	items, err := f.ctrl.Generate(ctx, recommend.Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Generate() returned %d items, want 3", len(items))
	}
	snap := f.ctrl.Snapshot()
	if snap.State != StatePresenting || snap.Cursor != 0 || snap.Remaining != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if f.ledger.Balance() != 9 {
		t.Errorf("Balance() = %d, want 9", f.ledger.Balance())
	}
	if f.engine.lastReq.Domain != models.DomainMovie {
		t.Errorf("request domain = %q, want movie", f.engine.lastReq.Domain)
	}

	for i, d := range []Decision{DecisionAccept, DecisionReject, DecisionAccept} {
		res, err := f.ctrl.Decide(ctx, d)
		if err != nil {
			t.Fatalf("Decide #%d error = %v", i, err)
		}
		if res.Position != i {
			t.Errorf("Decide #%d position = %d", i, res.Position)
		}
	}

	if f.favs.store.Len() != 2 {
		t.Errorf("favorites = %d, want 2", f.favs.store.Len())
	}
	if !f.favs.store.Contains("a") || !f.favs.store.Contains("c") || f.favs.store.Contains("b") {
		t.Error("accepted set should be {a, c}")
	}
	if got := f.ctrl.Snapshot().State; got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
}

func TestGenerate_NoCreditsNeverCallsEngine(t *testing.T) {
	f := newFixture(0, movies("a"), false)

	_, err := f.ctrl.Generate(context.Background(), recommend.Request{})
	if !errors.Is(err, credits.ErrInsufficientCredits) {
		t.Fatalf("Generate() error = %v, want ErrInsufficientCredits", err)
	}
	if f.engine.calls.Load() != 0 {
		t.Error("engine must not be called without credits")
	}
	if got := f.ctrl.Snapshot().State; got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if f.ledger.Balance() != 0 {
		t.Errorf("Balance() = %d, want 0", f.ledger.Balance())
	}
}

func TestGenerate_EmptyResultIsIdle(t *testing.T) {
	f := newFixture(1, nil, false)
	items, err := f.ctrl.Generate(context.Background(), recommend.Request{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil", items)
	}
	if snap := f.ctrl.Snapshot(); snap.State != StateIdle || snap.Current != nil {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestGenerate_FailureRestoresPreviousList(t *testing.T) {
	ctx := context.Background()
	for _, refund := range []bool{false, true} {
		t.Run(fmt.Sprintf("refund=%v", refund), func(t *testing.T) {
			f := newFixture(5, movies("a", "b"), refund)
			if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
				t.Fatal(err)
			}
			if _, err := f.ctrl.Decide(ctx, DecisionReject); err != nil {
				t.Fatal(err)
			}

			cause := errors.New("catalog down")
			f.engine.err = &recommend.GenerationError{Domain: models.DomainMovie, Cause: cause}
			_, err := f.ctrl.Generate(ctx, recommend.Request{})
			if !recommend.IsGenerationError(err) || !errors.Is(err, cause) {
				t.Fatalf("Generate() error = %v, want GenerationError", err)
			}

			snap := f.ctrl.Snapshot()
			if snap.State != StatePresenting || snap.Cursor != 1 || snap.Current.ID != "b" {
				t.Errorf("previous state not restored: %+v", snap)
			}
			if !snap.CanUndo {
				t.Error("undo history should survive a failed generation")
			}

			want := 3
			if refund {
				want = 4
			}
			if f.ledger.Balance() != want {
				t.Errorf("Balance() = %d, want %d", f.ledger.Balance(), want)
			}
		})
	}
}

func TestGenerate_BusyWhileLoading(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a"), false)
	f.engine.gate = make(chan struct{})
	f.engine.started = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Generate(ctx, recommend.Request{})
		done <- err
	}()
	<-f.engine.started

	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Generate() error = %v, want ErrBusy", err)
	}
	if _, err := f.ctrl.Decide(ctx, DecisionAccept); !errors.Is(err, ErrBusy) {
		t.Errorf("Decide() while loading error = %v, want ErrBusy", err)
	}
	if got := f.ctrl.Snapshot().State; got != StateLoading {
		t.Errorf("state = %v, want loading", got)
	}

	close(f.engine.gate)
	if err := <-done; err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if f.ledger.Balance() != 4 {
		t.Errorf("only one credit should be spent, balance = %d", f.ledger.Balance())
	}
}

func TestClose_DiscardsStaleGeneration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a"), true)
	f.engine.gate = make(chan struct{})
	f.engine.started = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Generate(ctx, recommend.Request{})
		done <- err
	}()
	<-f.engine.started

	f.ctrl.Close()
	if err := <-done; !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("Generate() error = %v, want ErrStaleGeneration", err)
	}
	if f.ledger.Balance() != 4 {
		t.Errorf("stale generation must not refund, balance = %d", f.ledger.Balance())
	}
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Generate() after Close error = %v", err)
	}
	if _, err := f.ctrl.Decide(ctx, DecisionAccept); !errors.Is(err, ErrClosed) {
		t.Errorf("Decide() after Close error = %v", err)
	}
	f.ctrl.Close()
}

func TestDecide_IdleIsNoOp(t *testing.T) {
	f := newFixture(5, nil, false)
	res, err := f.ctrl.Decide(context.Background(), DecisionAccept)
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if res.Outcome != OutcomeNoOp {
		t.Errorf("Outcome = %q, want noop", res.Outcome)
	}
	if f.favs.store.Len() != 0 {
		t.Error("no-op decision must not touch favorites")
	}
	if _, err := f.ctrl.Decide(context.Background(), DecisionNone); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("DecisionNone error = %v", err)
	}
}

func TestDecideAt_DuplicateTapIsStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a", "b", "c"), false)
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}

	if _, err := f.ctrl.DecideAt(ctx, 0, DecisionAccept); err != nil {
		t.Fatalf("first tap error = %v", err)
	}
	if _, err := f.ctrl.DecideAt(ctx, 0, DecisionAccept); !errors.Is(err, ErrStaleDecision) {
		t.Fatalf("duplicate tap error = %v, want ErrStaleDecision", err)
	}
	if f.favs.store.Contains("b") {
		t.Error("duplicate tap must not accept the next card")
	}
	if got := f.ctrl.Snapshot().Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestDecide_AcceptExistingFavoriteDoesNotGrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a"), false)
	f.favs.store.Add(movie("a"), models.DomainMovie)
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}

	res, err := f.ctrl.Decide(ctx, DecisionAccept)
	if err != nil {
		t.Fatal(err)
	}
	if res.FavoriteChanged {
		t.Error("FavoriteChanged should be false for an existing favorite")
	}
	if f.favs.store.Len() != 1 {
		t.Errorf("favorites = %d, want 1", f.favs.store.Len())
	}

	// Undo must not remove a favorite this decision did not insert.
	if _, err := f.ctrl.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if !f.favs.store.Contains("a") {
		t.Error("pre-existing favorite removed by undo")
	}
}

func TestDecide_InFlight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a", "b"), false)
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}
	f.favs.gate = make(chan struct{})
	f.favs.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.Decide(ctx, DecisionAccept)
		done <- err
	}()
	<-f.favs.entered

	if _, err := f.ctrl.Decide(ctx, DecisionReject); !errors.Is(err, ErrDecisionInFlight) {
		t.Errorf("Decide() during accept error = %v, want ErrDecisionInFlight", err)
	}
	if _, err := f.ctrl.Undo(ctx); !errors.Is(err, ErrDecisionInFlight) {
		t.Errorf("Undo() during accept error = %v, want ErrDecisionInFlight", err)
	}
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); !errors.Is(err, ErrDecisionInFlight) {
		t.Errorf("Generate() during decision error = %v", err)
	}

	close(f.favs.gate)
	if err := <-done; err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if got := f.ctrl.Snapshot().Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestDecide_PersistenceErrorStillAdvances(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a", "b"), false)
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}
	persistErr := errors.New("queued")
	f.favs.err = persistErr

	res, err := f.ctrl.Decide(ctx, DecisionAccept)
	if !errors.Is(err, persistErr) {
		t.Fatalf("Decide() error = %v", err)
	}
	if res.Outcome != OutcomeAccepted || res.Snapshot.Cursor != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestUndo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a", "b"), false)

	if _, err := f.ctrl.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() on empty history error = %v", err)
	}
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctrl.Decide(ctx, DecisionReject); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctrl.Decide(ctx, DecisionAccept); err != nil {
		t.Fatal(err)
	}
	if f.ctrl.Snapshot().State != StateIdle {
		t.Fatal("list should be exhausted")
	}

	res, err := f.ctrl.Undo(ctx)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if res.Outcome != OutcomeUndone || res.Position != 1 || !res.FavoriteChanged {
		t.Errorf("result = %+v", res)
	}
	if f.favs.store.Contains("b") {
		t.Error("undo should remove the inserted favorite")
	}
	snap := f.ctrl.Snapshot()
	if snap.State != StatePresenting || snap.Cursor != 1 {
		t.Errorf("snapshot after undo = %+v", snap)
	}

	if _, err := f.ctrl.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.ctrl.Snapshot().Cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}

	// Generate clears history.
	if _, err := f.ctrl.Decide(ctx, DecisionReject); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctrl.Generate(ctx, recommend.Request{}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ctrl.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() after Generate error = %v", err)
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(5, movies("a"), false)
	items, err := f.ctrl.Generate(ctx, recommend.Request{})
	if err != nil {
		t.Fatal(err)
	}
	items[0].Title = "changed"
	snap := f.ctrl.Snapshot()
	snap.Items[0].Title = "changed again"
	if got := f.ctrl.Snapshot().Items[0].Title; got != "Movie a" {
		t.Errorf("internal list mutated: %q", got)
	}
}
