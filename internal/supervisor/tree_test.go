// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moodmate/internal/config"
)

// testService counts starts and fails its first failures runs.
type testService struct {
	name     string
	failures int32
	starts   atomic.Int32
	started  chan struct{}
}

func newTestService(name string, failures int32) *testService {
	return &testService{name: name, failures: failures, started: make(chan struct{}, 16)}
}

func (s *testService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	if n <= s.failures {
		return errors.New("induced failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *testService) String() string { return s.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor should not be nil")
	}
	if got := tree.Config(); got != DefaultTreeConfig() {
		t.Errorf("Config() = %+v, want defaults %+v", got, DefaultTreeConfig())
	}
}

func TestNewSupervisorTree_NilLogger(t *testing.T) {
	if _, err := NewSupervisorTree(nil, DefaultTreeConfig()); err != nil {
		t.Fatalf("NewSupervisorTree(nil): %v", err)
	}
}

func TestTreeConfigFrom(t *testing.T) {
	got := TreeConfigFrom(config.SupervisorConfig{
		FailureThreshold: 3,
		FailureDecay:     10,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  2 * time.Second,
	})
	want := TreeConfig{FailureThreshold: 3, FailureDecay: 10, FailureBackoff: time.Second, ShutdownTimeout: 2 * time.Second}
	if got != want {
		t.Errorf("TreeConfigFrom = %+v, want %+v", got, want)
	}
}

func TestSupervisorTree_StartsEveryLayer(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	data := newTestService("data", 0)
	sess := newTestService("session", 0)
	api := newTestService("api", 0)
	tree.AddDataService(data)
	tree.AddSessionService(sess)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	for _, s := range []*testService{data, sess, api} {
		select {
		case <-s.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("service %s was not started", s.name)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	flaky := newTestService("flaky", 2)
	tree.AddSessionService(flaky)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(3 * time.Second)
	for flaky.starts.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := flaky.starts.Load(); got < 3 {
		t.Fatalf("starts = %d, want at least 3", got)
	}

	cancel()
	<-errCh
}

func TestSupervisorTree_RemoveSessionService(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}

	svc := newTestService("sweeper", 0)
	token := tree.AddSessionService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service was not started")
	}

	if err := tree.RemoveSessionService(token); err != nil {
		t.Errorf("RemoveSessionService: %v", err)
	}
	if err := tree.RemoveSessionService(suture.ServiceToken{}); err == nil {
		t.Error("removing a token from another supervisor should fail")
	}

	cancel()
	<-errCh
}
