package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeExpirer struct {
	cutoff  time.Time
	calls   int
	expired int64
	err     error
}

func (f *fakeExpirer) ExpirePendingDeletionRequestsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.expired, f.err
}

func TestExpiryRunnerUsesMaxAgeCutoff(t *testing.T) {
	t.Parallel()

	store := &fakeExpirer{expired: 3}
	runner := &ExpiryRunner{Store: store, MaxAge: 48 * time.Hour}

	if err := runner.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("store called %d times, want 1", store.calls)
	}

	want := time.Now().Add(-48 * time.Hour)
	if diff := store.cutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff = %v, want about %v", store.cutoff, want)
	}
}

func TestExpiryRunnerPropagatesStoreError(t *testing.T) {
	t.Parallel()

	store := &fakeExpirer{err: errors.New("connection refused")}
	runner := &ExpiryRunner{Store: store, MaxAge: time.Hour}

	if err := runner.RunOnce(context.Background()); err == nil {
		t.Fatal("expected store error, got nil")
	}
}

func TestExpiryRunnerSkipsWithoutMaxAge(t *testing.T) {
	t.Parallel()

	store := &fakeExpirer{}
	runner := &ExpiryRunner{Store: store}

	if err := runner.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store called %d times, want 0", store.calls)
	}
}

type signalRunner struct {
	ran chan struct{}
}

func (r *signalRunner) RunOnce(ctx context.Context) error {
	select {
	case r.ran <- struct{}{}:
	default:
	}
	return nil
}

func TestSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	runner := &signalRunner{ran: make(chan struct{}, 1)}
	s := &Scheduler{Runner: runner, Interval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-runner.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not run the first pass")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestSchedulerIgnoresMissingRunner(t *testing.T) {
	t.Parallel()

	s := &Scheduler{Interval: time.Hour}
	// Must return instead of ticking forever.
	s.Run(context.Background())
}
