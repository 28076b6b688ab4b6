package whacamole_test

import (
	"context"
	"testing"
	"time"

	. "github.com/darragh0/emb-whacamole"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

// One wake signal suspends, the next resumes: a pure toggle.
func TestPauserToggle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPauser()
	go p.Run(ctx)

	if p.Paused() {
		t.Fatal("expected pauser to start running")
	}

	p.Wake()
	waitFor(t, p.Paused, "expected first wake to suspend")

	p.Wake()
	waitFor(t, func() bool { return !p.Paused() }, "expected second wake to resume")
}

// Wait blocks while paused and unblocks on resume.
func TestPauserGateBlocksWhilePaused(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPauser()
	go p.Run(ctx)

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("expected Wait to pass through while running, got %v", err)
	}

	p.Wake()
	waitFor(t, p.Paused, "expected wake to suspend")

	released := make(chan error, 1)
	go func() { released <- p.Wait(ctx) }()

	select {
	case err := <-released:
		t.Fatalf("Wait returned while paused: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	p.Wake()
	select {
	case err := <-released:
		if err != nil {
			t.Fatalf("expected nil from Wait after resume, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not unblock after resume")
	}
}

// Cancellation releases a paused waiter instead of wedging it.
func TestPauserCancelReleasesWaiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPauser()
	go p.Run(ctx)

	p.Wake()
	waitFor(t, p.Paused, "expected wake to suspend")

	released := make(chan error, 1)
	go func() { released <- p.Wait(ctx) }()

	cancel()
	select {
	case err := <-released:
		if err == nil {
			t.Fatal("expected a cancellation error from Wait")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not observe cancellation")
	}
}

// Wake never blocks, even when signalled repeatedly with no listener.
func TestPauserWakeNeverBlocks(t *testing.T) {
	p := NewPauser()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Wake()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wake blocked without a running pauser")
	}
}
