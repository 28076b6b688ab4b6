package whacamole

import (
	"context"
	"sync"
)

// Pauser toggles suspension of the game controller. The dispatcher sends
// a direct wake signal (capacity-1 channel, non-blocking, bypassing the
// command queue) and the pauser's run loop flips a gate. The controller
// observes the gate at every bounded sleep/poll boundary, so suspend
// latency is at most one poll step. The wire carries a single toggle
// signal; the effect depends only on remembered prior state.
type Pauser struct {
	wake chan struct{}

	mu     sync.Mutex
	paused bool
	gate   chan struct{} // non-nil while paused; closed on resume
}

func NewPauser() *Pauser {
	return &Pauser{wake: make(chan struct{}, 1)}
}

// Wake signals a pause toggle. Non-blocking; safe from the transport
// reader's goroutine.
func (p *Pauser) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run blocks on the wake signal and toggles on each one. Returns when
// ctx is cancelled.
func (p *Pauser) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Release any waiter so the controller can observe cancellation.
			p.mu.Lock()
			if p.paused {
				close(p.gate)
				p.gate = nil
				p.paused = false
			}
			p.mu.Unlock()
			return
		case <-p.wake:
			p.toggle()
		}
	}
}

func (p *Pauser) toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		close(p.gate)
		p.gate = nil
		p.paused = false
	} else {
		p.gate = make(chan struct{})
		p.paused = true
	}
}

func (p *Pauser) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Wait blocks while paused. Returns immediately when running, ctx.Err()
// on cancellation.
func (p *Pauser) Wait(ctx context.Context) error {
	p.mu.Lock()
	gate := p.gate
	p.mu.Unlock()

	if gate == nil {
		return ctx.Err()
	}
	select {
	case <-gate:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
