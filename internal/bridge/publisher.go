// Package bridge drains the event queue and serializes events to the
// remote link as JSON lines. While the link is down events divert to a
// fixed-capacity offline ring buffer, flushed in order on the identify
// handshake. The publisher also ages the link out after a quiet period.
package bridge

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	whacamole "github.com/darragh0/emb-whacamole"
)

const (
	// recvTimeout bounds the wait for the next event before the loop
	// services identify and liveness checks again.
	recvTimeout = 10 * time.Millisecond

	// LivenessTimeout is the quiet period after which a previously
	// connected link is presumed gone. The agent heartbeats every 20s,
	// so this allows three missed heartbeats.
	LivenessTimeout = 60 * time.Second
)

// Publisher is the single consumer of the event queue and the single
// owner of the offline buffer.
type Publisher struct {
	events   <-chan whacamole.Event
	link     *whacamole.LinkState
	w        io.Writer
	buf      *whacamole.OfflineBuffer
	deviceID func() (string, error)
	now      func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithClock configures the Publisher's time source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// WithBuffer replaces the offline buffer (smaller capacities in tests).
func WithBuffer(buf *whacamole.OfflineBuffer) Option {
	return func(p *Publisher) {
		p.buf = buf
	}
}

// New creates a Publisher writing wire lines to w. deviceID supplies the
// identify acknowledgment id; a lookup failure suppresses the ack.
func New(events <-chan whacamole.Event, link *whacamole.LinkState, w io.Writer, deviceID func() (string, error), opts ...Option) *Publisher {
	p := &Publisher{
		events:   events,
		link:     link,
		w:        w,
		buf:      whacamole.NewOfflineBuffer(whacamole.OfflineBufferLen),
		deviceID: deviceID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Buffered returns the number of events held offline.
func (p *Publisher) Buffered() int {
	return p.buf.Len()
}

// Run drains events until ctx is cancelled. Each cycle services a
// pending identify handshake and the liveness check before receiving
// the next event with a short timeout.
func (p *Publisher) Run(ctx context.Context) {
	timer := time.NewTimer(recvTimeout)
	defer timer.Stop()

	for {
		p.serviceIdentify()
		p.checkLiveness()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(recvTimeout)

		select {
		case <-ctx.Done():
			return
		case ev, ok := <-p.events:
			if !ok {
				return
			}
			p.publish(ev)
		case <-timer.C:
			// Idle cycle; loop back to the handshake/liveness checks.
		}
	}
}

// publish sends live when connected, otherwise buffers. A write failure
// marks the link down and diverts the event to the buffer instead of
// losing it.
func (p *Publisher) publish(ev whacamole.Event) {
	if !p.link.Connected() {
		p.buf.Push(ev)
		return
	}
	if err := p.send(ev); err != nil {
		log.Printf("bridge: write failed, buffering: %v", err)
		p.link.SetConnected(false)
		p.buf.Push(ev)
	}
}

func (p *Publisher) send(ev whacamole.Event) error {
	line, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	return p.writeLine(line)
}

func (p *Publisher) writeLine(line []byte) error {
	if _, err := p.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write wire: %w", err)
	}
	return nil
}

// serviceIdentify handles a pending identify request: mark connected,
// reset the liveness clock, flush the offline buffer in FIFO order, then
// acknowledge. The flush completes before any fresh event is sent live,
// so buffered events are never interleaved out of order. An identity
// lookup failure suppresses the ack only.
func (p *Publisher) serviceIdentify() {
	if !p.link.TakeIdentify() {
		return
	}
	p.link.SetConnected(true)
	p.link.Touch(p.now())

	if err := p.buf.Drain(p.send); err != nil {
		// The identify flag stays consumed: a failed flush is not
		// retried until the remote sends a fresh identify byte.
		log.Printf("bridge: flush failed, remaining events stay buffered: %v", err)
		p.link.SetConnected(false)
		return
	}

	id, err := p.deviceID()
	if err != nil {
		return
	}
	line, err := encodeIdentify(id)
	if err != nil {
		return
	}
	if err := p.writeLine(line); err != nil {
		log.Printf("bridge: identify ack failed: %v", err)
		p.link.SetConnected(false)
	}
}

// checkLiveness marks the link down after a quiet period. Checked once
// per cycle, not on a dedicated timer.
func (p *Publisher) checkLiveness() {
	if !p.link.Connected() {
		return
	}
	if p.now().Sub(p.link.LastCommand()) > LivenessTimeout {
		log.Printf("bridge: no command for %s, marking disconnected", LivenessTimeout)
		p.link.SetConnected(false)
	}
}
