package whacamole

import (
	"sync/atomic"
	"time"
)

// LinkState tracks the remote link across the dispatch/publisher boundary.
// Each field is a single-writer atomic flag: connected is set by the
// publisher (identify) and cleared by either side (disconnect byte,
// liveness timeout); identify is set by the dispatcher and taken by the
// publisher; lastCommand is written by the dispatcher and read by the
// publisher. Flags are never combined into a compound update.
type LinkState struct {
	connected   atomic.Bool
	identify    atomic.Bool
	lastCommand atomic.Int64 // unix nanos
}

func (l *LinkState) Connected() bool {
	return l.connected.Load()
}

func (l *LinkState) SetConnected(v bool) {
	l.connected.Store(v)
}

// Touch records command activity for liveness detection.
func (l *LinkState) Touch(t time.Time) {
	l.lastCommand.Store(t.UnixNano())
}

// LastCommand returns the time of the most recent command byte.
func (l *LinkState) LastCommand() time.Time {
	return time.Unix(0, l.lastCommand.Load())
}

// RequestIdentify flags that an identify handshake is pending.
func (l *LinkState) RequestIdentify() {
	l.identify.Store(true)
}

// TakeIdentify consumes a pending identify request. Returns false when
// none is pending.
func (l *LinkState) TakeIdentify() bool {
	return l.identify.CompareAndSwap(true, false)
}
