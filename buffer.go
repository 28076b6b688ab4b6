package whacamole

// OfflineBuffer is a fixed-capacity ring of events retained while the
// remote link is down. Push on a full buffer evicts the logically oldest
// event, so the buffer always holds the most recent min(pushed, cap)
// events in arrival order. Single producer, single consumer (both the
// bridge publisher), so no locking.
type OfflineBuffer struct {
	events []Event
	tail   int // oldest
	count  int
}

func NewOfflineBuffer(capacity int) *OfflineBuffer {
	return &OfflineBuffer{events: make([]Event, capacity)}
}

func (b *OfflineBuffer) Len() int { return b.count }

func (b *OfflineBuffer) Cap() int { return len(b.events) }

// Push appends an event, evicting the oldest when full.
func (b *OfflineBuffer) Push(ev Event) {
	head := (b.tail + b.count) % len(b.events)
	b.events[head] = ev
	if b.count == len(b.events) {
		b.tail = (b.tail + 1) % len(b.events) // evict oldest
	} else {
		b.count++
	}
}

// Drain emits buffered events in arrival order, removing each one after
// its emit succeeds. On error the failed event and everything after it
// stay buffered. Draining an empty buffer is a no-op.
func (b *OfflineBuffer) Drain(emit func(Event) error) error {
	for b.count > 0 {
		if err := emit(b.events[b.tail]); err != nil {
			return err
		}
		b.events[b.tail] = nil
		b.tail = (b.tail + 1) % len(b.events)
		b.count--
	}
	return nil
}
