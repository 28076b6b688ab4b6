package hal

import "sync"

// MemBoard is an in-memory Board for tests and the console simulator.
// Button state is mutated by Press/Release (or a ReadHook for scripted
// tests); LED writes are retained for inspection and optionally mirrored
// through OnWrite.
type MemBoard struct {
	mu      sync.Mutex
	buttons byte
	leds    byte

	// ReadHook, when set, replaces the stored button state for each read.
	ReadHook func() (byte, error)
	// WriteErr, when set, is returned by WriteLEDs.
	WriteErr error
	// OnWrite, when set, observes every successful LED write.
	OnWrite func(pattern byte)
}

func NewMemBoard() *MemBoard {
	return &MemBoard{buttons: ButtonsReleased}
}

func (m *MemBoard) ReadButtons() (byte, error) {
	m.mu.Lock()
	hook := m.ReadHook
	state := m.buttons
	m.mu.Unlock()

	if hook != nil {
		return hook()
	}
	return state, nil
}

func (m *MemBoard) WriteLEDs(pattern byte) error {
	m.mu.Lock()
	err := m.WriteErr
	if err == nil {
		m.leds = pattern
	}
	onWrite := m.OnWrite
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if onWrite != nil {
		onWrite(pattern)
	}
	return nil
}

// Press holds logical button btn down (active low).
func (m *MemBoard) Press(btn int) {
	if btn < 0 || btn >= len(btnPins) {
		return
	}
	m.mu.Lock()
	m.buttons &^= 1 << btnPins[btn]
	m.mu.Unlock()
}

// Release lets logical button btn up.
func (m *MemBoard) Release(btn int) {
	if btn < 0 || btn >= len(btnPins) {
		return
	}
	m.mu.Lock()
	m.buttons |= 1 << btnPins[btn]
	m.mu.Unlock()
}

// ReleaseAll lets every button up.
func (m *MemBoard) ReleaseAll() {
	m.mu.Lock()
	m.buttons = ButtonsReleased
	m.mu.Unlock()
}

// LEDs returns the last written output pattern.
func (m *MemBoard) LEDs() byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leds
}
