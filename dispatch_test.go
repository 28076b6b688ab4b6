package whacamole_test

import (
	"testing"

	. "github.com/darragh0/emb-whacamole"
)

// Classify covers the full wire byte map.
func TestClassifyByteMap(t *testing.T) {
	cases := []struct {
		b    byte
		kind ActionKind
		cmd  Command
	}{
		{'P', ActPause, Command{}},
		{'R', ActEnqueue, Command{Type: CmdReset}},
		{'S', ActEnqueue, Command{Type: CmdStart}},
		{'1', ActEnqueue, Command{Type: CmdSetLevel, Level: 1}},
		{'5', ActEnqueue, Command{Type: CmdSetLevel, Level: 5}},
		{'8', ActEnqueue, Command{Type: CmdSetLevel, Level: 8}},
		{'I', ActIdentify, Command{}},
		{'D', ActDisconnect, Command{}},
		{'0', ActNone, Command{}},
		{'9', ActNone, Command{}},
		{'X', ActNone, Command{}},
		{'\n', ActNone, Command{}},
		{0x00, ActNone, Command{}},
	}

	for _, tc := range cases {
		act := Classify(tc.b)
		if act.Kind != tc.kind {
			t.Errorf("byte %q: expected kind %d, got %d", tc.b, tc.kind, act.Kind)
		}
		if act.Kind == ActEnqueue && act.Cmd != tc.cmd {
			t.Errorf("byte %q: expected command %+v, got %+v", tc.b, tc.cmd, act.Cmd)
		}
	}
}

// Commands are observed in the order dispatched (FIFO).
func TestDispatchFIFOOrder(t *testing.T) {
	link := &LinkState{}
	d := NewDispatcher(link, NewPauser())

	for _, b := range []byte{'R', 'S', '3'} {
		d.Dispatch(b)
	}

	want := []Command{
		{Type: CmdReset},
		{Type: CmdStart},
		{Type: CmdSetLevel, Level: 3},
	}
	for i, w := range want {
		select {
		case got := <-d.Commands():
			if got != w {
				t.Errorf("command %d: expected %+v, got %+v", i, w, got)
			}
		default:
			t.Fatalf("expected %d pending commands, got %d", len(want), i)
		}
	}
}

// A full command queue drops the incoming command; the producer never blocks.
func TestDispatchDropsWhenFull(t *testing.T) {
	link := &LinkState{}
	d := NewDispatcher(link, NewPauser())

	for i := 0; i < CmdQueueLen; i++ {
		d.Dispatch('S')
	}
	d.Dispatch('R') // queue full; must be dropped, not block

	count := 0
	for {
		select {
		case cmd := <-d.Commands():
			if cmd.Type == CmdReset {
				t.Error("overflow command should have been dropped")
			}
			count++
			continue
		default:
		}
		break
	}
	if count != CmdQueueLen {
		t.Errorf("expected %d queued commands, got %d", CmdQueueLen, count)
	}
}

// Every byte except the disconnect command refreshes the liveness clock.
func TestDispatchTouchesLiveness(t *testing.T) {
	link := &LinkState{}
	d := NewDispatcher(link, NewPauser())

	d.Dispatch('D')
	if link.LastCommand().UnixNano() != 0 {
		t.Error("disconnect byte must not refresh the liveness clock")
	}

	d.Dispatch('S')
	if link.LastCommand().UnixNano() == 0 {
		t.Error("expected command byte to refresh the liveness clock")
	}

	// Even ignored bytes count as link activity.
	link2 := &LinkState{}
	d2 := NewDispatcher(link2, NewPauser())
	d2.Dispatch('X')
	if link2.LastCommand().UnixNano() == 0 {
		t.Error("expected unrecognized byte to refresh the liveness clock")
	}
}

// Identify sets the flag for the publisher; disconnect clears connected.
func TestDispatchLinkFlags(t *testing.T) {
	link := &LinkState{}
	d := NewDispatcher(link, NewPauser())

	d.Dispatch('I')
	if !link.TakeIdentify() {
		t.Error("expected identify request to be pending")
	}
	if link.TakeIdentify() {
		t.Error("identify flag must be consumed by the first take")
	}

	link.SetConnected(true)
	d.Dispatch('D')
	if link.Connected() {
		t.Error("expected disconnect byte to clear connected")
	}
}

// An unrecognized byte leaves all state unchanged.
func TestDispatchIgnoresUnknownBytes(t *testing.T) {
	link := &LinkState{}
	link.SetConnected(true)
	d := NewDispatcher(link, NewPauser())

	d.Dispatch('z')

	select {
	case cmd := <-d.Commands():
		t.Errorf("unexpected command %+v from unknown byte", cmd)
	default:
	}
	if !link.Connected() {
		t.Error("unknown byte must not change connection state")
	}
	if link.TakeIdentify() {
		t.Error("unknown byte must not request identify")
	}
}
