package whacamole

import "time"

// ActionKind classifies the side effect a wire byte produces.
type ActionKind int

const (
	ActNone ActionKind = iota
	ActPause
	ActEnqueue
	ActIdentify
	ActDisconnect
)

// Action describes the side effect for one wire byte. Cmd is meaningful
// only for ActEnqueue.
type Action struct {
	Kind ActionKind
	Cmd  Command
}

// Classify maps a wire command byte to its side effect. Pure function so
// the dispatch path reduces to classify-then-execute.
//
//	P        pause toggle (direct signal, bypasses the command queue)
//	R        reset
//	S        start
//	1..8     set level
//	I        identify request
//	D        disconnect (start offline buffering)
//	other    ignored
func Classify(b byte) Action {
	switch {
	case b == 'P':
		return Action{Kind: ActPause}
	case b == 'R':
		return Action{Kind: ActEnqueue, Cmd: Command{Type: CmdReset}}
	case b == 'S':
		return Action{Kind: ActEnqueue, Cmd: Command{Type: CmdStart}}
	case b >= '1' && b <= '8':
		return Action{Kind: ActEnqueue, Cmd: Command{Type: CmdSetLevel, Level: int(b - '0')}}
	case b == 'I':
		return Action{Kind: ActIdentify}
	case b == 'D':
		return Action{Kind: ActDisconnect}
	}
	return Action{Kind: ActNone}
}

// Dispatcher executes classified wire bytes. It runs on the transport
// reader's goroutine and never blocks: commands go through a non-blocking
// bounded send (a full queue drops the command), pause is a direct wake
// signal, and link flags are single-writer atomics.
type Dispatcher struct {
	commands chan Command
	pauser   *Pauser
	link     *LinkState
	now      func() time.Time
}

func NewDispatcher(link *LinkState, pauser *Pauser) *Dispatcher {
	return &Dispatcher{
		commands: make(chan Command, CmdQueueLen),
		pauser:   pauser,
		link:     link,
		now:      time.Now,
	}
}

// Commands is the bounded queue drained by the game controller.
func (d *Dispatcher) Commands() <-chan Command {
	return d.commands
}

// Dispatch handles one wire byte. Every byte except the disconnect
// command refreshes the liveness clock.
func (d *Dispatcher) Dispatch(b byte) {
	act := Classify(b)

	if act.Kind != ActDisconnect {
		d.link.Touch(d.now())
	}

	switch act.Kind {
	case ActPause:
		d.pauser.Wake()
	case ActEnqueue:
		select {
		case d.commands <- act.Cmd:
		default:
			// Queue full; the controller drains faster than commands
			// realistically arrive, so dropping here is acceptable.
		}
	case ActIdentify:
		d.link.RequestIdentify()
	case ActDisconnect:
		d.link.SetConnected(false)
	}
}
