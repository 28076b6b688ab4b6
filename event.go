package whacamole

type CommandType int

const (
	CmdSetLevel CommandType = iota
	CmdReset
	CmdStart
)

// Command is sent from the dispatcher to the game controller.
// Level is meaningful only for CmdSetLevel and is 1-based (1..LevelCount).
type Command struct {
	Type  CommandType
	Level int
}

// PopOutcome is the result of a single pop.
type PopOutcome int

const (
	PopHit PopOutcome = iota
	PopMiss
	PopLate
)

func (o PopOutcome) String() string {
	switch o {
	case PopHit:
		return "hit"
	case PopMiss:
		return "miss"
	case PopLate:
		return "late"
	}
	return "unknown"
}

// Event is a tagged variant produced by the game controller and consumed
// by the bridge publisher. The serialization boundary type-switches over
// the concrete variants exhaustively.
type Event interface {
	isEvent()
}

// SessionStart marks the beginning of a session.
type SessionStart struct{}

// PopResult reports the outcome of one pop.
type PopResult struct {
	Mole       int // 0..ButtonCount-1
	Outcome    PopOutcome
	ReactionMS uint
	Lives      int
	Level      int // 1-based
	Pop        int // 1-based index within the level
	PopsTotal  int
}

// LevelComplete marks a level finished with lives remaining.
type LevelComplete struct {
	Level int // 1-based
}

// SessionEnd marks the end of a session.
type SessionEnd struct {
	Won bool
}

func (SessionStart) isEvent()  {}
func (PopResult) isEvent()     {}
func (LevelComplete) isEvent() {}
func (SessionEnd) isEvent()    {}
