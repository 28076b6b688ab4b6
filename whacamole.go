// Package whacamole is the control core of the whac-a-mole appliance: the
// shared data model, the command dispatch path from the remote link, the
// bounded command/event channels, the offline event buffer, and the pause
// controller. Everything here is pure coordination logic; the game state
// machine lives in internal/game and the wire publisher in internal/bridge.
package whacamole

const (
	// ButtonCount is the number of physical buttons (and indicator LEDs).
	ButtonCount = 8

	// LevelCount is the number of levels in a session.
	LevelCount = 8

	// StartingLives is the lives a session begins with.
	StartingLives = 5

	// CmdQueueLen bounds pending commands between the dispatcher and the
	// game controller. The dispatcher never blocks; a full queue drops the
	// incoming command.
	CmdQueueLen = 8

	// EventQueueLen bounds events between the game controller and the
	// bridge publisher. The controller never blocks; a full queue drops
	// the event.
	EventQueueLen = 32

	// OfflineBufferLen is the capacity of the offline event ring buffer.
	OfflineBufferLen = 100
)
