// Package game implements the session controller: a five-state machine
// (Idle, LevelIntro, PopActive, LevelComplete, SessionEnd) that owns
// lives, level, RNG state, and the pending-command flags, drives the
// board through levels and pops, and emits events.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	whacamole "github.com/darragh0/emb-whacamole"
	"github.com/darragh0/emb-whacamole/internal/hal"
)

// State identifies the controller's position in the session loop.
type State int

const (
	StateIdle State = iota
	StateLevelIntro
	StatePopActive
	StateLevelComplete
	StateSessionEnd
)

// session is the per-session record, reset to initial values at the
// start of every session. Owned exclusively by the controller.
type session struct {
	lives    int
	levelIdx int
	rng      uint32
}

// pending holds the request flags set as a side effect of draining the
// command queue. Owned and mutated only by the controller.
type pending struct {
	levelChange    bool
	requestedLevel int // 0-based
	reset          bool
	start          bool
}

// interruption describes a drained command that redirects the session.
type interruption int

const (
	intNone interruption = iota
	intReset
	intJump
)

// Controller runs the game state machine. It blocks only on short,
// bounded sleeps through its Clock and on the pause gate at each sleep
// boundary, never on unbounded I/O.
type Controller struct {
	board    hal.Board
	commands <-chan whacamole.Command
	events   chan<- whacamole.Event
	pauser   *whacamole.Pauser
	clock    Clock

	state   atomic.Int32
	session session
	pending pending
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock configures the Controller with a custom clock.
func WithClock(clk Clock) Option {
	return func(c *Controller) {
		c.clock = clk
	}
}

// WithPauser configures the Controller to observe a pause gate.
func WithPauser(p *whacamole.Pauser) Option {
	return func(c *Controller) {
		c.pauser = p
	}
}

func New(board hal.Board, commands <-chan whacamole.Command, events chan<- whacamole.Event, opts ...Option) *Controller {
	c := &Controller{
		board:    board,
		commands: commands,
		events:   events,
		clock:    systemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	c.state.Store(int32(s))
}

// Run loops sessions until ctx is cancelled or the board fails. Board
// read/write errors are fatal and returned; cancellation returns nil.
func (c *Controller) Run(ctx context.Context) error {
	for {
		c.setState(StateIdle)
		if err := c.awaitStart(ctx); err != nil {
			return finish(err)
		}
		if err := c.runSession(ctx); err != nil {
			return finish(err)
		}
		if err := c.step(ctx, interSessionDelay); err != nil {
			return finish(err)
		}
	}
}

func finish(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// step is the single scheduling boundary: it observes the pause gate
// (and with it cancellation), then sleeps d. Suspend latency is bounded
// by the longest d passed here.
func (c *Controller) step(ctx context.Context, d time.Duration) error {
	if c.pauser != nil {
		if err := c.pauser.Wait(ctx); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		c.clock.Sleep(d)
	}
	return nil
}

// drainCommands empties the command queue, folding each command into the
// pending flags. A SetLevel outside 1..LevelCount is ignored.
func (c *Controller) drainCommands() {
	for {
		select {
		case cmd := <-c.commands:
			switch cmd.Type {
			case whacamole.CmdReset:
				c.pending.reset = true
			case whacamole.CmdStart:
				c.pending.start = true
			case whacamole.CmdSetLevel:
				if cmd.Level >= 1 && cmd.Level <= whacamole.LevelCount {
					c.pending.levelChange = true
					c.pending.requestedLevel = cmd.Level - 1
				}
			}
		default:
			return
		}
	}
}

// checkRedirect drains the queue and consumes a pending reset or level
// switch. Reset wins over a level switch and clears it.
func (c *Controller) checkRedirect() (interruption, int) {
	c.drainCommands()
	if c.pending.reset {
		c.pending.reset = false
		c.pending.levelChange = false
		return intReset, 0
	}
	if c.pending.levelChange {
		c.pending.levelChange = false
		return intJump, c.pending.requestedLevel
	}
	return intNone, 0
}

// awaitStart idles with a chase animation until a Start command or any
// button press. A Reset while idle re-arms defaults and stays idle; a
// SetLevel while idle becomes the starting level.
func (c *Controller) awaitStart(ctx context.Context) error {
	for {
		for led := 0; led < whacamole.ButtonCount; led++ {
			if err := c.writeLEDs(hal.LEDOn(0, led)); err != nil {
				return err
			}
			for i := 0; i < chaseSteps; i++ {
				if err := c.step(ctx, chaseStep); err != nil {
					return err
				}
				c.drainCommands()
				if c.pending.reset {
					c.pending.reset = false
					c.pending.levelChange = false
				}
				if c.pending.start {
					c.pending.start = false
					return c.writeLEDs(hal.LEDsOff)
				}
				state, err := c.board.ReadButtons()
				if err != nil {
					return fmt.Errorf("read buttons: %w", err)
				}
				if hal.AnyPressed(state) {
					return c.writeLEDs(hal.LEDsOff)
				}
			}
		}
	}
}

// runSession plays one session from SessionStart to SessionEnd.
func (c *Controller) runSession(ctx context.Context) error {
	c.session = session{lives: whacamole.StartingLives, rng: rngSeed}
	if c.pending.levelChange {
		c.session.levelIdx = c.pending.requestedLevel
		c.pending.levelChange = false
	}
	c.emit(whacamole.SessionStart{})

	for {
		res, err := c.runLevel(ctx)
		if err != nil {
			return err
		}

		switch res.outcome {
		case levelReset:
			c.setState(StateSessionEnd)
			c.emit(whacamole.SessionEnd{Won: false})
			return c.writeLEDs(hal.LEDsOff)

		case levelJump:
			c.session.levelIdx = res.jumpTo

		case levelLost:
			c.setState(StateSessionEnd)
			c.emit(whacamole.SessionEnd{Won: false})
			if err := c.step(ctx, endFeedbackDelay); err != nil {
				return err
			}
			return c.flash(ctx, hal.AllLEDs(), 3, 500*time.Millisecond)

		case levelDone:
			// A level switch requested mid-level replaces the natural
			// successor; a reset aborts.
			switch kind, target := c.checkRedirect(); kind {
			case intReset:
				c.setState(StateSessionEnd)
				c.emit(whacamole.SessionEnd{Won: false})
				return c.writeLEDs(hal.LEDsOff)
			case intJump:
				c.session.levelIdx = target
			default:
				c.session.levelIdx++
			}
			if c.session.levelIdx == whacamole.LevelCount {
				c.setState(StateSessionEnd)
				c.emit(whacamole.SessionEnd{Won: true})
				if err := c.step(ctx, endFeedbackDelay); err != nil {
					return err
				}
				return c.flash(ctx, hal.AllLEDs(), 100, 50*time.Millisecond)
			}
		}
	}
}

type levelOutcome int

const (
	levelDone levelOutcome = iota
	levelLost
	levelReset
	levelJump
)

type levelResult struct {
	outcome levelOutcome
	jumpTo  int
}

// runLevel plays the intro animation and the level's pops. Redirect
// checks run between every bounded sub-step so command latency stays
// within one debounce/poll step.
func (c *Controller) runLevel(ctx context.Context) (levelResult, error) {
	lvl := c.session.levelIdx

	c.setState(StateLevelIntro)
	if err := c.showLevel(ctx, lvl); err != nil {
		return levelResult{}, err
	}

	c.setState(StatePopActive)
	for pop := 0; pop < PopsPerLevel; pop++ {
		delay := popDelayBase + time.Duration(nextRand(&c.session.rng)%popDelaySpan)*time.Millisecond
		if err := c.step(ctx, delay); err != nil {
			return levelResult{}, err
		}

		res, err := c.runPop(ctx, lvl)
		if err != nil {
			return levelResult{}, err
		}
		if res.interrupted == intReset {
			return levelResult{outcome: levelReset}, nil
		}
		if res.interrupted == intJump {
			return levelResult{outcome: levelJump, jumpTo: res.jumpTo}, nil
		}

		if res.outcome != whacamole.PopHit {
			c.session.lives--
		}
		c.emit(whacamole.PopResult{
			Mole:       res.mole,
			Outcome:    res.outcome,
			ReactionMS: uint(res.reaction / time.Millisecond),
			Lives:      c.session.lives,
			Level:      lvl + 1,
			Pop:        pop + 1,
			PopsTotal:  PopsPerLevel,
		})
		if res.outcome != whacamole.PopHit {
			if err := c.flash(ctx, hal.AllLEDs(), 1, 100*time.Millisecond); err != nil {
				return levelResult{}, err
			}
			if c.session.lives == 0 {
				return levelResult{outcome: levelLost}, nil
			}
		}
	}

	c.setState(StateLevelComplete)
	c.emit(whacamole.LevelComplete{Level: lvl + 1})
	return levelResult{outcome: levelDone}, nil
}

type popResult struct {
	mole        int
	outcome     whacamole.PopOutcome
	reaction    time.Duration
	interrupted interruption
	jumpTo      int
}

// runPop executes one pop: debounce until all buttons release (bounded),
// arm a random target, then poll at a fixed interval until a press or
// the level duration elapses. Reaction time is the polled elapsed time,
// the full duration on Late.
func (c *Controller) runPop(ctx context.Context, lvlIdx int) (popResult, error) {
	duration := popDurations[lvlIdx]

	var settled time.Duration
	for {
		state, err := c.board.ReadButtons()
		if err != nil {
			return popResult{}, fmt.Errorf("read buttons: %w", err)
		}
		if !hal.AnyPressed(state) || settled >= debounceMax {
			break
		}
		if err := c.step(ctx, debounceStep); err != nil {
			return popResult{}, err
		}
		settled += debounceStep
	}

	if kind, target := c.checkRedirect(); kind != intNone {
		return popResult{interrupted: kind, jumpTo: target}, nil
	}

	target := int(nextRand(&c.session.rng) % whacamole.ButtonCount)
	if err := c.writeLEDs(hal.LEDOn(0, target)); err != nil {
		return popResult{}, err
	}

	var elapsed time.Duration
	for elapsed < duration {
		state, err := c.board.ReadButtons()
		if err != nil {
			return popResult{}, fmt.Errorf("read buttons: %w", err)
		}
		if hal.AnyPressed(state) {
			if err := c.writeLEDs(hal.LEDsOff); err != nil {
				return popResult{}, err
			}
			out := whacamole.PopMiss
			if hal.Pressed(state, target) {
				out = whacamole.PopHit
			}
			return popResult{mole: target, outcome: out, reaction: elapsed}, nil
		}

		if kind, jump := c.checkRedirect(); kind != intNone {
			if err := c.writeLEDs(hal.LEDsOff); err != nil {
				return popResult{}, err
			}
			return popResult{interrupted: kind, jumpTo: jump}, nil
		}

		if err := c.step(ctx, pollInterval); err != nil {
			return popResult{}, err
		}
		elapsed += pollInterval
	}

	if err := c.writeLEDs(hal.LEDsOff); err != nil {
		return popResult{}, err
	}
	return popResult{mole: target, outcome: whacamole.PopLate, reaction: duration}, nil
}

// showLevel plays the level intro: the first lvlIdx+1 indicators hold,
// then flash three times.
func (c *Controller) showLevel(ctx context.Context, lvlIdx int) error {
	var pattern byte
	for i := 0; i <= lvlIdx; i++ {
		pattern = hal.LEDOn(pattern, i)
	}
	if err := c.writeLEDs(pattern); err != nil {
		return err
	}
	if err := c.step(ctx, time.Second); err != nil {
		return err
	}
	if err := c.flash(ctx, pattern, 3, 500*time.Millisecond); err != nil {
		return err
	}
	return c.step(ctx, 500*time.Millisecond)
}

// flash toggles pattern on/off the given number of times.
func (c *Controller) flash(ctx context.Context, pattern byte, times int, interval time.Duration) error {
	for i := 0; i < times; i++ {
		if err := c.writeLEDs(pattern); err != nil {
			return err
		}
		if err := c.step(ctx, interval); err != nil {
			return err
		}
		if err := c.writeLEDs(hal.LEDsOff); err != nil {
			return err
		}
		if err := c.step(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) writeLEDs(pattern byte) error {
	if err := c.board.WriteLEDs(pattern); err != nil {
		return fmt.Errorf("write leds: %w", err)
	}
	return nil
}

// emit sends an event without ever blocking the real-time path; a full
// event queue drops the event.
func (c *Controller) emit(ev whacamole.Event) {
	select {
	case c.events <- ev:
	default:
	}
}
