// Package hal defines the board contract for the button/LED front panel
// and the fixed logical-to-physical pin mapping. Buttons read active-low;
// the mapping tables unscramble the board's wiring so the rest of the
// core works with logical indices 0..7.
package hal

const (
	// ButtonsReleased is the idle (active-low) button bitmask.
	ButtonsReleased byte = 0xFF

	// LEDsOff is the all-off output pattern.
	LEDsOff byte = 0x00
)

// Board is the indicator/input HAL. Read and write failures are treated
// as fatal by the game controller.
type Board interface {
	// ReadButtons returns the active-low button bitmask.
	ReadButtons() (byte, error)
	// WriteLEDs drives the indicator outputs.
	WriteLEDs(pattern byte) error
}

// Logical index -> physical pin. "Button 0" is wired to pin 6, and so on.
var btnPins = [8]uint{6, 4, 2, 1, 7, 5, 3, 0}
var ledPins = [8]uint{0, 2, 5, 7, 1, 3, 4, 6}

// Pressed reports whether logical button btn is held in the given
// active-low bitmask.
func Pressed(state byte, btn int) bool {
	if btn < 0 || btn >= len(btnPins) {
		return false
	}
	return state&(1<<btnPins[btn]) == 0
}

// AnyPressed reports whether any button is held.
func AnyPressed(state byte) bool {
	return state != ButtonsReleased
}

// LEDOn returns pattern with logical LED led lit.
func LEDOn(pattern byte, led int) byte {
	if led < 0 || led >= len(ledPins) {
		return pattern
	}
	return pattern | 1<<ledPins[led]
}

// LEDOff returns pattern with logical LED led dark.
func LEDOff(pattern byte, led int) byte {
	if led < 0 || led >= len(ledPins) {
		return pattern
	}
	return pattern &^ (1 << ledPins[led])
}

// PressMask returns the active-low bitmask with logical button btn held.
func PressMask(btn int) byte {
	if btn < 0 || btn >= len(btnPins) {
		return ButtonsReleased
	}
	return ButtonsReleased &^ (1 << btnPins[btn])
}

// LEDLit reports whether logical LED led is lit in pattern.
func LEDLit(pattern byte, led int) bool {
	if led < 0 || led >= len(ledPins) {
		return false
	}
	return pattern&(1<<ledPins[led]) != 0
}

// AllLEDs is the pattern with every indicator lit.
func AllLEDs() byte {
	var p byte
	for i := range ledPins {
		p = LEDOn(p, i)
	}
	return p
}
