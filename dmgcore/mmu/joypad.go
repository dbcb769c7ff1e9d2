package mmu

import "github.com/ashcombe/dmgcore/dmgcore/bitutil"

// Button identifies one of the eight physical Game Boy inputs.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// Joypad models the P1 register (0xFF00): bits 4-5 select which of two
// button groups bits 0-3 expose, active-low (0 = pressed). Selecting both
// groups ANDs them together; selecting neither reads all-released.
type Joypad struct {
	buttons  uint8 // A,B,Select,Start on bits 0-3
	dpad     uint8 // Right,Left,Up,Down on bits 0-3
	selector uint8 // last-written bits 4-5

	onInterrupt func()
}

func NewJoypad(onInterrupt func()) *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F, onInterrupt: onInterrupt}
}

func (j *Joypad) dpadSelected() bool    { return !bitutil.IsSet(4, j.selector) }
func (j *Joypad) buttonsSelected() bool { return !bitutil.IsSet(5, j.selector) }

// Read returns the live P1 value; bits 6-7 always read high.
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0) | (j.selector & 0x30)

	switch {
	case j.buttonsSelected() && j.dpadSelected():
		result |= j.buttons & j.dpad & 0x0F
	case j.buttonsSelected():
		result |= j.buttons & 0x0F
	case j.dpadSelected():
		result |= j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write updates the selector bits; bits 0-3 are read-only from software.
func (j *Joypad) Write(value uint8) {
	j.selector = value & 0x30
}

// SetButton updates a single input's pressed state and raises the joypad
// interrupt on a 1->0 transition of a line belonging to a selected group.
func (j *Joypad) SetButton(b Button, pressed bool) {
	var group *uint8
	var bit uint8

	switch b {
	case ButtonRight:
		group, bit = &j.dpad, 0
	case ButtonLeft:
		group, bit = &j.dpad, 1
	case ButtonUp:
		group, bit = &j.dpad, 2
	case ButtonDown:
		group, bit = &j.dpad, 3
	case ButtonA:
		group, bit = &j.buttons, 0
	case ButtonB:
		group, bit = &j.buttons, 1
	case ButtonSelect:
		group, bit = &j.buttons, 2
	case ButtonStart:
		group, bit = &j.buttons, 3
	default:
		return
	}

	wasPressed := !bitutil.IsSet(bit, *group)
	*group = bitutil.SetTo(bit, *group, !pressed)

	groupIsDpad := group == &j.dpad
	groupSelected := (groupIsDpad && j.dpadSelected()) || (!groupIsDpad && j.buttonsSelected())

	if pressed && !wasPressed && groupSelected && j.onInterrupt != nil {
		j.onInterrupt()
	}
}
