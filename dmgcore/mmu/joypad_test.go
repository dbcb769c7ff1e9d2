package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypadDefaultsToAllReleased(t *testing.T) {
	j := NewJoypad(nil)
	j.Write(0x00) // select both groups
	assert.Equal(t, byte(0xCF), j.Read())
}

func TestJoypadSelectDpadOnly(t *testing.T) {
	j := NewJoypad(nil)
	j.SetButton(ButtonUp, true) // clears bit2 of the dpad group

	j.Write(0x20) // bit4=0 selects dpad, bit5=1 deselects buttons
	assert.Equal(t, byte(0xE0)|0x0B, j.Read())
}

func TestJoypadANDsBothGroupsWhenBothSelected(t *testing.T) {
	j := NewJoypad(nil)
	j.SetButton(ButtonA, true)     // clears bit0 of buttons
	j.SetButton(ButtonRight, true) // clears bit0 of dpad
	j.Write(0x00)                  // both groups selected

	assert.Equal(t, byte(0xCE), j.Read(), "bit0 clear in both groups ANDs to clear")
}

func TestJoypadInterruptFiresOnPressOfSelectedGroup(t *testing.T) {
	fired := 0
	j := NewJoypad(func() { fired++ })
	j.Write(0x20) // dpad selected (bit4=0), buttons deselected (bit5=1)

	j.SetButton(ButtonA, true) // buttons group, not selected: no interrupt
	assert.Equal(t, 0, fired)

	j.SetButton(ButtonUp, true) // dpad group, selected: fires
	assert.Equal(t, 1, fired)

	j.SetButton(ButtonUp, true) // already pressed: no further transition
	assert.Equal(t, 1, fired)

	j.SetButton(ButtonUp, false)
	j.SetButton(ButtonUp, true) // re-press: fires again
	assert.Equal(t, 2, fired)
}

func TestJoypadNoGroupSelectedReadsAllReleased(t *testing.T) {
	j := NewJoypad(nil)
	j.SetButton(ButtonA, true)
	j.Write(0x30) // neither group selected
	assert.Equal(t, byte(0xFF), j.Read())
}
