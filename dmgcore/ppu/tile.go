package ppu

import "github.com/ashcombe/dmgcore/dmgcore/bitutil"

// TileRow is one 2-byte, 8-pixel row of tile data in the Game Boy's
// bit-plane format: the low byte supplies bit 0 of each pixel's 2-bit color
// index, the high byte supplies bit 1. Bit 7 of each byte is the leftmost
// pixel.
type TileRow struct {
	Low  byte
	High byte
}

// Pixel returns the 2-bit color index (0-3) at column x (0 = leftmost).
func (t TileRow) Pixel(x int) uint8 {
	bitIndex := uint8(7 - x)
	var v uint8
	if bitutil.IsSet(bitIndex, t.Low) {
		v |= 1
	}
	if bitutil.IsSet(bitIndex, t.High) {
		v |= 2
	}
	return v
}
