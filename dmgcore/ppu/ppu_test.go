package ppu

import (
	"testing"

	"github.com/ashcombe/dmgcore/dmgcore/addr"
	"github.com/ashcombe/dmgcore/dmgcore/mmu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPPU() (*PPU, *mmu.MMU) {
	bus := mmu.New()
	bus.Write(addr.LCDC, 0x91) // LCD on, BG on, unsigned tile data, tilemap 0x9800
	return New(bus), bus
}

func stepFrame(p *PPU, bus *mmu.MMU) {
	for i := 0; i < 70224; i += 4 {
		p.Step(4)
		bus.Tick(4)
	}
}

func TestModeDurationsPerVisibleScanline(t *testing.T) {
	p, bus := newTestPPU()

	assert.Equal(t, ModeOAMSearch, p.mode)
	p.Step(79)
	assert.Equal(t, ModeOAMSearch, p.mode)
	p.Step(1) // 80 total
	assert.Equal(t, ModeTransfer, p.mode)

	p.Step(171)
	assert.Equal(t, ModeTransfer, p.mode)
	p.Step(1) // 172 total
	assert.Equal(t, ModeHBlank, p.mode)

	p.Step(203)
	assert.Equal(t, ModeHBlank, p.mode)
	assert.Equal(t, 0, p.line)
	p.Step(1) // 204 total, 456 for the line
	assert.Equal(t, ModeOAMSearch, p.mode)
	assert.Equal(t, 1, p.line)
	_ = bus
}

func TestVBlankEntryRaisesInterruptAtLine144(t *testing.T) {
	p, bus := newTestPPU()

	for line := 0; line < 144; line++ {
		p.Step(456)
	}

	assert.Equal(t, ModeVBlank, p.mode)
	assert.Equal(t, 144, p.line)
	assert.True(t, bus.ReadBit(0, addr.IF), "VBlank interrupt (IF bit 0) should be set")
}

func TestLYCMatchSetsStatBitAndInterrupt(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.LYC, 1)
	bus.Write(addr.STAT, 0x40) // LYC interrupt enable (bit6)

	p.Step(456) // advance to line 1, where LY==LYC
	assert.True(t, bus.ReadBit(2, addr.STAT))
	assert.True(t, bus.ReadBit(1, addr.IF))
}

func TestHBlankInterruptFiresWhenEnabled(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.STAT, 0x08) // HBlank interrupt enable (bit3)

	p.Step(80 + 172) // reach Transfer->HBlank transition
	assert.True(t, bus.ReadBit(1, addr.IF))
}

func TestLCDDisabledForcesLineZeroAndWhiteFramebuffer(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.LCDC, 0x00) // LCD off

	p.Step(456)
	assert.Equal(t, byte(0), bus.Read(addr.LY))
	assert.Equal(t, uint32(0x00FFFFFF), p.Framebuffer().Get(0, 0))
}

func TestScenarioAllWhiteFrameWithIdentityPalette(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.BGP, 0xE4) // identity palette
	// VRAM (tilemap + tile data) is already zeroed by a fresh MMU.

	stepFrame(p, bus)

	fb := p.Framebuffer()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			require.Equal(t, uint32(0x00FFFFFF), fb.Get(x, y))
		}
	}
	assert.True(t, bus.ReadBit(0, addr.IF), "VBlank interrupt latches over the frame")
}

func TestSpriteOpaquePixelShadesThroughOBP0(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.LCDC, 0x93) // LCD+BG+sprites on, 8x8 sprites
	bus.Write(addr.OBP0, 0xE4)

	// Tile 1: a single fully-opaque row (color index 3) at row 0, transparent elsewhere.
	bus.Write(0x8010, 0xFF) // low byte for tile 1, row 0
	bus.Write(0x8011, 0xFF) // high byte for tile 1, row 0

	// Sprite 0 at OAM: y=16 (top of screen), x=8, tile 1, no flags.
	bus.Write(addr.OAMStart+0, 16)
	bus.Write(addr.OAMStart+1, 8)
	bus.Write(addr.OAMStart+2, 1)
	bus.Write(addr.OAMStart+3, 0)

	p.Step(456) // render line 0

	fb := p.Framebuffer()
	assert.Equal(t, uint32(0x00000000), fb.Get(0, 0), "color index 3 under identity-ish OBP0 shades black")
}
