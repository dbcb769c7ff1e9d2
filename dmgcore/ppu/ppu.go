// Package ppu implements the pixel-processing unit's mode state machine and
// scanline renderer: background, window, and sprite passes composited into
// a 160x144 framebuffer once per HBlank entry.
package ppu

import (
	"github.com/ashcombe/dmgcore/dmgcore/addr"
	"github.com/ashcombe/dmgcore/dmgcore/bitutil"
	"github.com/ashcombe/dmgcore/dmgcore/mmu"
)

// Mode is the PPU's current stage, matching STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank    Mode = 0
	ModeVBlank    Mode = 1
	ModeOAMSearch Mode = 2
	ModeTransfer  Mode = 3
)

const (
	oamSearchCycles = 80
	transferCycles  = 172
	hblankCycles    = 456 - oamSearchCycles - transferCycles
	scanlineCycles  = 456
	visibleLines    = 144
	totalLines      = 154
)

// PPU drives the LCD's mode state machine and renders into a FrameBuffer.
// It reads and writes its registers through the same MMU the CPU uses.
type PPU struct {
	mmu *mmu.MMU
	fb  *FrameBuffer

	mode       Mode
	line       int
	modeCycles int
}

func New(bus *mmu.MMU) *PPU {
	return &PPU{mmu: bus, fb: NewFrameBuffer(), mode: ModeOAMSearch}
}

func (p *PPU) Framebuffer() *FrameBuffer { return p.fb }

func (p *PPU) lcdEnabled() bool { return bitutil.IsSet(7, p.mmu.Read(addr.LCDC)) }

// Step advances the PPU by delta CPU cycles, the same delta the CPU just
// reported to the timer.
func (p *PPU) Step(delta int) {
	if !p.lcdEnabled() {
		p.resetForDisabledLCD()
		return
	}

	p.modeCycles += delta
	for p.modeCycles >= p.modeBudget() {
		p.modeCycles -= p.modeBudget()
		p.advance()
	}
}

func (p *PPU) resetForDisabledLCD() {
	p.line = 0
	p.modeCycles = 0
	p.mode = ModeHBlank
	p.mmu.Write(addr.LY, 0)
	p.mmu.Write(addr.STAT, p.mmu.Read(addr.STAT)&^uint8(0x03))
	p.fb.FillWhite()
}

func (p *PPU) modeBudget() int {
	if p.line >= visibleLines {
		return scanlineCycles
	}
	switch p.mode {
	case ModeOAMSearch:
		return oamSearchCycles
	case ModeTransfer:
		return transferCycles
	default:
		return hblankCycles
	}
}

func (p *PPU) advance() {
	if p.line >= visibleLines {
		p.nextLine()
		return
	}

	switch p.mode {
	case ModeOAMSearch:
		p.setMode(ModeTransfer)
	case ModeTransfer:
		p.renderScanline()
		if bitutil.IsSet(3, p.mmu.Read(addr.STAT)) {
			p.mmu.RequestInterrupt(addr.LCDStat)
		}
		p.setMode(ModeHBlank)
	default: // ModeHBlank
		p.nextLine()
	}
}

func (p *PPU) nextLine() {
	p.line++
	if p.line >= totalLines {
		p.line = 0
	}
	p.mmu.Write(addr.LY, uint8(p.line))
	p.checkLYC()

	if p.line == visibleLines {
		p.setMode(ModeVBlank)
		p.mmu.RequestInterrupt(addr.VBlank)
		if bitutil.IsSet(4, p.mmu.Read(addr.STAT)) {
			p.mmu.RequestInterrupt(addr.LCDStat)
		}
		return
	}
	if p.line < visibleLines {
		p.setMode(ModeOAMSearch)
	}
}

func (p *PPU) checkLYC() {
	stat := p.mmu.Read(addr.STAT)
	match := uint8(p.line) == p.mmu.Read(addr.LYC)
	stat = bitutil.SetTo(2, stat, match)
	p.mmu.Write(addr.STAT, stat)
	if match && bitutil.IsSet(6, stat) {
		p.mmu.RequestInterrupt(addr.LCDStat)
	}
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	stat := p.mmu.Read(addr.STAT)
	stat = (stat &^ 0x03) | uint8(m)
	p.mmu.Write(addr.STAT, stat)
}

// renderScanline composites background, window, and sprites for the
// current line into the framebuffer, in that order.
func (p *PPU) renderScanline() {
	lcdc := p.mmu.Read(addr.LCDC)
	line := p.line

	var bgIndex [Width]uint8 // raw 2-bit bg/window color index, for sprite priority

	if bitutil.IsSet(0, lcdc) {
		p.renderBackground(lcdc, line, &bgIndex)
	} else {
		for lx := 0; lx < Width; lx++ {
			p.fb.Set(lx, line, shadeARGB[0])
		}
	}

	if bitutil.IsSet(5, lcdc) && line >= int(p.mmu.Read(addr.WY)) {
		p.renderWindow(lcdc, line, &bgIndex)
	}

	p.renderSprites(lcdc, line, &bgIndex)
}

func (p *PPU) renderBackground(lcdc uint8, line int, bgIndex *[Width]uint8) {
	tileMapBase := addr.TileMap0
	if bitutil.IsSet(3, lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedMode := bitutil.IsSet(4, lcdc)

	scy := p.mmu.Read(addr.SCY)
	scx := p.mmu.Read(addr.SCX)
	bgp := p.mmu.Read(addr.BGP)

	y := uint8(line) + scy
	tileRow := int(y) / 8
	pixelRow := int(y) % 8

	for lx := 0; lx < Width; lx++ {
		x := uint8(lx) + scx
		tileCol := int(x) / 8
		pixelCol := int(x) % 8

		tileIndex := p.mmu.Read(tileMapBase + uint16(tileRow)*32 + uint16(tileCol))
		row := p.fetchTileRow(unsignedMode, tileIndex, pixelRow)
		colorIndex := row.Pixel(pixelCol)

		bgIndex[lx] = colorIndex
		p.fb.Set(lx, line, shade(bgp, colorIndex))
	}
}

func (p *PPU) renderWindow(lcdc uint8, line int, bgIndex *[Width]uint8) {
	tileMapBase := addr.TileMap0
	if bitutil.IsSet(6, lcdc) {
		tileMapBase = addr.TileMap1
	}
	unsignedMode := bitutil.IsSet(4, lcdc)

	wy := p.mmu.Read(addr.WY)
	wx := p.mmu.Read(addr.WX)
	bgp := p.mmu.Read(addr.BGP)

	windowRow := line - int(wy)
	tileRow := windowRow / 8
	pixelRow := windowRow % 8

	for lx := 0; lx < Width; lx++ {
		if lx+7 < int(wx) {
			continue
		}
		windowCol := lx + 7 - int(wx)
		tileCol := windowCol / 8
		pixelCol := windowCol % 8

		tileIndex := p.mmu.Read(tileMapBase + uint16(tileRow)*32 + uint16(tileCol))
		row := p.fetchTileRow(unsignedMode, tileIndex, pixelRow)
		colorIndex := row.Pixel(pixelCol)

		bgIndex[lx] = colorIndex
		p.fb.Set(lx, line, shade(bgp, colorIndex))
	}
}

func (p *PPU) renderSprites(lcdc uint8, line int, bgIndex *[Width]uint8) {
	if !bitutil.IsSet(1, lcdc) {
		return
	}

	height := 8
	if bitutil.IsSet(2, lcdc) {
		height = 16
	}

	obp0 := p.mmu.Read(addr.OBP0)
	obp1 := p.mmu.Read(addr.OBP1)

	for _, s := range p.spritesOnLine(line, height) {
		row := line - s.top()
		if s.yFlip() {
			row = height - 1 - row
		}

		tileIndex := s.tile
		if height == 16 {
			tileIndex &^= 0x01
			if row >= 8 {
				tileIndex |= 0x01
				row -= 8
			}
		}

		tileRow := p.fetchTileRow(true, tileIndex, row) // sprites always use 0x8000-based addressing

		palette := obp0
		if s.useOBP1() {
			palette = obp1
		}

		spriteX := int(s.x) - 8
		for col := 0; col < 8; col++ {
			screenX := spriteX + col
			if screenX < 0 || screenX >= Width {
				continue
			}

			pixelCol := col
			if s.xFlip() {
				pixelCol = 7 - col
			}

			colorIndex := tileRow.Pixel(pixelCol)
			if colorIndex == 0 {
				continue // sprite color 0 is always transparent
			}
			if s.behindBG() && bgIndex[screenX] != 0 {
				continue
			}

			p.fb.Set(screenX, line, shade(palette, colorIndex))
		}
	}
}

func (p *PPU) fetchTileRow(unsignedMode bool, tileIndex byte, row int) TileRow {
	var base uint16
	if unsignedMode {
		base = addr.TileData0 + uint16(tileIndex)*16
	} else {
		base = uint16(int(addr.TileData2) + int(int8(tileIndex))*16)
	}
	rowAddr := base + uint16(row)*2
	return TileRow{Low: p.mmu.Read(rowAddr), High: p.mmu.Read(rowAddr + 1)}
}

// shade maps a 2-bit color index through a palette byte to its ARGB shade.
func shade(palette, colorIndex uint8) uint32 {
	s := (palette >> (colorIndex * 2)) & 0x03
	return shadeARGB[s]
}
