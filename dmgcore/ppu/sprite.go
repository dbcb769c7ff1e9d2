package ppu

import (
	"github.com/ashcombe/dmgcore/dmgcore/addr"
	"github.com/ashcombe/dmgcore/dmgcore/bitutil"
)

// spriteAttr is one 4-byte OAM entry.
type spriteAttr struct {
	y     byte
	x     byte
	tile  byte
	flags byte
}

func (s spriteAttr) yFlip() bool        { return bitutil.IsSet(6, s.flags) }
func (s spriteAttr) xFlip() bool        { return bitutil.IsSet(5, s.flags) }
func (s spriteAttr) useOBP1() bool      { return bitutil.IsSet(4, s.flags) }
func (s spriteAttr) behindBG() bool     { return bitutil.IsSet(7, s.flags) }
func (s spriteAttr) top() int           { return int(s.y) - 16 }

func (p *PPU) readSprite(index int) spriteAttr {
	base := addr.OAMStart + uint16(index*4)
	return spriteAttr{
		y:     p.mmu.Read(base),
		x:     p.mmu.Read(base + 1),
		tile:  p.mmu.Read(base + 2),
		flags: p.mmu.Read(base + 3),
	}
}

// spritesOnLine returns up to 10 OAM entries overlapping the given scanline,
// in OAM order, per the sprite-selection rule in §4.5.
func (p *PPU) spritesOnLine(line, height int) []spriteAttr {
	selected := make([]spriteAttr, 0, 10)
	for i := 0; i < 40 && len(selected) < 10; i++ {
		s := p.readSprite(i)
		top := s.top()
		if line >= top && line < top+height {
			selected = append(selected, s)
		}
	}
	return selected
}
