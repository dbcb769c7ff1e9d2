package cpu

// executeCB decodes a CB-prefixed opcode: x=0 is the rotate/shift family,
// x=1 is BIT, x=2 is RES, x=3 is SET, all operating on one of the eight
// r8 slots. The returned cycle count already includes the CB prefix byte.
func (c *CPU) executeCB(opcode uint8) int {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	onMemory := z == 6

	switch x {
	case 0:
		c.setR8(z, shiftOps[y](c, c.r8(z)))
		if onMemory {
			return 16
		}
		return 8
	case 1:
		c.bit(y, c.r8(z))
		if onMemory {
			return 12
		}
		return 8
	case 2:
		c.setR8(z, c.r8(z)&^(1<<y))
		if onMemory {
			return 16
		}
		return 8
	default:
		c.setR8(z, c.r8(z)|(1<<y))
		if onMemory {
			return 16
		}
		return 8
	}
}
