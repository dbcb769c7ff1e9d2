package cpu

// execute decodes and runs one base (non-CB) opcode, returning its cycle
// cost. Decoding follows the standard bit partition of the opcode byte
// into x=bits7-6, y=bits5-3, z=bits2-0, with p=y>>1 and q=y&1 used by the
// 16-bit-register groups; this table generalizes the regular instruction
// groups (loads, ALU, INC/DEC, rotates, jumps) instead of branching on
// each of the 256 opcode values individually. A handful of GB-specific
// slots (STOP, LD (a16),SP, LDH, ADD SP,e8, ...) replace what would be
// Z80 opcodes at the same position and are called out inline.
func (c *CPU) execute(opcode uint8) int {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.executeX0(opcode, y, z, p, q)
	case 1:
		return c.executeX1(y, z)
	case 2:
		return c.executeX2(y, z)
	default:
		return c.executeX3(opcode, y, z, p, q)
	}
}

func (c *CPU) executeX0(opcode, y, z, p, q uint8) int {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
			return 4
		case 1: // LD (a16),SP
			addr16 := c.fetch16()
			c.bus.Write(addr16, uint8(c.regs.sp))
			c.bus.Write(addr16+1, uint8(c.regs.sp>>8))
			return 20
		case 2: // STOP — a two-byte NOP in this model, no real halting
			c.fetch8()
			return 4
		case 3: // JR e8, unconditional
			offset := int8(c.fetch8())
			c.regs.pc = uint16(int32(c.regs.pc) + int32(offset))
			return 12
		default: // JR cc,e8
			offset := int8(c.fetch8())
			if c.condition(y - 4) {
				c.regs.pc = uint16(int32(c.regs.pc) + int32(offset))
				return 12
			}
			return 8
		}
	case 1:
		if q == 0 { // LD rp[p],n16
			c.setR16(p, c.fetch16())
			return 12
		}
		c.addHL(c.r16(p)) // ADD HL,rp[p]
		return 8
	case 2:
		addrHL := c.regs.hl()
		switch {
		case q == 0 && p == 0: // LD (BC),A
			c.bus.Write(c.regs.bc(), c.regs.a)
		case q == 0 && p == 1: // LD (DE),A
			c.bus.Write(c.regs.de(), c.regs.a)
		case q == 0 && p == 2: // LD (HL+),A
			c.bus.Write(addrHL, c.regs.a)
			c.regs.setHL(addrHL + 1)
		case q == 0 && p == 3: // LD (HL-),A
			c.bus.Write(addrHL, c.regs.a)
			c.regs.setHL(addrHL - 1)
		case q == 1 && p == 0: // LD A,(BC)
			c.regs.a = c.bus.Read(c.regs.bc())
		case q == 1 && p == 1: // LD A,(DE)
			c.regs.a = c.bus.Read(c.regs.de())
		case q == 1 && p == 2: // LD A,(HL+)
			c.regs.a = c.bus.Read(addrHL)
			c.regs.setHL(addrHL + 1)
		default: // LD A,(HL-)
			c.regs.a = c.bus.Read(addrHL)
			c.regs.setHL(addrHL - 1)
		}
		return 8
	case 3:
		if q == 0 {
			c.setR16(p, c.r16(p)+1) // INC rp[p]
		} else {
			c.setR16(p, c.r16(p)-1) // DEC rp[p]
		}
		return 8
	case 4: // INC r[y]
		c.setR8(y, c.inc8(c.r8(y)))
		if y == 6 {
			return 12
		}
		return 4
	case 5: // DEC r[y]
		c.setR8(y, c.dec8(c.r8(y)))
		if y == 6 {
			return 12
		}
		return 4
	case 6: // LD r[y],n8
		c.setR8(y, c.fetch8())
		if y == 6 {
			return 12
		}
		return 8
	default: // z == 7: accumulator/flag misc ops
		switch y {
		case 0:
			c.regs.a = c.rlc(c.regs.a)
			c.regs.setFlag(flagZ, false)
		case 1:
			c.regs.a = c.rrc(c.regs.a)
			c.regs.setFlag(flagZ, false)
		case 2:
			c.regs.a = c.rl(c.regs.a)
			c.regs.setFlag(flagZ, false)
		case 3:
			c.regs.a = c.rr(c.regs.a)
			c.regs.setFlag(flagZ, false)
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		default:
			c.ccf()
		}
		return 4
	}
}

func (c *CPU) executeX1(y, z uint8) int {
	if y == 6 && z == 6 { // HALT
		c.halted = true
		return 4
	}
	c.setR8(y, c.r8(z))
	if y == 6 || z == 6 {
		return 8
	}
	return 4
}

func (c *CPU) executeX2(y, z uint8) int {
	aluOps[y](c, c.r8(z))
	if z == 6 {
		return 8
	}
	return 4
}

func (c *CPU) executeX3(opcode, y, z, p, q uint8) int {
	switch z {
	case 0:
		switch y {
		case 0, 1, 2, 3: // RET cc
			if c.condition(y) {
				c.regs.pc = c.popStack()
				return 20
			}
			return 8
		case 4: // LDH (a8),A
			c.bus.Write(0xFF00+uint16(c.fetch8()), c.regs.a)
			return 12
		case 5: // ADD SP,e8
			c.regs.sp = c.addSPOffset(int8(c.fetch8()))
			return 16
		case 6: // LDH A,(a8)
			c.regs.a = c.bus.Read(0xFF00 + uint16(c.fetch8()))
			return 12
		default: // LD HL,SP+e8
			c.regs.setHL(c.addSPOffset(int8(c.fetch8())))
			return 12
		}
	case 1:
		if q == 0 { // POP rp2[p]
			c.setR16Stack(p, c.popStack())
			return 12
		}
		switch p {
		case 0: // RET
			c.regs.pc = c.popStack()
			return 16
		case 1: // RETI
			c.regs.pc = c.popStack()
			c.ime = true
			return 16
		case 2: // JP HL
			c.regs.pc = c.regs.hl()
			return 4
		default: // LD SP,HL
			c.regs.sp = c.regs.hl()
			return 8
		}
	case 2:
		switch y {
		case 0, 1, 2, 3: // JP cc,a16
			target := c.fetch16()
			if c.condition(y) {
				c.regs.pc = target
				return 16
			}
			return 12
		case 4: // LD (C),A
			c.bus.Write(0xFF00+uint16(c.regs.c), c.regs.a)
			return 8
		case 5: // LD (a16),A
			c.bus.Write(c.fetch16(), c.regs.a)
			return 16
		case 6: // LD A,(C)
			c.regs.a = c.bus.Read(0xFF00 + uint16(c.regs.c))
			return 8
		default: // LD A,(a16)
			c.regs.a = c.bus.Read(c.fetch16())
			return 16
		}
	case 3:
		switch y {
		case 0: // JP a16
			c.regs.pc = c.fetch16()
			return 16
		case 1: // CB prefix
			return c.executeCB(c.fetch8())
		case 6: // DI
			c.ime = false
			c.imePending = false
			return 4
		case 7: // EI — takes effect after the next instruction
			c.imePending = true
			return 4
		default: // undefined opcode: NOP, per the spec's release-behavior rule
			return 4
		}
	case 4:
		switch y {
		case 0, 1, 2, 3: // CALL cc,a16
			target := c.fetch16()
			if c.condition(y) {
				c.pushStack(c.regs.pc)
				c.regs.pc = target
				return 24
			}
			return 12
		default: // undefined opcode: NOP
			return 4
		}
	case 5:
		if q == 0 { // PUSH rp2[p]
			c.pushStack(c.r16Stack(p))
			return 16
		}
		if p == 0 { // CALL a16
			target := c.fetch16()
			c.pushStack(c.regs.pc)
			c.regs.pc = target
			return 24
		}
		return 4 // undefined opcode: NOP
	case 6: // ALU A,n8
		aluOps[y](c, c.fetch8())
		return 8
	default: // RST y*8
		c.pushStack(c.regs.pc)
		c.regs.pc = uint16(y) * 8
		return 16
	}
}
