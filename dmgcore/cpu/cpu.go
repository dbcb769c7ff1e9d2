// Package cpu implements the SM83 instruction decoder and execution loop:
// register file, ALU, a bit-partitioned opcode table (base and
// CB-prefixed), and the interrupt service routine.
package cpu

import (
	"github.com/ashcombe/dmgcore/dmgcore/addr"
	"github.com/ashcombe/dmgcore/dmgcore/mmu"
)

// CPU holds the SM83 register file and drives fetch-decode-execute one
// instruction at a time through Step.
type CPU struct {
	regs registers
	bus  *mmu.MMU

	ime       bool
	imePending bool
	halted    bool
}

// New returns a CPU with the post-boot-ROM register state: no cartridge's
// boot ROM ever runs, so execution always begins as if it had just
// finished, per the external register values.
func New(bus *mmu.MMU) *CPU {
	c := &CPU{bus: bus}
	c.regs.setAF(0x01B0)
	c.regs.setBC(0x0013)
	c.regs.setDE(0x00D8)
	c.regs.setHL(0x014D)
	c.regs.sp = 0xFFFE
	c.regs.pc = 0x0100
	return c
}

func (c *CPU) PC() uint16 { return c.regs.pc }
func (c *CPU) SP() uint16 { return c.regs.sp }
func (c *CPU) A() uint8   { return c.regs.a }
func (c *CPU) F() uint8   { return c.regs.f }

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.regs.pc)
	c.regs.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) pushStack(v uint16) {
	c.regs.sp--
	c.bus.Write(c.regs.sp, uint8(v>>8))
	c.regs.sp--
	c.bus.Write(c.regs.sp, uint8(v))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.regs.sp)
	c.regs.sp++
	high := c.bus.Read(c.regs.sp)
	c.regs.sp++
	return uint16(high)<<8 | uint16(low)
}

// Step runs one instruction (or services a pending interrupt, or stalls
// one cycle group while halted) and returns the number of cycles spent.
func (c *CPU) Step() int {
	if cycles := c.serviceInterrupt(); cycles > 0 {
		return cycles
	}

	if c.halted {
		return 4
	}

	imeArmed := c.imePending
	c.imePending = false

	opcode := c.fetch8()
	cycles := c.execute(opcode)

	if imeArmed {
		c.ime = true
	}
	return cycles
}

// serviceInterrupt clears halted whenever an enabled interrupt is pending,
// regardless of IME, and additionally runs the 6-step ISR sequence when
// IME is set: disable interrupts, clear the serviced IF bit, push PC, jump
// to the vector. The lowest interrupt bit index wins when several are
// pending simultaneously.
func (c *CPU) serviceInterrupt() int {
	ifReg := c.bus.Read(addr.IF)
	ie := c.bus.Read(addr.IE)
	pending := ifReg & ie & 0x1F

	if pending != 0 {
		c.halted = false
	}
	if !c.ime || pending == 0 {
		return 0
	}

	var bit uint8
	for bit = 0; bit < 5; bit++ {
		if pending&(1<<bit) != 0 {
			break
		}
	}

	c.ime = false
	c.bus.Write(addr.IF, ifReg&^(1<<bit))
	c.pushStack(c.regs.pc)
	c.regs.pc = addr.Interrupt(bit).Vector()
	return 20
}
