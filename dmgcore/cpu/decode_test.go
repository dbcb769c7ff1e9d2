package cpu

import (
	"testing"

	"github.com/ashcombe/dmgcore/dmgcore/mmu"
	"github.com/stretchr/testify/assert"
)

func TestLDRegisterToRegister(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0x47) // LD B,A
	c.regs.a = 0x99

	cycles := c.Step()

	assert.Equal(t, uint8(0x99), c.regs.b)
	assert.Equal(t, 4, cycles)
}

func TestLDFromMemoryCosts8Cycles(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0x7E) // LD A,(HL)
	c.regs.setHL(0xC100)
	bus.Write(0xC100, 0x7A)

	cycles := c.Step()

	assert.Equal(t, uint8(0x7A), c.regs.a)
	assert.Equal(t, 8, cycles)
}

func TestINCMemoryOperandCosts12Cycles(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0x34) // INC (HL)
	c.regs.setHL(0xC100)
	bus.Write(0xC100, 0x0F)

	cycles := c.Step()

	assert.Equal(t, uint8(0x10), bus.Read(0xC100))
	assert.True(t, c.regs.flag(flagH))
	assert.Equal(t, 12, cycles)
}

func TestPushPopRoundTrip(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xC5, 0xD1) // PUSH BC; POP DE
	c.regs.setBC(0xBEEF)

	cyclesPush := c.Step()
	cyclesPop := c.Step()

	assert.Equal(t, uint16(0xBEEF), c.regs.de())
	assert.Equal(t, 16, cyclesPush)
	assert.Equal(t, 12, cyclesPop)
}

func TestConditionalJumpCyclesDependOnOutcome(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xC2, 0x34, 0x12) // JP NZ,0x1234
	c.regs.setFlag(flagZ, false)

	cycles := c.Step()

	assert.Equal(t, uint16(0x1234), c.regs.pc)
	assert.Equal(t, 16, cycles)
}

func TestConditionalJumpNotTakenFallsThrough(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xC2, 0x34, 0x12) // JP NZ,0x1234
	c.regs.setFlag(flagZ, true)
	startPC := c.regs.pc

	cycles := c.Step()

	assert.Equal(t, startPC+3, c.regs.pc)
	assert.Equal(t, 12, cycles)
}

func TestCallAndRetRoundTrip(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xCD, 0x00, 0xD0) // CALL 0xD000
	bus.Write(0xD000, 0xC9)        // RET
	returnAddr := c.regs.pc + 3

	callCycles := c.Step()
	assert.Equal(t, uint16(0xD000), c.regs.pc)
	assert.Equal(t, 24, callCycles)

	retCycles := c.Step()
	assert.Equal(t, returnAddr, c.regs.pc)
	assert.Equal(t, 16, retCycles)
}

func TestCBBitTestOnRegister(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xCB, 0x40) // BIT 0,B
	c.regs.b = 0x00

	cycles := c.Step()

	assert.True(t, c.regs.flag(flagZ))
	assert.True(t, c.regs.flag(flagH))
	assert.False(t, c.regs.flag(flagN))
	assert.Equal(t, 8, cycles)
}

func TestCBSetAndResOnMemoryCost16Cycles(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xCB, 0xFE) // SET 7,(HL)
	c.regs.setHL(0xC100)
	bus.Write(0xC100, 0x00)

	cycles := c.Step()

	assert.Equal(t, uint8(0x80), bus.Read(0xC100))
	assert.Equal(t, 16, cycles)
}

func TestSWAPViaOpcode(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xCB, 0x37) // SWAP A
	c.regs.a = 0x4B

	cycles := c.Step()

	assert.Equal(t, uint8(0xB4), c.regs.a)
	assert.Equal(t, 8, cycles)
}

func TestRSTPushesReturnAddressAndJumpsToVector(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xEF) // RST 0x28
	returnAddr := c.regs.pc + 1

	cycles := c.Step()

	assert.Equal(t, uint16(0x0028), c.regs.pc)
	assert.Equal(t, 16, cycles)
	assert.Equal(t, returnAddr, c.popStack())
}

func TestLDHRoundTrip(t *testing.T) {
	bus := mmu.New()
	c := New(bus)
	load(c, bus, 0xE0, 0x80, 0xF0, 0x80) // LDH (0x80),A ; LDH A,(0x80)
	c.regs.a = 0x5A

	c.Step()
	c.regs.a = 0
	c.Step()

	assert.Equal(t, uint8(0x5A), c.regs.a)
}
