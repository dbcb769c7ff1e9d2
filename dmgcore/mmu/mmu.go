// Package mmu implements the memory map: it dispatches reads and writes to
// the cartridge (via its MBC), video RAM, work RAM, OAM, I/O registers
// (routed to the timer, joypad, and interrupt lines), high RAM, and the
// interrupt-enable byte. The PPU and CPU both hold a reference to an MMU and
// read/write through it rather than the MMU reaching into them.
package mmu

import (
	"fmt"
	"log/slog"

	"github.com/ashcombe/dmgcore/dmgcore/addr"
	"github.com/ashcombe/dmgcore/dmgcore/bitutil"
	"github.com/ashcombe/dmgcore/dmgcore/cartridge"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// MMU owns the flat 64KiB address space and routes memory-mapped I/O to the
// peripherals that implement it.
type MMU struct {
	mbc    cartridge.MBC
	memory []byte

	regionMap [256]region

	Timer  *Timer
	Joypad *Joypad

	apu [0xFF3F - 0xFF10 + 1]byte // audio registers are stored, never synthesized
}

// New creates an MMU with no cartridge loaded: RAM is zeroed and ROM/ExtRAM
// reads return 0xFF, as on real hardware with an empty cartridge slot.
func New() *MMU {
	m := &MMU{
		memory: make([]byte, 0x10000),
	}
	m.Timer = NewTimer(func() { m.RequestInterrupt(addr.Timer) })
	m.Joypad = NewJoypad(func() { m.RequestInterrupt(addr.Joypad) })
	m.initRegionMap()
	return m
}

// NewWithCartridge creates an MMU with a cartridge's MBC wired into the
// ROM/external-RAM address ranges.
func NewWithCartridge(mbc cartridge.MBC) *MMU {
	m := New()
	m.mbc = mbc
	return m
}

func (m *MMU) initRegionMap() {
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	m.regionMap[0xFE] = regionOAM
	m.regionMap[0xFF] = regionIO
}

// Tick advances the peripherals that run on a free-running clock rather than
// being driven directly by memory accesses.
func (m *MMU) Tick(cycles int) {
	m.Timer.Tick(cycles)
}

// RequestInterrupt sets the given interrupt's bit in IF.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	m.memory[addr.IF] = bitutil.Set(uint8(interrupt), m.memory[addr.IF]) | 0xE0
}

func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bitutil.IsSet(index, m.Read(address))
}

func (m *MMU) SetBit(index uint8, address uint16, set bool) {
	m.Write(address, bitutil.SetTo(index, m.Read(address), set))
}

func (m *MMU) Read(address uint16) uint8 {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return 0xFF
		}
		return m.mbc.Read(address)
	case regionVRAM, regionWRAM, regionOAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionIO:
		return m.readIO(address)
	default:
		slog.Warn("read at unmapped address", "addr", fmt.Sprintf("0x%04X", address))
		return 0xFF
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return m.Joypad.Read()
	case address == addr.DIV:
		return m.Timer.DIV()
	case address == addr.TIMA:
		return m.Timer.TIMA()
	case address == addr.TMA:
		return m.Timer.TMA()
	case address == addr.TAC:
		return m.Timer.TAC()
	case address == addr.IF:
		return m.memory[address] | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return m.apu[address-addr.AudioStart]
	default:
		return m.memory[address]
	}
}

func (m *MMU) Write(address uint16, value uint8) {
	switch m.regionMap[address>>8] {
	case regionROM, regionExtRAM:
		if m.mbc == nil {
			return
		}
		m.mbc.Write(address, value)
	case regionVRAM, regionWRAM, regionOAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-0x2000] = value
	case regionIO:
		m.writeIO(address, value)
	default:
		slog.Warn("write at unmapped address", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	}
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		m.Joypad.Write(value)
	case address == addr.DIV:
		m.Timer.ResetDIV()
	case address == addr.TIMA:
		m.Timer.SetTIMA(value)
	case address == addr.TMA:
		m.Timer.SetTMA(value)
	case address == addr.TAC:
		m.Timer.SetTAC(value)
	case address == addr.IF:
		m.memory[address] = value | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		m.apu[address-addr.AudioStart] = value
	case address == addr.DMA:
		m.performDMA(value)
	default:
		m.memory[address] = value
	}
}

// performDMA copies 160 bytes from (value<<8) into OAM, as triggered by a
// write to 0xFF46. The MMU performs the source reads on the PPU's behalf.
func (m *MMU) performDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.memory[addr.OAMStart+i] = m.Read(source + i)
	}
	m.memory[addr.DMA] = value
}
