// Package dmgcore is the top-level driver: it owns one cartridge's CPU,
// PPU, and MMU and exposes the four-function surface a host embeds
// against — Load, Unload, RenderFrame, SetButtons. There is no wire
// protocol; callers link the package directly.
package dmgcore

import (
	"log/slog"

	"github.com/ashcombe/dmgcore/dmgcore/cartridge"
	"github.com/ashcombe/dmgcore/dmgcore/cpu"
	"github.com/ashcombe/dmgcore/dmgcore/mmu"
	"github.com/ashcombe/dmgcore/dmgcore/ppu"
)

// cyclesPerFrame is 154 scanlines x 456 cycles.
const cyclesPerFrame = 154 * 456

// buttonOrder maps the fixed input order {up,down,left,right,A,B,start,
// select} used by SetButtons onto the Joypad's own Button identifiers.
var buttonOrder = [8]mmu.Button{
	mmu.ButtonUp, mmu.ButtonDown, mmu.ButtonLeft, mmu.ButtonRight,
	mmu.ButtonA, mmu.ButtonB, mmu.ButtonStart, mmu.ButtonSelect,
}

// Emulator owns one loaded cartridge's worth of machine state. The zero
// value is a valid, unloaded instance: calling RenderFrame or SetButtons
// before Load is a noop rather than a panic.
type Emulator struct {
	cpu *cpu.CPU
	ppu *ppu.PPU
	bus *mmu.MMU

	mbc        cartridge.MBC
	hasBattery bool
}

// New returns an unloaded Emulator.
func New() *Emulator {
	return &Emulator{}
}

// Load parses rom, constructs its MBC (seeded from savedRAM, if any), and
// resets the CPU/PPU/timer/joypad to post-boot-ROM state. No boot ROM
// image is ever loaded; execution always begins at 0x0100 with the
// standard post-boot register values.
func (e *Emulator) Load(rom []byte, savedRAM []byte) error {
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}

	mbc, err := cart.NewMBC(savedRAM)
	if err != nil {
		return err
	}

	bus := mmu.NewWithCartridge(mbc)
	e.bus = bus
	e.cpu = cpu.New(bus)
	e.ppu = ppu.New(bus)
	e.mbc = mbc
	e.hasBattery = cart.HasBattery

	slog.Info("cartridge loaded", "title", cart.Title, "type", cart.Type, "rom_size", cart.ROMSize)
	return nil
}

// Unload returns the external RAM bytes iff the cartridge is
// battery-backed, then releases the instance back to its unloaded state.
func (e *Emulator) Unload() []byte {
	if e.mbc == nil {
		return nil
	}

	var saved []byte
	if e.hasBattery {
		saved = e.mbc.SaveRAM()
	}

	e.cpu, e.ppu, e.bus, e.mbc, e.hasBattery = nil, nil, nil, nil, false
	return saved
}

// RenderFrame advances the machine by one display frame's cycle budget
// (70,224 cycles) and returns the resulting 160x144 framebuffer as
// row-major 0x00RRGGBB pixels. Called before Load, it returns nil.
//
// Only whole instructions run: the call stops after the instruction that
// brings the total to 70,224 or more, and the cycles that instruction runs
// past the budget are not carried into the next call.
//
// The CPU runs instructions one at a time; after each one,
// its cycle cost is applied to the timer and PPU before the next
// instruction starts, so a STAT interrupt raised mid-scanline is visible
// to the very next instruction (§5's ordering requirement). Interrupt
// servicing happens at the start of the CPU's own next step.
func (e *Emulator) RenderFrame() []uint32 {
	if e.cpu == nil {
		return nil
	}

	total := 0
	for total < cyclesPerFrame {
		cycles := e.cpu.Step()
		e.bus.Tick(cycles)
		e.ppu.Step(cycles)
		total += cycles
	}

	return e.ppu.Framebuffer().Pixels()
}

// SetButtons applies a length-8 pressed/released vector in the fixed
// order {up,down,left,right,A,B,start,select}; 0 means pressed. Called
// before Load, it is a noop.
func (e *Emulator) SetButtons(buttons [8]byte) {
	if e.bus == nil {
		return
	}
	for i, b := range buttonOrder {
		e.bus.Joypad.SetButton(b, buttons[i] == 0)
	}
}
