package cartridge

const romBankSize = 0x4000
const ramBankSize = 0x2000

// MBC is the interface all memory-bank-controller variants implement.
// Addresses are restricted to 0x0000-0x7FFF (ROM, bank control) and
// 0xA000-0xBFFF (external RAM); the caller (the MMU) is responsible for
// routing only those ranges here.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// SaveRAM returns a copy of the external RAM iff the cartridge is
	// battery-backed, or nil otherwise.
	SaveRAM() []byte
}

func romBankCount(romLen int) int {
	n := romLen / romBankSize
	if n < 1 {
		n = 1
	}
	return n
}

func ramBankCount(ramLen int) int {
	n := ramLen / ramBankSize
	if n < 1 {
		n = 1
	}
	return n
}

func seedRAM(ram, saved []byte) {
	if saved == nil {
		return
	}
	copy(ram, saved)
}

// noMBC is used for cartridges with no banking hardware: ROM is fixed at
// 0x0000-0x7FFF (bank switching has no effect), and RAM (if any) is a
// single fixed 0-8 KiB block with no enable gate.
type noMBC struct {
	rom        []byte
	ram        []byte
	hasBattery bool
}

func newNoMBC(rom []byte, ramSize int, hasBattery bool, saved []byte) *noMBC {
	m := &noMBC{rom: rom, ram: make([]byte, ramSize), hasBattery: hasBattery}
	seedRAM(m.ram, saved)
	return m
}

func (m *noMBC) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(addr - 0xA000)
		if off >= len(m.ram) {
			return 0xFF
		}
		return m.ram[off]
	default:
		return 0xFF
	}
}

func (m *noMBC) Write(addr uint16, value uint8) {
	if addr < 0xA000 || addr > 0xBFFF || len(m.ram) == 0 {
		return
	}
	off := int(addr - 0xA000)
	if off < len(m.ram) {
		m.ram[off] = value
	}
}

func (m *noMBC) SaveRAM() []byte {
	if !m.hasBattery {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

// bankMode selects what the 0x4000-0x5FFF register means for MBC1.
type bankMode uint8

const (
	modeROM bankMode = 0
	modeRAM bankMode = 1
)

// mbc1 implements the original 5-bit-ROM/2-bit-RAM banking scheme,
// including the ROM/RAM mode switch at 0x6000-0x7FFF. See spec.md §4.1.
type mbc1 struct {
	rom        []byte
	ram        []byte
	hasBattery bool

	romBank    uint8 // 5 bits, 1..31 (0 remapped to 1)
	ramBank    uint8 // 2 bits, 0..3
	upperBits  uint8 // 2 bits, feeds either ROM bank bits 5-6 or ramBank depending on mode
	mode       bankMode
	ramEnabled bool

	romBanks int
	ramBanks int
}

func newMBC1(rom []byte, ramSize int, hasBattery bool, saved []byte) *mbc1 {
	m := &mbc1{
		rom:        rom,
		ram:        make([]byte, ramSize),
		hasBattery: hasBattery,
		romBank:    1,
		romBanks:   romBankCount(len(rom)),
		ramBanks:   ramBankCount(ramSize),
	}
	seedRAM(m.ram, saved)
	return m
}

func (m *mbc1) effectiveROMBank() int {
	bank := int(m.romBank)
	if m.mode == modeROM {
		bank |= int(m.upperBits) << 5
	}
	return bank % m.romBanks
}

func (m *mbc1) effectiveRAMBank() int {
	if m.mode == modeRAM {
		return int(m.ramBank) % m.ramBanks
	}
	return 0
}

func (m *mbc1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr >= 0x4000 && addr <= 0x7FFF:
		off := m.effectiveROMBank()*romBankSize + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		off := m.effectiveRAMBank()*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc1) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		bits := value & 0x03
		m.upperBits = bits
		m.ramBank = bits
	case addr >= 0x6000 && addr <= 0x7FFF:
		if value&0x01 == 0 {
			m.mode = modeROM
		} else {
			m.mode = modeRAM
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		off := m.effectiveRAMBank()*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *mbc1) SaveRAM() []byte {
	if !m.hasBattery {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

// mbc3 implements the 7-bit ROM bank / 2-bit RAM bank scheme. RTC registers
// are explicitly out of scope (spec.md Non-goals), so the 0x4000-0x5FFF
// register only ever selects a RAM bank 0-3.
type mbc3 struct {
	rom        []byte
	ram        []byte
	hasBattery bool

	romBank    uint8 // 7 bits, 1..127 (0 remapped to 1)
	ramBank    uint8 // 0..3
	ramEnabled bool

	romBanks int
	ramBanks int
}

func newMBC3(rom []byte, ramSize int, hasBattery bool, saved []byte) *mbc3 {
	m := &mbc3{
		rom:        rom,
		ram:        make([]byte, ramSize),
		hasBattery: hasBattery,
		romBank:    1,
		romBanks:   romBankCount(len(rom)),
		ramBanks:   ramBankCount(ramSize),
	}
	seedRAM(m.ram, saved)
	return m
}

func (m *mbc3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr >= 0x4000 && addr <= 0x7FFF:
		bank := int(m.romBank) % m.romBanks
		off := bank*romBankSize + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := int(m.ramBank) % m.ramBanks
		off := bank*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc3) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		m.ramBank = value & 0x03
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := int(m.ramBank) % m.ramBanks
		off := bank*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *mbc3) SaveRAM() []byte {
	if !m.hasBattery {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

// mbc5 implements the 9-bit ROM bank / 4-bit RAM bank scheme. Bank 0 is a
// legal, directly addressable ROM bank (unlike MBC1/MBC3).
type mbc5 struct {
	rom        []byte
	ram        []byte
	hasBattery bool

	romBank    uint16 // 9 bits, 0..511
	ramBank    uint8  // 0..15
	ramEnabled bool

	romBanks int
	ramBanks int
}

func newMBC5(rom []byte, ramSize int, hasBattery bool, saved []byte) *mbc5 {
	m := &mbc5{
		rom:        rom,
		ram:        make([]byte, ramSize),
		hasBattery: hasBattery,
		romBank:    1,
		romBanks:   romBankCount(len(rom)),
		ramBanks:   ramBankCount(ramSize),
	}
	seedRAM(m.ram, saved)
	return m
}

func (m *mbc5) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr >= 0x4000 && addr <= 0x7FFF:
		bank := int(m.romBank) % m.romBanks
		off := bank*romBankSize + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := int(m.ramBank) % m.ramBanks
		off := bank*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc5) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr >= 0x2000 && addr <= 0x2FFF:
		m.romBank = (m.romBank & 0x100) | uint16(value)
	case addr >= 0x3000 && addr <= 0x3FFF:
		m.romBank = (m.romBank & 0x0FF) | (uint16(value&0x01) << 8)
	case addr >= 0x4000 && addr <= 0x5FFF:
		m.ramBank = value & 0x0F
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := int(m.ramBank) % m.ramBanks
		off := bank*ramBankSize + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *mbc5) SaveRAM() []byte {
	if !m.hasBattery {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}
