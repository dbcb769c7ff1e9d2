// Package cartridge parses a Game Boy ROM header and exposes the banked
// read/write interface a cartridge presents over 0x0000-0x7FFF and
// 0xA000-0xBFFF, dispatching to the memory-bank controller (MBC) selected
// by the cartridge type byte.
package cartridge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Header offsets, see spec.md §3.
const (
	titleOffset           = 0x0134
	titleLength           = 16
	cgbFlagOffset         = 0x0143
	cartTypeOffset        = 0x0147
	romSizeOffset         = 0x0148
	ramSizeOffset         = 0x0149
	headerChecksumOffset  = 0x014D
	headerLength          = 0x0150
)

// Type identifies the memory-bank-controller family decoded from the
// cartridge type byte at 0x0147. The RAM/battery subtype flags of the same
// byte are kept separately in Cartridge.HasRAM and Cartridge.HasBattery.
type Type uint8

const (
	TypeNone Type = iota
	TypeMBC1
	TypeMBC3
	TypeMBC5
	TypeUnsupported
)

// ErrMalformed is returned when the ROM is too short to contain a header.
var ErrMalformed = errors.New("cartridge: malformed ROM image")

// ErrUnsupported is returned for a recognized-but-unimplemented MBC (e.g. MBC2, MBC7, HuC-1).
var ErrUnsupported = errors.New("cartridge: unsupported cartridge type")

// ramSizeBytes maps the RAM size code at 0x0149 to a byte count, per spec.md §3.
var ramSizeBytes = map[byte]int{
	0x00: 0,
	0x01: 2 * 1024, // present in some unofficial docs; smaller than one 8K bank, so the MBCs address it as a single bank
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Cartridge holds the parsed header metadata and the immutable ROM bytes.
type Cartridge struct {
	Data []byte

	Title       string
	Type        Type
	HasRAM      bool
	HasBattery  bool
	RAMSize     int
	ROMSize     int
}

// classify maps the raw cartridge-type byte (0x0147) to (Type, hasRAM, hasBattery).
// Only the families spec.md requires (NONE/MBC1/MBC3/MBC5) are supported;
// everything else is ErrUnsupported (MBC2, MMM01, HuC-1/3, MBC7, TAMA5, ...).
func classify(typeByte byte) (Type, bool, bool, error) {
	switch typeByte {
	case 0x00:
		return TypeNone, false, false, nil
	case 0x08:
		return TypeNone, true, false, nil
	case 0x09:
		return TypeNone, true, true, nil
	case 0x01:
		return TypeMBC1, false, false, nil
	case 0x02:
		return TypeMBC1, true, false, nil
	case 0x03:
		return TypeMBC1, true, true, nil
	case 0x0F:
		return TypeMBC3, false, true, nil // MBC3+TIMER+BATTERY, no RAM
	case 0x10:
		return TypeMBC3, true, true, nil // MBC3+TIMER+RAM+BATTERY
	case 0x11:
		return TypeMBC3, false, false, nil
	case 0x12:
		return TypeMBC3, true, false, nil
	case 0x13:
		return TypeMBC3, true, true, nil
	case 0x19:
		return TypeMBC5, false, false, nil
	case 0x1A:
		return TypeMBC5, true, false, nil
	case 0x1B:
		return TypeMBC5, true, true, nil
	case 0x1C:
		return TypeMBC5, false, false, nil // +RUMBLE, rumble is not modeled
	case 0x1D:
		return TypeMBC5, true, false, nil
	case 0x1E:
		return TypeMBC5, true, true, nil
	default:
		return TypeUnsupported, false, false, fmt.Errorf("%w: type byte 0x%02X", ErrUnsupported, typeByte)
	}
}

// New parses a raw ROM image. Addresses beyond the header are left opaque:
// only the header bytes are authoritative for sizing, per spec.md §3.
func New(data []byte) (*Cartridge, error) {
	if len(data) < headerLength {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(data), headerLength)
	}

	cartType, hasRAM, hasBattery, err := classify(data[cartTypeOffset])
	if err != nil {
		return nil, err
	}

	ramSize, ok := ramSizeBytes[data[ramSizeOffset]]
	if !ok {
		ramSize = 0
	}
	if !hasRAM {
		ramSize = 0
	}

	romSize := 32 * 1024 << data[romSizeOffset]

	c := &Cartridge{
		Data:       data,
		Title:      cleanTitle(data[titleOffset : titleOffset+titleLength]),
		Type:       cartType,
		HasRAM:     hasRAM,
		HasBattery: hasBattery,
		RAMSize:    ramSize,
		ROMSize:    romSize,
	}

	return c, nil
}

// cleanTitle converts the raw title bytes into a printable ASCII string,
// mirroring the teacher's cleanGameboyTitle helper.
func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		switch {
		case b == 0:
			continue
		case unicode.IsPrint(rune(b)) && b < 0x80:
			runes = append(runes, rune(b))
		}
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}

// NewMBC constructs the concrete MBC implementation for this cartridge's
// type, seeded with any previously-saved external RAM.
func (c *Cartridge) NewMBC(savedRAM []byte) (MBC, error) {
	switch c.Type {
	case TypeNone:
		return newNoMBC(c.Data, c.RAMSize, c.HasBattery, savedRAM), nil
	case TypeMBC1:
		return newMBC1(c.Data, c.RAMSize, c.HasBattery, savedRAM), nil
	case TypeMBC3:
		return newMBC3(c.Data, c.RAMSize, c.HasBattery, savedRAM), nil
	case TypeMBC5:
		return newMBC5(c.Data, c.RAMSize, c.HasBattery, savedRAM), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, c.Type)
	}
}
