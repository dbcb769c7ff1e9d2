package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill256KROM(banks int) []byte {
	rom := make([]byte, banks*romBankSize)
	for b := 0; b < banks; b++ {
		for i := 0; i < romBankSize; i++ {
			rom[b*romBankSize+i] = byte(b)
		}
	}
	return rom
}

func TestMBC1BankSwitch(t *testing.T) {
	rom := fill256KROM(8) // 128KiB
	mbc := newMBC1(rom, 0, false, nil)

	assert.Equal(t, byte(0), mbc.Read(0x0000), "bank 0 is fixed")

	mbc.Write(0x2000, 0x00)
	assert.Equal(t, byte(1), mbc.Read(0x4000), "writing 0 selects bank 1")

	mbc.Write(0x2000, 0x05)
	assert.Equal(t, byte(5), mbc.Read(0x4000))

	mbc.Write(0x2000, 0x00)
	assert.Equal(t, byte(1), mbc.Read(0x4000), "0 always remaps to bank 1, not 0")
}

func TestMBC1RAMEnableAndBanking(t *testing.T) {
	rom := fill256KROM(2)
	mbc := newMBC1(rom, 4*ramBankSize, false, nil)

	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "disabled RAM reads 0xFF")

	mbc.Write(0x0000, 0x0A) // enable
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0x42), mbc.Read(0xA000))

	mbc.Write(0x6000, 0x01) // switch to RAM banking mode
	mbc.Write(0x4000, 0x02) // select RAM bank 2
	mbc.Write(0xA000, 0x99)
	assert.Equal(t, byte(0x99), mbc.Read(0xA000))

	mbc.Write(0x4000, 0x00)
	assert.Equal(t, byte(0x42), mbc.Read(0xA000), "bank 0 retains its earlier value")
}

func TestMBC3RAMBanking(t *testing.T) {
	rom := fill256KROM(4)
	mbc := newMBC3(rom, 4*ramBankSize, true, nil)

	mbc.Write(0x2000, 0x03)
	assert.Equal(t, byte(3), mbc.Read(0x4000))

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x4000, 0x01)
	mbc.Write(0xA000, 0x7E)
	assert.Equal(t, byte(0x7E), mbc.Read(0xA000))

	saved := mbc.SaveRAM()
	require.NotNil(t, saved)
	assert.Equal(t, byte(0x7E), saved[1*ramBankSize])
}

func TestMBC5Bank0IsLegal(t *testing.T) {
	rom := fill256KROM(3)
	mbc := newMBC5(rom, 0, false, nil)

	mbc.Write(0x2000, 0x00) // select bank 0; unlike MBC1/MBC3 it is not remapped to 1
	assert.Equal(t, byte(0), mbc.Read(0x4000), "bank 0 is directly addressable on MBC5")

	mbc.Write(0x2000, 0x02)
	assert.Equal(t, byte(2), mbc.Read(0x4000))
}

func TestMBC5NineBitBankNumber(t *testing.T) {
	rom := fill256KROM(300)
	mbc := newMBC5(rom, 0, false, nil)

	mbc.Write(0x2000, 0xFF) // low 8 bits
	mbc.Write(0x3000, 0x01) // bit 8
	// requested bank is 0x1FF (511), wrapped modulo the 300 physical banks.
	assert.Equal(t, byte(511%300), mbc.Read(0x4000))
}

func TestNoMBCIgnoresBankWrites(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0xAB
	mbc := newNoMBC(rom, 0, false, nil)

	mbc.Write(0x2000, 0x07) // no-op: no banking hardware
	assert.Equal(t, byte(0xAB), mbc.Read(0x0000))
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "no RAM present")
}

func TestSaveRAMRespectsBatteryFlag(t *testing.T) {
	rom := fill256KROM(2)
	noBattery := newMBC1(rom, ramBankSize, false, nil)
	noBattery.Write(0x0000, 0x0A)
	noBattery.Write(0xA000, 0x11)
	assert.Nil(t, noBattery.SaveRAM())

	withBattery := newMBC1(rom, ramBankSize, true, nil)
	withBattery.Write(0x0000, 0x0A)
	withBattery.Write(0xA000, 0x11)
	assert.Equal(t, []byte{0x11}, withBattery.SaveRAM()[:1])
}
