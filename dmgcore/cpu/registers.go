package cpu

import "github.com/ashcombe/dmgcore/dmgcore/bitutil"

// Flag identifies one bit of the F register.
type Flag uint8

const (
	flagZ Flag = 0x80
	flagN Flag = 0x40
	flagH Flag = 0x20
	flagC Flag = 0x10
)

// registers holds the eight 8-bit registers plus SP/PC. The low nibble of F
// is always zero; callers never observe it set.
type registers struct {
	a, f byte
	b, c byte
	d, e byte
	h, l byte
	sp   uint16
	pc   uint16
}

func (r *registers) af() uint16 { return bitutil.Combine(r.a, r.f) }
func (r *registers) bc() uint16 { return bitutil.Combine(r.b, r.c) }
func (r *registers) de() uint16 { return bitutil.Combine(r.d, r.e) }
func (r *registers) hl() uint16 { return bitutil.Combine(r.h, r.l) }

func (r *registers) setAF(v uint16) {
	r.a = bitutil.High(v)
	r.f = bitutil.Low(v) & 0xF0
}
func (r *registers) setBC(v uint16) { r.b, r.c = bitutil.High(v), bitutil.Low(v) }
func (r *registers) setDE(v uint16) { r.d, r.e = bitutil.High(v), bitutil.Low(v) }
func (r *registers) setHL(v uint16) { r.h, r.l = bitutil.High(v), bitutil.Low(v) }

func (r *registers) flag(f Flag) bool       { return r.f&uint8(f) != 0 }
func (r *registers) setFlag(f Flag, on bool) {
	if on {
		r.f |= uint8(f)
	} else {
		r.f &^= uint8(f)
	}
	r.f &= 0xF0
}
