// Package display renders the core's framebuffer to a platform window and
// translates platform input back into the fixed button vector Emulator.
// SetButtons expects. Backends are swappable: terminal (tcell, default),
// null (no output, for headless/batch runs), and sdl2 (build-tag gated;
// a build without the sdl2 tag gets a stub whose Init always fails).
package display

// Input is a pressed/released vector in the fixed order {up, down, left,
// right, A, B, start, select}; true means pressed. It mirrors the layout
// Emulator.SetButtons accepts, just inverted to the more natural
// true-means-pressed polarity for a backend to fill in.
type Input [8]bool

const (
	Up     = 0
	Down   = 1
	Left   = 2
	Right  = 3
	A      = 4
	B      = 5
	Start  = 6
	Select = 7
)

// Vector converts Input to the 0-means-pressed byte vector SetButtons
// expects.
func (in Input) Vector() [8]byte {
	var v [8]byte
	for i, pressed := range in {
		if pressed {
			v[i] = 0
		} else {
			v[i] = 1
		}
	}
	return v
}

// Config holds the window/backend setup options common to every backend.
// A backend is free to ignore fields it has no use for.
type Config struct {
	Title string
	Scale int
}

// Backend is a complete display + input platform. A Backend is used for
// exactly one run: Init, then repeated Render/Poll pairs, then Close.
type Backend interface {
	// Init configures the backend. Must be called before Render or Poll.
	Init(config Config) error

	// Render draws one frame. pixels is row-major 160x144, 0x00RRGGBB.
	Render(pixels []uint32) error

	// Poll reports the current button state and whether the user asked
	// to quit (closed the window, pressed the quit key, Ctrl-C, etc).
	Poll() (Input, bool)

	// Close releases any platform resources. Safe to call once, after
	// Init succeeded.
	Close() error
}
