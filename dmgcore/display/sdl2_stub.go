//go:build !sdl2

package display

import "fmt"

// SDL2 stubs out to an error when the binary wasn't built with -tags sdl2
// and the SDL2 development libraries linked.
type SDL2 struct{}

// NewSDL2 returns a backend that always fails Init; build with -tags sdl2
// for a working one.
func NewSDL2() *SDL2 { return &SDL2{} }

func (s *SDL2) Init(config Config) error {
	return fmt.Errorf("display: sdl2 backend not available, build with -tags sdl2 and install SDL2 development libraries")
}

func (s *SDL2) Render(pixels []uint32) error { return nil }

func (s *SDL2) Poll() (Input, bool) { return Input{}, false }

func (s *SDL2) Close() error { return nil }
