//go:build sdl2

package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const pixelScale = 3

// SDL2 renders through an accelerated SDL2 window and texture, streaming
// the core's ARGB framebuffer straight into a GPU texture each frame.
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// NewSDL2 returns an uninitialized SDL2 backend.
func NewSDL2() *SDL2 { return &SDL2{} }

func (s *SDL2) Init(config Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("display: sdl2 init: %w", err)
	}

	scale := config.Scale
	if scale <= 0 {
		scale = pixelScale
	}

	title := config.Title
	if title == "" {
		title = "dmgcore"
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(frameWidth*scale),
		int32(frameHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("display: sdl2 create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("display: sdl2 create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, frameWidth, frameHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("display: sdl2 create texture: %w", err)
	}
	s.texture = texture

	return nil
}

func (s *SDL2) Render(pixels []uint32) error {
	if len(pixels) != frameWidth*frameHeight {
		return fmt.Errorf("display: sdl2 render: want %d pixels, got %d", frameWidth*frameHeight, len(pixels))
	}

	if err := s.texture.Update(nil, pixels, frameWidth*4); err != nil {
		return fmt.Errorf("display: sdl2 texture update: %w", err)
	}
	s.renderer.Clear()
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("display: sdl2 copy: %w", err)
	}
	s.renderer.Present()
	return nil
}

func (s *SDL2) Poll() (Input, bool) {
	var in Input
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.State != sdl.PRESSED {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE:
				quit = true
			case sdl.K_UP:
				in[Up] = true
			case sdl.K_DOWN:
				in[Down] = true
			case sdl.K_LEFT:
				in[Left] = true
			case sdl.K_RIGHT:
				in[Right] = true
			case sdl.K_RETURN:
				in[Start] = true
			case sdl.K_BACKSPACE:
				in[Select] = true
			case sdl.K_z:
				in[A] = true
			case sdl.K_x:
				in[B] = true
			}
		}
	}

	return in, quit
}

func (s *SDL2) Close() error {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
	return nil
}
