package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const (
	frameWidth  = 160
	frameHeight = 144
)

// Terminal renders the framebuffer with tcell, packing two pixel rows into
// each terminal cell via the upper half-block character: the cell's
// foreground paints the top row, its background the bottom row. Input is
// read from the same screen's key events.
type Terminal struct {
	screen tcell.Screen

	keys map[tcell.Key]bool
	runes map[rune]bool
}

// NewTerminal returns an uninitialized terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{
		keys:  make(map[tcell.Key]bool),
		runes: make(map[rune]bool),
	}
}

func (t *Terminal) Init(config Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("display: terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("display: terminal init: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	t.screen = screen
	return nil
}

func (t *Terminal) Render(pixels []uint32) error {
	if len(pixels) != frameWidth*frameHeight {
		return fmt.Errorf("display: terminal render: want %d pixels, got %d", frameWidth*frameHeight, len(pixels))
	}

	for row := 0; row < frameHeight; row += 2 {
		for col := 0; col < frameWidth; col++ {
			top := pixels[row*frameWidth+col]
			bottom := top
			if row+1 < frameHeight {
				bottom = pixels[(row+1)*frameWidth+col]
			}
			style := tcell.StyleDefault.
				Foreground(pixelColor(top)).
				Background(pixelColor(bottom))
			t.screen.SetContent(col, row/2, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func pixelColor(px uint32) tcell.Color {
	r := uint8(px >> 16)
	g := uint8(px >> 8)
	b := uint8(px)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Poll drains pending key events and reports the held-key snapshot plus
// whether Escape or Ctrl-C was seen (quit request). tcell reports key-down
// events only, so a key is considered "held" until its matching release
// isn't modeled here; instead this reports presses seen since the last
// Poll, which is sufficient for a turn-based batch driver like cmd/dmgcore
// but will read as tap-only rather than true press-and-hold to a player.
func (t *Terminal) Poll() (Input, bool) {
	var in Input
	quit := false

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			quit = true
		case tcell.KeyUp:
			in[Up] = true
		case tcell.KeyDown:
			in[Down] = true
		case tcell.KeyLeft:
			in[Left] = true
		case tcell.KeyRight:
			in[Right] = true
		case tcell.KeyEnter:
			in[Start] = true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			in[Select] = true
		case tcell.KeyRune:
			switch key.Rune() {
			case 'z', 'Z':
				in[A] = true
			case 'x', 'X':
				in[B] = true
			}
		}
	}

	return in, quit
}

func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}
