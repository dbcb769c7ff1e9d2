package ppu

// Width and Height are the visible LCD dimensions.
const (
	Width  = 160
	Height = 144
)

// shadeARGB maps a 2-bit shade (after palette lookup) to a packed ARGB
// pixel value.
var shadeARGB = [4]uint32{0x00FFFFFF, 0x00AAAAAA, 0x00555555, 0x00000000}

// FrameBuffer holds one rendered frame as 160x144 packed ARGB pixels.
type FrameBuffer struct {
	pixels [Width * Height]uint32
}

func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	fb.FillWhite()
	return fb
}

func (fb *FrameBuffer) Set(x, y int, color uint32) {
	fb.pixels[y*Width+x] = color
}

func (fb *FrameBuffer) Get(x, y int) uint32 {
	return fb.pixels[y*Width+x]
}

// Pixels returns the framebuffer's backing slice in row-major order.
func (fb *FrameBuffer) Pixels() []uint32 {
	return fb.pixels[:]
}

// FillWhite sets every pixel to shade 0 (white), used while the LCD is off.
func (fb *FrameBuffer) FillWhite() {
	for i := range fb.pixels {
		fb.pixels[i] = shadeARGB[0]
	}
}
