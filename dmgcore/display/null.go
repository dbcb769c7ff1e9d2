package display

// Null discards every frame and never reports input. It backs headless
// batch runs (frame-count mode) and tests where a display collaborator is
// required but nothing should touch the terminal or a window.
type Null struct{}

// NewNull returns a Backend that does nothing.
func NewNull() *Null { return &Null{} }

func (n *Null) Init(config Config) error { return nil }

func (n *Null) Render(pixels []uint32) error { return nil }

func (n *Null) Poll() (Input, bool) { return Input{}, false }

func (n *Null) Close() error { return nil }
