package display

import "testing"

func TestInputVectorInvertsPolarity(t *testing.T) {
	in := Input{Up: true}
	want := [8]byte{1, 1, 1, 1, 1, 1, 1, 1}
	want[Up] = 0

	got := in.Vector()
	if got != want {
		t.Fatalf("Vector() = %v, want %v", got, want)
	}
}

func TestNullBackendIsANoop(t *testing.T) {
	n := NewNull()
	if err := n.Init(Config{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := n.Render(make([]uint32, 160*144)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	in, quit := n.Poll()
	if in != (Input{}) || quit {
		t.Fatalf("Poll() = %v, %v, want zero Input, false", in, quit)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
