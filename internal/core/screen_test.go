package core

import "testing"

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 0, '@', ColorRed)
	s.Set(10, 10, 'x')

	if c := s.GetCell(1, 0); c.Rune != '@' || c.Color != ColorRed {
		t.Errorf("GetCell(1,0) = %+v", c)
	}
	if s.Get(10, 10) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
	if s.String() != " @  \n    " {
		t.Errorf("String() = %q", s.String())
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "hello")
	if s.Row(0) != "  hel" {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), "  hel")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(2, 2)
	s.Set(0, 0, '#')
	s.Resize(3, 1)
	if s.Width() != 3 || s.Height() != 1 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("resize should clear the buffer")
	}
}
