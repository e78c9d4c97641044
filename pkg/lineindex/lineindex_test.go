package lineindex

import "testing"

func TestBuildAndLineOf(t *testing.T) {
	content := []byte("alpha\nbeta\ngamma")
	ix := Build(content)

	if ix.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", ix.LineCount())
	}

	cases := []struct {
		pos  int
		line int
	}{
		{0, 0},
		{4, 0},
		{6, 1},
		{10, 1},
		{11, 2},
		{15, 2},
	}
	for _, c := range cases {
		if got := ix.LineOf(c.pos); got != c.line {
			t.Errorf("LineOf(%d) = %d, want %d", c.pos, got, c.line)
		}
	}
}

func TestPositionRoundTrip(t *testing.T) {
	content := []byte("one\ntwo\nthree\n")
	ix := Build(content)

	line, col := ix.Position(8) // 't' of "three"
	if line != 3 || col != 1 {
		t.Errorf("Position(8) = (%d,%d), want (3,1)", line, col)
	}

	start := ix.LineStart(2)
	end := ix.LineEnd(2)
	if string(content[start:end]) != "three\n" {
		t.Errorf("line range = %q, want %q", content[start:end], "three\n")
	}
}

func TestByteToCharOffsetMultiByte(t *testing.T) {
	s := "héllo wörld" // contains 2-byte runes
	byteOff := len(s)  // end of string
	charOff := ByteToCharOffset(s, byteOff)
	if charOff != 11 {
		t.Errorf("ByteToCharOffset = %d, want 11", charOff)
	}

	back := CharToByteOffset(s, charOff)
	if back != len(s) {
		t.Errorf("CharToByteOffset round trip = %d, want %d", back, len(s))
	}
}

func TestEmptyContent(t *testing.T) {
	ix := Build(nil)
	if ix.LineCount() != 1 {
		t.Fatalf("expected 1 line for empty content, got %d", ix.LineCount())
	}
	if ix.LineOf(0) != 0 {
		t.Errorf("LineOf(0) on empty content = %d, want 0", ix.LineOf(0))
	}
}
