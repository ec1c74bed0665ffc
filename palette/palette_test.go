package palette

import (
	"image/color"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want string
	}{
		{color.RGBA{180, 0, 30, 255}, "180 000 030 "},
		{color.RGBA{0, 0, 0, 0}, "000 000 000 "},
		{color.RGBA{255, 255, 255, 255}, "255 255 255 "},
		{color.RGBA{7, 42, 199, 255}, "007 042 199 "},
	}

	for _, tt := range tests {
		cell := Encode(tt.in)
		if got := string(cell[:]); got != tt.want {
			t.Errorf("Encode(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvergenceRamp(t *testing.T) {
	if got := Convergence(0); got.R != 5 {
		t.Errorf("Convergence(0).R = %d, want 5", got.R)
	}
	if got := Convergence(ConvergenceLevels - 1); got.R != 255 {
		t.Errorf("Convergence(%d).R = %d, want 255", ConvergenceLevels-1, got.R)
	}

	prev := -1
	for k := 0; k < ConvergenceLevels; k++ {
		c := Convergence(uint8(k))
		if c.R != c.G || c.G != c.B {
			t.Errorf("Convergence(%d) = %v, want gray", k, c)
		}
		if int(c.R) <= prev {
			t.Errorf("Convergence(%d).R = %d, not increasing (prev %d)", k, c.R, prev)
		}
		prev = int(c.R)
	}
}

func TestConvergenceLevels(t *testing.T) {
	want := [ConvergenceLevels]uint8{
		5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
		56, 61, 66, 71, 76, 81, 86, 91, 96, 100,
		107, 112, 117, 122, 127, 132, 137, 142, 147, 153,
		158, 163, 168, 173, 178, 183, 188, 193, 198, 204,
		209, 214, 219, 224, 229, 234, 239, 244, 249, 255,
	}
	for k, w := range want {
		if got := Convergence(uint8(k)).R; got != w {
			t.Errorf("Convergence(%d).R = %d, want %d", k, got, w)
		}
	}

	tests := []struct {
		count uint8
		want  string
	}{
		{19, "100 100 100 "},
		{29, "153 153 153 "},
		{39, "204 204 204 "},
	}
	for _, tt := range tests {
		if got := string(ConvergenceCell(tt.count)[:]); got != tt.want {
			t.Errorf("ConvergenceCell(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestCells(t *testing.T) {
	if got := string(AttractorCell(0)[:]); got != "180 000 030 " {
		t.Errorf("AttractorCell(0) = %q", got)
	}
	if got := string(AttractorCell(9)[:]); got != "000 150 060 " {
		t.Errorf("AttractorCell(9) = %q", got)
	}
	if got := string(ConvergenceCell(0)[:]); got != "005 005 005 " {
		t.Errorf("ConvergenceCell(0) = %q", got)
	}
	if got := string(ConvergenceCell(49)[:]); got != "255 255 255 " {
		t.Errorf("ConvergenceCell(49) = %q", got)
	}
}
