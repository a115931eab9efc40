package rendering

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", ColorBlack},
		{"#FFFFFF", ColorWhite},
		{"#fff", ColorWhite},
		{"#026729", RGB(0x02, 0x67, 0x29)},
		{"#F3A829", RGB(0xF3, 0xA8, 0x29)},
		{"#FF000080", RGBA(0xFF, 0, 0, 0x80)},
		{"#f008", RGBA(0xFF, 0, 0, 0x88)},
		{" White ", ColorWhite},
		{"transparent", ColorTransparent},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#GGGGGG", "rgb(0,0,0)", "#1234567"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := RGB(0x02, 0x67, 0x29).String(); got != "#026729" {
		t.Errorf("String() = %q, want %q", got, "#026729")
	}
	if got := ColorTransparent.String(); got != "#00000000" {
		t.Errorf("String() = %q, want %q", got, "#00000000")
	}
}

func TestColorNRGBA(t *testing.T) {
	n := RGBA(1, 2, 3, 4).NRGBA()
	if n.R != 1 || n.G != 2 || n.B != 3 || n.A != 4 {
		t.Errorf("NRGBA() = %+v", n)
	}
}
