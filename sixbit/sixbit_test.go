package sixbit

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		ch   byte
		want int
	}{
		{name: "zero maps to 0", ch: '0', want: 0},
		{name: "W is top of first range", ch: 'W', want: 39},
		{name: "backtick is start of second range", ch: '`', want: 40},
		{name: "w is top of alphabet", ch: 'w', want: 63},
		{name: "gap between ranges is invalid", ch: 'X', want: Invalid},
		{name: "gap upper bound is invalid", ch: ']', want: Invalid},
		{name: "below range is invalid", ch: '/', want: Invalid},
		{name: "above range is invalid", ch: 'x', want: Invalid},
		{name: "known payload char", ch: '1', want: 1},
		{name: "known payload char in second range", ch: 'k', want: 51},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decode(tc.ch); got != tc.want {
				t.Fatalf("Decode(%q) = %d, want %d", tc.ch, got, tc.want)
			}
		})
	}
}

func TestDecodeFullAlphabet(t *testing.T) {
	for ch := 48; ch <= 87; ch++ {
		want := ch - 48
		if got := Decode(byte(ch)); got != want {
			t.Fatalf("Decode(%q) = %d, want %d", byte(ch), got, want)
		}
	}
	for ch := 96; ch <= 119; ch++ {
		want := ch - 48 - 8
		if got := Decode(byte(ch)); got != want {
			t.Fatalf("Decode(%q) = %d, want %d", byte(ch), got, want)
		}
	}
}
