package core

import "testing"

func TestGetFacing(t *testing.T) {
	tests := []struct {
		name     string
		d        Cell
		expected int
	}{
		{"north", C(0, -1), 0},
		{"west", C(-1, 0), 64},
		{"south", C(0, 1), 128},
		{"east", C(1, 0), 192},
		{"north-west", C(-1, -1), 24},
		{"south-east", C(1, 1), 152},
		{"zero keeps current", C(0, 0), 77},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetFacing(tc.d, 77); got != tc.expected {
				t.Errorf("GetFacing(%v) = %d, expected %d", tc.d, got, tc.expected)
			}
		})
	}
}

func TestNearestFacing(t *testing.T) {
	tests := []struct {
		current, desired, expected int
	}{
		{0, 64, 64},
		{0, 192, -64},
		{250, 10, 266},
		{128, 128, 128},
	}
	for _, tc := range tests {
		if got := NearestFacing(tc.current, tc.desired); got != tc.expected {
			t.Errorf("NearestFacing(%d, %d) = %d, expected %d", tc.current, tc.desired, got, tc.expected)
		}
	}
}

func TestQuantizeFacing(t *testing.T) {
	tests := []struct {
		facing, n, expected int
	}{
		{0, 8, 0},
		{15, 8, 0},
		{16, 8, 1},
		{250, 8, 0},
		{192, 32, 24},
		{100, 0, 100},
		{100, 256, 100},
		{100, 512, 100},
	}
	for _, tc := range tests {
		if got := QuantizeFacing(tc.facing, tc.n); got != tc.expected {
			t.Errorf("QuantizeFacing(%d, %d) = %d, expected %d", tc.facing, tc.n, got, tc.expected)
		}
	}
}

func TestTickFacingTakesShortestWay(t *testing.T) {
	if got := TickFacing(0, 192, 20); got != 236 {
		t.Errorf("TickFacing(0, 192, 20) = %d, expected 236", got)
	}
	if got := TickFacing(0, 64, 20); got != 20 {
		t.Errorf("TickFacing(0, 64, 20) = %d, expected 20", got)
	}
	if got := TickFacing(60, 64, 20); got != 64 {
		t.Errorf("TickFacing snaps when within rot, got %d", got)
	}
}

func TestTickFacingConverges(t *testing.T) {
	f := 128
	for i := 0; i < 100 && f != 200; i++ {
		f = TickFacing(f, 200, 7)
		if f < 0 || f > 255 {
			t.Fatalf("facing out of range: %d", f)
		}
	}
	if f != 200 {
		t.Errorf("facing did not converge, got %d", f)
	}
}
