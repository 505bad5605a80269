package pngenc

import "testing"

func TestPaethPredictor(t *testing.T) {
	tests := []struct {
		a, b, c, want int
	}{
		{0, 0, 0, 0},
		{10, 20, 10, 20},
		{20, 10, 10, 20},
		{10, 10, 20, 10},
		{100, 50, 75, 75},
	}

	for _, tt := range tests {
		if got := paethPredictor(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paeth(%d, %d, %d): expected %d, got %d", tt.a, tt.b, tt.c, tt.want, got)
		}
	}
}

func TestFilterer_PicksUpForRepeatedRow(t *testing.T) {
	row := []byte{10, 20, 30, 40, 50, 60}
	dst := make([]byte, 1+len(row))

	newFilterer(len(row)).filter(row, row, dst)

	if dst[0] != ftUp {
		t.Errorf("expected Up filter, got %d", dst[0])
	}
	for i, b := range dst[1:] {
		if b != 0 {
			t.Errorf("byte %d: expected zero residual, got %d", i, b)
		}
	}
}

func TestFilterer_PicksSubForFlatRow(t *testing.T) {
	row := []byte{90, 90, 90, 90, 90, 90, 90, 90, 90}
	zero := make([]byte, len(row))
	dst := make([]byte, 1+len(row))

	newFilterer(len(row)).filter(row, zero, dst)

	if dst[0] != ftSub {
		t.Errorf("expected Sub filter, got %d", dst[0])
	}
	expected := []byte{90, 90, 90, 0, 0, 0, 0, 0, 0}
	for i, want := range expected {
		if dst[1+i] != want {
			t.Errorf("byte %d: expected %d, got %d", i, want, dst[1+i])
		}
	}
}

func TestFilterer_KeepsNoneForZeroRow(t *testing.T) {
	row := make([]byte, 6)
	prev := []byte{1, 2, 3, 4, 5, 6}
	dst := make([]byte, 7)

	newFilterer(len(row)).filter(row, prev, dst)

	if dst[0] != ftNone {
		t.Errorf("expected None filter on a tie, got %d", dst[0])
	}
}

func TestScore(t *testing.T) {
	if got := score([]byte{1, 255, 128, 127}); got != 1+1+128+127 {
		t.Errorf("unexpected score %d", got)
	}
}
