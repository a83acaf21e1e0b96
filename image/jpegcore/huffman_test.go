package jpegcore

import "testing"

func TestExtend(t *testing.T) {
	cases := []struct {
		v, n, want int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, -1},
		{3, 2, 3},
		{0, 2, -3},
		{2, 2, 2},
	}
	for _, c := range cases {
		got := extend(c.v, c.n)
		if got != c.want {
			t.Errorf("extend(%d,%d) = %d, want %d", c.v, c.n, got, c.want)
		}
	}
}

func TestHuffTableSingleSymbol(t *testing.T) {
	// One symbol of code length 1 ("0").
	var counts [16]int
	counts[0] = 1
	h := newHuffTable(counts, []byte{0x05})
	if h.minCode[1] != 0 || h.maxCode[1] != 0 {
		t.Fatalf("unexpected code range: min=%d max=%d", h.minCode[1], h.maxCode[1])
	}
}

func TestZigzagIsPermutation(t *testing.T) {
	seen := make([]bool, 64)
	for _, idx := range zigzag {
		if idx < 0 || idx >= 64 || seen[idx] {
			t.Fatalf("zigzag table is not a permutation at index producing %d", idx)
		}
		seen[idx] = true
	}
}
