package hex

import (
	"errors"
	"testing"
)

func mustCube(t *testing.T, q, r, s int) Coord {
	t.Helper()
	c, err := FromCube(q, r, s)
	if err != nil {
		t.Fatalf("FromCube(%d,%d,%d): unexpected error: %v", q, r, s, err)
	}
	return c
}

func TestCubeInvariantHolds(t *testing.T) {
	for x := -9; x <= 9; x++ {
		for y := -9; y <= 9; y++ {
			c := FromOffset(x, y)
			if sum := c.Q() + c.R() + c.S(); sum != 0 {
				t.Fatalf("(%d,%d): q+r+s = %d, want 0", x, y, sum)
			}
		}
	}
}

func TestOffsetCubeRoundTrip(t *testing.T) {
	for x := -9; x <= 9; x++ {
		for y := -9; y <= 9; y++ {
			c := FromOffset(x, y)
			back := mustCube(t, c.Q(), c.R(), c.S())
			if back != c {
				t.Fatalf("round trip of (%d,%d): got %v", x, y, back)
			}
		}
	}
}

// Conversions on negative odd rows are where truncating division would go
// wrong, so those cases are pinned to explicit expected values.
func TestConversionNegativeOddRows(t *testing.T) {
	cases := []struct {
		x, y    int
		q, r, s int
	}{
		{0, 0, 0, 0, 0},
		{0, -1, 1, -1, 0},
		{0, -3, 2, -3, 1},
		{0, 3, -1, 3, -2},
		{2, 3, 1, 3, -4},
		{5, -4, 7, -4, -3},
		{-4, -5, -1, -5, 6},
	}
	for _, tc := range cases {
		c := FromOffset(tc.x, tc.y)
		if c.Q() != tc.q || c.R() != tc.r || c.S() != tc.s {
			t.Fatalf("(%d,%d): got cube (%d,%d,%d), want (%d,%d,%d)",
				tc.x, tc.y, c.Q(), c.R(), c.S(), tc.q, tc.r, tc.s)
		}
		if back := mustCube(t, tc.q, tc.r, tc.s); back != c {
			t.Fatalf("FromCube(%d,%d,%d): got %v, want %v", tc.q, tc.r, tc.s, back, c)
		}
	}
}

func TestFromCubeRejectsNonZeroSum(t *testing.T) {
	if _, err := FromCube(1, 1, 1); !errors.Is(err, ErrInvalidCube) {
		t.Fatalf("FromCube(1,1,1): got %v, want ErrInvalidCube", err)
	}
	if _, err := FromCube(2, -1, 0); !errors.Is(err, ErrInvalidCube) {
		t.Fatalf("FromCube(2,-1,0): got %v, want ErrInvalidCube", err)
	}
}

func TestEquality(t *testing.T) {
	if FromOffset(2, 3) != FromOffset(2, 3) {
		t.Fatal("equal offset pairs must compare equal")
	}
	if FromOffset(2, 3) == FromOffset(3, 2) {
		t.Fatal("distinct offset pairs must not compare equal")
	}
	seen := map[Coord]bool{FromOffset(2, 3): true}
	if !seen[FromOffset(2, 3)] {
		t.Fatal("map lookup by equal coord failed")
	}
}

func TestHexNeighbors(t *testing.T) {
	centers := []Coord{
		Origin,
		FromOffset(0, -1),
		FromOffset(3, 7),
		FromOffset(-5, -8),
		FromOffset(100, -101),
	}
	for _, c := range centers {
		neighbors := []Coord{
			c.UpRightHex(), c.UpLeftHex(), c.DownLeftHex(),
			c.DownRightHex(), c.RightHex(), c.LeftHex(),
		}
		seen := make(map[Coord]bool, 6)
		for _, n := range neighbors {
			if d := c.HexDistanceTo(n); d != 1 {
				t.Fatalf("neighbor %v of %v at distance %d, want 1", n, c, d)
			}
			if seen[n] {
				t.Fatalf("duplicate neighbor %v of %v", n, c)
			}
			seen[n] = true
		}
	}
}

func TestHexNeighborsOfOrigin(t *testing.T) {
	cases := []struct {
		name string
		got  Coord
		want Coord
	}{
		{"up-right", Origin.UpRightHex(), FromOffset(0, -1)},
		{"up-left", Origin.UpLeftHex(), FromOffset(-1, -1)},
		{"down-left", Origin.DownLeftHex(), FromOffset(-1, 1)},
		{"down-right", Origin.DownRightHex(), FromOffset(0, 1)},
		{"right", Origin.RightHex(), FromOffset(1, 0)},
		{"left", Origin.LeftHex(), FromOffset(-1, 0)},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s neighbor of origin: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestCartesianNeighbors(t *testing.T) {
	c := FromOffset(4, -7)
	if got := c.Up(); got != FromOffset(4, -8) {
		t.Fatalf("Up: got %v", got)
	}
	if got := c.Down(); got != FromOffset(4, -6) {
		t.Fatalf("Down: got %v", got)
	}
	if got := c.Left(); got != FromOffset(3, -7) {
		t.Fatalf("Left: got %v", got)
	}
	if got := c.Right(); got != FromOffset(5, -7) {
		t.Fatalf("Right: got %v", got)
	}
}

func TestHexDistance(t *testing.T) {
	pairs := []struct {
		a, b Coord
		want int
	}{
		{Origin, Origin, 0},
		{Origin, FromOffset(1, 0), 1},
		{Origin, FromOffset(0, -1), 1},
		{FromOffset(-3, -3), FromOffset(-3, -3), 0},
	}
	for _, tc := range pairs {
		if got := tc.a.HexDistanceTo(tc.b); got != tc.want {
			t.Fatalf("distance %v -> %v: got %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}

	// Symmetry over a spread of coordinates.
	coords := []Coord{
		Origin, FromOffset(1, -1), FromOffset(-4, 7), FromOffset(12, 3), FromOffset(-9, -9),
	}
	for _, a := range coords {
		for _, b := range coords {
			if a.HexDistanceTo(b) != b.HexDistanceTo(a) {
				t.Fatalf("distance not symmetric for %v, %v", a, b)
			}
		}
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{4, 2, 2},
		{5, 2, 2},
		{-4, 2, -2},
		{-5, 2, -3},
		{-1, 3, -1},
		{1, 3, 0},
		{-331, 331, -1},
		{-332, 331, -2},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("floorDiv(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	c := FromOffset(0, -3)
	if got := c.String(); got != "(0,-3)" {
		t.Fatalf("String: got %q", got)
	}
	if got := c.CubeString(); got != "(2,-3,1)" {
		t.Fatalf("CubeString: got %q", got)
	}
}
