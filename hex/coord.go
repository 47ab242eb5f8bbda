// Package hex provides coordinates for an infinite hexagonal tile grid:
// offset/cube conversion, adjacency, hex distance, bounded range enumeration,
// and a deterministic partition of the plane into fixed-size chunks.
//
// Everything here is pure value computation. Coords are small immutable
// values, safe to copy and to use concurrently.
package hex

import (
	"errors"
	"fmt"
)

// Coord is one cell of the grid. Storage is a rectangular offset pair
// using the odd-row-shifted convention: odd rows are displayed half a tile
// to the right, which shapes the offset-to-cube conversion below. The cube
// coordinates (Q, R, S) are derived on demand, never stored.
//
// Two coords are equal exactly when their offset pairs are equal, so the
// type works directly as a map key.
type Coord struct {
	X int
	Y int
}

// Origin is the coordinate (0,0).
var Origin = Coord{}

// ErrInvalidCube reports cube coordinates whose components do not sum to zero.
var ErrInvalidCube = errors.New("hex: cube coordinates must satisfy q+r+s=0")

// FromOffset builds a coordinate from an offset pair. It cannot fail.
func FromOffset(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// FromCube builds a coordinate from cube coordinates. The three components
// must sum to zero; anything else returns ErrInvalidCube.
func FromCube(q, r, s int) (Coord, error) {
	if q+r+s != 0 {
		return Coord{}, fmt.Errorf("%w: got (%d,%d,%d)", ErrInvalidCube, q, r, s)
	}
	return cubeToOffset(q, r), nil
}

// cubeToOffset converts already-validated cube coordinates to offset storage.
// Inverse of Q/R: x = q + floor((r - parity(r)) / 2), y = r.
func cubeToOffset(q, r int) Coord {
	return Coord{X: q + floorDiv(r-parity(r), 2), Y: r}
}

// Q returns the cube/axial column: x - floor((y - parity(y)) / 2).
func (c Coord) Q() int {
	return c.X - floorDiv(c.Y-parity(c.Y), 2)
}

// R returns the cube/axial row, which is the stored Y.
func (c Coord) R() int {
	return c.Y
}

// S returns the third cube axis. Q()+R()+S() is zero for every Coord.
func (c Coord) S() int {
	return -c.Q() - c.R()
}

// The six unit steps in cube space, in the order
// up-right, up-left, down-left, down-right, right, left.
var hexSteps = [6][2]int{
	{+1, -1},
	{0, -1},
	{-1, +1},
	{0, +1},
	{+1, 0},
	{-1, 0},
}

func (c Coord) hexStep(i int) Coord {
	return cubeToOffset(c.Q()+hexSteps[i][0], c.R()+hexSteps[i][1])
}

// UpRightHex returns the hex neighbor one step up-right (cube +1,-1,0).
func (c Coord) UpRightHex() Coord { return c.hexStep(0) }

// UpLeftHex returns the hex neighbor one step up-left (cube 0,-1,+1).
func (c Coord) UpLeftHex() Coord { return c.hexStep(1) }

// DownLeftHex returns the hex neighbor one step down-left (cube -1,+1,0).
func (c Coord) DownLeftHex() Coord { return c.hexStep(2) }

// DownRightHex returns the hex neighbor one step down-right (cube 0,+1,-1).
func (c Coord) DownRightHex() Coord { return c.hexStep(3) }

// RightHex returns the hex neighbor one step right (cube +1,0,-1).
func (c Coord) RightHex() Coord { return c.hexStep(4) }

// LeftHex returns the hex neighbor one step left (cube -1,0,+1).
func (c Coord) LeftHex() Coord { return c.hexStep(5) }

// Up, Down, Left and Right are neighbors on the rectangular offset grid the
// coords are stored in. This is a separate adjacency notion from the hex
// neighbors above: Up is not in general a single hex step away.

// Up returns the offset-grid neighbor at (x, y-1).
func (c Coord) Up() Coord { return Coord{X: c.X, Y: c.Y - 1} }

// Down returns the offset-grid neighbor at (x, y+1).
func (c Coord) Down() Coord { return Coord{X: c.X, Y: c.Y + 1} }

// Left returns the offset-grid neighbor at (x-1, y).
func (c Coord) Left() Coord { return Coord{X: c.X - 1, Y: c.Y} }

// Right returns the offset-grid neighbor at (x+1, y).
func (c Coord) Right() Coord { return Coord{X: c.X + 1, Y: c.Y} }

// HexDistanceTo returns the minimum number of single-hex steps between c and
// other. The sum of the cube deltas is always even for zero-sum cube
// coordinates, so the halving is exact.
func (c Coord) HexDistanceTo(other Coord) int {
	dq := abs(c.Q() - other.Q())
	dr := abs(c.R() - other.R())
	ds := abs(c.S() - other.S())
	return (dq + dr + ds) / 2
}

// String formats the offset (cartesian) form "(x,y)". Informational only;
// nothing parses it back.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CubeString formats the derived cube form "(q,r,s)".
func (c Coord) CubeString() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q(), c.R(), c.S())
}

// floorDiv is mathematical floor division. Go's / truncates toward zero,
// which disagrees with floor for negative dividends; the conversion and
// chunk formulas need true floor semantics there.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// parity is the non-negative remainder of n mod 2: 1 for every odd n,
// negative rows included.
func parity(n int) int {
	return n & 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
