package hex

// MaxSearchRange bounds HexesInRange. Requests outside [0, MaxSearchRange]
// leave the output buffer untouched instead of returning an error; callers
// that need a signal must bounds-check before calling.
const MaxSearchRange = 50

// CountHexTilesInRadius returns the number of tiles in a hex-shaped region
// of the given radius: 3r^2 + 3r + 1. Valid for any non-negative radius,
// unlike HexesInRange it is not capped at MaxSearchRange.
func CountHexTilesInRadius(radius int) int {
	return 3*radius*radius + 3*radius + 1
}

// TilesInRadius maps radius to tile count for radii 0..MaxSearchRange,
// precomputed so callers can presize buffers without the formula.
var TilesInRadius [MaxSearchRange + 1]int

func init() {
	for r := range TilesInRadius {
		TilesInRadius[r] = CountHexTilesInRadius(r)
	}
}

// HexesInRange appends every coordinate within rng hex steps of c to buf and
// returns the extended buffer. The result always holds exactly
// CountHexTilesInRadius(rng) coordinates regardless of where c sits; presize
// buf with TilesInRadius to keep the call allocation-free.
//
// A rng outside [0, MaxSearchRange] is a saturating no-op: buf comes back
// unchanged, with no error. Callers reusing one buffer across calls must not
// share it between concurrent enumerations.
func (c Coord) HexesInRange(rng int, buf []Coord) []Coord {
	if rng < 0 || rng > MaxSearchRange {
		return buf
	}
	q, r := c.Q(), c.R()
	for dq := -rng; dq <= rng; dq++ {
		// Clamping dr to the diamond intersection keeps the shape a hexagon.
		lo := max(-rng, -dq-rng)
		hi := min(rng, -dq+rng)
		for dr := lo; dr <= hi; dr++ {
			buf = append(buf, cubeToOffset(q+dq, r+dr))
		}
	}
	return buf
}
