package hex

// ChunkRadius is the radius of one chunk: a hex-shaped block of tiles used
// to partition the infinite grid into cacheable regions.
const ChunkRadius = 10

// TilesPerChunk is CountHexTilesInRadius(ChunkRadius). Every chunk contains
// exactly this many tiles.
const TilesPerChunk = 3*ChunkRadius*ChunkRadius + 3*ChunkRadius + 1

// Chunk returns the coordinate of the chunk containing c, expressed in the
// coarser chunk lattice. The assignment is a total function: every tile
// belongs to exactly one chunk and the chunks tile the plane with no gaps
// or overlap.
//
// Closed-form, no iteration: three floored ratios locate the tile against
// the chunk lattice, then a second round of floors snaps to the owning
// chunk's cube coordinates, which sum to zero by construction. Everything
// stays in exact integer floor division; floating-point intermediates would
// risk off-by-one flips right at chunk boundaries. Intermediates grow as
// shift*|coordinate|, far inside int range for any realistic grid.
func (c Coord) Chunk() Coord {
	const (
		area  = TilesPerChunk
		shift = 3*ChunkRadius + 2
	)
	q, r := c.Q(), c.R()
	s := -q - r
	tq := floorDiv(r+shift*q, area)
	tr := floorDiv(s+shift*r, area)
	ts := floorDiv(q+shift*s, area)
	return cubeToOffset(floorDiv(1+tq-tr, 3), floorDiv(1+tr-ts, 3))
}
