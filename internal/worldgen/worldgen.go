// Package worldgen derives deterministic biome descriptions for hex chunks.
// Generation is a pure function of (world seed, chunk coordinate): the same
// inputs produce the same record in any call order, so records can be cached
// or regenerated freely.
package worldgen

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/cdanek/hexgrid/hex"
)

// Biome classifies the dominant terrain of one chunk.
type Biome string

const (
	BiomeOcean    Biome = "ocean"
	BiomePlains   Biome = "plains"
	BiomeForest   Biome = "forest"
	BiomeDesert   Biome = "desert"
	BiomeMountain Biome = "mountain"
	BiomeTundra   Biome = "tundra"
)

// ChunkInfo describes one generated chunk, keyed by its chunk coordinate.
type ChunkInfo struct {
	Chunk      hex.Coord `json:"chunk"`
	Biome      Biome     `json:"biome"`
	DetailSeed uint64    `json:"detail_seed"`
	TileCount  int       `json:"tile_count"`
}

// Generator produces chunk descriptions from layered simplex noise.
type Generator struct {
	seed        int64
	elevation   opensimplex.Noise
	moisture    opensimplex.Noise
	temperature opensimplex.Noise
}

// New creates a generator for the given world seed.
func New(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		elevation:   opensimplex.NewNormalized(seed),
		moisture:    opensimplex.NewNormalized(seed + 1),
		temperature: opensimplex.NewNormalized(seed + 2),
	}
}

// Seed returns the world seed the generator was built from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// ChunkInfo returns the deterministic description of the given chunk.
// Noise is sampled at the chunk's position in the chunk lattice, treated as
// its own pointy-top hex grid.
func (g *Generator) ChunkInfo(chunk hex.Coord) ChunkInfo {
	q, r := chunk.Q(), chunk.R()
	x := float64(q) + float64(r)*0.5
	y := float64(r) * math.Sqrt(3) / 2

	elev := octaveNoise(g.elevation, x, y, 4, 0.15, 0.5)
	moist := octaveNoise(g.moisture, x, y, 3, 0.11, 0.5)
	temp := octaveNoise(g.temperature, x, y, 3, 0.09, 0.5)

	return ChunkInfo{
		Chunk:      chunk,
		Biome:      classify(elev, moist, temp),
		DetailSeed: g.detailSeed(chunk),
		TileCount:  hex.TilesPerChunk,
	}
}

// detailSeed mixes the world seed with the chunk coordinate into a stable
// 64-bit salt for per-tile detail generation downstream.
func (g *Generator) detailSeed(chunk hex.Coord) uint64 {
	var b [24]byte
	binary.LittleEndian.PutUint64(b[0:], uint64(g.seed))
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(chunk.X)))
	binary.LittleEndian.PutUint64(b[16:], uint64(int64(chunk.Y)))
	return xxhash.Sum64(b[:])
}

// octaveNoise sums octaves of normalized noise and renormalizes to [0,1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

func classify(elev, moist, temp float64) Biome {
	switch {
	case elev < 0.30:
		return BiomeOcean
	case elev > 0.74:
		return BiomeMountain
	case temp < 0.26:
		return BiomeTundra
	case moist < 0.32:
		return BiomeDesert
	case moist > 0.58:
		return BiomeForest
	default:
		return BiomePlains
	}
}
