package store

import (
	"path/filepath"
	"testing"

	"github.com/cdanek/hexgrid/hex"
	"github.com/cdanek/hexgrid/internal/worldgen"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "chunks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	info := worldgen.ChunkInfo{
		Chunk:      hex.FromOffset(-3, 7),
		Biome:      worldgen.BiomeForest,
		DetailSeed: 0xdeadbeefcafe,
		TileCount:  hex.TilesPerChunk,
	}
	if err := db.Put(info); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := db.Get(hex.FromOffset(-3, 7))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("chunk not found after put")
	}
	if got != info {
		t.Fatalf("round trip mismatch: %+v != %+v", got, info)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get(hex.FromOffset(99, 99))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("found chunk that was never stored")
	}
}

func TestPutOverwrites(t *testing.T) {
	db := openTestDB(t)

	first := worldgen.ChunkInfo{
		Chunk: hex.Origin, Biome: worldgen.BiomePlains,
		DetailSeed: 1, TileCount: hex.TilesPerChunk,
	}
	second := first
	second.Biome = worldgen.BiomeDesert
	second.DetailSeed = 2

	if err := db.Put(first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := db.Put(second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, ok, err := db.Get(hex.Origin)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != second {
		t.Fatalf("overwrite not applied: %+v", got)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestCount(t *testing.T) {
	db := openTestDB(t)

	for y := 0; y < 4; y++ {
		info := worldgen.ChunkInfo{
			Chunk: hex.FromOffset(0, y), Biome: worldgen.BiomeOcean,
			DetailSeed: uint64(y), TileCount: hex.TilesPerChunk,
		}
		if err := db.Put(info); err != nil {
			t.Fatalf("put %d: %v", y, err)
		}
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Fatalf("count = %d, want 4", n)
	}
}
