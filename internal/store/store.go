// Package store persists generated chunk records in SQLite so a restarted
// service serves identical chunk data without regenerating it.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cdanek/hexgrid/hex"
	"github.com/cdanek/hexgrid/internal/worldgen"
)

// DB wraps a SQLite connection for chunk record storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		biome TEXT NOT NULL,
		detail_seed INTEGER NOT NULL,
		tile_count INTEGER NOT NULL,
		generated_at INTEGER NOT NULL,
		PRIMARY KEY (q, r)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type chunkRow struct {
	Q          int    `db:"q"`
	R          int    `db:"r"`
	Biome      string `db:"biome"`
	DetailSeed int64  `db:"detail_seed"`
	TileCount  int    `db:"tile_count"`
}

// Put inserts or replaces the record for one chunk.
func (db *DB) Put(info worldgen.ChunkInfo) error {
	_, err := db.conn.Exec(`
		INSERT INTO chunks (q, r, biome, detail_seed, tile_count, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (q, r) DO UPDATE SET
			biome = excluded.biome,
			detail_seed = excluded.detail_seed,
			tile_count = excluded.tile_count,
			generated_at = excluded.generated_at`,
		info.Chunk.Q(), info.Chunk.R(), string(info.Biome),
		int64(info.DetailSeed), info.TileCount, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put chunk %v: %w", info.Chunk, err)
	}
	return nil
}

// Get loads the record for the given chunk coordinate. The second return is
// false when no record exists.
func (db *DB) Get(chunk hex.Coord) (worldgen.ChunkInfo, bool, error) {
	var row chunkRow
	err := db.conn.Get(&row,
		`SELECT q, r, biome, detail_seed, tile_count FROM chunks WHERE q = ? AND r = ?`,
		chunk.Q(), chunk.R())
	if errors.Is(err, sql.ErrNoRows) {
		return worldgen.ChunkInfo{}, false, nil
	}
	if err != nil {
		return worldgen.ChunkInfo{}, false, fmt.Errorf("get chunk %v: %w", chunk, err)
	}

	coord, err := hex.FromCube(row.Q, row.R, -row.Q-row.R)
	if err != nil {
		return worldgen.ChunkInfo{}, false, fmt.Errorf("corrupt chunk row (%d,%d): %w", row.Q, row.R, err)
	}
	return worldgen.ChunkInfo{
		Chunk:      coord,
		Biome:      worldgen.Biome(row.Biome),
		DetailSeed: uint64(row.DetailSeed),
		TileCount:  row.TileCount,
	}, true, nil
}

// Count returns the number of persisted chunk records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM chunks`); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}
