package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeChunkAt  = "chunk_at"
	MsgTypeRange    = "range"
	MsgTypeDistance = "distance"
	MsgTypePing     = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome        = "welcome"
	MsgTypeChunkData      = "chunk_data"
	MsgTypeRangeResult    = "range_result"
	MsgTypeDistanceResult = "distance_result"
	MsgTypeError          = "error"
	MsgTypePong           = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Point is an offset coordinate pair on the wire.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- Client Message Payloads ---

// ChunkAtPayload asks which chunk owns the tile at (x,y), and for that
// chunk's generated record.
type ChunkAtPayload struct {
	Tile Point `json:"tile"`
}

// RangePayload asks for every tile within radius hex steps of center.
type RangePayload struct {
	Center Point `json:"center"`
	Radius int   `json:"radius"`
}

// DistancePayload asks for the hex distance between two tiles.
type DistancePayload struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to the client after successful connection
type WelcomePayload struct {
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	SessionID   string `json:"session_id"`
	ChunkRadius int    `json:"chunk_radius"`
	WorldSeed   int64  `json:"world_seed"`
}

// ChunkDataPayload carries one chunk's coordinate and generated record.
type ChunkDataPayload struct {
	Tile       Point  `json:"tile"`
	Chunk      Point  `json:"chunk"`
	Biome      string `json:"biome"`
	DetailSeed uint64 `json:"detail_seed"`
	TileCount  int    `json:"tile_count"`
}

// RangeResultPayload lists the tiles within the requested radius. An
// out-of-bounds radius yields an empty list, mirroring the coordinate
// core's saturating policy; it is not an error.
type RangeResultPayload struct {
	Center Point   `json:"center"`
	Radius int     `json:"radius"`
	Count  int     `json:"count"`
	Tiles  []Point `json:"tiles"`
}

// DistanceResultPayload reports the hex distance between two tiles.
type DistanceResultPayload struct {
	From     Point `json:"from"`
	To       Point `json:"to"`
	Distance int   `json:"distance"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
