package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cdanek/hexgrid/hex"
	"github.com/cdanek/hexgrid/internal/network"
	"github.com/cdanek/hexgrid/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ws     *websocket.Conn
	server *Server
	client *models.Client

	// Buffered channel for outbound messages
	send      chan []byte
	closeOnce sync.Once

	// Reusable buffer for range enumeration; one goroutine reads from the
	// socket at a time, so this is never shared.
	rangeBuf []hex.Coord
}

// NewConnection creates a new connection for an authenticated client
func NewConnection(ws *websocket.Conn, server *Server, client *models.Client) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		client: client,
		send:   make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeChunkAt:
		c.handleChunkAt(msg.Payload)

	case network.MsgTypeRange:
		c.handleRange(msg.Payload)

	case network.MsgTypeDistance:
		c.handleDistance(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// sendWelcome sends the session handshake after a successful upgrade
func (c *Connection) sendWelcome() {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID:    c.client.ID,
			Username:    c.client.Username,
			SessionID:   c.server.session.ID,
			ChunkRadius: hex.ChunkRadius,
			WorldSeed:   c.server.generator.Seed(),
		},
	})
}

// handleChunkAt resolves the chunk owning a tile and returns its record
func (c *Connection) handleChunkAt(payload json.RawMessage) {
	var req network.ChunkAtPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_chunk_at", "Invalid chunk_at payload")
		return
	}

	tile := hex.FromOffset(req.Tile.X, req.Tile.Y)
	info := c.server.chunkInfo(c.server.ctx, tile.Chunk())
	c.server.session.CountChunkServed()

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeChunkData,
		Payload: network.ChunkDataPayload{
			Tile:       req.Tile,
			Chunk:      network.Point{X: info.Chunk.X, Y: info.Chunk.Y},
			Biome:      string(info.Biome),
			DetailSeed: info.DetailSeed,
			TileCount:  info.TileCount,
		},
	})
}

// handleRange enumerates the tiles within a radius of a center tile. A
// radius outside [0, MaxSearchRange] comes back as an empty list, matching
// the coordinate core's saturating no-op.
func (c *Connection) handleRange(payload json.RawMessage) {
	var req network.RangePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_range", "Invalid range payload")
		return
	}

	if c.rangeBuf == nil && req.Radius >= 0 && req.Radius <= hex.MaxSearchRange {
		c.rangeBuf = make([]hex.Coord, 0, hex.TilesInRadius[req.Radius])
	}
	center := hex.FromOffset(req.Center.X, req.Center.Y)
	coords := center.HexesInRange(req.Radius, c.rangeBuf[:0])
	c.rangeBuf = coords

	tiles := make([]network.Point, len(coords))
	for i, coord := range coords {
		tiles[i] = network.Point{X: coord.X, Y: coord.Y}
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeRangeResult,
		Payload: network.RangeResultPayload{
			Center: req.Center,
			Radius: req.Radius,
			Count:  len(tiles),
			Tiles:  tiles,
		},
	})
}

// handleDistance computes the hex distance between two tiles
func (c *Connection) handleDistance(payload json.RawMessage) {
	var req network.DistancePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_distance", "Invalid distance payload")
		return
	}

	from := hex.FromOffset(req.From.X, req.From.Y)
	to := hex.FromOffset(req.To.X, req.To.Y)

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeDistanceResult,
		Payload: network.DistanceResultPayload{
			From:     req.From,
			To:       req.To,
			Distance: from.HexDistanceTo(to),
		},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. Safe to call from both the read pump and
// server shutdown.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.ws.Close()
	})
}
