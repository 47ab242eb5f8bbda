package server

import (
	"log"
	"sync"
	"time"

	"github.com/cdanek/hexgrid/pkg/models"
)

// Session tracks the clients currently connected to this server instance
type Session struct {
	ID        string
	CreatedAt time.Time

	clients map[string]*models.Client // clientID -> Client
	mu      sync.RWMutex

	// Served request counters, for the status endpoint and shutdown log
	chunksServed int64
}

// NewSession creates a new session
func NewSession(id string) *Session {
	log.Printf("Creating session: %s", id)
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		clients:   make(map[string]*models.Client),
	}
}

// AddClient registers a client with the session
func (s *Session) AddClient(client *models.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client.SessionID = s.ID
	s.clients[client.ID] = client
	log.Printf("Client %s (%s) joined session %s", client.Username, client.ID, s.ID)
}

// RemoveClient removes a client from the session
func (s *Session) RemoveClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, exists := s.clients[clientID]; exists {
		log.Printf("Client %s (%s) left session %s", client.Username, clientID, s.ID)
		client.Connected = false
		delete(s.clients, clientID)
	}
}

// GetClient retrieves a client by ID
func (s *Session) GetClient(clientID string) (*models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, exists := s.clients[clientID]
	return client, exists
}

// ClientCount returns the number of connected clients
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// CountChunkServed bumps the served-chunk counter
func (s *Session) CountChunkServed() {
	s.mu.Lock()
	s.chunksServed++
	s.mu.Unlock()
}

// ChunksServed returns how many chunk records this session has served
func (s *Session) ChunksServed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunksServed
}

// Uptime returns how long the session has existed, in seconds
func (s *Session) Uptime() int64 {
	return int64(time.Since(s.CreatedAt).Seconds())
}
