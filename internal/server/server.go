package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cdanek/hexgrid/hex"
	"github.com/cdanek/hexgrid/internal/cache"
	"github.com/cdanek/hexgrid/internal/config"
	"github.com/cdanek/hexgrid/internal/store"
	"github.com/cdanek/hexgrid/internal/worldgen"
)

// Server serves hex chunk data over WebSocket
type Server struct {
	config       *config.Config
	session      *Session
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client

	// Chunk data pipeline: Redis cache in front of the SQLite store in
	// front of deterministic generation.
	generator *worldgen.Generator
	cache     *cache.Cache
	store     *store.DB

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing chunk server...")

	ctx, cancel := context.WithCancel(context.Background())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis")

	chunkStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open chunk store: %w", err)
	}
	log.Printf("Chunk store open at %s", cfg.Store.Path)

	srv := &Server{
		config:      cfg,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		redis:       redisClient,
		generator:   worldgen.New(cfg.World.Seed),
		cache:       cache.New(redisClient, cfg.Cache.Prefix, time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		store:       chunkStore,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Add proper origin checking in production
				return true
			},
		},
	}

	jwtValidator, err := NewJWTValidator(cfg, redisClient)
	if err != nil {
		cancel()
		chunkStore.Close()
		return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
	}
	srv.jwtValidator = jwtValidator

	srv.session = NewSession(uuid.NewString())

	log.Println("Server initialized successfully")
	return srv, nil
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	s.connMu.Lock()
	for conn := range s.connections {
		conn.Close()
	}
	s.connMu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("Chunk store close error: %v", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}

	log.Printf("Served %d chunk records over %ds", s.session.ChunksServed(), s.session.Uptime())
	log.Println("Server shutdown complete")
	return nil
}

// chunkInfo resolves one chunk record through the cache-aside pipeline:
// Redis, then the durable store, then deterministic generation. Whatever
// layer misses gets backfilled on the way out.
func (s *Server) chunkInfo(ctx context.Context, chunk hex.Coord) worldgen.ChunkInfo {
	if info, ok := s.cache.Get(ctx, chunk); ok {
		return info
	}

	info, ok, err := s.store.Get(chunk)
	if err != nil {
		log.Printf("Chunk store read failed for %v, regenerating: %v", chunk, err)
	}
	if !ok || err != nil {
		info = s.generator.ChunkInfo(chunk)
		if err := s.store.Put(info); err != nil {
			log.Printf("Failed to persist chunk %v: %v", chunk, err)
		}
	}

	s.cache.Put(ctx, info)
	return info
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		log.Printf("Missing JWT token from %s", r.RemoteAddr)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	client, err := s.jwtValidator.ValidateToken(tokenString)
	if err != nil {
		log.Printf("Invalid JWT token from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	log.Printf("Authenticated client: %s (%s) from %s", client.Username, client.ID, r.RemoteAddr)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s, client)

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	s.session.AddClient(client)
	conn.sendWelcome()

	log.Printf("WebSocket connection established: %s (%s)", client.Username, r.RemoteAddr)

	// Handle connection (blocking)
	conn.Handle()

	s.session.RemoveClient(client.ID)
	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s (%s)", client.Username, r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","clients":%d}`, s.session.ClientCount())
}
