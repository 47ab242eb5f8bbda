package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cdanek/hexgrid/internal/config"
	"github.com/cdanek/hexgrid/pkg/models"
)

// JWTValidator handles JWT token validation
type JWTValidator struct {
	config    *config.Config
	publicKey *ecdsa.PublicKey
	redis     *redis.Client
	ctx       context.Context
}

// Claims represents JWT token claims issued by the login service
type Claims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Permissions int64  `json:"permissions"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a validator from the configured PEM public key file
func NewJWTValidator(cfg *config.Config, redisClient *redis.Client) (*JWTValidator, error) {
	key, err := loadPublicKey(cfg.JWT.PublicKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load public key: %w", err)
	}

	log.Printf("JWT validator initialized with key from %s", cfg.JWT.PublicKeyFile)
	return &JWTValidator{
		config:    cfg,
		publicKey: key,
		redis:     redisClient,
		ctx:       context.Background(),
	}, nil
}

// loadPublicKey reads and parses a PEM-encoded ECDSA public key
func loadPublicKey(path string) (*ecdsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	ecdsaKey, ok := pubKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not ECDSA")
	}

	return ecdsaKey, nil
}

// ValidateToken validates a JWT token and returns the client it identifies
func (v *JWTValidator) ValidateToken(tokenString string) (*models.Client, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.config.JWT.Issuer, claims.Issuer)
	}

	// Check the Redis revocation list. Redis being down must not lock every
	// client out, so errors only warn.
	userIDStr := strconv.FormatInt(claims.UserID, 10)
	revokedKey := v.config.Redis.RevokedPrefix + userIDStr

	isRevoked, err := v.redis.Exists(v.ctx, revokedKey).Result()
	if err != nil {
		log.Printf("Warning: Failed to check revocation list: %v", err)
	} else if isRevoked > 0 {
		return nil, fmt.Errorf("token is revoked")
	}

	return &models.Client{
		ID:          userIDStr,
		Username:    claims.Username,
		Permissions: claims.Permissions,
		Connected:   true,
		ConnectedAt: time.Now(),
	}, nil
}

// extractTokenFromHeader extracts a JWT token from a WebSocket upgrade request
func extractTokenFromHeader(r *http.Request) string {
	// Try Sec-WebSocket-Protocol header first (recommended)
	// Format: "access_token, <token>"
	if protocols := r.Header.Get("Sec-WebSocket-Protocol"); protocols != "" {
		var parts []string
		for _, p := range strings.Split(protocols, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 2 && parts[0] == "access_token" {
			return parts[1]
		}
	}

	// Try Authorization header
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return auth[len("Bearer "):]
	}

	// Try query parameter (less secure, but supported)
	return r.URL.Query().Get("token")
}
