package models

import "time"

// Client represents an authenticated consumer of the chunk service
type Client struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`

	// Session state
	SessionID string `json:"session_id"`
}

// IsConnected checks if the client is currently connected
func (c *Client) IsConnected() bool {
	return c.Connected
}
