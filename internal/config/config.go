package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all chunk service configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Store  StoreConfig  `yaml:"store"`
	World  WorldConfig  `yaml:"world"`
	Cache  CacheConfig  `yaml:"cache"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer        string `yaml:"issuer"`
	PublicKeyFile string `yaml:"public_key_file"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address       string `yaml:"address"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	RevokedPrefix string `yaml:"revoked_prefix"`
}

// StoreConfig holds chunk store settings
type StoreConfig struct {
	Path string `yaml:"path"`
}

// WorldConfig holds world generation settings
type WorldConfig struct {
	Seed int64 `yaml:"seed"`
}

// CacheConfig holds chunk cache settings
type CacheConfig struct {
	Prefix     string `yaml:"prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.RevokedPrefix == "" {
		cfg.Redis.RevokedPrefix = "revoked:"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./chunks.db"
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "hexgrid:"
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}

	return &cfg, nil
}
