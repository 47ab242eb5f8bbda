package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunkd.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 9100
jwt:
  issuer: login.example.com
  public_key_file: /etc/chunkd/jwt.pem
redis:
  address: redis:6379
  db: 2
world:
  seed: 1337
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9100 {
		t.Fatalf("server section: %+v", cfg.Server)
	}
	if cfg.JWT.Issuer != "login.example.com" {
		t.Fatalf("jwt issuer: %q", cfg.JWT.Issuer)
	}
	if cfg.Redis.Address != "redis:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("redis section: %+v", cfg.Redis)
	}
	if cfg.World.Seed != 1337 {
		t.Fatalf("world seed: %d", cfg.World.Seed)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `jwt: {issuer: x}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port: %d", cfg.Server.Port)
	}
	if cfg.Redis.Address != "localhost:6379" || cfg.Redis.RevokedPrefix != "revoked:" {
		t.Fatalf("redis defaults: %+v", cfg.Redis)
	}
	if cfg.Store.Path != "./chunks.db" {
		t.Fatalf("store default: %q", cfg.Store.Path)
	}
	if cfg.Cache.Prefix != "hexgrid:" || cfg.Cache.TTLSeconds != 300 {
		t.Fatalf("cache defaults: %+v", cfg.Cache)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
