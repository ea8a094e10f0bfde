package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ServerConfig is the TOML configuration for the serve command.
//
// Example fogbank.toml:
//
//	addr = ":8080"
//
//	[cache]
//	backend = "file"      # file, redis, or none
//	redis_url = "redis://localhost:6379/0"
//
//	[sessions]
//	backend = "memory"    # memory, file, or mongo
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "fogbank"
type ServerConfig struct {
	Addr     string         `toml:"addr"`
	Cache    CacheConfig    `toml:"cache"`
	Sessions SessionsConfig `toml:"sessions"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// SessionsConfig selects the session persistence backend.
type SessionsConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// defaultServerConfig returns the configuration used when no file is given.
func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr: ":8080",
		Cache: CacheConfig{
			Backend: "file",
		},
		Sessions: SessionsConfig{
			Backend:       "memory",
			MongoDatabase: "fogbank",
		},
	}
}

// loadServerConfig reads a TOML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func loadServerConfig(path string) (ServerConfig, error) {
	cfg := defaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
