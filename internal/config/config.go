// Package config loads the mtrie CLI/server's YAML configuration file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI/server's on-disk configuration.
type Config struct {
	// ListenAddr is the address the "serve" subcommand binds to.
	ListenAddr string `yaml:"listen_addr"`
	// Hasher selects the digest function: "sha256" (default) or "blake2b".
	Hasher string `yaml:"hasher"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// DumpPath is the flat key-value export file the CLI operates on.
	DumpPath string `yaml:"dump_path"`
}

// Default returns the configuration used when no --config flag is given.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Hasher:     "sha256",
		LogLevel:   "info",
		DumpPath:   "mtrie.dump",
	}
}

// Load reads and parses a YAML config file at path, starting from Default()
// so an omitted field keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
