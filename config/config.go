// Package config loads the ports, file paths, and role settings shared by
// the cmd/* entry points from an optional YAML file laid over built-in
// defaults — generalizing the teacher's hardcoded constants (prot_utils.rs's
// SERVER_PORT et al., notary.go's "Listening on :10011") into an
// operator-editable configuration. No flag or environment variable
// overrides a loaded value.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the Server, Client, Arbiter, and setup CLIs
// read at startup.
type Config struct {
	// Protocol selects Protocol I (pure-FHE) or Protocol II (hybrid).
	Protocol int `yaml:"protocol"`

	ServerAddr  string `yaml:"server_addr"`
	ClientAddr  string `yaml:"client_addr"`
	ArbiterAddr string `yaml:"arbiter_addr"`
	MetricsAddr string `yaml:"metrics_addr"`

	DataFile string `yaml:"data_file"`
	HashFile string `yaml:"hash_file"`

	SigningKeyPath string `yaml:"signing_key_path"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration matching original_source/prot_utils.rs's
// constants: Server on 9001, Client on 9002, Arbiter/SmartContract on 9003.
func Default() Config {
	return Config{
		Protocol:       1,
		ServerAddr:     "127.0.0.1:9001",
		ClientAddr:     "127.0.0.1:9002",
		ArbiterAddr:    "127.0.0.1:9003",
		MetricsAddr:    "127.0.0.1:9100",
		DataFile:       "data.txt",
		HashFile:       "hash.txt",
		SigningKeyPath: "arbiter-signing-key.pem",
		LogLevel:       "info",
	}
}

// Load reads a YAML config file at path, overlaying it onto Default(). A
// missing file is not an error — the defaults are used as-is, matching the
// teacher's comfort with hardcoded fallbacks for local/dev runs.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
