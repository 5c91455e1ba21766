package strategyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a strategy YAML document, returning the config
// together with the raw bytes for audit. KnownFields makes a typo or an
// orphaned field a load failure instead of a silently ignored line.
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read strategy config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("decode strategy config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, data, err
	}

	return &cfg, data, nil
}

// Hash generates a reproducible SHA-256 over the config's canonical JSON.
// Structs, not maps, keep the field order deterministic.
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// applyDefaults fills the optional knobs a document may omit.
func applyDefaults(cfg *Config) {
	if cfg.Judgment.MinConfidence == 0 {
		cfg.Judgment.MinConfidence = 0.5
	}
	if cfg.Fetch.RequestsPerWindow == 0 {
		cfg.Fetch.RequestsPerWindow = 5
	}
	if cfg.Fetch.WindowSeconds == 0 {
		cfg.Fetch.WindowSeconds = 1
	}
	if cfg.Fetch.MaxConcurrent == 0 {
		cfg.Fetch.MaxConcurrent = 4
	}
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = 3
	}
	if cfg.Fetch.BaseDelayMs == 0 {
		cfg.Fetch.BaseDelayMs = 500
	}
	if cfg.Fetch.MaxDelayMs == 0 {
		cfg.Fetch.MaxDelayMs = 8000
	}
	if cfg.Fetch.AttemptTimeoutMs == 0 {
		cfg.Fetch.AttemptTimeoutMs = 10000
	}
}
