package config

import (
	"fmt"
	"os"

	"github.com/1homsi/goflow/internal/taint"
	"github.com/1homsi/goflow/profiles"
	"gopkg.in/yaml.v3"
)

// rawTaintConfig mirrors the YAML structure of the taint-config
// document before its operand indices and rules are resolved into
// taint.Config, the same raw-struct-then-resolve shape
// internal/capability/patternset.go uses for its own YAML.
type rawTaintConfig struct {
	Sources []struct {
		Method string `yaml:"method"`
		Type   string `yaml:"type"`
	} `yaml:"sources"`
	Sinks []struct {
		Method string `yaml:"method"`
		Index  int    `yaml:"index"`
	} `yaml:"sinks"`
	Transfers []struct {
		Method string `yaml:"method"`
		From   int    `yaml:"from"`
		To     int    `yaml:"to"`
		Type   string `yaml:"type"`
	} `yaml:"transfers"`
}

// LoadTaintConfig reads and parses a taint-config YAML document from path,
// or the embedded default profile when path is empty (the on-disk
// taint-config reader, an out-of-core collaborator).
func LoadTaintConfig(path string) (taint.Config, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = profiles.FS.ReadFile("default.yaml")
		if err != nil {
			return taint.Config{}, fmt.Errorf("load embedded default taint profile: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return taint.Config{}, fmt.Errorf("load taint-config %s: %w", path, err)
		}
	}

	var raw rawTaintConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return taint.Config{}, fmt.Errorf("parse taint-config: %w", err)
	}

	cfg := taint.Config{
		Sources:   make([]taint.SourceRule, len(raw.Sources)),
		Sinks:     make([]taint.SinkRule, len(raw.Sinks)),
		Transfers: make([]taint.TransferRule, len(raw.Transfers)),
	}
	for i, s := range raw.Sources {
		if s.Method == "" {
			return taint.Config{}, fmt.Errorf("taint-config: source %d missing method", i)
		}
		cfg.Sources[i] = taint.SourceRule{Method: s.Method, Type: s.Type}
	}
	for i, s := range raw.Sinks {
		if s.Method == "" {
			return taint.Config{}, fmt.Errorf("taint-config: sink %d missing method", i)
		}
		cfg.Sinks[i] = taint.SinkRule{Method: s.Method, Index: s.Index}
	}
	for i, t := range raw.Transfers {
		if t.Method == "" {
			return taint.Config{}, fmt.Errorf("taint-config: transfer %d missing method", i)
		}
		cfg.Transfers[i] = taint.TransferRule{Method: t.Method, From: t.From, To: t.To, Type: t.Type}
	}
	return cfg, nil
}
