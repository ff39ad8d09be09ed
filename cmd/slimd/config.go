package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/killertux/goslim/internal/slim/codec"
)

// slimd config.toml key mapping to server runtime settings.
type fileConfig struct {
	Addr          string `toml:"addr"`
	MetricsAddr   string `toml:"metrics_addr"`
	LogLevel      string `toml:"log_level"`
	MaxValueBytes int    `toml:"max_value_bytes"`
	MaxListDepth  int    `toml:"max_list_depth"`
}

type serviceConfig struct {
	Addr        string
	MetricsAddr string
	LogLevel    string
	Limits      codec.Limits
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Addr:     ":8085",
		LogLevel: "info",
		Limits:   codec.DefaultLimits(),
	}
}

// slimd loader for TOML config with default overlay. An empty path keeps the
// defaults untouched.
func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load slimd config: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_value_bytes") {
		if raw.MaxValueBytes <= 0 {
			return serviceConfig{}, fmt.Errorf("load slimd config: max_value_bytes must be positive, got %d", raw.MaxValueBytes)
		}
		cfg.Limits.MaxValueBytes = raw.MaxValueBytes
	}
	if meta.IsDefined("max_list_depth") {
		if raw.MaxListDepth <= 0 {
			return serviceConfig{}, fmt.Errorf("load slimd config: max_list_depth must be positive, got %d", raw.MaxListDepth)
		}
		cfg.Limits.MaxListDepth = raw.MaxListDepth
	}
	if cfg.Addr == "" {
		return serviceConfig{}, fmt.Errorf("load slimd config: addr must not be empty")
	}
	return cfg, nil
}
