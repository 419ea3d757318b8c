// Package config loads the YAML settings file of the velox command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ostnam/velox/pkg/eval"
)

type Config struct {
	MaxLoopIterations int    `yaml:"max_loop_iterations"`
	MaxCallDepth      int    `yaml:"max_call_depth"`
	LogLevel          string `yaml:"log_level"`
	HistoryFile       string `yaml:"history_file"`
	Debug             bool   `yaml:"debug"`
}

const DefaultHistoryFile = "~/.velox_history"

func Default() Config {
	return Config{
		MaxLoopIterations: 0,
		MaxCallDepth:      eval.DefaultMaxCallDepth,
		LogLevel:          "info",
		HistoryFile:       DefaultHistoryFile,
	}
}

// Reads path on top of Default(). Unknown keys are an error.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer file.Close()
	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.MaxLoopIterations < 0 {
		return fmt.Errorf("max_loop_iterations must not be negative, got %d", cfg.MaxLoopIterations)
	}
	return nil
}

func (cfg Config) Runtime(out io.Writer) eval.RuntimeConfig {
	return eval.RuntimeConfig{
		Output:            out,
		MaxLoopIterations: cfg.MaxLoopIterations,
		MaxCallDepth:      cfg.MaxCallDepth,
	}
}

// History file path with a leading ~ expanded. Empty disables history.
func (cfg Config) HistoryPath() string {
	path := cfg.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
