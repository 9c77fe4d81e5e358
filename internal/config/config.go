// Package config loads the optional usertable config file.
//
// The file is YAML. Before decoding it is checked against an embedded CUE
// schema, so unknown keys and out-of-range values are reported with their
// path instead of being silently ignored.
//
// Example:
//
//	database: ~/.local/share/usertable/users.db
//	storage_key: usertable.state
//	default_sort: nameLenDesc
//	log_level: debug
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/usertable/internal/persist"
	"github.com/roach88/usertable/internal/view"
)

//go:embed schema.cue
var schemaCUE string

// DefaultDatabase is the database path used when none is configured.
const DefaultDatabase = "usertable.db"

// Config holds file-level settings. Command-line flags override them.
type Config struct {
	Database    string `yaml:"database"`
	StorageKey  string `yaml:"storage_key"`
	DefaultSort string `yaml:"default_sort"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database:    DefaultDatabase,
		StorageKey:  persist.DefaultKey,
		DefaultSort: string(view.DefaultSort),
		LogLevel:    "info",
	}
}

// Load reads the config file at path and layers it over Default.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and decodes YAML config content.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate(raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// validate unifies raw with the #Config definition.
func validate(raw map[string]any) error {
	if raw == nil {
		return nil
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(raw))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// SortMode returns DefaultSort as a view.SortMode.
func (c Config) SortMode() (view.SortMode, error) {
	return view.ParseSortMode(c.DefaultSort)
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
