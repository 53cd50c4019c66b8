package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML configuration for one bridge.
type File struct {
	// LogLevel is a slog level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Action describes the wrapped action binary.
	Action ActionFile `yaml:"action"`

	// dir is the directory holding the file; relative paths resolve against it.
	dir string
}

// ActionFile is the action section of a configuration file.
type ActionFile struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Path           string            `yaml:"path"`
	Args           []string          `yaml:"args"`
	Dir            string            `yaml:"dir"`
	Env            map[string]string `yaml:"env"`
	SearchPaths    []string          `yaml:"search_paths"`
	Timeout        time.Duration     `yaml:"timeout"`
	OutputPrefix   *string           `yaml:"output_prefix"`
	MaxOutputBytes int               `yaml:"max_output_bytes"`
	Digest         string            `yaml:"digest"`
	InputSchema    map[string]any    `yaml:"input_schema"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if len(data) == 0 {
		return nil, errors.New("read config: file is empty")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	f.dir = filepath.Dir(abs)

	return &f, nil
}

// Level parses LogLevel, defaulting to info.
func (f *File) Level() (slog.Level, error) {
	level := slog.LevelInfo
	if f.LogLevel == "" {
		return level, nil
	}

	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log_level: %w", err)
	}

	return level, nil
}

// Apply copies the file's settings onto o.
//
// A relative action dir is resolved against the directory holding the
// configuration file, and so is a relative action path when no dir is set.
// Settings absent from the file leave o unchanged.
func (f *File) Apply(o *Options) error {
	a := f.Action

	if a.Name != "" {
		o.Name = a.Name
	}

	if a.Description != "" {
		o.Description = a.Description
	}

	if a.Path != "" {
		o.Binary = a.Path
	}

	if a.Args != nil {
		o.Args = a.Args
	}

	if len(a.Env) > 0 {
		if o.Env == nil {
			o.Env = make(map[string]string, len(a.Env))
		}

		for k, v := range a.Env {
			o.Env[k] = v
		}
	}

	switch {
	case a.Dir != "" && filepath.IsAbs(a.Dir):
		o.Dir = a.Dir
	case a.Dir != "":
		o.Dir = filepath.Join(f.dir, a.Dir)
	case o.Dir == "" && a.Path != "" && !filepath.IsAbs(a.Path) && f.dir != "":
		o.Dir = f.dir
	}

	if a.SearchPaths != nil {
		o.SearchPaths = a.SearchPaths
	}

	if a.Timeout > 0 {
		o.Timeout = a.Timeout
	}

	if a.OutputPrefix != nil {
		prefix := *a.OutputPrefix
		o.OutputPrefix = &prefix
	}

	if a.MaxOutputBytes > 0 {
		o.MaxOutputBytes = a.MaxOutputBytes
	}

	if a.Digest != "" {
		o.Digest = a.Digest
	}

	if a.InputSchema != nil {
		schema, err := MapToSchema(a.InputSchema)
		if err != nil {
			return fmt.Errorf("action input_schema: %w", err)
		}

		o.InputSchema = schema
	}

	return nil
}

// MapToSchema converts a decoded JSON Schema document to *jsonschema.Schema.
func MapToSchema(m map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	return &schema, nil
}
