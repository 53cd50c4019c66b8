package action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wagiedev/action-bridge-go/internal/errors"
)

// Config holds configuration for action binary resolution.
type Config struct {
	// Binary is the configured action: a path or a bare executable name.
	Binary string

	// Dir is the base for a relative Binary and the last place a bare name
	// is searched.
	Dir string

	// SearchPaths are directories checked for a bare name after PATH.
	SearchPaths []string

	// Logger is an optional logger for resolution.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Resolver locates the action binary.
type Resolver interface {
	// Resolve returns the path to execute. When the binary cannot be found
	// it returns the best candidate path together with an
	// *errors.ActionNotFoundError.
	Resolve(ctx context.Context) (string, error)
}

// resolver implements the Resolver interface.
type resolver struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that resolver implements Resolver.
var _ Resolver = (*resolver)(nil)

// NewResolver creates a new action resolver with the given configuration.
func NewResolver(cfg *Config) Resolver {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &resolver{
		cfg: cfg,
		log: log,
	}
}

// Resolve locates the action binary.
func (r *resolver) Resolve(_ context.Context) (string, error) {
	binary := r.cfg.Binary
	if binary == "" {
		return "", errors.ErrBinaryRequired
	}

	if isExplicitPath(binary) {
		return r.resolveExplicit(binary)
	}

	return r.search(binary)
}

// resolveExplicit handles a binary given as a path.
func (r *resolver) resolveExplicit(binary string) (string, error) {
	path := binary

	if !filepath.IsAbs(path) {
		if r.cfg.Dir == "" {
			return "", fmt.Errorf("relative action path %q requires a working directory", binary)
		}

		path = filepath.Join(r.cfg.Dir, path)
	}

	r.log.Debug("Using explicit action path", "path", path)

	if _, err := os.Stat(path); err != nil {
		r.log.Debug("Explicit action path not found", "path", path, "error", err)

		return path, &errors.ActionNotFoundError{Name: binary, SearchedPaths: []string{path}}
	}

	return path, nil
}

// search looks for a bare executable name.
func (r *resolver) search(name string) (string, error) {
	searchedPaths := make([]string, 0, len(r.cfg.SearchPaths)+2)

	r.log.Debug("Searching for action in PATH", "name", name)

	if path, err := exec.LookPath(name); err == nil {
		r.log.Debug("Found action in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	dirs := append([]string(nil), r.cfg.SearchPaths...)
	if r.cfg.Dir != "" {
		dirs = append(dirs, r.cfg.Dir)
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		searchedPaths = append(searchedPaths, path)

		if isExecutableFile(path) {
			r.log.Debug("Found action in search path", "path", path)

			return path, nil
		}
	}

	r.log.Warn("Action binary not found in any searched paths", "name", name, "searched_paths", searchedPaths)

	return name, &errors.ActionNotFoundError{Name: name, SearchedPaths: searchedPaths}
}

// isExplicitPath reports whether binary names a path rather than a command.
func isExplicitPath(binary string) bool {
	return filepath.IsAbs(binary) || strings.ContainsRune(binary, '/') ||
		strings.ContainsRune(binary, filepath.Separator)
}

// isExecutableFile reports whether path is a regular file with an execute bit.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}
