package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wagiedev/action-bridge-go/internal/bridge"
	"github.com/wagiedev/action-bridge-go/internal/config"
)

// bridgeFlags override the action section of the config file.
type bridgeFlags struct {
	binary         string
	args           []string
	name           string
	description    string
	dir            string
	env            map[string]string
	searchPaths    []string
	timeout        time.Duration
	prefix         string
	maxOutputBytes int
	digest         string
}

func (f *bridgeFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.binary, "binary", "", "action executable (path or name on PATH)")
	flags.StringArrayVar(&f.args, "arg", nil, "argument passed to the action (repeatable)")
	flags.StringVar(&f.name, "name", "", "action name (default: binary base name)")
	flags.StringVar(&f.description, "description", "", "action description")
	flags.StringVar(&f.dir, "dir", "", "working directory of the action")
	flags.StringToStringVar(&f.env, "env", nil, "extra environment variables, KEY=VALUE")
	flags.StringSliceVar(&f.searchPaths, "search-path", nil, "directories searched for a bare binary name")
	flags.DurationVar(&f.timeout, "timeout", 0, "per-invocation timeout (0 disables)")
	flags.StringVar(&f.prefix, "prefix", config.DefaultOutputPrefix, "text prepended to every non-ping body")
	flags.IntVar(&f.maxOutputBytes, "max-output-bytes", 0, "cap on captured stdout and stderr, each")
	flags.StringVar(&f.digest, "digest", "", "expected BLAKE3 digest of the binary")
}

// apply copies the flags that were set onto o.
func (f *bridgeFlags) apply(cmd *cobra.Command, o *config.Options) error {
	flags := cmd.Flags()

	if flags.Changed("binary") {
		o.Binary = f.binary

		// A relative path on the command line means relative to where the
		// command runs, not to the config file.
		if isRelativePath(f.binary) && !flags.Changed("dir") {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			o.Dir = wd
		}
	}

	if flags.Changed("arg") {
		o.Args = f.args
	}

	if flags.Changed("name") {
		o.Name = f.name
	}

	if flags.Changed("description") {
		o.Description = f.description
	}

	if flags.Changed("dir") {
		dir, err := filepath.Abs(f.dir)
		if err != nil {
			return fmt.Errorf("resolve --dir: %w", err)
		}

		o.Dir = dir
	}

	if flags.Changed("env") {
		if o.Env == nil {
			o.Env = make(map[string]string, len(f.env))
		}

		for k, v := range f.env {
			o.Env[k] = v
		}
	}

	if flags.Changed("search-path") {
		o.SearchPaths = f.searchPaths
	}

	if flags.Changed("timeout") {
		o.Timeout = f.timeout
	}

	if flags.Changed("prefix") {
		prefix := f.prefix
		o.OutputPrefix = &prefix
	}

	if flags.Changed("max-output-bytes") {
		o.MaxOutputBytes = f.maxOutputBytes
	}

	if flags.Changed("digest") {
		o.Digest = f.digest
	}

	return nil
}

// buildBridge merges config file and flags and constructs the bridge.
func buildBridge(
	ctx context.Context,
	cmd *cobra.Command,
	file *config.File,
	flags *bridgeFlags,
	log *slog.Logger,
) (*bridge.Bridge, error) {
	options := &config.Options{Logger: log}

	if file != nil {
		if err := file.Apply(options); err != nil {
			return nil, err
		}
	}

	if err := flags.apply(cmd, options); err != nil {
		return nil, err
	}

	if options.Binary == "" {
		return nil, fmt.Errorf("no action binary: set --binary or action.path in --config")
	}

	return bridge.New(ctx, options)
}

func isRelativePath(binary string) bool {
	return !filepath.IsAbs(binary) && filepath.Base(binary) != binary
}
