package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wagiedev/action-bridge-go/internal/config"
)

// logLevelEnv overrides the log level when --log-level is not given.
const logLevelEnv = "ACTIONBRIDGE_LOG_LEVEL"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// New creates the root command.
func New(version string) *cobra.Command {
	globals := &globalFlags{}

	root := &cobra.Command{
		Use:           "actionbridge",
		Short:         "Run precompiled action binaries behind a JSON envelope",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to a YAML bridge config")
	root.PersistentFlags().StringVar(&globals.logLevel, "log-level", "",
		"log level: debug, info, warn, error (default from "+logLevelEnv+" or config)")

	root.AddCommand(newInvokeCmd(globals))
	root.AddCommand(newServeCmd(globals, version))
	root.AddCommand(newDigestCmd())
	root.AddCommand(newVersionCmd(version))

	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
		},
	}
}

// loadConfig reads the config file named by --config, if any.
func (g *globalFlags) loadConfig() (*config.File, error) {
	if g.configPath == "" {
		return nil, nil
	}

	return config.LoadFile(g.configPath)
}

// logger builds the stderr logger. The flag wins over the environment,
// which wins over the config file.
func (g *globalFlags) logger(file *config.File) (*slog.Logger, error) {
	level := slog.LevelInfo

	if file != nil {
		fileLevel, err := file.Level()
		if err != nil {
			return nil, err
		}

		level = fileLevel
	}

	name := g.logLevel
	if name == "" {
		name = os.Getenv(logLevelEnv)
	}

	if name != "" {
		if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", name, err)
		}
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
