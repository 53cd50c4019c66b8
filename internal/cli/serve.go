package cli

import (
	"github.com/spf13/cobra"

	"github.com/wagiedev/action-bridge-go/internal/mcp"
)

func newServeCmd(globals *globalFlags, version string) *cobra.Command {
	var flags bridgeFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the action as an MCP tool over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := globals.loadConfig()
			if err != nil {
				return err
			}

			log, err := globals.logger(file)
			if err != nil {
				return err
			}

			b, err := buildBridge(ctx, cmd, file, &flags, log)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(log, b, version)
			if err != nil {
				return err
			}

			return server.ServeStdio(ctx)
		},
	}

	flags.register(cmd)

	return cmd
}
