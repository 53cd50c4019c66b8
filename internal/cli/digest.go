package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wagiedev/action-bridge-go/internal/action"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <binary>...",
		Short: "Print the BLAKE3 digest of action binaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				digest, err := action.FileDigest(path)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", digest, path)
			}

			return nil
		},
	}
}
