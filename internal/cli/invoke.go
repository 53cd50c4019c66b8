package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wagiedev/action-bridge-go/internal/codec"
)

// errInvocationFailed is returned by invoke --exit-code after the envelope
// has been printed.
var errInvocationFailed = errors.New("invocation failed")

func newInvokeCmd(globals *globalFlags) *cobra.Command {
	var (
		flags       bridgeFlags
		requestPath string
		exitCode    bool
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run the action once and print the envelope",
		Long: `Invoke reads one JSON request, runs the action with it, and prints
the {"body": ...} envelope on stdout. The envelope is printed for every
outcome, including failures.`,
		Args: cobra.NoArgs,
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

			request, err := readRequest(requestPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			result := b.Execute(ctx, request)

			out := cmd.OutOrStdout()
			if _, err := out.Write(append(codec.EncodeEnvelope(result.Envelope), '\n')); err != nil {
				return fmt.Errorf("write envelope: %w", err)
			}

			if exitCode && !result.OK() {
				log.Debug("Invocation did not succeed", "outcome", result.Outcome, "error", result.Err)

				return errInvocationFailed
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&requestPath, "request", "r", "-", "request file, or - for stdin")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit nonzero when the invocation did not succeed")

	return cmd
}
