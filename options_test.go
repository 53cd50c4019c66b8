package actionbridge

import (
	"testing"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"
)

// TestApplyBridgeOptions tests that each option sets its field.
func TestApplyBridgeOptions(t *testing.T) {
	schema := &jsonschema.Schema{Type: "object"}
	runner := &stubRunner{}
	logger := NopLogger()

	options := applyBridgeOptions(nil, []Option{
		WithLogger(logger),
		WithBinary("/opt/actions/add-l", "--fast"),
		WithName("add"),
		WithDescription("adds two numbers"),
		WithEnv(map[string]string{"MODE": "test"}),
		WithDir("/opt/actions"),
		WithSearchPaths("/usr/local/actions"),
		WithTimeout(5 * time.Second),
		WithOutputPrefix(""),
		WithMaxOutputBytes(1024),
		WithDigest("abc"),
		WithInputSchema(schema),
		WithRunner(runner),
	})

	require.Same(t, logger, options.Logger)
	require.Equal(t, "/opt/actions/add-l", options.Binary)
	require.Equal(t, []string{"--fast"}, options.Args)
	require.Equal(t, "add", options.Name)
	require.Equal(t, "adds two numbers", options.Description)
	require.Equal(t, map[string]string{"MODE": "test"}, options.Env)
	require.Equal(t, "/opt/actions", options.Dir)
	require.Equal(t, []string{"/usr/local/actions"}, options.SearchPaths)
	require.Equal(t, 5*time.Second, options.Timeout)
	require.Empty(t, options.Prefix())
	require.Equal(t, 1024, options.OutputLimit())
	require.Equal(t, "abc", options.Digest)
	require.Same(t, schema, options.InputSchema)
	require.Same(t, runner, options.Runner)
}

// TestApplyBridgeOptions_Defaults tests defaults when no options are given.
func TestApplyBridgeOptions_Defaults(t *testing.T) {
	options := applyBridgeOptions(nil, nil)

	require.Equal(t, DefaultOutputPrefix, options.Prefix())
	require.Equal(t, DefaultMaxOutputBytes, options.OutputLimit())
}

// TestApplyBridgeOptions_LaterWins tests that later options override earlier ones.
func TestApplyBridgeOptions_LaterWins(t *testing.T) {
	options := applyBridgeOptions(&BridgeOptions{Binary: "from-file", Args: []string{"a"}}, []Option{
		WithBinary("from-flag"),
		WithArgs("b", "c"),
	})

	require.Equal(t, "from-flag", options.Binary)
	require.Equal(t, []string{"b", "c"}, options.Args)
}
