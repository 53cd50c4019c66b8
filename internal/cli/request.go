package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/wagiedev/action-bridge-go/internal/codec"
)

// readRequest reads one JSON request from path, or from stdin when path is
// empty or "-". Comments and trailing commas are stripped first.
func readRequest(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)

	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: request path is chosen by the operator
	}

	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 {
		return nil, fmt.Errorf("read request: no JSON document")
	}

	request, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	return request, nil
}
