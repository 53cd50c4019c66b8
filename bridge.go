package actionbridge

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/action-bridge-go/internal/action"
	"github.com/wagiedev/action-bridge-go/internal/bridge"
	"github.com/wagiedev/action-bridge-go/internal/config"
)

// Bridge runs one action binary per request and is safe for concurrent use.
type Bridge = bridge.Bridge

// New creates a bridge from functional options.
//
// Example usage:
//
//	b, err := actionbridge.New(ctx,
//	    actionbridge.WithBinary("/opt/actions/add-l"),
//	    actionbridge.WithTimeout(30*time.Second),
//	    actionbridge.WithLogger(log),
//	)
func New(ctx context.Context, opts ...Option) (*Bridge, error) {
	return bridge.New(ctx, applyBridgeOptions(nil, opts))
}

// NewFromConfigFile creates a bridge from a YAML config file.
// Options passed here are applied on top of the file's settings.
func NewFromConfigFile(ctx context.Context, path string, opts ...Option) (*Bridge, error) {
	file, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	options := &BridgeOptions{}
	if err := file.Apply(options); err != nil {
		return nil, fmt.Errorf("apply config %s: %w", path, err)
	}

	return bridge.New(ctx, applyBridgeOptions(options, opts))
}

// InvokeAll runs one invocation per request with at most limit running at
// once and returns the envelopes in request order. A limit of zero or less
// means no limit.
func InvokeAll(ctx context.Context, b *Bridge, requests []any, limit int) []Envelope {
	envelopes := make([]Envelope, len(requests))

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, request := range requests {
		eg.Go(func() error {
			envelopes[i] = b.Invoke(ctx, request)

			return nil
		})
	}

	_ = eg.Wait()

	return envelopes
}

// FileDigest returns the hex BLAKE3 digest of the file at path, in the form
// WithDigest expects.
func FileDigest(path string) (string, error) {
	return action.FileDigest(path)
}
