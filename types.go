package actionbridge

import (
	"github.com/wagiedev/action-bridge-go/internal/bridge"
	"github.com/wagiedev/action-bridge-go/internal/codec"
	"github.com/wagiedev/action-bridge-go/internal/config"
)

// Re-export types from internal packages

// ===== Envelope =====

// Envelope is the {"body": string} response returned to the host.
type Envelope = codec.Envelope

// PongBody is the fixed body of a fast-path response.
const PongBody = bridge.PongBody

// ===== Results =====

// Result is the Go-side record of one invocation.
type Result = bridge.Result

// Outcome classifies how an invocation ended.
type Outcome = bridge.Outcome

const (
	// OutcomePong means the request was a ping and no process was started.
	OutcomePong = bridge.OutcomePong
	// OutcomeSuccess means the action exited 0.
	OutcomeSuccess = bridge.OutcomeSuccess
	// OutcomeChildFailure means the action exited nonzero or was killed by a signal.
	OutcomeChildFailure = bridge.OutcomeChildFailure
	// OutcomeEncodeFailure means the request could not be serialized.
	OutcomeEncodeFailure = bridge.OutcomeEncodeFailure
	// OutcomeInvalidInput means the request failed the action's input schema.
	OutcomeInvalidInput = bridge.OutcomeInvalidInput
	// OutcomeSpawnFailure means the action binary could not be started.
	OutcomeSpawnFailure = bridge.OutcomeSpawnFailure
	// OutcomeIOFailure means the request could not be written or the output not read.
	OutcomeIOFailure = bridge.OutcomeIOFailure
	// OutcomeTimeout means the invocation was stopped before the action exited.
	OutcomeTimeout = bridge.OutcomeTimeout
	// OutcomeRejected means a pre-invoke hook refused the request.
	OutcomeRejected = bridge.OutcomeRejected
)

// ===== Options and Configuration =====

// BridgeOptions configures one bridge.
type BridgeOptions = config.Options

const (
	// DefaultOutputPrefix is prepended to every non-ping envelope body.
	DefaultOutputPrefix = config.DefaultOutputPrefix

	// DefaultMaxOutputBytes caps the captured stdout and stderr, each.
	DefaultMaxOutputBytes = config.DefaultMaxOutputBytes
)

// ===== Codec =====

// EncodeEnvelope serializes an envelope for the host.
func EncodeEnvelope(env Envelope) []byte {
	return codec.EncodeEnvelope(env)
}

// DecodeEnvelope parses an envelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	return codec.DecodeEnvelope(data)
}

// DecodeRequest parses a JSON object request as received from a host.
func DecodeRequest(data []byte) (map[string]any, error) {
	return codec.DecodeObject(data)
}
