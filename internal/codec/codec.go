package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wagiedev/action-bridge-go/internal/errors"
)

// PingField is the request field that selects the fast path.
const PingField = "ping"

// Envelope is the response returned to the host for every invocation.
//
// Body holds either the action's raw standard output, a child-failure
// message, or a bridge-failure message. On success Body is itself JSON text,
// so hosts decode it a second time to reach the action's result.
type Envelope struct {
	Body string `json:"body"`
}

// Encode serializes v as compact JSON without a trailing newline.
//
// Values that cannot be represented (NaN, infinities, channels, functions,
// cyclic structures) are reported as *errors.EncodeError. A panicking
// MarshalJSON implementation is recovered and reported the same way.
func Encode(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = &errors.EncodeError{Err: fmt.Errorf("marshal panicked: %v", r)}
		}
	}()

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, &errors.EncodeError{Err: err}
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a single JSON document into a generic value.
// Numbers are kept as json.Number so integers survive a round trip unchanged.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode JSON: unexpected data after top-level value")
	}

	return v, nil
}

// DecodeObject parses data and requires the document to be a JSON object.
func DecodeObject(data []byte) (map[string]any, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode JSON: %w", errors.ErrNotObject)
	}

	return obj, nil
}

// EncodeEnvelope serializes an envelope. Envelopes hold a single string and
// always encode; invalid UTF-8 in Body is replaced with U+FFFD.
func EncodeEnvelope(env Envelope) []byte {
	data, err := Encode(Envelope{Body: strings.ToValidUTF8(env.Body, "�")})
	if err != nil {
		// Unreachable for a struct holding one valid string.
		return []byte(`{"body":""}`)
	}

	return data
}

// DecodeEnvelope parses an envelope produced by EncodeEnvelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	obj, err := DecodeObject(data)
	if err != nil {
		return Envelope{}, err
	}

	body, ok := obj["body"].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("decode envelope: body is %T, want string", obj["body"])
	}

	return Envelope{Body: body}, nil
}

// Lossy decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func Lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// IsPing reports whether req asks for the fast path: a value that encodes
// to an object whose ping field is the boolean true. Any other ping value is
// treated as absent. A value that cannot be encoded is never a ping.
func IsPing(req any) bool {
	var obj map[string]any

	switch r := req.(type) {
	case nil:
		return false
	case map[string]any:
		obj = r
	case json.RawMessage:
		decoded, err := DecodeObject(r)
		if err != nil {
			return false
		}

		obj = decoded
	default:
		data, err := Encode(r)
		if err != nil {
			return false
		}

		decoded, err := DecodeObject(data)
		if err != nil {
			return false
		}

		obj = decoded
	}

	ping, ok := obj[PingField].(bool)

	return ok && ping
}
