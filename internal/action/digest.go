package action

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/wagiedev/action-bridge-go/internal/errors"
)

// FileDigest returns the hex BLAKE3 digest of the file at path. The file is
// streamed through the hasher, so memory use does not grow with its size.
func FileDigest(path string) (string, error) {
	file, err := os.Open(path) //nolint:gosec // G304: hashing the configured action binary
	if err != nil {
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifyDigest checks the file at path against a pinned hex digest.
// Comparison ignores case and surrounding whitespace.
func VerifyDigest(path, expected string) error {
	actual, err := FileDigest(path)
	if err != nil {
		return err
	}

	want := strings.ToLower(strings.TrimSpace(expected))
	if actual != want {
		return &errors.DigestMismatchError{Path: path, Expected: want, Actual: actual}
	}

	return nil
}
