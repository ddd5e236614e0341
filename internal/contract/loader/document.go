package loader

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrUnsupportedFormat rejects sources that are not YAML or JSON documents.
	ErrUnsupportedFormat = errors.New("contract loader: document must be .yaml, .yml or .json")
	// ErrTooLarge rejects documents above maxDocumentBytes.
	ErrTooLarge = errors.New("contract loader: document too large")
)

// maxDocumentBytes caps the size of a contract document from any source.
var maxDocumentBytes int64 = 4 << 20

// acceptHeader is sent when fetching remote documents.
const acceptHeader = "application/yaml, application/x-yaml, application/json;q=0.9, */*;q=0.5"

// checkFormat accepts names with a contract extension. Names without an
// extension pass when allowBare is set, which is how URLs served by an API
// gateway usually look.
func checkFormat(name string, allowBare bool) error {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".yaml", ".yml", ".json":
		return nil
	case "":
		if allowBare {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// readDocument reads r up to maxDocumentBytes.
func readDocument(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("contract loader: read %s: %w", name, err)
	}
	if int64(len(data)) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, maxDocumentBytes)
	}
	return data, nil
}
