package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// loadFromFS reads a contract bundled in filesystem, e.g. an embed.FS. A
// leading slash is tolerated so callers can pass URL-like names.
func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("contract loader: filesystem is not configured")
	}
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return nil, errors.New("contract loader: fs path is required")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("contract loader: invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkFormat(name, false); err != nil {
		return nil, err
	}

	file, err := filesystem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("contract loader: open %s: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return readDocument(file, name)
}
