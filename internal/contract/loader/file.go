package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// loadFile reads a contract document from disk. Relative paths resolve against
// the working directory.
func loadFile(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("contract loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkFormat(name, false); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("contract loader: resolve %s: %w", name, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("contract loader: open %s: %w", abs, err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("contract loader: stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("contract loader: %s is a directory", abs)
	}
	return readDocument(file, abs)
}
