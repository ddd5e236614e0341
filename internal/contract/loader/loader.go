package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-recipebook/pkg/contract"
)

// Loader implements contract.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level recipebook package.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

var _ contract.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options contract.LoaderOptions) *Loader {
	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		httpClient = &clone
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: options.RequestTimeout,
	}
}

// Load fetches the raw document behind src.
func (l *Loader) Load(ctx context.Context, src contract.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("contract loader: source is nil")
	}

	switch src.Kind() {
	case contract.SourceKindFile:
		return loadFile(ctx, src.Location())
	case contract.SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case contract.SourceKindURL:
		if l.http == nil {
			return nil, errors.New("contract loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, errors.New("contract loader: unsupported source kind")
	}
}
