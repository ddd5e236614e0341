package listing

import (
	"context"
	"net/http"

	"github.com/goliatone/go-recipebook/pkg/model"
)

const (
	defaultRoutePath    = "/api/items"
	defaultSearchParam  = "q"
	defaultLimitParam   = "limit"
	defaultDefaultLimit = 50
	defaultMaxLimit     = 200
)

// Source provides the items to serve. *cache.Cache satisfies it.
type Source interface {
	Items() []model.Item
}

// GuardFunc rejects a request by returning an error. Errors implementing
// HTTPError choose the response status; others answer 403.
type GuardFunc func(r *http.Request) error

// RefreshFunc reloads the Source before a request is answered. A failed
// refresh is ignored and the previous items are served.
type RefreshFunc func(ctx context.Context) error

// Options configures the listing handler. Source is required; the handler
// answers 503 without one.
type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Source  Source
	Refresh RefreshFunc
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions serves /api/items with q and limit parameters, 50 results by
// default and at most 200.
func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		SearchParam:  defaultSearchParam,
		LimitParam:   defaultLimitParam,
		DefaultLimit: defaultDefaultLimit,
		MaxLimit:     defaultMaxLimit,
	}
}

// NewOptions applies fns over the defaults and restores any field left empty
// or non-positive.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultDefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaultSearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaultLimitParam
	}
	return opts
}

// WithRoutePath overrides the route mounted under the base path.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

// WithCollection mounts the handler at /api/{collection}.
func WithCollection(col model.Collection) OptionFn {
	return func(o *Options) {
		o.RoutePath = "/api" + col.Path()
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		o.MaxLimit = limit
	}
}

// WithGuard rejects requests before the source is read.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithSource sets the items to serve, typically a controller cache.
func WithSource(source Source) OptionFn {
	return func(o *Options) {
		o.Source = source
	}
}

// WithRefresh runs refresh once per request, after the guard passed.
func WithRefresh(refresh RefreshFunc) OptionFn {
	return func(o *Options) {
		o.Refresh = refresh
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
