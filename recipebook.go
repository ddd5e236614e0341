// Package recipebook wires configuration, session storage, the backend client,
// list renderers and pages into a ready to use application.
package recipebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	internalLoader "github.com/goliatone/go-recipebook/internal/contract/loader"
	"github.com/goliatone/go-recipebook/pkg/api"
	"github.com/goliatone/go-recipebook/pkg/config"
	"github.com/goliatone/go-recipebook/pkg/contract"
	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/render"
	"github.com/goliatone/go-recipebook/pkg/renderers/html"
	"github.com/goliatone/go-recipebook/pkg/renderers/sheet"
	"github.com/goliatone/go-recipebook/pkg/renderers/text"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// NewContractLoader constructs a contract loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewContractLoader(options ...contract.LoaderOption) contract.Loader {
	return internalLoader.New(contract.NewLoaderOptions(options...))
}

// NewClient exposes the backend client constructor from the top-level module.
func NewClient(options ...api.Option) *api.Client {
	return api.New(options...)
}

// DefaultRegistry returns a registry holding every built-in list renderer:
// text, html, xlsx and csv.
func DefaultRegistry(styled bool) *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(text.New(text.WithStyles(styled)))
	registry.MustRegister(html.New())
	registry.MustRegister(sheet.NewXLSX())
	registry.MustRegister(sheet.NewCSV())
	return registry
}

// Option customises App construction.
type Option func(*appOptions)

type appOptions struct {
	store    session.Store
	http     *http.Client
	logger   *slog.Logger
	registry *render.Registry
}

// WithSessionStore replaces the file backed session store.
func WithSessionStore(store session.Store) Option {
	return func(o *appOptions) {
		o.store = store
	}
}

// WithHTTPClient sets the transport used for the backend and for remote
// contract documents.
func WithHTTPClient(client *http.Client) Option {
	return func(o *appOptions) {
		o.http = client
	}
}

// WithLogger sets the structured logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// WithRegistry replaces the default renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *appOptions) {
		o.registry = registry
	}
}

// App is a configured recipebook client.
type App struct {
	Config   config.Config
	Store    session.Store
	Client   *api.Client
	Contract *contract.Contract
	Registry *render.Registry
	Logger   *slog.Logger
}

// New builds an App from cfg.
func New(ctx context.Context, cfg config.Config, options ...Option) (*App, error) {
	opts := appOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.http == nil {
		opts.http = &http.Client{Timeout: cfg.Timeout}
	}
	if opts.registry == nil {
		opts.registry = DefaultRegistry(cfg.Styled)
	}
	if !opts.registry.Has(cfg.Renderer) {
		_, err := opts.registry.Get(cfg.Renderer)
		return nil, err
	}

	store := opts.store
	if store == nil {
		fileStore, err := session.NewFileStore(cfg.SessionFile, session.WithLogger(opts.logger))
		if err != nil {
			return nil, err
		}
		store = fileStore
	}

	app := &App{
		Config:   cfg,
		Store:    store,
		Registry: opts.registry,
		Logger:   opts.logger,
	}

	if cfg.ValidateRequests {
		ct, err := loadContract(ctx, cfg.Contract, opts.http)
		if err != nil {
			return nil, err
		}
		app.Contract = ct
	}

	app.Client = api.New(
		api.WithBaseURL(cfg.BaseURL),
		api.WithHTTPClient(opts.http),
		api.WithSession(store),
		api.WithContract(app.Contract),
		api.WithLogger(opts.logger),
	)
	return app, nil
}

func loadContract(ctx context.Context, raw string, client *http.Client) (*contract.Contract, error) {
	src, err := contract.ParseSource(raw)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return contract.Default()
	}
	loader := NewContractLoader(contract.WithHTTPClient(client))
	return contract.LoadSource(ctx, loader, src)
}

// Renderer returns the configured list renderer, or the named one when name
// is not empty.
func (a *App) Renderer(name string) (render.Renderer, error) {
	if name == "" {
		name = a.Config.Renderer
	}
	return a.Registry.Get(name)
}

// Controller builds a controller for col that renders into out with the
// configured renderer. A nil out renders nothing.
func (a *App) Controller(col model.Collection, out render.Container, alerter controller.Alerter) (*controller.Controller, error) {
	options := []controller.Option{
		controller.WithAlerter(alerter),
		controller.WithLogger(a.Logger),
	}
	if out != nil {
		renderer, err := a.Renderer("")
		if err != nil {
			return nil, err
		}
		view, err := render.NewListView(col, renderer, out)
		if err != nil {
			return nil, err
		}
		options = append(options, controller.WithView(view))
	}
	return controller.New(col, a.Client, options...)
}

// RecipesPage wires the recipe screen.
func (a *App) RecipesPage(form page.Form, out render.Container, alerter page.Alerter, nav page.Navigator) (*page.RecipesPage, error) {
	ctrl, err := a.Controller(model.Recipes, out, alerter)
	if err != nil {
		return nil, err
	}
	return page.NewRecipesPage(ctrl, form, a.Store, nav), nil
}

// IngredientsPage wires the admin only ingredient screen.
func (a *App) IngredientsPage(form page.Form, out render.Container, alerter page.Alerter, nav page.Navigator) (*page.IngredientsPage, error) {
	ctrl, err := a.Controller(model.Ingredients, out, alerter)
	if err != nil {
		return nil, err
	}
	return page.NewIngredientsPage(ctrl, form, a.Store, nav, alerter), nil
}

// RegisterPage wires the registration screen.
func (a *App) RegisterPage(form page.Form, alerter page.Alerter, nav page.Navigator) *page.RegisterPage {
	return page.NewRegisterPage(a.Client, form, alerter, nav, a.Logger)
}

// Export fetches col and renders it with the named renderer.
func (a *App) Export(ctx context.Context, col model.Collection, rendererName string) ([]byte, string, error) {
	renderer, err := a.Renderer(rendererName)
	if err != nil {
		return nil, "", err
	}
	items, err := a.Client.List(ctx, col)
	if err != nil {
		return nil, "", fmt.Errorf("recipebook: export %s: %w", col.Name, err)
	}
	out, err := renderer.Render(ctx, render.List{Collection: col, Items: items})
	if err != nil {
		return nil, "", err
	}
	return out, renderer.ContentType(), nil
}

// ErrUnknownCollection is returned by Collection for unsupported names.
var ErrUnknownCollection = errors.New("recipebook: unknown collection")

// Collection maps a command-line name to its descriptor.
func Collection(name string) (model.Collection, error) {
	col, ok := model.Lookup(name)
	if !ok {
		return model.Collection{}, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownCollection, name, model.Recipes.Name, model.Ingredients.Name)
	}
	return col, nil
}
