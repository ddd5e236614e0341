// Package controller keeps a local copy of one server collection in sync with
// the backend. Every successful mutation is followed by exactly one full read;
// validation and lookup failures never reach the network.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-recipebook/pkg/api"
	"github.com/goliatone/go-recipebook/pkg/cache"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// LoginPage is where a successful logout navigates to.
const LoginPage = "login"

// Logout messages.
const (
	MsgNoToken      = "No token found."
	MsgLogoutFailed = "Logout failed."
	MsgLogoutError  = "An error occurred during logout."
)

var (
	// ErrValidation marks empty required input. No request was sent.
	ErrValidation = errors.New("controller: missing required input")
	// ErrNotFound marks a name that matches no cached item. No request was
	// sent.
	ErrNotFound = errors.New("controller: item not found")
	// ErrUnsupported marks an operation the collection does not offer.
	ErrUnsupported = errors.New("controller: operation not supported")
	// ErrNoToken is returned by Logout when the session has no token.
	ErrNoToken = errors.New("controller: no token")
	// ErrRefreshFailed wraps the read error that followed a mutation the
	// server accepted.
	ErrRefreshFailed = errors.New("controller: refresh after change failed")
)

// Backend is the server side of a collection. *api.Client satisfies it.
type Backend interface {
	List(ctx context.Context, col model.Collection) ([]model.Item, error)
	Create(ctx context.Context, col model.Collection, fields model.Fields) error
	Update(ctx context.Context, col model.Collection, id model.ID, fields model.Fields) error
	Delete(ctx context.Context, col model.Collection, id model.ID) error
	Logout(ctx context.Context) error
}

// Alerter surfaces a message to the user.
type Alerter interface {
	Alert(msg string)
}

// View displays a list of items, replacing whatever it showed before.
type View interface {
	Show(ctx context.Context, items []model.Item) error
}

// Navigator switches the active page.
type Navigator interface {
	Navigate(page string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithAlerter sets where failure messages go. Defaults to dropping them.
func WithAlerter(alerter Alerter) Option {
	return func(c *Controller) {
		if alerter != nil {
			c.alerter = alerter
		}
	}
}

// WithView sets the list sink rendered after reads and searches.
func WithView(view View) Option {
	return func(c *Controller) {
		c.view = view
	}
}

// WithCache shares an existing cache, e.g. with the listing component.
func WithCache(store *cache.Cache) Option {
	return func(c *Controller) {
		if store != nil {
			c.cache = store
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the cache of one collection.
type Controller struct {
	collection model.Collection
	backend    Backend
	cache      *cache.Cache
	alerter    Alerter
	view       View
	logger     *slog.Logger
}

// New binds a collection to its backend.
func New(col model.Collection, backend Backend, options ...Option) (*Controller, error) {
	if backend == nil {
		return nil, errors.New("controller: backend is required")
	}
	if col.Name == "" {
		return nil, errors.New("controller: collection name is required")
	}
	c := &Controller{
		collection: col,
		backend:    backend,
		cache:      cache.New(),
		alerter:    discardAlerter{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.logger = c.logger.With("collection", col.Name)
	return c, nil
}

// Collection returns the descriptor the controller was built for.
func (c *Controller) Collection() model.Collection {
	return c.collection
}

// Cache exposes the local copy.
func (c *Controller) Cache() *cache.Cache {
	return c.cache
}

// Create posts the required fields and re-reads the collection on success.
func (c *Controller) Create(ctx context.Context, fields model.Fields) error {
	msgs := c.collection.Messages
	if missing := fields.Missing(c.collection.RequiredFields...); len(missing) > 0 {
		c.alerter.Alert(msgs.CreateRequired)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if err := c.backend.Create(ctx, c.collection, fields.Pick(c.collection.RequiredFields...)); err != nil {
		c.fail("create", msgs.CreateFailed, msgs.CreateError, err)
		return err
	}
	return c.refresh(ctx)
}

// Read replaces the cache with the server's list and shows it. On failure the
// previous cache is kept.
func (c *Controller) Read(ctx context.Context) error {
	items, err := c.backend.List(ctx, c.collection)
	if err != nil {
		c.fail("read", c.collection.Messages.FetchFailed, c.collection.Messages.FetchError, err)
		return err
	}
	c.cache.Replace(items)
	return c.show(ctx, c.cache.Items())
}

// Update resolves name against the current cache and sends the mutable
// fields. The cache is not re-fetched before resolving.
func (c *Controller) Update(ctx context.Context, name string, fields model.Fields) error {
	msgs := c.collection.Messages
	if !c.collection.Updatable() {
		c.alerter.Alert(msgs.Unsupported)
		return fmt.Errorf("%w: update %s", ErrUnsupported, c.collection.Name)
	}

	name = strings.TrimSpace(name)
	missing := fields.Missing(c.collection.MutableFields...)
	if name == "" {
		missing = append([]string{model.FieldName}, missing...)
	}
	if len(missing) > 0 {
		c.alerter.Alert(msgs.UpdateRequired)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	id, err := c.resolve(name)
	if err != nil {
		return err
	}
	if err := c.backend.Update(ctx, c.collection, id, fields.Pick(c.collection.MutableFields...)); err != nil {
		c.fail("update", msgs.UpdateFailed, msgs.UpdateError, err)
		return err
	}
	return c.refresh(ctx)
}

// Delete resolves name against the current cache and deletes that item.
func (c *Controller) Delete(ctx context.Context, name string) error {
	msgs := c.collection.Messages
	name = strings.TrimSpace(name)
	if name == "" {
		c.alerter.Alert(msgs.DeleteRequired)
		return fmt.Errorf("%w: %s", ErrValidation, model.FieldName)
	}

	id, err := c.resolve(name)
	if err != nil {
		return err
	}
	if err := c.backend.Delete(ctx, c.collection, id); err != nil {
		c.fail("delete", msgs.DeleteFailed, msgs.DeleteError, err)
		return err
	}
	return c.refresh(ctx)
}

// Search shows the cached items whose name contains term, ignoring case. It
// never contacts the server or changes the cache.
func (c *Controller) Search(ctx context.Context, term string) ([]model.Item, error) {
	items := c.cache.Search(term)
	if err := c.show(ctx, items); err != nil {
		return items, err
	}
	return items, nil
}

// Logout ends the session on the server and clears the stored credentials.
// The session is left intact on any failure.
func (c *Controller) Logout(ctx context.Context, store session.Store, nav Navigator) error {
	if session.Token(store) == "" {
		c.alerter.Alert(MsgNoToken)
		return ErrNoToken
	}

	if err := c.backend.Logout(ctx); err != nil {
		if api.StatusCode(err) != 0 {
			c.logger.Warn("logout rejected", "status", api.StatusCode(err))
			c.alerter.Alert(MsgLogoutFailed)
		} else {
			c.logger.Error("logout failed", "error", err)
			c.alerter.Alert(MsgLogoutError)
		}
		return err
	}

	if err := session.Clear(store); err != nil {
		return fmt.Errorf("controller: clear session: %w", err)
	}
	if nav != nil {
		nav.Navigate(LoginPage)
	}
	return nil
}

func (c *Controller) resolve(name string) (model.ID, error) {
	id, ok := c.cache.Resolve(name)
	if !ok {
		c.alerter.Alert(c.collection.Messages.NotFound)
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return id, nil
}

func (c *Controller) refresh(ctx context.Context) error {
	if err := c.Read(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

func (c *Controller) show(ctx context.Context, items []model.Item) error {
	if c.view == nil {
		return nil
	}
	if err := c.view.Show(ctx, items); err != nil {
		c.logger.Error("render failed", "error", err)
		return fmt.Errorf("controller: render %s: %w", c.collection.Name, err)
	}
	return nil
}

// fail alerts rejected when the server answered and transport otherwise.
func (c *Controller) fail(op, rejected, transport string, err error) {
	msg := rejected
	if api.IsTransport(err) {
		c.logger.Error(op+" failed", "error", err)
		if transport != "" {
			msg = transport
		}
	} else {
		c.logger.Warn(op+" failed", "error", err, "status", api.StatusCode(err))
	}
	c.alerter.Alert(msg)
}

type discardAlerter struct{}

func (discardAlerter) Alert(string) {}
