package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-recipebook/components/listing"
	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/render"
	"github.com/goliatone/go-recipebook/pkg/renderers/html"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// logAlerter turns alerts into log records.
type logAlerter struct {
	logger *slog.Logger
}

func (a logAlerter) Alert(msg string) {
	a.logger.Warn("alert", "message", msg)
}

func runServe(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", "127.0.0.1:8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mux, err := serveMux(e)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(e.stderr, "serving on http://%s\n", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveMux mounts the HTML pages and the JSON listing of both collections.
// Every request refreshes the collection from the backend first; the
// ingredient routes only do so for admin sessions.
func serveMux(e *env) (*http.ServeMux, error) {
	alerter := logAlerter{logger: e.app.Logger}
	recipes, err := e.app.Controller(model.Recipes, nil, alerter)
	if err != nil {
		return nil, err
	}
	ingredients, err := e.app.Controller(model.Ingredients, nil, alerter)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.RedirectHandler("/"+model.Recipes.Name, http.StatusFound))
	mux.Handle("/"+model.Recipes.Name, listPage(recipes, "Recipes", nil))
	mux.Handle("/"+model.Ingredients.Name, listPage(ingredients, "Ingredients", e.app.Store))

	if _, err := listing.New(
		listing.WithCollection(model.Recipes),
		listing.WithSource(recipes.Cache()),
		listing.WithRefresh(recipes.Read),
	).RegisterRoutes(mux, ""); err != nil {
		return nil, err
	}
	if _, err := listing.New(
		listing.WithCollection(model.Ingredients),
		listing.WithSource(ingredients.Cache()),
		listing.WithGuard(listing.AdminGuard(e.app.Store)),
		listing.WithRefresh(ingredients.Read),
	).RegisterRoutes(mux, ""); err != nil {
		return nil, err
	}
	return mux, nil
}

// listPage refreshes the cache on every request and renders the filtered
// list as a document. A non-nil adminStore restricts the page to admins.
func listPage(ctrl *controller.Controller, title string, adminStore session.Store) http.Handler {
	renderer := html.New(html.WithDocument(title))
	col := ctrl.Collection()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if adminStore != nil {
			if err := session.RequireAdmin(adminStore); err != nil {
				http.Error(w, page.MsgAccessDenied, http.StatusForbidden)
				return
			}
		}

		// A failed refresh keeps serving the previous list.
		_ = ctrl.Read(r.Context())

		query := r.URL.Query().Get("q")
		items, _ := ctrl.Search(r.Context(), query)
		out, err := renderer.RenderQuery(r.Context(), render.List{Collection: col, Items: items}, query)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", renderer.ContentType())
		_, _ = w.Write(out)
	})
}
