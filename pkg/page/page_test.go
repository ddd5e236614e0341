package page_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recipebook/pkg/api"
	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/prompt"
	"github.com/goliatone/go-recipebook/pkg/session"
	"github.com/goliatone/go-recipebook/pkg/testsupport"
)

type fixture struct {
	backend *testsupport.Backend
	store   *session.MemoryStore
	client  *api.Client
	form    *prompt.MemoryForm
	rec     *prompt.Recorder
}

func newFixture(t *testing.T, creds session.Credentials) *fixture {
	t.Helper()
	backend := testsupport.NewBackend(t)
	store := session.NewMemoryStore()
	if creds.Authenticated() {
		if err := session.Save(store, creds); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	client := api.New(
		api.WithBaseURL(backend.URL()),
		api.WithHTTPClient(backend.Client()),
		api.WithSession(store),
	)
	return &fixture{
		backend: backend,
		store:   store,
		client:  client,
		form:    prompt.NewMemoryForm(nil),
		rec:     &prompt.Recorder{},
	}
}

func (f *fixture) controller(t *testing.T, col model.Collection) *controller.Controller {
	t.Helper()
	ctrl, err := controller.New(col, f.client, controller.WithAlerter(f.rec))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return ctrl
}

func TestRecipesPage_LoadVisibility(t *testing.T) {
	f := newFixture(t, session.Credentials{Token: "tok"})
	p := page.NewRecipesPage(f.controller(t, model.Recipes), f.form, f.store, f.rec)

	controls, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(session.Controls{Logout: true}, controls); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
	if f.backend.Count(http.MethodGet, "/recipes") != 1 {
		t.Fatalf("expected one fetch on load")
	}
}

func TestRecipesPage_AddClearsInputsOnSuccess(t *testing.T) {
	f := newFixture(t, session.Credentials{Token: "tok", IsAdmin: true})
	ctrl := f.controller(t, model.Recipes)
	p := page.NewRecipesPage(ctrl, f.form, f.store, f.rec)
	ctx := context.Background()

	f.form.Set(page.InputAddRecipeName, "Soup")
	f.form.Set(page.InputAddRecipeInstructions, "")
	if err := p.Add(ctx); !errors.Is(err, controller.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.form.Value(page.InputAddRecipeName) != "Soup" {
		t.Fatalf("inputs must survive a failed add")
	}

	f.form.Set(page.InputAddRecipeInstructions, "boil")
	if err := p.Add(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if f.form.Value(page.InputAddRecipeName) != "" || f.form.Value(page.InputAddRecipeInstructions) != "" {
		t.Fatalf("inputs not cleared")
	}
	if diff := cmp.Diff([]model.Item{{ID: "1", Name: "Soup", Instructions: "boil"}}, ctrl.Cache().Items()); diff != "" {
		t.Fatalf("cache mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipesPage_UpdateNotFound(t *testing.T) {
	f := newFixture(t, session.Credentials{Token: "tok"})
	p := page.NewRecipesPage(f.controller(t, model.Recipes), f.form, f.store, f.rec)
	ctx := context.Background()
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	f.backend.Reset()

	f.form.Set(page.InputUpdateRecipeName, "Milk")
	f.form.Set(page.InputUpdateRecipeInstructions, "shake well")
	if err := p.Update(ctx); !errors.Is(err, controller.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.backend.Count(http.MethodPut, "/recipes/1") != 0 || len(f.backend.Requests()) != 0 {
		t.Fatalf("no request expected, got %v", f.backend.Requests())
	}
	if diff := cmp.Diff([]string{"Recipe not found."}, f.rec.Alerts()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if f.form.Value(page.InputUpdateRecipeName) != "Milk" {
		t.Fatalf("inputs must survive a failed update")
	}
}

func TestRecipesPage_SearchAndDelete(t *testing.T) {
	f := newFixture(t, session.Credentials{Token: "tok"})
	f.backend.Seed(model.Recipes,
		model.Item{Name: "Eggs", Instructions: "crack"},
		model.Item{Name: "Milk", Instructions: "pour"},
	)
	ctrl := f.controller(t, model.Recipes)
	p := page.NewRecipesPage(ctrl, f.form, f.store, f.rec)
	ctx := context.Background()
	if _, err := p.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	f.form.Set(page.InputSearch, "  EGG ")
	got, err := p.Search(ctx)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if diff := cmp.Diff([]model.Item{{ID: "1", Name: "Eggs", Instructions: "crack"}}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	f.form.Set(page.InputDeleteRecipeName, "Eggs")
	if err := p.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.form.Value(page.InputDeleteRecipeName) != "" || ctrl.Cache().Len() != 1 {
		t.Fatalf("delete not applied")
	}
}

func TestIngredientsPage_GuardBlocksBeforeFetch(t *testing.T) {
	cases := []struct {
		name  string
		creds session.Credentials
	}{
		{"anonymous", session.Credentials{}},
		{"not admin", session.Credentials{Token: "tok"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.creds)
			p := page.NewIngredientsPage(f.controller(t, model.Ingredients), f.form, f.store, f.rec, f.rec)

			err := p.Load(context.Background())
			if !errors.Is(err, session.ErrAccessDenied) {
				t.Fatalf("expected access denied, got %v", err)
			}
			if n := len(f.backend.Requests()); n != 0 {
				t.Fatalf("expected no fetch, got %d requests", n)
			}
			if diff := cmp.Diff([]string{page.MsgAccessDenied}, f.rec.Alerts()); diff != "" {
				t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
			}
			if f.rec.Current() != page.RouteRecipes {
				t.Fatalf("expected redirect to recipes, got %q", f.rec.Current())
			}
		})
	}
}

func TestIngredientsPage_AdminFlow(t *testing.T) {
	f := newFixture(t, session.Credentials{Token: "tok", IsAdmin: true})
	f.backend.Seed(model.Ingredients, model.Item{Name: "Salt"})
	ctrl := f.controller(t, model.Ingredients)
	p := page.NewIngredientsPage(ctrl, f.form, f.store, f.rec, f.rec)
	ctx := context.Background()

	if err := p.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	f.form.Set(page.InputAddIngredientName, "Pepper")
	if err := p.Add(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	f.form.Set(page.InputDeleteIngredientName, "Salt")
	if err := p.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if diff := cmp.Diff([]model.Item{{ID: "2", Name: "Pepper"}}, ctrl.Cache().Items()); diff != "" {
		t.Fatalf("cache mismatch (-want +got):\n%s", diff)
	}
	if err := p.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if f.rec.Current() != page.RouteLogin {
		t.Fatalf("expected login page, got %q", f.rec.Current())
	}
}

func registerForm(values map[string]string) *prompt.MemoryForm {
	base := map[string]string{
		page.InputUsername:       "ana",
		page.InputEmail:          "ana@example.com",
		page.InputPassword:       "secret",
		page.InputRepeatPassword: "secret",
	}
	for k, v := range values {
		base[k] = v
	}
	return prompt.NewMemoryForm(base)
}

func TestRegisterPage(t *testing.T) {
	cases := []struct {
		name     string
		values   map[string]string
		setup    func(*testsupport.Backend)
		wantErr  error
		alerts   []string
		posts    int
		redirect string
	}{
		{
			name:     "success",
			posts:    1,
			redirect: page.RouteLogin,
		},
		{
			name:    "empty field",
			values:  map[string]string{page.InputEmail: "  "},
			wantErr: page.ErrIncomplete,
			alerts:  []string{page.MsgFillAllFields},
		},
		{
			name:    "password mismatch",
			values:  map[string]string{page.InputRepeatPassword: "other"},
			wantErr: page.ErrPasswordMismatch,
			alerts:  []string{page.MsgPasswordMismatch},
		},
		{
			name:    "user exists",
			setup:   func(b *testsupport.Backend) { b.AddUser("ana") },
			wantErr: api.ErrConflict,
			alerts:  []string{page.MsgUserExists},
			posts:   1,
		},
		{
			name:   "server error",
			setup:  func(b *testsupport.Backend) { b.Fail(http.MethodPost, "/register", http.StatusInternalServerError) },
			alerts: []string{page.MsgRegisterFailed},
			posts:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, session.Credentials{})
			if tc.setup != nil {
				tc.setup(f.backend)
			}
			p := page.NewRegisterPage(f.client, registerForm(tc.values), f.rec, f.rec, nil)

			err := p.Submit(context.Background())
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && tc.redirect != "" && err != nil {
				t.Fatalf("submit: %v", err)
			}
			if diff := cmp.Diff(tc.alerts, f.rec.Alerts()); diff != "" {
				t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
			}
			if got := f.backend.Count(http.MethodPost, "/register"); got != tc.posts {
				t.Fatalf("expected %d POST, got %d", tc.posts, got)
			}
			if f.rec.Current() != tc.redirect {
				t.Fatalf("expected redirect %q, got %q", tc.redirect, f.rec.Current())
			}
		})
	}
}

func TestRegisterPage_NetworkFailure(t *testing.T) {
	f := newFixture(t, session.Credentials{})
	f.backend.Close()
	p := page.NewRegisterPage(f.client, registerForm(nil), f.rec, f.rec, nil)

	if err := p.Submit(context.Background()); !api.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if diff := cmp.Diff([]string{page.MsgNetworkFailure}, f.rec.Alerts()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}
