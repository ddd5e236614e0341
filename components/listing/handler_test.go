package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recipebook/pkg/cache"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

type handlerResponse struct {
	Data []model.Item `json:"data"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, handlerResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if rec.Code == http.StatusOK && method == http.MethodGet {
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, payload
}

func seeded() *cache.Cache {
	return cache.New(
		model.Item{ID: "1", Name: "Eggs"},
		model.Item{ID: "2", Name: "Milk"},
		model.Item{ID: "3", Name: "Egg noodles"},
	)
}

func TestHandler_SearchKeepsCacheOrder(t *testing.T) {
	h := Handler(WithSource(seeded()))

	rec, payload := serve(t, h, http.MethodGet, "/api/items?q=EGG")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	want := []model.Item{{ID: "1", Name: "Eggs"}, {ID: "3", Name: "Egg noodles"}}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_EmptyQueryReturnsEverything(t *testing.T) {
	_, payload := serve(t, Handler(WithSource(seeded())), http.MethodGet, "/api/items")
	if len(payload.Data) != 3 {
		t.Fatalf("expected every item, got %#v", payload.Data)
	}
}

func TestHandler_LimitClamped(t *testing.T) {
	h := Handler(WithSource(seeded()), WithMaxLimit(2))

	_, payload := serve(t, h, http.MethodGet, "/api/items?limit=10")
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 results, got %d", len(payload.Data))
	}

	_, payload = serve(t, h, http.MethodGet, "/api/items?limit=-1")
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_CustomParams(t *testing.T) {
	h := Handler(WithSource(seeded()), WithSearchParam("name"), WithLimitParam("n"))
	_, payload := serve(t, h, http.MethodGet, "/api/items?name=milk&n=5")
	if len(payload.Data) != 1 || payload.Data[0].ID != "2" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestHandler_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		h      http.Handler
		method string
		want   int
	}{
		{"method", Handler(WithSource(seeded())), http.MethodPost, http.StatusMethodNotAllowed},
		{"no source", Handler(), http.MethodGet, http.StatusServiceUnavailable},
		{"guard", Handler(WithSource(seeded()), WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		})), http.MethodGet, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := serve(t, tc.h, tc.method, "/api/items")
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := serve(t, Handler(WithSource(seeded())), http.MethodHead, "/api/items")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("unexpected HEAD response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdminGuard(t *testing.T) {
	store := session.NewMemoryStore()
	h := Handler(WithSource(seeded()), WithGuard(AdminGuard(store)))

	if rec, _ := serve(t, h, http.MethodGet, "/api/items"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	_ = session.Save(store, session.Credentials{Token: "tok"})
	if rec, _ := serve(t, h, http.MethodGet, "/api/items"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non admin, got %d", rec.Code)
	}

	_ = session.Save(store, session.Credentials{Token: "tok", IsAdmin: true})
	if rec, _ := serve(t, h, http.MethodGet, "/api/items"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an admin, got %d", rec.Code)
	}
}

func TestHandler_RefreshRunsAfterGuard(t *testing.T) {
	items := cache.New()
	allowed := false
	refreshes := 0
	h := Handler(
		WithSource(items),
		WithGuard(func(*http.Request) error {
			if !allowed {
				return StatusError{Code: http.StatusForbidden}
			}
			return nil
		}),
		WithRefresh(func(context.Context) error {
			refreshes++
			items.Replace([]model.Item{{ID: "1", Name: "Eggs"}})
			return nil
		}),
	)

	if rec, _ := serve(t, h, http.MethodGet, "/api/items"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if refreshes != 0 {
		t.Fatalf("refresh must not run for rejected requests")
	}

	allowed = true
	_, payload := serve(t, h, http.MethodGet, "/api/items")
	if refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", refreshes)
	}
	if diff := cmp.Diff([]model.Item{{ID: "1", Name: "Eggs"}}, payload.Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_FailedRefreshServesPreviousItems(t *testing.T) {
	h := Handler(
		WithSource(seeded()),
		WithRefresh(func(context.Context) error { return errors.New("backend down") }),
	)
	rec, payload := serve(t, h, http.MethodGet, "/api/items")
	if rec.Code != http.StatusOK || len(payload.Data) != 3 {
		t.Fatalf("expected stale items, got %d %#v", rec.Code, payload.Data)
	}
}
