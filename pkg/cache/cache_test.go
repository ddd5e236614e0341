package cache

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recipebook/pkg/model"
)

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	c := New(
		model.Item{ID: "1", Name: "Eggs"},
		model.Item{ID: "2", Name: "Milk"},
	)

	got := c.Search("egg")
	want := []model.Item{{ID: "1", Name: "Eggs"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_DoesNotMutateCache(t *testing.T) {
	items := []model.Item{
		{ID: "1", Name: "Tomato Soup"},
		{ID: "2", Name: "Bread"},
		{ID: "3", Name: "tomato salad"},
	}
	c := New(items...)

	got := c.Search("  TOMATO ")
	want := []model.Item{items[0], items[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	got[0].Name = "changed"
	if diff := cmp.Diff(items, c.Items()); diff != "" {
		t.Fatalf("cache mutated (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyTermReturnsAll(t *testing.T) {
	c := New(model.Item{ID: "1", Name: "A"}, model.Item{ID: "2", Name: "B"})
	if got := c.Search(""); len(got) != 2 {
		t.Fatalf("expected all items, got %#v", got)
	}
	if got := New().Search("x"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestResolve_FirstExactMatchWins(t *testing.T) {
	c := New(
		model.Item{ID: "1", Name: "Milk"},
		model.Item{ID: "2", Name: "milk"},
		model.Item{ID: "3", Name: "Milk"},
	)

	id, ok := c.Resolve("Milk")
	if !ok || id != "1" {
		t.Fatalf("expected id 1, got %q %v", id, ok)
	}
	id, ok = c.Resolve("milk")
	if !ok || id != "2" {
		t.Fatalf("expected id 2, got %q %v", id, ok)
	}
	if _, ok := c.Resolve("Mil"); ok {
		t.Fatalf("expected no partial match")
	}
}

func TestReplace_IsWholesale(t *testing.T) {
	c := New(model.Item{ID: "1", Name: "Old"})
	source := []model.Item{{ID: "2", Name: "New"}}
	c.Replace(source)
	source[0].Name = "mutated"

	want := []model.Item{{ID: "2", Name: "New"}}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Resolve("Old"); ok {
		t.Fatalf("old item survived replace")
	}
}

func TestReplace_ConcurrentLastWriterWins(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Replace([]model.Item{{ID: "x", Name: "x"}})
			_ = c.Search("x")
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Fatalf("expected one item, got %d", c.Len())
	}
}
