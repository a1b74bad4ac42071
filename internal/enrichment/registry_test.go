package enrichment

import (
	"context"
	"testing"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

type stubSEO struct{}

func (stubSEO) Title(context.Context, *posts.Post) (string, error)  { return "title", nil }
func (stubSEO) Meta(context.Context, int64, string) (string, error) { return "", nil }

func TestRegistryPresence(t *testing.T) {
	var nilRegistry *Registry
	if _, ok := nilRegistry.SEO(); ok {
		t.Fatalf("expected nil registry to report no providers")
	}

	registry := NewRegistry()
	if _, ok := registry.SEO(); ok {
		t.Fatalf("expected SEO to be absent before registration")
	}
	if _, ok := registry.CustomFields(); ok {
		t.Fatalf("expected custom fields to be absent before registration")
	}

	registry.RegisterSEO(stubSEO{})
	if _, ok := registry.SEO(); !ok {
		t.Fatalf("expected SEO to be present after registration")
	}

	registry.RegisterSEO(nil)
	if _, ok := registry.SEO(); ok {
		t.Fatalf("expected SEO to be absent after unregistering")
	}
}
