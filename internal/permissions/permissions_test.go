package permissions

import (
	"context"
	"errors"
	"testing"
)

func TestSetHas(t *testing.T) {
	set := NewSet("articles:read", "Menus:*", " ")

	cases := []struct {
		permission string
		want       bool
	}{
		{"articles:read", true},
		{"ARTICLES:READ", true},
		{"articles:list", false},
		{"menus:list", true},
		{"pages:read", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := set.Has(tc.permission); got != tc.want {
			t.Fatalf("Has(%q) = %v, want %v", tc.permission, got, tc.want)
		}
	}

	if !NewSet("*").Has("anything:read") {
		t.Fatal("expected wildcard to grant everything")
	}
	if (Set{}).Has("articles:read") {
		t.Fatal("expected empty set to deny")
	}
}

func TestSetAllowedPrefersContextSet(t *testing.T) {
	set := NewSet("articles:*")
	ctx := context.Background()

	if !set.Allowed(ctx, ActionList, "articles") {
		t.Fatal("expected static set to allow")
	}

	scoped := WithPermissions(ctx, "pages:read")
	if set.Allowed(scoped, ActionList, "articles") {
		t.Fatal("expected context set to take precedence")
	}
	if !set.Allowed(scoped, ActionRead, "pages") {
		t.Fatal("expected context set to grant pages:read")
	}
}

func TestSetCheck(t *testing.T) {
	err := NewSet("articles:read").Check("menus:read")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err.Error() != "permission denied: menus:read" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
