package permissions

import (
	"context"
	"errors"
	"strings"
)

// Actions the read-only API checks.
const (
	ActionList = "list"
	ActionRead = "read"
)

var ErrPermissionDenied = errors.New("permissions: denied")

type Error struct {
	Permission string
}

func (e Error) Error() string {
	if strings.TrimSpace(e.Permission) == "" {
		return "permission denied"
	}
	return "permission denied: " + e.Permission
}

func (e Error) Unwrap() error {
	return ErrPermissionDenied
}

// Join builds a permission token from resource and action.
func Join(resource, action string) string {
	res := normalizeToken(resource)
	act := normalizeToken(action)
	if res == "" || act == "" {
		return ""
	}
	return res + ":" + act
}

// Set is a static collection of granted tokens. "resource:*" grants every
// action on resource and "*" grants everything.
type Set map[string]struct{}

func NewSet(perms ...string) Set {
	set := Set{}
	for _, perm := range perms {
		normalized := normalizePermission(perm)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

// Has reports whether permission is granted.
func (s Set) Has(permission string) bool {
	if len(s) == 0 {
		return false
	}
	normalized := normalizePermission(permission)
	if normalized == "" {
		return false
	}
	if _, ok := s[normalized]; ok {
		return true
	}
	if resource, _, found := strings.Cut(normalized, ":"); found {
		if _, ok := s[resource+":*"]; ok {
			return true
		}
	}
	_, ok := s["*"]
	return ok
}

// Allowed checks action on resource. A set stored on the context with
// WithPermissions takes precedence over s.
func (s Set) Allowed(ctx context.Context, action, resource string) bool {
	permission := Join(resource, action)
	if scoped, ok := FromContext(ctx); ok {
		return scoped.Has(permission)
	}
	return s.Has(permission)
}

type contextKey string

const setKey contextKey = "cms.permissions.set"

// WithPermissions stores a request scoped permission set on the context.
func WithPermissions(ctx context.Context, perms ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, setKey, NewSet(perms...))
}

// FromContext returns the permission set stored on ctx.
func FromContext(ctx context.Context) (Set, bool) {
	if ctx == nil {
		return nil, false
	}
	set, ok := ctx.Value(setKey).(Set)
	return set, ok
}

// Check returns an Error when permission is not granted by s.
func (s Set) Check(permission string) error {
	if s.Has(permission) {
		return nil
	}
	return Error{Permission: permission}
}

func normalizePermission(permission string) string {
	permission = strings.TrimSpace(permission)
	if permission == "*" {
		return permission
	}
	resource, action, found := strings.Cut(permission, ":")
	if !found {
		return normalizeToken(permission)
	}
	if strings.TrimSpace(action) == "*" {
		return normalizeToken(resource) + ":*"
	}
	return Join(resource, action)
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
