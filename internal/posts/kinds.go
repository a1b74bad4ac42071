package posts

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Built-in content kinds. They are always registered and always exposed.
const (
	KindArticle = "article"
	KindPage    = "page"
)

// Features a kind may declare support for.
const (
	SupportComments      = "comments"
	SupportThumbnail     = "thumbnail"
	SupportCustomFields  = "custom-fields"
	SupportExcerpt       = "excerpt"
	SupportPageAttribute = "page-attributes"
)

var (
	ErrKindNameRequired = errors.New("posts: kind name is required")
	ErrKindExists       = errors.New("posts: kind already registered")
	ErrKindRestBase     = errors.New("posts: kind rest base collides with a registered kind")
)

// Kind describes a named category of content.
type Kind struct {
	Name       string
	Label      string
	RestBase   string
	ShowInREST bool
	Builtin    bool
	Features   []string
}

// Base returns the route segment the kind is exposed under.
func (k Kind) Base() string {
	if base := strings.Trim(strings.TrimSpace(k.RestBase), "/"); base != "" {
		return base
	}
	return k.Name
}

// Supports reports whether the kind declares the feature.
func (k Kind) Supports(feature string) bool {
	return slices.Contains(k.Features, feature)
}

// KindRegistry holds the content kinds known to the process.
type KindRegistry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewKindRegistry returns a registry seeded with the built-in kinds.
func NewKindRegistry() *KindRegistry {
	registry := &KindRegistry{kinds: map[string]Kind{}}
	registry.kinds[KindArticle] = Kind{
		Name:       KindArticle,
		Label:      "Articles",
		RestBase:   "articles",
		ShowInREST: true,
		Builtin:    true,
		Features:   []string{SupportThumbnail, SupportCustomFields, SupportExcerpt},
	}
	registry.kinds[KindPage] = Kind{
		Name:       KindPage,
		Label:      "Pages",
		RestBase:   "pages",
		ShowInREST: true,
		Builtin:    true,
		Features:   []string{SupportThumbnail, SupportCustomFields, SupportPageAttribute},
	}
	return registry
}

// Register adds a non built-in kind.
func (r *KindRegistry) Register(kind Kind) error {
	kind.Name = strings.ToLower(strings.TrimSpace(kind.Name))
	if kind.Name == "" {
		return ErrKindNameRequired
	}
	kind.Builtin = false
	kind.Features = slices.Clone(kind.Features)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[kind.Name]; exists {
		return fmt.Errorf("%w: %s", ErrKindExists, kind.Name)
	}
	for _, existing := range r.kinds {
		if existing.Base() == kind.Base() {
			return fmt.Errorf("%w: %s", ErrKindRestBase, kind.Base())
		}
	}
	r.kinds[kind.Name] = kind
	return nil
}

// AddSupport declares additional features on a registered kind.
func (r *KindRegistry) AddSupport(name string, features ...string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	r.mu.Lock()
	defer r.mu.Unlock()

	kind, ok := r.kinds[name]
	if !ok {
		return &NotFoundError{Resource: "kind", Key: name}
	}
	for _, feature := range features {
		feature = strings.TrimSpace(feature)
		if feature != "" && !slices.Contains(kind.Features, feature) {
			kind.Features = append(slices.Clone(kind.Features), feature)
		}
	}
	r.kinds[name] = kind
	return nil
}

// Get returns the kind registered under name.
func (r *KindRegistry) Get(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kind, ok := r.kinds[name]
	return kind, ok
}

// RESTKinds returns the kinds exposed over the API: the built-ins first
// (article, page), then every REST-visible custom kind sorted by name.
func (r *KindRegistry) RESTKinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	custom := make([]Kind, 0, len(r.kinds))
	for _, kind := range r.kinds {
		if kind.Builtin || !kind.ShowInREST {
			continue
		}
		custom = append(custom, kind)
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i].Name < custom[j].Name })

	out := make([]Kind, 0, len(custom)+2)
	out = append(out, r.kinds[KindArticle], r.kinds[KindPage])
	return append(out, custom...)
}
