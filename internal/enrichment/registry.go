package enrichment

import (
	"context"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

// CustomFieldsProvider supplies the custom field mapping of a post. A nil map
// means the post has no fields.
type CustomFieldsProvider interface {
	Fields(ctx context.Context, post *posts.Post) (map[string]any, error)
}

// SEOProvider supplies SEO metadata for a post.
type SEOProvider interface {
	Title(ctx context.Context, post *posts.Post) (string, error)
	Meta(ctx context.Context, postID int64, key string) (string, error)
}

// Registry records which optional enrichment subsystems are installed. A
// subsystem is present only once its provider has been registered.
type Registry struct {
	mu           sync.RWMutex
	customFields CustomFieldsProvider
	seo          SEOProvider
}

// NewRegistry returns a registry with no providers.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterCustomFields installs the custom fields subsystem. Passing nil
// uninstalls it.
func (r *Registry) RegisterCustomFields(provider CustomFieldsProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customFields = provider
}

// RegisterSEO installs the SEO subsystem. Passing nil uninstalls it.
func (r *Registry) RegisterSEO(provider SEOProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seo = provider
}

// CustomFields returns the custom fields provider when installed.
func (r *Registry) CustomFields() (CustomFieldsProvider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.customFields, r.customFields != nil
}

// SEO returns the SEO provider when installed.
func (r *Registry) SEO() (SEOProvider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seo, r.seo != nil
}
