package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-cms-rest/internal/comments"
	"github.com/goliatone/go-cms-rest/internal/domain"
	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/markdown"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/menus"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/users"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

var (
	ErrUnknownKind   = errors.New("fixtures: unknown content kind")
	ErrTitleRequired = errors.New("fixtures: post title is required")
	ErrStatusInvalid = errors.New("fixtures: post status is invalid")
	ErrMenuRequired  = errors.New("fixtures: menu name is required")
)

// Stores groups the repositories a manifest is written to.
type Stores struct {
	Posts     posts.Repository
	Meta      posts.MetaRepository
	Menus     menus.MenuRepository
	MenuItems menus.MenuItemRepository
	Locations menus.LocationRepository
	Media     media.Repository
	Comments  comments.Repository
	Authors   users.Repository
}

// FieldValidator checks custom field values declared for a kind.
type FieldValidator interface {
	Validate(kind string, values map[string]any) error
}

// Summary counts the records written by an import.
type Summary struct {
	Authors   int
	Media     int
	Posts     int
	Comments  int
	Menus     int
	MenuItems int
	Locations int
}

// Add folds other into s.
func (s *Summary) Add(other Summary) {
	s.Authors += other.Authors
	s.Media += other.Media
	s.Posts += other.Posts
	s.Comments += other.Comments
	s.Menus += other.Menus
	s.MenuItems += other.MenuItems
	s.Locations += other.Locations
}

// Importer writes manifests and Markdown documents into the content store.
type Importer struct {
	stores Stores
	kinds  *posts.KindRegistry
	fields FieldValidator
	logger interfaces.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithFieldValidator validates post meta against custom field groups.
func WithFieldValidator(validator FieldValidator) ImporterOption {
	return func(i *Importer) {
		i.fields = validator
	}
}

// WithLogger sets the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter constructs an importer. A nil kinds registry falls back to the
// built-in kinds.
func NewImporter(stores Stores, kinds *posts.KindRegistry, opts ...ImporterOption) *Importer {
	if kinds == nil {
		kinds = posts.NewKindRegistry()
	}
	importer := &Importer{
		stores: stores,
		kinds:  kinds,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(importer)
	}
	return importer
}

// Import writes every record of manifest. Records are written in dependency
// order: authors, media, posts, comments, menus, then location assignments.
func (i *Importer) Import(ctx context.Context, manifest *Manifest) (Summary, error) {
	var summary Summary
	if manifest == nil {
		return summary, nil
	}

	for _, fixture := range manifest.Authors {
		if _, err := i.stores.Authors.Create(ctx, &users.Author{
			ID:          fixture.ID,
			Login:       fixture.Login,
			DisplayName: fixture.DisplayName,
			Email:       fixture.Email,
		}); err != nil {
			return summary, fmt.Errorf("fixtures: author %d: %w", fixture.ID, err)
		}
		summary.Authors++
	}

	for _, fixture := range manifest.Media {
		if _, err := i.stores.Media.Create(ctx, attachmentFromFixture(fixture)); err != nil {
			return summary, fmt.Errorf("fixtures: media %d: %w", fixture.ID, err)
		}
		summary.Media++
	}

	for _, fixture := range manifest.Posts {
		if _, err := i.importPost(ctx, fixture); err != nil {
			return summary, err
		}
		summary.Posts++
	}

	for _, fixture := range manifest.Comments {
		status := strings.TrimSpace(fixture.Status)
		if status == "" {
			status = comments.StatusApproved
		}
		if _, err := i.stores.Comments.Create(ctx, &comments.Comment{
			ID:         fixture.ID,
			PostID:     fixture.Post,
			ParentID:   fixture.Parent,
			AuthorName: fixture.AuthorName,
			AuthorURL:  fixture.AuthorURL,
			Content:    fixture.Content,
			Status:     status,
			Date:       fixture.Date.UTC(),
		}); err != nil {
			return summary, fmt.Errorf("fixtures: comment %d: %w", fixture.ID, err)
		}
		summary.Comments++
	}

	for _, fixture := range manifest.Menus {
		items, err := i.importMenu(ctx, fixture)
		if err != nil {
			return summary, err
		}
		summary.Menus++
		summary.MenuItems += items
	}

	locations := make([]string, 0, len(manifest.Locations))
	for location := range manifest.Locations {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	for _, location := range locations {
		if err := i.stores.Locations.Assign(ctx, location, manifest.Locations[location]); err != nil {
			return summary, fmt.Errorf("fixtures: assign location %s: %w", location, err)
		}
		summary.Locations++
	}

	i.logger.Info("fixtures.import.completed",
		"authors", summary.Authors,
		"media", summary.Media,
		"posts", summary.Posts,
		"comments", summary.Comments,
		"menus", summary.Menus,
		"menu_items", summary.MenuItems,
		"locations", summary.Locations,
	)
	return summary, nil
}

// ImportDocuments writes Markdown documents as posts. A document without a
// kind takes the kind whose route segment matches its top directory, and
// falls back to article.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*markdown.Document) (int, error) {
	count := 0
	for _, doc := range docs {
		meta := doc.FrontMatter
		modified := meta.Modified
		if modified.IsZero() {
			modified = doc.Modified
		}
		fixture := PostFixture{
			ID:            meta.ID,
			Kind:          meta.Kind,
			Title:         meta.Title,
			Slug:          meta.Slug,
			Content:       string(doc.Body),
			Format:        posts.FormatMarkdown,
			Excerpt:       meta.Excerpt,
			Status:        meta.Status,
			Author:        meta.Author,
			FeaturedMedia: meta.FeaturedMedia,
			CommentStatus: meta.Comments,
			Order:         meta.Order,
			Date:          meta.Date,
			Modified:      modified,
			Meta:          meta.Meta,
		}
		if strings.TrimSpace(fixture.Kind) == "" {
			fixture.Kind = i.kindForDir(doc.Dir())
		}
		if _, err := i.importPost(ctx, fixture); err != nil {
			return count, fmt.Errorf("%s: %w", doc.Path, err)
		}
		count++
	}
	i.logger.Info("fixtures.documents.imported", "posts", count)
	return count, nil
}

func (i *Importer) kindForDir(dir string) string {
	if dir != "" {
		for _, kind := range i.kinds.RESTKinds() {
			if kind.Base() == dir || kind.Name == dir {
				return kind.Name
			}
		}
	}
	return posts.KindArticle
}

func (i *Importer) importPost(ctx context.Context, fixture PostFixture) (*posts.Post, error) {
	kindName := strings.ToLower(strings.TrimSpace(fixture.Kind))
	if kindName == "" {
		kindName = posts.KindArticle
	}
	if _, ok := i.kinds.Get(kindName); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, fixture.Kind)
	}

	title := strings.TrimSpace(fixture.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: post %d", ErrTitleRequired, fixture.ID)
	}

	status, ok := domain.ParseStatus(fixture.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStatusInvalid, fixture.Status)
	}

	postSlug := strings.TrimSpace(fixture.Slug)
	if postSlug == "" {
		normalized, err := slug.Normalize(title)
		if err != nil {
			return nil, fmt.Errorf("fixtures: slug for %q: %w", title, err)
		}
		postSlug = normalized
	}

	if i.fields != nil && len(fixture.Meta) > 0 {
		values, _ := normalizeYAML(fixture.Meta).(map[string]any)
		if err := i.fields.Validate(kindName, values); err != nil {
			return nil, fmt.Errorf("fixtures: post %q custom fields: %w", postSlug, err)
		}
	}

	format := strings.ToLower(strings.TrimSpace(fixture.Format))
	if format == "" {
		format = posts.FormatHTML
	}
	date := fixture.Date.UTC()
	if fixture.Date.IsZero() {
		date = time.Now().UTC().Truncate(time.Second)
	}
	modified := fixture.Modified.UTC()
	if fixture.Modified.IsZero() {
		modified = date
	}

	created, err := i.stores.Posts.Create(ctx, &posts.Post{
		ID:              fixture.ID,
		Kind:            kindName,
		Title:           title,
		Content:         fixture.Content,
		Format:          format,
		Slug:            postSlug,
		Excerpt:         fixture.Excerpt,
		Status:          status,
		AuthorID:        fixture.Author,
		FeaturedMediaID: fixture.FeaturedMedia,
		CommentStatus:   fixture.CommentStatus,
		MenuOrder:       fixture.Order,
		Date:            date,
		Modified:        modified,
	})
	if err != nil {
		return nil, fmt.Errorf("fixtures: post %q: %w", postSlug, err)
	}

	keys := make([]string, 0, len(fixture.Meta))
	for key := range fixture.Meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value, err := metaString(fixture.Meta[key])
		if err != nil {
			return nil, fmt.Errorf("fixtures: post %q meta %s: %w", postSlug, key, err)
		}
		if err := i.stores.Meta.SetMeta(ctx, created.ID, key, value); err != nil {
			return nil, fmt.Errorf("fixtures: post %q meta %s: %w", postSlug, key, err)
		}
	}

	i.logger.Debug("fixtures.post.imported", "post_id", created.ID, "kind", kindName, "slug", postSlug)
	return created, nil
}

func (i *Importer) importMenu(ctx context.Context, fixture MenuFixture) (int, error) {
	name := strings.TrimSpace(fixture.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: menu %d", ErrMenuRequired, fixture.ID)
	}
	menuSlug := strings.TrimSpace(fixture.Slug)
	if menuSlug == "" {
		normalized, err := slug.Normalize(name)
		if err != nil {
			return 0, fmt.Errorf("fixtures: slug for menu %q: %w", name, err)
		}
		menuSlug = normalized
	}

	menu, err := i.stores.Menus.Create(ctx, &menus.Menu{
		ID:          fixture.ID,
		Name:        name,
		Slug:        menuSlug,
		Description: fixture.Description,
	})
	if err != nil {
		return 0, fmt.Errorf("fixtures: menu %q: %w", name, err)
	}

	for idx, item := range fixture.Items {
		order := item.Order
		if order == 0 {
			order = idx + 1
		}
		if _, err := i.stores.MenuItems.Create(ctx, &menus.MenuItem{
			ID:          item.ID,
			MenuID:      menu.ID,
			ParentID:    item.Parent,
			Title:       item.Title,
			URL:         item.URL,
			Target:      item.Target,
			Description: item.Description,
			Classes:     item.Classes,
			Order:       order,
		}); err != nil {
			return idx, fmt.Errorf("fixtures: menu %q item %q: %w", name, item.Title, err)
		}
	}
	return len(fixture.Items), nil
}

func attachmentFromFixture(fixture MediaFixture) *media.Attachment {
	var renditions map[string]media.Rendition
	if len(fixture.Renditions) > 0 {
		renditions = make(map[string]media.Rendition, len(fixture.Renditions))
		for name, rendition := range fixture.Renditions {
			renditions[name] = media.Rendition{URL: rendition.URL, Width: rendition.Width, Height: rendition.Height}
		}
	}
	return &media.Attachment{
		ID:         fixture.ID,
		URL:        fixture.URL,
		MimeType:   fixture.MimeType,
		Width:      fixture.Width,
		Height:     fixture.Height,
		Caption:    fixture.Caption,
		AltText:    fixture.Alt,
		Renditions: renditions,
	}
}

// metaString stores scalars in their text form and structures as JSON.
func metaString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.UTC().Format(time.RFC3339), nil
	default:
		encoded, err := json.Marshal(normalizeYAML(v))
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}

// normalizeYAML converts map[any]any values produced by frontmatter decoding
// into JSON encodable maps.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
