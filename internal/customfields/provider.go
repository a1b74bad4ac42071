package customfields

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/media"
	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

var ErrGroupNameRequired = errors.New("customfields: group name required")

// ErrValueInvalid marks a stored value that cannot be read as its field type.
var ErrValueInvalid = errors.New("customfields: stored value invalid")

// Provider reads custom field values from post meta and shapes them according
// to the field groups attached to the post's kind.
type Provider struct {
	meta    posts.MetaRepository
	media   media.Repository
	groups  []Group
	schemas map[string]*jsonschema.Schema
	logger  interfaces.Logger
}

// Option customises a Provider.
type Option func(*Provider)

// WithMedia resolves image fields to attachment descriptions.
func WithMedia(repo media.Repository) Option {
	return func(p *Provider) {
		p.media = repo
	}
}

// WithLogger sets the logger that reports unreadable stored values.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider compiles one schema per group.
func NewProvider(meta posts.MetaRepository, groups []Group, opts ...Option) (*Provider, error) {
	p := &Provider{
		meta:    meta,
		logger:  logging.NoOp(),
		groups:  make([]Group, 0, len(groups)),
		schemas: make(map[string]*jsonschema.Schema, len(groups)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	for _, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return nil, ErrGroupNameRequired
		}
		compiled, err := compileSchema(name, group.JSONSchema())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
		}
		group.Name = name
		p.groups = append(p.groups, group)
		p.schemas[name] = compiled
	}
	return p, nil
}

// Groups returns the groups attached to kind in declaration order.
func (p *Provider) Groups(kind string) []Group {
	out := []Group{}
	for _, group := range p.groups {
		if group.AppliesTo(kind) {
			out = append(out, group)
		}
	}
	return out
}

// Fields returns the typed custom field values of post. Fields that are not
// stored, or whose stored value is unreadable, fall back to their default; a
// post without any value yields nil.
func (p *Provider) Fields(ctx context.Context, post *posts.Post) (map[string]any, error) {
	if post == nil || p.meta == nil {
		return nil, nil
	}
	stored, err := p.meta.ListMeta(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	for _, group := range p.Groups(post.Kind) {
		for _, field := range group.Fields {
			raw, ok := stored[field.Name]
			if ok && raw != "" {
				value, err := p.coerce(ctx, field, raw)
				if err == nil {
					values[field.Name] = value
					continue
				}
				if !errors.Is(err, ErrValueInvalid) {
					return nil, fmt.Errorf("customfields: field %s of post %d: %w", field.Name, post.ID, err)
				}
				p.logger.Warn("customfields.value.invalid", "post_id", post.ID, "field", field.Name, "type", field.Type, "error", err)
			}
			if field.Default != nil {
				values[field.Name] = field.Default
			}
		}
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// Validate checks raw field values against every group attached to kind.
// Image fields are validated as attachment ids.
func (p *Provider) Validate(kind string, values map[string]any) error {
	for _, group := range p.Groups(kind) {
		subset := map[string]any{}
		for _, field := range group.Fields {
			if value, ok := values[field.Name]; ok {
				subset[field.Name] = value
			}
		}
		payload, err := toJSONValue(subset)
		if err != nil {
			return &ValidationError{Group: group.Name, Cause: err}
		}
		if err := p.schemas[group.Name].Validate(payload); err != nil {
			return &ValidationError{Group: group.Name, Issues: collectIssues(err), Cause: err}
		}
	}
	return nil
}

func (p *Provider) coerce(ctx context.Context, field Field, raw string) (any, error) {
	switch normalizeType(field.Type) {
	case TypeNumber:
		value, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValueInvalid, err)
		}
		return value, nil
	case TypeTrueFalse:
		return parseBool(raw), nil
	case TypeJSON:
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValueInvalid, err)
		}
		return decoded, nil
	case TypeImage:
		return p.image(ctx, raw)
	default:
		return raw, nil
	}
}

func (p *Provider) image(ctx context.Context, raw string) (any, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValueInvalid, err)
	}
	if p.media == nil {
		return id, nil
	}
	att, err := p.media.GetByID(ctx, id)
	if err != nil {
		var notFound *media.NotFoundError
		if errors.As(err, &notFound) {
			return id, nil
		}
		return nil, err
	}
	return map[string]any{
		"id":      att.ID,
		"url":     att.URL,
		"width":   att.Width,
		"height":  att.Height,
		"alt":     att.AltText,
		"caption": att.Caption,
	}, nil
}

func parseNumber(raw string) (any, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, err
	}
	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return int64(value), nil
	}
	return value, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
