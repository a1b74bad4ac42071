package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block at the top of a content document.
type FrontMatter struct {
	ID            int64          `yaml:"id"`
	Kind          string         `yaml:"kind"`
	Title         string         `yaml:"title"`
	Slug          string         `yaml:"slug"`
	Excerpt       string         `yaml:"excerpt"`
	Status        string         `yaml:"status"`
	Author        int64          `yaml:"author"`
	FeaturedMedia int64          `yaml:"featured_media"`
	Comments      string         `yaml:"comment_status"`
	Order         int            `yaml:"order"`
	Date          time.Time      `yaml:"date"`
	Modified      time.Time      `yaml:"modified"`
	Meta          map[string]any `yaml:"meta"`
}

// Document is a parsed content file.
type Document struct {
	// Path is slash separated and relative to the loader root.
	Path        string
	FrontMatter FrontMatter
	Body        []byte
	Modified    time.Time
}

// Dir returns the first path segment, or "" for files at the root.
func (d *Document) Dir() string {
	if d == nil {
		return ""
	}
	if idx := strings.IndexByte(d.Path, '/'); idx > 0 {
		return d.Path[:idx]
	}
	return ""
}

// ParseFrontMatter splits source into its metadata and Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, bytes.TrimSpace(body), nil
}

// BuildDocument parses source read from path.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{
		Path:        path,
		FrontMatter: meta,
		Body:        body,
		Modified:    modified,
	}, nil
}
