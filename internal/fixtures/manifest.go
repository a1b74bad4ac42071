package fixtures

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML description of a site used to seed the content store.
type Manifest struct {
	Authors   []AuthorFixture  `yaml:"authors"`
	Media     []MediaFixture   `yaml:"media"`
	Posts     []PostFixture    `yaml:"posts"`
	Comments  []CommentFixture `yaml:"comments"`
	Menus     []MenuFixture    `yaml:"menus"`
	Locations map[string]int64 `yaml:"locations"`
}

type AuthorFixture struct {
	ID          int64  `yaml:"id"`
	Login       string `yaml:"login"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
}

type MediaFixture struct {
	ID         int64                       `yaml:"id"`
	URL        string                      `yaml:"url"`
	MimeType   string                      `yaml:"mime_type"`
	Width      int                         `yaml:"width"`
	Height     int                         `yaml:"height"`
	Caption    string                      `yaml:"caption"`
	Alt        string                      `yaml:"alt"`
	Renditions map[string]RenditionFixture `yaml:"renditions"`
}

type RenditionFixture struct {
	URL    string `yaml:"url"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PostFixture struct {
	ID            int64          `yaml:"id"`
	Kind          string         `yaml:"kind"`
	Title         string         `yaml:"title"`
	Slug          string         `yaml:"slug"`
	Content       string         `yaml:"content"`
	Format        string         `yaml:"format"`
	Excerpt       string         `yaml:"excerpt"`
	Status        string         `yaml:"status"`
	Author        int64          `yaml:"author"`
	FeaturedMedia int64          `yaml:"featured_media"`
	CommentStatus string         `yaml:"comment_status"`
	Order         int            `yaml:"order"`
	Date          time.Time      `yaml:"date"`
	Modified      time.Time      `yaml:"modified"`
	Meta          map[string]any `yaml:"meta"`
}

type CommentFixture struct {
	ID         int64     `yaml:"id"`
	Post       int64     `yaml:"post"`
	Parent     int64     `yaml:"parent"`
	AuthorName string    `yaml:"author_name"`
	AuthorURL  string    `yaml:"author_url"`
	Content    string    `yaml:"content"`
	Status     string    `yaml:"status"`
	Date       time.Time `yaml:"date"`
}

type MenuFixture struct {
	ID          int64             `yaml:"id"`
	Name        string            `yaml:"name"`
	Slug        string            `yaml:"slug"`
	Description string            `yaml:"description"`
	Items       []MenuItemFixture `yaml:"items"`
}

type MenuItemFixture struct {
	ID          int64    `yaml:"id"`
	Parent      int64    `yaml:"parent"`
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	Target      string   `yaml:"target"`
	Description string   `yaml:"description"`
	Classes     []string `yaml:"classes"`
	Order       int      `yaml:"order"`
}

// ParseManifest decodes a manifest. Unknown keys are rejected.
func ParseManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		if err == io.EOF {
			return &manifest, nil
		}
		return nil, fmt.Errorf("fixtures: decode manifest: %w", err)
	}
	return &manifest, nil
}

// LoadManifest reads the manifest stored at path.
func LoadManifest(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open manifest: %w", err)
	}
	defer file.Close()
	return ParseManifest(file)
}
