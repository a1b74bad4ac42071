package render

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-rest/internal/posts"
)

var (
	ErrShortcodeNameRequired = errors.New("render: shortcode name required")
	ErrShortcodeExists       = errors.New("render: shortcode already registered")
)

var (
	openTagPattern  = regexp.MustCompile(`\[([a-zA-Z0-9_\-]+)((?:\s[^\]]*)?)\]`)
	attrPattern     = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"|([\w-]+)\s*=\s*'([^']*)'|([\w-]+)\s*=\s*([^\s'"]+)|"([^"]*)"|(\S+)`)
	captionSplitter = regexp.MustCompile(`(?is)^(.*<img[^>]*>(?:\s*</a>)?)(.*)$`)
)

// Shortcode is a parsed `[name attr="v"]content[/name]` occurrence. Positional
// attributes are keyed "0", "1" and so on.
type Shortcode struct {
	Name    string
	Attrs   map[string]string
	Content string
}

// Attr returns the named attribute, falling back to the positional index.
func (s Shortcode) Attr(name string, position int) string {
	if value, ok := s.Attrs[name]; ok {
		return value
	}
	if position >= 0 {
		return s.Attrs[strconv.Itoa(position)]
	}
	return ""
}

// ShortcodeHandler renders one shortcode occurrence to HTML.
type ShortcodeHandler func(ctx context.Context, post *posts.Post, sc Shortcode) (string, error)

// Shortcodes expands registered WordPress-style shortcodes. Tags without a
// registered handler are left untouched.
type Shortcodes struct {
	mu       sync.RWMutex
	handlers map[string]ShortcodeHandler
}

// NewShortcodes returns an expander seeded with the built-in handlers.
func NewShortcodes() *Shortcodes {
	s := &Shortcodes{handlers: map[string]ShortcodeHandler{}}
	_ = s.Register("caption", captionShortcode)
	_ = s.Register("button", buttonShortcode)
	_ = s.Register("youtube", youtubeShortcode)
	return s
}

// Register installs a handler under name.
func (s *Shortcodes) Register(name string, handler ShortcodeHandler) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || handler == nil {
		return ErrShortcodeNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrShortcodeExists, name)
	}
	s.handlers[name] = handler
	return nil
}

// Names lists the registered shortcodes.
func (s *Shortcodes) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shortcodes) Name() string { return "shortcodes" }

func (s *Shortcodes) Apply(ctx context.Context, post *posts.Post, input string) (string, error) {
	if !strings.Contains(input, "[") {
		return input, nil
	}
	return s.expand(ctx, post, input)
}

func (s *Shortcodes) handler(name string) (ShortcodeHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handler, ok := s.handlers[strings.ToLower(name)]
	return handler, ok
}

func (s *Shortcodes) expand(ctx context.Context, post *posts.Post, content string) (string, error) {
	var out strings.Builder
	position := 0
	for position < len(content) {
		loc := openTagPattern.FindStringSubmatchIndex(content[position:])
		if loc == nil {
			out.WriteString(content[position:])
			break
		}
		start, end := position+loc[0], position+loc[1]
		name := content[position+loc[2] : position+loc[3]]
		rawAttrs := ""
		if loc[4] >= 0 {
			rawAttrs = content[position+loc[4] : position+loc[5]]
		}

		handler, ok := s.handler(name)
		if !ok {
			out.WriteString(content[position:end])
			position = end
			continue
		}
		out.WriteString(content[position:start])

		sc := Shortcode{Name: strings.ToLower(name)}
		selfClosing := strings.HasSuffix(strings.TrimSpace(rawAttrs), "/")
		if selfClosing {
			rawAttrs = strings.TrimSuffix(strings.TrimSpace(rawAttrs), "/")
		}
		sc.Attrs = parseAttrs(rawAttrs)

		next := end
		if !selfClosing {
			closing := "[/" + name + "]"
			if idx := strings.Index(content[end:], closing); idx >= 0 {
				inner, err := s.expand(ctx, post, content[end:end+idx])
				if err != nil {
					return "", err
				}
				sc.Content = inner
				next = end + idx + len(closing)
			}
		}

		rendered, err := handler(ctx, post, sc)
		if err != nil {
			return "", fmt.Errorf("shortcode %s: %w", sc.Name, err)
		}
		out.WriteString(rendered)
		position = next
	}
	return out.String(), nil
}

func parseAttrs(raw string) map[string]string {
	attrs := map[string]string{}
	positional := 0
	for _, match := range attrPattern.FindAllStringSubmatch(raw, -1) {
		switch {
		case match[1] != "":
			attrs[strings.ToLower(match[1])] = match[2]
		case match[3] != "":
			attrs[strings.ToLower(match[3])] = match[4]
		case match[5] != "":
			attrs[strings.ToLower(match[5])] = match[6]
		case match[7] != "" || strings.HasPrefix(match[0], `"`):
			attrs[strconv.Itoa(positional)] = match[7]
			positional++
		default:
			attrs[strconv.Itoa(positional)] = match[8]
			positional++
		}
	}
	return attrs
}

func captionShortcode(_ context.Context, _ *posts.Post, sc Shortcode) (string, error) {
	media := strings.TrimSpace(sc.Content)
	text := sc.Attr("caption", -1)
	if parts := captionSplitter.FindStringSubmatch(sc.Content); parts != nil {
		media = strings.TrimSpace(parts[1])
		if text == "" {
			text = strings.TrimSpace(parts[2])
		}
	}

	align := sc.Attr("align", -1)
	if align == "" {
		align = "alignnone"
	}

	var b strings.Builder
	b.WriteString("<figure")
	if id := sc.Attr("id", -1); id != "" {
		fmt.Fprintf(&b, ` id="%s"`, html.EscapeString(id))
	}
	fmt.Fprintf(&b, ` class="wp-caption %s"`, html.EscapeString(align))
	if width, err := strconv.Atoi(sc.Attr("width", -1)); err == nil && width > 0 {
		fmt.Fprintf(&b, ` style="width: %dpx"`, width)
	}
	b.WriteString(">")
	b.WriteString(media)
	if text != "" {
		fmt.Fprintf(&b, `<figcaption class="wp-caption-text">%s</figcaption>`, text)
	}
	b.WriteString("</figure>")
	return b.String(), nil
}

func buttonShortcode(_ context.Context, _ *posts.Post, sc Shortcode) (string, error) {
	label := strings.TrimSpace(sc.Content)
	if label == "" {
		label = html.EscapeString(sc.Attr("text", -1))
	}
	href := sc.Attr("url", 0)
	if href == "" {
		href = sc.Attr("href", -1)
	}
	if !safeURL(href) {
		return label, nil
	}
	return fmt.Sprintf(`<a class="button" href="%s">%s</a>`, html.EscapeString(href), label), nil
}

func youtubeShortcode(_ context.Context, _ *posts.Post, sc Shortcode) (string, error) {
	id := sc.Attr("id", -1)
	if id == "" {
		id = youtubeID(sc.Attr("url", 0))
	}
	if id == "" {
		return "", nil
	}
	width, height := sc.Attr("width", -1), sc.Attr("height", -1)
	if width == "" {
		width = "560"
	}
	if height == "" {
		height = "315"
	}
	return fmt.Sprintf(
		`<iframe width="%s" height="%s" src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`,
		html.EscapeString(width), html.EscapeString(height), url.PathEscape(id),
	), nil
}

func youtubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	if v := parsed.Query().Get("v"); v != "" {
		return v
	}
	base := path.Base(parsed.Path)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

func safeURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}
