package media

import (
	"math"
	"strings"
	"sync"
)

// SizeRegistry lists the intermediate image sizes in registration order.
type SizeRegistry struct {
	mu    sync.RWMutex
	sizes []ImageSize
}

// NewSizeRegistry returns a registry holding sizes.
func NewSizeRegistry(sizes ...ImageSize) *SizeRegistry {
	registry := &SizeRegistry{}
	for _, size := range sizes {
		registry.Register(size)
	}
	return registry
}

// Register adds or replaces a size. The reserved "full" name is ignored.
func (r *SizeRegistry) Register(size ImageSize) {
	size.Name = strings.TrimSpace(size.Name)
	if size.Name == "" || size.Name == FullSize {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.sizes {
		if existing.Name == size.Name {
			r.sizes[i] = size
			return
		}
	}
	r.sizes = append(r.sizes, size)
}

// Sizes returns a copy of the registered sizes.
func (r *SizeRegistry) Sizes() []ImageSize {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ImageSize, len(r.sizes))
	copy(out, r.sizes)
	return out
}

// Names returns every registered size name followed by "full".
func (r *SizeRegistry) Names() []string {
	sizes := r.Sizes()
	names := make([]string, 0, len(sizes)+1)
	for _, size := range sizes {
		names = append(names, size.Name)
	}
	return append(names, FullSize)
}

// Resolve returns one rendition per registered size plus "full". A size
// without a generated rendition falls back to the original URL with its
// dimensions scaled down to fit the size box.
func (r *SizeRegistry) Resolve(att *Attachment) map[string]Rendition {
	if att == nil {
		return nil
	}
	sizes := r.Sizes()
	out := make(map[string]Rendition, len(sizes)+1)
	for _, size := range sizes {
		if rendition, ok := att.Renditions[size.Name]; ok && rendition.URL != "" {
			out[size.Name] = rendition
			continue
		}
		width, height := ConstrainDimensions(att.Width, att.Height, size.Width, size.Height)
		out[size.Name] = Rendition{URL: att.URL, Width: width, Height: height}
	}
	out[FullSize] = Rendition{URL: att.URL, Width: att.Width, Height: att.Height}
	return out
}

// ConstrainDimensions scales width and height proportionally so they fit
// within maxWidth x maxHeight. A zero bound leaves that axis unconstrained
// and images are never scaled up.
func ConstrainDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	ratio := 1.0
	if maxWidth > 0 && width > maxWidth {
		ratio = float64(maxWidth) / float64(width)
	}
	if maxHeight > 0 && height > maxHeight {
		ratio = math.Min(ratio, float64(maxHeight)/float64(height))
	}
	if ratio >= 1 {
		return width, height
	}
	w := max(1, int(math.Round(float64(width)*ratio)))
	h := max(1, int(math.Round(float64(height)*ratio)))
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	if maxHeight > 0 {
		h = min(h, maxHeight)
	}
	return w, h
}
