package resources

import (
	"reflect"
	"time"
)

// DateLayout renders timestamps as ISO-8601 with a numeric zone offset.
const DateLayout = "2006-01-02T15:04:05-07:00"

// Document is a serialisable resource representation.
type Document map[string]any

// Prune removes empty strings, nil values and empty collections from doc,
// recursing into nested maps and slices. Numbers and booleans are kept even
// when zero. Pruning a pruned document returns an equal document.
func Prune(doc Document) Document {
	out, _ := pruneValue(map[string]any(doc))
	pruned, _ := out.(map[string]any)
	if pruned == nil {
		return Document{}
	}
	return Document(pruned)
}

func pruneValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case Document:
		return pruneMap(v)
	case map[string]any:
		return pruneMap(v)
	case []Document:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return pruneSlice(items)
	case []map[string]any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return pruneSlice(items)
	case []any:
		return pruneSlice(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return value, rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
	}
	return value, true
}

func pruneMap(in map[string]any) (any, bool) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		if pruned, keep := pruneValue(value); keep {
			out[key] = pruned
		}
	}
	return out, len(out) > 0
}

func pruneSlice(in []any) (any, bool) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		if pruned, keep := pruneValue(value); keep {
			out = append(out, pruned)
		}
	}
	return out, len(out) > 0
}

// PruneFalsy drops the top-level entries of doc that are zero values: empty
// strings, zero numbers, false, nil and empty collections. Nested values are
// left as they are.
func PruneFalsy(doc Document) Document {
	out := make(Document, len(doc))
	for key, value := range doc {
		if !isFalsy(value) {
			out[key] = value
		}
	}
	return out
}

func isFalsy(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
