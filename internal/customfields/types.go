package customfields

import (
	"slices"
	"strings"
)

// Field types understood by the provider.
const (
	TypeText      = "text"
	TypeTextarea  = "textarea"
	TypeNumber    = "number"
	TypeTrueFalse = "true_false"
	TypeSelect    = "select"
	TypeJSON      = "json"
	TypeImage     = "image"
)

// Field declares one custom field. Values are stored as post meta under Name.
type Field struct {
	Name     string
	Type     string
	Default  any
	Choices  []string
	Required bool
}

// Group is a named set of fields attached to content kinds. A group without
// kinds applies to every kind.
type Group struct {
	Name   string
	Kinds  []string
	Fields []Field
}

// AppliesTo reports whether the group is attached to kind.
func (g Group) AppliesTo(kind string) bool {
	return len(g.Kinds) == 0 || slices.Contains(g.Kinds, kind)
}

func normalizeType(fieldType string) string {
	return strings.ToLower(strings.TrimSpace(fieldType))
}
