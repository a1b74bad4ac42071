package domain

import "strings"

// Status represents lifecycle states reported by the content store.
type Status string

const (
	// StatusDraft indicates content still under preparation
	StatusDraft Status = "draft"
	// StatusPending marks content awaiting review
	StatusPending Status = "pending"
	// StatusPrivate marks content visible only to signed-in editors
	StatusPrivate Status = "private"
	// StatusPublished identifies content available to consumers
	StatusPublished Status = "published"
	// StatusScheduled marks content that has a future publish time configured
	StatusScheduled Status = "scheduled"
	// StatusArchived marks content retained for history but not publicly visible
	StatusArchived Status = "archived"
)

// ParseStatus coerces a raw status string into a known Status. Common aliases
// ("publish", "future", "trash") are accepted. Blank input maps to draft.
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "draft", "auto-draft":
		return StatusDraft, true
	case "pending":
		return StatusPending, true
	case "private":
		return StatusPrivate, true
	case "published", "publish":
		return StatusPublished, true
	case "scheduled", "future":
		return StatusScheduled, true
	case "archived", "trash":
		return StatusArchived, true
	default:
		return Status(strings.TrimSpace(raw)), false
	}
}

// IsPublished reports whether the status is publicly readable.
func (s Status) IsPublished() bool {
	return s == StatusPublished
}
