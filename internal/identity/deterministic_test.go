package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	if PostUUID(42) != PostUUID(42) {
		t.Fatalf("expected stable uuid for the same key")
	}
	if PostUUID(42) == MenuUUID(42) {
		t.Fatalf("expected resource prefix to separate post and menu ids")
	}
	if PostMetaUUID(1, "_thumbnail_id") == PostMetaUUID(1, "_yoast_wpseo_title") {
		t.Fatalf("expected distinct meta uuids per key")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("  "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}
