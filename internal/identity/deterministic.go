package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-cms-rest:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by record type to avoid cross-entity collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID returns the uid stored alongside an integer-keyed record.
func RecordUUID(resource string, id int64) uuid.UUID {
	return UUID(namespace + strings.ToLower(strings.TrimSpace(resource)) + ":" + strconv.FormatInt(id, 10))
}

func PostUUID(id int64) uuid.UUID       { return RecordUUID("post", id) }
func MenuUUID(id int64) uuid.UUID       { return RecordUUID("menu", id) }
func MenuItemUUID(id int64) uuid.UUID   { return RecordUUID("menu_item", id) }
func AttachmentUUID(id int64) uuid.UUID { return RecordUUID("attachment", id) }
func CommentUUID(id int64) uuid.UUID    { return RecordUUID("comment", id) }
func AuthorUUID(id int64) uuid.UUID     { return RecordUUID("author", id) }

// PostMetaUUID keys a single meta entry by post and meta key.
func PostMetaUUID(postID int64, key string) uuid.UUID {
	return UUID(namespace + "post_meta:" + strconv.FormatInt(postID, 10) + ":" + strings.TrimSpace(key))
}

// LocationUUID keys a menu location assignment.
func LocationUUID(location string) uuid.UUID {
	return UUID(namespace + "menu_location:" + strings.ToLower(strings.TrimSpace(location)))
}
