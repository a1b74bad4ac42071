package media

import (
	"maps"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FullSize names the original upload in size listings.
const FullSize = "full"

// Attachment is an uploaded image together with its generated renditions.
type Attachment struct {
	bun.BaseModel `bun:"table:attachments,alias:a"`

	ID         int64                `bun:"id,pk,autoincrement" json:"id"`
	UID        uuid.UUID            `bun:"uid,type:uuid,notnull,unique" json:"-"`
	URL        string               `bun:"url,notnull" json:"url"`
	MimeType   string               `bun:"mime_type" json:"mime_type,omitempty"`
	Width      int                  `bun:"width" json:"width"`
	Height     int                  `bun:"height" json:"height"`
	Caption    string               `bun:"caption" json:"caption,omitempty"`
	AltText    string               `bun:"alt_text" json:"alt_text,omitempty"`
	Renditions map[string]Rendition `bun:"renditions,type:jsonb" json:"renditions,omitempty"`
}

// Rendition is one concrete representation of an attachment.
type Rendition struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageSize is a registered intermediate size.
type ImageSize struct {
	Name   string
	Width  int
	Height int
	Crop   bool
}

func cloneAttachment(att *Attachment) *Attachment {
	if att == nil {
		return nil
	}
	cloned := *att
	cloned.Renditions = maps.Clone(att.Renditions)
	return &cloned
}
