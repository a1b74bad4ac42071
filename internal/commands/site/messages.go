package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importSiteMessageType = "cms.site.import"

// ImportSiteCommand seeds the content store from a YAML manifest, a directory
// of Markdown documents, or both.
type ImportSiteCommand struct {
	// ManifestPath points at a site manifest file.
	ManifestPath string `json:"manifest_path,omitempty"`
	// ContentDir holds Markdown documents with frontmatter.
	ContentDir string `json:"content_dir,omitempty"`
	// Recursive walks sub-directories of ContentDir.
	Recursive bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ImportSiteCommand) Type() string { return importSiteMessageType }

// Validate requires at least one source.
func (cmd ImportSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ManifestPath, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" && strings.TrimSpace(cmd.ContentDir) == "" {
				return validation.NewError("cms.site.import.source_required", "manifest path or content dir is required")
			}
			return nil
		})),
	)
}
