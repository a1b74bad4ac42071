package sitecmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-rest/internal/commands"
	"github.com/goliatone/go-cms-rest/internal/fixtures"
	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/internal/markdown"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

const importOperation = "site.import"

var _ command.Commander[ImportSiteCommand] = (*ImportSiteHandler)(nil)

// SiteImporter writes seed data into the content store.
type SiteImporter interface {
	Import(ctx context.Context, manifest *fixtures.Manifest) (fixtures.Summary, error)
	ImportDocuments(ctx context.Context, docs []*markdown.Document) (int, error)
}

// ImportSiteHandler loads manifests and Markdown directories through the
// shared command handler.
type ImportSiteHandler struct {
	inner *commands.Handler[ImportSiteCommand]
	last  fixtures.Summary
}

// NewImportSiteHandler creates a handler bound to importer.
func NewImportSiteHandler(importer SiteImporter, logger interfaces.Logger, opts ...commands.HandlerOption[ImportSiteCommand]) *ImportSiteHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	handler := &ImportSiteHandler{}

	exec := func(ctx context.Context, msg ImportSiteCommand) error {
		var summary fixtures.Summary

		if path := strings.TrimSpace(msg.ManifestPath); path != "" {
			manifest, err := fixtures.LoadManifest(path)
			if err != nil {
				return err
			}
			imported, err := importer.Import(ctx, manifest)
			summary.Add(imported)
			if err != nil {
				return err
			}
		}

		if dir := strings.TrimSpace(msg.ContentDir); dir != "" {
			loader := markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{Recursive: msg.Recursive})
			docs, err := loader.LoadDirectory(ctx, ".")
			if err != nil {
				return fmt.Errorf("load content dir %s: %w", dir, err)
			}
			count, err := importer.ImportDocuments(ctx, docs)
			summary.Posts += count
			if err != nil {
				return err
			}
		}

		handler.last = summary
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportSiteCommand]{
		commands.WithLogger[ImportSiteCommand](logger),
		commands.WithOperation[ImportSiteCommand](importOperation),
		commands.WithMessageFields(func(msg ImportSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.ManifestPath != "" {
				fields["manifest_path"] = msg.ManifestPath
			}
			if msg.ContentDir != "" {
				fields["content_dir"] = msg.ContentDir
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportSiteCommand](nil)),
	}
	handler.inner = commands.NewHandler(exec, append(handlerOpts, opts...)...)
	return handler
}

// Execute satisfies command.Commander[ImportSiteCommand].
func (h *ImportSiteHandler) Execute(ctx context.Context, msg ImportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastSummary reports the records written by the most recent execution.
func (h *ImportSiteHandler) LastSummary() fixtures.Summary {
	return h.last
}
