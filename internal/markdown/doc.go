// Package markdown discovers Markdown documents with YAML frontmatter on a
// filesystem so they can be seeded into the content store.
package markdown
