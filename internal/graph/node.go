// Package graph holds the module graph's shared, mutable data model: one
// Node per reachable source file (or synthetic package stub), indexed by
// canonical path in a NodeStore.
package graph

import "github.com/ludo-technologies/i18nscan/domain"

// SourceKind selects the parser mode a Node's file should be read with.
type SourceKind string

const (
	SourceKindScript     SourceKind = "script"      // .js, .mjs, .cjs
	SourceKindTypedScript SourceKind = "typed_script" // .ts, .mts, .cts
	SourceKindMarkup      SourceKind = "markup"       // .jsx
	SourceKindTypedMarkup SourceKind = "typed_markup"  // .tsx
	SourceKindSynthetic   SourceKind = "synthetic"     // seeded, never parsed
)

// SourceKindForExt maps a lowercased file extension (with leading dot) to
// the parser mode it selects. The zero value means "not a recognized
// script extension".
func SourceKindForExt(ext string) (SourceKind, bool) {
	switch ext {
	case ".js", ".mjs", ".cjs":
		return SourceKindScript, true
	case ".ts", ".mts", ".cts":
		return SourceKindTypedScript, true
	case ".jsx":
		return SourceKindMarkup, true
	case ".tsx":
		return SourceKindTypedMarkup, true
	}
	return "", false
}

// Node is a per-file record in the module graph.
type Node struct {
	Path       string
	SourceKind SourceKind

	// Importers is the unordered set of node paths that import this node.
	Importers map[string]bool

	// Importing maps the literal specifier string appearing in this file's
	// source to the resolved target node's path.
	Importing map[string]string

	// Exporting maps an exported name to its i18n classification. A nil
	// value means the name is a plain (non-i18n) export.
	Exporting map[string]*domain.I18nMember

	// ExportedI18n is set true on first insertion of a classified export
	// and never cleared.
	ExportedI18n bool

	// ImportedI18n is set true once this file is known to import at least
	// one name some already-known i18n node exports, and never cleared.
	ImportedI18n bool
}

// NewNode creates an empty Node for path.
func NewNode(path string, kind SourceKind) *Node {
	return &Node{
		Path:       path,
		SourceKind: kind,
		Importers:  make(map[string]bool),
		Importing:  make(map[string]string),
		Exporting:  make(map[string]*domain.I18nMember),
	}
}

// AddImporter records that importerPath imports this node.
func (n *Node) AddImporter(importerPath string) {
	if importerPath == "" {
		return
	}
	n.Importers[importerPath] = true
}

// SetExport records the classification of an exported name. A nil member
// marks a plain export. Once any classified (non-nil) member is recorded,
// ExportedI18n becomes true and stays true.
func (n *Node) SetExport(name string, member *domain.I18nMember) {
	n.Exporting[name] = member
	if member != nil {
		n.ExportedI18n = true
	}
}

// MarkImportedI18n sets the sticky imported-i18n flag.
func (n *Node) MarkImportedI18n() {
	n.ImportedI18n = true
}
