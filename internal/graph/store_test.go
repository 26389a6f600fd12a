package graph

import (
	"testing"

	"github.com/ludo-technologies/i18nscan/domain"
)

func TestNodeStoreInsertAndGet(t *testing.T) {
	s := NewNodeStore()
	n := NewNode("/a.js", SourceKindScript)
	s.Insert(n)

	got, ok := s.Get("/a.js")
	if !ok {
		t.Fatal("expected node to be found")
	}
	if got != n {
		t.Error("expected the same node pointer back")
	}

	if _, ok := s.Get("/missing.js"); ok {
		t.Error("expected missing path to not be found")
	}

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestI18nExportedNodes(t *testing.T) {
	s := NewNodeStore()

	plain := NewNode("/plain.js", SourceKindScript)
	s.Insert(plain)

	exported := NewNode("/exported.js", SourceKindScript)
	exported.SetExport("t", nil)
	exported.ExportedI18n = true
	s.Insert(exported)

	nodes := s.I18nExportedNodes()
	if len(nodes) != 1 || nodes[0].Path != "/exported.js" {
		t.Errorf("I18nExportedNodes() = %v", nodes)
	}
}

func TestAllI18nNodes(t *testing.T) {
	s := NewNodeStore()

	plain := NewNode("/plain.js", SourceKindScript)
	s.Insert(plain)

	imports := NewNode("/imports.js", SourceKindScript)
	imports.MarkImportedI18n()
	s.Insert(imports)

	// ExportedI18n alone, without ImportedI18n, is not a file the
	// KeyExtractor needs to walk.
	exports := NewNode("/exports.js", SourceKindScript)
	exports.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	s.Insert(exports)

	nodes := s.AllI18nNodes()
	if len(nodes) != 1 || nodes[0].Path != "/imports.js" {
		t.Errorf("AllI18nNodes() = %v", nodes)
	}
}

func TestAllNodesIsSnapshot(t *testing.T) {
	s := NewNodeStore()
	s.Insert(NewNode("/a.js", SourceKindScript))

	nodes := s.AllNodes()
	s.Insert(NewNode("/b.js", SourceKindScript))

	if len(nodes) != 1 {
		t.Errorf("expected snapshot unaffected by later inserts, got %d nodes", len(nodes))
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
