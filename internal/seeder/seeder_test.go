package seeder

import (
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
)

func TestSeedPresetPackages(t *testing.T) {
	store := graph.NewNodeStore()
	r, err := resolver.New("")
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}

	Seed(store, r, "/project/src", nil)

	if store.Len() != len(domain.PresetPackages) {
		t.Fatalf("Len() = %d, want %d", store.Len(), len(domain.PresetPackages))
	}

	wantPath := filepath.Clean(filepath.Join("/project/src", "i18next"))
	node, ok := store.Get(wantPath)
	if !ok {
		t.Fatalf("expected synthetic node at %s", wantPath)
	}
	if node.SourceKind != graph.SourceKindSynthetic {
		t.Errorf("SourceKind = %v, want synthetic", node.SourceKind)
	}
	if !node.ExportedI18n {
		t.Error("expected preset node to have ExportedI18n set")
	}

	// All six canonical member slots should be covered.
	seenKinds := make(map[domain.I18nKind]bool)
	for _, m := range node.Exporting {
		if m != nil {
			seenKinds[m.Kind] = true
		}
	}
	for name, kind := range domain.PresetMemberName {
		if !seenKinds[kind] {
			t.Errorf("preset kind %v (from %q) not covered", kind, name)
		}
	}
}

func TestSeedExtrasOverrideDeclaredKindOnly(t *testing.T) {
	store := graph.NewNodeStore()
	r, err := resolver.New("")
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}

	extras := []domain.I18nPackage{
		{
			PackagePath: "@myorg/i18n",
			Members: []domain.Member{
				{Name: "translate", Kind: domain.I18nKindTMethod},
			},
		},
	}
	Seed(store, r, "/project/src", extras)

	wantPath := filepath.Clean(filepath.Join("/project/src", "@myorg/i18n"))
	node, ok := store.Get(wantPath)
	if !ok {
		t.Fatalf("expected synthetic node at %s", wantPath)
	}

	// The declared TMethod member uses the custom name, not "t".
	if _, ok := node.Exporting["translate"]; !ok {
		t.Error("expected declared member \"translate\" to be exported")
	}
	if _, ok := node.Exporting["t"]; ok {
		t.Error("did not expect default preset \"t\" once the TMethod slot is already filled")
	}

	// The other five canonical slots are still backfilled from presets.
	if _, ok := node.Exporting["useTranslation"]; !ok {
		t.Error("expected Hook preset member to be backfilled")
	}
}
