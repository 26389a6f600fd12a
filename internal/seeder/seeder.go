// Package seeder materializes synthetic Nodes for the recognized i18n
// packages -- the built-in preset plus any user-declared extensions -- before
// the GraphBuilder starts walking real source files.
package seeder

import (
	"path/filepath"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
)

// presetMembers is the canonical six-member shape every i18n package answers.
var presetMembers = buildPresetMembers()

func buildPresetMembers() []domain.Member {
	members := make([]domain.Member, 0, len(domain.PresetMemberName))
	for name, kind := range domain.PresetMemberName {
		members = append(members, domain.Member{Name: name, Kind: kind})
	}
	return members
}

// Seed builds synthetic Nodes for the preset packages plus any entries in
// extras, inserting each into store. entryDir is the directory the package
// paths are resolved against (the first entry file's directory).
func Seed(store *graph.NodeStore, r *resolver.Resolver, entryDir string, extras []domain.I18nPackage) {
	for _, pkgPath := range domain.PresetPackages {
		seedOne(store, r, entryDir, pkgPath, nil)
	}
	for _, pkg := range extras {
		seedOne(store, r, entryDir, pkg.PackagePath, pkg.Members)
	}
}

func seedOne(store *graph.NodeStore, r *resolver.Resolver, entryDir, pkgPath string, declared []domain.Member) {
	path, err := r.Resolve(entryDir, pkgPath)
	if err != nil {
		path = filepath.Clean(filepath.Join(entryDir, pkgPath))
	}

	node := graph.NewNode(path, graph.SourceKindSynthetic)

	seen := make(map[string]bool, len(declared))
	for _, m := range declared {
		ns := m.Namespace
		node.SetExport(m.Name, &domain.I18nMember{Kind: m.Kind, Namespace: ns})
		seen[string(m.Kind)] = true
	}

	for _, m := range presetMembers {
		if seen[string(m.Kind)] {
			continue
		}
		node.SetExport(m.Name, &domain.I18nMember{Kind: m.Kind})
	}

	store.Insert(node)
}
