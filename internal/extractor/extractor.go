// Package extractor implements the second pass over the module graph: for
// every file known to import an i18n primitive, it walks usage sites and
// builds a namespace -> key-set map, deferring identifiers it cannot
// resolve locally to a PendingKey for the PostResolver.
package extractor

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/normalize"
	"github.com/ludo-technologies/i18nscan/internal/parser"
)

// PendingKey is a reference to an identifier whose value could not be
// resolved during the walk, to be retried by the PostResolver once every
// file's locals/imports/exports are cached.
type PendingKey struct {
	FilePath   string
	Namespace  string
	Identifier string
}

// Result is one file's extracted contribution: a namespace -> key-set map
// plus any identifiers that need PostResolver reconciliation.
type Result struct {
	KeysByNamespace map[string]map[string]bool
	Pending         []PendingKey
}

// Extractor walks every i18n-importing node in store and merges results.
type Extractor struct {
	store *graph.NodeStore
}

// New builds an Extractor over store.
func New(store *graph.NodeStore) *Extractor {
	return &Extractor{store: store}
}

// Extract walks node's import declarations and every usage site of each
// classified i18n primitive, normalizing the source first.
func (e *Extractor) Extract(node *graph.Node) (*Result, error) {
	if node.SourceKind == graph.SourceKindSynthetic {
		return &Result{KeysByNamespace: map[string]map[string]bool{}}, nil
	}

	src, err := os.ReadFile(node.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", node.Path, err)
	}

	normalized, err := normalize.Transform(node.Path, src)
	if err != nil {
		normalized = src // best-effort: fall back to the unnormalized source
	}

	ast, err := parser.ParseForLanguage(node.Path, normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", node.Path, err)
	}

	w := newWalker(node, e.store, ast)
	w.run()
	return w.result(), nil
}

// ExtractAll runs Extract over every i18n-importing node in the store and
// merges the per-file results into one namespace -> key-set map, collecting
// warnings for files that failed to read or parse rather than aborting.
func (e *Extractor) ExtractAll() (map[string]map[string]bool, []PendingKey, []string) {
	merged := make(map[string]map[string]bool)
	var pending []PendingKey
	var warnings []string

	for _, node := range e.store.AllI18nNodes() {
		result, err := e.Extract(node)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		mergeInto(merged, result.KeysByNamespace)
		pending = append(pending, result.Pending...)
	}

	return merged, pending, warnings
}

func mergeInto(dst, src map[string]map[string]bool) {
	for ns, keys := range src {
		bucket, ok := dst[ns]
		if !ok {
			bucket = make(map[string]bool)
			dst[ns] = bucket
		}
		for k := range keys {
			bucket[k] = true
		}
	}
}

const defaultNamespace = "default"

func namespaceOrDefault(ns *string) string {
	if ns == nil || *ns == "" {
		return defaultNamespace
	}
	return *ns
}

// translatorMemberNames returns the member names on target's exporting
// table classified TMethod, falling back to the preset name "t".
func translatorMemberNames(target *graph.Node) []string {
	if target == nil {
		return []string{"t"}
	}
	var names []string
	for name, member := range target.Exporting {
		if member != nil && member.Kind == domain.I18nKindTMethod {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = []string{"t"}
	}
	return names
}

func isTranslatorMemberName(name string, known []string) bool {
	for _, n := range known {
		if n == name {
			return true
		}
	}
	return false
}
