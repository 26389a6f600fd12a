package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newBuilder(t *testing.T, store *graph.NodeStore, externals []string) *GraphBuilder {
	t.Helper()
	r, err := resolver.New("")
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	b, err := NewGraphBuilder(store, r, externals, nil)
	if err != nil {
		t.Fatalf("NewGraphBuilder: %v", err)
	}
	return b
}

func TestAnalyzeSeededExternalKept(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "entry.js")
	writeSource(t, entry, `
import { useTranslation } from 'react-i18next';
export function useGreeting() {
	const { t } = useTranslation();
	return t('hello');
}
`)

	store := graph.NewNodeStore()
	seeded := graph.NewNode(filepath.Join(dir, "react-i18next"), graph.SourceKindSynthetic)
	seeded.SetExport("useTranslation", &domain.I18nMember{Kind: domain.I18nKindHook})
	store.Insert(seeded)

	b := newBuilder(t, store, []string{"react-i18next"})
	node := b.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for entry.js")
	}
	if !node.ImportedI18n {
		t.Error("expected ImportedI18n to propagate from the seeded external")
	}
}

func TestAnalyzeUnseededExternalDropped(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "entry.js")
	writeSource(t, entry, `
import lodash from 'lodash';
export const noop = () => {};
`)

	store := graph.NewNodeStore()
	b := newBuilder(t, store, []string{"lodash"})
	node := b.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for entry.js")
	}
	if len(node.Importing) != 0 {
		t.Errorf("expected the unseeded external import to be dropped, got %v", node.Importing)
	}
	if node.ImportedI18n {
		t.Error("did not expect ImportedI18n on a file with only a dropped external")
	}
}

func TestAnalyzeCycleDoesNotHang(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	writeSource(t, a, `import './b'; export const fromA = 1;`)
	writeSource(t, b, `import './a'; export const fromB = 2;`)

	store := graph.NewNodeStore()
	builder := newBuilder(t, store, nil)

	node := builder.Analyze(a, "")
	if node == nil {
		t.Fatal("expected a node for a.js")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestClassifyDirectWrapperExport(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "i18n.js")
	entry := filepath.Join(dir, "hooks.js")
	writeSource(t, inner, `export function t(key) { return key; }`)
	writeSource(t, entry, `
import { t } from './i18n';
export const translate = (key) => t(key);
`)

	store := graph.NewNodeStore()
	innerNode := graph.NewNode(inner, graph.SourceKindScript)
	innerNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(innerNode)

	builder := newBuilder(t, store, nil)
	node := builder.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for hooks.js")
	}
	member, ok := node.Exporting["translate"]
	if !ok || member == nil || member.Kind != domain.I18nKindTMethod {
		t.Errorf("Exporting[translate] = %+v, ok=%v", member, ok)
	}
}

func TestClassifyHookThenTMethod(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "i18n.js")
	entry := filepath.Join(dir, "hooks.js")
	writeSource(t, inner, `
export function useTranslation() { return {}; }
export function t(key) { return key; }
`)
	writeSource(t, entry, `
import { useTranslation, t } from './i18n';
export function useGreeting() {
	useTranslation();
	return t('hello');
}
`)

	store := graph.NewNodeStore()
	innerNode := graph.NewNode(inner, graph.SourceKindScript)
	innerNode.SetExport("useTranslation", &domain.I18nMember{Kind: domain.I18nKindHook})
	innerNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(innerNode)

	builder := newBuilder(t, store, nil)
	node := builder.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for hooks.js")
	}
	member, ok := node.Exporting["useGreeting"]
	if !ok || member == nil || member.Kind != domain.I18nKindHook {
		t.Errorf("Exporting[useGreeting] = %+v, ok=%v", member, ok)
	}
}

func TestClassifyReExportUnclassified(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "barrel.js")
	writeSource(t, entry, `export { useTranslation } from 'react-i18next';`)

	store := graph.NewNodeStore()
	builder := newBuilder(t, store, nil)
	node := builder.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for barrel.js")
	}
	member, ok := node.Exporting["useTranslation"]
	if !ok {
		t.Fatal("expected a re-export entry to still be recorded")
	}
	if member != nil {
		t.Errorf("expected a re-export to be unclassified, got %+v", member)
	}
}

func TestClassifyDestructuredExport(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "config.js")
	writeSource(t, entry, `export const { a, b: renamed } = someObject;`)

	store := graph.NewNodeStore()
	builder := newBuilder(t, store, nil)
	node := builder.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for config.js")
	}
	if _, ok := node.Exporting["a"]; !ok {
		t.Error("expected destructured name \"a\" to be recorded")
	}
	if _, ok := node.Exporting["renamed"]; !ok {
		t.Error("expected destructured rename \"renamed\" to be recorded")
	}
	if node.Exporting["a"] != nil || node.Exporting["renamed"] != nil {
		t.Error("expected destructured exports to be unclassified")
	}
}

func TestClassifyDefaultExport(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "default.js")
	writeSource(t, entry, `export default function Widget() {}`)

	store := graph.NewNodeStore()
	builder := newBuilder(t, store, nil)
	node := builder.Analyze(entry, "")
	if node == nil {
		t.Fatal("expected a node for default.js")
	}
	if _, ok := node.Exporting["default"]; !ok {
		t.Error("expected a \"default\" export entry to be recorded")
	}
}
