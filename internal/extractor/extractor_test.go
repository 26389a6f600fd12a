package extractor

import (
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/parser"
)

func parseJS(t *testing.T, source string) *parser.Node {
	t.Helper()
	ast, err := parser.ParseForLanguage("test.js", []byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return ast
}

func newFileNode(path string, importing map[string]string) *graph.Node {
	n := graph.NewNode(path, graph.SourceKindScript)
	for specifier, target := range importing {
		n.Importing[specifier] = target
	}
	return n
}

func TestWalkerTMethodDirectCall(t *testing.T) {
	dir := t.TempDir()
	tPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	tNode := graph.NewNode(tPath, graph.SourceKindScript)
	tNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(tNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"./i18n": tPath})
	ast := parseJS(t, `
import { t } from './i18n';
const label = t('widget.title');
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["default"]["widget.title"] {
		t.Errorf("expected key, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerTMethodWithNamespaceArg(t *testing.T) {
	dir := t.TempDir()
	tPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	tNode := graph.NewNode(tPath, graph.SourceKindScript)
	tNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(tNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"./i18n": tPath})
	ast := parseJS(t, `
import { t } from './i18n';
const label = t('title', { ns: 'widgets' });
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["widgets"]["title"] {
		t.Errorf("expected key under widgets namespace, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerHookDestructureUsage(t *testing.T) {
	dir := t.TempDir()
	hookPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	hookNode := graph.NewNode(hookPath, graph.SourceKindScript)
	hookNode.SetExport("useTranslation", &domain.I18nMember{Kind: domain.I18nKindHook})
	store.Insert(hookNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"react-i18next": hookPath})
	ast := parseJS(t, `
import { useTranslation } from 'react-i18next';
function Widget() {
	const { t } = useTranslation('widgets');
	return t('title');
}
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["widgets"]["title"] {
		t.Errorf("expected key under widgets namespace, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerObjectMemberUsage(t *testing.T) {
	dir := t.TempDir()
	pkgPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	pkgNode := graph.NewNode(pkgPath, graph.SourceKindScript)
	pkgNode.SetExport("default", &domain.I18nMember{Kind: domain.I18nKindObjectMemberT})
	store.Insert(pkgNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"./i18n": pkgPath})
	ast := parseJS(t, `
import i18n from './i18n';
const label = i18n.t('widget.title');
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["default"]["widget.title"] {
		t.Errorf("expected key, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerTransComponent(t *testing.T) {
	dir := t.TempDir()
	pkgPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	pkgNode := graph.NewNode(pkgPath, graph.SourceKindScript)
	pkgNode.SetExport("Trans", &domain.I18nMember{Kind: domain.I18nKindTransComp})
	store.Insert(pkgNode)

	file := newFileNode(filepath.Join(dir, "widget.jsx"), map[string]string{"react-i18next": pkgPath})
	ast, err := parser.ParseForLanguage("widget.jsx", []byte(`
import { Trans } from 'react-i18next';
function Widget() {
	return <Trans i18nKey="widget.description">Fallback text</Trans>;
}
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["default"]["widget.description"] {
		t.Errorf("expected key, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerDynamicMapPattern(t *testing.T) {
	dir := t.TempDir()
	tPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	tNode := graph.NewNode(tPath, graph.SourceKindScript)
	tNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(tNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"./i18n": tPath})
	ast := parseJS(t, `
import { t } from './i18n';
const labels = ['one', 'two'].map((v) => t('item_' + v));
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["default"]["item_one"] || !res.KeysByNamespace["default"]["item_two"] {
		t.Errorf("expected both mapped keys, got %+v", res.KeysByNamespace)
	}
}

func TestWalkerUnresolvedIdentifierDeferred(t *testing.T) {
	dir := t.TempDir()
	tPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	tNode := graph.NewNode(tPath, graph.SourceKindScript)
	tNode.SetExport("t", &domain.I18nMember{Kind: domain.I18nKindTMethod})
	store.Insert(tNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"./i18n": tPath})
	ast := parseJS(t, `
import { t } from './i18n';
import { KEY } from './constants';
const label = t(KEY);
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if len(res.Pending) != 1 {
		t.Fatalf("expected 1 pending key, got %+v", res.Pending)
	}
	if res.Pending[0].Identifier != "KEY" {
		t.Errorf("pending identifier = %q", res.Pending[0].Identifier)
	}
}

func TestWalkerHocWrapperUsage(t *testing.T) {
	dir := t.TempDir()
	pkgPath := filepath.Join(dir, "i18n.js")

	store := graph.NewNodeStore()
	pkgNode := graph.NewNode(pkgPath, graph.SourceKindScript)
	pkgNode.SetExport("withTranslation", &domain.I18nMember{Kind: domain.I18nKindHocWrapper})
	store.Insert(pkgNode)

	file := newFileNode(filepath.Join(dir, "widget.js"), map[string]string{"react-i18next": pkgPath})
	ast := parseJS(t, `
import { withTranslation } from 'react-i18next';
function Widget(props) {
	const { t } = props;
	return t('widget.title');
}
export default withTranslation()(Widget);
`)

	w := newWalker(file, store, ast)
	w.run()
	res := w.result()

	if !res.KeysByNamespace["default"]["widget.title"] {
		t.Errorf("expected key extracted from wrapped component, got %+v", res.KeysByNamespace)
	}
}

func TestExtractorSkipsSyntheticNodes(t *testing.T) {
	store := graph.NewNodeStore()
	e := New(store)
	node := graph.NewNode("/virtual/i18next", graph.SourceKindSynthetic)

	res, err := e.Extract(node)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.KeysByNamespace) != 0 {
		t.Errorf("expected no keys for a synthetic node, got %+v", res.KeysByNamespace)
	}
}
