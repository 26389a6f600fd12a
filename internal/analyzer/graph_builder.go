package analyzer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/keyeval"
	"github.com/ludo-technologies/i18nscan/internal/parser"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
)

// GraphBuilder recursively walks reachable source files, inserting a Node
// per file into the shared store and classifying each file's exports.
type GraphBuilder struct {
	store          *graph.NodeStore
	resolver       *resolver.Resolver
	moduleAnalyzer *ModuleAnalyzer
	externals      []*regexp.Regexp
}

// NewGraphBuilder builds a GraphBuilder. externals are regular expressions
// anchored against a whole specifier (or "specifier/rest", "specifier!/rest"); aliasPatterns
// feeds only module-type classification, not resolution.
func NewGraphBuilder(store *graph.NodeStore, r *resolver.Resolver, externals, aliasPatterns []string) (*GraphBuilder, error) {
	compiled := make([]*regexp.Regexp, 0, len(externals))
	for _, pattern := range externals {
		re, err := regexp.Compile("^(?:" + pattern + ")(?:!?/.*)?$")
		if err != nil {
			return nil, fmt.Errorf("compiling externals pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return &GraphBuilder{
		store:          store,
		resolver:       r,
		moduleAnalyzer: NewModuleAnalyzer(aliasPatterns),
		externals:      compiled,
	}, nil
}

func (b *GraphBuilder) isExternal(specifier string) bool {
	for _, re := range b.externals {
		if re.MatchString(specifier) {
			return true
		}
	}
	return false
}

type pendingEdge struct{ specifier, target string }

// Analyze builds (or returns the already-built) Node for path. importerPath,
// when non-empty, is recorded as an importer of the returned node.
func (b *GraphBuilder) Analyze(path, importerPath string) *graph.Node {
	if existing, ok := b.store.Get(path); ok {
		if importerPath != "" {
			existing.AddImporter(importerPath)
		}
		return existing
	}

	kind, ok := graph.SourceKindForExt(strings.ToLower(filepath.Ext(path)))
	if !ok {
		return nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warn: i18nscan: cannot read %s: %v", path, err)
		return nil
	}

	ast, err := parser.ParseForLanguage(path, src)
	if err != nil {
		log.Printf("warn: i18nscan: cannot parse %s: %v", path, err)
		return nil
	}

	node := graph.NewNode(path, kind)
	if importerPath != "" {
		node.AddImporter(importerPath)
	}
	// Insert before recursing: the self-check above breaks cycles.
	b.store.Insert(node)

	dir := filepath.Dir(path)
	imports := b.moduleAnalyzer.ExtractImports(ast)

	var pending []pendingEdge
	localI18n := make(map[string]*domain.I18nMember)

	for _, imp := range imports {
		external := b.isExternal(imp.Source)

		target, err := b.resolver.Resolve(dir, imp.Source)
		if err != nil {
			if !external {
				log.Printf("debug: i18nscan: cannot resolve %q from %s", imp.Source, path)
				continue
			}
			// Real npm packages matching the seeded presets are typically
			// not installed in the scanned project; fall back to the same
			// synthetic path the seeder would have used.
			target = filepath.Clean(filepath.Join(dir, imp.Source))
		}

		existing, found := b.store.Get(target)

		if external {
			if !found || !existing.ExportedI18n {
				continue // drop: external package with no seeded i18n node
			}
			node.Importing[imp.Source] = target
			existing.AddImporter(path)
			applyImportFlags(node, existing, imp, localI18n)
			continue
		}

		if found {
			node.Importing[imp.Source] = target
			existing.AddImporter(path)
			applyImportFlags(node, existing, imp, localI18n)
		} else {
			pending = append(pending, pendingEdge{imp.Source, target})
		}
	}

	for _, edge := range pending {
		child := b.Analyze(edge.target, path)
		if child == nil {
			continue
		}
		node.Importing[edge.specifier] = edge.target
		if child.ExportedI18n {
			node.MarkImportedI18n()
		}
	}

	classifyExports(ast, node, localI18n)

	return node
}

// applyImportFlags propagates i18n flags for one resolved, already-known
// import target, and records any classified local bindings for export
// classification.
func applyImportFlags(node, target *graph.Node, imp *domain.Import, localI18n map[string]*domain.I18nMember) {
	if target.ExportedI18n {
		node.MarkImportedI18n()
	}

	for _, spec := range imp.Specifiers {
		if spec.Imported == "*" {
			for _, m := range target.Exporting {
				if m != nil {
					node.MarkImportedI18n()
					break
				}
			}
			continue
		}
		if m, ok := target.Exporting[spec.Imported]; ok && m != nil {
			node.MarkImportedI18n()
			if spec.Local != "" {
				localI18n[spec.Local] = m
			}
		}
	}
}

// classifyExports walks ast's top-level export statements and records each
// exported binding's i18n classification (or nil for unclassified) on node.
func classifyExports(ast *parser.Node, node *graph.Node, localI18n map[string]*domain.I18nMember) {
	visited := make(map[string]bool)

	ast.Walk(func(n *parser.Node) bool {
		key := nodeLocationKey(n)
		if visited[key] {
			return true
		}

		switch n.Type {
		case parser.NodeExportNamedDeclaration:
			visited[key] = true
			classifyNamedExport(n, node, localI18n)
			return false

		case parser.NodeExportDefaultDeclaration:
			visited[key] = true
			node.SetExport("default", nil)
			return false

		case parser.NodeExportAllDeclaration:
			visited[key] = true
			return false
		}
		return true
	})
}

func classifyNamedExport(n *parser.Node, node *graph.Node, localI18n map[string]*domain.I18nMember) {
	isReExport := n.Source != nil

	if n.Declaration != nil {
		classifyExportDeclaration(n.Declaration, node, localI18n)
		return
	}

	for _, spec := range n.Specifiers {
		exportedName := spec.Name
		localName := spec.Name
		if spec.Local != nil {
			localName = spec.Local.Name
		}

		if isReExport {
			node.SetExport(exportedName, nil)
			continue
		}

		if m, ok := localI18n[localName]; ok {
			node.SetExport(exportedName, m)
			continue
		}

		node.SetExport(exportedName, presetFallback(exportedName))
	}
}

func classifyExportDeclaration(decl *parser.Node, node *graph.Node, localI18n map[string]*domain.I18nMember) {
	if decl.Type != parser.NodeVariableDeclaration {
		if decl.Name != "" {
			member := classifyInitializer(decl, localI18n)
			if member == nil {
				member = presetFallback(decl.Name)
			}
			node.SetExport(decl.Name, member)
		}
		return
	}

	for _, declarator := range decl.Declarations {
		if declarator.Name != "" {
			classifyVariableExport(declarator, node, localI18n)
			continue
		}
		// Destructuring export: each bound identifier is unclassified.
		for _, name := range destructuredNames(declarator.Left) {
			node.SetExport(name, nil)
		}
	}
}

func classifyVariableExport(declarator *parser.Node, node *graph.Node, localI18n map[string]*domain.I18nMember) {
	name := declarator.Name
	member := classifyInitializer(declarator.Init, localI18n)
	if member == nil {
		member = presetFallback(name)
	}
	node.SetExport(name, member)
}

// classifyInitializer implements the `export const name = <initializer>`
// classification rules: a single-expression wrapper around a call to a
// locally-imported i18n primitive, or a Hook-then-TMethod two-step body.
func classifyInitializer(init *parser.Node, localI18n map[string]*domain.I18nMember) *domain.I18nMember {
	if init == nil {
		return nil
	}
	if init.Type != parser.NodeArrowFunction && init.Type != parser.NodeFunctionExpression && init.Type != parser.NodeFunction {
		return nil
	}

	if call := singleReturnedCall(init); call != nil {
		return classifyCallee(call, localI18n)
	}

	if hookThenTMethod(init, localI18n) {
		return &domain.I18nMember{Kind: domain.I18nKindHook}
	}

	return nil
}

// singleReturnedCall returns the call expression forming the only statement
// of fn's body, whether a concise arrow body or a single `return expr;`.
func singleReturnedCall(fn *parser.Node) *parser.Node {
	if len(fn.Body) != 1 {
		return nil
	}
	stmt := fn.Body[0]
	if stmt.Type == parser.NodeReturnStatement {
		stmt = stmt.Argument
	}
	if stmt != nil && stmt.Type == parser.NodeCallExpression {
		return stmt
	}
	return nil
}

// hookThenTMethod detects a multi-statement body that both calls a Hook
// primitive as a standalone expression and returns a call to a TMethod
// primitive.
func hookThenTMethod(fn *parser.Node, localI18n map[string]*domain.I18nMember) bool {
	sawHook, sawTMethod := false, false
	for _, stmt := range fn.Body {
		switch stmt.Type {
		case parser.NodeExpressionStatement, parser.NodeCallExpression:
			if call := callExpressionOf(stmt); call != nil {
				if m := classifyCallee(call, localI18n); m != nil && m.Kind == domain.I18nKindHook {
					sawHook = true
				}
			}
		case parser.NodeReturnStatement:
			if stmt.Argument != nil && stmt.Argument.Type == parser.NodeCallExpression {
				if m := classifyCallee(stmt.Argument, localI18n); m != nil && m.Kind == domain.I18nKindTMethod {
					sawTMethod = true
				}
			}
		}
	}
	return sawHook && sawTMethod
}

func callExpressionOf(n *parser.Node) *parser.Node {
	if n.Type == parser.NodeCallExpression {
		return n
	}
	if n.Argument != nil {
		return callExpressionOf(n.Argument)
	}
	return nil
}

// classifyCallee classifies a call expression whose callee is a locally
// imported i18n primitive, capturing a namespace from the first argument
// when one can be resolved.
func classifyCallee(call *parser.Node, localI18n map[string]*domain.I18nMember) *domain.I18nMember {
	if call.Callee == nil || call.Callee.Type != parser.NodeIdentifier {
		return nil
	}
	base, ok := localI18n[call.Callee.Name]
	if !ok {
		return nil
	}

	member := &domain.I18nMember{Kind: base.Kind}
	if len(call.Arguments) > 0 {
		if ns, ok := keyeval.NamespaceFromArg(call.Arguments[0], nil); ok {
			member.Namespace = domain.StringPtr(ns)
		}
	}
	return member
}

func presetFallback(name string) *domain.I18nMember {
	if kind, ok := domain.PresetMemberName[name]; ok {
		return &domain.I18nMember{Kind: kind}
	}
	return nil
}

func destructuredNames(pattern *parser.Node) []string {
	if pattern == nil {
		return nil
	}
	var names []string
	switch pattern.Type {
	case parser.NodeObjectPattern:
		for _, prop := range pattern.Properties {
			if prop.Right != nil && prop.Right.Name != "" {
				names = append(names, prop.Right.Name)
			} else if prop.Name != "" {
				names = append(names, prop.Name)
			}
		}
	case parser.NodeArrayPattern:
		for _, el := range pattern.Elements {
			if el != nil && el.Name != "" {
				names = append(names, el.Name)
			}
		}
	}
	return names
}
