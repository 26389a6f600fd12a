// Package analyzer walks a parsed source file's import/export statements and
// builds the module graph the rest of the scan operates over.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/parser"
)

// nodeBuiltins lists Node.js builtin module names, bare or "node:"-prefixed.
var nodeBuiltins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"console": true, "constants": true, "crypto": true, "dgram": true,
	"dns": true, "domain": true, "events": true, "fs": true, "http": true,
	"http2": true, "https": true, "module": true, "net": true, "os": true,
	"path": true, "perf_hooks": true, "process": true, "punycode": true,
	"querystring": true, "readline": true, "repl": true, "stream": true,
	"string_decoder": true, "sys": true, "timers": true, "tls": true,
	"tty": true, "url": true, "util": true, "v8": true, "vm": true,
	"wasi": true, "worker_threads": true, "zlib": true,
}

// ModuleAnalyzer extracts import statements from a parsed file. Export
// handling lives in GraphBuilder, which needs the raw declaration nodes for
// classification rather than this flattened shape.
type ModuleAnalyzer struct {
	aliasPatterns []string
}

// NewModuleAnalyzer builds a ModuleAnalyzer. aliasPatterns recognizes path
// aliases (e.g. "@/", "~/") as ModuleTypeAlias rather than ModuleTypePackage.
func NewModuleAnalyzer(aliasPatterns []string) *ModuleAnalyzer {
	return &ModuleAnalyzer{aliasPatterns: aliasPatterns}
}

// ExtractImports walks ast and returns every import statement: static ESM
// imports and bare-string dynamic import() expressions.
func (ma *ModuleAnalyzer) ExtractImports(ast *parser.Node) []*domain.Import {
	var imports []*domain.Import
	visited := make(map[string]bool)

	ast.Walk(func(node *parser.Node) bool {
		key := nodeLocationKey(node)

		switch node.Type {
		case parser.NodeImportDeclaration:
			if !visited[key] {
				visited[key] = true
				if imp := ma.processImportDeclaration(node); imp != nil {
					imports = append(imports, imp)
				}
			}
			return false

		case parser.NodeCallExpression:
			if !visited[key] {
				visited[key] = true
				if imp := ma.processDynamicImport(node); imp != nil {
					imports = append(imports, imp)
				}
			}
		}
		return true
	})

	return imports
}

func nodeLocationKey(node *parser.Node) string {
	if node == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s:%d:%d", node.Type, node.Location.File,
		node.Location.StartLine, node.Location.StartCol)
}

func (ma *ModuleAnalyzer) processImportDeclaration(node *parser.Node) *domain.Import {
	source := ma.extractSourceValue(node.Source)
	if source == "" {
		return nil
	}

	imp := &domain.Import{
		Source:     source,
		SourceType: ma.classifyModuleSource(source),
		Specifiers: make([]domain.ImportSpecifier, 0, len(node.Specifiers)),
		Location:   ma.nodeToSourceLocation(node),
	}

	hasDefault, hasNamed, hasNamespace := false, false, false

	for _, spec := range node.Specifiers {
		switch spec.Type {
		case parser.NodeImportDefaultSpecifier:
			hasDefault = true
			imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: "default", Local: spec.Name})

		case parser.NodeImportNamespaceSpecifier:
			hasNamespace = true
			imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: "*", Local: spec.Name})

		case parser.NodeImportSpecifier:
			hasNamed = true
			specifier := domain.ImportSpecifier{Local: spec.Name}
			if spec.Imported != nil {
				specifier.Imported = spec.Imported.Name
			} else {
				specifier.Imported = spec.Name
			}
			imp.Specifiers = append(imp.Specifiers, specifier)
		}
	}

	switch {
	case hasNamespace:
		imp.ImportType = domain.ImportTypeNamespace
	case hasDefault && !hasNamed:
		imp.ImportType = domain.ImportTypeDefault
	case hasNamed:
		imp.ImportType = domain.ImportTypeNamed
	case len(node.Specifiers) == 0:
		imp.ImportType = domain.ImportTypeSideEffect
	}

	return imp
}

func (ma *ModuleAnalyzer) processDynamicImport(node *parser.Node) *domain.Import {
	if node.Callee == nil {
		return nil
	}

	isImportCall := (node.Callee.Type == parser.NodeIdentifier && node.Callee.Name == "import") ||
		node.Callee.Raw == "import"
	if !isImportCall || len(node.Arguments) == 0 {
		return nil
	}

	source := ma.extractSourceValue(node.Arguments[0])
	if source == "" {
		return nil
	}

	return &domain.Import{
		Source:     source,
		SourceType: ma.classifyModuleSource(source),
		ImportType: domain.ImportTypeDynamic,
		IsDynamic:  true,
		Location:   ma.nodeToSourceLocation(node),
	}
}

func (ma *ModuleAnalyzer) extractSourceValue(node *parser.Node) string {
	if node == nil {
		return ""
	}

	raw := node.Raw
	if raw == "" {
		raw = node.Name
	}
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') ||
			(raw[0] == '\'' && raw[len(raw)-1] == '\'') ||
			(raw[0] == '`' && raw[len(raw)-1] == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func (ma *ModuleAnalyzer) classifyModuleSource(source string) domain.ModuleType {
	if source == "" {
		return domain.ModuleTypePackage
	}
	if strings.HasPrefix(source, "node:") {
		return domain.ModuleTypeBuiltin
	}
	if strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") {
		return domain.ModuleTypeRelative
	}
	if strings.HasPrefix(source, "/") {
		return domain.ModuleTypeAbsolute
	}
	for _, pattern := range ma.aliasPatterns {
		if strings.HasPrefix(source, pattern) {
			return domain.ModuleTypeAlias
		}
	}

	pkgName := source
	if idx := strings.Index(source, "/"); idx > 0 {
		pkgName = source[:idx]
	}
	if nodeBuiltins[pkgName] {
		return domain.ModuleTypeBuiltin
	}

	return domain.ModuleTypePackage
}

func (ma *ModuleAnalyzer) nodeToSourceLocation(node *parser.Node) domain.SourceLocation {
	return domain.SourceLocation{
		File:      node.Location.File,
		StartLine: node.Location.StartLine,
		EndLine:   node.Location.EndLine,
		StartCol:  node.Location.StartCol,
		EndCol:    node.Location.EndCol,
	}
}
