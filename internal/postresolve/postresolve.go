// Package postresolve implements the scan's final pass: reconciling the
// PendingKey references the extractor couldn't fold locally by following
// import/export chains across files, per file, lazily and with its own
// per-file caches.
package postresolve

import (
	"os"

	"github.com/ludo-technologies/i18nscan/internal/extractor"
	"github.com/ludo-technologies/i18nscan/internal/keyeval"
	"github.com/ludo-technologies/i18nscan/internal/normalize"
	"github.com/ludo-technologies/i18nscan/internal/parser"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
)

type importBinding struct {
	targetPath string
	imported   string
}

// fileCache holds everything one file's resolution needs: its locally bound
// values, its import bindings (resolved to a target file path), and its
// named/default export initializers.
type fileCache struct {
	locals    map[string]*parser.Node
	imports   map[string]importBinding
	exports   map[string]*parser.Node
	reExports map[string]importBinding
}

// Resolver reconciles PendingKey entries against already-scanned source
// files, re-parsing each file on demand and caching the result.
type Resolver struct {
	resolver *resolver.Resolver
	caches   map[string]*fileCache
	failed   map[string]bool
}

// New builds a Resolver. r is used to resolve the import specifiers found
// while building each file's cache.
func New(r *resolver.Resolver) *Resolver {
	return &Resolver{
		resolver: r,
		caches:   make(map[string]*fileCache),
		failed:   make(map[string]bool),
	}
}

// Resolve attempts to fold pending's identifier to a string, following
// imports into other files as needed. ok is false when the chain bottoms
// out unresolved (a runtime value, an unsupported expression shape, or a
// cycle).
func (r *Resolver) Resolve(pending extractor.PendingKey) (string, bool) {
	return r.resolveInFile(pending.FilePath, pending.Identifier, make(map[string]bool))
}

// ResolveAll reconciles every pending key, emitting a namespace -> key-set
// map for the ones that resolved and returning the ones that didn't.
func ResolveAll(r *Resolver, pending []extractor.PendingKey) (map[string]map[string]bool, []extractor.PendingKey) {
	resolved := make(map[string]map[string]bool)
	var unresolved []extractor.PendingKey

	for _, p := range pending {
		val, ok := r.Resolve(p)
		if !ok {
			unresolved = append(unresolved, p)
			continue
		}
		bucket, ok := resolved[p.Namespace]
		if !ok {
			bucket = make(map[string]bool)
			resolved[p.Namespace] = bucket
		}
		bucket[val] = true
	}

	return resolved, unresolved
}

func (r *Resolver) resolveInFile(filePath, name string, visited map[string]bool) (string, bool) {
	key := filePath + "::" + name
	if visited[key] {
		return "", false
	}
	visited[key] = true

	cache, ok := r.fileCacheFor(filePath)
	if !ok {
		return "", false
	}

	lookup := func(n string) (*parser.Node, bool) {
		init, ok := cache.locals[n]
		return init, ok
	}

	if init, ok := cache.locals[name]; ok {
		if val, ok := keyeval.Resolve(init, lookup); ok {
			return val, true
		}
		if init.Type == parser.NodeIdentifier && init.Name != name {
			if val, ok := r.resolveInFile(filePath, init.Name, visited); ok {
				return val, true
			}
		}
	}

	if imp, ok := cache.imports[name]; ok {
		return r.resolveInFile(imp.targetPath, imp.imported, visited)
	}

	if init, ok := cache.exports[name]; ok {
		if val, ok := keyeval.Resolve(init, lookup); ok {
			return val, true
		}
		if init.Type == parser.NodeIdentifier && init.Name != name {
			if val, ok := r.resolveInFile(filePath, init.Name, visited); ok {
				return val, true
			}
		}
	}

	if re, ok := cache.reExports[name]; ok {
		return r.resolveInFile(re.targetPath, re.imported, visited)
	}

	return "", false
}

func (r *Resolver) fileCacheFor(filePath string) (*fileCache, bool) {
	if cache, ok := r.caches[filePath]; ok {
		return cache, true
	}
	if r.failed[filePath] {
		return nil, false
	}

	cache, err := buildFileCache(filePath, r.resolver)
	if err != nil {
		r.failed[filePath] = true
		return nil, false
	}
	r.caches[filePath] = cache
	return cache, true
}

func buildFileCache(filePath string, res *resolver.Resolver) (*fileCache, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	normalized, err := normalize.Transform(filePath, src)
	if err != nil {
		normalized = src
	}
	ast, err := parser.ParseForLanguage(filePath, normalized)
	if err != nil {
		return nil, err
	}

	cache := &fileCache{
		locals:    make(map[string]*parser.Node),
		imports:   make(map[string]importBinding),
		exports:   make(map[string]*parser.Node),
		reExports: make(map[string]importBinding),
	}

	dir := dirOf(filePath)

	ast.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeVariableDeclarator:
			if n.Name != "" && n.Init != nil {
				cache.locals[n.Name] = n.Init
			}

		case parser.NodeImportDeclaration:
			collectImportBindings(n, dir, res, cache.imports)
			return false

		case parser.NodeExportNamedDeclaration:
			if n.Source != nil {
				collectReExportBindings(n, dir, res, cache.reExports)
				return false
			}
			collectNamedExportValues(n, cache.exports)
			return false

		case parser.NodeExportDefaultDeclaration:
			if n.Declaration != nil {
				cache.exports["default"] = n.Declaration
			}
			return false
		}
		return true
	})

	return cache, nil
}

func collectImportBindings(n *parser.Node, dir string, res *resolver.Resolver, out map[string]importBinding) {
	if n.Source == nil {
		return
	}
	target, err := res.Resolve(dir, sourceValue(n.Source))
	if err != nil {
		return
	}
	for _, spec := range n.Specifiers {
		switch spec.Type {
		case parser.NodeImportDefaultSpecifier:
			out[spec.Name] = importBinding{targetPath: target, imported: "default"}
		case parser.NodeImportSpecifier:
			imported := spec.Name
			if spec.Imported != nil {
				imported = spec.Imported.Name
			}
			out[spec.Name] = importBinding{targetPath: target, imported: imported}
		}
	}
}

func collectReExportBindings(n *parser.Node, dir string, res *resolver.Resolver, out map[string]importBinding) {
	target, err := res.Resolve(dir, sourceValue(n.Source))
	if err != nil {
		return
	}
	for _, spec := range n.Specifiers {
		exported := spec.Name
		imported := spec.Name
		if spec.Local != nil {
			imported = spec.Local.Name
		}
		out[exported] = importBinding{targetPath: target, imported: imported}
	}
}

func collectNamedExportValues(n *parser.Node, out map[string]*parser.Node) {
	if n.Declaration != nil {
		if n.Declaration.Type == parser.NodeVariableDeclaration {
			for _, d := range n.Declaration.Declarations {
				if d.Name != "" && d.Init != nil {
					out[d.Name] = d.Init
				}
			}
		}
		return
	}

	for _, spec := range n.Specifiers {
		localName := spec.Name
		if spec.Local != nil {
			localName = spec.Local.Name
		}
		out[spec.Name] = &parser.Node{Type: parser.NodeIdentifier, Name: localName}
	}
}

func sourceValue(n *parser.Node) string {
	raw := n.Raw
	if raw == "" {
		raw = n.Name
	}
	if len(raw) >= 2 {
		c := raw[0]
		if (c == '"' || c == '\'' || c == '`') && raw[len(raw)-1] == c {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
