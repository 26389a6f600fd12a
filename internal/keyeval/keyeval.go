// Package keyeval implements the string-folding evaluator shared by export
// classification (namespace literals) and key extraction (translation keys
// and namespaces): string/template literals, local identifier chains, and
// binary "+" concatenation.
package keyeval

import (
	"strings"

	"github.com/ludo-technologies/i18nscan/internal/parser"
)

// Lookup resolves a local identifier to its defining value expression (a
// VariableDeclarator's Init, typically). It returns false when the name is
// not a known local -- the caller decides whether that means "give up" or
// "defer to cross-file/PostResolver handling".
type Lookup func(name string) (*parser.Node, bool)

// Resolve folds node into a string, or returns ("", false) if any part of
// the expression cannot be resolved with the given lookup.
func Resolve(node *parser.Node, lookup Lookup) (string, bool) {
	return resolveDepth(node, lookup, 0)
}

const maxDepth = 32

func resolveDepth(node *parser.Node, lookup Lookup, depth int) (string, bool) {
	if node == nil || depth > maxDepth {
		return "", false
	}

	switch node.Type {
	case parser.NodeStringLiteral, parser.NodeLiteral:
		return unquote(node.Raw), true

	case parser.NodeTemplateLiteral:
		return resolveTemplate(node, lookup, depth)

	case parser.NodeIdentifier:
		if lookup == nil {
			return "", false
		}
		target, ok := lookup(node.Name)
		if !ok {
			return "", false
		}
		return resolveDepth(target, lookup, depth+1)

	case parser.NodeBinaryExpression:
		if node.Operator != "+" {
			return "", false
		}
		left, ok := resolveDepth(node.Left, lookup, depth+1)
		if !ok {
			return "", false
		}
		right, ok := resolveDepth(node.Right, lookup, depth+1)
		if !ok {
			return "", false
		}
		return left + right, true
	}

	return "", false
}

func resolveTemplate(node *parser.Node, lookup Lookup, depth int) (string, bool) {
	if len(node.Expressions) == 0 {
		if len(node.Quasis) == 1 {
			return node.Quasis[0].Raw, true
		}
		var sb strings.Builder
		for _, q := range node.Quasis {
			sb.WriteString(q.Raw)
		}
		return sb.String(), true
	}

	var sb strings.Builder
	for i, quasi := range node.Quasis {
		sb.WriteString(quasi.Raw)
		if i < len(node.Expressions) {
			val, ok := resolveDepth(node.Expressions[i], lookup, depth+1)
			if !ok {
				return "", false
			}
			sb.WriteString(val)
		}
	}
	return sb.String(), true
}

// HasPlaceholders reports whether a template literal node has one or more
// interpolated expressions.
func HasPlaceholders(node *parser.Node) bool {
	return node != nil && node.Type == parser.NodeTemplateLiteral && len(node.Expressions) > 0
}

// NamespaceFromArg resolves a namespace-bearing argument: an object literal
// with an `ns` property takes precedence, otherwise the argument itself is
// resolved directly as a string/template/identifier chain.
func NamespaceFromArg(arg *parser.Node, lookup Lookup) (string, bool) {
	if arg == nil {
		return "", false
	}
	if arg.Type == parser.NodeObjectExpression {
		for _, prop := range arg.Properties {
			if prop.Left != nil && propKeyName(prop.Left) == "ns" {
				return Resolve(prop.Right, lookup)
			}
		}
		return "", false
	}
	return Resolve(arg, lookup)
}

// HookNamespace extends NamespaceFromArg with the hook-call convention of
// allowing an array literal whose first element is the namespace.
func HookNamespace(arg *parser.Node, lookup Lookup) (string, bool) {
	if arg != nil && arg.Type == parser.NodeArrayExpression && len(arg.Elements) > 0 {
		return Resolve(arg.Elements[0], lookup)
	}
	return NamespaceFromArg(arg, lookup)
}

func propKeyName(key *parser.Node) string {
	if key.Name != "" {
		return key.Name
	}
	return unquote(key.Raw)
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		c := raw[0]
		if (c == '"' || c == '\'' || c == '`') && raw[len(raw)-1] == c {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
