package extractor

import (
	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/keyeval"
	"github.com/ludo-technologies/i18nscan/internal/parser"
)

// hookSymbol tracks what's known about a locally bound Hook reference: a
// directly classified import carries its own (possibly nil) namespace;
// a synthetic hook, registered while expanding a wrapper function's body
// (see §4.4.1's wrapper-propagation rule), carries no namespace and instead
// points back at its own defining body for pattern inference (§4.4.7).
type hookSymbol struct {
	namespace   *string
	synthetic   bool
	wrapperBody *parser.Node
}

type walker struct {
	node    *graph.Node
	store   *graph.NodeStore
	ast     *parser.Node
	parents map[*parser.Node]*parser.Node
	locals  map[string]*parser.Node

	keys    map[string]map[string]bool
	pending []PendingKey

	hookVisited map[string]bool
}

func newWalker(node *graph.Node, store *graph.NodeStore, ast *parser.Node) *walker {
	w := &walker{
		node:        node,
		store:       store,
		ast:         ast,
		parents:     parser.BuildParentMap(ast),
		locals:      make(map[string]*parser.Node),
		keys:        make(map[string]map[string]bool),
		hookVisited: make(map[string]bool),
	}
	w.collectLocals(ast)
	return w
}

func (w *walker) result() *Result {
	return &Result{KeysByNamespace: w.keys, Pending: w.pending}
}

// collectLocals builds a flat, file-wide name -> initializer table. Later
// declarations of the same name overwrite earlier ones; this is a
// simplification of true lexical scoping that's adequate for the
// literal/identifier-chain resolution this walker performs.
func (w *walker) collectLocals(ast *parser.Node) {
	ast.Walk(func(n *parser.Node) bool {
		if n.Type == parser.NodeVariableDeclarator && n.Name != "" && n.Init != nil {
			w.locals[n.Name] = n.Init
		}
		// Named function declarations are tracked by their own node so
		// HocWrapper component resolution can walk into the body directly.
		if n.Type == parser.NodeFunction && n.Name != "" {
			w.locals[n.Name] = n
		}
		return true
	})
}

func (w *walker) lookup(name string) (*parser.Node, bool) {
	n, ok := w.locals[name]
	return n, ok
}

func (w *walker) emit(ns *string, key string) {
	if key == "" {
		return
	}
	bucket := namespaceOrDefault(ns)
	set, ok := w.keys[bucket]
	if !ok {
		set = make(map[string]bool)
		w.keys[bucket] = set
	}
	set[key] = true
}

// run dispatches on every import declaration of the node's file, per the
// target's classified export (with a preset-name fallback for unclassified
// or unseeded sources).
func (w *walker) run() {
	ast := w.ast

	ast.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeImportDeclaration {
			return true
		}
		source := n.Source
		if source == nil {
			return false
		}
		specifier := sourceText(source)
		targetPath, hasTarget := w.node.Importing[specifier]
		var target *graph.Node
		if hasTarget {
			target, _ = w.store.Get(targetPath)
		}

		for _, spec := range n.Specifiers {
			imported, local := specifierNames(spec)
			if local == "" {
				continue
			}

			var member *domain.I18nMember
			if target != nil {
				member = target.Exporting[imported]
			}
			if member == nil {
				member = presetFallback(imported)
			}
			if member == nil {
				continue
			}

			w.dispatch(local, member, target)
		}
		return false
	})
}

func presetFallback(name string) *domain.I18nMember {
	if kind, ok := domain.PresetMemberName[name]; ok {
		return &domain.I18nMember{Kind: kind}
	}
	return nil
}

func (w *walker) dispatch(local string, member *domain.I18nMember, target *graph.Node) {
	switch member.Kind {
	case domain.I18nKindHook:
		w.processHookUsage(local, hookSymbol{namespace: member.Namespace}, 0)
	case domain.I18nKindTMethod:
		w.processTranslatorUsage(local, member.Namespace)
	case domain.I18nKindObjectMemberT:
		w.processObjectMemberUsage(local, member.Namespace, translatorMemberNames(target))
	case domain.I18nKindTransComp, domain.I18nKindTranslationComp:
		w.processComponentUsage(local, member.Namespace)
	case domain.I18nKindHocWrapper:
		w.processHocUsage(local)
	}
}

func sourceText(node *parser.Node) string {
	if node == nil {
		return ""
	}
	raw := node.Raw
	if raw == "" {
		raw = node.Name
	}
	if len(raw) >= 2 {
		c := raw[0]
		if (c == '"' || c == '\'' || c == '`') && raw[len(raw)-1] == c {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func specifierNames(spec *parser.Node) (imported, local string) {
	switch spec.Type {
	case parser.NodeImportDefaultSpecifier:
		return "default", spec.Name
	case parser.NodeImportNamespaceSpecifier:
		return "*", spec.Name
	case parser.NodeImportSpecifier:
		local = spec.Name
		if spec.Imported != nil {
			imported = spec.Imported.Name
		} else {
			imported = spec.Name
		}
		return imported, local
	}
	return "", ""
}

func (w *walker) callsByCalleeName(name string) []*parser.Node {
	var calls []*parser.Node
	w.ast.Walk(func(n *parser.Node) bool {
		if n.Type == parser.NodeCallExpression && n.Callee != nil &&
			n.Callee.Type == parser.NodeIdentifier && n.Callee.Name == name {
			calls = append(calls, n)
		}
		return true
	})
	return calls
}

// --- 4.4.2 Translator symbol usage ---

func (w *walker) processTranslatorUsage(name string, ns *string) {
	for _, call := range w.callsByCalleeName(name) {
		if w.tryDynamicMapPattern(call, ns) {
			continue
		}
		w.extractCall(call, ns)
	}
}

// --- 4.4.3 Object-member translator usage ---

func (w *walker) processObjectMemberUsage(name string, ns *string, memberNames []string) {
	w.ast.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeMemberExpression || n.Object == nil || n.Property == nil {
			return true
		}
		if n.Object.Type != parser.NodeIdentifier || n.Object.Name != name {
			return true
		}
		if n.Property.Type != parser.NodeIdentifier || !isTranslatorMemberName(n.Property.Name, memberNames) {
			return true
		}
		parent := w.parents[n]
		if parent != nil && parent.Type == parser.NodeCallExpression && parent.Callee == n {
			w.extractCall(parent, ns)
		}
		return true
	})
}

// --- 4.5 key/namespace resolution entry point ---

func (w *walker) extractCall(call *parser.Node, propagatedNS *string) {
	if len(call.Arguments) == 0 {
		return
	}
	arg0 := call.Arguments[0]
	var arg1 *parser.Node
	if len(call.Arguments) > 1 {
		arg1 = call.Arguments[1]
	}

	ns := propagatedNS
	if arg1 != nil {
		if val, ok := keyeval.NamespaceFromArg(arg1, w.lookup); ok {
			ns = &val
		}
	}

	w.resolveKey(arg0, ns)
}

func (w *walker) resolveKey(arg *parser.Node, ns *string) {
	if arg == nil {
		return
	}

	if val, ok := keyeval.Resolve(arg, w.lookup); ok {
		w.emit(ns, val)
		return
	}

	if arg.Type == parser.NodeIdentifier {
		w.pending = append(w.pending, PendingKey{
			FilePath:   w.node.Path,
			Namespace:  namespaceOrDefault(ns),
			Identifier: arg.Name,
		})
	}
}

// --- dynamic map-over-array-literal pattern ---
// array.map((v) => t(prefix + '_' + v))

func (w *walker) tryDynamicMapPattern(call *parser.Node, ns *string) bool {
	arrow := w.parents[call]
	if arrow == nil || arrow.Type != parser.NodeArrowFunction || len(arrow.Params) != 1 {
		return false
	}
	paramName := arrow.Params[0].Name
	if paramName == "" {
		return false
	}

	mapCall := w.parents[arrow]
	if mapCall == nil || mapCall.Type != parser.NodeCallExpression || mapCall.Callee == nil {
		return false
	}
	callee := mapCall.Callee
	if callee.Type != parser.NodeMemberExpression || callee.Property == nil || callee.Property.Name != "map" {
		return false
	}
	receiver := callee.Object
	if receiver == nil || receiver.Type != parser.NodeArrayExpression {
		return false
	}
	if len(call.Arguments) == 0 {
		return false
	}
	keyExpr := call.Arguments[0]

	for _, el := range receiver.Elements {
		val, ok := keyeval.Resolve(el, w.lookup)
		if !ok {
			continue
		}
		substituted, ok := substituteIdentifier(keyExpr, paramName, val, w.lookup)
		if !ok {
			continue
		}
		w.emit(ns, substituted)
	}
	return true
}

// substituteIdentifier resolves expr the same way keyeval.Resolve does,
// except that an Identifier named target is taken literally as value
// instead of being looked up.
func substituteIdentifier(expr *parser.Node, target, value string, lookup keyeval.Lookup) (string, bool) {
	wrapped := func(name string) (*parser.Node, bool) {
		if name == target {
			return nil, false
		}
		return lookup(name)
	}
	if expr.Type == parser.NodeIdentifier && expr.Name == target {
		return value, true
	}
	if expr.Type == parser.NodeBinaryExpression && expr.Operator == "+" {
		left, ok := substituteIdentifier(expr.Left, target, value, lookup)
		if !ok {
			return "", false
		}
		right, ok := substituteIdentifier(expr.Right, target, value, lookup)
		if !ok {
			return "", false
		}
		return left + right, true
	}
	return keyeval.Resolve(expr, wrapped)
}

// --- 4.4.6 HocWrapper ---

const hocDepthCap = 10

func (w *walker) processHocUsage(name string) {
	for _, call := range w.callsByCalleeName(name) {
		w.followHocCall(call, 0)
	}
}

func (w *walker) followHocCall(call *parser.Node, depth int) {
	if depth > hocDepthCap {
		return
	}

	if len(call.Arguments) >= 1 {
		comp := call.Arguments[0]
		if comp.Type == parser.NodeIdentifier {
			w.recurseIntoComponent(comp.Name, depth)
		}
		return
	}

	// Zero-argument form: wrap(ns?)(Component) -- the parent call applies
	// the HOC's result to the wrapped component.
	parent := w.parents[call]
	if parent != nil && parent.Type == parser.NodeCallExpression && parent.Callee == call && len(parent.Arguments) >= 1 {
		comp := parent.Arguments[0]
		if comp.Type == parser.NodeIdentifier {
			w.recurseIntoComponent(comp.Name, depth)
		}
	}
}

func (w *walker) recurseIntoComponent(name string, depth int) {
	init, ok := w.locals[name]
	if !ok {
		return
	}
	w.scanBodyForTranslatorCalls(init, depth+1)
}

// scanBodyForTranslatorCalls walks fn's body looking for call expressions
// whose callee is the identifier `t` (the translator a HOC injects),
// invoking key extraction.
func (w *walker) scanBodyForTranslatorCalls(fn *parser.Node, depth int) {
	if depth > hocDepthCap {
		return
	}
	fn.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeCallExpression || n.Callee == nil {
			return true
		}
		if n.Callee.Type == parser.NodeIdentifier && n.Callee.Name == "t" {
			if w.tryDynamicMapPattern(n, nil) {
				return true
			}
			w.extractCall(n, nil)
		}
		return true
	})
}

// --- 4.4.4 / 4.4.5 TransComp / TranslationComp ---

func (w *walker) processComponentUsage(name string, ns *string) {
	w.ast.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeJSXElement || n.Name != name {
			return true
		}
		w.processTransElement(n, ns)
		return true
	})
}

func (w *walker) processTransElement(el *parser.Node, ns *string) {
	for _, attr := range el.Attributes {
		if attr.Name != "i18nKey" {
			continue
		}
		if attr.Right != nil {
			if val, ok := keyeval.Resolve(unwrapJSXValue(attr.Right), w.lookup); ok {
				w.emit(ns, val)
			}
		}
	}
	w.scanJSXChildren(el, ns, 0)
}

func unwrapJSXValue(n *parser.Node) *parser.Node {
	if n.Type == parser.NodeJSXExpressionContainer {
		return n.Argument
	}
	return n
}

const jsxDepthCap = 10

// scanJSXChildren recurses into expression containers, nested markup, and
// call expressions inside an element's children, invoking key extraction
// on any callee named `t`.
func (w *walker) scanJSXChildren(el *parser.Node, ns *string, depth int) {
	if depth > jsxDepthCap {
		return
	}
	for _, child := range el.Elements {
		switch child.Type {
		case parser.NodeJSXExpressionContainer:
			w.scanJSXExpr(child.Argument, ns, depth)
		case parser.NodeJSXElement, parser.NodeJSXFragment:
			w.scanJSXChildren(child, ns, depth+1)
		}
	}
}

func (w *walker) scanJSXExpr(n *parser.Node, ns *string, depth int) {
	if n == nil {
		return
	}
	switch n.Type {
	case parser.NodeArrowFunction:
		for _, stmt := range n.Body {
			w.scanJSXExpr(stmt, ns, depth)
		}
	case parser.NodeCallExpression:
		if n.Callee != nil && n.Callee.Type == parser.NodeIdentifier && n.Callee.Name == "t" {
			w.extractCall(n, ns)
		}
	case parser.NodeJSXElement, parser.NodeJSXFragment:
		w.scanJSXChildren(n, ns, depth+1)
	}
}

// --- 4.4.1 Hook usage ---

func (w *walker) processHookUsage(name string, sym hookSymbol, depth int) {
	if depth > hocDepthCap || w.hookVisited[name] {
		return
	}
	w.hookVisited[name] = true

	for _, call := range w.callsByCalleeName(name) {
		if sym.synthetic && sym.namespace == nil && len(call.Arguments) > 0 {
			w.processCustomHookInvocation(sym, call)
			continue
		}

		ns := sym.namespace
		if ns == nil && len(call.Arguments) > 0 {
			if val, ok := keyeval.HookNamespace(call.Arguments[0], w.lookup); ok {
				ns = &val
			}
		}
		w.bindHookResult(call, ns, depth)
	}
}

// bindHookResult locates the nearest enclosing binding context for a hook
// call, crossing at most one function/arrow wrapper boundary. A wrapper
// registers its own identifier as a synthetic hook symbol; a direct binding
// dispatches to destructure or plain-identifier handling.
func (w *walker) bindHookResult(call *parser.Node, ns *string, depth int) {
	n := w.parents[call]
	var wrapperFn *parser.Node
	crossedFn := false

	for n != nil {
		switch n.Type {
		case parser.NodeVariableDeclarator:
			if crossedFn {
				// The declarator binds the wrapper, not the hook's result.
				n = nil
				continue
			}
			w.bindDirect(n, ns)
			return
		case parser.NodeArrowFunction, parser.NodeFunctionExpression, parser.NodeFunction:
			if crossedFn {
				return
			}
			crossedFn = true
			wrapperFn = n
		}
		n = w.parents[n]
	}

	if wrapperFn == nil {
		return
	}
	if wrapperFn.Name != "" {
		w.processHookUsage(wrapperFn.Name, hookSymbol{synthetic: true, wrapperBody: wrapperFn}, depth+1)
		return
	}
	if vd := w.parents[wrapperFn]; vd != nil && vd.Type == parser.NodeVariableDeclarator && vd.Name != "" {
		w.processHookUsage(vd.Name, hookSymbol{synthetic: true, wrapperBody: wrapperFn}, depth+1)
	}
}

func (w *walker) bindDirect(declarator *parser.Node, ns *string) {
	if declarator.Left != nil && declarator.Left.Type == parser.NodeObjectPattern {
		for _, prop := range declarator.Left.Properties {
			keyName := propName(prop)
			var localName string
			if prop.Right != nil {
				localName = prop.Right.Name
			}
			if localName == "" || keyName == "" {
				continue
			}
			if _, isPreset := domain.PresetMemberName[keyName]; isPreset || keyName == "t" {
				w.processTranslatorUsage(localName, ns)
			}
		}
		return
	}
	if declarator.Name != "" {
		w.processObjectMemberUsage(declarator.Name, ns, []string{"t"})
	}
}

func propName(prop *parser.Node) string {
	if prop.Name != "" {
		return prop.Name
	}
	if prop.Left != nil {
		return sourceText(prop.Left)
	}
	return ""
}

// --- 4.4.7 Custom-hook pattern inference ---

func (w *walker) processCustomHookInvocation(sym hookSymbol, call *parser.Node) {
	input, ok := keyeval.Resolve(call.Arguments[0], w.lookup)
	if !ok {
		return
	}

	prefix, suffix, ok := inferHookKeyPattern(sym.wrapperBody)
	if !ok {
		w.emit(nil, input)
		return
	}
	w.emit(nil, prefix+input+suffix)
}

// inferHookKeyPattern looks for a `return t(`PREFIX_${x}`)`-shaped body
// (template literal with exactly one placeholder) inside fn, returning the
// static prefix/suffix around the placeholder.
func inferHookKeyPattern(fn *parser.Node) (prefix, suffix string, ok bool) {
	if fn == nil {
		return "", "", false
	}
	var found *parser.Node
	fn.Walk(func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == parser.NodeTemplateLiteral && keyeval.HasPlaceholders(n) && len(n.Expressions) == 1 {
			found = n
			return false
		}
		return true
	})
	if found == nil || len(found.Quasis) < 2 {
		return "", "", false
	}
	return found.Quasis[0].Raw, found.Quasis[len(found.Quasis)-1].Raw, true
}
