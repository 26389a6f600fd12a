package domain

// SourceLocation is a source code position, attached to every parsed
// import/export statement for diagnostics.
type SourceLocation struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// ImportType represents the type of import statement
type ImportType string

const (
	// ImportTypeDefault represents default imports: import x from 'y'
	ImportTypeDefault ImportType = "default"

	// ImportTypeNamed represents named imports: import { x } from 'y'
	ImportTypeNamed ImportType = "named"

	// ImportTypeNamespace represents namespace imports: import * as x from 'y'
	ImportTypeNamespace ImportType = "namespace"

	// ImportTypeSideEffect represents side-effect imports: import 'y'
	ImportTypeSideEffect ImportType = "side_effect"

	// ImportTypeDynamic represents dynamic imports: import('y')
	ImportTypeDynamic ImportType = "dynamic"

	// ImportTypeRequire represents CommonJS require: require('y')
	ImportTypeRequire ImportType = "require"
)

// ModuleType represents the type of module source
type ModuleType string

const (
	// ModuleTypeRelative represents relative imports: ./foo, ../bar
	ModuleTypeRelative ModuleType = "relative"

	// ModuleTypeAbsolute represents absolute imports: /foo/bar
	ModuleTypeAbsolute ModuleType = "absolute"

	// ModuleTypePackage represents package imports: lodash, react
	ModuleTypePackage ModuleType = "package"

	// ModuleTypeBuiltin represents Node.js builtins: node:fs, fs (when builtin)
	ModuleTypeBuiltin ModuleType = "builtin"

	// ModuleTypeAlias represents aliased imports: @/components, ~/utils
	ModuleTypeAlias ModuleType = "alias"
)

// Import represents a single import statement, extracted before i18n
// classification is layered on top by the export classifier.
type Import struct {
	Source     string            `json:"source"`
	SourceType ModuleType        `json:"source_type"`
	ImportType ImportType        `json:"import_type"`
	Specifiers []ImportSpecifier `json:"specifiers,omitempty"`
	IsDynamic  bool              `json:"is_dynamic,omitempty"`
	Location   SourceLocation    `json:"location"`
}

// ImportSpecifier represents an individual imported item
type ImportSpecifier struct {
	// Imported is the original name from the module ("default" for default
	// imports, "*" for namespace imports).
	Imported string `json:"imported"`

	// Local is the local alias (or same as Imported if no alias)
	Local string `json:"local"`
}

// Export represents a single export statement
type Export struct {
	// ExportType is one of: "named", "default", "all", "declaration".
	ExportType string `json:"export_type"`

	// Source is the re-export source (empty if not re-exporting)
	Source string `json:"source,omitempty"`

	// Specifiers are the individual exported items (for "named")
	Specifiers []ExportSpecifier `json:"specifiers,omitempty"`

	// Name is the exported name (for "default"/"declaration")
	Name string `json:"name,omitempty"`

	Location SourceLocation `json:"location"`
}

// ExportSpecifier represents an individual exported item
type ExportSpecifier struct {
	Local    string `json:"local"`
	Exported string `json:"exported"`
}
