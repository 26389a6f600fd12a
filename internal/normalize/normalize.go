// Package normalize runs source files through esbuild's transform API before
// the tree-sitter parser sees them: comments and insignificant whitespace are
// stripped so that later key-string folding only ever has to deal with a
// single consistent rendering of the same source, regardless of formatting
// style.
package normalize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Transform strips comments and normalizes whitespace in src, keeping
// import/export syntax and JSX intact so the tree-sitter parser can still
// walk the result. Loader is picked from path's extension.
//
// Only MinifyWhitespace is enabled, not MinifySyntax/MinifyIdentifiers: the
// second-pass walker depends on stable local binding names (destructured
// translator/hook locals) and on statement shapes surviving unchanged, and
// MinifySyntax's rewrites (dead-branch elimination among them) risk taking a
// top-level t(...) call site with it.
func Transform(path string, src []byte) ([]byte, error) {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:           loaderForPath(path),
		Target:           api.ESNext,
		Format:           api.FormatDefault,
		Sourcemap:        api.SourceMapNone,
		JSX:              api.JSXPreserve,
		MinifyWhitespace: true,
		TsconfigRaw:      `{"compilerOptions":{"importHelpers":false}}`,
	})

	if len(result.Errors) > 0 {
		var sb strings.Builder
		sb.WriteString("normalize: ")
		for _, msg := range result.Errors {
			sb.WriteString(msg.Text)
			sb.WriteString("; ")
		}
		return nil, fmt.Errorf("%s", sb.String())
	}

	return result.Code, nil
}

func loaderForPath(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}
