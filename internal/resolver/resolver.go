// Package resolver maps an import specifier to an absolute filesystem path,
// honoring the extension list, package.json "module"/"main" entries, and an
// optional tsconfig.json used by the module graph builder.
package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions is the fixed, ordered list of extensions a bare or
// extension-less specifier is tried against.
var Extensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Conditions lists the package.json "exports" conditions import, default and
// module. Resolution does not read the "exports" field, so this list is not
// consulted; a package's entry comes from its "module" or "main" field.
var Conditions = []string{"import", "default", "module"}

// Error is returned when a specifier cannot be resolved to a file on disk.
type Error struct {
	BaseDir   string
	Specifier string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot resolve %q from %q: %v", e.Specifier, e.BaseDir, e.Cause)
	}
	return fmt.Sprintf("cannot resolve %q from %q", e.Specifier, e.BaseDir)
}

// Resolver resolves import specifiers to canonical absolute paths, honoring
// an optional tsconfig.json's baseUrl/paths and project references.
type Resolver struct {
	tsconfig *tsConfig
}

// New builds a Resolver. tsconfigPath, when non-empty, is loaded verbatim
// (including any project references it points at); when empty, no path
// aliasing is available and only relative/package resolution applies.
func New(tsconfigPath string) (*Resolver, error) {
	if tsconfigPath == "" {
		return &Resolver{}, nil
	}
	cfg, err := loadTSConfig(tsconfigPath, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	return &Resolver{tsconfig: cfg}, nil
}

// Resolve maps (basedir, specifier) to an absolute file path.
func (r *Resolver) Resolve(basedir, specifier string) (string, error) {
	if specifier == "" {
		return "", &Error{BaseDir: basedir, Specifier: specifier}
	}

	switch {
	case strings.HasPrefix(specifier, "."):
		if p, ok := resolveFile(filepath.Join(basedir, specifier)); ok {
			return p, nil
		}

	case strings.HasPrefix(specifier, "/"):
		if p, ok := resolveFile(specifier); ok {
			return p, nil
		}

	default:
		if r.tsconfig != nil {
			if target, ok := r.tsconfig.matchPath(specifier); ok {
				if p, ok := resolveFile(target); ok {
					return p, nil
				}
			}
		}
		if p, ok := resolvePackage(basedir, specifier); ok {
			return p, nil
		}
	}

	return "", &Error{BaseDir: basedir, Specifier: specifier}
}

// resolveFile tries candidate (exact, then with each extension appended,
// then as a directory index) and returns the first path that exists.
func resolveFile(candidate string) (string, bool) {
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return canonical(candidate), true
	}

	for _, ext := range Extensions {
		withExt := candidate + ext
		if info, err := os.Stat(withExt); err == nil && !info.IsDir() {
			return canonical(withExt), true
		}
	}

	for _, ext := range Extensions {
		indexPath := filepath.Join(candidate, "index"+ext)
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return canonical(indexPath), true
		}
	}

	return "", false
}

// resolvePackage walks up from basedir looking for node_modules/<pkg>,
// honoring package.json's "main"/"module" fields before falling back to an
// index file.
func resolvePackage(basedir, specifier string) (string, bool) {
	pkgName, subpath := splitPackageSpecifier(specifier)

	dir := basedir
	for {
		pkgDir := filepath.Join(dir, "node_modules", pkgName)
		if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
			if subpath != "" {
				if p, ok := resolveFile(filepath.Join(pkgDir, subpath)); ok {
					return p, true
				}
			} else if entry := mainEntry(pkgDir); entry != "" {
				if p, ok := resolveFile(filepath.Join(pkgDir, entry)); ok {
					return p, true
				}
			} else if p, ok := resolveFile(pkgDir); ok {
				return p, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false
}

// splitPackageSpecifier splits "pkg/sub/path" or "@scope/pkg/sub/path" into
// the package name and the remaining subpath.
func splitPackageSpecifier(specifier string) (pkgName, subpath string) {
	parts := strings.SplitN(specifier, "/", 3)
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		pkgName = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = parts[2]
		}
		return
	}
	pkgName = parts[0]
	if len(parts) > 1 {
		subpath = strings.Join(parts[1:], "/")
	}
	return
}

// mainEntry reads package.json's "module" (preferred, per the "import"
// condition) or "main" field.
func mainEntry(pkgDir string) string {
	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return ""
	}

	var pkg struct {
		Module string `json:"module"`
		Main   string `json:"main"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	if pkg.Module != "" {
		return pkg.Module
	}
	return pkg.Main
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
