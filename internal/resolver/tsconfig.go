package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tsConfig is the reduced subset of tsconfig.json this resolver honors:
// baseUrl/paths for alias resolution, plus project references so an alias
// can be satisfied by a referenced project's own baseUrl/paths.
type tsConfig struct {
	baseURL string
	paths   map[string][]string
	refs    []*tsConfig
}

type rawTSConfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
	Extends    string `json:"extends"`
	References []struct {
		Path string `json:"path"`
	} `json:"references"`
}

// loadTSConfig reads path (and, transitively, any "extends" base config and
// "references" project configs), honoring project references so an alias
// unsatisfied by the root config falls through to a referenced project's.
// As with tsc, a config's own "paths" replace its base's entirely; the
// base's paths (and baseUrl) apply only when the config does not set them.
func loadTSConfig(path string, visited map[string]bool) (*tsConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving tsconfig path %s: %w", path, err)
	}
	if visited[abs] {
		return nil, fmt.Errorf("tsconfig reference cycle at %s", abs)
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading tsconfig %s: %w", abs, err)
	}

	var raw rawTSConfig
	if err := json.Unmarshal(stripJSONComments(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing tsconfig %s: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	cfg := &tsConfig{paths: raw.CompilerOptions.Paths}

	if raw.CompilerOptions.BaseURL != "" {
		cfg.baseURL = filepath.Join(dir, raw.CompilerOptions.BaseURL)
	} else {
		cfg.baseURL = dir
	}

	if raw.Extends != "" {
		if base, err := loadTSConfig(filepath.Join(dir, raw.Extends), visited); err == nil {
			if cfg.paths == nil {
				cfg.paths = base.paths
			}
			if raw.CompilerOptions.BaseURL == "" {
				cfg.baseURL = base.baseURL
			}
		}
	}

	for _, ref := range raw.References {
		refPath := ref.Path
		if !strings.HasSuffix(refPath, ".json") {
			refPath = filepath.Join(refPath, "tsconfig.json")
		}
		if refCfg, err := loadTSConfig(filepath.Join(dir, refPath), visited); err == nil {
			cfg.refs = append(cfg.refs, refCfg)
		}
	}

	return cfg, nil
}

// matchPath resolves specifier against this config's paths map (falling
// through to referenced projects), returning an unresolved candidate file
// path (without extension applied) when a pattern matches.
func (c *tsConfig) matchPath(specifier string) (string, bool) {
	if target, ok := c.matchPathLocal(specifier); ok {
		return target, true
	}
	for _, ref := range c.refs {
		if target, ok := ref.matchPath(specifier); ok {
			return target, true
		}
	}
	return "", false
}

func (c *tsConfig) matchPathLocal(specifier string) (string, bool) {
	for pattern, targets := range c.paths {
		prefix, suffix, hasStar := strings.Cut(pattern, "*")
		if hasStar {
			if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
				continue
			}
			matched := strings.TrimSuffix(strings.TrimPrefix(specifier, prefix), suffix)
			for _, target := range targets {
				resolved := strings.Replace(target, "*", matched, 1)
				return filepath.Join(c.baseURL, resolved), true
			}
		} else if pattern == specifier {
			for _, target := range targets {
				return filepath.Join(c.baseURL, target), true
			}
		}
	}
	return "", false
}

// stripJSONComments removes // line comments and /* block */ comments so a
// tsconfig.json (which is JSONC, not strict JSON) can be parsed with
// encoding/json. It does not attempt to handle comment markers inside
// string literals with escaped quotes beyond the common case.
func stripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				out = append(out, data[i+1])
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(data) {
			if data[i+1] == '/' {
				for i < len(data) && data[i] != '\n' {
					i++
				}
				out = append(out, '\n')
				continue
			}
			if data[i+1] == '*' {
				i += 2
				for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
					i++
				}
				i++
				continue
			}
		}

		out = append(out, c)
	}
	return out
}
