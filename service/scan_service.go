package service

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/analyzer"
	"github.com/ludo-technologies/i18nscan/internal/extractor"
	"github.com/ludo-technologies/i18nscan/internal/graph"
	"github.com/ludo-technologies/i18nscan/internal/postresolve"
	"github.com/ludo-technologies/i18nscan/internal/resolver"
	"github.com/ludo-technologies/i18nscan/internal/seeder"
)

// Scan runs the full analysis described in req: seed the recognized i18n
// packages, walk the module graph from every entry, extract translation
// keys from every file that imports an i18n primitive, and reconcile any
// keys that were passed as identifier references. A per-file read/parse/
// resolve failure is accumulated as a warning; only an empty entry list is
// fatal.
func Scan(req *domain.ScanRequest) (*domain.ScanResult, error) {
	if len(req.EntryPaths) == 0 {
		return nil, domain.NewConfigError("entry_paths must not be empty", nil)
	}

	res, err := resolver.New(req.TSConfigPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load tsconfig", err)
	}

	store := graph.NewNodeStore()
	entryDir := filepath.Dir(req.EntryPaths[0])
	seeder.Seed(store, res, entryDir, req.ExtendI18nPackages)

	builder, err := analyzer.NewGraphBuilder(store, res, req.Externals, nil)
	if err != nil {
		return nil, domain.NewConfigError("invalid externals pattern", err)
	}

	for _, entry := range req.EntryPaths {
		builder.Analyze(entry, "")
	}

	ex := extractor.New(store)
	merged, pending, warnings := ex.ExtractAll()

	pr := postresolve.New(res)
	resolvedKeys, unresolved := postresolve.ResolveAll(pr, pending)
	mergeKeySets(merged, resolvedKeys)

	result := domain.NewScanResult()
	result.NodeCount = store.Len()
	result.Warnings = warnings
	for _, u := range unresolved {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unresolved key reference %q in %s (namespace %s)", u.Identifier, u.FilePath, u.Namespace))
	}

	for ns, keys := range merged {
		list := make([]string, 0, len(keys))
		for k := range keys {
			list = append(list, k)
		}
		sort.Strings(list)
		result.Namespaces[ns] = list
	}

	return result, nil
}

// mergeKeySets folds src's namespace -> key-set buckets into dst in place.
func mergeKeySets(dst, src map[string]map[string]bool) {
	for ns, keys := range src {
		bucket, ok := dst[ns]
		if !ok {
			bucket = make(map[string]bool)
			dst[ns] = bucket
		}
		for k := range keys {
			bucket[k] = true
		}
	}
}
