package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/i18nscan/app"
	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/config"
	"github.com/ludo-technologies/i18nscan/service"
)

var (
	scanConfigPath string
	scanFormat     string
	scanOutputPath string
	scanSortBy     string
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Scan a project for translation key usage",
		Long: `Scan walks the module graph from the given entry points (or files
discovered under the given directories) and reports every translation key
reachable from an i18next-style translator, grouped by namespace.

Examples:
  i18nscan scan src/                    # scan a directory
  i18nscan scan src/index.js            # scan from an explicit entry point
  i18nscan scan --format yaml src/      # emit YAML instead of JSON
  i18nscan scan -c i18nscan.yaml src/   # use an explicit config file`,
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format: json, yaml (overrides config)")
	cmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "Write result to this file instead of stdout")
	cmd.Flags().StringVar(&scanSortBy, "sort-by", "", "Sort namespaces by: name, count (overrides config)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfig(scanConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if scanFormat != "" {
		cfg.Output.Format = scanFormat
	}
	if scanSortBy != "" {
		cfg.Output.SortBy = scanSortBy
	}

	entries, err := resolveEntries(cfg, args)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no JavaScript/TypeScript files found")
	}

	req := cfg.ToScanRequest(entries)
	result, err := service.Scan(req)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	sortNamespaces(result, cfg.Output.SortBy)

	out := os.Stdout
	if scanOutputPath != "" {
		f, err := os.Create(scanOutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return encodeScanResult(result, cfg.Output.Format, out)
}

// resolveEntries turns CLI paths into concrete entry scripts: explicit config
// entry_paths win outright, otherwise every path is resolved through the file
// collector using the config's include/exclude patterns.
func resolveEntries(cfg *config.Config, paths []string) ([]string, error) {
	if len(cfg.Scan.EntryPaths) > 0 {
		return cfg.Scan.EntryPaths, nil
	}

	helper := app.NewFileHelper()
	return app.ResolveFilePaths(helper, paths, true, cfg.Scan.IncludePatterns, cfg.Scan.ExcludePatterns)
}

// sortNamespaces reorders each namespace's key list; name order is already
// guaranteed by service.Scan, so only the count ordering needs work here.
func sortNamespaces(result *domain.ScanResult, sortBy string) {
	if sortBy != "count" {
		return
	}
	for ns, keys := range result.Namespaces {
		sorted := append([]string{}, keys...)
		sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) < len(sorted[j]) })
		result.Namespaces[ns] = sorted
	}
}
