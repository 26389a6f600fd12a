package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/i18nscan/app"
	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/config"
	"github.com/ludo-technologies/i18nscan/service"
)

var (
	scanAllConfigPath string
	scanAllFormat     string
)

func scanAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan-all [project...]",
		Short: "Scan multiple independent projects concurrently",
		Long: `scan-all treats each argument as the root of an independent project and
scans them concurrently, bounded by performance.max_goroutines and
performance.timeout_seconds in the loaded config.

With output.directory set, each project's result is written as
<directory>/<project-name>.json (.yaml for the yaml format) instead of
being printed to stdout.`,
		RunE: runScanAll,
	}

	cmd.Flags().StringVarP(&scanAllConfigPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&scanAllFormat, "format", "f", "", "Output format: json, yaml (overrides config)")

	return cmd
}

func runScanAll(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no project paths specified")
	}

	cfg, err := config.LoadConfig(scanAllConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if scanAllFormat != "" {
		cfg.Output.Format = scanAllFormat
	}

	pm := service.NewProgressManager(true)
	defer pm.Close()

	executor := service.NewParallelExecutorWithProgress(&cfg.Performance, pm)

	helper := app.NewFileHelper()
	tasks := make([]domain.ExecutableTask, len(args))
	for i, project := range args {
		tasks[i] = &scanTask{project: project, cfg: cfg, helper: helper}
	}

	execErr := executor.Execute(context.Background(), tasks)

	for _, task := range tasks {
		t := task.(*scanTask)
		if t.result == nil {
			continue
		}
		if err := writeProjectResult(t.project, t.result, cfg.Output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write result for %s: %v\n", t.project, err)
		}
	}

	return execErr
}

// scanTask adapts a single project scan to domain.ExecutableTask so
// service.ParallelExecutorImpl can run a batch of them concurrently. The
// scan result is stashed on the task itself since Execute's return value is
// discarded by the executor once errors are aggregated.
type scanTask struct {
	project string
	cfg     *config.Config
	helper  *app.FileHelper

	result *domain.ScanResult
}

func (t *scanTask) Name() string    { return t.project }
func (t *scanTask) IsEnabled() bool { return true }

func (t *scanTask) Execute(ctx context.Context) (interface{}, error) {
	entries := t.cfg.Scan.EntryPaths
	if len(entries) == 0 {
		var err error
		entries, err = app.ResolveFilePaths(t.helper, []string{t.project}, true, t.cfg.Scan.IncludePatterns, t.cfg.Scan.ExcludePatterns)
		if err != nil {
			return nil, err
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no JavaScript/TypeScript files found under %s", t.project)
	}

	req := t.cfg.ToScanRequest(entries)
	result, err := service.Scan(req)
	if err != nil {
		return nil, err
	}
	t.result = result
	return result, nil
}

// writeProjectResult writes a single project's result either to
// output.directory (as <project-name>.json/.yaml) or to stdout.
func writeProjectResult(project string, result *domain.ScanResult, out config.OutputConfig) error {
	if out.Directory == "" {
		return encodeScanResult(result, out.Format, os.Stdout)
	}

	if err := os.MkdirAll(out.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := "json"
	if out.Format == "yaml" {
		ext = "yaml"
	}
	name := filepath.Base(filepath.Clean(project)) + "." + ext
	f, err := os.Create(filepath.Join(out.Directory, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return encodeScanResult(result, out.Format, f)
}

func encodeScanResult(result *domain.ScanResult, format string, w *os.File) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
