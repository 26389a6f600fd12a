package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/i18nscan/domain"
)

// Default scan settings.
const (
	DefaultOutputFormat   = "json"
	DefaultSortBy         = "name"
	DefaultTimeoutSeconds = 300
)

// Config is the on-disk configuration shape, loaded via viper and unmarshaled
// with mapstructure tags. It mirrors domain.ScanRequest plus the ambient
// concerns (file discovery, output) that a ScanRequest doesn't carry.
type Config struct {
	// Scan holds the module-graph entry points and resolution overrides.
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Output controls how a scan result is rendered.
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance controls the scan-all batch runner's concurrency.
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// PerformanceConfig bounds the scan-all batch runner: how many projects it
// scans concurrently and how long it waits for any one of them.
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent project scans. Non-positive falls back
	// to service.DefaultMaxConcurrency (4).
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a single project scan. Non-positive falls back
	// to DefaultTimeoutSeconds.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ScanConfig is the file-discovery and resolution layer sitting in front of
// domain.ScanRequest: when EntryPaths is empty, the file collector turns the
// scanned paths into a concrete entry list, applying ExcludePatterns, before
// a scan request is built.
type ScanConfig struct {
	// EntryPaths are explicit entry scripts. When empty, the scanned paths
	// are walked by the file collector instead.
	EntryPaths []string `json:"entry_paths" mapstructure:"entry_paths" yaml:"entry_paths"`

	// IncludePatterns are glob patterns rooted at the scan target. Validate
	// requires them when EntryPaths is empty; the file collector does not
	// match them and selects files by script extension alone.
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are glob patterns removed from the include set, applied
	// on top of any .gitignore rules already in effect.
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// TSConfigPath, when set, is used verbatim for module resolution. When
	// empty, no tsconfig.json is used (no discovery takes place).
	TSConfigPath string `json:"tsconfig_path" mapstructure:"tsconfig_path" yaml:"tsconfig_path"`

	// Externals are regular-expression source strings matched against import
	// specifiers; matching specifiers are dropped from the graph unless a
	// seeded i18n package already exists at the resolved path.
	Externals []string `json:"externals" mapstructure:"externals" yaml:"externals"`

	// ExtendI18nPackages supplements the preset i18next/react-i18next
	// packages with caller-defined ones.
	ExtendI18nPackages []domain.I18nPackage `json:"extend_i18n_packages" mapstructure:"extend_i18n_packages" yaml:"extend_i18n_packages"`

	// FollowSymlinks is accepted in the config file but not read by the file
	// collector, whose directory walk never follows symlinked directories.
	FollowSymlinks bool `json:"follow_symlinks" mapstructure:"follow_symlinks" yaml:"follow_symlinks"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Format is one of: json, yaml.
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// SortBy is one of: name, count. Namespaces are always emitted with
	// sorted, de-duplicated key lists regardless of this setting.
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// Directory, when non-empty, is where scan-all writes one result file
	// per project instead of printing to stdout.
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// DefaultConfig returns the zero-configuration default: scan the current
// directory for JS/TS sources, no externals, no package extensions, JSON
// output to stdout.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			IncludePatterns: []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**"},
			FollowSymlinks:  false,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			SortBy: DefaultSortBy,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  runtime.NumCPU(),
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// ToScanRequest builds a domain.ScanRequest from the resolution-relevant
// fields of this config. entryPaths must already be resolved to concrete
// file paths by the caller (via the file collector) when ScanConfig.EntryPaths
// was itself empty.
func (c *Config) ToScanRequest(entryPaths []string) *domain.ScanRequest {
	return &domain.ScanRequest{
		TSConfigPath:       c.Scan.TSConfigPath,
		EntryPaths:         entryPaths,
		Externals:          c.Scan.Externals,
		ExtendI18nPackages: c.Scan.ExtendI18nPackages,
	}
}

// LoadConfig loads configuration, discovering a config file near targetPath
// when configPath is empty.
func LoadConfig(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file, merging it over
// the defaults. An empty path returns the defaults unchanged.
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// searchConfigInDirectory returns the first candidate file that exists in dir.
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for a config file in targetPath (if it's a
// directory) and its ancestors, then the working directory.
func findDefaultConfig(targetPath string) string {
	candidates := []string{".i18nscan.yaml", ".i18nscan.yml", "i18nscan.yaml", "i18nscan.yml"}

	if targetPath != "" {
		dir := targetPath
		if info, err := os.Stat(targetPath); err == nil && !info.IsDir() {
			dir = filepath.Dir(targetPath)
		}
		for {
			if found := searchConfigInDirectory(dir, candidates); found != "" {
				return found
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		return searchConfigInDirectory(cwd, candidates)
	}
	return ""
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	validFormats := map[string]bool{"json": true, "yaml": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: json, yaml", c.Output.Format)
	}

	validSortBy := map[string]bool{"name": true, "count": true}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by %q, must be one of: name, count", c.Output.SortBy)
	}

	if len(c.Scan.EntryPaths) == 0 && len(c.Scan.IncludePatterns) == 0 {
		return fmt.Errorf("scan.entry_paths or scan.include_patterns must be set")
	}

	for _, pkg := range c.Scan.ExtendI18nPackages {
		if pkg.PackagePath == "" {
			return fmt.Errorf("scan.extend_i18n_packages entries must set package_path")
		}
		for _, m := range pkg.Members {
			if m.Name == "" {
				return fmt.Errorf("scan.extend_i18n_packages[%s] has a member with no name", pkg.PackagePath)
			}
		}
	}

	return nil
}

// SaveConfig writes config to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	data := map[string]any{
		"scan":        cfg.Scan,
		"output":      cfg.Output,
		"performance": cfg.Performance,
	}
	for k, val := range data {
		v.Set(k, val)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return v.WriteConfigAs(path)
}
