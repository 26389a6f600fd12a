package domain

import "time"

// ScanRequest is the payload accepted by service.Scan.
type ScanRequest struct {
	// TSConfigPath, when non-empty, is treated as the exact typed-config
	// file to use for module resolution. Empty means default resolution.
	TSConfigPath string `json:"tsconfig_path" mapstructure:"tsconfig_path" yaml:"tsconfig_path"`

	// EntryPaths is the non-empty list of absolute script paths to start
	// the module graph walk from. Empty is a fatal ConfigError.
	EntryPaths []string `json:"entry_paths" mapstructure:"entry_paths" yaml:"entry_paths"`

	// Externals is a list of regular-expression source strings. Each is
	// wrapped as `^<source>((!?/).*)?$` before use.
	Externals []string `json:"externals" mapstructure:"externals" yaml:"externals"`

	// ExtendI18nPackages supplements the preset i18next/react-i18next
	// packages with caller-provided ones.
	ExtendI18nPackages []I18nPackage `json:"extend_i18n_packages" mapstructure:"extend_i18n_packages" yaml:"extend_i18n_packages"`
}

// DefaultScanRequest returns a ScanRequest with no externals and no package
// extensions, matching the zero-configuration case.
func DefaultScanRequest(entryPaths ...string) *ScanRequest {
	return &ScanRequest{
		EntryPaths: entryPaths,
	}
}

// ScanResult is the namespace -> sorted, de-duplicated key list produced by
// a successful scan, plus best-effort diagnostics accumulated along the way.
type ScanResult struct {
	Namespaces  map[string][]string `json:"namespaces" yaml:"namespaces"`
	Warnings    []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors      []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
	NodeCount   int                 `json:"node_count" yaml:"node_count"`
	GeneratedAt string              `json:"generated_at" yaml:"generated_at"`
}

// NewScanResult builds an empty result stamped with the current time.
func NewScanResult() *ScanResult {
	return &ScanResult{
		Namespaces:  make(map[string][]string),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
}
