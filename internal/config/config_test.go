package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/i18nscan/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig should not return nil")
	}
	if cfg.Output.Format != DefaultOutputFormat {
		t.Errorf("expected format %q, got %q", DefaultOutputFormat, cfg.Output.Format)
	}
	if cfg.Output.SortBy != DefaultSortBy {
		t.Errorf("expected sort_by %q, got %q", DefaultSortBy, cfg.Output.SortBy)
	}
	if len(cfg.Scan.IncludePatterns) == 0 {
		t.Error("IncludePatterns should not be empty")
	}
	if len(cfg.Scan.ExcludePatterns) == 0 {
		t.Error("ExcludePatterns should not be empty")
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestConfig_Validate_InvalidOutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid output format")
	}
}

func TestConfig_Validate_InvalidSortBy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.SortBy = "invalid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid sort_by")
	}
}

func TestConfig_Validate_NoEntryPathsOrPatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.IncludePatterns = nil
	cfg.Scan.EntryPaths = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when neither entry_paths nor include_patterns is set")
	}
}

func TestConfig_Validate_EntryPathsOnlyIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.IncludePatterns = nil
	cfg.Scan.EntryPaths = []string{"/src/index.ts"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("entry_paths alone should satisfy validation, got %v", err)
	}
}

func TestConfig_Validate_ExtendPackageMissingPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.ExtendI18nPackages = []domain.I18nPackage{{Members: []domain.Member{{Name: "t", Kind: domain.I18nKindTMethod}}}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for extend package with no package_path")
	}
}

func TestConfig_Validate_ExtendPackageMissingMemberName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.ExtendI18nPackages = []domain.I18nPackage{{
		PackagePath: "my-i18n",
		Members:     []domain.Member{{Kind: domain.I18nKindTMethod}},
	}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for member with no name")
	}
}

func TestConfig_ToScanRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.TSConfigPath = "tsconfig.json"
	cfg.Scan.Externals = []string{"^lodash"}

	req := cfg.ToScanRequest([]string{"/src/index.ts"})
	if req.TSConfigPath != "tsconfig.json" {
		t.Errorf("expected tsconfig_path to carry over, got %q", req.TSConfigPath)
	}
	if len(req.EntryPaths) != 1 || req.EntryPaths[0] != "/src/index.ts" {
		t.Errorf("expected entry paths to carry over, got %v", req.EntryPaths)
	}
	if len(req.Externals) != 1 || req.Externals[0] != "^lodash" {
		t.Errorf("expected externals to carry over, got %v", req.Externals)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := LoadConfig("", "")
	if err != nil {
		t.Fatalf("LoadConfig with empty path failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("config should not be nil")
	}

	defaultCfg := DefaultConfig()
	if cfg.Output.Format != defaultCfg.Output.Format {
		t.Error("loaded config should match default")
	}
}

func TestLoadConfig_NonExistent(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml", "")
	if err == nil {
		t.Error("expected error for non-existent config file")
	}
}

func TestSearchConfigInDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "i18nscan.yaml")
	if err := os.WriteFile(configPath, []byte("scan:\n  include_patterns: [\"**/*.ts\"]"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	candidates := []string{"i18nscan.yaml", "i18nscan.yml"}
	result := searchConfigInDirectory(tempDir, candidates)
	if result != configPath {
		t.Errorf("expected %s, got %s", configPath, result)
	}

	emptyDir, _ := os.MkdirTemp("", "empty_test")
	defer os.RemoveAll(emptyDir)

	if result := searchConfigInDirectory(emptyDir, candidates); result != "" {
		t.Error("expected empty string for directory without config")
	}
}

func TestFindDefaultConfig_WalksAncestors(t *testing.T) {
	root, err := os.MkdirTemp("", "i18nscan_ancestors")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(root)

	configPath := filepath.Join(root, ".i18nscan.yaml")
	if err := os.WriteFile(configPath, []byte("scan:\n  include_patterns: [\"**/*.ts\"]"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	found := findDefaultConfig(nested)
	if found != configPath {
		t.Errorf("expected to discover %s from %s, got %s", configPath, nested, found)
	}
}
