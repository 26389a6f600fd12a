package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/i18nscan/domain"
	"github.com/ludo-technologies/i18nscan/internal/config"
)

// ConfigurationLoaderImpl loads on-disk configuration and turns it into the
// domain.ScanRequest a scan actually runs with.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path and converts it to
// a scan request. entryPaths are the already-resolved file paths to scan.
func (c *ConfigurationLoaderImpl) LoadConfig(path string, entryPaths []string) (*domain.ScanRequest, error) {
	cfg, err := config.LoadConfig(path, "")
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg.ToScanRequest(entryPaths), nil
}

// LoadDefaultConfig discovers and loads a config file near the working
// directory, falling back to hardcoded defaults if none is found.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(entryPaths []string) *domain.ScanRequest {
	cfg, err := config.LoadConfig("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return cfg.ToScanRequest(entryPaths)
}

// FindDefaultConfigFile searches the current directory and its ancestors for
// a recognized configuration file name.
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	configFiles := []string{
		"i18nscan.yaml",
		"i18nscan.yml",
		".i18nscan.yaml",
		".i18nscan.yml",
	}

	for _, file := range configFiles {
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, file := range configFiles {
			configPath := filepath.Join(currentDir, file)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// MergeConfig merges CLI-flag overrides onto a base scan request. Only
// fields the caller actually set on override take precedence.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ScanRequest, override *domain.ScanRequest) *domain.ScanRequest {
	merged := *base

	if len(override.EntryPaths) > 0 {
		merged.EntryPaths = override.EntryPaths
	}
	if override.TSConfigPath != "" {
		merged.TSConfigPath = override.TSConfigPath
	}
	if len(override.Externals) > 0 {
		merged.Externals = override.Externals
	}
	if len(override.ExtendI18nPackages) > 0 {
		merged.ExtendI18nPackages = override.ExtendI18nPackages
	}

	return &merged
}

// ValidateConfig checks that a scan request is runnable.
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.ScanRequest) error {
	if len(req.EntryPaths) == 0 {
		return fmt.Errorf("entry_paths must not be empty")
	}

	for _, pkg := range req.ExtendI18nPackages {
		if pkg.PackagePath == "" {
			return fmt.Errorf("extend_i18n_packages entries must set package_path")
		}
	}

	return nil
}
