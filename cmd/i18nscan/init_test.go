package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/i18nscan/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "i18nscan-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "i18nscan.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"scan",
		"output",
		"include_patterns",
		"exclude_patterns",
		"entry_paths",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "i18nscan-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "i18nscan.json")

	existingContent := []byte(`{"existing": true}`)
	if err := os.WriteFile(configPath, existingContent, 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	err = cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when file exists without --force")
	}

	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	cmd = initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	if !strings.Contains(string(content), "scan") {
		t.Error("Config file was not overwritten with new content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "i18nscan-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "i18nscan.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "include_patterns") {
		t.Error("Minimal config missing include_patterns section")
	}
	if !strings.Contains(contentStr, "exclude_patterns") {
		t.Error("Minimal config missing exclude_patterns section")
	}
	if !strings.Contains(contentStr, "minimal") {
		t.Error("Minimal config should indicate it's minimal")
	}
}

func TestInitCommand_CustomOutputPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "i18nscan-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	customPath := filepath.Join(tmpDir, "custom-config.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", customPath})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init with custom path failed: %v", err)
	}

	if _, err := os.Stat(customPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created at custom path")
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", "/nonexistent/directory/i18nscan.json"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when directory doesn't exist")
	}

	if !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Expected 'directory does not exist' error, got: %v", err)
	}
}

func TestInitCommand_FullConfigSize(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "i18nscan-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	fullPath := filepath.Join(tmpDir, "full.json")
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", fullPath})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	fullContent, _ := os.ReadFile(fullPath)

	minimalPath := filepath.Join(tmpDir, "minimal.json")
	cmd = initCmd()
	cmd.SetArgs([]string{"--config", minimalPath, "--minimal"})
	err = cmd.Execute()
	if err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	minimalContent, _ := os.ReadFile(minimalPath)

	if len(fullContent) <= len(minimalContent) {
		t.Error("Full config should be larger than minimal config")
	}
}

func TestGetFullConfigTemplate(t *testing.T) {
	tests := []struct {
		projectType     config.ProjectType
		wantIncludeJSX  string
		wantExcludeNext string
	}{
		{
			projectType:     config.ProjectTypeGeneric,
			wantIncludeJSX:  "**/*.jsx",
			wantExcludeNext: "**/node_modules/**",
		},
		{
			projectType:     config.ProjectTypeReact,
			wantIncludeJSX:  "**/*.tsx",
			wantExcludeNext: "**/.next/**",
		},
		{
			projectType:     config.ProjectTypeVue,
			wantIncludeJSX:  "**/*.vue",
			wantExcludeNext: "**/.nuxt/**",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.projectType), func(t *testing.T) {
			template := config.GetFullConfigTemplate(tt.projectType)

			if !strings.Contains(template, tt.wantIncludeJSX) {
				t.Errorf("Template missing expected include pattern: %s", tt.wantIncludeJSX)
			}

			if !strings.Contains(template, tt.wantExcludeNext) {
				t.Errorf("Template missing expected exclude pattern: %s", tt.wantExcludeNext)
			}
		})
	}
}

func TestGetMinimalConfigTemplate(t *testing.T) {
	template := config.GetMinimalConfigTemplate()

	requiredSections := []string{
		"scan",
		"include_patterns",
		"exclude_patterns",
	}

	for _, section := range requiredSections {
		if !strings.Contains(template, section) {
			t.Errorf("Minimal template missing required section: %s", section)
		}
	}

	fullTemplate := config.GetFullConfigTemplate(config.ProjectTypeGeneric)
	if len(template) >= len(fullTemplate) {
		t.Error("Minimal template should be smaller than full template")
	}
}

func TestProjectPresets(t *testing.T) {
	presets := config.GetProjectPresets()

	projectTypes := []config.ProjectType{
		config.ProjectTypeGeneric,
		config.ProjectTypeReact,
		config.ProjectTypeVue,
		config.ProjectTypeNodeBackend,
	}

	for _, pt := range projectTypes {
		preset, ok := presets[pt]
		if !ok {
			t.Errorf("Missing preset for project type: %s", pt)
			continue
		}

		if len(preset.IncludePatterns) == 0 {
			t.Errorf("Project type %s has no include patterns", pt)
		}

		if len(preset.ExcludePatterns) == 0 {
			t.Errorf("Project type %s has no exclude patterns", pt)
		}

		hasNodeModules := false
		for _, pattern := range preset.ExcludePatterns {
			if strings.Contains(pattern, "node_modules") {
				hasNodeModules = true
				break
			}
		}
		if !hasNodeModules {
			t.Errorf("Project type %s should exclude node_modules", pt)
		}
	}
}

func TestConfigTemplateHasComments(t *testing.T) {
	template := config.GetFullConfigTemplate(config.ProjectTypeGeneric)

	if !strings.Contains(template, "//") {
		t.Error("Full template should contain JSONC comments")
	}

	expectedComments := []string{
		"SCAN SCOPE",
		"OUTPUT SETTINGS",
		"github.com/ludo-technologies/i18nscan",
	}

	for _, comment := range expectedComments {
		if !strings.Contains(template, comment) {
			t.Errorf("Template missing expected comment/section: %s", comment)
		}
	}
}

func TestReactProjectPresetHasNextExclusion(t *testing.T) {
	presets := config.GetProjectPresets()
	reactPreset := presets[config.ProjectTypeReact]

	hasNextDir := false
	for _, pattern := range reactPreset.ExcludePatterns {
		if strings.Contains(pattern, ".next") {
			hasNextDir = true
			break
		}
	}

	if !hasNextDir {
		t.Error("React preset should exclude .next directory")
	}
}

func TestVueProjectPresetHasNuxtExclusion(t *testing.T) {
	presets := config.GetProjectPresets()
	vuePreset := presets[config.ProjectTypeVue]

	hasNuxtDir := false
	for _, pattern := range vuePreset.ExcludePatterns {
		if strings.Contains(pattern, ".nuxt") {
			hasNuxtDir = true
			break
		}
	}

	if !hasNuxtDir {
		t.Error("Vue preset should exclude .nuxt directory")
	}

	hasVueFiles := false
	for _, pattern := range vuePreset.IncludePatterns {
		if strings.Contains(pattern, ".vue") {
			hasVueFiles = true
			break
		}
	}

	if !hasVueFiles {
		t.Error("Vue preset should include .vue files")
	}
}

func TestNodeBackendPresetHasMjsCjs(t *testing.T) {
	presets := config.GetProjectPresets()
	nodePreset := presets[config.ProjectTypeNodeBackend]

	hasMjs := false
	hasCjs := false
	for _, pattern := range nodePreset.IncludePatterns {
		if strings.Contains(pattern, ".mjs") {
			hasMjs = true
		}
		if strings.Contains(pattern, ".cjs") {
			hasCjs = true
		}
	}

	if !hasMjs {
		t.Error("Node backend preset should include .mjs files")
	}

	if !hasCjs {
		t.Error("Node backend preset should include .cjs files")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	expectedFlags := []string{"config", "force", "minimal", "interactive"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	shortFlags := map[string]string{
		"c": "config",
		"f": "force",
		"i": "interactive",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestInitCmd_DefaultConfigPath(t *testing.T) {
	cmd := initCmd()

	configFlag := cmd.Flags().Lookup("config")
	if configFlag == nil {
		t.Fatal("config flag not found")
	}

	if configFlag.DefValue != "i18nscan.json" {
		t.Errorf("Expected default config path to be 'i18nscan.json', got '%s'", configFlag.DefValue)
	}
}
