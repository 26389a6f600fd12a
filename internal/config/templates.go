package config

// ProjectType represents the type of JavaScript/TypeScript project, used by
// the init wizard to pick sensible include/exclude defaults.
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// ProjectPreset holds include/exclude presets for a project type.
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// GetProjectPresets returns presets for different project types.
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.next/**", "**/coverage/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx", "**/*.vue"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.nuxt/**", "**/coverage/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/test/**", "**/tests/**", "**/__tests__/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
	}
}

// GetFullConfigTemplate returns a documented config template as JSONC for the
// given project type.
func GetFullConfigTemplate(projectType ProjectType) string {
	preset := GetProjectPresets()[projectType]
	includePatterns := formatJSONArray(preset.IncludePatterns)
	excludePatterns := formatJSONArray(preset.ExcludePatterns)

	return `{
  // i18nscan Configuration
  // Documentation: https://github.com/ludo-technologies/i18nscan

  // ============================================================================
  // SCAN SCOPE
  // ============================================================================
  "scan": {
    // File patterns to include (glob patterns). Required when entry_paths is
    // empty; the file collector picks files by script extension alone
    "include_patterns": ` + includePatterns + `,

    // File patterns to exclude (glob patterns)
    "exclude_patterns": ` + excludePatterns + `,

    // Explicit entry scripts. When set, include_patterns is ignored.
    "entry_paths": [],

    // Path to a tsconfig.json for module resolution. Empty uses none.
    "tsconfig_path": "",

    // Regular expressions matched against import specifiers; matches are
    // dropped from the graph unless a seeded i18n package exists there.
    "externals": [],

    // Additional i18n packages beyond the i18next/react-i18next presets.
    "extend_i18n_packages": [],

    // Not read by the file collector; symlinked directories are never followed
    "follow_symlinks": false
  },

  // ============================================================================
  // OUTPUT SETTINGS
  // ============================================================================
  "output": {
    // Output format: "json", "yaml"
    "format": "json",

    // Sort namespaces by: "name", "count"
    "sort_by": "name",

    // When set, scan-all writes one result file per project here instead of
    // printing to stdout
    "directory": ""
  }
}
`
}

// GetMinimalConfigTemplate returns a minimal config template.
func GetMinimalConfigTemplate() string {
	return `{
  // i18nscan Configuration (minimal)
  // See full options: https://github.com/ludo-technologies/i18nscan

  "scan": {
    "include_patterns": ["**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"],
    "exclude_patterns": ["**/node_modules/**", "**/dist/**"]
  }
}
`
}

// formatJSONArray formats a string slice as a JSON array with proper indentation.
func formatJSONArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	result := "[\n"
	for i, item := range items {
		result += `      "` + item + `"`
		if i < len(items)-1 {
			result += ","
		}
		result += "\n"
	}
	result += "    ]"
	return result
}
