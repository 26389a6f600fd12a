package constants

// Tool name and related constants.
const (
	ToolName = "i18nscan"

	ConfigFileName = ".i18nscan.yaml"

	EnvVarPrefix = "I18NSCAN"
)

// Output format constants.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)
