package domain

// I18nKind is the closed set of ways a binding can expose an i18n primitive.
type I18nKind string

const (
	I18nKindHook            I18nKind = "Hook"
	I18nKindTMethod         I18nKind = "TMethod"
	I18nKindTransComp       I18nKind = "TransComp"
	I18nKindTranslationComp I18nKind = "TranslationComp"
	I18nKindHocWrapper      I18nKind = "HocWrapper"
	I18nKindObjectMemberT   I18nKind = "ObjectMemberT"
)

// PresetMemberName maps the canonical preset member name to its kind, used
// both by the Seeder (to build preset packages) and by the ExportClassifier
// fallback (matching a bare exported name against the preset table).
var PresetMemberName = map[string]I18nKind{
	"t":               I18nKindTMethod,
	"useTranslation":  I18nKindHook,
	"Trans":           I18nKindTransComp,
	"Translation":     I18nKindTranslationComp,
	"withTranslation": I18nKindHocWrapper,
	"i18n":            I18nKindObjectMemberT,
}

// PresetPackages is the list of recognized i18n libraries seeded by default.
var PresetPackages = []string{"i18next", "react-i18next"}

// I18nMember describes one exported binding's i18n classification.
type I18nMember struct {
	Kind      I18nKind `json:"kind" yaml:"kind"`
	Namespace *string  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// Member is the wire-level shape of a user-declared i18n package member,
// as it arrives in a ScanRequest's ExtendI18nPackages.
type Member struct {
	Name      string   `json:"name" mapstructure:"name" yaml:"name"`
	Kind      I18nKind `json:"kind" mapstructure:"kind" yaml:"kind"`
	Namespace *string  `json:"ns,omitempty" mapstructure:"ns" yaml:"ns,omitempty"`
}

// I18nPackage is a user-supplied extension package: a package path (as it
// would appear in an import specifier) plus the members it exports.
type I18nPackage struct {
	PackagePath string   `json:"package_path" mapstructure:"package_path" yaml:"package_path"`
	Members     []Member `json:"members" mapstructure:"members" yaml:"members"`
}

// StringPtr returns a pointer to the given string, for optional Namespace
// fields built from a literal.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to the given bool, matching the optional-field
// convention used throughout this repository's request structs.
func BoolPtr(b bool) *bool { return &b }
