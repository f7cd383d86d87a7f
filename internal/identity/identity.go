package identity

import "strings"

const (
	BrandName = "Paneboard"
	// AppSlug is the canonical identifier for user-facing and on-disk state.
	// It intentionally matches the only supported CLI binary name.
	AppSlug = "paneboard"
	CLIName = "paneboard"

	// EnvPrefix namespaces every environment variable the binary reads.
	EnvPrefix = "PANEBOARD"

	ProjectConfigFile       = "paneboard.yaml"
	HiddenProjectConfigFile = ".paneboard.yaml"

	GlobalConfigFile = "config.toml"
	LogFileName      = "paneboard.log"
)

// EnvVar returns the fully prefixed environment variable name for key.
func EnvVar(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return EnvPrefix
	}
	return EnvPrefix + "_" + key
}
