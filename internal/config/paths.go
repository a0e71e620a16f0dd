package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigName is the project config file, relative to the repository.
const ProjectConfigName = ".mdrelnotes.yml"

// LegacyProjectConfigName is the JSON form still read when no YAML file exists.
const LegacyProjectConfigName = ".mdrelnotes.json"

// UserConfigPath returns the path to the user-level config file.
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mdrelnotes", "config.yml"), nil
}

// ProjectConfigPath returns the project config path inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(orDot(dir), ProjectConfigName)
}

// LegacyProjectConfigPath returns the legacy JSON project config path inside dir.
func LegacyProjectConfigPath(dir string) string {
	return filepath.Join(orDot(dir), LegacyProjectConfigName)
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
