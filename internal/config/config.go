// Package config provides layered configuration for mdrelnotes using koanf.
// Configuration is loaded with priority: environment variables > --config file
// > project config (.mdrelnotes.yml) > user config (~/.config/mdrelnotes/config.yml)
// > defaults. Command-line flags are applied on top by the cli package.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	clierrors "github.com/mdrelnotes/mdrelnotes/internal/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g. MDRELNOTES_POLICY.
const EnvPrefix = "MDRELNOTES_"

// ConfigSource tracks where a configuration layer came from
type ConfigSource string

const (
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceExplicit ConfigSource = "explicit"
)

// Configuration represents the mdrelnotes settings.
type Configuration struct {
	// Policy selects how a commit's version is resolved: "worktree" reads the
	// manifest in the working directory once, "snapshot" reads it at each commit.
	Policy string `koanf:"policy" validate:"oneof=worktree snapshot"`

	// Manifest is the repository-relative path read by the snapshot policy.
	Manifest string `koanf:"manifest" validate:"required"`

	// Manifests are the working-tree candidates tried in order by the worktree policy.
	Manifests []string `koanf:"manifests" validate:"min=1,dive,required"`

	// Backend selects the git implementation: "cli" or "gogit".
	Backend string `koanf:"backend" validate:"oneof=cli gogit"`

	// GitBinary is the executable used by the cli backend.
	GitBinary string `koanf:"git_binary" validate:"required_if=Backend cli"`

	Tickets bool `koanf:"tickets"`
	Header  bool `koanf:"header"`
	Debug   bool `koanf:"debug"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Dir is the repository directory holding the project config (default: ".").
	Dir string
	// ConfigFile is an explicit config file; it must exist when set.
	ConfigFile string
	// UserConfigPath overrides the user config location (tests).
	UserConfigPath string
	// SkipUserConfig ignores the user config entirely.
	SkipUserConfig bool
	// WarningWriter receives legacy-config warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses legacy-config warnings
	SkipWarnings bool
}

// Load loads configuration from defaults, user, project, explicit and
// environment sources.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.Dir, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadExplicitConfig(k, opts.ConfigFile); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/mdrelnotes/config.yml if present.
func loadUserConfig(k *koanf.Koanf, override string) error {
	path := override
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, SourceUser); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads <dir>/.mdrelnotes.yml, falling back to the legacy
// <dir>/.mdrelnotes.json. When both exist the YAML file wins.
func loadProjectConfig(k *koanf.Koanf, dir string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath(dir)
	legacyPath := LegacyProjectConfigPath(dir)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
	case legacyExists:
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return clierrors.ConfigParseError(legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using legacy JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Rename it to %s and convert it to YAML.\n", filepath.Base(yamlPath))
		}
	}
	return nil
}

// loadExplicitConfig loads the --config file, picking the parser by extension.
func loadExplicitConfig(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if !fileExists(path) {
		return clierrors.ConfigParseError(path, os.ErrNotExist)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return clierrors.ConfigParseError(path, err)
		}
		return nil
	}
	return loadYAMLConfig(k, path, SourceExplicit)
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string, source ConfigSource) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return clierrors.ConfigParseError(path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return clierrors.ConfigParseError(path, fmt.Errorf("loading %s config: %w", source, err))
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged layers.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform converts environment variable names to config keys.
// Example: MDRELNOTES_GIT_BINARY -> git_binary. MDRELNOTES_MANIFESTS is a
// comma-separated list.
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "manifests" {
		var list []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return key, list
	}
	return key, value
}
