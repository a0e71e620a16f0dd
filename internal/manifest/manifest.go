// Package manifest reads project metadata (name and version) from package
// manifests such as package.json and pubspec.yaml.
//
// Readers never return an error: a missing, unreadable or malformed manifest
// is reported as nil so callers can fall back to a sentinel value.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Metadata is the subset of a project manifest used for release notes.
type Metadata struct {
	Name    string
	Version string
}

// Complete reports whether both name and version are present.
func (m *Metadata) Complete() bool {
	return m != nil && m.Name != "" && m.Version != ""
}

// Format identifies the syntax of a manifest document.
type Format int

const (
	// JSON manifests, e.g. package.json.
	JSON Format = iota
	// YAML manifests, e.g. pubspec.yaml.
	YAML
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatFor picks the format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// ReadFile reads the manifest at path, choosing the parser from its extension.
func ReadFile(path string) *Metadata {
	return load(file.Provider(path), FormatFor(path))
}

// Parse decodes manifest content held in memory, such as a file shown from
// a historical commit.
func Parse(data []byte, format Format) *Metadata {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return load(bytesProvider(data), format)
}

// load runs a provider through the parser for format and extracts the
// name and version keys. Returns nil on any failure.
func load(p koanf.Provider, format Format) *Metadata {
	k := koanf.New(".")
	if err := k.Load(p, parserFor(format)); err != nil {
		return nil
	}

	return &Metadata{
		Name:    stringField(k, "name"),
		Version: stringField(k, "version"),
	}
}

func parserFor(format Format) koanf.Parser {
	if format == YAML {
		return yaml.Parser()
	}
	return json.Parser()
}

// stringField returns the scalar at key as a trimmed string. Non-string
// scalars (a YAML "version: 2" decodes as an int) are formatted with %v.
func stringField(k *koanf.Koanf, key string) string {
	switch v := k.Get(key).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// bytesProvider is a koanf.Provider over an in-memory document.
type bytesProvider []byte

// ReadBytes returns the raw document for the parser.
func (b bytesProvider) ReadBytes() ([]byte, error) {
	return b, nil
}

// Read is not supported; bytesProvider always needs a parser.
func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("bytes provider does not support Read()")
}
