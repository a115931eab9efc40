// Package config loads the optional clockface.yaml file used by the CLI.
//
// The file is a flat mapping whose keys are clock face attribute names:
//
//	version: v0.3.0
//	size: 400
//	dial-color: "#1a1a1a"
//	numerals:
//	  - 12: XII
//	  - 6: VI
//
// Scalar values are passed to clockface.Config.SetAttribute as written.
// Sequence and mapping values (numerals) are re-encoded as YAML first.
// The optional version key names the oldest CLI release that can read the
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/clockface/pkg/clockface"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the file LoadOptional looks for.
const FileName = "clockface.yaml"

const versionKey = "version"

// Entry is one attribute assignment, in file or command-line order.
type Entry struct {
	Name  string
	Value string
}

// Config represents a parsed clockface.yaml plus any command-line overrides.
type Config struct {
	// Version is the minimum CLI version, or empty.
	Version string
	Entries []Entry
}

// LoadOptional reads clockface.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes clockface.yaml content. An empty document is an empty
// config.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if len(doc.Content) == 0 {
		return cfg, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of attribute names", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: attribute name must be a string", key.Line)
		}
		text, err := nodeText(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", value.Line, key.Value, err)
		}
		if key.Value == versionKey {
			cfg.Version = text
			continue
		}
		cfg.Entries = append(cfg.Entries, Entry{Name: key.Value, Value: text})
	}
	return cfg, nil
}

func nodeText(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.SequenceNode, yaml.MappingNode:
		out, err := yaml.Marshal(n)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	default:
		return "", errors.New("aliases are not supported")
	}
}

// Set appends name=value assignments, which override file entries with the
// same name.
func (c *Config) Set(assignments []string) error {
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid assignment %q, want name=value", a)
		}
		c.Entries = append(c.Entries, Entry{Name: name, Value: value})
	}
	return nil
}

// Lookup returns the last value assigned to name.
func (c *Config) Lookup(name string) (string, bool) {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Name == name {
			return c.Entries[i].Value, true
		}
	}
	return "", false
}

// Apply assigns every entry to cfg in order. cfg is left unchanged when an
// entry is rejected.
func (c *Config) Apply(cfg *clockface.Config) error {
	next := cfg.Clone()
	for _, e := range c.Entries {
		if err := next.SetAttribute(e.Name, e.Value); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// CheckVersion reports an error when the file requires a newer CLI than
// running. A running version that is not valid semver (a local build) is
// accepted.
func (c *Config) CheckVersion(running string) error {
	if c.Version == "" {
		return nil
	}
	want, ok := CanonicalVersion(c.Version)
	if !ok {
		return fmt.Errorf("invalid version %q in %s", c.Version, FileName)
	}
	have, ok := CanonicalVersion(running)
	if !ok {
		return nil
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("%s requires clockface %s or newer, running %s", FileName, want, have)
	}
	return nil
}

// CanonicalVersion normalizes v to the canonical "vMAJOR.MINOR.PATCH" form,
// accepting a missing "v" prefix.
func CanonicalVersion(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return semver.Canonical(v), true
}
