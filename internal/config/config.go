package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"binastgen/internal/errors"
)

// Config represents the complete configuration.
type Config struct {
	SymbolNames map[string]string `yaml:"symbolNames" json:"symbolNames" toml:"symbolNames"`
	Naming      Naming            `yaml:"naming" json:"naming" toml:"naming"`
	Options     Options           `yaml:"options" json:"options" toml:"options"`
}

// Naming controls how names are synthesized for anonymous types.
type Naming struct {
	UnionSeparator string `yaml:"unionSeparator" json:"unionSeparator" toml:"unionSeparator"`
	SequencePrefix string `yaml:"sequencePrefix" json:"sequencePrefix" toml:"sequencePrefix"`
	NoneName       string `yaml:"noneName" json:"noneName" toml:"noneName"`
	SequenceLength string `yaml:"sequenceLength" json:"sequenceLength" toml:"sequenceLength"`
}

// Options represents generation options.
type Options struct {
	Root          string `yaml:"root" json:"root" toml:"root"`
	MacroPrefix   string `yaml:"macroPrefix" json:"macroPrefix" toml:"macroPrefix"`
	TypesFile     string `yaml:"typesFile" json:"typesFile" toml:"typesFile"`
	EnumsFile     string `yaml:"enumsFile" json:"enumsFile" toml:"enumsFile"`
	TypesTemplate string `yaml:"typesTemplate" json:"typesTemplate" toml:"typesTemplate"`
	EnumsTemplate string `yaml:"enumsTemplate" json:"enumsTemplate" toml:"enumsTemplate"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		SymbolNames: DefaultSymbolNames(),
		Naming:      DefaultNaming(),
		Options:     DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing YAML config")
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing JSON config")
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing TOML config")
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return errors.Newf("unable to parse config %s as YAML or JSON", path)
			}
		}
	}

	c.merge(&loaded, filepath.Dir(path))

	return nil
}

// merge merges the loaded config into the current config. Template paths
// are taken relative to the directory of the config file.
func (c *Config) merge(loaded *Config, dir string) {
	for k, v := range loaded.SymbolNames {
		c.SymbolNames[k] = v
	}

	setIfNotEmpty(&c.Naming.UnionSeparator, loaded.Naming.UnionSeparator)
	setIfNotEmpty(&c.Naming.SequencePrefix, loaded.Naming.SequencePrefix)
	setIfNotEmpty(&c.Naming.NoneName, loaded.Naming.NoneName)
	setIfNotEmpty(&c.Naming.SequenceLength, loaded.Naming.SequenceLength)

	setIfNotEmpty(&c.Options.Root, loaded.Options.Root)
	setIfNotEmpty(&c.Options.MacroPrefix, loaded.Options.MacroPrefix)
	setIfNotEmpty(&c.Options.TypesFile, loaded.Options.TypesFile)
	setIfNotEmpty(&c.Options.EnumsFile, loaded.Options.EnumsFile)
	setIfNotEmpty(&c.Options.TypesTemplate, relativeTo(dir, loaded.Options.TypesTemplate))
	setIfNotEmpty(&c.Options.EnumsTemplate, relativeTo(dir, loaded.Options.EnumsTemplate))
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
