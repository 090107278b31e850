package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "Script", cfg.Options.Root)
	assert.Equal(t, "BINAST", cfg.Options.MacroPrefix)
	assert.Equal(t, "Or", cfg.Naming.UnionSeparator)
	assert.Equal(t, "FrozenArray_", cfg.Naming.SequencePrefix)
	assert.Equal(t, "None", cfg.Naming.NoneName)
	assert.Equal(t, "list-length", cfg.Naming.SequenceLength)
	assert.Len(t, cfg.SymbolNames, 14)
	assert.Equal(t, "TILDE", cfg.SymbolNames["~"])
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
symbolNames:
  "?": QUESTION
naming:
  unionSeparator: Or_
options:
  root: Program
  macroPrefix: AST
  typesTemplate: tmpl/types.tmpl
`,
		},
		{
			name: "json",
			file: "config.json",
			content: `{
  "symbolNames": {"?": "QUESTION"},
  "naming": {"unionSeparator": "Or_"},
  "options": {"root": "Program", "macroPrefix": "AST", "typesTemplate": "tmpl/types.tmpl"}
}`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
[symbolNames]
"?" = "QUESTION"

[naming]
unionSeparator = "Or_"

[options]
root = "Program"
macroPrefix = "AST"
typesTemplate = "tmpl/types.tmpl"
`,
		},
		{
			name: "unknown extension falls back to yaml",
			file: "binastgen.conf",
			content: `
symbolNames: {"?": QUESTION}
naming: {unionSeparator: Or_}
options: {root: Program, macroPrefix: AST, typesTemplate: tmpl/types.tmpl}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg := New()
			require.NoError(t, cfg.LoadFile(path))

			assert.Equal(t, "Program", cfg.Options.Root)
			assert.Equal(t, "AST", cfg.Options.MacroPrefix)
			assert.Equal(t, "Or_", cfg.Naming.UnionSeparator)
			assert.Equal(t, filepath.Join(filepath.Dir(path), "tmpl/types.tmpl"), cfg.Options.TypesTemplate)

			// untouched settings keep their defaults
			assert.Equal(t, "FrozenArray_", cfg.Naming.SequencePrefix)
			assert.Equal(t, "types.h", cfg.Options.TypesFile)
			assert.Equal(t, "QUESTION", cfg.SymbolNames["?"])
			assert.Equal(t, "PLUS", cfg.SymbolNames["+"])
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	cfg := New()
	err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")

	path := writeFile(t, "bad.json", `{"options": `)
	err = cfg.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON config")

	path = writeFile(t, "bad.toml", `options = [`)
	err = cfg.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing TOML config")
}

func TestLoadFileAbsoluteTemplate(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "enums.tmpl")
	path := writeFile(t, "config.yaml", "options:\n  enumsTemplate: "+abs+"\n")
	cfg := New()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, abs, cfg.Options.EnumsTemplate)
}
