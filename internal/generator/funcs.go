package generator

import (
	"strconv"
	"strings"
	"text/template"

	"binastgen/internal/config"
	"binastgen/internal/typegraph"
)

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		// Table rows
		"fields": fields,
		"field":  field,
		"cbool":  cbool,

		// Enum helpers
		"memberNames": func(values []string) []string {
			return MemberNames(values, cfg.SymbolNames)
		},

		// String manipulation
		"join":  strings.Join,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,

		// Misc
		"prefix":  func() string { return cfg.Options.MacroPrefix },
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// field renders one interface field as a T(name, type, lazy, id) entry.
func field(f typegraph.Field) string {
	return "T(" + f.Name + ", " + f.Type + ", " + cbool(f.Lazy) + ", " + strconv.Itoa(f.ModelID) + ")"
}

// fields renders the comma-separated field entries of an interface row.
func fields(fs []typegraph.Field) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = field(f)
	}
	return strings.Join(parts, ", ")
}

// cbool renders a boolean literal.
func cbool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
