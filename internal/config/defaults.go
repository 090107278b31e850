// Package config provides configuration handling for binastgen.
package config

// DefaultSymbolNames returns the names used for punctuation-only enum values.
func DefaultSymbolNames() map[string]string {
	return map[string]string{
		"+": "PLUS",
		"-": "MINUS",
		"=": "EQUAL",
		"/": "SLASH",
		"*": "STAR",
		"<": "LESS",
		">": "GREATER",
		"|": "PIPE",
		"^": "HAT",
		"&": "AND",
		",": "COMMA",
		"!": "BANG",
		"%": "PCT",
		"~": "TILDE",
	}
}

// DefaultNaming returns the default name synthesis settings.
func DefaultNaming() Naming {
	return Naming{
		UnionSeparator: "Or",
		SequencePrefix: "FrozenArray_",
		NoneName:       "None",
		SequenceLength: "list-length",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Root:        "Script",
		MacroPrefix: "BINAST",
		TypesFile:   "types.h",
		EnumsFile:   "enums.h",
	}
}
