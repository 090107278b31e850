package typegraph

import (
	"strings"

	"binastgen/internal/config"
	"binastgen/internal/model"
)

// Namer synthesizes identifier names for schema types. It holds no
// traversal state, so a single Namer can name any type at any time.
type Namer struct {
	naming config.Naming
}

// NewNamer creates a Namer using the given naming settings.
func NewNamer(naming config.Naming) Namer {
	return Namer{naming: naming}
}

// DefaultNamer returns a Namer with the default naming settings.
func DefaultNamer() Namer {
	return NewNamer(config.DefaultNaming())
}

// Name returns the synthesized name of t. Declared types keep their
// declared name; unions join their members' names and sequences prefix
// their element's name.
//
// Name recurses through union members and sequence elements without a
// visited set. This terminates because an anonymous type can only reach
// itself through a named type, which stops the recursion.
func (n Namer) Name(t model.Type) string {
	if model.IsNil(t) {
		return ""
	}
	switch t := t.(type) {
	case *model.Interface:
		return t.Name
	case *model.Enum:
		return t.Name
	case *model.Primitive:
		return t.Name
	case *model.Union:
		names := make([]string, len(t.Members))
		for i, m := range t.Members {
			names[i] = n.Name(m)
		}
		return strings.Join(names, n.naming.UnionSeparator)
	case *model.Sequence:
		return n.naming.SequencePrefix + n.Name(t.Elem)
	case *model.None:
		return n.naming.NoneName
	}
	return ""
}
