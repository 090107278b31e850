// Package model defines the type graph described by an IDL schema.
package model

// TypeKind represents the category of a schema type.
type TypeKind string

const (
	KindInterface TypeKind = "interface"
	KindUnion     TypeKind = "union"
	KindEnum      TypeKind = "enum"
	KindPrimitive TypeKind = "primitive"
	KindSequence  TypeKind = "sequence"
	KindNone      TypeKind = "none"
)

// Type is a node in the schema graph. The set of implementations is closed:
// only the types in this package satisfy it. Two Types are the same node
// only if they are the same pointer; structurally equal declarations are
// distinct nodes.
type Type interface {
	Kind() TypeKind
	isType()
}

// Interface is a composite type with an ordered list of attributes.
type Interface struct {
	Name  string
	Attrs []Attribute
}

// Attribute is a named, typed member of an Interface.
type Attribute struct {
	Name string // Attribute name
	Type Type   // Resolved attribute type
	Lazy bool   // Passed through to the tables uninterpreted
}

// Union is a choice among an ordered, non-empty list of member types.
type Union struct {
	Members []Type
}

// Enum is a named set of string values. Value order carries no meaning.
type Enum struct {
	Name   string
	Values []string
}

// Primitive is an opaque named leaf.
type Primitive struct {
	Name string
}

// Sequence is a variable-length list with a single element type.
type Sequence struct {
	Elem Type
}

// None is the void sentinel.
type None struct{}

// Void is the shared void sentinel used by the schema loader.
var Void Type = &None{}

func (*Interface) Kind() TypeKind { return KindInterface }
func (*Union) Kind() TypeKind     { return KindUnion }
func (*Enum) Kind() TypeKind      { return KindEnum }
func (*Primitive) Kind() TypeKind { return KindPrimitive }
func (*Sequence) Kind() TypeKind  { return KindSequence }
func (*None) Kind() TypeKind      { return KindNone }

func (*Interface) isType() {}
func (*Union) isType()     {}
func (*Enum) isType()      {}
func (*Primitive) isType() {}
func (*Sequence) isType()  {}
func (*None) isType()      {}

// IsNil reports whether t is nil or a nil pointer to one of the variants.
func IsNil(t Type) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *Interface:
		return t == nil
	case *Union:
		return t == nil
	case *Enum:
		return t == nil
	case *Primitive:
		return t == nil
	case *Sequence:
		return t == nil
	case *None:
		return t == nil
	}
	return false
}

// Attr returns the attribute with the given name.
func (i *Interface) Attr(name string) (Attribute, bool) {
	for _, a := range i.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
