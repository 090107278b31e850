package model

import (
	"binastgen/internal/errors"
)

// Resolver holds the named declarations of a schema in declaration order.
type Resolver struct {
	interfaces []*Interface
	enums      []*Enum
	primitives []*Primitive
	typedefs   []string
	named      map[string]Type
}

// NewResolver creates an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		named: make(map[string]Type),
	}
}

func (r *Resolver) declare(name string, t Type) error {
	if name == "" {
		return errors.NewInvalidSchemaError("%s declared without a name", t.Kind())
	}
	if _, exists := r.named[name]; exists {
		return errors.NewInvalidSchemaError("duplicate declaration %q", name)
	}
	r.named[name] = t
	return nil
}

// AddInterface registers an interface declaration.
func (r *Resolver) AddInterface(i *Interface) error {
	if err := r.declare(i.Name, i); err != nil {
		return err
	}
	r.interfaces = append(r.interfaces, i)
	return nil
}

// AddEnum registers an enumeration declaration.
func (r *Resolver) AddEnum(e *Enum) error {
	if err := r.declare(e.Name, e); err != nil {
		return err
	}
	r.enums = append(r.enums, e)
	return nil
}

// AddPrimitive registers a primitive declaration.
func (r *Resolver) AddPrimitive(p *Primitive) error {
	if err := r.declare(p.Name, p); err != nil {
		return err
	}
	r.primitives = append(r.primitives, p)
	return nil
}

// AddTypedef registers name as another name for t. Lookups of name return
// t itself, so every use of a typedef shares one node.
func (r *Resolver) AddTypedef(name string, t Type) error {
	if t == nil {
		return errors.NewUnresolvedError("typedef %q has no type", name)
	}
	if err := r.declare(name, t); err != nil {
		return err
	}
	r.typedefs = append(r.typedefs, name)
	return nil
}

// Lookup returns the type declared under name.
func (r *Resolver) Lookup(name string) (Type, error) {
	t, ok := r.named[name]
	if !ok {
		return nil, errors.NewUnresolvedError("type %q is not declared", name)
	}
	return t, nil
}

// Interfaces returns the interface declarations in declaration order.
func (r *Resolver) Interfaces() []*Interface { return r.interfaces }

// Enums returns the enumeration declarations in declaration order.
func (r *Resolver) Enums() []*Enum { return r.enums }

// Primitives returns the primitive declarations in declaration order.
func (r *Resolver) Primitives() []*Primitive { return r.primitives }

// Typedefs returns the typedef names in declaration order.
func (r *Resolver) Typedefs() []string { return r.typedefs }
