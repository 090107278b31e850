// Package typegraph walks a schema type graph from a root and collects the
// interfaces, unions, enumerations, primitives and sequences reachable from
// it, assigning model-IDs to interface fields and sequence lengths on the way.
package typegraph

import (
	"go.uber.org/zap"

	"binastgen/internal/config"
	"binastgen/internal/errors"
	"binastgen/internal/model"
)

// Field is one attribute row of an interface entry.
type Field struct {
	Name    string // Attribute name
	Type    string // Synthesized name of the attribute type
	Lazy    bool
	ModelID int
}

// InterfaceEntry is a visited interface.
type InterfaceEntry struct {
	Name   string
	Fields []Field
}

// UnionEntry is a visited union with its member names in declaration order.
type UnionEntry struct {
	Name    string
	Members []string
}

// SequenceEntry is a visited sequence. ModelID belongs to its length.
type SequenceEntry struct {
	Name    string
	Elem    string
	ModelID int
}

// Collections holds everything reachable from a root, each slice in
// depth-first pre-order of first visit.
type Collections struct {
	Interfaces []InterfaceEntry
	Unions     []UnionEntry
	Enums      []string
	Primitives []string
	Sequences  []SequenceEntry
}

// Stats summarizes the last traversal.
type Stats struct {
	Visited  int
	ModelIDs int
}

// Option configures a Traverser.
type Option func(*Traverser)

// WithLogger sets the logger used for per-visit debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Traverser) {
		t.logger = logger
	}
}

// WithNaming sets the name synthesis settings.
func WithNaming(naming config.Naming) Option {
	return func(t *Traverser) {
		t.namer = NewNamer(naming)
		t.seqLength = naming.SequenceLength
	}
}

// Traverser owns the state of a traversal run: the visited set, the
// model-ID allocator and the collections being built. Separate Traversers
// share nothing and can run concurrently.
type Traverser struct {
	namer     Namer
	seqLength string
	logger    *zap.Logger

	visited map[model.Type]struct{}
	alloc   *Allocator
	out     *Collections
}

// New creates a Traverser.
func New(opts ...Option) *Traverser {
	naming := config.DefaultNaming()
	t := &Traverser{
		namer:     NewNamer(naming),
		seqLength: naming.SequenceLength,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Namer returns the namer used for collection entries.
func (t *Traverser) Namer() Namer { return t.namer }

// Allocator returns the allocator of the last traversal.
func (t *Traverser) Allocator() *Allocator { return t.alloc }

// Stats reports on the last traversal.
func (t *Traverser) Stats() Stats {
	if t.alloc == nil {
		return Stats{}
	}
	return Stats{Visited: len(t.visited), ModelIDs: t.alloc.Len()}
}

// Traverse visits every type reachable from root exactly once. Each call
// starts from empty state. On error no collections are returned.
func (t *Traverser) Traverse(root model.Type) (*Collections, error) {
	t.visited = make(map[model.Type]struct{})
	t.alloc = NewAllocator()
	t.out = &Collections{}

	if model.IsNil(root) {
		return nil, errors.NewUnresolvedError("root type is nil")
	}
	if err := t.visit(root); err != nil {
		return nil, err
	}

	t.logger.Debug("traversal complete",
		zap.String("root", t.namer.Name(root)),
		zap.Int("visited", len(t.visited)),
		zap.Int("model_ids", t.alloc.Len()))

	return t.out, nil
}

// TraverseNamed looks up root in res and traverses from it.
func (t *Traverser) TraverseNamed(res *model.Resolver, root string) (*Collections, error) {
	ty, err := res.Lookup(root)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "resolving root"),
			"set options.root in the config file or pass --root")
	}
	return t.Traverse(ty)
}

func (t *Traverser) visit(ty model.Type) error {
	if _, seen := t.visited[ty]; seen {
		return nil
	}
	t.visited[ty] = struct{}{}

	switch ty := ty.(type) {
	case *model.Interface:
		return t.visitInterface(ty)
	case *model.Union:
		return t.visitUnion(ty)
	case *model.Enum:
		t.trace(ty)
		t.out.Enums = append(t.out.Enums, t.namer.Name(ty))
		return nil
	case *model.Primitive:
		t.trace(ty)
		t.out.Primitives = append(t.out.Primitives, t.namer.Name(ty))
		return nil
	case *model.Sequence:
		return t.visitSequence(ty)
	case *model.None:
		return nil
	default:
		return errors.Wrapf(errors.ErrInternal, "unexpected type %T", ty)
	}
}

func (t *Traverser) visitInterface(ty *model.Interface) error {
	t.trace(ty)

	fields := make([]Field, 0, len(ty.Attrs))
	for _, attr := range ty.Attrs {
		if model.IsNil(attr.Type) {
			return errors.NewUnresolvedError("interface %s: attribute %s has no resolved type", ty.Name, attr.Name)
		}
		fields = append(fields, Field{
			Name:    attr.Name,
			Type:    t.namer.Name(attr.Type),
			Lazy:    attr.Lazy,
			ModelID: t.alloc.ID(Key{Owner: ty, Discriminator: attr.Name}),
		})
	}
	t.out.Interfaces = append(t.out.Interfaces, InterfaceEntry{
		Name:   t.namer.Name(ty),
		Fields: fields,
	})

	for _, attr := range ty.Attrs {
		if err := t.visit(attr.Type); err != nil {
			return err
		}
	}
	return nil
}

func (t *Traverser) visitUnion(ty *model.Union) error {
	t.trace(ty)

	members := make([]string, 0, len(ty.Members))
	for i, m := range ty.Members {
		if model.IsNil(m) {
			return errors.NewUnresolvedError("union %s: member %d has no resolved type", t.namer.Name(ty), i)
		}
		members = append(members, t.namer.Name(m))
	}
	t.out.Unions = append(t.out.Unions, UnionEntry{
		Name:    t.namer.Name(ty),
		Members: members,
	})

	for _, m := range ty.Members {
		if err := t.visit(m); err != nil {
			return err
		}
	}
	return nil
}

func (t *Traverser) visitSequence(ty *model.Sequence) error {
	if model.IsNil(ty.Elem) {
		return errors.NewUnresolvedError("sequence %s: element has no resolved type", t.namer.Name(ty))
	}
	t.trace(ty)

	t.out.Sequences = append(t.out.Sequences, SequenceEntry{
		Name:    t.namer.Name(ty),
		Elem:    t.namer.Name(ty.Elem),
		ModelID: t.alloc.ID(Key{Owner: ty, Discriminator: t.seqLength}),
	})
	return t.visit(ty.Elem)
}

func (t *Traverser) trace(ty model.Type) {
	if ce := t.logger.Check(zap.DebugLevel, "visit"); ce != nil {
		ce.Write(zap.String("kind", string(ty.Kind())), zap.String("name", t.namer.Name(ty)))
	}
}
