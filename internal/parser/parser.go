// Package parser loads IDL schema documents into a model.Resolver.
package parser

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"binastgen/internal/errors"
	"binastgen/internal/model"
)

// Format selects the encoding of a schema document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Schema is a loaded schema document.
type Schema struct {
	Path     string          // Source path (empty when parsed from memory)
	Root     string          // Root type named by the document, if any
	Resolver *model.Resolver // Resolved declarations
}

type document struct {
	Root       string          `yaml:"root" json:"root"`
	Primitives []string        `yaml:"primitives" json:"primitives"`
	Enums      []enumDecl      `yaml:"enums" json:"enums"`
	Typedefs   []typedefDecl   `yaml:"typedefs" json:"typedefs"`
	Interfaces []interfaceDecl `yaml:"interfaces" json:"interfaces"`
}

type enumDecl struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values" json:"values"`
}

type typedefDecl struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

type interfaceDecl struct {
	Name       string     `yaml:"name" json:"name"`
	Attributes []attrDecl `yaml:"attributes" json:"attributes"`
}

type attrDecl struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	Lazy bool   `yaml:"lazy" json:"lazy"`
}

// Parser builds a type graph from schema documents. Anonymous type
// expressions are interned on their resolved structure, so every occurrence
// of the same type in one document resolves to the same node.
type Parser struct {
	res       *model.Resolver
	anonymous map[string]model.Type
	nodeIDs   map[model.Type]int
	typedefs  map[string]model.Type
	pending   map[string]typedefDecl
	resolving map[string]bool
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile loads a schema file. Files ending in .json are read as JSON,
// everything else as YAML.
func (p *Parser) ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading schema")
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	schema, err := p.Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	schema.Path = path
	return schema, nil
}

// Parse loads a schema document from memory.
func (p *Parser) Parse(data []byte, format Format) (*Schema, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidSchema)
	}

	p.res = model.NewResolver()
	p.anonymous = make(map[string]model.Type)
	p.nodeIDs = make(map[model.Type]int)
	p.typedefs = make(map[string]model.Type)
	p.pending = make(map[string]typedefDecl)
	p.resolving = make(map[string]bool)

	if err := p.declare(doc); err != nil {
		return nil, err
	}
	if err := p.resolveTypedefs(doc.Typedefs); err != nil {
		return nil, err
	}
	if err := p.resolveInterfaces(doc.Interfaces); err != nil {
		return nil, err
	}

	return &Schema{Root: doc.Root, Resolver: p.res}, nil
}

func decode(data []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding JSON schema")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "decoding YAML schema")
		}
	default:
		return nil, errors.Newf("unknown schema format %q", format)
	}
	return &doc, nil
}

// declare registers every named declaration so attribute types may refer
// to declarations that appear later in the document.
func (p *Parser) declare(doc *document) error {
	for _, name := range doc.Primitives {
		if err := p.res.AddPrimitive(&model.Primitive{Name: name}); err != nil {
			return err
		}
	}
	for _, e := range doc.Enums {
		if err := p.res.AddEnum(&model.Enum{Name: e.Name, Values: e.Values}); err != nil {
			return err
		}
	}
	for _, i := range doc.Interfaces {
		if err := p.res.AddInterface(&model.Interface{Name: i.Name}); err != nil {
			return err
		}
	}
	for _, td := range doc.Typedefs {
		if td.Name == "" {
			return errors.NewInvalidSchemaError("typedef declared without a name")
		}
		if _, err := p.res.Lookup(td.Name); err == nil {
			return errors.NewInvalidSchemaError("duplicate declaration %q", td.Name)
		}
		if _, dup := p.pending[td.Name]; dup {
			return errors.NewInvalidSchemaError("duplicate declaration %q", td.Name)
		}
		p.pending[td.Name] = td
	}
	return nil
}

func (p *Parser) resolveTypedefs(decls []typedefDecl) error {
	for _, td := range decls {
		if _, err := p.typedef(td.Name); err != nil {
			return err
		}
	}
	// registered after resolution so the resolver keeps declaration order
	for _, td := range decls {
		if err := p.res.AddTypedef(td.Name, p.typedefs[td.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) typedef(name string) (model.Type, error) {
	if t, ok := p.typedefs[name]; ok {
		return t, nil
	}
	if p.resolving[name] {
		return nil, errors.NewInvalidSchemaError("typedef %q refers to itself", name)
	}
	p.resolving[name] = true
	defer delete(p.resolving, name)

	td := p.pending[name]
	t, err := p.resolveExpr(td.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "typedef %s", name)
	}
	p.typedefs[name] = t
	return t, nil
}

func (p *Parser) resolveInterfaces(decls []interfaceDecl) error {
	for _, decl := range decls {
		t, err := p.res.Lookup(decl.Name)
		if err != nil {
			return err
		}
		iface := t.(*model.Interface)

		attrs := make([]model.Attribute, 0, len(decl.Attributes))
		seen := make(map[string]bool, len(decl.Attributes))
		for _, a := range decl.Attributes {
			if a.Name == "" {
				return errors.NewInvalidSchemaError("interface %s: attribute declared without a name", decl.Name)
			}
			if seen[a.Name] {
				return errors.NewInvalidSchemaError("interface %s: duplicate attribute %s", decl.Name, a.Name)
			}
			seen[a.Name] = true

			ty, err := p.resolveExpr(a.Type)
			if err != nil {
				return errors.Wrapf(err, "interface %s: attribute %s", decl.Name, a.Name)
			}
			attrs = append(attrs, model.Attribute{Name: a.Name, Type: ty, Lazy: a.Lazy})
		}
		iface.Attrs = attrs
	}
	return nil
}

func (p *Parser) resolveExpr(src string) (model.Type, error) {
	e, err := parseTypeExpr(src)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidSchema)
	}
	return p.build(e)
}

// build turns a parsed expression into a node. Sequences and unions are
// interned on their resolved children, so spellings that differ only by
// typedef aliases share one node.
func (p *Parser) build(e expr) (model.Type, error) {
	switch e := e.(type) {
	case nameExpr:
		return p.lookup(e.name)
	case voidExpr:
		return model.Void, nil
	case sequenceExpr:
		elem, err := p.build(e.elem)
		if err != nil {
			return nil, err
		}
		return p.intern(model.KindSequence, []model.Type{elem}, func() model.Type {
			return &model.Sequence{Elem: elem}
		}), nil
	case unionExpr:
		members := make([]model.Type, len(e.members))
		for i, m := range e.members {
			mt, err := p.build(m)
			if err != nil {
				return nil, err
			}
			members[i] = mt
		}
		return p.intern(model.KindUnion, members, func() model.Type {
			return &model.Union{Members: members}
		}), nil
	case nullableExpr:
		inner, err := p.build(e.inner)
		if err != nil {
			return nil, err
		}
		members := []model.Type{inner, model.Void}
		return p.intern(model.KindUnion, members, func() model.Type {
			return &model.Union{Members: members}
		}), nil
	default:
		return nil, errors.Wrapf(errors.ErrInternal, "unexpected expression %T", e)
	}
}

// intern returns the node already built for kind over the same children,
// creating it with newNode on first use.
func (p *Parser) intern(kind model.TypeKind, children []model.Type, newNode func() model.Type) model.Type {
	var key strings.Builder
	key.WriteString(string(kind))
	for _, c := range children {
		key.WriteByte(':')
		key.WriteString(strconv.Itoa(p.nodeID(c)))
	}
	if t, ok := p.anonymous[key.String()]; ok {
		return t
	}
	t := newNode()
	p.anonymous[key.String()] = t
	return t
}

// nodeID numbers nodes by identity for use in intern keys.
func (p *Parser) nodeID(t model.Type) int {
	id, ok := p.nodeIDs[t]
	if !ok {
		id = len(p.nodeIDs)
		p.nodeIDs[t] = id
	}
	return id
}

func (p *Parser) lookup(name string) (model.Type, error) {
	if _, ok := p.pending[name]; ok {
		return p.typedef(name)
	}
	return p.res.Lookup(name)
}
