// Package generator renders macro tables and enum classes from a schema.
package generator

import (
	"bytes"
	"embed"
	"io"
	"path/filepath"
	"sort"
	"text/template"

	"go.uber.org/zap"

	"binastgen/internal/config"
	"binastgen/internal/errors"
	"binastgen/internal/model"
	"binastgen/internal/typegraph"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// Artifact names a generated file.
type Artifact string

const (
	ArtifactTypes Artifact = "types"
	ArtifactEnums Artifact = "enums"
)

// Generator executes templates against traversal results.
type Generator struct {
	config *config.Config
	types  *template.Template
	enums  *template.Template
	logger *zap.Logger
}

// New creates a new Generator using the built-in templates.
func New(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		config: cfg,
		logger: logger,
	}
	g.types = template.Must(g.newTemplate(ArtifactTypes).ParseFS(builtinTemplates, "templates/types.tmpl"))
	g.enums = template.Must(g.newTemplate(ArtifactEnums).ParseFS(builtinTemplates, "templates/enums.tmpl"))
	return g
}

func (g *Generator) newTemplate(a Artifact) *template.Template {
	return template.New(string(a) + ".tmpl").Funcs(templateFuncs(g.config))
}

// LoadTemplate replaces the template for an artifact with one from file.
func (g *Generator) LoadTemplate(a Artifact, path string) error {
	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs(g.config)).
		ParseFiles(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s template", a)
	}
	switch a {
	case ArtifactTypes:
		g.types = tmpl
	case ArtifactEnums:
		g.enums = tmpl
	default:
		return errors.Newf("unknown artifact %q", a)
	}
	return nil
}

// LoadConfiguredTemplates loads the template overrides named in the config.
func (g *Generator) LoadConfiguredTemplates() error {
	if path := g.config.Options.TypesTemplate; path != "" {
		if err := g.LoadTemplate(ArtifactTypes, path); err != nil {
			return err
		}
	}
	if path := g.config.Options.EnumsTemplate; path != "" {
		if err := g.LoadTemplate(ArtifactEnums, path); err != nil {
			return err
		}
	}
	return nil
}

// TablesData is passed to the types template.
type TablesData struct {
	Prefix string
	*typegraph.Collections
}

// EnumData is one enumeration as passed to the enums template.
type EnumData struct {
	Name    string
	Values  []string // Raw values, sorted
	Members []string // Member names, in the same order as Values
}

// EnumsData is passed to the enums template.
type EnumsData struct {
	Enums []EnumData
}

// Tables renders the macro tables for c.
func (g *Generator) Tables(c *typegraph.Collections, w io.Writer) error {
	data := &TablesData{
		Prefix:      g.config.Options.MacroPrefix,
		Collections: c,
	}
	if err := g.types.Execute(w, data); err != nil {
		return errors.Wrap(err, "executing types template")
	}
	return nil
}

// EnumClasses renders one enum class per enumeration, in the given order.
func (g *Generator) EnumClasses(enums []*model.Enum, w io.Writer) error {
	data := &EnumsData{Enums: make([]EnumData, 0, len(enums))}
	for _, e := range enums {
		data.Enums = append(data.Enums, EnumData{
			Name:    e.Name,
			Values:  sortedUnique(e.Values),
			Members: MemberNames(e.Values, g.config.SymbolNames),
		})
	}
	if err := g.enums.Execute(w, data); err != nil {
		return errors.Wrap(err, "executing enums template")
	}
	return nil
}

// Output holds the rendered artifacts of one run.
type Output struct {
	Types []byte
	Enums []byte
	Stats typegraph.Stats
}

// Combined returns the tables followed by the enum classes.
func (o *Output) Combined() []byte {
	out := make([]byte, 0, len(o.Types)+len(o.Enums))
	out = append(out, o.Types...)
	return append(out, o.Enums...)
}

// Generate traverses res from root and renders both artifacts in memory.
// Nothing is returned unless every step succeeds.
func (g *Generator) Generate(res *model.Resolver, root string) (*Output, error) {
	tr := typegraph.New(
		typegraph.WithNaming(g.config.Naming),
		typegraph.WithLogger(g.logger.Named("typegraph")),
	)
	collections, err := tr.TraverseNamed(res, root)
	if err != nil {
		return nil, err
	}

	var types, enums bytes.Buffer
	if err := g.Tables(collections, &types); err != nil {
		return nil, err
	}
	if err := g.EnumClasses(res.Enums(), &enums); err != nil {
		return nil, err
	}

	stats := tr.Stats()
	g.logger.Info("generated artifacts",
		zap.String("root", root),
		zap.Int("interfaces", len(collections.Interfaces)),
		zap.Int("unions", len(collections.Unions)),
		zap.Int("enums", len(collections.Enums)),
		zap.Int("primitives", len(collections.Primitives)),
		zap.Int("sequences", len(collections.Sequences)),
		zap.Int("model_ids", stats.ModelIDs))

	return &Output{Types: types.Bytes(), Enums: enums.Bytes(), Stats: stats}, nil
}

func sortedUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
