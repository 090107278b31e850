package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"binastgen/internal/config"
	"binastgen/internal/errors"
	"binastgen/internal/model"
	"binastgen/internal/typegraph"
)

func newTestResolver(t *testing.T) *model.Resolver {
	t.Helper()
	res := model.NewResolver()

	num := &model.Primitive{Name: "Number"}
	op := &model.Enum{Name: "Op", Values: []string{"b", "a-c", "+"}}
	kind := &model.Enum{Name: "Kind", Values: []string{"let", "const", "var", "var"}}
	b := &model.Interface{Name: "B"}
	script := &model.Interface{Name: "Script", Attrs: []model.Attribute{
		{Name: "body", Type: b},
		{Name: "rest", Type: b, Lazy: true},
		{Name: "items", Type: &model.Sequence{Elem: &model.Union{Members: []model.Type{b, num}}}},
		{Name: "op", Type: op},
	}}

	require.NoError(t, res.AddPrimitive(num))
	require.NoError(t, res.AddEnum(op))
	require.NoError(t, res.AddEnum(kind))
	require.NoError(t, res.AddInterface(script))
	require.NoError(t, res.AddInterface(b))
	return res
}

const wantTables = `#define BINAST_INTERFACES(V,T) \
  V(Script, T(body, B, false, 0), T(rest, B, true, 1), T(items, FrozenArray_BOrNumber, false, 2), T(op, Op, false, 3)) \
  V(B, )
#define BINAST_ALTS(V,T) \
  V(BOrNumber, T(B, Number))

#define BINAST_ENUMS(V) \
  V(Op)

#define BINAST_PRIMITIVES(V) \
  V(Number)

#define BINAST_FROZEN_ARRAYS(V) \
  V(FrozenArray_BOrNumber, BOrNumber, 4)

`

const wantEnums = `enum class Op {
  PLUS,
  A_C,
  B
};

enum class Kind {
  CONST,
  LET,
  VAR
};
`

func TestGenerate(t *testing.T) {
	g := New(config.New(), zaptest.NewLogger(t))
	out, err := g.Generate(newTestResolver(t), "Script")
	require.NoError(t, err)

	assert.Equal(t, wantTables, string(out.Types))
	assert.Equal(t, wantEnums, string(out.Enums))
	assert.Equal(t, wantTables+wantEnums, string(out.Combined()))
	assert.Equal(t, typegraph.Stats{Visited: 6, ModelIDs: 5}, out.Stats)
}

func TestGenerateDeterministic(t *testing.T) {
	res := newTestResolver(t)
	g := New(config.New(), nil)

	first, err := g.Generate(res, "Script")
	require.NoError(t, err)
	second, err := g.Generate(res, "Script")
	require.NoError(t, err)
	assert.Equal(t, first.Combined(), second.Combined())
}

func TestGenerateRootNotFound(t *testing.T) {
	g := New(config.New(), nil)
	out, err := g.Generate(newTestResolver(t), "Program")
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsUnresolved(err))
}

func TestTablesEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.New()
	cfg.Options.MacroPrefix = "AST"
	require.NoError(t, New(cfg, nil).Tables(&typegraph.Collections{}, &buf))

	want := "#define AST_INTERFACES(V,T) \\\n" +
		"\n#define AST_ALTS(V,T) \\\n" +
		"\n\n#define AST_ENUMS(V) \\\n" +
		"\n\n#define AST_PRIMITIVES(V) \\\n" +
		"\n\n#define AST_FROZEN_ARRAYS(V) \\\n" +
		"\n\n"
	assert.Equal(t, want, buf.String())
}

func TestEnumClassesEdgeCases(t *testing.T) {
	var buf bytes.Buffer
	g := New(config.New(), nil)

	require.NoError(t, g.EnumClasses(nil, &buf))
	assert.Equal(t, "\n", buf.String())

	buf.Reset()
	require.NoError(t, g.EnumClasses([]*model.Enum{{Name: "Empty"}}, &buf))
	assert.Equal(t, "enum class Empty {\n  \n};\n", buf.String())
}

func writeTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguredTemplates(t *testing.T) {
	cfg := config.New()
	cfg.Options.MacroPrefix = "JS"
	cfg.Options.TypesTemplate = writeTemplate(t, "types.tmpl",
		`{{prefix}}:{{range $i, $e := .Interfaces}}{{lower $e.Name}}[{{range $e.Fields}}{{field .}}{{end}}]{{if notLast $i (len $.Interfaces)}},{{end}}{{end}}`)
	cfg.Options.EnumsTemplate = writeTemplate(t, "enums.tmpl",
		`{{range .Enums}}{{upper .Name}}={{join (memberNames .Values) "|"}};{{end}}`)

	g := New(cfg, nil)
	require.NoError(t, g.LoadConfiguredTemplates())

	out, err := g.Generate(newTestResolver(t), "Script")
	require.NoError(t, err)
	assert.Equal(t,
		"JS:script[T(body, B, false, 0)T(rest, B, true, 1)T(items, FrozenArray_BOrNumber, false, 2)T(op, Op, false, 3)],b[]",
		string(out.Types))
	assert.Equal(t, "OP=PLUS|A_C|B;KIND=CONST|LET|VAR;", string(out.Enums))
}

func TestLoadTemplateErrors(t *testing.T) {
	g := New(config.New(), nil)

	err := g.LoadTemplate(ArtifactTypes, filepath.Join(t.TempDir(), "missing.tmpl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading types template")

	err = g.LoadTemplate(ArtifactEnums, writeTemplate(t, "bad.tmpl", "{{range}}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading enums template")

	err = g.LoadTemplate(Artifact("docs"), writeTemplate(t, "ok.tmpl", "ok"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown artifact")
}

func TestTablesExecutionError(t *testing.T) {
	cfg := config.New()
	cfg.Options.TypesTemplate = writeTemplate(t, "types.tmpl", `{{.Missing}}`)
	g := New(cfg, nil)
	require.NoError(t, g.LoadConfiguredTemplates())

	var buf bytes.Buffer
	err := g.Tables(&typegraph.Collections{}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing types template")
}

func TestFields(t *testing.T) {
	assert.Equal(t, "", fields(nil))
	assert.Equal(t, "T(a, B, true, 7), T(c, D, false, 8)", fields([]typegraph.Field{
		{Name: "a", Type: "B", Lazy: true, ModelID: 7},
		{Name: "c", Type: "D", ModelID: 8},
	}))
	assert.Equal(t, "false", cbool(false))
}
