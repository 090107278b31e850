package typegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"binastgen/internal/config"
	"binastgen/internal/model"
)

func TestNamerName(t *testing.T) {
	num := &model.Primitive{Name: "Number"}
	str := &model.Primitive{Name: "String"}
	node := &model.Interface{Name: "Node"}

	tests := []struct {
		name string
		ty   model.Type
		want string
	}{
		{"interface", node, "Node"},
		{"enum", &model.Enum{Name: "VariableDeclarationKind"}, "VariableDeclarationKind"},
		{"primitive", num, "Number"},
		{"union of primitives", &model.Union{Members: []model.Type{num, str}}, "NumberOrString"},
		{"sequence", &model.Sequence{Elem: num}, "FrozenArray_Number"},
		{"void", model.Void, "None"},
		{"nullable", &model.Union{Members: []model.Type{node, model.Void}}, "NodeOrNone"},
		{
			"sequence of union",
			&model.Sequence{Elem: &model.Union{Members: []model.Type{node, str}}},
			"FrozenArray_NodeOrString",
		},
		{
			"union containing sequence",
			&model.Union{Members: []model.Type{&model.Sequence{Elem: node}, model.Void}},
			"FrozenArray_NodeOrNone",
		},
		{"nil", nil, ""},
		{"typed nil interface", (*model.Interface)(nil), ""},
		{"sequence of typed nil", &model.Sequence{Elem: (*model.Enum)(nil)}, "FrozenArray_"},
	}

	n := DefaultNamer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Name(tt.ty))
			// naming is referentially transparent
			assert.Equal(t, n.Name(tt.ty), n.Name(tt.ty))
		})
	}
}

// Names are derivable for types the traverser has not reached, including
// types whose named members form a cycle.
func TestNamerCyclicGraph(t *testing.T) {
	a := &model.Interface{Name: "A"}
	u := &model.Union{Members: []model.Type{a, &model.Sequence{Elem: a}}}
	a.Attrs = []model.Attribute{{Name: "u", Type: u}}

	assert.Equal(t, "AOrFrozenArray_A", DefaultNamer().Name(u))
}

func TestNamerCustomNaming(t *testing.T) {
	n := NewNamer(config.Naming{UnionSeparator: "|", SequencePrefix: "Vec_", NoneName: "Void"})
	num := &model.Primitive{Name: "Number"}

	assert.Equal(t, "Number|Void", n.Name(&model.Union{Members: []model.Type{num, model.Void}}))
	assert.Equal(t, "Vec_Number", n.Name(&model.Sequence{Elem: num}))
	assert.Equal(t, "", n.Name(nil))
}
