package address

import (
	"errors"
	"testing"

	"formbuilder/internal/model"

	"github.com/stretchr/testify/require"
)

func q(id string, children ...model.Question) model.Question {
	out := model.Question{ID: id, Label: id, Type: "obs"}
	if len(children) > 0 {
		out.Type = "obsGroup"
		out.Questions = children
	}
	return out
}

func indexFixture() model.Schema {
	return model.Schema{Pages: []model.Page{
		{Sections: []model.Section{
			{Questions: []model.Question{q("a"), q("b")}},
			{Questions: []model.Question{q("vitals", q("height"), q("weight")), q("c")}},
		}},
		{Sections: []model.Section{{Questions: []model.Question{q("d")}}}},
	}}
}

func TestBuild_IndexesEveryQuestion(t *testing.T) {
	idx, err := Build(indexFixture())
	require.NoError(t, err)
	require.Equal(t, 7, idx.Len())
	require.Equal(t, []string{"a", "b", "vitals", "height", "weight", "c", "d"}, idx.IDs())

	e, ok := idx.Lookup("weight")
	require.True(t, ok)
	require.Equal(t, "question-0-1-0-1", e.DragID.String())
	require.Equal(t, KindNestedQuestion, e.Kind)
	require.True(t, e.HasContainer)
	require.Equal(t, "question-0-1-0", e.Container.String())

	e, ok = idx.Lookup("d")
	require.True(t, ok)
	require.Equal(t, KindQuestion, e.Kind)
	require.False(t, e.HasContainer)
}

func TestResolve_AllIdentifierForms(t *testing.T) {
	idx, err := Build(indexFixture())
	require.NoError(t, err)
	for _, s := range []string{"height", "question-0-1-0-0", "droppable-question-0-1-0-0"} {
		e, ok := idx.ResolveAny(s)
		require.True(t, ok, s)
		require.Equal(t, "height", e.ID)
	}
	_, ok := idx.ResolveAny("question-5-0-0")
	require.False(t, ok)
	_, ok = idx.ResolveAny("unknown")
	require.False(t, ok)
}

func TestSiblings(t *testing.T) {
	idx, err := Build(indexFixture())
	require.NoError(t, err)
	e, _ := idx.Lookup("height")
	require.Equal(t, []string{"height", "weight"}, idx.Siblings(e))
	e, _ = idx.Lookup("c")
	require.Equal(t, []string{"vitals", "c"}, idx.Siblings(e))
}

func TestBuild_RejectsDuplicateIDs(t *testing.T) {
	s := indexFixture()
	s.Pages[1].Sections[0].Questions = append(s.Pages[1].Sections[0].Questions, q("weight"))
	_, err := Build(s)
	var dup DuplicateIDError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, []string{"weight"}, dup.IDs)
}
