package dnd

import (
	"errors"
	"testing"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"

	"github.com/stretchr/testify/require"
)

func q(id string) model.Question {
	return model.Question{ID: id, Label: id, Type: "obs", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingText}}
}

func group(id string, children ...model.Question) model.Question {
	g := q(id)
	g.Type = "obsGroup"
	g.QuestionOptions.Rendering = model.RenderingGroup
	g.Questions = append([]model.Question{}, children...)
	return g
}

func section(label string, qs ...model.Question) model.Section {
	return model.Section{Label: label, IsExpanded: "true", Questions: append([]model.Question{}, qs...)}
}

func form(pages ...model.Page) model.Schema {
	return model.Schema{Name: "Form", Processor: model.DefaultProcessor, Pages: pages}
}

func ids(qs []model.Question) []string {
	out := []string{}
	for _, x := range qs {
		out = append(out, x.ID)
	}
	return out
}

func TestRelocate_WithinSection(t *testing.T) {
	s := form(model.Page{Label: "P", Sections: []model.Section{section("S1", q("A"), q("B"), q("C"))}})
	out, err := Relocate(s, "A", "C")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "A"}, ids(out.Pages[0].Sections[0].Questions))
	require.Equal(t, []string{"A", "B", "C"}, ids(s.Pages[0].Sections[0].Questions))

	out, err = Relocate(s, "C", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "B"}, ids(out.Pages[0].Sections[0].Questions))
}

func TestRelocate_AcrossSections(t *testing.T) {
	s := form(model.Page{Label: "P", Sections: []model.Section{
		section("S1", q("A"), q("B")),
		section("S2", q("C"), q("D")),
	}})
	out, err := Relocate(s, "A", "D")
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, ids(out.Pages[0].Sections[0].Questions))
	require.Equal(t, []string{"C", "D", "A"}, ids(out.Pages[0].Sections[1].Questions))
}

func TestRelocate_AcrossPagesKeepsOtherPages(t *testing.T) {
	s := form(
		model.Page{Label: "P1", Sections: []model.Section{section("S1", q("A"), q("B"))}},
		model.Page{Label: "P2", Sections: []model.Section{section("S2", q("C"))}},
		model.Page{Label: "P3", Sections: []model.Section{section("S3", q("E"))}},
	)
	out, err := Relocate(s, "C", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "B"}, ids(out.Pages[0].Sections[0].Questions))
	require.Empty(t, out.Pages[1].Sections[0].Questions)
	require.Equal(t, s.Pages[2], out.Pages[2])
	require.Same(t, &s.Pages[2].Sections[0], &out.Pages[2].Sections[0])
}

func TestRelocate_NestedQuestions(t *testing.T) {
	s := form(model.Page{Label: "P", Sections: []model.Section{
		section("S1", q("A"), group("G", q("G1"), q("G2"), q("G3"))),
		section("S2", q("B")),
	}})

	// Reorder inside the group.
	out, err := Relocate(s, "G1", "G3")
	require.NoError(t, err)
	require.Equal(t, []string{"G2", "G3", "G1"}, ids(out.Pages[0].Sections[0].Questions[1].Questions))

	// Out of the group into another section.
	out, err = Relocate(s, "G2", "B")
	require.NoError(t, err)
	require.Equal(t, []string{"G1", "G3"}, ids(out.Pages[0].Sections[0].Questions[1].Questions))
	require.Equal(t, []string{"B", "G2"}, ids(out.Pages[0].Sections[1].Questions))

	// Into the group by dropping on a sub-question.
	out, err = Relocate(s, "B", "G1")
	require.NoError(t, err)
	require.Equal(t, []string{"G1", "B", "G2", "G3"}, ids(out.Pages[0].Sections[0].Questions[1].Questions))
	require.Empty(t, out.Pages[0].Sections[1].Questions)

	// A whole group moves with its sub-questions.
	out, err = Relocate(s, "G", "B")
	require.NoError(t, err)
	moved := out.Pages[0].Sections[1].Questions[1]
	require.Equal(t, "G", moved.ID)
	require.Equal(t, []string{"G1", "G2", "G3"}, ids(moved.Questions))

	require.Equal(t, []string{"G1", "G2", "G3"}, ids(s.Pages[0].Sections[0].Questions[1].Questions))
}

func TestRelocate_Errors(t *testing.T) {
	s := form(model.Page{Label: "P", Sections: []model.Section{
		section("S1", q("A"), group("G", q("G1"))),
	}})

	out, err := Relocate(s, "A", "A")
	require.ErrorIs(t, err, ErrSameNode)
	require.Equal(t, s, out)

	out, err = Relocate(s, "X", "A")
	require.ErrorIs(t, err, ErrDraggedNotFound)
	require.Equal(t, s, out)

	out, err = Relocate(s, "A", "missing")
	require.ErrorIs(t, err, ErrTargetNotFound)
	require.Equal(t, s, out)
	require.Equal(t, schema.CountQuestions(s), schema.CountQuestions(out))

	// A group dropped on its own sub-question.
	out, err = Relocate(s, "G", "G1")
	require.True(t, errors.Is(err, ErrTargetNotFound))
	require.Equal(t, s, out)
}

func TestRelocate_PreservesQuestionMultisetForEveryPair(t *testing.T) {
	s := form(
		model.Page{Label: "P1", Sections: []model.Section{
			section("S1", q("A"), q("B"), group("G", q("G1"), q("G2"))),
			section("S2", q("C")),
		}},
		model.Page{Label: "P2", Sections: []model.Section{section("S3", q("D"), q("E"))}},
	)
	all := schema.QuestionIDs(s)
	for _, dragged := range all {
		for _, target := range all {
			out, err := Relocate(s, dragged, target)
			if err != nil {
				require.Equal(t, s, out)
				continue
			}
			require.ElementsMatch(t, all, schema.QuestionIDs(out), "%s -> %s", dragged, target)

			// The dragged question sits right after the target.
			_, dl, ok := schema.FindQuestion(out, dragged)
			require.True(t, ok)
			_, tl, ok := schema.FindQuestion(out, target)
			require.True(t, ok)
			require.True(t, dl.SameContainer(tl), "%s -> %s", dragged, target)
			require.Equal(t, tl.Index()+1, dl.Index(), "%s -> %s", dragged, target)
		}
	}
}
