package mutate

import (
	"errors"
	"testing"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"

	"github.com/stretchr/testify/require"
)

func fixture() model.Schema {
	weight := model.Question{
		ID: "weight", Label: "Weight", Type: "obs",
		QuestionOptions: model.QuestionOptions{
			Rendering: model.RenderingSelect,
			Concept:   "5089AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			Answers:   []model.Answer{{Concept: "1065AAA", Label: "Yes"}},
		},
	}
	height := model.Question{ID: "height", Label: "Height", Type: "obs", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingText}}
	vitals := model.Question{
		ID: "vitals", Label: "Vitals", Type: "obsGroup",
		QuestionOptions: model.QuestionOptions{Rendering: model.RenderingGroup},
		Questions:       []model.Question{{ID: "pulse", Label: "Pulse", Type: "obs"}},
	}
	return model.Schema{
		Name: "Intake",
		Pages: []model.Page{{Label: "P1", Sections: []model.Section{
			{Label: "S1", Questions: []model.Question{weight, height}},
			{Label: "S2", Questions: []model.Question{vitals}},
		}}},
	}
}

type harness struct {
	changes []model.Schema
	notes   Recorder
}

func (h *harness) mutator(opts Options) Mutator {
	return Mutator{
		OnChange: func(s model.Schema) { h.changes = append(h.changes, s) },
		Notifier: &h.notes,
		Options:  opts,
	}
}

func TestRenameSchema(t *testing.T) {
	var h harness
	res, err := h.mutator(Options{}).RenameSchema(fixture(), "Adult intake")
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, "Adult intake", res.Schema.Name)
	require.Len(t, h.changes, 1)
	last, ok := h.notes.Last()
	require.True(t, ok)
	require.Equal(t, Notification{Kind: NotifySuccess, Title: "Success!", Message: "Form renamed"}, last)
}

func TestRenames_BlankStillReportsSuccess(t *testing.T) {
	var h harness
	m := h.mutator(Options{})
	s := fixture()

	res, err := m.RenamePage(s, 0, "  ")
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, "P1", res.Schema.Pages[0].Label)

	res, err = m.RenameSection(s, 0, 1, "")
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, "S2", res.Schema.Pages[0].Sections[1].Label)

	require.Len(t, h.changes, 2)
	require.Len(t, h.notes.Notes, 2)
	require.Equal(t, "Page renamed", h.notes.Notes[0].Message)
	require.Equal(t, "Section renamed", h.notes.Notes[1].Message)
}

func TestRenameSection_OutOfRangeNotifiesError(t *testing.T) {
	var h harness
	m := h.mutator(Options{})
	s := fixture()

	res, err := m.RenameSection(s, 0, 7, "x")
	var ie schema.IndexError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, s, res.Schema)
	require.Empty(t, h.changes)

	last, _ := h.notes.Last()
	require.Equal(t, NotifyError, last.Kind)
	require.Equal(t, "Error renaming section", last.Title)

	_, err = m.RenamePage(s, -1, "x")
	require.Error(t, err)
	last, _ = h.notes.Last()
	require.Equal(t, "Error renaming page", last.Title)
}

func TestDuplicateQuestion_AppendsDeepCopy(t *testing.T) {
	var h harness
	s := fixture()

	res, err := h.mutator(Options{}).DuplicateQuestion(s, 0, 0, "weight")
	require.NoError(t, err)

	qs := res.Schema.Pages[0].Sections[0].Questions
	require.Len(t, qs, 3)
	require.Equal(t, "weightDuplicate", qs[2].ID)
	require.Equal(t, "Weight", qs[2].Label)
	require.Equal(t, qs[0].QuestionOptions, qs[2].QuestionOptions)

	qs[2].QuestionOptions.Answers[0].Label = "changed"
	require.Equal(t, "Yes", qs[0].QuestionOptions.Answers[0].Label)
	require.Len(t, s.Pages[0].Sections[0].Questions, 2)

	require.Len(t, h.changes, 1)
	last, _ := h.notes.Last()
	require.Equal(t, NotifySuccess, last.Kind)
	require.Contains(t, last.Message, "unique, camelcased")
}

func TestDuplicateQuestion_SubQuestionGoesToSectionEnd(t *testing.T) {
	var h harness
	res, err := h.mutator(Options{}).DuplicateQuestion(fixture(), 0, 1, "pulse")
	require.NoError(t, err)
	qs := res.Schema.Pages[0].Sections[1].Questions
	require.Len(t, qs, 2)
	require.Equal(t, "pulseDuplicate", qs[1].ID)
	require.Len(t, qs[0].Questions, 1)
}

func TestDuplicateQuestion_RepeatedIDs(t *testing.T) {
	var h harness
	s := fixture()

	plain := h.mutator(Options{})
	r1, err := plain.DuplicateQuestion(s, 0, 0, "weight")
	require.NoError(t, err)
	r2, err := plain.DuplicateQuestion(r1.Schema, 0, 0, "weight")
	require.NoError(t, err)
	require.Equal(t, []string{"weightDuplicate"}, schema.DuplicateIDs(r2.Schema))

	unique := h.mutator(Options{UniqueDuplicateIDs: true})
	r1, err = unique.DuplicateQuestion(s, 0, 0, "weight")
	require.NoError(t, err)
	r2, err = unique.DuplicateQuestion(r1.Schema, 0, 0, "weight")
	require.NoError(t, err)
	r3, err := unique.DuplicateQuestion(r2.Schema, 0, 0, "weight")
	require.NoError(t, err)
	require.Equal(t, "weightDuplicate3", r3.Duplicate.ID)
	require.Empty(t, schema.DuplicateIDs(r3.Schema))
}

func TestDuplicateQuestion_NotInSection(t *testing.T) {
	var h harness
	s := fixture()
	res, err := h.mutator(Options{}).DuplicateQuestion(s, 0, 1, "weight")
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, s, res.Schema)
	require.Empty(t, h.changes)
	last, _ := h.notes.Last()
	require.Equal(t, "Error duplicating question", last.Title)

	_, err = h.mutator(Options{}).DuplicateQuestion(s, 3, 0, "weight")
	require.Error(t, err)
}

func TestNotifierFunc(t *testing.T) {
	var got []Notification
	var n Notifier = NotifierFunc(func(x Notification) { got = append(got, x) })
	n.Notify(Notification{Kind: NotifyInfo, Title: "t"})
	require.Len(t, got, 1)

	var r Recorder
	_, ok := r.Last()
	require.False(t, ok)
}
