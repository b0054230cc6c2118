package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"formbuilder/internal/model"
	"formbuilder/internal/validation"
)

func sample() model.Schema {
	return model.Schema{
		Name:          "Adult Intake",
		Processor:     model.DefaultProcessor,
		EncounterType: "enc-1",
		Pages: []model.Page{{Label: "Visit", Sections: []model.Section{
			{Label: "Vitals", Questions: []model.Question{
				{ID: "smoker", Label: "Smoker?", Type: "obs", Required: true, QuestionOptions: model.QuestionOptions{
					Rendering: model.RenderingRadio,
					Answers:   []model.Answer{{Label: "Yes"}, {Label: "No"}},
				}},
				{ID: "bp", Label: "Blood pressure", Type: "obsGroup", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingGroup},
					Questions: []model.Question{{ID: "systolic", Label: "Systolic", Type: "obs", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingText}}}},
				{ID: "note", Type: "markdown", Value: "**Read** this\nfirst", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingMarkdown}},
			}},
			{Label: "Empty"},
		}}},
	}
}

func TestRenderSchemaMarkdown(t *testing.T) {
	out := RenderSchemaMarkdown(sample(), RenderOptions{})
	for _, want := range []string{
		"# Adult Intake\n",
		"- Encounter type: enc-1\n",
		"## Visit\n",
		"### Vitals\n",
		"- Smoker? (`smoker`, obs/radio) *\n",
		"  - [ ] Yes\n",
		"- Blood pressure (`bp`, obsGroup/group)\n",
		"  - Systolic (`systolic`, obs/text)\n",
		"- **Read** this\n  first (`note`, markdown/markdown)\n",
		"_No questions._",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSchemaMarkdown_WithValidation(t *testing.T) {
	l := validation.NewLookup([]model.ValidationError{
		{ErrorMessage: "Unknown concept", Field: model.ValidationField{Label: "Systolic", ID: "systolic", Type: "obs"}},
		{ErrorMessage: "No concept", Field: model.ValidationField{Label: "No"}},
	})
	out := RenderSchemaMarkdown(sample(), RenderOptions{Validation: &l})
	if !strings.Contains(out, "    > Error: Unknown concept\n") {
		t.Fatalf("missing question error:\n%s", out)
	}
	if !strings.Contains(out, "  > Answer error: No: No concept\n") {
		t.Fatalf("missing answer error:\n%s", out)
	}
}

func TestWriteSchema_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	res, err := WriteSchema(sample(), dir, WriteOptions{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := filepath.Join(dir, "adult-intake.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("written = %v", res.Written)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if _, err := WriteSchema(sample(), dir, WriteOptions{}); err == nil {
		t.Fatalf("expected overwrite error")
	}
	if _, err := WriteSchema(sample(), dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := WriteSchema(sample(), " ", WriteOptions{}); err == nil {
		t.Fatalf("expected missing dir error")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Adult Intake":     "adult-intake",
		"  HIV -- Visit 2": "hiv-visit-2",
		"***":              "form",
		"":                 "form",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
