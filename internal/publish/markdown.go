package publish

import (
	"bytes"
	"strings"

	"formbuilder/internal/model"
	"formbuilder/internal/validation"
)

type RenderOptions struct {
	// Validation, when set, adds error/warning lines under questions.
	Validation *validation.Lookup
}

// RenderSchemaMarkdown renders the form as a readable markdown outline:
// pages as headings, sections as subheadings, questions as nested lists.
func RenderSchemaMarkdown(s model.Schema, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = "(untitled form)"
	}
	writeLn("# " + name)
	writeLn("")
	writeLn("- Processor: " + s.Processor)
	if s.EncounterType != "" {
		writeLn("- Encounter type: " + s.EncounterType)
	}
	if s.UUID != "" {
		writeLn("- UUID: " + s.UUID)
	}
	if len(s.ReferencedForms) > 0 {
		writeLn("- Referenced forms: " + strings.Join(s.ReferencedForms, ", "))
	}

	for _, p := range s.Pages {
		writeLn("")
		writeLn("## " + p.Label)
		for _, sec := range p.Sections {
			writeLn("")
			writeLn("### " + sec.Label)
			writeLn("")
			if len(sec.Questions) == 0 {
				writeLn("_No questions._")
				continue
			}
			writeQuestions(&buf, sec.Questions, 0, opt)
		}
	}
	return buf.String()
}

func writeQuestions(buf *bytes.Buffer, qs []model.Question, depth int, opt RenderOptions) {
	indent := strings.Repeat("  ", depth)
	for _, q := range qs {
		label := strings.TrimSpace(q.DisplayLabel())
		if q.QuestionOptions.Rendering == model.RenderingMarkdown {
			// Keep multi-line markdown inside the list item.
			label = strings.ReplaceAll(label, "\n", "\n"+indent+"  ")
		}
		line := indent + "- " + label + " (`" + q.ID + "`, " + q.Type
		if r := strings.TrimSpace(string(q.QuestionOptions.Rendering)); r != "" {
			line += "/" + r
		}
		line += ")"
		if q.Required {
			line += " *"
		}
		buf.WriteString(line + "\n")

		for _, a := range q.QuestionOptions.Answers {
			buf.WriteString(indent + "  - [ ] " + a.Label + "\n")
		}
		if opt.Validation != nil {
			ann := opt.Validation.Annotate(q)
			if ann.Error != "" {
				buf.WriteString(indent + "  > Error: " + ann.Error + "\n")
			}
			if ann.Warning != "" {
				buf.WriteString(indent + "  > Warning: " + ann.Warning + "\n")
			}
			for _, ae := range ann.AnswerErrors {
				buf.WriteString(indent + "  > Answer error: " + ae + "\n")
			}
		}
		if q.Questions != nil {
			writeQuestions(buf, q.Questions, depth+1, opt)
		}
	}
}
