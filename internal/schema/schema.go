// Package schema holds the pure structural operations on a form schema.
//
// Every function takes a schema value and returns a new one. Inputs are never
// written to: slices that change are reallocated, and branches that do not
// change are carried over as-is so callers can compare them cheaply.
package schema

import (
	"formbuilder/internal/model"
)

// New returns an empty schema with the default processor.
func New() model.Schema {
	return model.Schema{
		Name:            "",
		Pages:           []model.Page{},
		Processor:       model.DefaultProcessor,
		EncounterType:   "",
		ReferencedForms: []string{},
		UUID:            "",
	}
}

// Init returns cur when a schema already exists, otherwise a new empty one.
// created reports whether a new schema was produced.
func Init(cur *model.Schema) (s model.Schema, created bool) {
	if cur != nil {
		return *cur, false
	}
	return New(), true
}

// Clone deep copies a schema.
func Clone(s model.Schema) model.Schema {
	out := s
	if s.Pages != nil {
		out.Pages = make([]model.Page, len(s.Pages))
		for i := range s.Pages {
			out.Pages[i] = ClonePage(s.Pages[i])
		}
	}
	if s.ReferencedForms != nil {
		out.ReferencedForms = append([]string{}, s.ReferencedForms...)
	}
	return out
}

func ClonePage(p model.Page) model.Page {
	out := p
	if p.Sections != nil {
		out.Sections = make([]model.Section, len(p.Sections))
		for i := range p.Sections {
			out.Sections[i] = CloneSection(p.Sections[i])
		}
	}
	return out
}

func CloneSection(sec model.Section) model.Section {
	out := sec
	out.Questions = cloneQuestions(sec.Questions)
	return out
}

// CloneQuestion deep copies a question including its options and sub-questions.
func CloneQuestion(q model.Question) model.Question {
	out := q
	if q.QuestionOptions.Answers != nil {
		out.QuestionOptions.Answers = append([]model.Answer{}, q.QuestionOptions.Answers...)
	}
	out.Questions = cloneQuestions(q.Questions)
	return out
}

func cloneQuestions(qs []model.Question) []model.Question {
	if qs == nil {
		return nil
	}
	out := make([]model.Question, len(qs))
	for i := range qs {
		out[i] = CloneQuestion(qs[i])
	}
	return out
}
