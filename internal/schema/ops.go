package schema

import (
	"strings"

	"formbuilder/internal/model"
)

// WithSchemaName renames the schema. A blank name leaves it unchanged.
func WithSchemaName(s model.Schema, name string) model.Schema {
	if strings.TrimSpace(name) == "" {
		return s
	}
	out := s
	out.Name = name
	return out
}

// WithPageLabel renames a page. A blank label leaves it unchanged.
func WithPageLabel(s model.Schema, pageIdx int, label string) (model.Schema, error) {
	return updatePage(s, pageIdx, func(p model.Page) (model.Page, error) {
		if strings.TrimSpace(label) != "" {
			p.Label = label
		}
		return p, nil
	})
}

// WithSectionLabel renames a section. A blank label leaves it unchanged.
func WithSectionLabel(s model.Schema, pageIdx, sectionIdx int, label string) (model.Schema, error) {
	return updateSection(s, pageIdx, sectionIdx, func(sec model.Section) (model.Section, error) {
		if strings.TrimSpace(label) != "" {
			sec.Label = label
		}
		return sec, nil
	})
}

// AddPage appends a page with no sections.
func AddPage(s model.Schema, label string) model.Schema {
	out := s
	out.Pages = make([]model.Page, 0, len(s.Pages)+1)
	out.Pages = append(out.Pages, s.Pages...)
	out.Pages = append(out.Pages, model.Page{Label: label, Sections: []model.Section{}})
	return out
}

func DeletePage(s model.Schema, pageIdx int) (model.Schema, error) {
	if err := checkIndex("page", pageIdx, len(s.Pages)); err != nil {
		return s, err
	}
	out := s
	out.Pages = make([]model.Page, 0, len(s.Pages)-1)
	out.Pages = append(out.Pages, s.Pages[:pageIdx]...)
	out.Pages = append(out.Pages, s.Pages[pageIdx+1:]...)
	return out, nil
}

// AddSection appends an empty section to a page.
func AddSection(s model.Schema, pageIdx int, label string) (model.Schema, error) {
	return updatePage(s, pageIdx, func(p model.Page) (model.Page, error) {
		sections := make([]model.Section, 0, len(p.Sections)+1)
		sections = append(sections, p.Sections...)
		p.Sections = append(sections, model.Section{Label: label, IsExpanded: "true", Questions: []model.Question{}})
		return p, nil
	})
}

func DeleteSection(s model.Schema, pageIdx, sectionIdx int) (model.Schema, error) {
	return updatePage(s, pageIdx, func(p model.Page) (model.Page, error) {
		if err := checkIndex("section", sectionIdx, len(p.Sections)); err != nil {
			return p, err
		}
		sections := make([]model.Section, 0, len(p.Sections)-1)
		sections = append(sections, p.Sections[:sectionIdx]...)
		p.Sections = append(sections, p.Sections[sectionIdx+1:]...)
		return p, nil
	})
}

// AppendQuestion adds q at the end of a section's question list.
func AppendQuestion(s model.Schema, pageIdx, sectionIdx int, q model.Question) (model.Schema, error) {
	return updateSection(s, pageIdx, sectionIdx, func(sec model.Section) (model.Section, error) {
		qs := make([]model.Question, 0, len(sec.Questions)+1)
		qs = append(qs, sec.Questions...)
		sec.Questions = append(qs, q)
		return sec, nil
	})
}

// ReplaceQuestion overwrites the question at loc, e.g. after it was edited in a dialog.
func ReplaceQuestion(s model.Schema, loc Location, q model.Question) (model.Schema, error) {
	return updateQuestions(s, loc, func(qs []model.Question) ([]model.Question, error) {
		i := loc.Index()
		if err := checkIndex("question", i, len(qs)); err != nil {
			return qs, err
		}
		out := append([]model.Question{}, qs...)
		out[i] = q
		return out, nil
	})
}

// DeleteQuestion removes the question at loc together with its sub-questions.
func DeleteQuestion(s model.Schema, loc Location) (model.Schema, error) {
	return updateQuestions(s, loc, func(qs []model.Question) ([]model.Question, error) {
		i := loc.Index()
		if err := checkIndex("question", i, len(qs)); err != nil {
			return qs, err
		}
		out := make([]model.Question, 0, len(qs)-1)
		out = append(out, qs[:i]...)
		return append(out, qs[i+1:]...), nil
	})
}
