package schema

import (
	"formbuilder/internal/model"
)

// RemoveQuestion returns a schema without the first question whose id matches,
// searching section lists and group sub-question lists in document order.
// The removed question is returned so it can be reinserted elsewhere.
func RemoveQuestion(s model.Schema, id string) (model.Schema, model.Question, bool) {
	var (
		removed model.Question
		found   bool
	)
	out := rebuildSections(s, func(qs []model.Question) ([]model.Question, bool) {
		if found {
			return qs, false
		}
		next, q, ok := removeFrom(qs, id)
		if !ok {
			return qs, false
		}
		removed, found = q, true
		return next, true
	})
	return out, removed, found
}

// InsertAfter returns a schema with q placed immediately after the first
// question whose id equals targetID. Group sub-question lists are searched too.
func InsertAfter(s model.Schema, targetID string, q model.Question) (model.Schema, bool) {
	inserted := false
	out := rebuildSections(s, func(qs []model.Question) ([]model.Question, bool) {
		if inserted {
			return qs, false
		}
		next, ok := insertAfter(qs, targetID, q)
		if !ok {
			return qs, false
		}
		inserted = true
		return next, true
	})
	return out, inserted
}

func removeFrom(qs []model.Question, id string) ([]model.Question, model.Question, bool) {
	for i := range qs {
		if qs[i].ID == id {
			out := make([]model.Question, 0, len(qs)-1)
			out = append(out, qs[:i]...)
			out = append(out, qs[i+1:]...)
			return out, qs[i], true
		}
		if qs[i].Questions == nil {
			continue
		}
		if children, q, ok := removeFrom(qs[i].Questions, id); ok {
			out := append([]model.Question{}, qs...)
			out[i].Questions = children
			return out, q, true
		}
	}
	return qs, model.Question{}, false
}

func insertAfter(qs []model.Question, targetID string, q model.Question) ([]model.Question, bool) {
	for i := range qs {
		if qs[i].ID == targetID {
			out := make([]model.Question, 0, len(qs)+1)
			out = append(out, qs[:i+1]...)
			out = append(out, q)
			out = append(out, qs[i+1:]...)
			return out, true
		}
		if qs[i].Questions == nil {
			continue
		}
		if children, ok := insertAfter(qs[i].Questions, targetID, q); ok {
			out := append([]model.Question{}, qs...)
			out[i].Questions = children
			return out, true
		}
	}
	return qs, false
}

// rebuildSections applies fn to every section's question list. Sections and
// pages fn leaves unchanged keep their original values.
func rebuildSections(s model.Schema, fn func([]model.Question) ([]model.Question, bool)) model.Schema {
	var pages []model.Page
	for pi, p := range s.Pages {
		var sections []model.Section
		for si, sec := range p.Sections {
			qs, changed := fn(sec.Questions)
			if !changed {
				continue
			}
			if sections == nil {
				sections = append([]model.Section{}, p.Sections...)
			}
			sections[si].Questions = qs
		}
		if sections == nil {
			continue
		}
		if pages == nil {
			pages = append([]model.Page{}, s.Pages...)
		}
		pages[pi].Sections = sections
	}
	if pages == nil {
		return s
	}
	out := s
	out.Pages = pages
	return out
}

// updateSection replaces one section through fn, copying only the path to it.
func updateSection(s model.Schema, pageIdx, sectionIdx int, fn func(model.Section) (model.Section, error)) (model.Schema, error) {
	if err := checkIndex("page", pageIdx, len(s.Pages)); err != nil {
		return s, err
	}
	p := s.Pages[pageIdx]
	if err := checkIndex("section", sectionIdx, len(p.Sections)); err != nil {
		return s, err
	}
	sec, err := fn(p.Sections[sectionIdx])
	if err != nil {
		return s, err
	}
	sections := append([]model.Section{}, p.Sections...)
	sections[sectionIdx] = sec
	return updatePage(s, pageIdx, func(p model.Page) (model.Page, error) {
		p.Sections = sections
		return p, nil
	})
}

func updatePage(s model.Schema, pageIdx int, fn func(model.Page) (model.Page, error)) (model.Schema, error) {
	if err := checkIndex("page", pageIdx, len(s.Pages)); err != nil {
		return s, err
	}
	p, err := fn(s.Pages[pageIdx])
	if err != nil {
		return s, err
	}
	out := s
	out.Pages = append([]model.Page{}, s.Pages...)
	out.Pages[pageIdx] = p
	return out, nil
}

// updateQuestions replaces the sibling list that contains loc through fn.
func updateQuestions(s model.Schema, loc Location, fn func([]model.Question) ([]model.Question, error)) (model.Schema, error) {
	if len(loc.Path) == 0 {
		return s, IndexError{Kind: "question", Index: -1, Len: 0}
	}
	return updateSection(s, loc.Page, loc.Section, func(sec model.Section) (model.Section, error) {
		qs, err := updateList(sec.Questions, loc.Path[:len(loc.Path)-1], fn)
		if err != nil {
			return sec, err
		}
		sec.Questions = qs
		return sec, nil
	})
}

func updateList(qs []model.Question, parents []int, fn func([]model.Question) ([]model.Question, error)) ([]model.Question, error) {
	if len(parents) == 0 {
		return fn(qs)
	}
	i := parents[0]
	if err := checkIndex("question", i, len(qs)); err != nil {
		return qs, err
	}
	if qs[i].Questions == nil {
		return qs, NotFoundError{Kind: "question group", ID: qs[i].ID}
	}
	children, err := updateList(qs[i].Questions, parents[1:], fn)
	if err != nil {
		return qs, err
	}
	out := append([]model.Question{}, qs...)
	out[i].Questions = children
	return out, nil
}
