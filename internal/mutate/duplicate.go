package mutate

import (
	"strconv"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

const DuplicateSuffix = "Duplicate"

const duplicatedMessage = "Question duplicated. Please change the duplicated question's ID to a unique, camelcased value"

type DuplicateResult struct {
	Schema    model.Schema
	Duplicate model.Question
}

// DuplicateQuestion deep copies the question with the given id found in the
// section (sub-questions included) and appends the copy to the end of that
// section. The copy's id is the original id plus DuplicateSuffix, which
// collides on repeated duplication unless Options.UniqueDuplicateIDs is set.
func (m Mutator) DuplicateQuestion(s model.Schema, pageIdx, sectionIdx int, questionID string) (DuplicateResult, error) {
	src, err := findInSection(s, pageIdx, sectionIdx, questionID)
	if err != nil {
		m.notify(NotifyError, "Error duplicating question", err.Error())
		return DuplicateResult{Schema: s}, err
	}

	dup := schema.CloneQuestion(src)
	dup.ID = m.duplicateID(s, src.ID)

	out, err := schema.AppendQuestion(s, pageIdx, sectionIdx, dup)
	if err != nil {
		m.notify(NotifyError, "Error duplicating question", err.Error())
		return DuplicateResult{Schema: s}, err
	}
	m.commit(out)
	m.success(duplicatedMessage)
	return DuplicateResult{Schema: out, Duplicate: dup}, nil
}

func (m Mutator) duplicateID(s model.Schema, id string) string {
	base := id + DuplicateSuffix
	if !m.Options.UniqueDuplicateIDs {
		return base
	}
	used := map[string]bool{}
	for _, x := range schema.QuestionIDs(s) {
		used[x] = true
	}
	cand := base
	for n := 2; used[cand]; n++ {
		cand = base + strconv.Itoa(n)
	}
	return cand
}

func findInSection(s model.Schema, pageIdx, sectionIdx int, id string) (model.Question, error) {
	if pageIdx < 0 || pageIdx >= len(s.Pages) {
		return model.Question{}, schema.IndexError{Kind: "page", Index: pageIdx, Len: len(s.Pages)}
	}
	p := s.Pages[pageIdx]
	if sectionIdx < 0 || sectionIdx >= len(p.Sections) {
		return model.Question{}, schema.IndexError{Kind: "section", Index: sectionIdx, Len: len(p.Sections)}
	}
	if q, ok := findQuestion(p.Sections[sectionIdx].Questions, id); ok {
		return q, nil
	}
	return model.Question{}, NotFoundError{Kind: "question", ID: id}
}

func findQuestion(qs []model.Question, id string) (model.Question, bool) {
	for _, q := range qs {
		if q.ID == id {
			return q, true
		}
		if found, ok := findQuestion(q.Questions, id); ok {
			return found, true
		}
	}
	return model.Question{}, false
}
