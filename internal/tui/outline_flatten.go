package tui

import (
	"strconv"

	"formbuilder/internal/address"
	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

type rowKind int

const (
	rowSchema rowKind = iota
	rowPage
	rowSection
	rowQuestion
)

// outlineRow is one visible line of the builder tree.
type outlineRow struct {
	kind    rowKind
	page    int
	section int
	depth   int

	// Set for question rows.
	loc      schema.Location
	question model.Question
	dragID   address.DragID

	label       string
	hasChildren bool
	collapsed   bool
}

func (r outlineRow) key() string {
	switch r.kind {
	case rowSchema:
		return "schema"
	case rowPage:
		return "page:" + itoa(r.page)
	case rowSection:
		return "section:" + itoa(r.page) + "/" + itoa(r.section)
	default:
		return "question:" + r.question.ID
	}
}

// flattenSchema lists the schema as rows in document order, skipping the
// children of collapsed rows.
func flattenSchema(s model.Schema, collapsed map[string]bool) []outlineRow {
	out := []outlineRow{{kind: rowSchema, label: s.Name, hasChildren: len(s.Pages) > 0}}
	for pi, p := range s.Pages {
		pr := outlineRow{kind: rowPage, page: pi, depth: 1, label: p.Label, hasChildren: len(p.Sections) > 0}
		pr.collapsed = collapsed[pr.key()]
		out = append(out, pr)
		if pr.collapsed {
			continue
		}
		for si, sec := range p.Sections {
			sr := outlineRow{kind: rowSection, page: pi, section: si, depth: 2, label: sec.Label, hasChildren: len(sec.Questions) > 0}
			sr.collapsed = collapsed[sr.key()]
			out = append(out, sr)
			if sr.collapsed {
				continue
			}
			out = appendQuestionRows(out, sec.Questions, pi, si, nil, collapsed)
		}
	}
	return out
}

func appendQuestionRows(out []outlineRow, qs []model.Question, pi, si int, prefix []int, collapsed map[string]bool) []outlineRow {
	for qi, q := range qs {
		path := append(append([]int{}, prefix...), qi)
		loc := schema.Location{Page: pi, Section: si, Path: path}
		r := outlineRow{
			kind:        rowQuestion,
			page:        pi,
			section:     si,
			depth:       2 + len(path),
			loc:         loc,
			question:    q,
			dragID:      address.FromLocation(loc),
			label:       q.DisplayLabel(),
			hasChildren: len(q.Questions) > 0,
		}
		r.collapsed = r.hasChildren && collapsed[r.key()]
		out = append(out, r)
		if r.hasChildren && !r.collapsed {
			out = appendQuestionRows(out, q.Questions, pi, si, path, collapsed)
		}
	}
	return out
}

func itoa(i int) string { return strconv.Itoa(i) }
