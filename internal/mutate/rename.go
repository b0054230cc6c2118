package mutate

import (
	"strings"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

// RenameSchema sets the form name. A blank name keeps the current one but
// still commits and reports success, like a real rename.
func (m Mutator) RenameSchema(s model.Schema, name string) (Result, error) {
	out := schema.WithSchemaName(s, name)
	m.commit(out)
	m.success("Form renamed")
	return Result{Schema: out, Changed: out.Name != s.Name}, nil
}

// RenamePage sets a page label. Blank input keeps the label.
func (m Mutator) RenamePage(s model.Schema, pageIdx int, name string) (Result, error) {
	prev := ""
	if pageIdx >= 0 && pageIdx < len(s.Pages) {
		prev = s.Pages[pageIdx].Label
	}
	out, err := schema.WithPageLabel(s, pageIdx, name)
	if err != nil {
		m.notify(NotifyError, "Error renaming page", err.Error())
		return Result{Schema: s}, err
	}
	m.commit(out)
	m.success("Page renamed")
	return Result{Schema: out, Changed: strings.TrimSpace(name) != "" && name != prev}, nil
}

// RenameSection sets a section label. Blank input keeps the label.
func (m Mutator) RenameSection(s model.Schema, pageIdx, sectionIdx int, name string) (Result, error) {
	prev := ""
	if pageIdx >= 0 && pageIdx < len(s.Pages) && sectionIdx >= 0 && sectionIdx < len(s.Pages[pageIdx].Sections) {
		prev = s.Pages[pageIdx].Sections[sectionIdx].Label
	}
	out, err := schema.WithSectionLabel(s, pageIdx, sectionIdx, name)
	if err != nil {
		m.notify(NotifyError, "Error renaming section", err.Error())
		return Result{Schema: s}, err
	}
	m.commit(out)
	m.success("Section renamed")
	return Result{Schema: out, Changed: strings.TrimSpace(name) != "" && name != prev}, nil
}
