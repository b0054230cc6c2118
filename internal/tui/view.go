package tui

import (
	"strings"

	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/mutate"

	"github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}

	var b strings.Builder
	s, ok := m.ed.Schema()
	if !ok {
		b.WriteString(styleHeader.Render("formbuilder"))
		b.WriteString("\n\n")
		b.WriteString(styleMuted.Render("No form in this workspace. Press a to start a new form."))
		b.WriteString("\n")
	} else {
		header := "formbuilder: " + s.Name
		if s.UUID != "" {
			header += styleMuted.Render("  " + s.UUID)
		}
		b.WriteString(ansi.Truncate(styleHeader.Render(header), w, "…"))
		b.WriteString("\n\n")
		for _, ln := range m.treeLines(w) {
			b.WriteString(ln)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if ln := m.footer(w); ln != "" {
		b.WriteString(ln)
		b.WriteString("\n")
	}
	return b.String()
}

// treeLines renders the visible rows, scrolled so the cursor stays on screen.
func (m appModel) treeLines(w int) []string {
	active, dragging := m.ed.Engine().Active()
	hover, hovering := m.ed.Engine().Hovered()

	var lines []string
	cursorLine := 0
	for i, r := range m.rows {
		if i == m.cursor {
			cursorLine = len(lines)
		}
		line := m.renderRow(r, w)
		switch {
		case i == m.cursor && dragging:
			line = styleDragging.Render(ansi.Strip(line))
		case i == m.cursor:
			line = styleSelected.Render(ansi.Strip(line))
		case dragging && r.kind == rowQuestion && r.question.ID == active.ID:
			line = styleMuted.Render(ansi.Strip(line))
		}
		lines = append(lines, line)

		if r.kind == rowQuestion && m.validation != nil {
			ann := m.validation.Annotate(r.question)
			indent := strings.Repeat("  ", r.depth+1)
			if ann.Error != "" {
				lines = append(lines, ansi.Truncate(indent+styleError.Render("! "+ann.Error), w, "…"))
			}
			if ann.Warning != "" {
				lines = append(lines, ansi.Truncate(indent+styleWarning.Render("? "+ann.Warning), w, "…"))
			}
			if len(ann.AnswerErrors) > 0 {
				lines = append(lines, indent+styleError.Render("Answer Errors"))
				for _, ae := range ann.AnswerErrors {
					lines = append(lines, ansi.Truncate(indent+"  "+styleError.Render(glyphBullet()+" "+ae), w, "…"))
				}
			}
		}
		if hovering && r.kind == rowQuestion && r.question.ID == hover.Target.ID {
			marker := strings.Repeat("  ", r.depth) + glyphDropMarker() + " " + active.ID
			if hover.CrossContainer {
				marker += " (other list)"
			}
			lines = append(lines, ansi.Truncate(styleDropTarget.Render(marker), w, "…"))
		}
	}

	avail := m.height - 6
	if avail <= 0 || len(lines) <= avail {
		return lines
	}
	start := cursorLine - avail/2
	if start < 0 {
		start = 0
	}
	if start+avail > len(lines) {
		start = len(lines) - avail
	}
	return lines[start : start+avail]
}

func (m appModel) renderRow(r outlineRow, w int) string {
	indent := strings.Repeat("  ", r.depth)
	twisty := " "
	if r.hasChildren {
		twisty = glyphTwistyExpanded()
		if r.collapsed {
			twisty = glyphTwistyCollapsed()
		}
	}

	var text string
	switch r.kind {
	case rowSchema:
		text = styleHeader.Render(orPlaceholder(r.label, "(untitled form)"))
	case rowPage:
		text = stylePage.Render(orPlaceholder(r.label, "(untitled page)"))
	case rowSection:
		text = styleSection.Render(orPlaceholder(r.label, "(untitled section)"))
	default:
		label := r.label
		if m.markdown && r.question.QuestionOptions.Rendering == model.RenderingMarkdown {
			label = renderMarkdown(label, max(10, w-len(indent)-8))
		}
		text = glyphDragHandle() + " " + label + styleMuted.Render("  "+r.question.ID)
		if r.question.Required {
			text += styleError.Render(" *")
		}
	}
	return ansi.Truncate(indent+twisty+" "+text, w, "…")
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return styleMuted.Render(placeholder)
	}
	return s
}

func (m appModel) footer(w int) string {
	var parts []string
	switch m.mode {
	case modeInput:
		parts = append(parts, styleMinibuffer.Render(m.inputTitle()), m.input.View())
	case modeConfirm:
		parts = append(parts, styleMinibuffer.Render(m.confirmTitle()+"  (y/n)"))
	}
	if n := m.state.flash; n != nil {
		parts = append(parts, ansi.Truncate(renderNotification(*n), w, "…"))
	}
	switch m.mode {
	case modeDrag:
		parts = append(parts, m.help.ShortHelpView(m.keys.dragHelp()))
	case modeNormal:
		parts = append(parts, m.help.ShortHelpView(m.keys.normalHelp()))
	}
	return strings.Join(parts, "\n")
}

func renderNotification(n mutate.Notification) string {
	text := n.Title
	if n.Message != "" {
		text += " " + n.Message
	}
	switch n.Kind {
	case mutate.NotifyError:
		return styleError.Render(text)
	case mutate.NotifyWarning:
		return styleWarning.Render(text)
	case mutate.NotifySuccess:
		return styleSuccess.Render(text)
	default:
		return text
	}
}

func (m appModel) inputTitle() string {
	switch m.inputPurpose {
	case inputRenameSchema:
		return "Rename form"
	case inputRenamePage:
		return "Rename page"
	case inputRenameSection:
		return "Rename section"
	case inputQuestionID:
		if req := m.state.dialog; req != nil && req.Question != nil {
			return "New id for " + req.Question.ID
		}
	}
	req := m.state.dialog
	if req == nil {
		return ""
	}
	switch req.Kind {
	case editor.ModalNewForm:
		return "New form name"
	case editor.ModalNewPage:
		return "New page label"
	case editor.ModalNewSection:
		return "New section label"
	case editor.ModalQuestion:
		if req.Question != nil {
			return "Edit question " + req.Question.ID
		}
		return "New question label"
	}
	return ""
}

func (m appModel) confirmTitle() string {
	req := m.state.dialog
	if req == nil {
		return ""
	}
	switch req.Kind {
	case editor.ModalDeletePage:
		return "Delete this page and everything in it?"
	case editor.ModalDeleteSection:
		return "Delete this section and its questions?"
	case editor.ModalDeleteQuestion:
		if req.Question != nil {
			return "Delete question " + req.Question.ID + "?"
		}
	}
	return "Delete?"
}
