package tui

import (
	"errors"
	"strings"
	"unicode"

	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/mutate"
	"formbuilder/internal/schema"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-4)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeDrag:
			return m.updateDrag(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if _, ok := m.ed.Schema(); !ok {
		// Any edit key on an empty workspace starts a new form.
		if key.Matches(msg, m.keys.Add, m.keys.Rename) {
			m.ed.LaunchNewForm()
			m.refresh()
			m.enterDialog()
		}
		return m, nil
	}
	m.state.flash = nil

	row, _ := m.selected()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if row.hasChildren && row.kind != rowSchema {
			m.collapsed[row.key()] = !m.collapsed[row.key()]
			m.refresh()
		}
	case key.Matches(msg, m.keys.Grab):
		if row.kind != rowQuestion {
			return m, nil
		}
		if err := m.ed.DragStart(row.question.ID); err != nil {
			m.setFlash(mutate.NotifyError, "Error moving question", err.Error())
			return m, nil
		}
		m.mode = modeDrag
	case key.Matches(msg, m.keys.Rename):
		return m.startRename(row)
	case key.Matches(msg, m.keys.EditID):
		if row.kind != rowQuestion {
			return m, nil
		}
		if err := m.ed.LaunchEditQuestion(row.loc); err != nil {
			return m.afterLaunch(err)
		}
		if req := m.state.dialog; req != nil && req.Question != nil {
			m.inputPurpose = inputQuestionID
			m.openInput(req.Question.ID)
		}
	case key.Matches(msg, m.keys.Duplicate):
		if row.kind != rowQuestion {
			return m, nil
		}
		res, err := m.ed.DuplicateQuestion(row.page, row.section, row.question.ID)
		m.refresh()
		if err == nil {
			m.selectQuestion(res.Duplicate.ID)
		}
	case key.Matches(msg, m.keys.Add):
		var err error
		switch row.kind {
		case rowSchema:
			err = m.ed.LaunchAddPage()
		case rowPage:
			err = m.ed.LaunchAddSection(row.page)
		default:
			err = m.ed.LaunchAddQuestion(row.page, row.section)
		}
		return m.afterLaunch(err)
	case key.Matches(msg, m.keys.Delete):
		var err error
		switch row.kind {
		case rowSchema:
			return m, nil
		case rowPage:
			err = m.ed.LaunchDeletePage(row.page)
		case rowSection:
			err = m.ed.LaunchDeleteSection(row.page, row.section)
		default:
			err = m.ed.LaunchDeleteQuestion(row.loc)
		}
		return m.afterLaunch(err)
	case key.Matches(msg, m.keys.Reload):
		cur, err := m.store.Load(m.ctx)
		if err != nil {
			m.setFlash(mutate.NotifyError, "Error loading form", err.Error())
			return m, nil
		}
		if cur != nil {
			m.ed.Replace(*cur)
		}
		m.refresh()
	}
	return m, nil
}

// updateDrag handles the keyboard drag gesture: the cursor is the pointer,
// question rows are drop zones and the dragged question lands after the
// hovered one.
func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active, ok := m.ed.Engine().Active()
	if !ok {
		m.mode = modeNormal
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Released outside any drop zone.
		_, _ = m.ed.DragEnd("")
		m.mode = modeNormal
		return m, nil
	case key.Matches(msg, m.keys.Drop):
		over := ""
		if h, ok := m.ed.Engine().Hovered(); ok {
			over = h.Target.ID
		}
		res, err := m.ed.DragEnd(over)
		m.mode = modeNormal
		m.refresh()
		if err == nil {
			m.selectQuestion(res.Active.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	default:
		return m, nil
	}

	over := ""
	if row, ok := m.selected(); ok && row.kind == rowQuestion && row.question.ID != active.ID {
		over = row.question.ID
	}
	if _, _, err := m.ed.DragOver(over); err != nil {
		m.setFlash(mutate.NotifyError, "Error moving question", err.Error())
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlG:
		m.ed.CloseModal()
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		req := m.state.dialog
		m.mode = modeNormal
		if req == nil {
			return m, nil
		}
		if _, err := m.ed.ApplyModalResult(editor.ModalResult{Request: *req}); err == nil {
			m.setFlash(mutate.NotifySuccess, "Success!", deletedMessage(req.Kind))
		}
		m.refresh()
	case "n", "N", "esc", "ctrl+g":
		m.ed.CloseModal()
		m.mode = modeNormal
	}
	return m, nil
}

func deletedMessage(k editor.ModalKind) string {
	switch k {
	case editor.ModalDeletePage:
		return "Page deleted"
	case editor.ModalDeleteSection:
		return "Section deleted"
	default:
		return "Question deleted"
	}
}

func (m appModel) startRename(row outlineRow) (tea.Model, tea.Cmd) {
	switch row.kind {
	case rowSchema:
		m.inputPurpose = inputRenameSchema
	case rowPage:
		m.inputPurpose = inputRenamePage
	case rowSection:
		m.inputPurpose = inputRenameSection
	default:
		return m.afterLaunch(m.ed.LaunchEditQuestion(row.loc))
	}
	m.inputPage, m.inputSection = row.page, row.section
	m.openInput(row.label)
	return m, nil
}

// afterLaunch switches to the mode matching the dialog the editor opened.
func (m appModel) afterLaunch(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.setFlash(mutate.NotifyError, "Error", err.Error())
		return m, nil
	}
	m.enterDialog()
	return m, nil
}

func (m *appModel) enterDialog() {
	req := m.state.dialog
	if req == nil {
		return
	}
	switch req.Kind {
	case editor.ModalDeletePage, editor.ModalDeleteSection, editor.ModalDeleteQuestion:
		m.mode = modeConfirm
	case editor.ModalQuestion:
		m.inputPurpose = inputDialog
		if req.Question != nil {
			m.openInput(req.Question.DisplayLabel())
		} else {
			m.openInput("")
		}
	default:
		m.inputPurpose = inputDialog
		m.openInput("")
	}
}

func (m *appModel) openInput(value string) {
	m.mode = modeInput
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closeInput() {
	m.mode = modeNormal
	m.inputPurpose = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) submitInput(value string) (tea.Model, tea.Cmd) {
	purpose := m.inputPurpose
	m.closeInput()

	switch purpose {
	case inputRenameSchema:
		_, _ = m.ed.RenameSchema(value)
	case inputRenamePage:
		_, _ = m.ed.RenamePage(m.inputPage, value)
	case inputRenameSection:
		_, _ = m.ed.RenameSection(m.inputPage, m.inputSection, value)
	case inputDialog:
		req := m.state.dialog
		if req == nil {
			return m, nil
		}
		res, err := m.dialogResult(*req, value)
		if err != nil {
			m.ed.CloseModal()
			m.setFlash(mutate.NotifyError, "Error updating form", err.Error())
			return m, nil
		}
		if _, err := m.ed.ApplyModalResult(res); err != nil {
			m.refresh()
			return m, nil
		}
		if res.Request.Kind == editor.ModalQuestion && res.Request.Question == nil {
			m.refresh()
			m.selectQuestion(res.Question.ID)
			return m, nil
		}
	case inputQuestionID:
		req := m.state.dialog
		if req == nil || req.Question == nil {
			return m, nil
		}
		res, err := questionIDResult(*req, value)
		if err != nil {
			m.ed.CloseModal()
			m.setFlash(mutate.NotifyError, "Error updating question", err.Error())
			return m, nil
		}
		if _, err := m.ed.ApplyModalResult(res); err != nil {
			m.refresh()
			return m, nil
		}
		m.setFlash(mutate.NotifySuccess, "Success!", "Question id updated")
		m.refresh()
		m.selectQuestion(res.Question.ID)
		return m, nil
	}
	m.refresh()
	return m, nil
}

var (
	errBlankLabel = errors.New("label is required")
	errBlankID    = errors.New("question id is required")
)

// dialogResult fills a dialog from the single-line prompt.
func (m appModel) dialogResult(req editor.ModalRequest, value string) (editor.ModalResult, error) {
	res := editor.ModalResult{Request: req}
	value = strings.TrimSpace(value)
	switch req.Kind {
	case editor.ModalNewForm:
		res.Name = value
	case editor.ModalNewPage, editor.ModalNewSection:
		if value == "" {
			return res, errBlankLabel
		}
		res.Label = value
	case editor.ModalQuestion:
		if value == "" {
			return res, errBlankLabel
		}
		if req.Question != nil {
			q := *req.Question
			if q.QuestionOptions.Rendering == model.RenderingMarkdown {
				q.Value = value
			} else {
				q.Label = value
			}
			res.Question = q
			return res, nil
		}
		res.Question = model.Question{
			ID:              uniqueQuestionID(req.Schema, questionID(value)),
			Label:           value,
			Type:            "obs",
			QuestionOptions: model.QuestionOptions{Rendering: model.RenderingText},
		}
	}
	return res, nil
}

// questionIDResult gives the edited question a new id. The id must stay
// unique across the form.
func questionIDResult(req editor.ModalRequest, value string) (editor.ModalResult, error) {
	res := editor.ModalResult{Request: req}
	id := strings.TrimSpace(value)
	if id == "" {
		return res, errBlankID
	}
	q := *req.Question
	if id != q.ID {
		if _, _, taken := schema.FindQuestion(req.Schema, id); taken {
			return res, errors.New("question id already used: " + id)
		}
	}
	q.ID = id
	res.Question = q
	return res, nil
}

// questionID derives a camelCase id from a label, e.g. "Body weight (kg)"
// becomes "bodyWeightKg".
func questionID(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		rs := []rune(strings.ToLower(w))
		if i > 0 {
			rs[0] = unicode.ToUpper(rs[0])
		}
		b.WriteString(string(rs))
	}
	id := b.String()
	if id == "" {
		return "question"
	}
	if unicode.IsDigit([]rune(id)[0]) {
		return "q" + id
	}
	return id
}

func uniqueQuestionID(s model.Schema, base string) string {
	used := map[string]bool{}
	for _, id := range schema.QuestionIDs(s) {
		used[id] = true
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		id := base + itoa(n)
		if !used[id] {
			return id
		}
	}
}
