package tui

import (
	"errors"
	"os"
	"path/filepath"

	"formbuilder/internal/model"
	"formbuilder/internal/store"
	"formbuilder/internal/validation"

	tea "github.com/charmbracelet/bubbletea"
)

// validationFile is picked up from the workspace dir when present and shown
// under the questions it refers to.
const validationFile = "validation.json"

func Run(st store.Store, cur *model.Schema, cfg *store.GlobalConfig) error {
	var glyphPref string
	if cfg != nil && cfg.TUI != nil {
		glyphPref = cfg.TUI.Glyphs
	}
	applyGlyphPreference(glyphPref)

	m := newAppModel(st, cur, cfg)
	lookup, err := loadValidationFile(filepath.Join(st.Dir, validationFile))
	if err != nil {
		return err
	}
	m.validation = lookup

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func loadValidationFile(path string) (*validation.Lookup, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := validation.Load(f)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
