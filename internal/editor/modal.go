package editor

import (
	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

type ModalKind string

const (
	ModalNewForm        ModalKind = "new-form-modal"
	ModalNewPage        ModalKind = "new-page-modal"
	ModalDeletePage     ModalKind = "delete-page-modal"
	ModalNewSection     ModalKind = "new-section-modal"
	ModalDeleteSection  ModalKind = "delete-section-modal"
	ModalQuestion       ModalKind = "question-modal"
	ModalDeleteQuestion ModalKind = "delete-question-modal"
)

// ModalRequest asks the caller's dialog layer to open a dialog. The editor
// itself never draws anything.
type ModalRequest struct {
	Kind    ModalKind
	Schema  model.Schema
	Page    int
	Section int

	// Location and Question are set when a dialog targets an existing question.
	Location *schema.Location
	Question *model.Question
}

// Disposer closes a dialog opened by a ModalController.
type Disposer func()

type ModalController interface {
	Open(ModalRequest) Disposer
}

type ModalControllerFunc func(ModalRequest) Disposer

func (f ModalControllerFunc) Open(r ModalRequest) Disposer { return f(r) }

// ModalResult is what a dialog hands back when the user confirms it.
type ModalResult struct {
	Request ModalRequest

	// Name and EncounterType are used by the new-form dialog.
	Name          string
	EncounterType string

	// Label names a new page or section.
	Label string

	// Question is the added or edited question.
	Question model.Question
}
