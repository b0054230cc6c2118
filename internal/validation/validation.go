// Package validation matches externally produced validation messages to
// questions and answer options. It never runs a validator itself.
package validation

import (
	"encoding/json"
	"fmt"
	"io"

	"formbuilder/internal/model"
)

type Lookup struct {
	errs []model.ValidationError
}

func NewLookup(errs []model.ValidationError) Lookup {
	return Lookup{errs: errs}
}

// Load decodes a validator response: a JSON array of error records.
func Load(r io.Reader) (Lookup, error) {
	var errs []model.ValidationError
	if err := json.NewDecoder(r).Decode(&errs); err != nil {
		return Lookup{}, fmt.Errorf("decode validation response: %w", err)
	}
	return NewLookup(errs), nil
}

func (l Lookup) Len() int { return len(l.errs) }

// matchQuestion requires label, id and type to be equal.
func matchQuestion(e model.ValidationError, q model.Question) bool {
	return e.Field.Label == q.Label && e.Field.ID == q.ID && e.Field.Type == q.Type
}

// QuestionError returns the error message of the first record matching q,
// or "" when there is none.
func (l Lookup) QuestionError(q model.Question) string {
	for _, e := range l.errs {
		if matchQuestion(e, q) {
			return e.ErrorMessage
		}
	}
	return ""
}

// QuestionWarning is QuestionError for warning messages.
func (l Lookup) QuestionWarning(q model.Question) string {
	for _, e := range l.errs {
		if matchQuestion(e, q) {
			return e.WarningMessage
		}
	}
	return ""
}

// AnswerErrors returns every record whose field label equals the label of
// one of the answers.
func (l Lookup) AnswerErrors(answers []model.Answer) []model.ValidationError {
	if len(answers) == 0 {
		return nil
	}
	labels := map[string]bool{}
	for _, a := range answers {
		labels[a.Label] = true
	}
	var out []model.ValidationError
	for _, e := range l.errs {
		if labels[e.Field.Label] {
			out = append(out, e)
		}
	}
	return out
}

// Annotation is the overlay shown for one question.
type Annotation struct {
	QuestionID   string   `json:"questionId"`
	Error        string   `json:"error,omitempty"`
	Warning      string   `json:"warning,omitempty"`
	AnswerErrors []string `json:"answerErrors,omitempty"`
}

func (a Annotation) Empty() bool {
	return a.Error == "" && a.Warning == "" && len(a.AnswerErrors) == 0
}

// Annotate builds the overlay for q. Answer errors are rendered as
// "<label>: <message>".
func (l Lookup) Annotate(q model.Question) Annotation {
	a := Annotation{
		QuestionID: q.ID,
		Error:      l.QuestionError(q),
		Warning:    l.QuestionWarning(q),
	}
	for _, e := range l.AnswerErrors(q.QuestionOptions.Answers) {
		a.AnswerErrors = append(a.AnswerErrors, fmt.Sprintf("%s: %s", e.Field.Label, e.ErrorMessage))
	}
	return a
}
