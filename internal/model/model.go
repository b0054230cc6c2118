package model

// DefaultProcessor is the processor assigned to freshly initialized schemas.
const DefaultProcessor = "EncounterFormProcessor"

type RenderingMode string

const (
	RenderingText     RenderingMode = "text"
	RenderingMarkdown RenderingMode = "markdown"
	RenderingSelect   RenderingMode = "select"
	RenderingRadio    RenderingMode = "radio"
	RenderingGroup    RenderingMode = "group"
)

type Schema struct {
	Name            string   `json:"name"`
	Pages           []Page   `json:"pages"`
	Processor       string   `json:"processor"`
	EncounterType   string   `json:"encounterType"`
	ReferencedForms []string `json:"referencedForms"`
	UUID            string   `json:"uuid"`
}

type Page struct {
	Label    string    `json:"label"`
	Sections []Section `json:"sections"`
}

type Section struct {
	Label      string     `json:"label"`
	IsExpanded string     `json:"isExpanded,omitempty"`
	Questions  []Question `json:"questions"`
}

type Question struct {
	ID              string          `json:"id"`
	Label           string          `json:"label,omitempty"`
	Type            string          `json:"type"`
	Value           string          `json:"value,omitempty"`
	Required        bool            `json:"required,omitempty"`
	QuestionOptions QuestionOptions `json:"questionOptions"`

	// Questions is set only for grouping ("obsGroup") questions.
	Questions []Question `json:"questions,omitempty"`
}

// IsGroup reports whether the question is a container for sub-questions.
// An empty group loses its child list in JSON, so the rendering counts too.
func (q Question) IsGroup() bool {
	return q.Questions != nil || q.QuestionOptions.Rendering == RenderingGroup
}

// DisplayLabel is what the editor shows for a question: markdown questions
// carry their text in Value.
func (q Question) DisplayLabel() string {
	if q.QuestionOptions.Rendering == RenderingMarkdown && q.Value != "" {
		return q.Value
	}
	return q.Label
}

type QuestionOptions struct {
	Rendering RenderingMode `json:"rendering"`
	Concept   string        `json:"concept,omitempty"`
	Answers   []Answer      `json:"answers,omitempty"`
}

type Answer struct {
	Concept string `json:"concept,omitempty"`
	Label   string `json:"label"`
}

// ValidationField identifies the schema element a validation message refers to.
type ValidationField struct {
	Label   string `json:"label"`
	Concept string `json:"concept"`
	ID      string `json:"id,omitempty"`
	Type    string `json:"type,omitempty"`
}

// ValidationError is produced by an external validator; the editor only reads it.
type ValidationError struct {
	ErrorMessage   string          `json:"errorMessage,omitempty"`
	WarningMessage string          `json:"warningMessage,omitempty"`
	Field          ValidationField `json:"field"`
}
