package schema

import (
	"sort"
	"strconv"
	"strings"

	"formbuilder/internal/model"
)

// Location addresses a question inside the schema.
//
// Path holds the question index within its section followed by the index
// within each enclosing group, outermost first. A top-level question has a
// Path of length 1.
type Location struct {
	Page    int
	Section int
	Path    []int
}

func (l Location) Nested() bool { return len(l.Path) > 1 }

// Index is the question's position within its own container.
func (l Location) Index() int {
	if len(l.Path) == 0 {
		return -1
	}
	return l.Path[len(l.Path)-1]
}

// Parent returns the location of the enclosing group question.
func (l Location) Parent() (Location, bool) {
	if len(l.Path) < 2 {
		return Location{}, false
	}
	return Location{Page: l.Page, Section: l.Section, Path: append([]int{}, l.Path[:len(l.Path)-1]...)}, true
}

// SameContainer reports whether two locations share a sibling list.
func (l Location) SameContainer(o Location) bool {
	if l.Page != o.Page || l.Section != o.Section || len(l.Path) != len(o.Path) {
		return false
	}
	for i := 0; i < len(l.Path)-1; i++ {
		if l.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

func (l Location) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(l.Page))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(l.Section))
	for _, i := range l.Path {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// Walk visits every question in document order, parents before their
// sub-questions. Returning false from fn stops the walk.
func Walk(s model.Schema, fn func(loc Location, q model.Question) bool) {
	for pi := range s.Pages {
		for si := range s.Pages[pi].Sections {
			if !walkQuestions(s.Pages[pi].Sections[si].Questions, pi, si, nil, fn) {
				return
			}
		}
	}
}

func walkQuestions(qs []model.Question, pi, si int, prefix []int, fn func(Location, model.Question) bool) bool {
	for qi := range qs {
		path := make([]int, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = qi
		if !fn(Location{Page: pi, Section: si, Path: path}, qs[qi]) {
			return false
		}
		if qs[qi].Questions != nil {
			if !walkQuestions(qs[qi].Questions, pi, si, path, fn) {
				return false
			}
		}
	}
	return true
}

// FindQuestion returns the first question with the given id.
func FindQuestion(s model.Schema, id string) (model.Question, Location, bool) {
	var (
		found model.Question
		at    Location
		ok    bool
	)
	Walk(s, func(loc Location, q model.Question) bool {
		if q.ID == id {
			found, at, ok = q, loc, true
			return false
		}
		return true
	})
	return found, at, ok
}

// QuestionAt resolves a location to its question.
func QuestionAt(s model.Schema, loc Location) (model.Question, bool) {
	if loc.Page < 0 || loc.Page >= len(s.Pages) {
		return model.Question{}, false
	}
	p := s.Pages[loc.Page]
	if loc.Section < 0 || loc.Section >= len(p.Sections) || len(loc.Path) == 0 {
		return model.Question{}, false
	}
	qs := p.Sections[loc.Section].Questions
	var q model.Question
	for _, i := range loc.Path {
		if i < 0 || i >= len(qs) {
			return model.Question{}, false
		}
		q = qs[i]
		qs = q.Questions
	}
	return q, true
}

// CountQuestions counts questions at every depth.
func CountQuestions(s model.Schema) int {
	n := 0
	Walk(s, func(Location, model.Question) bool {
		n++
		return true
	})
	return n
}

// QuestionIDs lists question ids in document order.
func QuestionIDs(s model.Schema) []string {
	var out []string
	Walk(s, func(_ Location, q model.Question) bool {
		out = append(out, q.ID)
		return true
	})
	return out
}

// DuplicateIDs returns ids that occur more than once anywhere in the schema, sorted.
func DuplicateIDs(s model.Schema) []string {
	seen := map[string]int{}
	Walk(s, func(_ Location, q model.Question) bool {
		seen[q.ID]++
		return true
	})
	var out []string
	for id, n := range seen {
		if n > 1 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
