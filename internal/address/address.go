// Package address assigns drag identifiers to questions and drop zones.
//
// A drag identifier is derived from the question's position in one schema
// snapshot: question-<page>-<section>-<question>[-<sub>...]. Drop zones use the
// same coordinates behind a droppable- prefix. Identifiers are only meaningful
// for the snapshot they were computed from.
package address

import (
	"fmt"
	"strconv"
	"strings"

	"formbuilder/internal/schema"
)

const (
	questionPrefix = "question"
	dropPrefix     = "droppable-question"
)

// Kind tags a drag source as a top-level question or a nested sub-question.
type Kind int

const (
	KindQuestion Kind = iota
	KindNestedQuestion
)

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindNestedQuestion:
		return "obsQuestion"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type DragID struct {
	Page    int
	Section int
	// Path is the question index in the section, then the index within each
	// enclosing group.
	Path []int
}

func FromLocation(loc schema.Location) DragID {
	return DragID{Page: loc.Page, Section: loc.Section, Path: append([]int{}, loc.Path...)}
}

func (d DragID) Location() schema.Location {
	return schema.Location{Page: d.Page, Section: d.Section, Path: append([]int{}, d.Path...)}
}

func (d DragID) Kind() Kind {
	if len(d.Path) > 1 {
		return KindNestedQuestion
	}
	return KindQuestion
}

// Container returns the drag id of the enclosing group for nested questions.
func (d DragID) Container() (DragID, bool) {
	if len(d.Path) < 2 {
		return DragID{}, false
	}
	return DragID{Page: d.Page, Section: d.Section, Path: append([]int{}, d.Path[:len(d.Path)-1]...)}, true
}

func (d DragID) String() string { return format(questionPrefix, d) }

// DropZone is the identifier of the slot wrapping this question.
func (d DragID) DropZone() string { return format(dropPrefix, d) }

func format(prefix string, d DragID) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, n := range append([]int{d.Page, d.Section}, d.Path...) {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// Parse reads a drag identifier (question-...).
func Parse(s string) (DragID, error) {
	return parse(questionPrefix, s)
}

// ParseDropZone reads a drop zone identifier (droppable-question-...).
func ParseDropZone(s string) (DragID, error) {
	return parse(dropPrefix, s)
}

// IsAddress reports whether s is shaped like a drag or drop zone
// identifier, whether or not it points at an existing question.
func IsAddress(s string) bool {
	if _, err := Parse(s); err == nil {
		return true
	}
	_, err := ParseDropZone(s)
	return err == nil
}

func parse(prefix, s string) (DragID, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, prefix+"-")
	if !ok {
		return DragID{}, fmt.Errorf("invalid %s address: %q", prefix, s)
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		return DragID{}, fmt.Errorf("invalid %s address: %q", prefix, s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return DragID{}, fmt.Errorf("invalid %s address: %q", prefix, s)
		}
		nums[i] = n
	}
	return DragID{Page: nums[0], Section: nums[1], Path: nums[2:]}, nil
}
