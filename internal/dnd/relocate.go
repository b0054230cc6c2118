// Package dnd turns a drag gesture into a single schema relocation.
package dnd

import (
	"errors"
	"fmt"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

var (
	ErrSameNode        = errors.New("drop target is the dragged question")
	ErrDraggedNotFound = errors.New("dragged question not found")
	ErrTargetNotFound  = errors.New("relocation target not found")
)

// Relocate moves the question draggedID so that it sits immediately after
// targetID. Both ids are searched across the whole tree, so same-list,
// cross-section, cross-page and group moves share one path.
//
// The input schema is returned unchanged on every error. In particular a
// target that cannot be found after extraction does not lose the dragged
// question; ErrTargetNotFound is reported instead. Dropping a group onto one
// of its own sub-questions reports the same error, because extraction takes
// the target along with the group.
func Relocate(s model.Schema, draggedID, targetID string) (model.Schema, error) {
	if draggedID == targetID {
		return s, ErrSameNode
	}
	extracted, q, ok := schema.RemoveQuestion(s, draggedID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrDraggedNotFound, draggedID)
	}
	out, ok := schema.InsertAfter(extracted, targetID, q)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrTargetNotFound, targetID)
	}
	return out, nil
}
