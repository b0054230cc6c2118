package dnd

import (
	"errors"
	"fmt"
	"strings"

	"formbuilder/internal/address"
	"formbuilder/internal/model"

	"github.com/untillpro/goutils/logger"
)

var (
	ErrGestureActive = errors.New("drag gesture already in progress")
	ErrNoGesture     = errors.New("no drag gesture in progress")
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitting:
		return "committing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Outcome int

const (
	// OutcomeNoTarget: the drag was released outside any drop zone.
	OutcomeNoTarget Outcome = iota
	// OutcomeSameNode: the drag was released on the dragged question itself.
	OutcomeSameNode
	OutcomeMoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoTarget:
		return "no-target"
	case OutcomeSameNode:
		return "same-node"
	case OutcomeMoved:
		return "moved"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Hover describes the current drop candidate of a gesture.
type Hover struct {
	Target address.Entry
	// CrossContainer is set when the target lives in a different sibling list.
	CrossContainer bool
	// Deferred is set for sub-questions leaving their group: the move is
	// only computed when the gesture ends.
	Deferred bool
}

type Result struct {
	Outcome Outcome
	Schema  model.Schema
	Active  address.Entry
	// TargetID is the question the dragged one was placed after.
	TargetID string
}

// Engine runs one drag gesture at a time: Start, any number of Over calls,
// then End or Cancel. It never mutates the schema while hovering; the
// relocation is computed once from the final (active, over) pair and handed
// to OnChange.
type Engine struct {
	OnChange func(model.Schema)

	state    State
	snapshot model.Schema
	index    *address.Index
	active   address.Entry
	hover    *Hover
}

func NewEngine(onChange func(model.Schema)) *Engine {
	return &Engine{OnChange: onChange}
}

func (e *Engine) State() State { return e.state }

// Active returns the dragged question while a gesture is in progress.
func (e *Engine) Active() (address.Entry, bool) {
	if e.state == StateIdle {
		return address.Entry{}, false
	}
	return e.active, true
}

// Hovered returns the latest drop candidate, if any.
func (e *Engine) Hovered() (Hover, bool) {
	if e.hover == nil {
		return Hover{}, false
	}
	return *e.hover, true
}

// Start captures the dragged question from the current snapshot. activeID
// may be a question id, a drag id or a drop zone id.
func (e *Engine) Start(s model.Schema, activeID string) (address.Entry, error) {
	if e.state != StateIdle {
		return address.Entry{}, ErrGestureActive
	}
	idx, err := address.Build(s)
	if err != nil {
		return address.Entry{}, err
	}
	active, ok := idx.ResolveAny(strings.TrimSpace(activeID))
	if !ok {
		return address.Entry{}, fmt.Errorf("%w: %s", ErrDraggedNotFound, activeID)
	}
	e.snapshot = s
	e.index = idx
	e.active = active
	e.hover = nil
	e.state = StateDragging
	if logger.IsVerbose() {
		logger.Verbose("drag start:", active.ID, active.Kind.String(), active.DragID.String())
	}
	return active, nil
}

// Over records the drop candidate. An empty or unknown overID clears it.
func (e *Engine) Over(overID string) (Hover, bool, error) {
	if e.state != StateDragging {
		return Hover{}, false, ErrNoGesture
	}
	overID = strings.TrimSpace(overID)
	target, ok := e.index.ResolveAny(overID)
	if overID == "" || !ok || target.ID == e.active.ID {
		e.hover = nil
		return Hover{}, false, nil
	}
	h := Hover{
		Target:         target,
		CrossContainer: !target.DragID.Location().SameContainer(e.active.DragID.Location()),
	}
	if e.active.Kind == address.KindNestedQuestion && h.CrossContainer {
		h.Deferred = true
	}
	e.hover = &h
	if logger.IsVerbose() {
		logger.Verbose("drag over:", e.active.ID, "->", target.ID, "cross:", h.CrossContainer)
	}
	return h, true, nil
}

// End finishes the gesture. An empty overID means the drag was released
// outside any drop zone. Errors leave the schema untouched and OnChange is
// not called.
func (e *Engine) End(overID string) (Result, error) {
	if e.state != StateDragging {
		return Result{}, ErrNoGesture
	}
	defer e.reset()

	res := Result{Outcome: OutcomeNoTarget, Schema: e.snapshot, Active: e.active}
	overID = strings.TrimSpace(overID)
	if overID == "" {
		return res, nil
	}
	targetID := overID
	if t, ok := e.index.ResolveAny(overID); ok {
		targetID = t.ID
	} else if address.IsAddress(overID) {
		// A drop zone that matches no question is not a drop target.
		return res, nil
	}
	if targetID == e.active.ID {
		res.Outcome = OutcomeSameNode
		return res, nil
	}

	e.state = StateCommitting
	out, err := Relocate(e.snapshot, e.active.ID, targetID)
	if err != nil {
		if logger.IsVerbose() {
			logger.Verbose("drag abort:", err)
		}
		return res, err
	}
	res.Outcome = OutcomeMoved
	res.Schema = out
	res.TargetID = targetID
	if logger.IsVerbose() {
		logger.Verbose("drag commit:", e.active.ID, "after", targetID)
	}
	if e.OnChange != nil {
		e.OnChange(out)
	}
	return res, nil
}

// Cancel abandons the gesture without touching the schema.
func (e *Engine) Cancel() {
	if e.state != StateIdle && logger.IsVerbose() {
		logger.Verbose("drag cancel:", e.active.ID)
	}
	e.reset()
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.snapshot = model.Schema{}
	e.index = nil
	e.active = address.Entry{}
	e.hover = nil
}
