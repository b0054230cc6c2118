package address

import (
	"fmt"
	"strings"

	"formbuilder/internal/model"
	"formbuilder/internal/schema"
)

// Entry is everything a drag gesture needs to know about one question.
type Entry struct {
	ID       string
	DragID   DragID
	Kind     Kind
	Question model.Question

	// Container is the drag id of the enclosing group; zero for top-level questions.
	Container    DragID
	HasContainer bool
}

// Index maps question ids and drag ids of one snapshot to entries.
// It is built once before a gesture starts.
type Index struct {
	byID   map[string]Entry
	byDrag map[string]string
	order  []string
}

type DuplicateIDError struct {
	IDs []string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate question ids: %s", strings.Join(e.IDs, ", "))
}

// Build indexes every question of s. Duplicate question ids make the
// index ambiguous and are reported as DuplicateIDError.
func Build(s model.Schema) (*Index, error) {
	if dups := schema.DuplicateIDs(s); len(dups) > 0 {
		return nil, DuplicateIDError{IDs: dups}
	}
	idx := &Index{
		byID:   map[string]Entry{},
		byDrag: map[string]string{},
	}
	schema.Walk(s, func(loc schema.Location, q model.Question) bool {
		d := FromLocation(loc)
		e := Entry{ID: q.ID, DragID: d, Kind: d.Kind(), Question: q}
		e.Container, e.HasContainer = d.Container()
		idx.byID[q.ID] = e
		idx.byDrag[d.String()] = q.ID
		idx.order = append(idx.order, q.ID)
		return true
	})
	return idx, nil
}

func (x *Index) Len() int { return len(x.order) }

// IDs returns question ids in document order.
func (x *Index) IDs() []string { return append([]string{}, x.order...) }

// Lookup finds a question by its semantic id.
func (x *Index) Lookup(id string) (Entry, bool) {
	e, ok := x.byID[id]
	return e, ok
}

// Resolve finds the question a drag id points at.
func (x *Index) Resolve(d DragID) (Entry, bool) {
	id, ok := x.byDrag[d.String()]
	if !ok {
		return Entry{}, false
	}
	return x.Lookup(id)
}

// ResolveDropZone maps a drop zone identifier back to the question it wraps.
func (x *Index) ResolveDropZone(zone string) (Entry, bool) {
	d, err := ParseDropZone(zone)
	if err != nil {
		return Entry{}, false
	}
	return x.Resolve(d)
}

// ResolveAny accepts a semantic id, a drag id or a drop zone id.
func (x *Index) ResolveAny(s string) (Entry, bool) {
	if e, ok := x.Lookup(s); ok {
		return e, true
	}
	if d, err := Parse(s); err == nil {
		return x.Resolve(d)
	}
	return x.ResolveDropZone(s)
}

// Siblings returns the ids sharing e's container, in order.
func (x *Index) Siblings(e Entry) []string {
	var out []string
	for _, id := range x.order {
		o := x.byID[id]
		if o.DragID.Location().SameContainer(e.DragID.Location()) {
			out = append(out, id)
		}
	}
	return out
}
