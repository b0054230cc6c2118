package schema

import "fmt"

// IndexError reports a page/section/question index outside its container.
type IndexError struct {
	Kind  string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (have %d)", e.Kind, e.Index, e.Len)
}

// NotFoundError reports a question id that is not present in the schema.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func checkIndex(kind string, i, n int) error {
	if i < 0 || i >= n {
		return IndexError{Kind: kind, Index: i, Len: n}
	}
	return nil
}
