package layout

import (
	"errors"
	"fmt"
)

// InvalidSizeError reports a malformed size or percentage declaration
type InvalidSizeError struct {
	Value  string
	Reason string
}

func (e *InvalidSizeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid size %q", e.Value)
	}
	return fmt.Sprintf("invalid size %q: %s", e.Value, e.Reason)
}

// LayoutDivergedError reports a node that kept requesting passes past MaxPasses
type LayoutDivergedError struct {
	Tag    string
	Passes int
}

func (e *LayoutDivergedError) Error() string {
	return fmt.Sprintf("layout of node %q did not settle after %d passes", e.Tag, e.Passes)
}

var (
	// ErrChildOwned is returned when appending a node that already has a parent
	ErrChildOwned = errors.New("node already has a parent")
	// ErrCycle is returned when appending a node to one of its own descendants
	ErrCycle = errors.New("node would become its own ancestor")
)
