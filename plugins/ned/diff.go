package ned

import "fmt"

// ChangeKind discriminates atomic changes.
type ChangeKind int

const (
	ChangeModify ChangeKind = iota // Values[Index]: Old -> New
	ChangeInsert                   // Value inserted at Index
	ChangeDelete                   // Value removed from Index
)

// AtomicChange is a single step of a Diff. Indexes refer to the list as it is
// when the step runs, after all previous steps of the same diff.
type AtomicChange struct {
	Kind  ChangeKind
	Index int
	Old   int64 // ChangeModify only
	New   int64 // ChangeModify only
	Value int64 // ChangeInsert and ChangeDelete
}

// ModifyEntry replaces before with after at index.
func ModifyEntry(index int, before, after int64) AtomicChange {
	return AtomicChange{Kind: ChangeModify, Index: index, Old: before, New: after}
}

// InsertValue inserts value at index.
func InsertValue(index int, value int64) AtomicChange {
	return AtomicChange{Kind: ChangeInsert, Index: index, Value: value}
}

// DeleteAt removes value from index.
func DeleteAt(index int, value int64) AtomicChange {
	return AtomicChange{Kind: ChangeDelete, Index: index, Value: value}
}

// Invert swaps the before and after of a single change.
func (c AtomicChange) Invert() AtomicChange {
	switch c.Kind {
	case ChangeModify:
		return ModifyEntry(c.Index, c.New, c.Old)
	case ChangeInsert:
		return DeleteAt(c.Index, c.Value)
	default:
		return InsertValue(c.Index, c.Value)
	}
}

func (c AtomicChange) String() string {
	switch c.Kind {
	case ChangeModify:
		return fmt.Sprintf("modify[%d] %d->%d", c.Index, c.Old, c.New)
	case ChangeInsert:
		return fmt.Sprintf("insert[%d] %d", c.Index, c.Value)
	default:
		return fmt.Sprintf("delete[%d] %d", c.Index, c.Value)
	}
}

// Diff is an ordered list of atomic changes plus the cursor before and after.
type Diff struct {
	Changes   []AtomicChange
	OldCursor int
	NewCursor int
}

// Invert reverses the order of the changes, inverts each one and swaps the cursors.
func (d Diff) Invert() Diff {
	changes := make([]AtomicChange, len(d.Changes))
	for i, c := range d.Changes {
		changes[len(d.Changes)-1-i] = c.Invert()
	}
	return Diff{
		Changes:   changes,
		OldCursor: d.NewCursor,
		NewCursor: d.OldCursor,
	}
}

// Empty reports whether the diff only moves the cursor, or nothing at all.
func (d Diff) Empty() bool {
	return len(d.Changes) == 0
}
