package ast

import "fmt"

// Location is the half-open byte range [Start, End) a node occupies in the
// source document. Offsets are zero-based.
type Location struct {
	Start int // Offset of the first byte of the node
	End   int // Offset one past the last byte of the node
}

// String returns the location as "start-end".
func (l Location) String() string {
	return fmt.Sprintf("%d-%d", l.Start, l.End)
}

// IsValid reports whether the range is well formed.
func (l Location) IsValid() bool {
	return l.Start >= 0 && l.End >= l.Start
}

// Contains reports whether other lies entirely within l.
func (l Location) Contains(other Location) bool {
	return other.Start >= l.Start && other.End <= l.End
}
