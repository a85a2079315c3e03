package syntax

import "fmt"

// Pos represents a position in a source text.
// The zero value is an invalid position.
type Pos struct {
	line int // 1-based line number
	col  int // 1-based column number
}

// NewPos creates a new Pos with the given 1-based line and column.
func NewPos(line, col int) Pos {
	return Pos{line: line, col: col}
}

// String returns the position as "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() int {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() int {
	return p.col
}
