// Package diag collects and renders compiler diagnostics.
package diag

import (
	"fmt"
	"strings"
)

// ID uniquely identifies a kind of diagnostic.
type ID int

// Diag is a diagnostic template: an identifier and a printf-style message.
type Diag struct {
	ID      ID
	Message string
}

// Category dictates the kind of diagnostic.
type Category string

const (
	Syntax   Category = "syntax"
	Semantic Category = "semantic"
	Warning  Category = "warning"
	Note     Category = "note"
)

// IsError reports whether diagnostics of category c are errors.
func (c Category) IsError() bool {
	return c == Syntax || c == Semantic
}

// Diagnostic is a single issued diagnostic. Line and Col are zero when the
// diagnostic carries no source position.
type Diagnostic struct {
	Category Category
	ID       ID
	Line     int
	Col      int
	Message  string
	Notes    []string
}

// New instantiates template d under category cat.
func New(cat Category, d *Diag, args ...interface{}) Diagnostic {
	msg := d.Message
	if len(args) > 0 {
		msg = fmt.Sprintf(d.Message, args...)
	}
	return Diagnostic{Category: cat, ID: d.ID, Message: msg}
}

// WithNote returns a copy of d with note appended.
func (d Diagnostic) WithNote(format string, args ...interface{}) Diagnostic {
	d.Notes = append(append([]string(nil), d.Notes...), fmt.Sprintf(format, args...))
	return d
}

func (d Diagnostic) Error() string {
	return Format(d)
}

// Format renders d in its canonical text form, without a trailing newline:
//
//	Error at line L, column C: msg
//	Semantic error: msg
//	Warning: msg
//
// followed by one "  note: " line per note.
func Format(d Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(prefix(d))
	sb.WriteString(d.Message)
	for _, n := range d.Notes {
		sb.WriteString("\n  note: ")
		sb.WriteString(n)
	}
	return sb.String()
}

func prefix(d Diagnostic) string {
	switch d.Category {
	case Syntax:
		return fmt.Sprintf("Error at line %d, column %d: ", d.Line, d.Col)
	case Semantic:
		return "Semantic error: "
	case Warning:
		return "Warning: "
	case Note:
		return "note: "
	}
	return string(d.Category) + ": "
}
