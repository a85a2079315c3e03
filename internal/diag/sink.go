package diag

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
)

// Sink facilitates pluggable diagnostics messages.
type Sink interface {
	// Count fetches the total number of diagnostics issued (errors plus warnings).
	Count() int
	// Errors fetches the number of errors issued.
	Errors() int
	// Warnings fetches the number of warnings issued.
	Warnings() int
	// Success returns true if this sink is currently error-free.
	Success() bool

	// Errorf issues a new semantic error diagnostic.
	Errorf(d *Diag, args ...interface{})
	// Warningf issues a new warning diagnostic.
	Warningf(d *Diag, args ...interface{})
	// Add issues a fully formed diagnostic.
	Add(d Diagnostic)

	// Diagnostics returns every diagnostic issued so far, in order.
	Diagnostics() []Diagnostic
	// Err aggregates the error diagnostics, or returns nil if there are none.
	Err() error
}

// FormatOptions controls the output style.
type FormatOptions struct {
	Colors bool // if true, category prefixes are colorized.
}

// NewSink returns a sink that writes each diagnostic to w as it is issued.
// A nil w only records diagnostics.
func NewSink(opts FormatOptions, w io.Writer) Sink {
	return newDefaultSink(opts, w)
}

func newDefaultSink(opts FormatOptions, w io.Writer) *defaultSink {
	d := &defaultSink{
		opts:   opts,
		w:      w,
		errorC: color.New(color.FgRed, color.Bold),
		warnC:  color.New(color.FgYellow, color.Bold),
		noteC:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{d.errorC, d.warnC, d.noteC} {
		if opts.Colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// defaultSink records diagnostics and echoes them to a writer.
type defaultSink struct {
	opts     FormatOptions
	w        io.Writer
	diags    []Diagnostic
	errors   int
	warnings int

	errorC *color.Color
	warnC  *color.Color
	noteC  *color.Color
}

func (d *defaultSink) Count() int {
	return d.errors + d.warnings
}

func (d *defaultSink) Errors() int {
	return d.errors
}

func (d *defaultSink) Warnings() int {
	return d.warnings
}

func (d *defaultSink) Success() bool {
	return d.errors == 0
}

func (d *defaultSink) Errorf(diag *Diag, args ...interface{}) {
	d.Add(New(Semantic, diag, args...))
}

func (d *defaultSink) Warningf(diag *Diag, args ...interface{}) {
	d.Add(New(Warning, diag, args...))
}

func (d *defaultSink) Add(diag Diagnostic) {
	if glog.V(3) {
		glog.V(3).Infof("defaultSink::Add(%v)", Format(diag))
	}
	switch {
	case diag.Category.IsError():
		d.errors++
	case diag.Category == Warning:
		d.warnings++
	}
	d.diags = append(d.diags, diag)
	if d.w != nil {
		io.WriteString(d.w, d.stringify(diag))
	}
}

func (d *defaultSink) Diagnostics() []Diagnostic {
	return d.diags
}

func (d *defaultSink) Err() error {
	var result *multierror.Error
	for _, diag := range d.diags {
		if diag.Category.IsError() {
			result = multierror.Append(result, diag)
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return result
}

// stringify renders diag the way Format does, with an optionally colorized
// prefix and a trailing newline.
func (d *defaultSink) stringify(diag Diagnostic) string {
	var sb strings.Builder
	c := d.noteC
	switch {
	case diag.Category.IsError():
		c = d.errorC
	case diag.Category == Warning:
		c = d.warnC
	}
	sb.WriteString(c.Sprint(strings.TrimSuffix(prefix(diag), " ")))
	sb.WriteString(" ")
	sb.WriteString(diag.Message)
	sb.WriteByte('\n')
	for _, n := range diag.Notes {
		sb.WriteString("  ")
		sb.WriteString(d.noteC.Sprint("note:"))
		sb.WriteString(" ")
		sb.WriteString(n)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// listFormat renders one error per line.
func listFormat(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}
