package diag

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardSink() Sink {
	return NewSink(FormatOptions{}, io.Discard)
}

func TestCounts(t *testing.T) {
	t.Parallel()

	sink := discardSink()

	const numEach = 10

	for i := 0; i < numEach; i++ {
		assert.Equal(t, i, sink.Warnings(), "expected warnings pre to be at iteration count")
		sink.Warningf(&Diag{Message: "A test of the emergency warning system: %v."}, i)
		assert.Equal(t, 0, sink.Errors(), "expected errors post to stay at zero")
		assert.Equal(t, i+1, sink.Warnings(), "expected warnings post to be at iteration count+1")
	}
	assert.True(t, sink.Success())

	for i := 0; i < numEach; i++ {
		assert.Equal(t, i, sink.Errors(), "expected errors pre to be at iteration count")
		sink.Errorf(&Diag{Message: "A test of the emergency error system: %v."}, i)
		assert.Equal(t, i+1, sink.Errors(), "expected errors post to be at iteration count+1")
		assert.Equal(t, numEach, sink.Warnings(), "expected warnings post to stay at numEach")
	}
	assert.False(t, sink.Success())
	assert.Equal(t, 2*numEach, sink.Count())
	assert.Len(t, sink.Diagnostics(), 2*numEach)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			"syntax",
			Diagnostic{Category: Syntax, Line: 3, Col: 7, Message: "Expect expression."},
			"Error at line 3, column 7: Expect expression.",
		},
		{
			"semantic",
			Diagnostic{Category: Semantic, Message: "Undefined variable 'x'."},
			"Semantic error: Undefined variable 'x'.",
		},
		{
			"warning",
			Diagnostic{Category: Warning, Message: "Assignment to constant 'k'."},
			"Warning: Assignment to constant 'k'.",
		},
		{
			"notes",
			Diagnostic{Category: Semantic, Message: "Undefined variable 'cnt'.", Notes: []string{"did you mean 'count'?"}},
			"Semantic error: Undefined variable 'cnt'.\n  note: did you mean 'count'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.diag))
			assert.Equal(t, tt.want, tt.diag.Error())
		})
	}
}

// TestEscape ensures that arguments containing format-like characters aren't interpreted as such.
func TestEscape(t *testing.T) {
	t.Parallel()

	d := New(Semantic, &Diag{Message: "Undefined variable '%s'."}, "%d%v")
	assert.Equal(t, "Undefined variable '%d%v'.", d.Message)

	d = New(Semantic, &Diag{Message: "100% literal"})
	assert.Equal(t, "100% literal", d.Message)
}

func TestSinkOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := NewSink(FormatOptions{}, &buf)
	sink.Add(Diagnostic{Category: Syntax, Line: 1, Col: 2, Message: "Unexpected character"})
	sink.Add(New(Semantic, &Diag{Message: "Undefined variable '%s'."}, "cnt").WithNote("did you mean '%s'?", "count"))
	sink.Warningf(&Diag{Message: "Assignment to constant '%s'."}, "k")

	assert.Equal(t, "Error at line 1, column 2: Unexpected character\n"+
		"Semantic error: Undefined variable 'cnt'.\n"+
		"  note: did you mean 'count'?\n"+
		"Warning: Assignment to constant 'k'.\n", buf.String())
}

func TestSinkColors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := NewSink(FormatOptions{Colors: true}, &buf)
	sink.Errorf(&Diag{Message: "boom"})
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}

func TestErr(t *testing.T) {
	t.Parallel()

	sink := discardSink()
	sink.Warningf(&Diag{Message: "just a warning"})
	assert.NoError(t, sink.Err())

	sink.Errorf(&Diag{Message: "first"})
	sink.Add(Diagnostic{Category: Syntax, Line: 2, Col: 1, Message: "second"})
	err := sink.Err()
	require.Error(t, err)
	assert.Equal(t, "Semantic error: first\nError at line 2, column 1: second", err.Error())
}

func TestWithNoteCopies(t *testing.T) {
	t.Parallel()

	base := Diagnostic{Category: Semantic, Message: "m", Notes: make([]string, 0, 4)}
	a := base.WithNote("a")
	b := base.WithNote("b")
	assert.Equal(t, []string{"a"}, a.Notes)
	assert.Equal(t, []string{"b"}, b.Notes)
	assert.Empty(t, base.Notes)
}
