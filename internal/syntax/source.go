package syntax

// source is a byte cursor over the source text with line/column tracking.
//
// Position tracking: (line, col) always refers to the byte at offs, the next
// byte to be consumed. A consumed '\n' advances line and resets col to 1.
type source struct {
	buf  string // entire source text
	offs int    // offset of the next unread byte

	line int // current line number (1-based)
	col  int // current column number (1-based)
}

// newSource creates a source positioned at the first byte of src.
func newSource(src string) source {
	return source{buf: src, line: 1, col: 1}
}

// atEnd reports whether all input has been consumed.
func (s *source) atEnd() bool {
	return s.offs >= len(s.buf)
}

// advance consumes and returns the current byte.
func (s *source) advance() byte {
	c := s.buf[s.offs]
	s.offs++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// peek returns the current byte without consuming it, or 0 at end of input.
func (s *source) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.buf[s.offs]
}

// peekAt returns the byte n positions ahead of the current one, or 0.
func (s *source) peekAt(n int) byte {
	if s.offs+n >= len(s.buf) {
		return 0
	}
	return s.buf[s.offs+n]
}

// match consumes the current byte if it equals c.
func (s *source) match(c byte) bool {
	if s.atEnd() || s.buf[s.offs] != c {
		return false
	}
	s.advance()
	return true
}

// matchString consumes lit if the input continues with it.
func (s *source) matchString(lit string) bool {
	if len(s.buf)-s.offs < len(lit) || s.buf[s.offs:s.offs+len(lit)] != lit {
		return false
	}
	for range lit {
		s.advance()
	}
	return true
}

// Character classification helpers

// isLetter reports whether c is a letter (a-z, A-Z, or _).
func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// isDigit reports whether c is a decimal digit (0-9).
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isWhitespace reports whether c is skipped between tokens.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
