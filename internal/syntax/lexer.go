package syntax

import "unicode/utf8"

// Lexer converts Nexus source text into a stream of tokens.
// It never fails: lexical errors are reported as ERROR tokens whose
// lexeme holds the message.
type Lexer struct {
	source // embedded byte cursor

	// Token start position
	startOffs int
	startLine int
	startCol  int

	// One-slot pushback
	pending *Token
}

// NewLexer creates a new Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{source: newSource(src)}
}

// NextToken returns the next token, consuming input. A token previously
// returned through UngetToken is delivered first.
func (l *Lexer) NextToken() Token {
	if l.pending != nil {
		tok := *l.pending
		l.pending = nil
		return tok
	}

	l.skipTrivia()

	l.startOffs = l.offs
	l.startLine = l.line
	l.startCol = l.col

	if l.atEnd() {
		return l.makeToken(_EOF, "")
	}

	c := l.peek()
	switch {
	case isLetter(c):
		return l.scanIdent()
	case isDigit(c), c == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber()
	case c == '"':
		return l.scanString()
	case c == '\'':
		return l.scanCharacter()
	}
	return l.scanOperator()
}

// UngetToken pushes tok back so that the next call to NextToken returns it.
// Only one token of pushback is supported; a second call replaces the first.
func (l *Lexer) UngetToken(tok Token) {
	l.pending = &tok
}

// Tokenize scans src to the end and returns every token, END_OF_FILE included.
func Tokenize(src string) []Token {
	l := NewLexer(src)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind.IsEOF() {
			return toks
		}
	}
}

// makeToken builds a token that starts at the recorded start position.
func (l *Lexer) makeToken(kind TokenKind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: l.startLine, Column: l.startCol}
}

// errorToken builds an ERROR token at the current position.
func (l *Lexer) errorToken(msg string) Token {
	return Token{Kind: _Error, Lexeme: msg, Line: l.line, Column: l.col}
}

// skipTrivia skips whitespace, line comments and block comments.
// An unterminated block comment runs to the end of input.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		c := l.peek()
		switch {
		case isWhitespace(c):
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

// scanIdent scans an identifier or keyword.
func (l *Lexer) scanIdent() Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	lit := l.buf[l.startOffs:l.offs]
	return l.makeToken(LookupKeyword(lit), lit)
}

// scanNumber scans an integer or floating-point literal.
// The literal is FLOAT if it has a fraction or an exponent.
func (l *Lexer) scanNumber() Token {
	kind := _Integer
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = _Float
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if c := l.peek(); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peekAt(n)) {
			kind = _Float
			for ; n > 0; n-- {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	return l.makeToken(kind, l.buf[l.startOffs:l.offs])
}

// scanString scans a double-quoted string. The lexeme excludes the quotes
// and keeps escape sequences verbatim.
func (l *Lexer) scanString() Token {
	l.advance() // opening quote
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
			if l.atEnd() {
				break
			}
		}
		l.advance()
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string")
	}
	lit := l.buf[l.startOffs+1 : l.offs]
	l.advance() // closing quote
	return l.makeToken(_String, lit)
}

// scanCharacter scans a single-quoted character, optionally escaped.
func (l *Lexer) scanCharacter() Token {
	l.advance() // opening quote
	if l.peek() == '\\' {
		l.advance()
	}
	if !l.atEnd() {
		l.advance()
	}
	if !l.match('\'') {
		return l.errorToken("Unterminated character")
	}
	return l.makeToken(_Character, l.buf[l.startOffs+1:l.offs-1])
}

// operators lists the operator spellings for each leading byte, longest first.
var operators = map[byte][]struct {
	lit  string
	kind TokenKind
}{
	'+': {{"++", _PlusPlus}, {"+=", _PlusAssign}, {"+", _Plus}},
	'-': {{"--", _MinusMinus}, {"-=", _MinusAssign}, {"->", _Arrow}, {"-", _Minus}},
	'*': {{"*=", _StarAssign}, {"*", _Star}},
	'/': {{"/=", _SlashAssign}, {"/", _Slash}},
	'%': {{"%=", _PercentAssign}, {"%", _Percent}},
	'=': {{"==", _Equal}, {"=", _Assign}},
	'!': {{"!=", _NotEqual}, {"!", _Not}},
	'<': {{"<<=", _ShlAssign}, {"<<", _Shl}, {"<=", _LessEqual}, {"<", _Less}},
	'>': {{">>>=", _UShrAssign}, {">>>", _UShr}, {">>=", _ShrAssign}, {">>", _Shr}, {">=", _GreaterEqual}, {">", _Greater}},
	'&': {{"&&", _AndAnd}, {"&=", _BitAndAssign}, {"&", _BitAnd}},
	'|': {{"||", _OrOr}, {"|=", _BitOrAssign}, {"|", _BitOr}},
	'^': {{"^=", _BitXorAssign}, {"^", _BitXor}},
	'~': {{"~", _BitNot}},
	':': {{"::", _DoubleColon}, {":", _Colon}},
	';': {{";", _Semi}},
	',': {{",", _Comma}},
	'.': {{".", _Dot}},
	'(': {{"(", _Lparen}},
	')': {{")", _Rparen}},
	'{': {{"{", _Lbrace}},
	'}': {{"}", _Rbrace}},
	'[': {{"[", _Lbrack}},
	']': {{"]", _Rbrack}},
}

// scanOperator scans an operator or delimiter using greedy longest match.
func (l *Lexer) scanOperator() Token {
	for _, op := range operators[l.peek()] {
		if l.matchString(op.lit) {
			return l.makeToken(op.kind, op.lit)
		}
	}
	// Consume the whole rune so a multi-byte character yields one error.
	_, size := utf8.DecodeRuneInString(l.buf[l.offs:])
	for i := 0; i < size; i++ {
		l.advance()
	}
	return l.errorToken("Unexpected character")
}
