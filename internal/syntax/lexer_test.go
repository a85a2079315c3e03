package syntax

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func kinds(toks []Token) []TokenKind {
	ks := make([]TokenKind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func lexemes(toks []Token) []string {
	ls := make([]string, len(toks))
	for i, tok := range toks {
		ls[i] = tok.Lexeme
	}
	return ls
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kinds   []TokenKind
		lexemes []string
	}{
		{"empty", "", []TokenKind{_EOF}, []string{""}},
		{"ident", "foo_1", []TokenKind{_Identifier, _EOF}, []string{"foo_1", ""}},
		{"keyword", "let", []TokenKind{_Let, _EOF}, []string{"let", ""}},
		{"not_keyword", "throw", []TokenKind{_Identifier, _EOF}, []string{"throw", ""}},
		{"integer", "42", []TokenKind{_Integer, _EOF}, []string{"42", ""}},
		{"float", "3.14", []TokenKind{_Float, _EOF}, []string{"3.14", ""}},
		{"float_leading_dot", ".5", []TokenKind{_Float, _EOF}, []string{".5", ""}},
		{"float_exponent", "1e10", []TokenKind{_Float, _EOF}, []string{"1e10", ""}},
		{"float_signed_exponent", "2.5E-3", []TokenKind{_Float, _EOF}, []string{"2.5E-3", ""}},
		{"int_then_ident", "1e", []TokenKind{_Integer, _Identifier, _EOF}, []string{"1", "e", ""}},
		{"int_then_dot", "1.x", []TokenKind{_Integer, _Dot, _Identifier, _EOF}, []string{"1", ".", "x", ""}},
		{"string", `"hi there"`, []TokenKind{_String, _EOF}, []string{"hi there", ""}},
		{"string_escape", `"a\"b"`, []TokenKind{_String, _EOF}, []string{`a\"b`, ""}},
		{"character", "'c'", []TokenKind{_Character, _EOF}, []string{"c", ""}},
		{"character_escape", `'\n'`, []TokenKind{_Character, _EOF}, []string{`\n`, ""}},
		{"arrow", "->", []TokenKind{_Arrow, _EOF}, []string{"->", ""}},
		{"double_colon", "::", []TokenKind{_DoubleColon, _EOF}, []string{"::", ""}},
		{"ushr_assign", ">>>=", []TokenKind{_UShrAssign, _EOF}, []string{">>>=", ""}},
		{"shl_then_less", "<<<", []TokenKind{_Shl, _Less, _EOF}, []string{"<<", "<", ""}},
		{"line_comment", "a // b\nc", []TokenKind{_Identifier, _Identifier, _EOF}, []string{"a", "c", ""}},
		{"block_comment", "a /* b \n */ c", []TokenKind{_Identifier, _Identifier, _EOF}, []string{"a", "c", ""}},
		{"unterminated_comment", "a /* b", []TokenKind{_Identifier, _EOF}, []string{"a", ""}},
		{
			"let_stmt",
			"let x: int = 10;",
			[]TokenKind{_Let, _Identifier, _Colon, _Identifier, _Assign, _Integer, _Semi, _EOF},
			[]string{"let", "x", ":", "int", "=", "10", ";", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.src)
			assert.Equal(t, tt.kinds, kinds(toks))
			assert.Equal(t, tt.lexemes, lexemes(toks))
		})
	}
}

func TestTokenizeGreedyOperators(t *testing.T) {
	ops := map[string]TokenKind{
		"+": _Plus, "++": _PlusPlus, "+=": _PlusAssign,
		"-": _Minus, "--": _MinusMinus, "-=": _MinusAssign,
		"*": _Star, "*=": _StarAssign,
		"/": _Slash, "/=": _SlashAssign,
		"%": _Percent, "%=": _PercentAssign,
		"=": _Assign, "==": _Equal,
		"!": _Not, "!=": _NotEqual,
		"<": _Less, "<=": _LessEqual, "<<": _Shl, "<<=": _ShlAssign,
		">": _Greater, ">=": _GreaterEqual, ">>": _Shr, ">>=": _ShrAssign,
		">>>": _UShr, ">>>=": _UShrAssign,
		"&": _BitAnd, "&&": _AndAnd, "&=": _BitAndAssign,
		"|": _BitOr, "||": _OrOr, "|=": _BitOrAssign,
		"^": _BitXor, "^=": _BitXorAssign, "~": _BitNot,
	}
	for lit, want := range ops {
		toks := Tokenize(lit)
		require.Len(t, toks, 2, "%q", lit)
		assert.Equal(t, want, toks[0].Kind, "%q", lit)
		assert.Equal(t, lit, toks[0].Lexeme)
	}
}

func TestTokenizePositions(t *testing.T) {
	toks := Tokenize("let x\n  = 10;")
	want := []struct{ line, col int }{
		{1, 1}, {1, 5}, {2, 3}, {2, 5}, {2, 7}, {2, 8},
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w.line, toks[i].Line, "token %d (%s)", i, toks[i])
		assert.Equal(t, w.col, toks[i].Column, "token %d (%s)", i, toks[i])
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		msg       string
		line, col int
	}{
		{"unexpected_character", "@", "Unexpected character", 1, 2},
		{"unexpected_multibyte_character", "€", "Unexpected character", 1, 4},
		{"unterminated_string", `"abc`, "Unterminated string", 1, 5},
		{"unterminated_character", "'ab'", "Unterminated character", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.src)
			require.NotEmpty(t, toks)
			tok := toks[0]
			assert.Equal(t, _Error, tok.Kind)
			assert.Equal(t, tt.msg, tok.Lexeme)
			assert.Equal(t, tt.line, tok.Line)
			assert.Equal(t, tt.col, tok.Column)
		})
	}
}

func TestMultibyteCharacterSingleError(t *testing.T) {
	toks := Tokenize("é € x")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{_Error, _Error, _Identifier, _EOF}, kinds)
	assert.Equal(t, "x", toks[2].Lexeme)
}

func TestUngetToken(t *testing.T) {
	l := NewLexer("a b")
	a := l.NextToken()
	b := l.NextToken()
	l.UngetToken(b)
	assert.Equal(t, b, l.NextToken())
	assert.Equal(t, "a", a.Lexeme)
	assert.Equal(t, _EOF, l.NextToken().Kind)
}

func TestTokenizeIntegerProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64().Draw(t, "n")
		lit := strconv.FormatUint(n, 10)
		toks := Tokenize(lit)
		if len(toks) != 2 || toks[0].Kind != _Integer || toks[0].Lexeme != lit || toks[1].Kind != _EOF {
			t.Fatalf("Tokenize(%q) = %v", lit, toks)
		}
	})
}

func TestTokenizeIdentifierProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_]{0,12}`).Draw(t, "name")
		toks := Tokenize(name)
		if len(toks) != 2 || toks[0].Lexeme != name {
			t.Fatalf("Tokenize(%q) = %v", name, toks)
		}
		if toks[0].Kind != LookupKeyword(name) {
			t.Fatalf("kind of %q = %s, want %s", name, toks[0].Kind, LookupKeyword(name))
		}
	})
}
