// Package syntax implements lexical and syntactic analysis for the Nexus language.
package syntax

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind uint

const (
	// Special tokens
	_EOF   TokenKind = iota // end of file
	_Error                  // lexical error; the lexeme carries the message

	// Literals
	_Identifier
	_Integer
	_Float
	_String
	_Character

	// Keywords
	_Let
	_Const
	_Fn
	_Async
	_Await
	_Coroutine
	_Struct
	_Process
	_Class
	_Interface
	_If
	_Else
	_For
	_While
	_Return
	_Break
	_Continue
	_Import
	_Export
	_Use
	_Namespace
	_Constructor
	_This
	_New
	_Yield
	_Try
	_Catch
	_Finally
	_Null
	_True
	_False
	_Typeof
	_Instanceof
	_As

	// Arithmetic operators
	_Plus       // +
	_Minus      // -
	_Star       // *
	_Slash      // /
	_Percent    // %
	_PlusPlus   // ++
	_MinusMinus // --

	// Assignment operators
	_Assign        // =
	_PlusAssign    // +=
	_MinusAssign   // -=
	_StarAssign    // *=
	_SlashAssign   // /=
	_PercentAssign // %=

	// Comparison operators
	_Equal        // ==
	_NotEqual     // !=
	_Less         // <
	_LessEqual    // <=
	_Greater      // >
	_GreaterEqual // >=

	// Logical operators
	_AndAnd // &&
	_OrOr   // ||
	_Not    // !

	// Bitwise operators
	_BitAnd       // &
	_BitOr        // |
	_BitXor       // ^
	_BitNot       // ~
	_Shl          // <<
	_Shr          // >>
	_UShr         // >>>
	_ShlAssign    // <<=
	_ShrAssign    // >>=
	_UShrAssign   // >>>=
	_BitAndAssign // &=
	_BitOrAssign  // |=
	_BitXorAssign // ^=

	// Delimiters
	_Semi        // ;
	_Colon       // :
	_Comma       // ,
	_Dot         // .
	_Lparen      // (
	_Rparen      // )
	_Lbrace      // {
	_Rbrace      // }
	_Lbrack      // [
	_Rbrack      // ]
	_Arrow       // ->
	_DoubleColon // ::

	tokenCount
)

// tokenNames maps token kinds to their canonical names.
var tokenNames = [...]string{
	_EOF:   "END_OF_FILE",
	_Error: "ERROR",

	_Identifier: "IDENTIFIER",
	_Integer:    "INTEGER",
	_Float:      "FLOAT",
	_String:     "STRING",
	_Character:  "CHARACTER",

	_Let:         "LET",
	_Const:       "CONST",
	_Fn:          "FN",
	_Async:       "ASYNC",
	_Await:       "AWAIT",
	_Coroutine:   "COROUTINE",
	_Struct:      "STRUCT",
	_Process:     "PROCESS",
	_Class:       "CLASS",
	_Interface:   "INTERFACE",
	_If:          "IF",
	_Else:        "ELSE",
	_For:         "FOR",
	_While:       "WHILE",
	_Return:      "RETURN",
	_Break:       "BREAK",
	_Continue:    "CONTINUE",
	_Import:      "IMPORT",
	_Export:      "EXPORT",
	_Use:         "USE",
	_Namespace:   "NAMESPACE",
	_Constructor: "CONSTRUCTOR",
	_This:        "THIS",
	_New:         "NEW",
	_Yield:       "YIELD",
	_Try:         "TRY",
	_Catch:       "CATCH",
	_Finally:     "FINALLY",
	_Null:        "NULL",
	_True:        "TRUE",
	_False:       "FALSE",
	_Typeof:      "TYPEOF",
	_Instanceof:  "INSTANCEOF",
	_As:          "AS",

	_Plus:       "PLUS",
	_Minus:      "MINUS",
	_Star:       "MULTIPLY",
	_Slash:      "DIVIDE",
	_Percent:    "MODULO",
	_PlusPlus:   "PLUS_PLUS",
	_MinusMinus: "MINUS_MINUS",

	_Assign:        "ASSIGN",
	_PlusAssign:    "PLUS_ASSIGN",
	_MinusAssign:   "MINUS_ASSIGN",
	_StarAssign:    "MULTIPLY_ASSIGN",
	_SlashAssign:   "DIVIDE_ASSIGN",
	_PercentAssign: "MODULO_ASSIGN",

	_Equal:        "EQUAL",
	_NotEqual:     "NOT_EQUAL",
	_Less:         "LESS",
	_LessEqual:    "LESS_EQUAL",
	_Greater:      "GREATER",
	_GreaterEqual: "GREATER_EQUAL",

	_AndAnd: "AND",
	_OrOr:   "OR",
	_Not:    "NOT",

	_BitAnd:       "BIT_AND",
	_BitOr:        "BIT_OR",
	_BitXor:       "BIT_XOR",
	_BitNot:       "BIT_NOT",
	_Shl:          "LEFT_SHIFT",
	_Shr:          "RIGHT_SHIFT",
	_UShr:         "UNSIGNED_RIGHT_SHIFT",
	_ShlAssign:    "LEFT_SHIFT_ASSIGN",
	_ShrAssign:    "RIGHT_SHIFT_ASSIGN",
	_UShrAssign:   "UNSIGNED_RIGHT_SHIFT_ASSIGN",
	_BitAndAssign: "BIT_AND_ASSIGN",
	_BitOrAssign:  "BIT_OR_ASSIGN",
	_BitXorAssign: "BIT_XOR_ASSIGN",

	_Semi:        "SEMICOLON",
	_Colon:       "COLON",
	_Comma:       "COMMA",
	_Dot:         "DOT",
	_Lparen:      "LEFT_PAREN",
	_Rparen:      "RIGHT_PAREN",
	_Lbrace:      "LEFT_BRACE",
	_Rbrace:      "RIGHT_BRACE",
	_Lbrack:      "LEFT_BRACKET",
	_Rbrack:      "RIGHT_BRACKET",
	_Arrow:       "ARROW",
	_DoubleColon: "DOUBLE_COLON",
}

// String returns the canonical name of the token kind.
func (k TokenKind) String() string {
	if k < tokenCount {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= _Let && k <= _As
}

// IsOperator reports whether k is an operator.
func (k TokenKind) IsOperator() bool {
	return k >= _Plus && k <= _BitXorAssign
}

// IsLiteral reports whether k is a literal (identifiers included).
func (k TokenKind) IsLiteral() bool {
	return k >= _Identifier && k <= _Character
}

// IsEOF reports whether k is END_OF_FILE.
func (k TokenKind) IsEOF() bool {
	return k == _EOF
}

// IsError reports whether k is ERROR.
func (k TokenKind) IsError() bool {
	return k == _Error
}

// keywords maps reserved words to their token kind.
var keywords = map[string]TokenKind{
	"let":         _Let,
	"const":       _Const,
	"fn":          _Fn,
	"async":       _Async,
	"await":       _Await,
	"coroutine":   _Coroutine,
	"struct":      _Struct,
	"process":     _Process,
	"class":       _Class,
	"interface":   _Interface,
	"if":          _If,
	"else":        _Else,
	"for":         _For,
	"while":       _While,
	"return":      _Return,
	"break":       _Break,
	"continue":    _Continue,
	"import":      _Import,
	"export":      _Export,
	"use":         _Use,
	"namespace":   _Namespace,
	"constructor": _Constructor,
	"this":        _This,
	"new":         _New,
	"yield":       _Yield,
	"try":         _Try,
	"catch":       _Catch,
	"finally":     _Finally,
	"null":        _Null,
	"true":        _True,
	"false":       _False,
	"typeof":      _Typeof,
	"instanceof":  _Instanceof,
	"as":          _As,
}

// LookupKeyword returns the keyword kind for ident, or _Identifier.
func LookupKeyword(ident string) TokenKind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Identifier
}

// Token is a single lexical unit. ERROR tokens carry the diagnostic
// message in Lexeme instead of source text.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

// Pos returns the token's position.
func (t Token) Pos() Pos {
	return NewPos(t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}
