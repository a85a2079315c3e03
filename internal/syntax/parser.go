package syntax

import "fmt"

// ErrorHandler is called for each syntax error. Lexical errors are
// reported through the same handler with the ERROR token's message.
type ErrorHandler func(pos Pos, msg string)

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return FormatError(e.Pos, e.Msg)
}

// FormatError renders a syntax error in the canonical
// "Error at line L, column C: msg" form.
func FormatError(pos Pos, msg string) string {
	return fmt.Sprintf("Error at line %d, column %d: %s", pos.Line(), pos.Col(), msg)
}

// Parser performs syntax analysis on Nexus source code.
type Parser struct {
	lexer *Lexer

	cur  Token // current token
	prev Token // most recently consumed token

	// Error handling
	errh     ErrorHandler
	errcnt   int
	first    error // first error encountered
	consumed int   // number of tokens consumed so far

	// Recover enables panic-mode recovery after a top-level statement
	// that reported an error. Enabled by default.
	Recover bool
}

// NewParser creates a new Parser for src. errh may be nil.
func NewParser(src string, errh ErrorHandler) *Parser {
	p := &Parser{
		lexer:   NewLexer(src),
		errh:    errh,
		Recover: true,
	}
	p.next() // prime the parser with first token
	return p
}

// Errors returns the number of errors reported.
func (p *Parser) Errors() int {
	return p.errcnt
}

// HadError reports whether any error was reported.
func (p *Parser) HadError() bool {
	return p.errcnt > 0
}

// FirstError returns the first error encountered, or nil.
func (p *Parser) FirstError() error {
	return p.first
}

// Parse parses the whole source and returns the top-level statements.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.cur.Kind.IsEOF() {
		errs := p.errcnt
		stmts = append(stmts, p.statementProgress())
		if p.Recover && p.errcnt > errs && !p.atBoundary() {
			p.synchronize()
		}
	}
	return stmts
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token, reporting and skipping ERROR tokens.
func (p *Parser) next() {
	p.prev = p.cur
	p.consumed++
	for {
		p.cur = p.lexer.NextToken()
		if !p.cur.Kind.IsError() {
			return
		}
		p.error(p.cur.Lexeme)
	}
}

// check reports whether the current token has kind k.
func (p *Parser) check(k TokenKind) bool {
	return p.cur.Kind == k
}

// got consumes the current token if it has kind k.
func (p *Parser) got(k TokenKind) bool {
	if p.check(k) {
		p.next()
		return true
	}
	return false
}

// consume consumes and returns the current token if it has kind k.
// Otherwise it reports msg and returns the current token without
// advancing.
func (p *Parser) consume(k TokenKind, msg string) Token {
	if p.check(k) {
		tok := p.cur
		p.next()
		return tok
	}
	p.error(msg)
	return p.cur
}

// peek returns the token after the current one without consuming it.
func (p *Parser) peek() Token {
	tok := p.lexer.NextToken()
	p.lexer.UngetToken(tok)
	return tok
}

// ----------------------------------------------------------------------------
// Error handling

// error reports msg at the current token.
func (p *Parser) error(msg string) {
	pos := p.cur.Pos()
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++
	if p.errh != nil {
		p.errh(pos, msg)
	}
}

// synchronize skips tokens until a statement boundary: just after a
// semicolon or before a token that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.next()
	for !p.cur.Kind.IsEOF() {
		if p.prev.Kind == _Semi || startsStatement(p.cur.Kind) {
			return
		}
		p.next()
	}
}

// atBoundary reports whether the parser already sits on a statement
// boundary, in which case synchronize would skip a valid statement.
func (p *Parser) atBoundary() bool {
	return p.prev.Kind == _Semi || startsStatement(p.cur.Kind) || p.cur.Kind.IsEOF()
}

// startsStatement reports whether k begins a statement for recovery purposes.
func startsStatement(k TokenKind) bool {
	switch k {
	case _Class, _Struct, _Fn, _Let, _Const, _If, _While, _For, _Try, _Return, _Process:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Statements

// statementProgress parses one statement and guarantees that at least one
// token is consumed, so statement lists cannot loop on a stuck token.
func (p *Parser) statementProgress() Stmt {
	before := p.consumed
	s := p.statement()
	if p.consumed == before && !p.cur.Kind.IsEOF() {
		p.next()
	}
	return s
}

// statement dispatches on the leading keyword.
func (p *Parser) statement() Stmt {
	pos := p.cur.Pos()
	switch {
	case p.got(_Let):
		return p.varStmt(pos)
	case p.got(_Const):
		return p.constStmt(pos)
	case p.got(_Fn):
		return p.funcStmt(pos)
	case p.got(_Class):
		return p.classStmt(pos)
	case p.got(_Struct):
		return p.structStmt(pos)
	case p.got(_If):
		return p.ifStmt(pos)
	case p.got(_While):
		return p.whileStmt(pos)
	case p.got(_For):
		return p.forStmt(pos)
	case p.got(_Return):
		return p.returnStmt(pos)
	case p.got(_Try):
		return p.tryStmt(pos)
	case p.got(_Lbrace):
		return p.blockStmt(pos)
	case p.got(_Process):
		return p.processStmt(pos)
	case p.isThrow():
		p.next()
		return p.throwStmt(pos)
	}
	return p.exprStmt(pos)
}

// isThrow reports whether the current token starts a throw statement.
// throw is not reserved, so it only counts when followed by an operand.
func (p *Parser) isThrow() bool {
	if !p.check(_Identifier) || p.cur.Lexeme != "throw" {
		return false
	}
	switch p.peek().Kind {
	case _Identifier, _Integer, _Float, _String, _Character, _True, _False,
		_Null, _This, _New, _Lparen, _Not, _Minus:
		return true
	}
	return false
}

// exprStmt parses an expression followed by a mandatory semicolon.
func (p *Parser) exprStmt(pos Pos) Stmt {
	x := p.expr()
	p.consume(_Semi, "Expect ';' after expression.")
	s := &ExprStmt{X: x}
	s.pos = pos
	return s
}

// blockStmt parses the statements of a block; the '{' is already consumed.
func (p *Parser) blockStmt(pos Pos) *BlockStmt {
	s := &BlockStmt{}
	s.pos = pos
	for !p.check(_Rbrace) && !p.cur.Kind.IsEOF() {
		s.Stmts = append(s.Stmts, p.statementProgress())
	}
	p.consume(_Rbrace, "Expect '}' after block.")
	return s
}

// typeName parses an optional type annotation: an identifier, or "".
func (p *Parser) typeName() string {
	if p.got(_Identifier) {
		return p.prev.Lexeme
	}
	return ""
}

// varStmt parses: let Name [: Type] [= Init] ;
func (p *Parser) varStmt(pos Pos) Stmt {
	name := p.consume(_Identifier, "Expect variable name.")
	s := &VarStmt{Name: name.Lexeme}
	s.pos = pos
	if p.got(_Colon) {
		s.Type = p.typeName()
	}
	if p.got(_Assign) {
		s.Init = p.expr()
	}
	p.consume(_Semi, "Expect ';' after variable declaration.")
	return s
}

// constStmt parses: const Name [: Type] = Init ;
func (p *Parser) constStmt(pos Pos) Stmt {
	name := p.consume(_Identifier, "Expect constant name.")
	s := &ConstStmt{Name: name.Lexeme}
	s.pos = pos
	if p.got(_Colon) {
		s.Type = p.typeName()
	}
	p.consume(_Assign, "Expect '=' after constant name.")
	s.Init = p.expr()
	p.consume(_Semi, "Expect ';' after constant declaration.")
	return s
}

// funcStmt parses a function after 'fn', or a class method:
// [async] [coroutine] Name ( Params ) [: Type] { Body }
func (p *Parser) funcStmt(pos Pos) *FuncStmt {
	s := &FuncStmt{}
	s.pos = pos
	s.IsAsync = p.got(_Async)
	s.IsCoroutine = p.got(_Coroutine)

	s.Name = p.consume(_Identifier, "Expect function name.").Lexeme
	p.consume(_Lparen, "Expect '(' after function name.")
	s.Params = p.paramList()
	if p.got(_Colon) {
		s.ReturnType = p.typeName()
	}

	bodyPos := p.cur.Pos()
	p.consume(_Lbrace, "Expect '{' before function body.")
	s.Body = p.blockStmt(bodyPos)
	return s
}

// paramList parses "name [: type], ..." up to and including ')'.
func (p *Parser) paramList() []Param {
	var params []Param
	if !p.check(_Rparen) {
		for {
			name := p.consume(_Identifier, "Expect parameter name.")
			param := Param{Name: name.Lexeme}
			if p.got(_Colon) {
				param.Type = p.typeName()
			}
			params = append(params, param)
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.consume(_Rparen, "Expect ')' after parameters.")
	return params
}

// classStmt parses: class Name [< Super] { Methods }
func (p *Parser) classStmt(pos Pos) Stmt {
	s := &ClassStmt{}
	s.pos = pos
	s.Name = p.consume(_Identifier, "Expect class name.").Lexeme
	if p.got(_Less) {
		s.Superclass = p.consume(_Identifier, "Expect superclass name.").Lexeme
	}
	p.consume(_Lbrace, "Expect '{' before class body.")
	for !p.check(_Rbrace) && !p.cur.Kind.IsEOF() {
		before := p.consumed
		s.Methods = append(s.Methods, p.funcStmt(p.cur.Pos()))
		if p.consumed == before {
			p.next()
		}
	}
	p.consume(_Rbrace, "Expect '}' after class body.")
	return s
}

// structStmt parses: struct Name { field: Type, ... }
func (p *Parser) structStmt(pos Pos) Stmt {
	s := &StructStmt{}
	s.pos = pos
	s.Name = p.consume(_Identifier, "Expect struct name.").Lexeme
	p.consume(_Lbrace, "Expect '{' before struct body.")
	if !p.check(_Rbrace) {
		for {
			name := p.consume(_Identifier, "Expect field name.")
			p.consume(_Colon, "Expect ':' after field name.")
			s.Fields = append(s.Fields, Param{Name: name.Lexeme, Type: p.typeName()})
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.consume(_Rbrace, "Expect '}' after struct body.")
	return s
}

// ifStmt parses: if ( Cond ) Then [else Else]
func (p *Parser) ifStmt(pos Pos) Stmt {
	s := &IfStmt{}
	s.pos = pos
	p.consume(_Lparen, "Expect '(' after 'if'.")
	s.Cond = p.expr()
	p.consume(_Rparen, "Expect ')' after if condition.")
	s.Then = p.statementProgress()
	if p.got(_Else) {
		s.Else = p.statementProgress()
	}
	return s
}

// whileStmt parses: while ( Cond ) Body
func (p *Parser) whileStmt(pos Pos) Stmt {
	s := &WhileStmt{}
	s.pos = pos
	p.consume(_Lparen, "Expect '(' after 'while'.")
	s.Cond = p.expr()
	p.consume(_Rparen, "Expect ')' after while condition.")
	s.Body = p.statementProgress()
	return s
}

// forStmt parses: for ( [Init] ; [Cond] ; [Incr] ) Body
// Init is a let, a const or an expression statement.
func (p *Parser) forStmt(pos Pos) Stmt {
	s := &ForStmt{}
	s.pos = pos
	p.consume(_Lparen, "Expect '(' after 'for'.")

	if !p.got(_Semi) {
		initPos := p.cur.Pos()
		switch {
		case p.got(_Let):
			s.Init = p.varStmt(initPos)
		case p.got(_Const):
			s.Init = p.constStmt(initPos)
		default:
			s.Init = p.exprStmt(initPos)
		}
	}

	if !p.got(_Semi) {
		s.Cond = p.expr()
		p.consume(_Semi, "Expect ';' after for condition.")
	}

	if !p.got(_Rparen) {
		s.Incr = p.expr()
		p.consume(_Rparen, "Expect ')' after for increment.")
	}

	s.Body = p.statementProgress()
	return s
}

// returnStmt parses: return [Value] ;
func (p *Parser) returnStmt(pos Pos) Stmt {
	s := &ReturnStmt{}
	s.pos = pos
	if !p.check(_Semi) {
		s.Value = p.expr()
	}
	p.consume(_Semi, "Expect ';' after return value.")
	return s
}

// tryStmt parses: try { Body } (catch ( Name [: Type] ) { Body })* [finally { Body }]
func (p *Parser) tryStmt(pos Pos) Stmt {
	s := &TryStmt{}
	s.pos = pos
	bodyPos := p.cur.Pos()
	p.consume(_Lbrace, "Expect '{' before try body.")
	s.Body = p.blockStmt(bodyPos)

	for p.check(_Catch) {
		catchPos := p.cur.Pos()
		p.next()
		s.Catches = append(s.Catches, p.catchClause(catchPos))
	}

	if p.got(_Finally) {
		finPos := p.cur.Pos()
		p.consume(_Lbrace, "Expect '{' before finally body.")
		s.Finally = p.blockStmt(finPos)
	}
	return s
}

// catchClause parses a catch clause after the 'catch' keyword.
func (p *Parser) catchClause(pos Pos) *CatchStmt {
	c := &CatchStmt{}
	c.pos = pos
	p.consume(_Lparen, "Expect '(' after 'catch'.")
	c.Name = p.consume(_Identifier, "Expect catch parameter name.").Lexeme
	if p.got(_Colon) {
		c.Type = p.typeName()
	}
	p.consume(_Rparen, "Expect ')' after catch parameter.")
	bodyPos := p.cur.Pos()
	p.consume(_Lbrace, "Expect '{' before catch body.")
	c.Body = p.blockStmt(bodyPos)
	return c
}

// throwStmt parses: throw X ;
func (p *Parser) throwStmt(pos Pos) Stmt {
	s := &ThrowStmt{X: p.expr()}
	s.pos = pos
	p.consume(_Semi, "Expect ';' after throw expression.")
	return s
}

// processStmt parses: process.spawn(() -> { Block } | Expr);
// A block body is parsed and replaced by a "block" literal.
func (p *Parser) processStmt(pos Pos) Stmt {
	p.consume(_Dot, "Expect '.' after 'process'.")
	spawn := p.consume(_Identifier, "Expect 'spawn' after 'process.'.")
	if spawn.Lexeme != "spawn" {
		p.error("Expect 'spawn' after 'process.'.")
	}
	p.consume(_Lparen, "Expect '(' after 'process.spawn'.")
	p.consume(_Lparen, "Expect '(' after 'process.spawn'.")
	p.consume(_Rparen, "Expect ')' after lambda parameters.")
	p.consume(_Arrow, "Expect '->' after lambda parameters.")

	s := &ProcessStmt{ID: "spawn"}
	s.pos = pos
	if p.check(_Lbrace) {
		blockPos := p.cur.Pos()
		p.next()
		p.blockStmt(blockPos)
		lit := &Literal{Value: BlockLit, Type: BlockLit}
		lit.pos = blockPos
		s.Body = lit
	} else {
		s.Body = p.expr()
	}

	p.consume(_Rparen, "Expect ')' after process.spawn body.")
	p.consume(_Semi, "Expect ';' after process.spawn statement.")
	return s
}
