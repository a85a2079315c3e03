package syntax

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence, lowest first:
//
//	assignment  = (right associative, target must be an identifier)
//	or          ||
//	and         &&
//	equality    == !=
//	comparison  < <= > >=
//	term        + -
//	factor      * / %
//	unary       ! - await yield
//	call        callee(args) followed by member postfixes
//	member      primary .name [index]

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.assignment()
}

// assignment parses Name = Value. Any other target is reported and the
// left-hand side is returned unchanged.
func (p *Parser) assignment() Expr {
	x := p.orExpr()
	if p.got(_Assign) {
		value := p.assignment()
		if id, ok := x.(*Identifier); ok {
			a := &Assign{Name: id.Name, Value: value}
			a.pos = id.pos
			return a
		}
		p.error("Invalid assignment target.")
	}
	return x
}

// binary parses a left-associative chain of operators from ops over operand.
func (p *Parser) binary(operand func() Expr, ops ...TokenKind) Expr {
	x := operand()
	for {
		matched := false
		for _, k := range ops {
			if p.check(k) {
				matched = true
				break
			}
		}
		if !matched {
			return x
		}
		op := p.cur
		p.next()
		b := &Binary{Left: x, Op: op.Lexeme, Right: operand()}
		b.pos = x.Pos()
		x = b
	}
}

func (p *Parser) orExpr() Expr {
	return p.binary(p.andExpr, _OrOr)
}

func (p *Parser) andExpr() Expr {
	return p.binary(p.equality, _AndAnd)
}

func (p *Parser) equality() Expr {
	return p.binary(p.comparison, _Equal, _NotEqual)
}

func (p *Parser) comparison() Expr {
	return p.binary(p.term, _Less, _LessEqual, _Greater, _GreaterEqual)
}

func (p *Parser) term() Expr {
	return p.binary(p.factor, _Plus, _Minus)
}

func (p *Parser) factor() Expr {
	return p.binary(p.unary, _Star, _Slash, _Percent)
}

// unary parses prefix operators.
func (p *Parser) unary() Expr {
	pos := p.cur.Pos()
	switch {
	case p.check(_Not), p.check(_Minus):
		op := p.cur.Lexeme
		p.next()
		u := &Unary{Op: op, Right: p.unary()}
		u.pos = pos
		return u
	case p.got(_Await):
		a := &Await{Inner: p.unary()}
		a.pos = pos
		return a
	case p.got(_Yield):
		y := &Yield{}
		y.pos = pos
		if !p.check(_Semi) && !p.check(_Rparen) {
			y.Inner = p.unary()
		}
		return y
	}
	return p.call()
}

// call parses call suffixes wrapped around member chains, so that
// a.b(c)[d] yields Index{Call{Member{a, b}, [c]}, d}.
func (p *Parser) call() Expr {
	x := p.member(p.primary())
	for p.check(_Lparen) {
		p.next()
		c := &Call{Callee: x}
		c.pos = x.Pos()
		if !p.check(_Rparen) {
			for {
				c.Args = append(c.Args, p.expr())
				if !p.got(_Comma) {
					break
				}
			}
		}
		p.consume(_Rparen, "Expect ')' after arguments.")
		x = p.member(c)
	}
	return x
}

// member parses .name and [index] postfixes applied to x.
func (p *Parser) member(x Expr) Expr {
	for {
		switch {
		case p.got(_Dot):
			name := p.consume(_Identifier, "Expect property name after '.'.")
			m := &Member{Object: x, Name: name.Lexeme}
			m.pos = x.Pos()
			x = m
		case p.got(_Lbrack):
			idx := &Index{Object: x, Index: p.expr()}
			idx.pos = x.Pos()
			p.consume(_Rbrack, "Expect ']' after index expression.")
			x = idx
		default:
			return x
		}
	}
}

// primary parses literals, names, this, super, groupings and
// array or object literals. On failure it reports an error and returns
// a null literal without consuming the current token.
func (p *Parser) primary() Expr {
	tok := p.cur
	pos := tok.Pos()
	lit := func(value, typ string) Expr {
		p.next()
		l := &Literal{Value: value, Type: typ}
		l.pos = pos
		return l
	}

	switch tok.Kind {
	case _False:
		return lit("false", BoolLit)
	case _True:
		return lit("true", BoolLit)
	case _Null:
		return lit("null", NullLit)
	case _Integer, _Float:
		return lit(tok.Lexeme, NumberLit)
	case _String, _Character:
		return lit(tok.Lexeme, StringLit)
	case _This:
		p.next()
		t := &This{}
		t.pos = pos
		return t
	case _Identifier:
		if tok.Lexeme == "super" && p.peek().Kind == _Dot {
			p.next()
			p.next()
			s := &Super{Method: p.consume(_Identifier, "Expect superclass method name.").Lexeme}
			s.pos = pos
			return s
		}
		p.next()
		id := &Identifier{Name: tok.Lexeme}
		id.pos = pos
		return id
	case _Lparen:
		p.next()
		g := &Grouping{Inner: p.expr()}
		g.pos = pos
		p.consume(_Rparen, "Expect ')' after expression.")
		return g
	case _Lbrack:
		p.next()
		return p.arrayLit(pos)
	case _Lbrace:
		p.next()
		return p.objectLit(pos)
	}

	p.error("Expect expression.")
	l := &Literal{Value: "null", Type: NullLit}
	l.pos = pos
	return l
}

// arrayLit parses [e, ...] after the '['.
func (p *Parser) arrayLit(pos Pos) Expr {
	a := &Array{}
	a.pos = pos
	if !p.check(_Rbrack) {
		for {
			a.Elements = append(a.Elements, p.expr())
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.consume(_Rbrack, "Expect ']' after array elements.")
	return a
}

// objectLit parses {key: value, ...} after the '{'.
func (p *Parser) objectLit(pos Pos) Expr {
	o := &Object{}
	o.pos = pos
	if !p.check(_Rbrace) {
		for {
			key := p.consume(_Identifier, "Expect property name.")
			p.consume(_Colon, "Expect ':' after property name.")
			o.Properties = append(o.Properties, Property{Key: key.Lexeme, Value: p.expr()})
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.consume(_Rbrace, "Expect '}' after object literal.")
	return o
}
