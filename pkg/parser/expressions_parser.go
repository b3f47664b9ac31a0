package parser

import (
	"strconv"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
)

// Precedence, low to high: assignment, ternary, range, logical or, logical
// and, equality, comparison, term, factor, nullish, power, unary, postfix.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	left, err := p.ternary()
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case lexer.TokenAssign, lexer.TokenAddAssign, lexer.TokenSubAssign:
		opTok := p.advance()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		op := ast.AssignSet
		switch opTok.Kind {
		case lexer.TokenAddAssign:
			op = ast.AssignAdd
		case lexer.TokenSubAssign:
			op = ast.AssignSub
		}
		if !assignable(left) {
			return nil, &Error{Msg: "invalid assignment target", Span: opTok.Span}
		}
		return ast.NewAssignExpression(opTok.Span, left, op, value), nil
	case lexer.TokenIncr, lexer.TokenDecr:
		opTok := p.advance()
		op := ast.AssignInc
		if opTok.Kind == lexer.TokenDecr {
			op = ast.AssignDec
		}
		if !assignable(left) {
			return nil, &Error{Msg: "invalid assignment target", Span: opTok.Span}
		}
		return ast.NewAssignExpression(opTok.Span, left, op, nil), nil
	}
	return left, nil
}

func assignable(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.GetExpression, *ast.IndexExpression:
		return true
	}
	return false
}

func (p *Parser) ternary() (ast.Expression, error) {
	cond, err := p.rangeExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.TokenQuestion) {
		return cond, nil
	}
	span := p.previous().Span
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon, "expected ':' in ternary expression"); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ast.NewTernaryExpression(span, cond, then, els), nil
}

func (p *Parser) rangeExpr() (ast.Expression, error) {
	start, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokenRange) && !p.check(lexer.TokenRangeEq) {
		return start, nil
	}
	opTok := p.advance()
	end, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	var step ast.Expression
	if p.match(lexer.TokenStep) {
		step, err = p.logicalOr()
		if err != nil {
			return nil, err
		}
	}
	inclusive := opTok.Kind == lexer.TokenRangeEq
	return ast.NewRangeExpression(opTok.Span, start, end, inclusive, step), nil
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenOr) {
		span := p.advance().Span
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewLogicalExpression(span, "or", left, right)
	}
	return left, nil
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenAnd) {
		span := p.advance().Span
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = ast.NewLogicalExpression(span, "and", left, right)
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenEquals) || p.check(lexer.TokenNotEquals) {
		opTok := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		op := "=="
		if opTok.Kind == lexer.TokenNotEquals {
			op = "!="
		}
		left = ast.NewBinaryExpression(opTok.Span, op, left, right)
	}
	return left, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Kind {
		case lexer.TokenLesser:
			op = "<"
		case lexer.TokenLesserEquals:
			op = "<="
		case lexer.TokenGreater:
			op = ">"
		case lexer.TokenGreaterEquals:
			op = ">="
		default:
			return left, nil
		}
		span := p.advance().Span
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(span, op, left, right)
	}
}

func (p *Parser) term() (ast.Expression, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenAdd) || p.check(lexer.TokenSub) {
		opTok := p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		op := "+"
		if opTok.Kind == lexer.TokenSub {
			op = "-"
		}
		left = ast.NewBinaryExpression(opTok.Span, op, left, right)
	}
	return left, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	left, err := p.nullish()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Kind {
		case lexer.TokenMult:
			op = "*"
		case lexer.TokenDiv:
			op = "/"
		case lexer.TokenMod:
			op = "%"
		default:
			return left, nil
		}
		span := p.advance().Span
		right, err := p.nullish()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(span, op, left, right)
	}
}

func (p *Parser) nullish() (ast.Expression, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokenNullish) {
		span := p.advance().Span
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(span, "??", left, right)
	}
	return left, nil
}

// power is right-associative: 2**3**2 is 2**(3**2).
func (p *Parser) power() (ast.Expression, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokenPow) {
		return base, nil
	}
	span := p.advance().Span
	exp, err := p.power()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(span, "**", base, exp), nil
}

func (p *Parser) unary() (ast.Expression, error) {
	switch p.peek().Kind {
	case lexer.TokenNot:
		span := p.advance().Span
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(span, "!", right), nil
	case lexer.TokenSub:
		span := p.advance().Span
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(span, "-", right), nil
	}
	return p.postfix()
}

// postfix handles chained calls, indexing and property access.
func (p *Parser) postfix() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case lexer.TokenLParen:
			span := p.advance().Span
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			expr = ast.NewCallExpression(span, expr, args)
		case lexer.TokenLBracket:
			span := p.advance().Span
			p.skipEOLs()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			p.skipEOLs()
			if _, err := p.expect(lexer.TokenRBracket, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = ast.NewIndexExpression(span, expr, index)
		case lexer.TokenDot:
			span := p.advance().Span
			name, err := p.expectIdent("property name")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGetExpression(span, expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) argList() ([]ast.Expression, error) {
	args := []ast.Expression{}
	p.skipEOLs()
	for !p.check(lexer.TokenRParen) {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipEOLs()
		if !p.match(lexer.TokenComma) {
			break
		}
		p.skipEOLs()
	}
	if _, err := p.expect(lexer.TokenRParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokenNum:
		p.advance()
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &Error{Msg: "invalid numeric literal '" + tok.Lexeme + "'", Span: tok.Span}
		}
		return ast.NewNumLiteral(tok.Span, n), nil
	case lexer.TokenStr:
		p.advance()
		return ast.NewStrLiteral(tok.Span, tok.Text), nil
	case lexer.TokenTrue:
		p.advance()
		return ast.NewBoolLiteral(tok.Span, true), nil
	case lexer.TokenFalse:
		p.advance()
		return ast.NewBoolLiteral(tok.Span, false), nil
	case lexer.TokenNull:
		p.advance()
		return ast.NewNullLiteral(tok.Span), nil
	case lexer.TokenSelf:
		p.advance()
		return ast.NewSelfExpression(tok.Span), nil
	case lexer.TokenIdent:
		p.advance()
		return ast.NewIdentifier(tok.Span, tok.Text), nil
	case lexer.TokenLParen:
		p.advance()
		p.skipEOLs()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.skipEOLs()
		if _, err := p.expect(lexer.TokenRParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.TokenLBracket:
		return p.listLiteral()
	case lexer.TokenLBrace:
		return p.dictLiteral()
	default:
		return nil, &Error{Msg: "expected expression, found '" + tok.Kind.String() + "'", Span: tok.Span}
	}
}

func (p *Parser) listLiteral() (ast.Expression, error) {
	span := p.advance().Span
	elements := []ast.Expression{}
	p.skipEOLs()
	for !p.check(lexer.TokenRBracket) {
		el, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		p.skipEOLs()
		if !p.match(lexer.TokenComma) {
			break
		}
		p.skipEOLs()
	}
	if _, err := p.expect(lexer.TokenRBracket, "expected ']' after list literal"); err != nil {
		return nil, err
	}
	return ast.NewListLiteral(span, elements), nil
}

func (p *Parser) dictLiteral() (ast.Expression, error) {
	span := p.advance().Span
	entries := []ast.DictEntry{}
	p.skipEOLs()
	for !p.check(lexer.TokenRBrace) {
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon, "expected ':' after dict key"); err != nil {
			return nil, err
		}
		p.skipEOLs()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		p.skipEOLs()
		if !p.match(lexer.TokenComma) {
			break
		}
		p.skipEOLs()
	}
	if _, err := p.expect(lexer.TokenRBrace, "expected '}' after dict literal"); err != nil {
		return nil, err
	}
	return ast.NewDictLiteral(span, entries), nil
}
