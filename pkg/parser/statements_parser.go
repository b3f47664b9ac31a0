package parser

import (
	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
)

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.check(lexer.TokenIf):
		p.advance()
		return p.ifStatement()
	case p.check(lexer.TokenMatch):
		p.advance()
		return p.matchStatement()
	case p.check(lexer.TokenFor):
		p.advance()
		return p.forStatement()
	case p.check(lexer.TokenWhile):
		p.advance()
		return p.whileStatement(nil)
	case p.check(lexer.TokenReturn):
		p.advance()
		return p.returnStatement()
	case p.check(lexer.TokenBreak):
		p.advance()
		return p.breakStatement()
	case p.check(lexer.TokenContinue):
		p.advance()
		return p.continueStatement()
	case p.check(lexer.TokenThrow):
		p.advance()
		return p.throwStatement()
	case p.check(lexer.TokenTry):
		p.advance()
		return p.tryStatement()
	case p.check(lexer.TokenUse):
		p.advance()
		return p.useStatement()
	case p.check(lexer.TokenDo):
		return p.block()
	default:
		return p.exprStatement()
	}
}

// block parses `do declaration* end`.
func (p *Parser) block() (ast.Statement, error) {
	doTok, err := p.expect(lexer.TokenDo, "expected 'do' to open block")
	if err != nil {
		return nil, err
	}
	body, _, err := p.blockBody(lexer.TokenEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close block"); err != nil {
		return nil, err
	}
	p.endStatement()
	return ast.NewBlockStatement(doTok.Span, body), nil
}

// blockBody collects declarations until one of the stop keywords or EOF.
// The stopping token is left unconsumed and returned. A statement that fails
// to parse is recorded and skipped, so the enclosing block still closes.
func (p *Parser) blockBody(stops ...lexer.TokenKind) ([]ast.Statement, lexer.TokenKind, error) {
	var body []ast.Statement
	for {
		p.skipEOLs()
		kind := p.peek().Kind
		if kind == lexer.TokenEOF {
			return body, kind, nil
		}
		for _, stop := range stops {
			if kind == stop {
				return body, kind, nil
			}
		}
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		body = append(body, stmt)
	}
}

// ifStatement parses both the bracketed form
// `if c do ... end else do ... end` and the folded form
// `if c do ... else ... end`.
func (p *Parser) ifStatement() (ast.Statement, error) {
	span := p.previous().Span
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDo, "expected 'do' after if condition"); err != nil {
		return nil, err
	}
	thenBody, stop, err := p.blockBody(lexer.TokenEnd, lexer.TokenElse)
	if err != nil {
		return nil, err
	}
	then := ast.NewBlockStatement(span, thenBody)

	var elseStmt ast.Statement
	if stop == lexer.TokenElse {
		p.advance()
		elseStmt, err = p.elseBranch()
		if err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close if"); err != nil {
			return nil, err
		}
		if p.check(lexer.TokenElse) {
			p.advance()
			elseStmt, err = p.elseBranch()
			if err != nil {
				return nil, err
			}
		}
	}
	p.endStatement()
	return ast.NewIfStatement(span, cond, then, elseStmt), nil
}

func (p *Parser) elseBranch() (ast.Statement, error) {
	if p.check(lexer.TokenIf) {
		p.advance()
		return p.ifStatement()
	}
	if p.check(lexer.TokenDo) {
		return p.block()
	}
	// folded form: else body shares the if's closing end
	span := p.previous().Span
	body, _, err := p.blockBody(lexer.TokenEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close else"); err != nil {
		return nil, err
	}
	return ast.NewBlockStatement(span, body), nil
}

// whileStatement parses `while cond (step assignment)? block`. The header
// declaration, when present, was parsed by varDecl.
func (p *Parser) whileStatement(header *ast.VarDecl) (ast.Statement, error) {
	span := p.previous().Span
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	var step ast.Expression
	if p.match(lexer.TokenStep) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	p.loopDepth++
	body, err := p.block()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(span, header, cond, step, body), nil
}

func (p *Parser) forStatement() (ast.Statement, error) {
	span := p.previous().Span
	valueName, err := p.expectIdent("loop variable name")
	if err != nil {
		return nil, err
	}
	indexName := ""
	if p.match(lexer.TokenComma) {
		indexName, err = p.expectIdent("loop index name")
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenIn, "expected 'in' after loop variables"); err != nil {
		return nil, err
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.block()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(span, valueName, indexName, iterable, body), nil
}

func (p *Parser) matchStatement() (ast.Statement, error) {
	span := p.previous().Span
	discriminant, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDo, "expected 'do' after match discriminant"); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm
	var elseStmt ast.Statement
	for {
		p.skipEOLs()
		if p.check(lexer.TokenEnd) || p.check(lexer.TokenEOF) {
			break
		}
		if p.check(lexer.TokenElse) {
			p.advance()
			elseStmt, err = p.statement()
			if err != nil {
				return nil, err
			}
			continue
		}
		pattern, err := p.expression()
		if err != nil {
			return nil, err
		}
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})
	}
	if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close match"); err != nil {
		return nil, err
	}
	p.endStatement()
	return ast.NewMatchStatement(span, discriminant, arms, elseStmt), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	span := p.previous().Span
	if p.fnDepth == 0 {
		return nil, &Error{Msg: "return outside of a function", Span: span}
	}
	var value ast.Expression
	if !p.check(lexer.TokenEOL) && !p.check(lexer.TokenEOF) && !p.check(lexer.TokenEnd) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(span, value), nil
}

func (p *Parser) breakStatement() (ast.Statement, error) {
	span := p.previous().Span
	if p.loopDepth == 0 {
		return nil, &Error{Msg: "break outside of a loop", Span: span}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewBreakStatement(span), nil
}

func (p *Parser) continueStatement() (ast.Statement, error) {
	span := p.previous().Span
	if p.loopDepth == 0 {
		return nil, &Error{Msg: "continue outside of a loop", Span: span}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewContinueStatement(span), nil
}

func (p *Parser) throwStatement() (ast.Statement, error) {
	span := p.previous().Span
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewThrowStatement(span, value), nil
}

// tryStatement accepts both the bracketed form
// `try do ... end catch e,v do ... end ensure do ... end` and the folded
// form `try do ... catch e,v do ... ensure do ... end`.
func (p *Parser) tryStatement() (ast.Statement, error) {
	span := p.previous().Span
	if _, err := p.expect(lexer.TokenDo, "expected 'do' after try"); err != nil {
		return nil, err
	}
	tryBody, stop, err := p.blockBody(lexer.TokenEnd, lexer.TokenCatch)
	if err != nil {
		return nil, err
	}
	body := ast.NewBlockStatement(span, tryBody)

	if stop == lexer.TokenEnd {
		p.advance()
		p.skipEOLs()
	}
	if _, err := p.expect(lexer.TokenCatch, "expected 'catch' after try body"); err != nil {
		return nil, err
	}

	errName, valName := "", ""
	if p.check(lexer.TokenIdent) {
		errName = p.advance().Text
		if p.match(lexer.TokenComma) {
			valName, err = p.expectIdent("catch value name")
			if err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(lexer.TokenDo, "expected 'do' after catch clause"); err != nil {
		return nil, err
	}
	catchSpan := p.previous().Span
	catchBody, stop, err := p.blockBody(lexer.TokenEnd, lexer.TokenEnsure)
	if err != nil {
		return nil, err
	}
	catch := ast.NewBlockStatement(catchSpan, catchBody)

	var ensure ast.Statement
	if stop == lexer.TokenEnd {
		p.advance()
		rewind := p.pos
		p.skipEOLs()
		if p.check(lexer.TokenEnsure) {
			p.advance()
			ensure, err = p.block()
			if err != nil {
				return nil, err
			}
		} else {
			p.pos = rewind
		}
	} else if stop == lexer.TokenEnsure {
		p.advance()
		if _, err := p.expect(lexer.TokenDo, "expected 'do' after ensure"); err != nil {
			return nil, err
		}
		ensureSpan := p.previous().Span
		ensureBody, _, err := p.blockBody(lexer.TokenEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close try"); err != nil {
			return nil, err
		}
		ensure = ast.NewBlockStatement(ensureSpan, ensureBody)
	}
	p.endStatement()
	return ast.NewTryStatement(span, body, errName, valName, catch, ensure), nil
}

func (p *Parser) useStatement() (ast.Statement, error) {
	span := p.previous().Span
	path, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewUseStatement(span, path), nil
}

func (p *Parser) exprStatement() (ast.Statement, error) {
	span := p.peek().Span
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(span, expr), nil
}
