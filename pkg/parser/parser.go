package parser

import (
	"fmt"

	"quetite/interpreter-go/pkg/ast"
	"quetite/interpreter-go/pkg/lexer"
)

// Error is a grammatical violation with its location. Parse errors are
// batched; a non-empty batch prevents evaluation.
type Error struct {
	Msg  string
	Span lexer.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("SyntaxError: %s", e.Msg)
}

// Parser is a recursive-descent consumer of the token stream.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errs   []*Error

	fnDepth   int
	loopDepth int
}

// New prepares a parser over a token stream ending in EOF.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole stream. On syntax errors the parser records
// them, synchronises to the next statement boundary and keeps going, so a
// single run reports every error it can find.
func (p *Parser) Parse() (*ast.Program, []*Error) {
	program := &ast.Program{}
	for {
		p.skipEOLs()
		if p.check(lexer.TokenEOF) {
			break
		}
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		program.Body = append(program.Body, stmt)
	}
	return program, p.errs
}

//-----------------------------------------------------------------------------
// Declarations
//-----------------------------------------------------------------------------

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.check(lexer.TokenFn):
		p.advance()
		return p.fnDecl()
	case p.check(lexer.TokenObj):
		p.advance()
		return p.objDecl()
	case p.check(lexer.TokenVar):
		p.advance()
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) fnDecl() (ast.Statement, error) {
	span := p.previous().Span
	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}

	// A loop around the declaration does not authorise break/continue
	// inside the body.
	p.fnDepth++
	savedLoops := p.loopDepth
	p.loopDepth = 0
	var body ast.Statement
	if p.check(lexer.TokenDo) {
		body, err = p.block()
	} else {
		body, err = p.statement()
	}
	p.loopDepth = savedLoops
	p.fnDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewFnDecl(span, name, params, body), nil
}

func (p *Parser) objDecl() (ast.Statement, error) {
	span := p.previous().Span
	name, err := p.expectIdent("object name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDo, "expected 'do' after object name"); err != nil {
		return nil, err
	}

	var methods []*ast.FnDecl
	for {
		p.skipEOLs()
		if p.check(lexer.TokenEnd) || p.check(lexer.TokenEOF) {
			break
		}
		mSpan := p.peek().Span
		mName, err := p.expectIdent("method name")
		if err != nil {
			return nil, err
		}
		params, err := p.paramList()
		if err != nil {
			return nil, err
		}
		p.fnDepth++
		savedLoops := p.loopDepth
		p.loopDepth = 0
		body, err := p.block()
		p.loopDepth = savedLoops
		p.fnDepth--
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.NewFnDecl(mSpan, mName, params, body))
	}
	if _, err := p.expect(lexer.TokenEnd, "expected 'end' to close object declaration"); err != nil {
		return nil, err
	}
	p.endStatement()
	return ast.NewObjDecl(span, name, methods), nil
}

// varDecl parses `var IDENT (= expression)?`. When the declaration is the
// header of a while loop (`var i = 0 while ...`) the loop statement is
// produced instead.
func (p *Parser) varDecl() (ast.Statement, error) {
	span := p.previous().Span
	name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.match(lexer.TokenAssign) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	decl := ast.NewVarDecl(span, name, init)

	if p.check(lexer.TokenWhile) {
		p.advance()
		return p.whileStatement(decl)
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) paramList() ([]string, error) {
	if _, err := p.expect(lexer.TokenLParen, "expected '(' before parameters"); err != nil {
		return nil, err
	}
	params := []string{}
	p.skipEOLs()
	for !p.check(lexer.TokenRParen) {
		var name string
		if p.check(lexer.TokenSelf) {
			p.advance()
			name = "self"
		} else {
			ident, err := p.expectIdent("parameter name")
			if err != nil {
				return nil, err
			}
			name = ident
		}
		params = append(params, name)
		p.skipEOLs()
		if !p.match(lexer.TokenComma) {
			break
		}
		p.skipEOLs()
	}
	if _, err := p.expect(lexer.TokenRParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

//-----------------------------------------------------------------------------
// Token plumbing
//-----------------------------------------------------------------------------

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if !p.check(lexer.TokenEOF) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.tokens[p.pos].Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind lexer.TokenKind, msg string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAtCurrent("%s, found '%s'", msg, p.peek().Kind)
}

func (p *Parser) expectIdent(what string) (string, error) {
	if p.check(lexer.TokenIdent) {
		return p.advance().Text, nil
	}
	return "", p.errorAtCurrent("expected %s, found '%s'", what, p.peek().Kind)
}

func (p *Parser) skipEOLs() {
	for p.check(lexer.TokenEOL) {
		p.advance()
	}
}

// endStatement consumes the EOL that terminates a simple statement. EOF
// and block-closing keywords are accepted without being consumed so inline
// forms like `fn sq(n) return n*n` inside a block still parse.
func (p *Parser) endStatement() error {
	switch p.peek().Kind {
	case lexer.TokenEOL:
		p.advance()
		return nil
	case lexer.TokenEOF, lexer.TokenEnd, lexer.TokenElse, lexer.TokenCatch, lexer.TokenEnsure:
		return nil
	default:
		return p.errorAtCurrent("expected end of line, found '%s'", p.peek().Kind)
	}
}

func (p *Parser) errorAtCurrent(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: p.peek().Span}
}

func (p *Parser) record(err error) {
	if pe, ok := err.(*Error); ok {
		p.errs = append(p.errs, pe)
		return
	}
	p.errs = append(p.errs, &Error{Msg: err.Error(), Span: p.peek().Span})
}

// synchronize skips tokens until the next statement boundary so one error
// does not cascade into dozens.
func (p *Parser) synchronize() {
	for !p.check(lexer.TokenEOF) {
		if p.advance().Kind == lexer.TokenEOL {
			return
		}
		switch p.peek().Kind {
		case lexer.TokenVar, lexer.TokenFn, lexer.TokenObj, lexer.TokenIf,
			lexer.TokenFor, lexer.TokenWhile, lexer.TokenReturn,
			lexer.TokenBreak, lexer.TokenContinue, lexer.TokenUse,
			lexer.TokenThrow, lexer.TokenTry, lexer.TokenMatch,
			lexer.TokenEnd:
			return
		}
	}
}
