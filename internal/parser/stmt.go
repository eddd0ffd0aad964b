package parser

import (
	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// parseBlock: '{' Statement* '}'. When m >= 0 the block adopts the label parsed after m.
func (p *Parser) parseBlock(m int) {
	if !p.at(token.LBrace) {
		if m >= 0 {
			p.openFrom(m, ast.KindBlock)
			p.close()
		}
		p.err(diag.SynExpectBlock, "expected '{', got '"+p.peek().Text+"'")
		return
	}
	p.openFrom(m, ast.KindBlock)
	p.bump() // {
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		p.parseStatement()
		if p.pos == before {
			p.errorToken(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"' in block")
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	p.close()
}

// atLabel reports whether the next tokens are `name :` followed by a block or loop.
func (p *Parser) atLabel() bool {
	if !p.at(token.Ident) || !p.atN(1, token.Colon) {
		return false
	}
	switch p.peekN(2).Kind {
	case token.LBrace, token.KwWhile, token.KwFor, token.KwInline:
		return true
	}
	return false
}

// parseBlockLabel parses `name :` and returns the mark to hand to the labelled node.
func (p *Parser) parseBlockLabel() int {
	m := p.mark()
	p.open(ast.KindBlockLabel)
	p.symbol()
	p.bump() // ':'
	p.close()
	return m
}

// parseBreakLabel: ':' name
func (p *Parser) parseBreakLabel() {
	p.open(ast.KindBreakLabel)
	p.bump() // ':'
	p.symbol()
	p.close()
}

// parseStatement parses one statement inside a block.
func (p *Parser) parseStatement() {
	switch p.peek().Kind {
	case token.KwConst, token.KwVar:
		p.parseVarDecl(-1)
		return
	case token.KwComptime:
		if p.atN(1, token.KwConst) || p.atN(1, token.KwVar) {
			p.parseVarDecl(-1)
			return
		}
		p.open(ast.KindExprStatement)
		p.bump()
		p.parseBlockExprStatement()
		p.close()
		return
	case token.KwNosuspend, token.KwSuspend:
		p.open(ast.KindExprStatement)
		p.bump()
		p.parseBlockExprStatement()
		p.close()
		return
	case token.KwDefer, token.KwErrdefer:
		p.open(ast.KindDeferStatement)
		if p.bump().Kind == token.KwErrdefer && p.at(token.Pipe) {
			p.parsePayload(ast.KindPayload)
		}
		p.parseBlockExprStatement()
		p.close()
		return
	case token.KwIf:
		p.parseIf(-1, true)
		return
	case token.KwSwitch:
		p.parseSwitch()
		p.eat(token.Semicolon)
		return
	case token.LBrace:
		p.parseBlock(-1)
		return
	case token.KwWhile, token.KwFor, token.KwInline:
		if p.parseLoop(-1, true) {
			return
		}
	case token.Ident:
		if p.atLabel() {
			m := p.parseBlockLabel()
			if p.at(token.LBrace) {
				p.parseBlock(m)
				return
			}
			p.parseLoop(m, true)
			return
		}
	case token.Semicolon:
		p.errorToken(diag.SynStrayToken, "empty statement")
		return
	}

	if !canStartExpr(p.peek().Kind) {
		p.resync(diag.SynExpectExpression, "expected statement, got '"+p.peek().Text+"'")
		return
	}
	p.open(ast.KindExprStatement)
	p.parseAssignExpr()
	p.expectSemicolon("expected ';' after statement")
	p.close()
}

// parseBlockExprStatement: Block | AssignExpr ';'
func (p *Parser) parseBlockExprStatement() {
	if p.at(token.LBrace) {
		p.parseBlock(-1)
		return
	}
	p.parseAssignExpr()
	p.expectSemicolon("expected ';'")
}

// parseBody parses a branch body. In statement position a non-block body
// is an assignment; the caller decides about the trailing ';'.
func (p *Parser) parseBody(stmt bool) (endsWithBlock bool) {
	if p.at(token.LBrace) {
		p.parseBlock(-1)
		return true
	}
	if p.atLabel() && p.peekN(2).Kind == token.LBrace {
		m := p.parseBlockLabel()
		p.parseBlock(m)
		return true
	}
	if stmt {
		p.parseAssignExpr()
	} else {
		p.parseExpr()
	}
	return false
}

// parseIf: if ( Expr ) PtrPayload? Body (else Payload? Body)?
func (p *Parser) parseIf(m int, stmt bool) {
	p.openFrom(m, ast.KindIfExpr)
	defer p.close()
	p.bump() // if
	p.parseCondition()
	if p.at(token.Pipe) {
		p.parsePayload(ast.KindPtrPayload)
	}
	block := p.parseBody(stmt)
	if p.eat(token.KwElse) {
		if p.at(token.Pipe) {
			p.parsePayload(ast.KindPayload)
		}
		if stmt && p.at(token.KwIf) {
			p.parseIf(-1, true)
			return
		}
		block = p.parseBody(stmt)
	}
	if stmt && !block {
		p.expectSemicolon("expected ';' after if statement")
	}
}

func (p *Parser) parseCondition() {
	if !p.expect(token.LParen, diag.SynUnclosedParen, "expected '('") {
		return
	}
	p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
}

// parseLoop handles `inline? while ...` and `inline? for ...`. It returns false
// when `inline` is not followed by a loop.
func (p *Parser) parseLoop(m int, stmt bool) bool {
	k := p.peek().Kind
	if k == token.KwInline {
		k = p.peekN(1).Kind
	}
	switch k {
	case token.KwWhile:
		p.parseWhile(m, stmt)
	case token.KwFor:
		p.parseFor(m, stmt)
	default:
		if m >= 0 {
			p.openFrom(m, ast.KindError)
			p.close()
			p.err(diag.SynUnexpectedToken, "expected block or loop after label")
			return true
		}
		return false
	}
	return true
}

// parseWhile: inline? while ( Expr ) PtrPayload? (: ( AssignExpr ))? Body (else Payload? Body)?
func (p *Parser) parseWhile(m int, stmt bool) {
	p.openFrom(m, ast.KindWhileExpr)
	defer p.close()
	p.eat(token.KwInline)
	p.bump() // while
	p.parseCondition()
	if p.at(token.Pipe) {
		p.parsePayload(ast.KindPtrPayload)
	}
	if p.at(token.Colon) {
		p.open(ast.KindWhileContinueExpr)
		p.bump()
		if p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after ':'") {
			p.parseAssignExpr()
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		}
		p.close()
	}
	block := p.parseBody(stmt)
	if p.eat(token.KwElse) {
		if p.at(token.Pipe) {
			p.parsePayload(ast.KindPayload)
		}
		block = p.parseBody(stmt)
	}
	if stmt && !block {
		p.expectSemicolon("expected ';' after while statement")
	}
}

// parseFor: inline? for ( Input (, Input)* ) PtrIndexPayload Body (else Body)?
func (p *Parser) parseFor(m int, stmt bool) {
	p.openFrom(m, ast.KindForExpr)
	defer p.close()
	p.eat(token.KwInline)
	p.bump() // for
	p.open(ast.KindForInputs)
	if p.expect(token.LParen, diag.SynUnclosedParen, "expected '('") {
		for !p.atOr(token.RParen, token.EOF) {
			before := p.pos
			p.parseExpr()
			if p.eat(token.DotDot) && !p.atOr(token.Comma, token.RParen) {
				p.parseExpr()
			}
			if !p.eat(token.Comma) || p.pos == before {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	}
	p.close()
	if p.at(token.Pipe) {
		p.parsePayload(ast.KindPtrIndexPayload)
	} else {
		p.err(diag.SynExpectPayload, "expected capture after for")
	}
	block := p.parseBody(stmt)
	if p.eat(token.KwElse) {
		block = p.parseBody(stmt)
	}
	if stmt && !block {
		p.expectSemicolon("expected ';' after for statement")
	}
}

// parsePayload: '|' '*'? name (',' '*'? name)* '|'
func (p *Parser) parsePayload(kind ast.Kind) {
	p.open(kind)
	defer p.close()
	p.bump() // |
	for {
		p.eat(token.Star)
		if !p.symbol() {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Pipe, diag.SynExpectPayload, "expected '|' to close capture")
}

// parseSwitch: switch ( Expr ) { Prong (, Prong)* ,? }
func (p *Parser) parseSwitch() {
	p.open(ast.KindSwitchExpr)
	defer p.close()
	p.bump() // switch
	p.parseCondition()
	if !p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' after switch") {
		return
	}
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		p.parseSwitchProng()
		if p.pos == before {
			p.errorToken(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"' in switch")
			continue
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch")
}

// parseSwitchProng: inline? Case => PtrIndexPayload? AssignExpr
func (p *Parser) parseSwitchProng() {
	if !canStartExpr(p.peek().Kind) && !p.at(token.KwElse) {
		return
	}
	p.open(ast.KindSwitchProng)
	defer p.close()
	p.eat(token.KwInline)
	p.open(ast.KindSwitchCase)
	if !p.eat(token.KwElse) {
		for {
			p.parseExpr()
			if p.eat(token.Ellipsis) {
				p.parseExpr()
			}
			if !p.at(token.Comma) || p.atN(1, token.FatArrow) {
				p.eat(token.Comma)
				break
			}
			p.bump() // ,
		}
	}
	p.close()
	if !p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in switch prong") {
		return
	}
	if p.at(token.Pipe) {
		p.parsePayload(ast.KindPtrIndexPayload)
	}
	p.parseBodyExpr()
}

// parseBodyExpr: block or assignment, used by switch prongs.
func (p *Parser) parseBodyExpr() {
	if p.at(token.LBrace) {
		p.parseBlock(-1)
		return
	}
	p.parseAssignExpr()
}
