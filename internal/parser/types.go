package parser

import (
	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

func (p *Parser) atPrefixTypeOp() bool {
	switch p.peek().Kind {
	case token.Question, token.Star, token.StarStar, token.LBracket:
		return true
	case token.KwAnyframe:
		return p.atN(1, token.Arrow)
	default:
		return false
	}
}

// parsePrefixTypeOp consumes one type operator: '?', 'anyframe ->', pointers,
// slices and arrays. The operand is parsed by the caller.
func (p *Parser) parsePrefixTypeOp() {
	switch p.peek().Kind {
	case token.Question:
		p.bump()
	case token.KwAnyframe:
		p.bump()
		p.bump() // ->
	case token.Star, token.StarStar:
		p.bump()
		p.parsePtrModifiers()
	case token.LBracket:
		p.bump()
		switch {
		case p.at(token.Star):
			// [*], [*c], [*:s]
			p.bump()
			if p.at(token.Ident) && p.peek().Text == "c" {
				p.bump()
			} else if p.eat(token.Colon) {
				p.parseExpr()
			}
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in pointer type")
			p.parsePtrModifiers()
		case p.at(token.RBracket):
			p.bump()
			p.parsePtrModifiers()
		case p.at(token.Colon):
			// [:s]T
			p.bump()
			p.parseExpr()
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in slice type")
			p.parsePtrModifiers()
		default:
			p.parseExpr()
			if p.eat(token.Colon) {
				p.parseExpr()
			}
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array type")
		}
	}
}

// parsePtrModifiers: (align(...) | addrspace(...) | const | volatile | allowzero)*
func (p *Parser) parsePtrModifiers() {
	for {
		switch p.peek().Kind {
		case token.KwConst, token.KwVolatile, token.KwAllowzero:
			p.bump()
		case token.KwAlign:
			p.bump()
			if p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after align") {
				p.parseExpr()
				// align(a:b:c) для битовых полей
				for p.eat(token.Colon) {
					p.parseExpr()
				}
				p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
			}
		case token.KwAddrspace:
			p.bump()
			if p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after addrspace") {
				p.parseExpr()
				p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
			}
		default:
			return
		}
	}
}

// parseContainerDecl: (extern|packed)? (struct|enum|union|opaque) ('(' ... ')')? '{' members '}'
func (p *Parser) parseContainerDecl() {
	p.open(ast.KindContainerDecl)
	defer p.close()
	if !p.eat(token.KwExtern) {
		p.eat(token.KwPacked)
	}
	kw := p.peek().Kind
	switch kw {
	case token.KwStruct, token.KwEnum, token.KwUnion, token.KwOpaque:
		p.bump()
	default:
		p.err(diag.SynUnexpectedToken, "expected 'struct', 'enum', 'union' or 'opaque'")
		return
	}
	if p.eat(token.LParen) {
		if kw == token.KwUnion && p.eat(token.KwEnum) {
			if p.eat(token.LParen) {
				p.parseExpr()
				p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
			}
		} else {
			p.parseExpr()
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	}
	if !p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start container body") {
		return
	}
	p.parseContainerMembers(token.RBrace)
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close container")
}

// parseErrorSetDecl: error '{' Name (',' Name)* ','? '}'
func (p *Parser) parseErrorSetDecl() {
	p.open(ast.KindErrorSetDecl)
	defer p.close()
	p.bump() // error
	p.bump() // {
	for !p.atOr(token.RBrace, token.EOF) {
		if !p.at(token.Ident) {
			if isSyncToken(p.peek().Kind) && !p.at(token.Comma) {
				break
			}
			p.errorToken(diag.SynExpectIdentifier, "expected error name, got '"+p.peek().Text+"'")
			continue
		}
		p.symbol()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close error set")
}

// parseAsm: asm volatile? '(' Expr AsmOutput? ')'
func (p *Parser) parseAsm() {
	p.open(ast.KindAsmExpr)
	defer p.close()
	p.bump() // asm
	p.eat(token.KwVolatile)
	if !p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after asm") {
		return
	}
	p.parseExpr()
	if p.at(token.Colon) {
		p.parseAsmSection(ast.KindAsmOutput, p.parseAsmOutputItem)
	}
	if p.at(token.Colon) {
		p.parseAsmSection(ast.KindAsmInput, p.parseAsmInputItem)
	}
	if p.at(token.Colon) {
		p.open(ast.KindAsmClobbers)
		p.bump()
		for !p.atOr(token.RParen, token.EOF) {
			before := p.pos
			p.parseExpr()
			if p.pos == before || !p.eat(token.Comma) {
				break
			}
		}
		p.close()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close asm")
}

func (p *Parser) parseAsmSection(kind ast.Kind, item func()) {
	p.open(kind)
	defer p.close()
	p.bump() // :
	for p.at(token.LBracket) {
		item()
		if !p.eat(token.Comma) {
			break
		}
	}
}

// parseAsmOutputItem: '[' Name ']' String '(' ('->' TypeExpr | Name) ')'
func (p *Parser) parseAsmOutputItem() {
	p.open(ast.KindAsmOutputItem)
	defer p.close()
	p.parseAsmItemHead()
	if !p.expect(token.LParen, diag.SynUnclosedParen, "expected '('") {
		return
	}
	if p.eat(token.Arrow) {
		p.parseTypeExpr()
	} else {
		p.open(ast.KindPrimaryReferenceExpr)
		p.symbol()
		p.close()
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
}

// parseAsmInputItem: '[' Name ']' String '(' Expr ')'
func (p *Parser) parseAsmInputItem() {
	p.open(ast.KindAsmInputItem)
	defer p.close()
	p.parseAsmItemHead()
	if !p.expect(token.LParen, diag.SynUnclosedParen, "expected '('") {
		return
	}
	p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
}

func (p *Parser) parseAsmItemHead() {
	p.bump() // [
	p.symbol()
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	if !p.eat(token.StringLit) {
		p.err(diag.SynUnexpectedToken, "expected constraint string")
	}
}
