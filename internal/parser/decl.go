package parser

import (
	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// parseContainerMembers parses members until end (EOF or '}') without consuming it.
func (p *Parser) parseContainerMembers(end token.Kind) {
	for !p.at(end) && !p.at(token.EOF) {
		if p.canceled() {
			p.skipRest()
			return
		}
		before := p.pos
		p.parseContainerMember()
		if p.pos == before {
			p.errorToken(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"' in container")
		}
	}
}

func (p *Parser) parseContainerMember() {
	switch p.peek().Kind {
	case token.KwTest:
		p.parseTestDecl()
		return
	case token.KwComptime:
		if p.atN(1, token.LBrace) {
			p.open(ast.KindTopLevelComptime)
			p.bump()
			p.parseBlock(-1)
			p.close()
			return
		}
		if p.atN(1, token.Ident) {
			p.parseContainerField()
			return
		}
	case token.Ident:
		p.parseContainerField()
		return
	}

	m := p.mark()
	p.eat(token.KwPub)
	switch p.peek().Kind {
	case token.KwUsingnamespace:
		p.openFrom(m, ast.KindUsingNamespace)
		p.bump()
		p.parseExpr()
		p.expectSemicolon("expected ';' after usingnamespace")
		p.close()
		return
	case token.KwExport, token.KwInline, token.KwNoinline:
		p.bump()
	case token.KwExtern:
		p.bump()
		p.eat(token.StringLit)
	}
	switch {
	case p.at(token.KwFn):
		p.parseFnDecl(m)
	case p.atOr(token.KwThreadlocal, token.KwConst, token.KwVar, token.KwComptime):
		p.parseVarDecl(m)
	default:
		if p.b.Mark() > m {
			// модификаторы без объявления
			p.openFrom(m, ast.KindError)
			p.close()
			p.err(diag.SynUnexpectedToken, "expected function or variable declaration after modifiers")
			return
		}
		p.resync(diag.SynUnexpectedToken, "expected declaration, got '"+p.peek().Text+"'")
	}
}

func (p *Parser) parseTestDecl() {
	p.open(ast.KindTestDecl)
	p.bump() // test
	if !p.eat(token.StringLit) {
		p.eat(token.Ident)
	}
	p.parseBlock(-1)
	p.close()
}

// parseFnDecl: FnProto (';' | Block). Modifiers already consumed after mark m.
func (p *Parser) parseFnDecl(m int) {
	p.openFrom(m, ast.KindFnDecl)
	p.parseFnProto()
	if p.at(token.LBrace) {
		p.parseBlock(-1)
	} else {
		p.expectSemicolon("expected function body or ';'")
	}
	p.close()
}

// parseFnProto: fn Name? ( Params ) align? addrspace? linksection? callconv? !? ReturnType
func (p *Parser) parseFnProto() {
	p.open(ast.KindFnProto)
	p.bump() // fn
	if p.at(token.Ident) {
		p.symbol()
	}
	p.parseParamDeclList()
	p.parseDeclModifiers(token.KwAlign, token.KwAddrspace, token.KwLinksection, token.KwCallconv)
	p.eat(token.Bang)
	if canStartExpr(p.peek().Kind) {
		p.parseTypeExpr()
	} else {
		p.err(diag.SynExpectType, "expected return type")
	}
	p.close()
}

// parseDeclModifiers parses `kw ( Expr )` groups in any order.
func (p *Parser) parseDeclModifiers(kinds ...token.Kind) {
	for p.atOr(kinds...) {
		p.bump()
		if p.expect(token.LParen, diag.SynUnclosedParen, "expected '('") {
			p.parseExpr()
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		}
	}
}

func (p *Parser) parseParamDeclList() {
	p.open(ast.KindParamDeclList)
	if !p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' to start parameter list") {
		p.close()
		return
	}
	for !p.atOr(token.RParen, token.EOF, token.LBrace, token.Semicolon) {
		before := p.pos
		p.parseParamDecl()
		if !p.eat(token.Comma) {
			break
		}
		if p.pos == before {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	p.close()
}

// parseParamDecl: (noalias|comptime)? (Name ':')? (anytype | TypeExpr) | '...'
func (p *Parser) parseParamDecl() {
	p.open(ast.KindParamDecl)
	defer p.close()
	if p.eat(token.Ellipsis) {
		return
	}
	if !p.eat(token.KwNoalias) {
		p.eat(token.KwComptime)
	}
	if p.at(token.Ident) && p.atN(1, token.Colon) {
		p.symbol()
		p.bump() // ':'
	}
	switch {
	case p.eat(token.KwAnytype):
	case canStartExpr(p.peek().Kind):
		p.parseTypeExpr()
	default:
		p.errorToken(diag.SynExpectType, "expected parameter type")
	}
}

// parseVarDecl: threadlocal? comptime? (const|var) Name (':' Type)? align? (= Expr)? ;
func (p *Parser) parseVarDecl(m int) {
	p.openFrom(m, ast.KindVarDecl)
	defer p.close()
	p.eat(token.KwThreadlocal)
	p.eat(token.KwComptime)
	if !p.eat(token.KwConst) && !p.eat(token.KwVar) {
		p.err(diag.SynUnexpectedToken, "expected 'const' or 'var'")
		return
	}
	p.symbol()
	if p.eat(token.Colon) {
		p.parseTypeExpr()
	}
	p.parseDeclModifiers(token.KwAlign, token.KwAddrspace, token.KwLinksection)
	if p.eat(token.Eq) {
		p.parseExpr()
	}
	p.expectSemicolon("expected ';' after declaration")
}

// parseContainerField: comptime? Name (':' Type)? align? (= Expr)? (',' | before '}')
func (p *Parser) parseContainerField() {
	p.open(ast.KindContainerField)
	defer p.close()
	p.eat(token.KwComptime)
	p.symbol()
	if p.eat(token.Colon) {
		p.parseTypeExpr()
	}
	p.parseDeclModifiers(token.KwAlign)
	if p.eat(token.Eq) {
		p.parseExpr()
	}
	if p.eat(token.Comma) || p.atOr(token.RBrace, token.EOF) {
		return
	}
	p.err(diag.SynBadContainerField, "expected ',' after container field")
}
