package parser

import (
	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// parseExpr: BoolOrExpr
func (p *Parser) parseExpr() {
	p.parseBinary(precOr)
}

// parseAssignExpr: Expr (AssignOp Expr)?
func (p *Parser) parseAssignExpr() {
	m := p.mark()
	p.parseExpr()
	if _, ok := assignOps[p.peek().Kind]; ok {
		p.b.OpenAt(m, ast.KindBinaryExpr)
		p.bump()
		p.parseExpr()
		p.close()
	}
}

// parseBinary — precedence climbing; операторы одного уровня левоассоциативны.
func (p *Parser) parseBinary(minPrec int) {
	m := p.mark()
	p.parsePrefixExpr()
	for {
		prec := binaryPrec[p.peek().Kind]
		if prec == precNone || prec < minPrec {
			return
		}
		p.b.OpenAt(m, ast.KindBinaryExpr)
		if op := p.bump(); op.Kind == token.KwCatch && p.at(token.Pipe) {
			p.parsePayload(ast.KindPayload)
		}
		p.parseBinary(prec + 1)
		p.close()
	}
}

func (p *Parser) parsePrefixExpr() {
	if isPrefixOp(p.peek().Kind) {
		p.open(ast.KindPrefixExpr)
		p.bump()
		p.parsePrefixExpr()
		p.close()
		return
	}
	p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() {
	switch p.peek().Kind {
	case token.KwAsm:
		p.parseAsm()
	case token.KwIf:
		p.parseIf(-1, false)
	case token.KwBreak:
		p.open(ast.KindBreakExpr)
		p.bump()
		if p.at(token.Colon) && p.atN(1, token.Ident) {
			p.parseBreakLabel()
		}
		if p.atExprStart() {
			p.parseExpr()
		}
		p.close()
	case token.KwContinue:
		p.open(ast.KindContinueExpr)
		p.bump()
		if p.at(token.Colon) && p.atN(1, token.Ident) {
			p.parseBreakLabel()
		}
		p.close()
	case token.KwReturn:
		p.open(ast.KindReturnExpr)
		p.bump()
		if p.atExprStart() {
			p.parseExpr()
		}
		p.close()
	case token.KwComptime, token.KwNosuspend, token.KwResume:
		p.open(ast.KindPrefixExpr)
		p.bump()
		p.parseExpr()
		p.close()
	case token.LBrace:
		p.parseBlock(-1)
	case token.KwInline, token.KwWhile, token.KwFor:
		if !p.parseLoop(-1, false) {
			p.errorToken(diag.SynExpectExpression, "expected loop after 'inline'")
		}
	case token.Ident:
		if p.atLabel() {
			m := p.parseBlockLabel()
			if p.at(token.LBrace) {
				p.parseBlock(m)
			} else {
				p.parseLoop(m, false)
			}
			return
		}
		p.parseCurlySuffixExpr()
	default:
		p.parseCurlySuffixExpr()
	}
}

// atExprStart — может ли операнд break/return начаться здесь.
func (p *Parser) atExprStart() bool {
	k := p.peek().Kind
	return canStartExpr(k) && k != token.LBrace
}

// parseCurlySuffixExpr: TypeExpr InitList?
func (p *Parser) parseCurlySuffixExpr() {
	m := p.mark()
	p.parseTypeExpr()
	if p.at(token.LBrace) {
		p.b.OpenAt(m, ast.KindCurlySuffixExpr)
		p.parseInitList()
		p.close()
	}
}

// parseInitList: '{' (FieldInit | Expr) (',' ...)* ','? '}'
func (p *Parser) parseInitList() {
	p.open(ast.KindInitList)
	defer p.close()
	p.bump() // {
	for !p.atOr(token.RBrace, token.EOF) {
		before := p.pos
		if p.at(token.Dot) && p.atN(1, token.Ident) && p.atN(2, token.Eq) {
			p.open(ast.KindFieldInit)
			p.bump() // .
			p.symbol()
			p.bump() // =
			p.parseExpr()
			p.close()
		} else {
			p.parseExpr()
		}
		if p.pos == before {
			p.errorToken(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"' in initializer")
			continue
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close initializer")
}

// parseTypeExpr: PrefixTypeOp* ErrorUnionExpr
func (p *Parser) parseTypeExpr() {
	if p.atPrefixTypeOp() {
		p.open(ast.KindPrefixTypeOp)
		p.parsePrefixTypeOp()
		p.parseTypeExpr()
		p.close()
		return
	}
	m := p.mark()
	p.parseSuffixExpr()
	if p.at(token.Bang) {
		p.b.OpenAt(m, ast.KindBinaryExpr)
		p.bump()
		p.parseTypeExpr()
		p.close()
	}
}

// parseSuffixExpr: async? PrimaryTypeExpr (SuffixOp | FnCallArguments)*
func (p *Parser) parseSuffixExpr() {
	m := p.mark()
	p.eat(token.KwAsync)
	p.parsePrimaryTypeExpr()
	wrapped := false
	for {
		switch p.peek().Kind {
		case token.LBracket, token.Dot, token.DotStar, token.DotQuestion, token.LParen:
		default:
			if wrapped {
				p.close()
			}
			return
		}
		if !wrapped {
			p.b.OpenAt(m, ast.KindSuffixExpr)
			wrapped = true
		}
		if p.at(token.LParen) {
			p.parseCallArguments(ast.KindFnCallArguments)
			continue
		}
		p.parseSuffixOp()
	}
}

// parseSuffixOp: '[' Expr ('..' Expr? (':' Expr)?)? ']' | '.' Name | '.*' | '.?'
func (p *Parser) parseSuffixOp() {
	p.open(ast.KindSuffixOp)
	defer p.close()
	switch p.bump().Kind {
	case token.LBracket:
		p.parseExpr()
		if p.eat(token.DotDot) {
			if !p.atOr(token.RBracket, token.Colon) {
				p.parseExpr()
			}
			if p.eat(token.Colon) {
				p.parseExpr()
			}
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	case token.Dot:
		p.symbol()
	}
}

// parseCallArguments: '(' (Expr ',')* Expr? ')'
func (p *Parser) parseCallArguments(kind ast.Kind) {
	p.open(kind)
	defer p.close()
	p.bump() // (
	for !p.atOr(token.RParen, token.EOF) {
		before := p.pos
		p.parseExpr()
		if p.pos == before {
			break
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
}

func (p *Parser) parsePrimaryTypeExpr() {
	switch p.peek().Kind {
	case token.Builtin:
		p.open(ast.KindBuiltinCallExpr)
		p.bump()
		if p.at(token.LParen) {
			p.parseCallArguments(ast.KindFnCallArguments)
		} else {
			p.err(diag.SynUnclosedParen, "expected '(' after builtin")
		}
		p.close()
	case token.IntLit, token.FloatLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwUndefined, token.KwUnreachable,
		token.KwAnyframe, token.KwAnytype:
		p.open(ast.KindLiteral)
		p.bump()
		p.close()
	case token.StringLit:
		p.open(ast.KindStringLiteral)
		p.bump()
		p.close()
	case token.MultilineStringLit:
		p.open(ast.KindStringLiteral)
		for p.at(token.MultilineStringLit) {
			p.bump()
		}
		p.close()
	case token.KwStruct, token.KwEnum, token.KwUnion, token.KwOpaque, token.KwPacked, token.KwExtern:
		p.parseContainerDecl()
	case token.Dot:
		switch {
		case p.atN(1, token.Ident):
			p.open(ast.KindPrimaryEnumReferenceExpr)
			p.bump()
			p.symbol()
			p.close()
		case p.atN(1, token.LBrace):
			p.open(ast.KindAnonymousInitExpr)
			p.bump()
			p.parseInitList()
			p.close()
		default:
			p.errorToken(diag.SynExpectExpression, "expected name or '{' after '.'")
		}
	case token.KwError:
		switch {
		case p.atN(1, token.LBrace):
			p.parseErrorSetDecl()
		case p.atN(1, token.Dot):
			p.open(ast.KindPrimaryErrorReferenceExpr)
			p.bump() // error
			p.bump() // .
			p.symbol()
			p.close()
		default:
			p.errorToken(diag.SynExpectExpression, "expected '.' or '{' after 'error'")
		}
	case token.KwFn:
		p.parseFnProto()
	case token.LParen:
		p.open(ast.KindGroupedExpr)
		p.bump()
		p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		p.close()
	case token.KwComptime:
		p.open(ast.KindPrefixExpr)
		p.bump()
		p.parseTypeExpr()
		p.close()
	case token.KwSwitch:
		p.parseSwitch()
	case token.KwIf:
		p.parseIf(-1, false)
	case token.Ident:
		p.open(ast.KindPrimaryReferenceExpr)
		p.symbol()
		p.close()
	default:
		if isSyncToken(p.peek().Kind) {
			p.err(diag.SynExpectExpression, "expected expression, got '"+p.peek().Text+"'")
			return
		}
		p.errorToken(diag.SynExpectExpression, "expected expression, got '"+p.peek().Text+"'")
	}
}

// isSyncToken — токены, которые не съедаются при ошибке в выражении.
func isSyncToken(k token.Kind) bool {
	switch k {
	case token.EOF, token.Semicolon, token.Comma, token.RParen, token.RBracket,
		token.RBrace, token.LBrace, token.FatArrow:
		return true
	default:
		return isDeclStarter(k)
	}
}
