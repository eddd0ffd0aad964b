package parser

import (
	"slices"

	"zigscope/internal/ast"
	"zigscope/internal/diag"
	"zigscope/internal/fix"
	"zigscope/internal/source"
	"zigscope/internal/token"
)

// significant returns the index of the n-th significant token from pos.
func (p *Parser) significant(n int) int {
	i := min(p.pos, len(p.toks)-1)
	for {
		for i < len(p.toks)-1 && p.toks[i].IsTrivia() {
			i++
		}
		if n == 0 || i >= len(p.toks)-1 {
			return i
		}
		n--
		i++
	}
}

func (p *Parser) peek() token.Token { return p.toks[p.significant(0)] }

func (p *Parser) peekN(n int) token.Token { return p.toks[p.significant(n)] }

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atN(n int, k token.Kind) bool { return p.peekN(n).Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// flushTrivia attaches pending whitespace/comments to the open node.
func (p *Parser) flushTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		p.b.Leaf(p.pos)
		p.pos++
	}
}

// open starts a node after pending trivia, so nodes begin at significant tokens.
func (p *Parser) open(kind ast.Kind) {
	p.flushTrivia()
	p.b.Open(kind)
}

func (p *Parser) mark() int {
	p.flushTrivia()
	return p.b.Mark()
}

// openFrom opens kind adopting children from m, or a fresh node when m < 0.
func (p *Parser) openFrom(m int, kind ast.Kind) {
	if m < 0 {
		p.open(kind)
		return
	}
	p.b.OpenAt(m, kind)
}

func (p *Parser) close() ast.NodeID { return p.b.Close() }

// bump consumes the next significant token as a leaf. EOF is consumed at most once.
func (p *Parser) bump() token.Token {
	p.flushTrivia()
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	tok := p.toks[p.pos]
	p.b.Leaf(p.pos)
	if tok.Kind != token.EOF {
		p.pos++
	} else {
		p.pos = len(p.toks)
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

// expect consumes k or reports a missing token without consuming anything.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) bool {
	if p.eat(k) {
		return true
	}
	p.err(code, msg)
	return false
}

// symbol wraps the next identifier into a Symbol node.
func (p *Parser) symbol() bool {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected identifier, got '"+p.peek().Text+"'")
		return false
	}
	p.open(ast.KindSymbol)
	p.bump()
	p.close()
	return true
}

// errorToken wraps exactly one token into an Error node and reports it.
func (p *Parser) errorToken(code diag.Code, msg string) {
	if p.at(token.EOF) {
		return
	}
	p.report(code, diag.SevError, p.peek().Span, msg)
	p.open(ast.KindError)
	p.bump()
	p.close()
}

// diagnosticSpan — пустой span сразу после последнего значимого токена,
// если следующий токен EOF; иначе span следующего токена.
func (p *Parser) diagnosticSpan() source.Span {
	next := p.peek()
	if next.Kind != token.EOF {
		return next.Span
	}
	for i := p.pos - 1; i >= 0; i-- {
		if i < len(p.toks) && !p.toks[i].IsTrivia() {
			end := p.toks[i].Span.End
			return source.Span{File: p.file, Start: end, End: end}
		}
	}
	return next.Span
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, fixes ...diag.Fix) bool {
	if sev == diag.SevError {
		p.b.MarkMissing()
	}
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, fixes)
	return true
}

// expectSemicolon is expect(';') with a fix inserting the ';' right after
// the previous significant token.
func (p *Parser) expectSemicolon(msg string) bool {
	if p.eat(token.Semicolon) {
		return true
	}
	at := p.prevSignificantEnd()
	p.report(diag.SynExpectSemicolon, diag.SevError, p.diagnosticSpan(), msg,
		fix.InsertText("insert ';'", source.Span{File: p.file, Start: at, End: at}, ";"))
	return false
}

func (p *Parser) prevSignificantEnd() uint32 {
	for i := min(p.pos, len(p.toks)) - 1; i >= 0; i-- {
		if !p.toks[i].IsTrivia() {
			return p.toks[i].Span.End
		}
	}
	return 0
}

// resync wraps tokens into an Error node until a synchronisation point:
// ';' (consumed), an unbalanced '}' or a declaration starter at depth zero.
func (p *Parser) resync(code diag.Code, msg string) {
	if p.atOr(token.EOF, token.RBrace) {
		return
	}
	p.report(code, diag.SevError, p.peek().Span, msg)
	p.open(ast.KindError)
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if depth == 0 {
			if k == token.RBrace {
				break
			}
			if k == token.Semicolon {
				p.bump()
				break
			}
			if p.b.Mark() > 0 && isDeclStarter(k) {
				break
			}
		}
		switch k {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.bump()
	}
	p.close()
}

func isDeclStarter(k token.Kind) bool {
	switch k {
	case token.KwPub, token.KwFn, token.KwConst, token.KwVar, token.KwTest,
		token.KwUsingnamespace, token.KwExport, token.KwExtern, token.KwThreadlocal:
		return true
	default:
		return false
	}
}

// canStartExpr reports whether k may begin an expression.
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.Builtin, token.StringLit, token.MultilineStringLit, token.CharLit,
		token.IntLit, token.FloatLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwUndefined, token.KwUnreachable,
		token.KwAnyframe, token.KwError, token.KwStruct, token.KwEnum, token.KwUnion, token.KwOpaque,
		token.KwPacked, token.KwExtern, token.KwFn, token.KwIf, token.KwWhile, token.KwFor,
		token.KwInline, token.KwSwitch, token.KwComptime, token.KwNosuspend, token.KwBreak,
		token.KwContinue, token.KwResume, token.KwReturn, token.KwTry, token.KwAwait,
		token.KwAsync, token.KwAsm, token.KwAnytype,
		token.LParen, token.LBrace, token.LBracket, token.Dot, token.Bang, token.Minus,
		token.MinusPercent, token.Tilde, token.Amp, token.Question, token.Star, token.StarStar:
		return true
	default:
		return false
	}
}
