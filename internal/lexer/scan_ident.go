package lexer

import (
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и проверяет через LookupKeyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanAt: @name — builtin, @"..." — идентификатор в кавычках, иначе Invalid.
func (lx *Lexer) scanAt() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'

	switch next := lx.cursor.Peek(); {
	case next == '"':
		str := lx.scanString()
		if str.Kind != token.StringLit {
			return lx.emit(token.Invalid, start)
		}
		return lx.emit(token.Ident, start)
	case isIdentStartByte(next):
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.Builtin, start)
	default:
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadBuiltin, tok.Span, "expected builtin name or quoted identifier after '@'")
		return tok
	}
}
