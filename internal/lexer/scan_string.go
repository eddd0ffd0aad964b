package lexer

import (
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// scanString: "..." в одну строку. Escape-последовательности проверяются мягко.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.scanEscape()
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanChar: 'x', '\n', '\x41', '\u{1F600}', многобайтовые руны.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.scanEscape()
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "newline in character literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

// scanMultilineString: \\ до конца строки (перевод строки не включается).
func (lx *Lexer) scanMultilineString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(token.MultilineStringLit, start)
}

func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	switch lx.cursor.Peek() {
	case 'n', 'r', 't', '\\', '\'', '"':
		lx.cursor.Bump()
	case 'x':
		lx.cursor.Bump()
		for range 2 {
			if !isHex(lx.cursor.Peek()) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected two hex digits after \\x")
				return
			}
			lx.cursor.Bump()
		}
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat("{") {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected '{' after \\u")
			return
		}
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if !lx.cursor.Eat("}") {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unterminated unicode escape")
		}
	case '\n', 0:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "incomplete escape sequence")
	default:
		lx.bumpRune()
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
	}
}
