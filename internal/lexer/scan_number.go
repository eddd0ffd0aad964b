package lexer

import (
	"zigscope/internal/diag"
	"zigscope/internal/token"
)

// Поддержка: 123, 1_000, 0b1010, 0o755, 0xFF, 1.5, 1e-3, 1.0e+10, 0x1.8p3.
// Точка входит в число только если за ней цифра: "1..2" — это 1, .., 2.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = isBin
		case 'o':
			digit = isOct
		case 'x':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.BumpN(2)
			if !digit(lx.cursor.Peek()) {
				tok := lx.emit(token.Invalid, start)
				lx.errLex(diag.LexBadNumber, tok.Span, "expected digits after radix prefix")
				return tok
			}
			lx.eatDigits(digit)
			hex := lx.file.Content[start+1] == 'x'
			if hex {
				if lx.cursor.Peek() == '.' && isHex(lx.cursor.PeekAt(1)) {
					kind = token.FloatLit
					lx.cursor.Bump()
					lx.eatDigits(isHex)
				}
				if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
					kind = token.FloatLit
					if !lx.eatExponent() {
						return lx.badExponent(start)
					}
				}
			}
			return lx.finishNumber(kind, start)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		if !lx.eatExponent() {
			return lx.badExponent(start)
		}
	}
	return lx.finishNumber(kind, start)
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !digit(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatExponent() bool {
	lx.cursor.Bump() // e/E/p/P
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		return false
	}
	lx.eatDigits(isDec)
	return true
}

func (lx *Lexer) badExponent(start Mark) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after exponent")
	return tok
}

// finishNumber съедает хвост из букв/цифр (например 12abc) и репортит его.
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	if !isIdentContinueByte(lx.cursor.Peek()) {
		return lx.emit(kind, start)
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, "invalid character in number literal")
	return tok
}
