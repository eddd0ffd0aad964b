package lexer

import (
	"unicode/utf8"
)

// peekRune декодирует руну в текущей позиции
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.rest())
}

// bumpRune сдвигает курсор на размер текущей руны (минимум один байт)
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz <= 0 {
		sz = 1
	}
	lx.cursor.BumpN(uint32(sz)) // #nosec G115 -- rune size is at most 4
}

// Идентификаторы Zig — только ASCII.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isOct(b byte) bool { return b >= '0' && b <= '7' }

func isBin(b byte) bool { return b == '0' || b == '1' }
