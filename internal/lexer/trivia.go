package lexer

import (
	"zigscope/internal/token"
)

// scanWhitespace коалесцирует пробелы, табы и переводы строк в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanComment: "//" до конца строки. "///" — doc, "//!" — container doc,
// "////" и длиннее — обычный комментарий.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)

	kind := token.LineComment
	switch lx.cursor.Peek() {
	case '/':
		if lx.cursor.PeekAt(1) != '/' {
			kind = token.DocComment
		}
	case '!':
		kind = token.ContainerDocComment
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(kind, start)
}
