package lexer

import (
	"fmt"

	"zigscope/internal/source"
	"zigscope/internal/token"
)

// Lexer produces the flat token stream of one file. Trivia are ordinary tokens.
type Lexer struct {
	file   *source.File
	cursor cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для значимого токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: newCursor(file),
		opts:   opts,
	}
}

// NewAt creates a lexer that restarts scanning at byte offset off.
// The offset must sit on a token boundary for the result to match a full scan.
func NewAt(file *source.File, off uint32, opts Options) (*Lexer, error) {
	lx := New(file, opts)
	if off > lx.cursor.end {
		return nil, fmt.Errorf("restart offset %d past end of file (%d bytes)", off, lx.cursor.end)
	}
	lx.cursor.off = off
	return lx, nil
}

// Offset returns the current byte offset.
func (lx *Lexer) Offset() uint32 { return lx.cursor.off }

// Next возвращает следующий токен, включая trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// NextSignificant пропускает trivia и возвращает первый значимый токен.
func (lx *Lexer) NextSignificant() token.Token {
	for {
		tok := lx.Next()
		if !tok.IsTrivia() {
			return tok
		}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		return lx.scanWhitespace()
	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		return lx.scanComment()
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch == '@':
		return lx.scanAt()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	case ch == '\\' && lx.cursor.PeekAt(1) == '\\':
		return lx.scanMultilineString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.off, End: lx.cursor.off}
}

// Tokenize returns the complete token stream of file, trivia included,
// terminated by an empty EOF token. It never fails.
func Tokenize(file *source.File, opts Options) []token.Token {
	return drain(New(file, opts))
}

// TokenizeFrom restarts tokenization at off and returns the stream from there to EOF.
func TokenizeFrom(file *source.File, off uint32, opts Options) ([]token.Token, error) {
	lx, err := NewAt(file, off, opts)
	if err != nil {
		return nil, err
	}
	return drain(lx), nil
}

func drain(lx *Lexer) []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
