package token

import (
	"zigscope/internal/source"
)

// Token is one lexeme of the flat stream, trivia included.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsIdent reports whether the token is a plain identifier (quoted @"..." included).
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsLiteral reports whether the token is a number, string or char literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }
