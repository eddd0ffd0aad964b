package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"zigscope/internal/source"
	"zigscope/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Span   source.Span `json:"span"`
	Trivia bool        `json:"trivia,omitempty"`
}

// TokenFilter выбирает, какие токены печатать.
type TokenFilter uint8

const (
	// TokensSignificant skips whitespace and comments.
	TokensSignificant TokenFilter = iota
	TokensAll
)

func (f TokenFilter) keep(tok token.Token) bool {
	return f == TokensAll || !tok.IsTrivia()
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, filter TokenFilter) error {
	n := 0
	for _, tok := range tokens {
		if !filter.keep(tok) {
			continue
		}
		n++
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-18s", n, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, filter TokenFilter) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if !filter.keep(tok) {
			continue
		}
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   tok.Span,
			Trivia: tok.IsTrivia(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
