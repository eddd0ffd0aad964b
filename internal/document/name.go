package document

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"zigscope/internal/symbols"
	"zigscope/internal/token"
)

// ErrInvalidName is returned when a rename target cannot spell an identifier.
var ErrInvalidName = errors.New("invalid identifier")

// NormalizeName returns the NFC form of name if it can stand in for an
// identifier token. Plain names must be ASCII letters, digits and '_', must not
// start with a digit and must not be a keyword or a primitive type. Quoted
// @"..." names accept anything except quotes, backslashes and newlines.
func NormalizeName(name string) (string, error) {
	name = norm.NFC.String(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.HasPrefix(name, `@"`) {
		body, ok := strings.CutSuffix(name[2:], `"`)
		if !ok || body == "" || strings.ContainsAny(body, "\"\\\n\r") {
			return "", fmt.Errorf("%w: malformed quoted name %q", ErrInvalidName, name)
		}
		return name, nil
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	if _, kw := token.LookupKeyword(name); kw {
		return "", fmt.Errorf("%w: %q is a keyword", ErrInvalidName, name)
	}
	if symbols.IsPrimitive(name) {
		return "", fmt.Errorf("%w: %q shadows a primitive", ErrInvalidName, name)
	}
	return name, nil
}
