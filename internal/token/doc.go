// Package token defines lexical token kinds for Zig source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Trivia (whitespace and comments) are ordinary tokens in the flat stream,
//     flagged by Kind.IsTrivia; concatenating every token text reproduces the input.
//   - Builtins (@import) and quoted identifiers (@"name") are single tokens.
//   - Primitive type names (u8, i32, type, anyerror, ...) are identifiers.
package token
