package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"zigscope/internal/diag"
	"zigscope/internal/lexer"
	"zigscope/internal/source"
	"zigscope/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.zig", []byte(input)))
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	reporter := &testReporter{}
	collect := diag.ReporterFunc(func(d diag.Diagnostic) { reporter.diagnostics = append(reporter.diagnostics, d) })
	return lexer.New(makeTestFile(input), lexer.Options{Reporter: collect}), reporter
}

// collectSignificant собирает значимые токены до EOF (EOF не включается)
func collectSignificant(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.NextSignificant()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectSignificant(lx)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.codes())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const sample = `//! container docs
const std = @import("std");

/// Adds things.
pub fn add(a: i32, b: i32) i32 {
    // plain comment
    return a +% b;
}

test "labels" {
    const msg =
        \\line one
        \\line two
    ;
    outer: while (true) : (i += 1) {
        break :outer;
    }
    const c = '\u{1F600}';
    const f = 0x1.8p3 + 1_000.5e-3;
    const s = x[0..2];
    const @"weird name" = .{ .a = 1 };
}
`

func TestTokenizeIsLossless(t *testing.T) {
	inputs := []string{
		sample,
		"",
		"   \n\t",
		"const x = $ 1;",
		"\"unterminated\nconst y = 2;",
		"@ 'a",
		"const ü = 1;",
	}
	for _, input := range inputs {
		toks := lexer.Tokenize(makeTestFile(input), lexer.Options{})
		var b strings.Builder
		var prevEnd uint32
		for i, tok := range toks {
			if tok.Span.Start != prevEnd {
				t.Fatalf("input %q: token %d starts at %d, previous ended at %d", input, i, tok.Span.Start, prevEnd)
			}
			if tok.Text != input[tok.Span.Start:tok.Span.End] {
				t.Fatalf("input %q: token %d text %q does not match span", input, i, tok.Text)
			}
			prevEnd = tok.Span.End
			b.WriteString(tok.Text)
		}
		if got := b.String(); got != input {
			t.Fatalf("concatenation differs:\nwant %q\ngot  %q", input, got)
		}
		last := toks[len(toks)-1]
		if last.Kind != token.EOF || !last.Span.Empty() {
			t.Fatalf("input %q: stream must end with an empty EOF, got %v", input, last)
		}
	}
}

func TestTriviaTokens(t *testing.T) {
	lx, _ := makeTestLexer("//! top\n/// doc\n//// not doc\n// plain\nx")
	var kinds []token.Kind
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.ContainerDocComment, token.Whitespace,
		token.DocComment, token.Whitespace,
		token.LineComment, token.Whitespace,
		token.LineComment, token.Whitespace,
		token.Ident,
	}
	if len(kinds) != len(want) {
		t.Fatalf("want %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: want %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	expectTokens(t, "pub fn main() void {}",
		token.KwPub, token.KwFn, token.Ident, token.LParen, token.RParen, token.Ident, token.LBrace, token.RBrace)
	expectTokens(t, "errdefer orelse catch usingnamespace _ __x x1",
		token.KwErrdefer, token.KwOrelse, token.KwCatch, token.KwUsingnamespace, token.Ident, token.Ident, token.Ident)
}

func TestBuiltinsAndQuotedIdentifiers(t *testing.T) {
	lx, rep := makeTestLexer(`@import @"while" @`)
	toks := collectSignificant(lx)
	if len(toks) != 3 {
		t.Fatalf("unexpected tokens %s", tokensToString(toks))
	}
	if toks[0].Kind != token.Builtin || toks[0].Text != "@import" {
		t.Errorf("builtin: %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != `@"while"` {
		t.Errorf("quoted identifier: %v %q", toks[1].Kind, toks[1].Text)
	}
	if toks[2].Kind != token.Invalid {
		t.Errorf("lone '@' must be invalid, got %v", toks[2].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadBuiltin {
		t.Errorf("expected one LexBadBuiltin, got %v", rep.codes())
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xFF_ff", token.IntLit},
		{"0o755", token.IntLit},
		{"0b1010", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{"0x1.8p3", token.FloatLit},
		{"0x10p-2", token.FloatLit},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tc.input)
			tok := lx.Next()
			if tok.Kind != tc.kind || tok.Text != tc.input {
				t.Fatalf("want %v %q, got %v %q", tc.kind, tc.input, tok.Kind, tok.Text)
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics %v", rep.codes())
			}
		})
	}
	expectTokens(t, "x[0..2]", token.Ident, token.LBracket, token.IntLit, token.DotDot, token.IntLit, token.RBracket)
	expectTokens(t, "1.foo", token.IntLit, token.Dot, token.Ident)
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0x", "1e", "12abc"} {
		lx, rep := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid || tok.Text != input {
			t.Errorf("%q: want Invalid covering input, got %v %q", input, tok.Kind, tok.Text)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber, got %v", input, rep.codes())
		}
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectTokens(t, "a <<|= b *%= c +| d ++ e ** f",
		token.Ident, token.ShlPipeEq, token.Ident, token.StarPercentEq, token.Ident,
		token.PlusPipe, token.Ident, token.PlusPlus, token.Ident, token.StarStar, token.Ident)
	expectTokens(t, "p.* o.? .{} ... => -> !=",
		token.Ident, token.DotStar, token.Ident, token.DotQuestion, token.Dot, token.LBrace, token.RBrace,
		token.Ellipsis, token.FatArrow, token.Arrow, token.BangEq)
}

func TestStringsAndChars(t *testing.T) {
	expectTokens(t, `"a\n\"b\x41\u{263A}" 'c' '\'' '😀'`,
		token.StringLit, token.CharLit, token.CharLit, token.CharLit)

	lx, _ := makeTestLexer("\\\\first\n\\\\second\n;")
	toks := collectSignificant(lx)
	if len(toks) != 3 || toks[0].Kind != token.MultilineStringLit || toks[0].Text != `\\first` {
		t.Fatalf("multiline string: %s", tokensToString(toks))
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	lx, rep := makeTestLexer("\"open\nconst x = 'y")
	toks := collectSignificant(lx)
	if toks[0].Kind != token.Invalid || toks[0].Text != `"open` {
		t.Fatalf("unterminated string: %v %q", toks[0].Kind, toks[0].Text)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.Invalid || last.Text != "'y" {
		t.Fatalf("unterminated char: %v %q", last.Kind, last.Text)
	}
	codes := rep.codes()
	if len(codes) != 2 || codes[0] != diag.LexUnterminatedString || codes[1] != diag.LexUnterminatedChar {
		t.Fatalf("unexpected diagnostics %v", codes)
	}
}

func TestUnknownCharacters(t *testing.T) {
	lx, rep := makeTestLexer("a $ ü b")
	toks := collectSignificant(lx)
	want := []token.Kind{token.Ident, token.Invalid, token.Invalid, token.Ident}
	if len(toks) != len(want) {
		t.Fatalf("unexpected tokens %s", tokensToString(toks))
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Errorf("token %d: want %v got %v", i, want[i], toks[i].Kind)
		}
	}
	if toks[2].Text != "ü" {
		t.Errorf("invalid token must cover the whole rune, got %q", toks[2].Text)
	}
	if len(rep.diagnostics) != 2 {
		t.Errorf("expected two LexUnknownChar, got %v", rep.codes())
	}
}

func TestTokenizeFromMatchesSuffix(t *testing.T) {
	file := makeTestFile(sample)
	full := lexer.Tokenize(file, lexer.Options{})
	for i := 0; i < len(full); i += 7 {
		off := full[i].Span.Start
		tail, err := lexer.TokenizeFrom(file, off, lexer.Options{})
		if err != nil {
			t.Fatalf("restart at %d: %v", off, err)
		}
		if len(tail) != len(full)-i {
			t.Fatalf("restart at %d: want %d tokens, got %d", off, len(full)-i, len(tail))
		}
		for j := range tail {
			if tail[j] != full[i+j] {
				t.Fatalf("restart at %d: token %d differs: %v vs %v", off, j, tail[j], full[i+j])
			}
		}
	}
	if _, err := lexer.TokenizeFrom(file, uint32(len(sample)+1), lexer.Options{}); err == nil {
		t.Fatal("expected error for offset past end")
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
	if tok := lx.Peek(); tok.Kind != token.EOF {
		t.Fatalf("peek after EOF: %v", tok.Kind)
	}
}
