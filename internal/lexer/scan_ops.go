package lexer

import (
	"fmt"

	"zigscope/internal/diag"
	"zigscope/internal/token"
)

type multiOp struct {
	text string
	kind token.Kind
}

// multiByteOps is ordered longest first, so the first match is the greedy one.
var multiByteOps = []multiOp{
	{"<<|=", token.ShlPipeEq},

	{"<<|", token.ShlPipe},
	{"<<=", token.ShlEq},
	{">>=", token.ShrEq},
	{"*%=", token.StarPercentEq},
	{"*|=", token.StarPipeEq},
	{"+%=", token.PlusPercentEq},
	{"+|=", token.PlusPipeEq},
	{"-%=", token.MinusPercentEq},
	{"-|=", token.MinusPipeEq},
	{"...", token.Ellipsis},

	{"!=", token.BangEq},
	{"||", token.PipePipe},
	{"|=", token.PipeEq},
	{"==", token.EqEq},
	{"=>", token.FatArrow},
	{"*=", token.StarEq},
	{"**", token.StarStar},
	{"*%", token.StarPercent},
	{"*|", token.StarPipe},
	{"++", token.PlusPlus},
	{"+=", token.PlusEq},
	{"+%", token.PlusPercent},
	{"+|", token.PlusPipe},
	{"-=", token.MinusEq},
	{"-%", token.MinusPercent},
	{"-|", token.MinusPipe},
	{"->", token.Arrow},
	{"%=", token.PercentEq},
	{"/=", token.SlashEq},
	{"&=", token.AmpEq},
	{"^=", token.CaretEq},
	{"<=", token.LtEq},
	{"<<", token.Shl},
	{">=", token.GtEq},
	{">>", token.Shr},
	{"..", token.DotDot},
	{".*", token.DotStar},
	{".?", token.DotQuestion},
}

var singleByteOps = map[byte]token.Kind{
	'!': token.Bang,
	'|': token.Pipe,
	'=': token.Eq,
	'*': token.Star,
	'+': token.Plus,
	'-': token.Minus,
	'%': token.Percent,
	'/': token.Slash,
	'&': token.Amp,
	'^': token.Caret,
	'<': token.Lt,
	'>': token.Gt,
	'~': token.Tilde,
	'?': token.Question,
	'.': token.Dot,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range multiByteOps {
		if lx.cursor.Eat(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	if k, ok := singleByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	// неизвестный символ: одна руна → Invalid
	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
