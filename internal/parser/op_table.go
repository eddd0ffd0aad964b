package parser

import "zigscope/internal/token"

// Binary operator precedence, loosest first. Zero means "not a binary operator".
const (
	precNone = iota
	precOr
	precAnd
	precCompare
	precBitwise
	precShift
	precAdd
	precMul
)

var binaryPrec = map[token.Kind]int{
	token.KwOr: precOr,

	token.KwAnd: precAnd,

	token.EqEq: precCompare, token.BangEq: precCompare,
	token.Lt: precCompare, token.Gt: precCompare,
	token.LtEq: precCompare, token.GtEq: precCompare,

	token.Amp: precBitwise, token.Caret: precBitwise, token.Pipe: precBitwise,
	token.KwOrelse: precBitwise, token.KwCatch: precBitwise,

	token.Shl: precShift, token.Shr: precShift, token.ShlPipe: precShift,

	token.Plus: precAdd, token.Minus: precAdd, token.PlusPlus: precAdd,
	token.PlusPercent: precAdd, token.MinusPercent: precAdd,
	token.PlusPipe: precAdd, token.MinusPipe: precAdd,

	token.PipePipe: precMul, token.Star: precMul, token.Slash: precMul,
	token.Percent: precMul, token.StarStar: precMul,
	token.StarPercent: precMul, token.StarPipe: precMul,
}

var assignOps = map[token.Kind]struct{}{
	token.Eq: {}, token.StarEq: {}, token.StarPercentEq: {}, token.StarPipeEq: {},
	token.SlashEq: {}, token.PercentEq: {}, token.PlusEq: {}, token.PlusPercentEq: {},
	token.PlusPipeEq: {}, token.MinusEq: {}, token.MinusPercentEq: {}, token.MinusPipeEq: {},
	token.ShlEq: {}, token.ShlPipeEq: {}, token.ShrEq: {}, token.AmpEq: {},
	token.CaretEq: {}, token.PipeEq: {},
}

func isPrefixOp(k token.Kind) bool {
	switch k {
	case token.Bang, token.Minus, token.Tilde, token.MinusPercent, token.Amp,
		token.KwTry, token.KwAwait:
		return true
	default:
		return false
	}
}
