package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is an unrecognised byte sequence. It still carries its text.
	Invalid Kind = iota
	// EOF marks the end of the source input. Its span is empty.
	EOF

	// trivia
	Whitespace
	LineComment         // // ...
	DocComment          // /// ...
	ContainerDocComment // //! ...

	Ident
	Builtin            // @name
	StringLit          // "..."
	MultilineStringLit // \\... up to end of line
	CharLit            // 'x'
	IntLit
	FloatLit

	kwBegin
	KwAddrspace
	KwAlign
	KwAllowzero
	KwAnd
	KwAnyframe
	KwAnytype
	KwAsm
	KwAsync
	KwAwait
	KwBreak
	KwCallconv
	KwCatch
	KwComptime
	KwConst
	KwContinue
	KwDefer
	KwElse
	KwEnum
	KwErrdefer
	KwError
	KwExport
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwInline
	KwLinksection
	KwNoalias
	KwNoinline
	KwNosuspend
	KwNull
	KwOpaque
	KwOr
	KwOrelse
	KwPacked
	KwPub
	KwResume
	KwReturn
	KwStruct
	KwSuspend
	KwSwitch
	KwTest
	KwThreadlocal
	KwTrue
	KwTry
	KwUndefined
	KwUnion
	KwUnreachable
	KwUsingnamespace
	KwVar
	KwVolatile
	KwWhile
	kwEnd

	// operators and punctuation
	Bang          // !
	BangEq        // !=
	Pipe          // |
	PipePipe      // ||
	PipeEq        // |=
	Eq            // =
	EqEq          // ==
	FatArrow      // =>
	Star          // *
	StarEq        // *=
	StarStar      // **
	StarPercent   // *%
	StarPercentEq // *%=
	StarPipe      // *|
	StarPipeEq    // *|=
	Plus          // +
	PlusPlus      // ++
	PlusEq        // +=
	PlusPercent   // +%
	PlusPercentEq // +%=
	PlusPipe      // +|
	PlusPipeEq    // +|=
	Minus         // -
	MinusEq       // -=
	MinusPercent  // -%
	MinusPercentEq
	MinusPipe   // -|
	MinusPipeEq // -|=
	Arrow       // ->
	Percent     // %
	PercentEq   // %=
	Slash       // /
	SlashEq     // /=
	Amp         // &
	AmpEq       // &=
	Caret       // ^
	CaretEq     // ^=
	Lt          // <
	LtEq        // <=
	Shl         // <<
	ShlEq       // <<=
	ShlPipe     // <<|
	ShlPipeEq   // <<|=
	Gt          // >
	GtEq        // >=
	Shr         // >>
	ShrEq       // >>=
	Tilde       // ~
	Question    // ?
	Dot         // .
	DotDot      // ..
	Ellipsis    // ...
	DotStar     // .*
	DotQuestion // .?
	Colon       // :
	Semicolon   // ;
	Comma       // ,
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	LBrace      // {
	RBrace      // }
)

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, DocComment, ContainerDocComment:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > kwBegin && k < kwEnd
}

// IsComment reports whether the kind is any comment form.
func (k Kind) IsComment() bool {
	return k == LineComment || k == DocComment || k == ContainerDocComment
}

// IsOperator reports whether the kind is an operator or punctuation.
func (k Kind) IsOperator() bool {
	return k >= Bang && k <= RBrace
}

// IsLiteral reports whether the kind is a number, string or char literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLit, MultilineStringLit, CharLit, IntLit, FloatLit:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindNames = [...]string{
	Invalid:             "Invalid",
	EOF:                 "EOF",
	Whitespace:          "Whitespace",
	LineComment:         "LineComment",
	DocComment:          "DocComment",
	ContainerDocComment: "ContainerDocComment",
	Ident:               "Ident",
	Builtin:             "Builtin",
	StringLit:           "StringLit",
	MultilineStringLit:  "MultilineStringLit",
	CharLit:             "CharLit",
	IntLit:              "IntLit",
	FloatLit:            "FloatLit",
	KwAddrspace:         "KwAddrspace",
	KwAlign:             "KwAlign",
	KwAllowzero:         "KwAllowzero",
	KwAnd:               "KwAnd",
	KwAnyframe:          "KwAnyframe",
	KwAnytype:           "KwAnytype",
	KwAsm:               "KwAsm",
	KwAsync:             "KwAsync",
	KwAwait:             "KwAwait",
	KwBreak:             "KwBreak",
	KwCallconv:          "KwCallconv",
	KwCatch:             "KwCatch",
	KwComptime:          "KwComptime",
	KwConst:             "KwConst",
	KwContinue:          "KwContinue",
	KwDefer:             "KwDefer",
	KwElse:              "KwElse",
	KwEnum:              "KwEnum",
	KwErrdefer:          "KwErrdefer",
	KwError:             "KwError",
	KwExport:            "KwExport",
	KwExtern:            "KwExtern",
	KwFalse:             "KwFalse",
	KwFn:                "KwFn",
	KwFor:               "KwFor",
	KwIf:                "KwIf",
	KwInline:            "KwInline",
	KwLinksection:       "KwLinksection",
	KwNoalias:           "KwNoalias",
	KwNoinline:          "KwNoinline",
	KwNosuspend:         "KwNosuspend",
	KwNull:              "KwNull",
	KwOpaque:            "KwOpaque",
	KwOr:                "KwOr",
	KwOrelse:            "KwOrelse",
	KwPacked:            "KwPacked",
	KwPub:               "KwPub",
	KwResume:            "KwResume",
	KwReturn:            "KwReturn",
	KwStruct:            "KwStruct",
	KwSuspend:           "KwSuspend",
	KwSwitch:            "KwSwitch",
	KwTest:              "KwTest",
	KwThreadlocal:       "KwThreadlocal",
	KwTrue:              "KwTrue",
	KwTry:               "KwTry",
	KwUndefined:         "KwUndefined",
	KwUnion:             "KwUnion",
	KwUnreachable:       "KwUnreachable",
	KwUsingnamespace:    "KwUsingnamespace",
	KwVar:               "KwVar",
	KwVolatile:          "KwVolatile",
	KwWhile:             "KwWhile",
	Bang:                "Bang",
	BangEq:              "BangEq",
	Pipe:                "Pipe",
	PipePipe:            "PipePipe",
	PipeEq:              "PipeEq",
	Eq:                  "Eq",
	EqEq:                "EqEq",
	FatArrow:            "FatArrow",
	Star:                "Star",
	StarEq:              "StarEq",
	StarStar:            "StarStar",
	StarPercent:         "StarPercent",
	StarPercentEq:       "StarPercentEq",
	StarPipe:            "StarPipe",
	StarPipeEq:          "StarPipeEq",
	Plus:                "Plus",
	PlusPlus:            "PlusPlus",
	PlusEq:              "PlusEq",
	PlusPercent:         "PlusPercent",
	PlusPercentEq:       "PlusPercentEq",
	PlusPipe:            "PlusPipe",
	PlusPipeEq:          "PlusPipeEq",
	Minus:               "Minus",
	MinusEq:             "MinusEq",
	MinusPercent:        "MinusPercent",
	MinusPercentEq:      "MinusPercentEq",
	MinusPipe:           "MinusPipe",
	MinusPipeEq:         "MinusPipeEq",
	Arrow:               "Arrow",
	Percent:             "Percent",
	PercentEq:           "PercentEq",
	Slash:               "Slash",
	SlashEq:             "SlashEq",
	Amp:                 "Amp",
	AmpEq:               "AmpEq",
	Caret:               "Caret",
	CaretEq:             "CaretEq",
	Lt:                  "Lt",
	LtEq:                "LtEq",
	Shl:                 "Shl",
	ShlEq:               "ShlEq",
	ShlPipe:             "ShlPipe",
	ShlPipeEq:           "ShlPipeEq",
	Gt:                  "Gt",
	GtEq:                "GtEq",
	Shr:                 "Shr",
	ShrEq:               "ShrEq",
	Tilde:               "Tilde",
	Question:            "Question",
	Dot:                 "Dot",
	DotDot:              "DotDot",
	Ellipsis:            "Ellipsis",
	DotStar:             "DotStar",
	DotQuestion:         "DotQuestion",
	Colon:               "Colon",
	Semicolon:           "Semicolon",
	Comma:               "Comma",
	LParen:              "LParen",
	RParen:              "RParen",
	LBracket:            "LBracket",
	RBracket:            "RBracket",
	LBrace:              "LBrace",
	RBrace:              "RBrace",
}
