package token

var keywords = map[string]Kind{
	"addrspace":      KwAddrspace,
	"align":          KwAlign,
	"allowzero":      KwAllowzero,
	"and":            KwAnd,
	"anyframe":       KwAnyframe,
	"anytype":        KwAnytype,
	"asm":            KwAsm,
	"async":          KwAsync,
	"await":          KwAwait,
	"break":          KwBreak,
	"callconv":       KwCallconv,
	"catch":          KwCatch,
	"comptime":       KwComptime,
	"const":          KwConst,
	"continue":       KwContinue,
	"defer":          KwDefer,
	"else":           KwElse,
	"enum":           KwEnum,
	"errdefer":       KwErrdefer,
	"error":          KwError,
	"export":         KwExport,
	"extern":         KwExtern,
	"false":          KwFalse,
	"fn":             KwFn,
	"for":            KwFor,
	"if":             KwIf,
	"inline":         KwInline,
	"linksection":    KwLinksection,
	"noalias":        KwNoalias,
	"noinline":       KwNoinline,
	"nosuspend":      KwNosuspend,
	"null":           KwNull,
	"opaque":         KwOpaque,
	"or":             KwOr,
	"orelse":         KwOrelse,
	"packed":         KwPacked,
	"pub":            KwPub,
	"resume":         KwResume,
	"return":         KwReturn,
	"struct":         KwStruct,
	"suspend":        KwSuspend,
	"switch":         KwSwitch,
	"test":           KwTest,
	"threadlocal":    KwThreadlocal,
	"true":           KwTrue,
	"try":            KwTry,
	"undefined":      KwUndefined,
	"union":          KwUnion,
	"unreachable":    KwUnreachable,
	"usingnamespace": KwUsingnamespace,
	"var":            KwVar,
	"volatile":       KwVolatile,
	"while":          KwWhile,
}

// LookupKeyword returns the keyword kind for ident. Matching is case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every reserved word, unordered.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
