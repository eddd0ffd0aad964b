package ast

// Kind is the grammar production a node was built from.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindToken is a leaf wrapping exactly one token (trivia included).
	KindToken
	// KindError wraps tokens skipped during error recovery.
	KindError
	// KindSymbol wraps exactly one identifier token.
	KindSymbol

	KindFile
	KindContainerDecl // struct/enum/union/opaque { members }
	KindContainerField
	KindTestDecl
	KindTopLevelComptime
	KindUsingNamespace
	KindFnDecl // proto + body
	KindFnProto
	KindParamDeclList
	KindParamDecl
	KindVarDecl
	KindBlock
	KindBlockLabel // name ':'
	KindBreakLabel // ':' name
	KindExprStatement
	KindDeferStatement
	KindIfExpr
	KindWhileExpr
	KindWhileContinueExpr
	KindForExpr
	KindForInputs
	KindSwitchExpr
	KindSwitchProng
	KindSwitchCase
	KindPayload         // |x|
	KindPtrPayload      // |*x|
	KindPtrIndexPayload // |x, i|
	KindReturnExpr
	KindBreakExpr
	KindContinueExpr
	KindBinaryExpr
	KindPrefixExpr
	KindPrefixTypeOp
	KindSuffixExpr
	KindSuffixOp
	KindFnCallArguments
	KindCurlySuffixExpr
	KindInitList
	KindFieldInit
	KindAnonymousInitExpr // .{ ... }
	KindGroupedExpr
	KindPrimaryReferenceExpr
	KindPrimaryEnumReferenceExpr  // .Foo
	KindPrimaryErrorReferenceExpr // error.Foo
	KindErrorSetDecl
	KindBuiltinCallExpr
	KindLiteral
	KindStringLiteral
	KindAsmExpr
	KindAsmOutput
	KindAsmOutputItem
	KindAsmInput
	KindAsmInputItem
	KindAsmClobbers
	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                   "Invalid",
	KindToken:                     "Token",
	KindError:                     "Error",
	KindSymbol:                    "Symbol",
	KindFile:                      "File",
	KindContainerDecl:             "ContainerDecl",
	KindContainerField:            "ContainerField",
	KindTestDecl:                  "TestDecl",
	KindTopLevelComptime:          "TopLevelComptime",
	KindUsingNamespace:            "UsingNamespace",
	KindFnDecl:                    "FnDecl",
	KindFnProto:                   "FnProto",
	KindParamDeclList:             "ParamDeclList",
	KindParamDecl:                 "ParamDecl",
	KindVarDecl:                   "VarDecl",
	KindBlock:                     "Block",
	KindBlockLabel:                "BlockLabel",
	KindBreakLabel:                "BreakLabel",
	KindExprStatement:             "ExprStatement",
	KindDeferStatement:            "DeferStatement",
	KindIfExpr:                    "IfExpr",
	KindWhileExpr:                 "WhileExpr",
	KindWhileContinueExpr:         "WhileContinueExpr",
	KindForExpr:                   "ForExpr",
	KindForInputs:                 "ForInputs",
	KindSwitchExpr:                "SwitchExpr",
	KindSwitchProng:               "SwitchProng",
	KindSwitchCase:                "SwitchCase",
	KindPayload:                   "Payload",
	KindPtrPayload:                "PtrPayload",
	KindPtrIndexPayload:           "PtrIndexPayload",
	KindReturnExpr:                "ReturnExpr",
	KindBreakExpr:                 "BreakExpr",
	KindContinueExpr:              "ContinueExpr",
	KindBinaryExpr:                "BinaryExpr",
	KindPrefixExpr:                "PrefixExpr",
	KindPrefixTypeOp:              "PrefixTypeOp",
	KindSuffixExpr:                "SuffixExpr",
	KindSuffixOp:                  "SuffixOp",
	KindFnCallArguments:           "FnCallArguments",
	KindCurlySuffixExpr:           "CurlySuffixExpr",
	KindInitList:                  "InitList",
	KindFieldInit:                 "FieldInit",
	KindAnonymousInitExpr:         "AnonymousInitExpr",
	KindGroupedExpr:               "GroupedExpr",
	KindPrimaryReferenceExpr:      "PrimaryReferenceExpr",
	KindPrimaryEnumReferenceExpr:  "PrimaryEnumReferenceExpr",
	KindPrimaryErrorReferenceExpr: "PrimaryErrorReferenceExpr",
	KindErrorSetDecl:              "ErrorSetDecl",
	KindBuiltinCallExpr:           "BuiltinCallExpr",
	KindLiteral:                   "Literal",
	KindStringLiteral:             "StringLiteral",
	KindAsmExpr:                   "AsmExpr",
	KindAsmOutput:                 "AsmOutput",
	KindAsmOutputItem:             "AsmOutputItem",
	KindAsmInput:                  "AsmInput",
	KindAsmInputItem:              "AsmInputItem",
	KindAsmClobbers:               "AsmClobbers",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsPayload reports whether k captures names with |...|.
func (k Kind) IsPayload() bool {
	return k == KindPayload || k == KindPtrPayload || k == KindPtrIndexPayload
}

// IsContainer reports whether members of k see each other regardless of order.
func (k Kind) IsContainer() bool {
	return k == KindFile || k == KindContainerDecl
}
