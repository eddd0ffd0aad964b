package symbols

import (
	"zigscope/internal/ast"
	"zigscope/internal/token"
)

// Classify decides the role of a Symbol node from its parent's kind. The
// index-payload case also looks at which capture slot the symbol occupies.
func Classify(tree *ast.Tree, sym ast.NodeID) Role {
	if tree.Kind(sym) != ast.KindSymbol {
		return RoleInvalid
	}
	parent := tree.Parent(sym)
	switch tree.Kind(parent) {
	case ast.KindFnProto:
		return RoleFnDeclaration
	case ast.KindVarDecl:
		return RoleVarDeclaration
	case ast.KindContainerField:
		return RoleFieldDeclaration
	case ast.KindPrimaryReferenceExpr:
		return RoleExpression
	case ast.KindPrimaryEnumReferenceExpr:
		return RoleEnumReference
	case ast.KindPrimaryErrorReferenceExpr:
		return RoleErrorReference
	case ast.KindErrorSetDecl:
		return RoleErrorDeclaration
	case ast.KindAsmInputItem, ast.KindAsmOutputItem:
		return RoleAssembly
	case ast.KindBreakLabel:
		return RoleBreakLabelReference
	case ast.KindBlockLabel:
		return RoleBreakLabelDeclaration
	case ast.KindFieldInit:
		return RoleFieldReference
	case ast.KindParamDecl:
		return RoleParameterDeclaration
	case ast.KindPayload, ast.KindPtrPayload:
		return RolePayloadDeclaration
	case ast.KindPtrIndexPayload:
		switch payloadSlot(tree, parent, sym) {
		case 0:
			return RolePayloadDeclaration
		case 1:
			return RolePayloadIndexDeclaration
		default:
			return RoleInvalid
		}
	case ast.KindSuffixOp:
		return RoleFieldOrConstantReference
	default:
		return RoleInvalid
	}
}

// payloadSlot returns the position of sym among the Symbol children of payload.
func payloadSlot(tree *ast.Tree, payload, sym ast.NodeID) int {
	slot := 0
	for _, c := range tree.Children(payload) {
		if c == sym {
			return slot
		}
		if tree.Kind(c) == ast.KindSymbol {
			slot++
		}
	}
	return -1
}

// prevKeyword — ближайший значимый сосед слева, если это лист-токен.
func prevKeyword(tree *ast.Tree, sym ast.NodeID) token.Kind {
	return tree.TokenKind(tree.PrevSignificantSibling(sym))
}

// IsFunctionName: the name right after `fn` in a prototype.
func IsFunctionName(tree *ast.Tree, sym ast.NodeID) bool {
	return tree.Kind(tree.Parent(sym)) == ast.KindFnProto && prevKeyword(tree, sym) == token.KwFn
}

// IsVariableName: the name right after `const` or `var`.
func IsVariableName(tree *ast.Tree, sym ast.NodeID) bool {
	if tree.Kind(tree.Parent(sym)) != ast.KindVarDecl {
		return false
	}
	k := prevKeyword(tree, sym)
	return k == token.KwConst || k == token.KwVar
}

func IsParameter(tree *ast.Tree, sym ast.NodeID) bool {
	return tree.Kind(tree.Parent(sym)) == ast.KindParamDecl
}

// IsDeclarationName is the narrow check used to filter completion candidates.
// Unlike Role.IsDeclaration it ignores fields, payloads, labels and error names.
func IsDeclarationName(tree *ast.Tree, sym ast.NodeID) bool {
	return IsFunctionName(tree, sym) || IsParameter(tree, sym) || IsVariableName(tree, sym)
}

// inAnonymousInit reports whether a field init belongs to `.{ ... }` rather
// than to `T{ ... }`. Such a field name declares the field instead of referring to one.
func inAnonymousInit(tree *ast.Tree, sym ast.NodeID) bool {
	return tree.Kind(tree.Enclosing(sym, ast.KindAnonymousInitExpr, ast.KindCurlySuffixExpr)) == ast.KindAnonymousInitExpr
}
