package symbols

// Role is the syntactic classification of one identifier occurrence.
type Role uint8

const (
	RoleInvalid Role = iota
	RoleFnDeclaration
	RoleVarDeclaration
	RoleFieldDeclaration // also enum constants
	RoleExpression
	RoleEnumReference
	RoleErrorReference // error.Foo; declares as well as refers
	RoleErrorDeclaration
	RoleAssembly
	RoleBreakLabelReference
	RoleBreakLabelDeclaration
	RoleFieldReference
	RoleParameterDeclaration
	RolePayloadDeclaration
	RolePayloadIndexDeclaration
	RoleFieldOrConstantReference
	roleCount
)

var roleNames = [roleCount]string{
	RoleInvalid:                  "Invalid",
	RoleFnDeclaration:            "FnDeclaration",
	RoleVarDeclaration:           "VarDeclaration",
	RoleFieldDeclaration:         "FieldDeclaration",
	RoleExpression:               "Expression",
	RoleEnumReference:            "EnumReference",
	RoleErrorReference:           "ErrorReference",
	RoleErrorDeclaration:         "ErrorDeclaration",
	RoleAssembly:                 "Assembly",
	RoleBreakLabelReference:      "BreakLabelReference",
	RoleBreakLabelDeclaration:    "BreakLabelDeclaration",
	RoleFieldReference:           "FieldReference",
	RoleParameterDeclaration:     "ParameterDeclaration",
	RolePayloadDeclaration:       "PayloadDeclaration",
	RolePayloadIndexDeclaration:  "PayloadIndexDeclaration",
	RoleFieldOrConstantReference: "FieldOrConstantReference",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "Role(?)"
}

// IsDeclaration reports whether an occurrence with this role introduces a name.
func (r Role) IsDeclaration() bool {
	switch r {
	case RoleFnDeclaration, RoleVarDeclaration, RoleFieldDeclaration,
		RoleErrorReference, RoleErrorDeclaration, RoleBreakLabelDeclaration,
		RoleParameterDeclaration, RolePayloadDeclaration, RolePayloadIndexDeclaration:
		return true
	default:
		return false
	}
}

func (r Role) IsBreakLabel() bool {
	return r == RoleBreakLabelReference || r == RoleBreakLabelDeclaration
}

// IsError reports the two co-referential error-name roles.
func (r Role) IsError() bool {
	return r == RoleErrorReference || r == RoleErrorDeclaration
}

// NeedsContainerType reports roles whose target depends on the type of an
// enclosing expression. They are never resolved.
func (r Role) NeedsContainerType() bool {
	switch r {
	case RoleEnumReference, RoleFieldReference, RoleFieldOrConstantReference:
		return true
	default:
		return false
	}
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true // #nosec G115 -- roleCount < 256
		}
	}
	return RoleInvalid, false
}
