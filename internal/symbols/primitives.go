package symbols

import "strings"

var primitiveNames = map[string]struct{}{
	"isize": {}, "usize": {},
	"c_char": {}, "c_short": {}, "c_ushort": {}, "c_int": {}, "c_uint": {},
	"c_long": {}, "c_ulong": {}, "c_longlong": {}, "c_ulonglong": {}, "c_longdouble": {},
	"f16": {}, "f32": {}, "f64": {}, "f80": {}, "f128": {},
	"bool": {}, "void": {}, "noreturn": {}, "type": {}, "anyerror": {}, "anyopaque": {},
	"comptime_int": {}, "comptime_float": {},
	"_": {},
}

// IsPrimitive reports names that Zig provides without a declaration:
// primitive types, arbitrary-width integers (u7, i128) and the discard `_`.
func IsPrimitive(name string) bool {
	if _, ok := primitiveNames[name]; ok {
		return true
	}
	return isIntType(name)
}

func isIntType(name string) bool {
	if len(name) < 2 || (name[0] != 'u' && name[0] != 'i') {
		return false
	}
	digits := name[1:]
	if digits[0] == '0' && len(digits) > 1 {
		return false
	}
	return strings.Trim(digits, "0123456789") == "" && len(digits) <= 5
}
