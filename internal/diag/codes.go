package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexBadBuiltin         Code = 1005
	LexBadEscape          Code = 1006

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectType        Code = 2005
	SynExpectBlock       Code = 2006
	SynUnclosedParen     Code = 2007
	SynUnclosedBrace     Code = 2008
	SynUnclosedBracket   Code = 2009
	SynExpectColon       Code = 2010
	SynExpectPayload     Code = 2011
	SynBadContainerField Code = 2012
	SynStrayToken        Code = 2013

	// Разрешение имён
	ResInfo            Code = 3000
	ResUnresolved      Code = 3001
	ResUnresolvedLabel Code = 3002
	ResPartialError    Code = 3003

	// Ввод-вывод и проект
	IOLoadFileError   Code = 4001
	PrjManifestError  Code = 5001
	PrjZigExeNotFound Code = 5002

	// Наблюдаемость
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexUnterminatedChar:   "Unterminated character literal",
	LexBadNumber:          "Malformed number literal",
	LexBadBuiltin:         "Malformed builtin identifier",
	LexBadEscape:          "Invalid escape sequence",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectSemicolon:    "Expected ';'",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectExpression:   "Expected expression",
	SynExpectType:         "Expected type expression",
	SynExpectBlock:        "Expected block",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBrace:      "Unclosed brace",
	SynUnclosedBracket:    "Unclosed bracket",
	SynExpectColon:        "Expected ':'",
	SynExpectPayload:      "Malformed payload capture",
	SynBadContainerField:  "Malformed container field",
	SynStrayToken:         "Stray token",
	ResInfo:               "Resolution information",
	ResUnresolved:         "Unresolved reference",
	ResUnresolvedLabel:    "Unresolved label",
	ResPartialError:       "Reference resolves into malformed code",
	IOLoadFileError:       "Failed to load file",
	PrjManifestError:      "Invalid zigscope.toml",
	PrjZigExeNotFound:     "Zig executable not found",
	ObsTimings:            "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
