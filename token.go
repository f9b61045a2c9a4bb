package main

import "fmt"

// tokenKind enumerates the lexical categories produced by the lexer.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokStringLiteral
	tokRawStringLiteral
	tokBacktick
	tokEquals
	tokColon
	tokComma
	tokPlus
	tokAt
	tokEol
	tokIndent
	tokDedent
	tokLine
	tokInterpolationStart
	tokInterpolationEnd
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokName:
		return "name"
	case tokStringLiteral:
		return "string"
	case tokRawStringLiteral:
		return "raw string"
	case tokBacktick:
		return "backtick"
	case tokEquals:
		return "'='"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokPlus:
		return "'+'"
	case tokAt:
		return "'@'"
	case tokEol:
		return "end of line"
	case tokIndent:
		return "indent"
	case tokDedent:
		return "dedent"
	case tokLine:
		return "line text"
	case tokInterpolationStart:
		return "'{{'"
	case tokInterpolationEnd:
		return "'}}'"
	}
	return "unknown token"
}

// position locates a token (or span of interest) within the source.
type position struct {
	filename string
	line     int // 1-based
	column   int // 0-based, in runes
	offset   int // 0-based byte offset
	length   int // byte length of the span
}

func (p position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.column+1)
}

// token is a single lexical unit together with the source span it covers.
type token struct {
	kind tokenKind
	text string
	pos  position
}
