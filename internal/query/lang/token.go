// Package lang implements the hand-rolled recursive-descent lexer and
// parser for the SQL subset of spec §4.3: SELECT ... FROM ... [WHERE
// ...] [ORDER BY ...] [LIMIT ... OFFSET ...], with method-chain
// predicates and DateTime constructors.
package lang

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokKeyword
	TokInt
	TokFloat
	TokString
	TokOp
	TokPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "Ident"
	case TokKeyword:
		return "Keyword"
	case TokInt:
		return "Int"
	case TokFloat:
		return "Float"
	case TokString:
		return "String"
	case TokOp:
		return "Op"
	case TokPunct:
		return "Punct"
	}
	return "Unknown"
}

// Token carries its lexeme, kind, and span, so cursor-aware callers
// (e.g. completion) can map a cursor position back to the token under
// it, per spec §4.3. Start and End are rune (code point) indices into
// the query text, not byte offsets.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "order": true, "by": true,
	"limit": true, "offset": true, "and": true, "or": true, "not": true,
	"between": true, "in": true, "is": true, "null": true, "like": true,
	"asc": true, "desc": true, "datetime": true, "today": true,
}

// IsKeyword reports whether word (already lowercased) is a reserved
// keyword of the grammar.
func IsKeyword(lowerWord string) bool { return keywords[lowerWord] }
