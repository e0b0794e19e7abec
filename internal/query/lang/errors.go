package lang

import "fmt"

// ParseError reports a syntax error with the position it was found at.
// Position is a rune (code point) index into the query text, not a
// byte offset; the two differ once the text contains non-ASCII
// characters.
type ParseError struct {
	Position int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("position %d: expected %s, found %s", e.Position, e.Expected, e.Found)
}
