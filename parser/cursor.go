// Package parser defines backtracking combinators used to build recursive-descent parsers.
//
// All combinators operate on a Cursor, the index of the current token in a token slice.
// A combinator that tries a sub-parse takes a snapshot of the cursor first and restores it
// when the sub-parse fails, so a failed attempt never leaks partial advancement.
// Failures are ordinary error values (*langlang.Error), no panics are involved.
package parser

import (
	"github.com/apccurtiss/langlang/lexer"
)

// Cursor is the only mutable state of a parse: a position in an immutable token slice.
// A Cursor must not be shared by concurrent parses.
type Cursor struct {
	tokens []*lexer.Token
	index  int
}

// NewCursor creates a cursor at the first token.
func NewCursor(tokens []*lexer.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Pos returns the index of the current token; equals Len() at the end of input.
func (c *Cursor) Pos() int {
	return c.index
}

func (c *Cursor) Len() int {
	return len(c.tokens)
}

func (c *Cursor) AtEnd() bool {
	return c.index >= len(c.tokens)
}

// Mark returns a snapshot to be passed to Reset.
func (c *Cursor) Mark() int {
	return c.index
}

// Reset restores a snapshot returned by Mark.
func (c *Cursor) Reset(mark int) {
	c.index = mark
}

// Peek returns current token or nil at the end of input.
func (c *Cursor) Peek() *lexer.Token {
	if c.AtEnd() {
		return nil
	}
	return c.tokens[c.index]
}

// Remaining returns unconsumed tokens.
func (c *Cursor) Remaining() []*lexer.Token {
	if c.AtEnd() {
		return nil
	}
	return c.tokens[c.index:]
}

// ConsumeToken requires current token to be of tokenType and advances the cursor.
// Fails with UnexpectedEOFError at the end of input or UnexpectedTokenError on type mismatch,
// the cursor is not moved on failure.
func (c *Cursor) ConsumeToken(tokenType string) (*lexer.Token, error) {
	t := c.Peek()
	if t == nil {
		return nil, unexpectedEOFError(c, tokenType)
	}

	if t.Type() != tokenType {
		return nil, unexpectedTokenError(t, tokenType, c.index)
	}

	c.index++
	return t, nil
}

// Consume is like ConsumeToken but returns token text.
func (c *Cursor) Consume(tokenType string) (string, error) {
	t, e := c.ConsumeToken(tokenType)
	if e != nil {
		return "", e
	}
	return t.Text(), nil
}
