package parser

import (
	"strings"

	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/lexer"
)

const maxListedTokens = 5

func unexpectedTokenError(t *lexer.Token, expected string, index int) *langlang.Error {
	e := langlang.FormatErrorPos(t, langlang.UnexpectedTokenError,
		"unexpected %s token %q at position %d, expecting %s", t.Type(), t.Text(), index, expected)
	e.Expected = expected
	e.Actual = t.Text()
	e.Index = index
	return e
}

func unexpectedEOFError(c *Cursor, expected string) *langlang.Error {
	var e *langlang.Error
	if len(c.tokens) == 0 {
		e = langlang.FormatError(langlang.UnexpectedEOFError, "unexpected end of input, expecting %s", expected)
	} else {
		last := c.tokens[len(c.tokens)-1]
		e = langlang.NewError(langlang.UnexpectedEOFError,
			"unexpected end of input after "+last.String()+", expecting "+expected,
			last.SourceName(), last.Line(), last.Col())
	}
	e.Expected = expected
	e.Index = len(c.tokens)
	return e
}

func trailingTokensError(rest []*lexer.Token) *langlang.Error {
	listed := make([]string, 0, maxListedTokens+1)
	for i, t := range rest {
		if i == maxListedTokens {
			listed = append(listed, "...")
			break
		}
		listed = append(listed, t.String())
	}
	return langlang.FormatErrorPos(rest[0], langlang.TrailingTokensError,
		"%d trailing token(s): %s", len(rest), strings.Join(listed, ", "))
}

func aggregateChoiceError(c *Cursor, causes []error) *langlang.Error {
	var e *langlang.Error
	t := c.Peek()
	if t == nil {
		e = langlang.FormatError(langlang.AggregateChoiceError, "no alternative matches at end of input")
	} else {
		e = langlang.FormatErrorPos(t, langlang.AggregateChoiceError, "no alternative matches %s", t.String())
	}
	e.Causes = causes
	return e
}
