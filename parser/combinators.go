package parser

import (
	"github.com/apccurtiss/langlang/lexer"
)

// Proc is a parsing procedure: it reads tokens at the cursor and either returns a value
// or fails. A failed Proc may leave the cursor advanced, combinators restore it.
type Proc[T any] func(c *Cursor) (T, error)

// Optionally runs p; on failure restores the cursor and returns zero value and false.
func Optionally[T any](c *Cursor, p Proc[T]) (T, bool) {
	mark := c.Mark()
	result, e := p(c)
	if e != nil {
		c.Reset(mark)
		var zero T
		return zero, false
	}
	return result, true
}

// OrderedChoice tries alternatives in order, each from the same starting position,
// and returns the result of the first one that succeeds.
// If all alternatives fail the cursor is restored and the returned *langlang.Error
// with AggregateChoiceError code lists every failure in order.
func OrderedChoice[T any](c *Cursor, ps ...Proc[T]) (T, error) {
	mark := c.Mark()
	causes := make([]error, 0, len(ps))
	for _, p := range ps {
		c.Reset(mark)
		result, e := p(c)
		if e == nil {
			return result, nil
		}
		causes = append(causes, e)
	}

	c.Reset(mark)
	var zero T
	return zero, aggregateChoiceError(c, causes)
}

// OneOrMore runs p repeatedly while it succeeds and returns collected results.
// The first failure restores the cursor to the position after the last success.
// If p fails on the first attempt its error is returned as is.
// A successful iteration that consumes nothing ends the loop.
func OneOrMore[T any](c *Cursor, p Proc[T]) ([]T, error) {
	var results []T
	for {
		mark := c.Mark()
		result, e := p(c)
		if e != nil {
			c.Reset(mark)
			if len(results) == 0 {
				return nil, e
			}
			return results, nil
		}

		results = append(results, result)
		if c.Pos() == mark {
			return results, nil
		}
	}
}

// Test reports whether p succeeds at current position; the cursor is always restored.
func Test[T any](c *Cursor, p Proc[T]) bool {
	mark := c.Mark()
	_, e := p(c)
	c.Reset(mark)
	return e == nil
}

// RequireFullConsumption runs p and fails with TrailingTokensError unless it consumed all tokens.
func RequireFullConsumption[T any](c *Cursor, p Proc[T]) (T, error) {
	result, e := p(c)
	if e != nil {
		return result, e
	}

	if !c.AtEnd() {
		var zero T
		return zero, trailingTokensError(c.Remaining())
	}
	return result, nil
}

// Consumer returns a Proc consuming one token of tokenType, see Cursor.Consume.
func Consumer(tokenType string) Proc[string] {
	return func(c *Cursor) (string, error) {
		return c.Consume(tokenType)
	}
}

// TokenConsumer returns a Proc consuming one token of tokenType, see Cursor.ConsumeToken.
func TokenConsumer(tokenType string) Proc[*lexer.Token] {
	return func(c *Cursor) (*lexer.Token, error) {
		return c.ConsumeToken(tokenType)
	}
}
