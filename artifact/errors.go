package artifact

import (
	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/parser"
)

func undefinedRuleError(c *parser.Cursor, name string) *langlang.Error {
	if t := c.Peek(); t != nil {
		return langlang.FormatErrorPos(t, langlang.UndefinedRuleError, "call to undefined rule %q", name)
	}
	return langlang.FormatError(langlang.UndefinedRuleError, "call to undefined rule %q", name)
}

func unknownEntryError(name string) *langlang.Error {
	return langlang.FormatError(langlang.UnknownEntryError, "unknown entry rule %q", name)
}

func noEntryError() *langlang.Error {
	return langlang.FormatError(langlang.UnknownEntryError, "no entry rule given")
}

func recursionLimitError(c *parser.Cursor, name string, limit int) *langlang.Error {
	if t := c.Peek(); t != nil {
		return langlang.FormatErrorPos(t, langlang.RecursionLimitError, "rule %q exceeds nesting limit %d", name, limit)
	}
	return langlang.FormatError(langlang.RecursionLimitError, "rule %q exceeds nesting limit %d", name, limit)
}

func unknownOpError(rule string, op grammar.Op) *langlang.Error {
	return langlang.FormatError(langlang.UndefinedRuleError, "rule %q contains unknown step %s", rule, op)
}
