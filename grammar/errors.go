package grammar

import (
	"strings"

	"github.com/apccurtiss/langlang"
)

func duplicateTokenError(name string) *langlang.Error {
	return langlang.FormatError(langlang.ReservedTokenError, "token %q defined twice", name)
}

func duplicateRuleError(name string) *langlang.Error {
	return langlang.FormatError(langlang.DuplicateRuleError, "rule %q defined twice", name)
}

func undefinedTokenError(rule, name string) *langlang.Error {
	return langlang.FormatError(langlang.UndefinedTokenError, "rule %q consumes undefined token %q", rule, name)
}

func undefinedRuleError(names []string) *langlang.Error {
	return langlang.FormatError(langlang.UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", "))
}

func unknownOpError(rule string, op Op) *langlang.Error {
	return langlang.FormatError(langlang.UndefinedRuleError, "rule %q contains unknown step %s", rule, op)
}

func unknownEntryError(name string) *langlang.Error {
	return langlang.FormatError(langlang.UnknownEntryError, "unknown entry rule %q", name)
}
