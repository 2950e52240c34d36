package compiler

import (
	"strings"

	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/ast"
	"github.com/apccurtiss/langlang/grammar"
)

func duplicateRuleError(pos ast.Pos, name string) *langlang.Error {
	return langlang.FormatErrorPos(pos, langlang.DuplicateRuleError, "rule %q already defined", name)
}

func duplicateCaptureError(pos ast.Pos, rule, name string) *langlang.Error {
	return langlang.FormatErrorPos(pos, langlang.DuplicateCaptureError, "capture %q already used in rule %q", name, rule)
}

func emptyLiteralError(pos ast.Pos) *langlang.Error {
	return langlang.FormatErrorPos(pos, langlang.EmptyLiteralError, "empty literal")
}

func reservedTokenError(pos ast.Pos, name string) *langlang.Error {
	return langlang.FormatErrorPos(pos, langlang.ReservedTokenError, "%q is a built-in token name", name)
}

func undefinedRuleError(pos ast.Pos, names []string) *langlang.Error {
	return langlang.FormatErrorPos(pos, langlang.UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", "))
}

func unknownEntryError(name string) *langlang.Error {
	return langlang.FormatError(langlang.UnknownEntryError, "unknown entry rule %q", name)
}

func noRulesError() *langlang.Error {
	return langlang.FormatError(langlang.UnknownEntryError, "grammar defines no rules")
}

func isBuiltin(name string) bool {
	return name == grammar.WordToken || name == grammar.WhitespaceToken
}
