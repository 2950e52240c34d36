/*
Package langlang compiles grammar definitions into recursive-descent parsers with backtracking.

Consists of subpackages:
  - cmd/langlang: console utility compiling a grammar file to a Go program or JSON, or running it on stdin;
  - source: grammar and input text with line/column lookup;
  - lexer: lexical analyzer driven by an ordered token table;
  - parser: backtracking combinators (consume, optionally, ordered choice, one or more, lookahead);
  - ast: syntax tree of grammar definitions;
  - langdef: parses grammar definitions into syntax trees;
  - grammar: compiled grammar, i.e. token table and one procedure per rule;
  - compiler: converts syntax trees to compiled grammars;
  - artifact: runs compiled grammars against input text;
  - gen: renders compiled grammars as standalone Go programs or JSON;
  - config: project configuration files.

A grammar is a list of statements terminated by semicolons:

	-- comments run to the end of line
	greeting :: "hello" WORD:name ;
	pair :: greeting:first greeting:second ;

Each rule is a sequence of literals and rule references. WORD matches any word.
A leaf followed by ":name" is captured, the compiled procedure returns a record
of all captures.
*/
package langlang

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors  = 1   // used by compiler
	LexicalErrors  = 101 // used by lexer
	SyntaxErrors   = 201 // used by parser
	ArtifactErrors = 301 // used by artifact
)

// Lexical error codes.
const (
	// UnknownTokenError indicates that no token pattern matches at current position.
	UnknownTokenError = LexicalErrors + iota

	// WrongRegexpError indicates that a token pattern cannot be compiled.
	WrongRegexpError
)

// Syntax error codes.
const (
	// UnexpectedTokenError indicates that the token at cursor has wrong type.
	UnexpectedTokenError = SyntaxErrors + iota

	// UnexpectedEOFError indicates that the cursor is past the last token.
	UnexpectedEOFError

	// TrailingTokensError indicates that tokens remain after a full-consumption parse.
	TrailingTokensError

	// AggregateChoiceError indicates that every alternative of an ordered choice failed,
	// Error.Causes holds the failures in order.
	AggregateChoiceError
)

// Grammar definition error codes.
const (
	UndefinedRuleError = GrammarErrors + iota
	DuplicateRuleError
	DuplicateCaptureError
	EmptyLiteralError
	ReservedTokenError
	UndefinedTokenError
)

// Artifact error codes.
const (
	UnknownEntryError = ArtifactErrors + iota
	RecursionLimitError
)

// Error is the error type used by langlang subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Expected contains expected token type for UnexpectedTokenError and UnexpectedEOFError.
	Expected string

	// Actual contains offending text: token text for UnexpectedTokenError,
	// the whole unmatched remainder for UnknownTokenError.
	Actual string

	// Index contains the index of the offending token in the token stream for syntax errors,
	// the stream length if the input ended.
	Index int

	// Causes contains underlying errors, e.g. failed alternatives of an ordered choice.
	Causes []error
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// lexer.Token implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error returns Error.Message followed by indented messages of causes.
func (e *Error) Error() string {
	if len(e.Causes) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, c := range e.Causes {
		sb.WriteString("\n  ")
		sb.WriteString(strings.ReplaceAll(c.Error(), "\n", "\n  "))
	}
	return sb.String()
}

// Unwrap returns Error.Causes.
func (e *Error) Unwrap() []error {
	return e.Causes
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, valid := target.(*Error)
	return valid && t.Code == e.Code
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// Code returns error code of the first *Error in the chain of e, 0 if there is none.
func Code(e error) int {
	var ee *Error
	if !errors.As(e, &ee) {
		return 0
	}
	return ee.Code
}
