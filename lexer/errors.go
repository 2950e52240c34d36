package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/apccurtiss/langlang"
)

const maxQuoted = 24

func quote(text string) string {
	if utf8.RuneCountInString(text) <= maxQuoted {
		return strconv.Quote(text)
	}

	cut := 0
	for i := 0; i < maxQuoted; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return strconv.Quote(text[:cut]) + "..."
}

func unknownTokenError(name, rest string, line, col int) *langlang.Error {
	e := langlang.NewError(langlang.UnknownTokenError, "unknown token "+quote(rest), name, line, col)
	e.Actual = rest
	return e
}

func wrongRegexpError(tt TokenType, e error) *langlang.Error {
	return langlang.FormatError(langlang.WrongRegexpError, "incorrect pattern /%s/ for token %q (%s)", tt.Re, tt.Name, e.Error())
}

func emptyTableError() *langlang.Error {
	return langlang.FormatError(langlang.WrongRegexpError, "empty token table")
}
