// Package lexer defines lexical analyzer driven by an ordered token table.
package lexer

import (
	"regexp"
	"strings"

	"github.com/apccurtiss/langlang/source"
)

// TokenFlags modify handling of fetched tokens.
type TokenFlags int

const (
	// Aside marks insignificant tokens (whitespace, comments): they are matched but not returned.
	Aside TokenFlags = 1 << iota
)

// TokenType describes one entry of token table.
type TokenType struct {
	// Name is the token type name, Token.Type() returns it.
	Name string

	// Re is the pattern, RE2 syntax, implicitly anchored at current position.
	Re string

	Flags TokenFlags
}

// Lexer splits text into tokens using a token table.
// Table order is significant: at every position the first pattern that matches wins,
// even if some later pattern would match a longer prefix.
// Lexer is immutable and safe for concurrent use.
type Lexer struct {
	types  []TokenType
	groups []int
	re     *regexp.Regexp
}

// New creates a lexer for token table types.
// Each pattern is compiled separately first, so the error (if any) names the broken token type.
func New(types []TokenType) (*Lexer, error) {
	if len(types) == 0 {
		return nil, emptyTableError()
	}

	ts := make([]TokenType, len(types))
	copy(ts, types)
	groups := make([]int, len(ts))
	masks := make([]string, len(ts))
	group := 1
	for i, tt := range ts {
		re, e := regexp.Compile(tt.Re)
		if e != nil {
			return nil, wrongRegexpError(tt, e)
		}

		groups[i] = group
		group += re.NumSubexp() + 1
		masks[i] = "(" + tt.Re + ")"
	}

	re, e := regexp.Compile("^(?:" + strings.Join(masks, "|") + ")")
	if e != nil {
		return nil, wrongRegexpError(TokenType{Name: "*", Re: strings.Join(masks, "|")}, e)
	}

	return &Lexer{ts, groups, re}, nil
}

// MustNew is like New but panics on error; used for built-in tables.
func MustNew(types []TokenType) *Lexer {
	l, e := New(types)
	if e != nil {
		panic(e)
	}
	return l
}

// Types returns a copy of token table.
func (l *Lexer) Types() []TokenType {
	result := make([]TokenType, len(l.types))
	copy(result, l.types)
	return result
}

// Tokenize splits the whole source into tokens, aside tokens are dropped.
// Returns nil and *langlang.Error with UnknownTokenError code if some part of the source
// does not match any pattern (or matches an empty string only).
func (l *Lexer) Tokenize(s *source.Source) ([]*Token, error) {
	content := s.Content()
	result := make([]*Token, 0)
	pos := 0
	for pos < len(content) {
		index, size := l.match(content[pos:])
		if size <= 0 {
			line, col := s.LineCol(pos)
			return nil, unknownTokenError(s.Name(), string(content[pos:]), line, col)
		}

		tt := l.types[index]
		if tt.Flags&Aside == 0 {
			line, col := s.LineCol(pos)
			text := string(content[pos : pos+size])
			result = append(result, NewToken(tt.Name, text, s.Name(), pos, line, col))
		}
		pos += size
	}

	return result, nil
}

// TokenizeString is a shortcut for Tokenize(source.New(name, []byte(text))).
func (l *Lexer) TokenizeString(name, text string) ([]*Token, error) {
	return l.Tokenize(source.New(name, []byte(text)))
}

func (l *Lexer) match(content []byte) (index, size int) {
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 {
		return -1, 0
	}

	for i, g := range l.groups {
		if match[g*2] >= 0 {
			return i, match[g*2+1] - match[g*2]
		}
	}
	return -1, 0
}
