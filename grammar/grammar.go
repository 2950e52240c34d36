// Package grammar defines compiled grammar: token table and one procedure per rule.
//
// A Grammar is plain data, it can be saved as JSON and loaded back.
// It is never modified after construction and may be shared by concurrent parses.
package grammar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apccurtiss/langlang/lexer"
)

// Built-in names.
const (
	// WordToken matches any word (\w+).
	WordToken = "WORD"

	// WhitespaceToken matches whitespace, always dropped.
	WhitespaceToken = "WHITESPACE"

	// EntryRule is the name of the rule defined by a return statement.
	EntryRule = "main"
)

// Patterns of built-in tokens.
const (
	WordRe       = `\w+`
	WhitespaceRe = `\s+`
)

type TokenFlags int

const (
	AsideToken TokenFlags = 1 << iota
)

// Token is an entry of token table.
type Token struct {
	Name, Re string
	Flags    TokenFlags `json:",omitempty"`
}

// Op is a kind of procedure step.
type Op int

const (
	// ConsumeToken requires the current token to be of type Step.Arg.
	ConsumeToken Op = iota
	// CallRule invokes the rule named Step.Arg, resolved at call time.
	CallRule
)

var opNames = [...]string{"consume", "call"}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opNames[op]
}

func (op Op) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(opNames) {
		return nil, fmt.Errorf("unknown step op %d", int(op))
	}
	return []byte(opNames[op]), nil
}

func (op *Op) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == string(text) {
			*op = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step op %q", string(text))
}

// Step is one element of a rule sequence.
type Step struct {
	Op  Op
	Arg string
	// Capture is the record key for the step result or empty string.
	Capture string `json:",omitempty"`
}

// Rule is a compiled procedure: steps are performed in order, all must succeed.
type Rule struct {
	Name string
	// Captures lists record keys in order of appearance.
	Captures []string `json:",omitempty"`
	Steps    []Step
}

// Grammar is a compiled grammar.
// Token table order is significant, see lexer.Lexer.
type Grammar struct {
	Tokens []Token
	Rules  []Rule
	// Entry is the rule used when no rule name is given.
	Entry string
}

// Record is the result of a rule: captured values keyed by capture names.
// Captured tokens are strings, captured rule calls are nested Records.
type Record = map[string]any

// Rule returns the rule with given name, nil if there is none.
func (g *Grammar) Rule(name string) *Rule {
	for i := range g.Rules {
		if g.Rules[i].Name == name {
			return &g.Rules[i]
		}
	}
	return nil
}

// RuleNames returns names of all rules in definition order.
func (g *Grammar) RuleNames() []string {
	result := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		result[i] = r.Name
	}
	return result
}

// LexerTypes converts token table to lexer.TokenType slice.
func (g *Grammar) LexerTypes() []lexer.TokenType {
	result := make([]lexer.TokenType, len(g.Tokens))
	for i, t := range g.Tokens {
		var flags lexer.TokenFlags
		if t.Flags&AsideToken != 0 {
			flags |= lexer.Aside
		}
		result[i] = lexer.TokenType{Name: t.Name, Re: t.Re, Flags: flags}
	}
	return result
}

// Validate checks that rule and token names are unique, every step refers
// to a defined rule or token, and the entry rule (if set) exists.
func (g *Grammar) Validate() error {
	tokens := make(map[string]bool, len(g.Tokens))
	for _, t := range g.Tokens {
		if tokens[t.Name] {
			return duplicateTokenError(t.Name)
		}
		tokens[t.Name] = true
	}

	rules := make(map[string]bool, len(g.Rules))
	for _, r := range g.Rules {
		if rules[r.Name] {
			return duplicateRuleError(r.Name)
		}
		rules[r.Name] = true
	}

	for _, r := range g.Rules {
		for _, s := range r.Steps {
			switch s.Op {
			case ConsumeToken:
				if !tokens[s.Arg] {
					return undefinedTokenError(r.Name, s.Arg)
				}
			case CallRule:
				if !rules[s.Arg] {
					return undefinedRuleError([]string{s.Arg})
				}
			default:
				return unknownOpError(r.Name, s.Op)
			}
		}
	}

	if g.Entry != "" && !rules[g.Entry] {
		return unknownEntryError(g.Entry)
	}
	return nil
}

// Save writes grammar as indented JSON.
func (g *Grammar) Save(w io.Writer) error {
	data, e := json.MarshalIndent(g, "", "  ")
	if e != nil {
		return e
	}

	_, e = w.Write(append(data, '\n'))
	return e
}

// Load reads grammar saved as JSON and validates it.
func Load(r io.Reader) (*Grammar, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	g := &Grammar{}
	if e := dec.Decode(g); e != nil {
		return nil, e
	}

	if e := g.Validate(); e != nil {
		return nil, e
	}
	return g, nil
}
