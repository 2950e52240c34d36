// Package artifact runs compiled grammars against input text.
//
// An Artifact is the interpreting counterpart of the generated parser program:
// it has the same token table, one callable procedure per rule, and the same host routine.
package artifact

import (
	"io"
	"log/slog"

	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/lexer"
	"github.com/apccurtiss/langlang/parser"
	"github.com/apccurtiss/langlang/source"
)

// DefaultMaxDepth limits rule call nesting, so that left-recursive grammars fail instead of overflowing the stack.
const DefaultMaxDepth = 10000

// Artifact is an immutable compiled parser, it may be shared by concurrent parses.
type Artifact struct {
	grammar  *grammar.Grammar
	lexer    *lexer.Lexer
	rules    map[string]*grammar.Rule
	maxDepth int
}

// New creates an artifact for g. Rule references are resolved at call time,
// only token table and entry rule are checked here.
func New(g *grammar.Grammar) (*Artifact, error) {
	l, e := lexer.New(g.LexerTypes())
	if e != nil {
		return nil, e
	}

	rules := make(map[string]*grammar.Rule, len(g.Rules))
	for i := range g.Rules {
		rules[g.Rules[i].Name] = &g.Rules[i]
	}

	if g.Entry != "" && rules[g.Entry] == nil {
		return nil, unknownEntryError(g.Entry)
	}

	return &Artifact{grammar: g, lexer: l, rules: rules, maxDepth: DefaultMaxDepth}, nil
}

// WithMaxDepth returns a copy of the artifact with different rule nesting limit.
func (a *Artifact) WithMaxDepth(depth int) *Artifact {
	result := *a
	result.maxDepth = depth
	return &result
}

func (a *Artifact) Grammar() *grammar.Grammar {
	return a.grammar
}

// Tokens returns the token table in priority order.
func (a *Artifact) Tokens() []lexer.TokenType {
	return a.lexer.Types()
}

// Exports returns names of callable rules in definition order.
func (a *Artifact) Exports() []string {
	return a.grammar.RuleNames()
}

// Entry returns default entry rule name.
func (a *Artifact) Entry() string {
	return a.grammar.Entry
}

// NewParser tokenizes the source and returns a parser with cursor at the first token.
func (a *Artifact) NewParser(s *source.Source) (*Parser, error) {
	tokens, e := a.lexer.Tokenize(s)
	if e != nil {
		return nil, e
	}
	return &Parser{artifact: a, cursor: parser.NewCursor(tokens)}, nil
}

// Parse parses whole text using rule, or entry rule if rule is empty.
func (a *Artifact) Parse(rule, text string) (grammar.Record, error) {
	p, e := a.NewParser(source.New("input", []byte(text)))
	if e != nil {
		return nil, e
	}
	return p.ParseAll(rule)
}

// Parser holds the state of one parse. It must not be used concurrently.
type Parser struct {
	artifact *Artifact
	cursor   *parser.Cursor
	depth    int
}

// Cursor returns the parser cursor, e.g. to combine rules with parser package combinators.
func (p *Parser) Cursor() *parser.Cursor {
	return p.cursor
}

// Call runs the named rule procedure at current cursor position.
// On failure the cursor may be left advanced, use parser combinators to restore it.
func (p *Parser) Call(rule string) (grammar.Record, error) {
	return p.Proc(rule)(p.cursor)
}

// Proc returns the named rule procedure. The rule is looked up when the procedure runs.
func (p *Parser) Proc(rule string) parser.Proc[grammar.Record] {
	return func(c *parser.Cursor) (grammar.Record, error) {
		r := p.artifact.rules[rule]
		if r == nil {
			return nil, undefinedRuleError(c, rule)
		}

		if p.depth >= p.artifact.maxDepth {
			return nil, recursionLimitError(c, rule, p.artifact.maxDepth)
		}

		p.depth++
		defer func() { p.depth-- }()
		return p.run(c, r)
	}
}

func (p *Parser) run(c *parser.Cursor, r *grammar.Rule) (grammar.Record, error) {
	result := make(grammar.Record, len(r.Captures))
	for _, s := range r.Steps {
		var (
			value any
			e     error
		)
		switch s.Op {
		case grammar.ConsumeToken:
			value, e = c.Consume(s.Arg)
		case grammar.CallRule:
			value, e = p.Proc(s.Arg)(c)
		default:
			e = unknownOpError(r.Name, s.Op)
		}
		if e != nil {
			return nil, e
		}

		if s.Capture != "" {
			result[s.Capture] = value
		}
	}
	return result, nil
}

// ParseAll runs the rule (entry rule if empty) and requires all tokens to be consumed.
func (p *Parser) ParseAll(rule string) (grammar.Record, error) {
	rule, e := p.artifact.entryRule(rule)
	if e != nil {
		return nil, e
	}
	return parser.RequireFullConsumption(p.cursor, p.Proc(rule))
}

func (a *Artifact) entryRule(rule string) (string, error) {
	if rule == "" {
		rule = a.grammar.Entry
		if rule == "" {
			return "", noEntryError()
		}
	}
	if a.rules[rule] == nil {
		return "", unknownEntryError(rule)
	}
	return rule, nil
}

// Main is the host routine: it parses the whole stdin with entry rule (default one if empty),
// writes the result as indented JSON (see MarshalRecord) to stdout and returns 0,
// or writes error message to stderr and returns 1.
func Main(a *Artifact, entry string, stdin io.Reader, stdout, stderr io.Writer) int {
	return MainLog(a, entry, stdin, stdout, stderr, nil)
}

// MainLog is like Main but also logs the outcome.
func MainLog(a *Artifact, entry string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data, e := run(a, entry, stdin)
	if e != nil {
		logger.Debug("parse failed", "error", e)
		io.WriteString(stderr, e.Error()+"\n")
		return 1
	}

	logger.Debug("parse succeeded", "bytes", len(data))
	if _, e = stdout.Write(data); e != nil {
		io.WriteString(stderr, e.Error()+"\n")
		return 1
	}
	return 0
}

func run(a *Artifact, entry string, stdin io.Reader) ([]byte, error) {
	raw, e := io.ReadAll(stdin)
	if e != nil {
		return nil, e
	}

	s, e := source.NewDecoded("stdin", raw)
	if e != nil {
		return nil, e
	}

	entry, e = a.entryRule(entry)
	if e != nil {
		return nil, e
	}

	p, e := a.NewParser(s)
	if e != nil {
		return nil, e
	}

	result, e := p.ParseAll(entry)
	if e != nil {
		return nil, e
	}
	return a.MarshalRecord(entry, result)
}
