// Package compiler converts grammar syntax trees to compiled grammars.
package compiler

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/apccurtiss/langlang/ast"
	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/langdef"
	"github.com/apccurtiss/langlang/source"
)

// Compiler converts syntax trees to grammars.
// Compiler holds no per-compilation state and may be used concurrently.
type Compiler struct {
	// Logger receives output of print statements and debug messages, nil discards them.
	Logger *slog.Logger

	// Entry overrides default entry rule if not empty.
	// Default entry rule is "main" if the grammar has a return statement, the first rule otherwise.
	Entry string
}

func New(logger *slog.Logger) *Compiler {
	return &Compiler{Logger: logger}
}

// CompileSource parses grammar description and compiles it.
func (c *Compiler) CompileSource(s *source.Source) (*grammar.Grammar, error) {
	f, e := langdef.Parse(s)
	if e != nil {
		return nil, e
	}
	return c.Compile(f)
}

// CompileString is a shortcut for CompileSource(source.New(name, []byte(text))).
func (c *Compiler) CompileString(name, text string) (*grammar.Grammar, error) {
	return c.CompileSource(source.New(name, []byte(text)))
}

// Compile converts syntax tree to grammar.
//
// Token table contains literals in order of first appearance followed by
// WORD and WHITESPACE tokens. Every assignment and return statement produces one rule.
// Print statements are logged at info level and produce nothing.
// Identical trees produce identical grammars.
func (c *Compiler) Compile(f *ast.File) (*grammar.Grammar, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cc := &compilation{
		logger: logger,
		tokens: linkedhashmap.New(),
		rules:  make(map[string]bool),
	}
	if e := f.Accept(cc); e != nil {
		return nil, e
	}

	if e := checkReferences(f, cc.rules); e != nil {
		return nil, e
	}

	g := &grammar.Grammar{
		Tokens: make([]grammar.Token, 0, cc.tokens.Size()+2),
		Rules:  cc.result,
	}
	for _, t := range cc.tokens.Values() {
		g.Tokens = append(g.Tokens, t.(grammar.Token))
	}
	g.Tokens = append(g.Tokens,
		grammar.Token{Name: grammar.WordToken, Re: grammar.WordRe},
		grammar.Token{Name: grammar.WhitespaceToken, Re: grammar.WhitespaceRe, Flags: grammar.AsideToken},
	)

	switch {
	case c.Entry != "":
		if !cc.rules[c.Entry] {
			return nil, unknownEntryError(c.Entry)
		}
		g.Entry = c.Entry
	case cc.rules[grammar.EntryRule]:
		g.Entry = grammar.EntryRule
	case len(g.Rules) > 0:
		g.Entry = g.Rules[0].Name
	default:
		return nil, noRulesError()
	}

	logger.Debug("grammar compiled", "rules", len(g.Rules), "tokens", len(g.Tokens), "entry", g.Entry)
	return g, nil
}

type compilation struct {
	logger   *slog.Logger
	tokens   *linkedhashmap.Map
	rules    map[string]bool
	result   []grammar.Rule
	current  *grammar.Rule
	captures map[string]bool
}

func (cc *compilation) VisitFile(n *ast.File) error {
	for _, s := range n.Statements {
		if e := s.Accept(cc); e != nil {
			return e
		}
	}
	return nil
}

func (cc *compilation) VisitAssign(n *ast.Assign) error {
	if isBuiltin(n.Name) {
		return reservedTokenError(n.Pos, n.Name)
	}
	return cc.rule(n.Pos, n.Name, n.Value)
}

func (cc *compilation) VisitReturn(n *ast.Return) error {
	return cc.rule(n.Pos, grammar.EntryRule, n.Value)
}

func (cc *compilation) VisitPrint(n *ast.Print) error {
	cc.logger.Info(exprText(n.Value),
		"source", n.SourceName(), "line", n.Line(), "col", n.Col())
	return nil
}

func (cc *compilation) VisitSeq(n *ast.Seq) error {
	for _, item := range n.Items {
		if e := item.Accept(cc); e != nil {
			return e
		}
	}
	return nil
}

func (cc *compilation) VisitIdent(n *ast.Ident) error {
	if n.Value == grammar.WordToken {
		return cc.step(n.Pos, grammar.ConsumeToken, n.Value, n.Name)
	}
	if n.Value == grammar.WhitespaceToken {
		return reservedTokenError(n.Pos, n.Value)
	}
	return cc.step(n.Pos, grammar.CallRule, n.Value, n.Name)
}

func (cc *compilation) VisitLitStr(n *ast.LitStr) error {
	if n.Value == "" {
		return emptyLiteralError(n.Pos)
	}
	if isBuiltin(n.Value) {
		return reservedTokenError(n.Pos, n.Value)
	}

	if _, found := cc.tokens.Get(n.Value); !found {
		cc.tokens.Put(n.Value, grammar.Token{Name: n.Value, Re: regexp.QuoteMeta(n.Value)})
	}
	return cc.step(n.Pos, grammar.ConsumeToken, n.Value, n.Name)
}

func (cc *compilation) rule(pos ast.Pos, name string, value *ast.Seq) error {
	if cc.rules[name] {
		return duplicateRuleError(pos, name)
	}

	cc.rules[name] = true
	cc.current = &grammar.Rule{Name: name}
	cc.captures = make(map[string]bool)
	if e := value.Accept(cc); e != nil {
		return e
	}

	cc.result = append(cc.result, *cc.current)
	cc.logger.Debug("rule compiled", "rule", name, "steps", len(cc.current.Steps))
	cc.current = nil
	return nil
}

func (cc *compilation) step(pos ast.Pos, op grammar.Op, arg, capture string) error {
	if capture != "" {
		if cc.captures[capture] {
			return duplicateCaptureError(pos, cc.current.Name, capture)
		}
		cc.captures[capture] = true
		cc.current.Captures = append(cc.current.Captures, capture)
	}

	cc.current.Steps = append(cc.current.Steps, grammar.Step{Op: op, Arg: arg, Capture: capture})
	return nil
}

// checkReferences reports rule references (outside print statements) to undefined rules.
func checkReferences(f *ast.File, defined map[string]bool) error {
	var (
		first   ast.Pos
		missing []string
		listed  = make(map[string]bool)
	)
	ast.Walk(f, ast.WalkLtr, func(n ast.Node, _ int) (bool, bool) {
		switch n := n.(type) {
		case *ast.Print:
			return false, true
		case *ast.Ident:
			if n.Value != grammar.WordToken && !defined[n.Value] && !listed[n.Value] {
				if len(missing) == 0 {
					first = n.Pos
				}
				listed[n.Value] = true
				missing = append(missing, n.Value)
			}
		}
		return true, true
	})

	if len(missing) > 0 {
		return undefinedRuleError(first, missing)
	}
	return nil
}

func exprText(n *ast.Seq) string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		switch item := item.(type) {
		case *ast.Ident:
			parts[i] = item.Value
		case *ast.LitStr:
			parts[i] = fmt.Sprintf("%q", item.Value)
		}
		if item.Capture() != "" {
			parts[i] += ":" + item.Capture()
		}
	}
	return strings.Join(parts, " ")
}
