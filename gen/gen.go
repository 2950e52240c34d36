// Package gen renders compiled grammars as source code.
//
// Back ends are interchangeable: each one turns the same grammar.Grammar into
// a different representation. Go produces a standalone program (or package)
// with its own lexer and parser, JSON produces a file loadable with grammar.Load.
package gen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"regexp"
	"strconv"
	"text/template"

	"github.com/apccurtiss/langlang/artifact"
	"github.com/apccurtiss/langlang/grammar"
)

// Options control rendering.
type Options struct {
	// Package is the Go package name, "main" if empty. Only package main gets the host routine.
	Package string

	// Source is the grammar file name mentioned in the generated header.
	Source string

	// Entry overrides the grammar entry rule if not empty.
	Entry string
}

// Backend renders a grammar.
type Backend struct {
	// Name is the backend name used in configuration, e.g. "go".
	Name string

	// Ext is the default output file extension.
	Ext string

	Render func(g *grammar.Grammar, opts Options) ([]byte, error)
}

var (
	Go   = Backend{Name: "go", Ext: ".go", Render: renderGo}
	JSON = Backend{Name: "json", Ext: ".json", Render: renderJSON}
)

// Backends lists all available back ends.
var Backends = []Backend{Go, JSON}

// ByName returns the backend with given name.
func ByName(name string) (Backend, bool) {
	for _, b := range Backends {
		if b.Name == name {
			return b, true
		}
	}
	return Backend{}, false
}

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

//go:embed runtime.go.tmpl
var runtimeText string

var runtimeTemplate = template.Must(template.New("runtime").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(runtimeText))

type tokenData struct {
	Name, Re string
	Aside    bool
}

type stepData struct {
	Call         bool
	Arg, Capture string
	// Index is the position of Capture in the rule record.
	Index int
}

type ruleData struct {
	Name, Method string
	Captures     []string
	Steps        []stepData
}

type goData struct {
	Source, Package, Entry string
	Main                   bool
	MaxDepth               int
	Tokens                 []tokenData
	Rules                  []ruleData
}

func entry(g *grammar.Grammar, opts Options) (string, error) {
	name := opts.Entry
	if name == "" {
		name = g.Entry
	}
	if name == "" && len(g.Rules) > 0 {
		name = g.Rules[0].Name
	}
	if g.Rule(name) == nil {
		return "", unknownEntryError(name)
	}
	return name, nil
}

func renderGo(g *grammar.Grammar, opts Options) ([]byte, error) {
	if e := g.Validate(); e != nil {
		return nil, e
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = "main"
	}
	if !identRe.MatchString(pkg) {
		return nil, fmt.Errorf("invalid package name: %s", pkg)
	}

	ent, e := entry(g, opts)
	if e != nil {
		return nil, e
	}

	data := goData{
		Source:   opts.Source,
		Package:  pkg,
		Entry:    ent,
		Main:     pkg == "main",
		MaxDepth: artifact.DefaultMaxDepth,
		Tokens:   make([]tokenData, len(g.Tokens)),
		Rules:    make([]ruleData, len(g.Rules)),
	}
	for i, t := range g.Tokens {
		data.Tokens[i] = tokenData{t.Name, t.Re, t.Flags&grammar.AsideToken != 0}
	}
	for i, r := range g.Rules {
		rd, e := newRuleData(r)
		if e != nil {
			return nil, e
		}
		data.Rules[i] = rd
	}

	var buffer bytes.Buffer
	if e = runtimeTemplate.Execute(&buffer, data); e != nil {
		return nil, e
	}
	return format.Source(buffer.Bytes())
}

// newRuleData lays out the rule record: declared captures first, then any
// capture names met only in steps.
func newRuleData(r grammar.Rule) (ruleData, error) {
	rd := ruleData{Name: r.Name, Method: "Rule_" + r.Name, Steps: make([]stepData, len(r.Steps))}
	if !identRe.MatchString(rd.Method) {
		return rd, fmt.Errorf("invalid rule name: %s", r.Name)
	}

	index := make(map[string]int, len(r.Captures))
	add := func(name string) int {
		i, found := index[name]
		if !found {
			i = len(rd.Captures)
			index[name] = i
			rd.Captures = append(rd.Captures, name)
		}
		return i
	}
	for _, name := range r.Captures {
		add(name)
	}
	for j, s := range r.Steps {
		rd.Steps[j] = stepData{Call: s.Op == grammar.CallRule, Arg: s.Arg, Capture: s.Capture}
		if s.Capture != "" {
			rd.Steps[j].Index = add(s.Capture)
		}
	}
	return rd, nil
}

func renderJSON(g *grammar.Grammar, opts Options) ([]byte, error) {
	if e := g.Validate(); e != nil {
		return nil, e
	}

	ent, e := entry(g, opts)
	if e != nil {
		return nil, e
	}

	result := *g
	result.Entry = ent
	var buffer bytes.Buffer
	if e = result.Save(&buffer); e != nil {
		return nil, e
	}
	return buffer.Bytes(), nil
}
