package gen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/format"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/artifact"
	"github.com/apccurtiss/langlang/compiler"
	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/internal/test"
)

const sampleSrc = `
	pair :: WORD:key "=" WORD:value ;
	empty :: "()" ;
	return "{" pair:first "," pair:second "}" ;
`

func sampleGrammar(t *testing.T) *grammar.Grammar {
	g, e := compiler.New(nil).CompileString("pairs.ll", sampleSrc)
	require.NoError(t, e)
	return g
}

func methods(t *testing.T, src []byte) (names []string, hasMain bool) {
	f, e := parser.ParseFile(token.NewFileSet(), "out.go", src, 0)
	require.NoError(t, e)
	for _, d := range f.Decls {
		fd, valid := d.(*ast.FuncDecl)
		if !valid {
			continue
		}
		if fd.Recv != nil {
			names = append(names, fd.Name.Name)
		} else if fd.Name.Name == "main" {
			hasMain = true
		}
	}
	return
}

func TestGo(t *testing.T) {
	out, e := Go.Render(sampleGrammar(t), Options{Source: "pairs.ll"})
	require.NoError(t, e)

	formatted, e := format.Source(out)
	require.NoError(t, e)
	assert.Equal(t, string(formatted), string(out))

	assert.True(t, bytes.HasPrefix(out, []byte("// Code generated by langlang from pairs.ll. DO NOT EDIT.\n\npackage main\n")))
	assert.Contains(t, string(out), `const Entry = "main"`)
	assert.Contains(t, string(out), `var Exports = []string{"pair", "empty", "main"}`)
	assert.Contains(t, string(out), `{name: "()", re: "\\(\\)", aside: false},`)
	assert.Contains(t, string(out), `{name: "WHITESPACE", re: "\\s+", aside: true},`)
	assert.Contains(t, string(out), `result := Record{{Name: "first"}, {Name: "second"}}`)
	assert.Contains(t, string(out), `if result[1].Value, e = p.Call("pair"); e != nil {`)
	assert.Contains(t, string(out), `if _, e = p.Consume("="); e != nil {`)

	names, hasMain := methods(t, out)
	assert.True(t, hasMain)
	for _, rule := range []string{"Rule_pair", "Rule_empty", "Rule_main"} {
		assert.Contains(t, names, rule)
	}
}

func TestGoPackage(t *testing.T) {
	out, e := Go.Render(sampleGrammar(t), Options{Package: "pairs", Entry: "pair"})
	require.NoError(t, e)
	assert.Contains(t, string(out), "package pairs\n")
	assert.Contains(t, string(out), `const Entry = "pair"`)
	assert.NotContains(t, string(out), `"os"`)

	_, hasMain := methods(t, out)
	assert.False(t, hasMain)

	_, e = Go.Render(sampleGrammar(t), Options{Package: "my-pkg"})
	assert.ErrorContains(t, e, "invalid package name")

	_, e = Go.Render(sampleGrammar(t), Options{Entry: "nope"})
	test.ExpectErrorCode(t, langlang.UnknownEntryError, e)
}

func TestGoEmptyRule(t *testing.T) {
	g := &grammar.Grammar{
		Tokens: []grammar.Token{{Name: grammar.WordToken, Re: grammar.WordRe}},
		Rules:  []grammar.Rule{{Name: "nothing"}},
	}
	out, e := Go.Render(g, Options{})
	require.NoError(t, e)
	assert.Contains(t, string(out), "func (p *Parser) Rule_nothing() (Record, error) {\n\tresult := Record{}\n\treturn result, nil\n}")
}

func TestGoCaptureLayout(t *testing.T) {
	g := &grammar.Grammar{
		Tokens: []grammar.Token{{Name: grammar.WordToken, Re: grammar.WordRe}},
		Rules: []grammar.Rule{{Name: "r", Captures: []string{"b"}, Steps: []grammar.Step{
			{Op: grammar.ConsumeToken, Arg: grammar.WordToken, Capture: "b"},
			{Op: grammar.ConsumeToken, Arg: grammar.WordToken, Capture: "a"},
			{Op: grammar.ConsumeToken, Arg: grammar.WordToken, Capture: "b"},
		}}},
	}
	out, e := Go.Render(g, Options{Package: "words"})
	require.NoError(t, e)
	assert.Contains(t, string(out), `result := Record{{Name: "b"}, {Name: "a"}}`)
	assert.Contains(t, string(out), `if result[0].Value, e = p.Consume("WORD"); e != nil {`)
	assert.Contains(t, string(out), `if result[1].Value, e = p.Consume("WORD"); e != nil {`)
	typeCheck(t, out)
}

func typeCheck(t *testing.T, src []byte) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, e := parser.ParseFile(fset, "out.go", src, 0)
	require.NoError(t, e)
	conf := types.Config{Importer: importer.Default()}
	pkg, e := conf.Check(f.Name.Name, fset, []*ast.File{f}, nil)
	require.NoError(t, e)
	return pkg
}

func TestGoTypeCheck(t *testing.T) {
	samples := []struct {
		pkg     string
		hasMain bool
	}{
		{"", true},
		{"pairs", false},
	}

	for _, s := range samples {
		t.Run(s.pkg, func(t *testing.T) {
			out, e := Go.Render(sampleGrammar(t), Options{Package: s.pkg})
			require.NoError(t, e)
			pkg := typeCheck(t, out)

			scope := pkg.Scope()
			for _, name := range []string{"Parse", "NewParser", "Proc", "Consumer", "Optionally",
				"OrderedChoice", "OneOrMore", "Test", "RequireFullConsumption", "Record", "Error"} {
				assert.NotNil(t, scope.Lookup(name), name)
			}
			assert.Equal(t, s.hasMain, scope.Lookup("main") != nil)

			parserType := scope.Lookup("Parser")
			require.NotNil(t, parserType)
			mset := types.NewMethodSet(types.NewPointer(parserType.Type()))
			for _, name := range []string{"Consume", "Call", "Proc", "Pos", "Reset", "AtEnd", "Rule_pair", "Rule_empty", "Rule_main"} {
				assert.NotNil(t, mset.Lookup(pkg, name), name)
			}
		})
	}
}

// buildProgram writes files into a fresh module and builds it.
func buildProgram(t *testing.T, files map[string][]byte) string {
	t.Helper()
	if testing.Short() {
		t.Skip("building generated programs is slow")
	}
	goTool, e := exec.LookPath("go")
	if e != nil {
		t.Skip("go tool not found")
	}

	dir := t.TempDir()
	files["go.mod"] = []byte("module gentest\n\ngo 1.21\n")
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}

	bin := filepath.Join(dir, "program")
	cmd := exec.Command(goTool, "build", "-o", bin, ".")
	cmd.Dir = dir
	output, e := cmd.CombinedOutput()
	require.NoError(t, e, string(output))
	return bin
}

func runProgram(t *testing.T, bin, input string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := exec.Command(bin)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	e := cmd.Run()
	var exitError *exec.ExitError
	if errors.As(e, &exitError) {
		code = exitError.ExitCode()
	} else {
		require.NoError(t, e)
	}
	return code, out.String(), errOut.String()
}

func TestGoProgram(t *testing.T) {
	g, e := compiler.New(nil).CompileString("ops.ll", `
		pair :: WORD:key "=" WORD:value ;
		return WORD:label "<":op pair:from ;
	`)
	require.NoError(t, e)
	out, e := Go.Render(g, Options{Source: "ops.ll"})
	require.NoError(t, e)
	bin := buildProgram(t, map[string][]byte{"main.go": out})

	a, e := artifact.New(g)
	require.NoError(t, e)

	samples := []struct {
		input, stdout, stderr string
		code                  int
	}{
		{"z < b = c\n",
			"{\n  \"label\": \"z\",\n  \"op\": \"<\",\n  \"from\": {\n    \"key\": \"b\",\n    \"value\": \"c\"\n  }\n}\n",
			"", 0},
		{"z < b =",
			"", "unexpected end of input after = \"=\", expecting WORD at line 1 col 7\n", 1},
		{"z < b = c d",
			"", "1 trailing token(s), first is WORD \"d\" at line 1 col 11\n", 1},
		{"z < b ? c",
			"", "unknown token \"? c\" at line 1 col 7\n", 1},
	}

	for _, s := range samples {
		t.Run(s.input, func(t *testing.T) {
			code, stdout, stderr := runProgram(t, bin, s.input)
			assert.Equal(t, s.code, code)
			assert.Equal(t, s.stdout, stdout)
			assert.Equal(t, s.stderr, stderr)

			var hostOut, hostErr bytes.Buffer
			assert.Equal(t, s.code, artifact.Main(a, "", strings.NewReader(s.input), &hostOut, &hostErr))
			assert.Equal(t, s.stdout, hostOut.String())
		})
	}
}

const driverSrc = `package main

import (
	"fmt"

	"gentest/pairs"
)

func main() {
	p, e := pairs.NewParser("a = b c = d ,")
	if e != nil {
		panic(e)
	}

	items, e := pairs.OneOrMore(p, p.Proc("pair"))
	if e != nil {
		panic(e)
	}
	_, comma := pairs.Optionally(p, pairs.Consumer(","))
	matches := pairs.Test(p, p.Proc("pair"))
	_, e = pairs.OrderedChoice(p, p.Proc("pair"), p.Proc("empty"))
	fmt.Println(len(items), items[1].Get("key"), comma, matches, p.AtEnd())
	fmt.Println(e, len(e.(*pairs.Error).Causes))

	_, e = pairs.Parse("pair", "a = b c")
	fmt.Println(e)
}
`

func TestGoLibrary(t *testing.T) {
	out, e := Go.Render(sampleGrammar(t), Options{Package: "pairs"})
	require.NoError(t, e)
	bin := buildProgram(t, map[string][]byte{
		"pairs/pairs.go": out,
		"main.go":        []byte(driverSrc),
	})

	code, stdout, stderr := runProgram(t, bin, "")
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "2 c true false true\n"+
		"no alternative matches at end of input 2\n"+
		"1 trailing token(s), first is WORD \"c\" at line 1 col 7\n", stdout)
}

func TestJSON(t *testing.T) {
	g := sampleGrammar(t)
	out, e := JSON.Render(g, Options{Entry: "pair"})
	require.NoError(t, e)
	assert.Equal(t, "main", g.Entry)

	loaded, e := grammar.Load(bytes.NewReader(out))
	require.NoError(t, e)
	assert.Equal(t, "pair", loaded.Entry)
	assert.Equal(t, g.Tokens, loaded.Tokens)
	assert.Equal(t, g.Rules, loaded.Rules)

	a, e := artifact.New(loaded)
	require.NoError(t, e)
	r, e := a.Parse("", "a = b")
	require.NoError(t, e)
	assert.Equal(t, grammar.Record{"key": "a", "value": "b"}, r)
}

func TestByName(t *testing.T) {
	b, found := ByName("json")
	assert.True(t, found)
	assert.Equal(t, ".json", b.Ext)

	b, found = ByName("go")
	assert.True(t, found)
	assert.Equal(t, ".go", b.Ext)

	_, found = ByName("js")
	assert.False(t, found)
}

func TestInvalidGrammar(t *testing.T) {
	g := &grammar.Grammar{
		Tokens: []grammar.Token{{Name: grammar.WordToken, Re: grammar.WordRe}},
		Rules:  []grammar.Rule{{Name: "a", Steps: []grammar.Step{{Op: grammar.CallRule, Arg: "b"}}}},
	}
	for _, b := range Backends {
		_, e := b.Render(g, Options{})
		test.ExpectErrorCode(t, langlang.UndefinedRuleError, e)
	}
}
