package lexer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/internal/test"
	"github.com/apccurtiss/langlang/source"
)

var sampleTypes = []TokenType{
	{Name: "space", Re: `\s+`, Flags: Aside},
	{Name: "comment", Re: `--[^\n]*`, Flags: Aside},
	{Name: "number", Re: `\d+`},
	{Name: "name", Re: `[a-z_][a-z0-9_]*`},
	{Name: "string", Re: `'.*?'`},
	{Name: "op", Re: `[-+*/]`},
}

func tokenTexts(tokens []*Token) (types, texts []string) {
	for _, t := range tokens {
		types = append(types, t.Type())
		texts = append(texts, t.Text())
	}
	return
}

func TestEmpty(t *testing.T) {
	l := MustNew(sampleTypes)
	for _, src := range []string{"", " ", "  ", " \t\r\n ", "-- comment only"} {
		tokens, e := l.TokenizeString("", src)
		require.NoError(t, e, "source %q", src)
		assert.Empty(t, tokens, "source %q", src)
	}
}

func TestTokenSamples(t *testing.T) {
	l := MustNew(sampleTypes)
	tokens, e := l.TokenizeString("", "123 foo 'bar' -- tail\n+ x1")
	require.NoError(t, e)

	types, texts := tokenTexts(tokens)
	assert.Equal(t, []string{"number", "name", "string", "op", "name"}, types)
	assert.Equal(t, []string{"123", "foo", "'bar'", "+", "x1"}, texts)
}

func TestPriorityOrder(t *testing.T) {
	types := []TokenType{
		{Name: "a", Re: `a`},
		{Name: "word", Re: `\w+`},
	}
	tokens, e := MustNew(types).TokenizeString("", "abc")
	require.NoError(t, e)
	types2, texts := tokenTexts(tokens)
	assert.Equal(t, []string{"a", "word"}, types2)
	assert.Equal(t, []string{"a", "bc"}, texts)

	swapped := []TokenType{types[1], types[0]}
	tokens, e = MustNew(swapped).TokenizeString("", "abc")
	require.NoError(t, e)
	types2, texts = tokenTexts(tokens)
	assert.Equal(t, []string{"word"}, types2)
	assert.Equal(t, []string{"abc"}, texts)
}

func TestInnerGroups(t *testing.T) {
	types := []TokenType{
		{Name: "pair", Re: `(x)(y)`},
		{Name: "alt", Re: `(?:p|q)+`},
		{Name: "z", Re: `(z)`},
	}
	tokens, e := MustNew(types).TokenizeString("", "xypqz")
	require.NoError(t, e)
	types2, texts := tokenTexts(tokens)
	assert.Equal(t, []string{"pair", "alt", "z"}, types2)
	assert.Equal(t, []string{"xy", "pq", "z"}, texts)
}

func TestCoverage(t *testing.T) {
	l := MustNew(sampleTypes)
	samples := []struct {
		src, significant string
	}{
		{"a+b", "a+b"},
		{"foo  123\n'x y'", "foo123'x y'"},
		{"'quoted' x -- c\n 42", "'quoted'x42"},
	}

	for _, s := range samples {
		tokens, e := l.TokenizeString("", s.src)
		require.NoError(t, e)
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Text())
		}
		assert.Equal(t, s.significant, sb.String())
	}
}

func TestPositions(t *testing.T) {
	l := MustNew(sampleTypes)
	tokens, e := l.Tokenize(source.New("src", []byte("foo\n  bar")))
	require.NoError(t, e)
	require.Len(t, tokens, 2)
	assert.Equal(t, "src", tokens[1].SourceName())
	assert.Equal(t, 2, tokens[1].Line())
	assert.Equal(t, 3, tokens[1].Col())
	assert.Equal(t, 6, tokens[1].Offset())
}

func TestUnknownToken(t *testing.T) {
	l := MustNew(sampleTypes)
	samples := []struct {
		src       string
		line, col int
		rest      string
	}{
		{"foo\n  bar &baz", 2, 7, `"&baz"`},
		{"'open", 1, 1, `"'open"`},
		{"x ^" + strings.Repeat("y", 40), 1, 3, strconv.Quote("^"+strings.Repeat("y", 23)) + "..."},
	}

	for i, s := range samples {
		tokens, e := l.TokenizeString("src", s.src)
		assert.Nil(t, tokens, "sample #%d", i)
		test.ExpectErrorCode(t, langlang.UnknownTokenError, e)
		ee := e.(*langlang.Error)
		assert.Equal(t, s.line, ee.Line, "sample #%d", i)
		assert.Equal(t, s.col, ee.Col, "sample #%d", i)
		assert.Contains(t, ee.Message, s.rest, "sample #%d", i)
	}
}

func TestUnknownTokenRemainder(t *testing.T) {
	long := "^" + strings.Repeat("y", 40) + "\nzz"
	_, e := MustNew(sampleTypes).TokenizeString("src", "x "+long)
	ee := e.(*langlang.Error)
	assert.Equal(t, long, ee.Actual)
	assert.True(t, strings.HasSuffix(ee.Message, "... in src at line 1 col 3"))
}

func TestEmptyMatch(t *testing.T) {
	l := MustNew([]TokenType{{Name: "maybe", Re: `a*`}})
	_, e := l.TokenizeString("", "b")
	test.ExpectErrorCode(t, langlang.UnknownTokenError, e)
}

func TestWrongRegexp(t *testing.T) {
	for _, re := range []string{"(foo", "foo)", "[foo", `\C`, "a**"} {
		_, e := New([]TokenType{{Name: "ok", Re: "x"}, {Name: "broken", Re: re}})
		test.ExpectErrorCode(t, langlang.WrongRegexpError, e)
		assert.Contains(t, e.Error(), `"broken"`)
	}

	_, e := New(nil)
	test.ExpectErrorCode(t, langlang.WrongRegexpError, e)
}

func TestTypesCopy(t *testing.T) {
	l := MustNew(sampleTypes)
	types := l.Types()
	types[0].Name = "changed"
	assert.Equal(t, "space", l.Types()[0].Name)
}
