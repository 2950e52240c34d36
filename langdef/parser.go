package langdef

import (
	"errors"
	"strings"

	"github.com/apccurtiss/langlang"
	"github.com/apccurtiss/langlang/ast"
	"github.com/apccurtiss/langlang/lexer"
	"github.com/apccurtiss/langlang/parser"
	"github.com/apccurtiss/langlang/source"
)

// Parse converts grammar description to syntax tree.
// Returns nil and *langlang.Error if the description cannot be tokenized or parsed.
// The whole token stream must be consumed, otherwise TrailingTokensError is returned
// with the failure of the first unparsed statement as its cause.
func Parse(s *source.Source) (*ast.File, error) {
	tokens, e := metaLexer.Tokenize(s)
	if e != nil {
		return nil, e
	}

	c := parser.NewCursor(tokens)
	f, e := parser.RequireFullConsumption(c, file)
	if e == nil {
		return f, nil
	}

	var ee *langlang.Error
	if errors.As(e, &ee) && ee.Code == langlang.TrailingTokensError {
		if _, se := statement(c); se != nil {
			ee.Causes = append(ee.Causes, se)
		}
	}
	return nil, e
}

// ParseString is a shortcut for Parse(source.New(name, []byte(text))).
func ParseString(name, text string) (*ast.File, error) {
	return Parse(source.New(name, []byte(text)))
}

// ParseBytes decodes raw content (dropping byte order mark if any) and parses it.
func ParseBytes(name string, raw []byte) (*ast.File, error) {
	s, e := source.NewDecoded(name, raw)
	if e != nil {
		return nil, e
	}
	return Parse(s)
}

func pos(c *parser.Cursor) ast.Pos {
	t := c.Peek()
	if t == nil {
		return ast.Pos{}
	}
	return ast.Pos{Source: t.SourceName(), LineNum: t.Line(), ColNum: t.Col()}
}

func file(c *parser.Cursor) (*ast.File, error) {
	at := pos(c)
	statements, e := parser.OneOrMore(c, statement)
	if e != nil {
		return nil, e
	}
	return &ast.File{Pos: at, Statements: statements}, nil
}

func statement(c *parser.Cursor) (ast.Statement, error) {
	s, e := parser.OrderedChoice(c, assign, returnStatement, printStatement)
	if e != nil {
		return nil, e
	}

	if _, e = c.Consume(Semi); e != nil {
		return nil, e
	}
	return s, nil
}

func assign(c *parser.Cursor) (ast.Statement, error) {
	at := pos(c)
	name, e := c.Consume(Ident)
	if e != nil {
		return nil, e
	}

	if _, e = c.Consume(DColon); e != nil {
		return nil, e
	}

	value, e := expr(c)
	if e != nil {
		return nil, e
	}
	return &ast.Assign{Pos: at, Name: name, Value: value}, nil
}

func returnStatement(c *parser.Cursor) (ast.Statement, error) {
	at := pos(c)
	if _, e := c.Consume(KwReturn); e != nil {
		return nil, e
	}

	value, e := expr(c)
	if e != nil {
		return nil, e
	}
	return &ast.Return{Pos: at, Value: value}, nil
}

func printStatement(c *parser.Cursor) (ast.Statement, error) {
	at := pos(c)
	if _, e := c.Consume(KwPrint); e != nil {
		return nil, e
	}

	if _, e := c.Consume(OParen); e != nil {
		return nil, e
	}

	value, e := expr(c)
	if e != nil {
		return nil, e
	}

	if _, e = c.Consume(CParen); e != nil {
		return nil, e
	}
	return &ast.Print{Pos: at, Value: value}, nil
}

func expr(c *parser.Cursor) (*ast.Seq, error) {
	at := pos(c)
	items, e := parser.OneOrMore(c, leaf)
	if e != nil {
		return nil, e
	}
	return &ast.Seq{Pos: at, Items: items}, nil
}

func leaf(c *parser.Cursor) (ast.Leaf, error) {
	at := pos(c)
	t, e := parser.OrderedChoice(c, parser.TokenConsumer(Ident), parser.TokenConsumer(LitStr))
	if e != nil {
		return nil, e
	}

	name, _ := parser.Optionally(c, captureName)
	if t.Type() == Ident {
		return &ast.Ident{Pos: at, Value: t.Text(), Name: name}, nil
	}
	return &ast.LitStr{Pos: at, Value: unquote(t), Name: name}, nil
}

func captureName(c *parser.Cursor) (string, error) {
	if _, e := c.Consume(Colon); e != nil {
		return "", e
	}
	return c.Consume(Ident)
}

// unquote strips delimiters and resolves \" and \\ escapes.
func unquote(t *lexer.Token) string {
	text := t.Text()
	text = text[1 : len(text)-1]
	if !strings.Contains(text, `\`) {
		return text
	}

	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && (text[i+1] == '"' || text[i+1] == '\\') {
			i++
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}
