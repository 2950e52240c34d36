package langdef

import (
	"github.com/apccurtiss/langlang/lexer"
)

// Meta-language token type names.
const (
	KwReturn   = "kw_return"
	KwPrint    = "kw_print"
	KwMatch    = "kw_match"
	KwPeek     = "kw_peek"
	KwPop      = "kw_pop"
	KwAbstract = "kw_abstract"
	KwInstance = "kw_instance"
	OParen     = "oparen"
	CParen     = "cparen"
	LitStr     = "lit_str"
	Whitespace = "whitespace"
	Comment    = "comment"
	Comma      = "comma"
	Semi       = "semi"
	Ident      = "ident"
	DColon     = "dcolon"
	Colon      = "colon"
	OBracket   = "obracket"
	CBracket   = "cbracket"
	Or         = "or"
)

var tokenTypes = []lexer.TokenType{
	{Name: KwReturn, Re: `return\b`},
	{Name: KwPrint, Re: `print\b`},
	{Name: KwMatch, Re: `match\b`},
	{Name: KwPeek, Re: `peek\b`},
	{Name: KwPop, Re: `pop\b`},
	{Name: KwAbstract, Re: `abstract\b`},
	{Name: KwInstance, Re: `instance\b`},
	{Name: OParen, Re: `\(`},
	{Name: CParen, Re: `\)`},
	{Name: LitStr, Re: `"(?:\\.|[^"\\])*"`},
	{Name: Whitespace, Re: `\s+`, Flags: lexer.Aside},
	{Name: Comment, Re: `--.*`, Flags: lexer.Aside},
	{Name: Comma, Re: `,`},
	{Name: Semi, Re: `;`},
	{Name: Ident, Re: `\w+`},
	{Name: DColon, Re: `::`},
	{Name: Colon, Re: `:`},
	{Name: OBracket, Re: `\[`},
	{Name: CBracket, Re: `\]`},
	{Name: Or, Re: `\|`},
}

var metaLexer = lexer.MustNew(tokenTypes)

// TokenTypes returns the meta-language token table in priority order.
func TokenTypes() []lexer.TokenType {
	return metaLexer.Types()
}
