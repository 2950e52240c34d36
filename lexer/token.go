package lexer

// Token is a lexeme fetched by Lexer.
// Token is immutable.
type Token struct {
	typeName   string
	text       string
	sourceName string
	offset     int
	line, col  int
}

// NewToken creates a token at byte offset in named source.
// line and col are 1-based, 0 means unknown position.
func NewToken(typeName, text, sourceName string, offset, line, col int) *Token {
	return &Token{typeName, text, sourceName, offset, line, col}
}

// Type returns token type name, i.e. TokenType.Name of the pattern that matched.
func (t *Token) Type() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) SourceName() string {
	return t.sourceName
}

// Offset returns byte offset of the token in its source.
func (t *Token) Offset() int {
	return t.offset
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

func (t *Token) String() string {
	return t.typeName + " " + quote(t.text)
}
