/*
Package langdef converts textual grammar description to syntax tree (ast.File).

A description is a list of statements, each terminated with a semicolon.
Self-definition of the language (tokens are listed in priority order, the first
pattern matching at current position wins):
*/
//  kw_return = /return\b/; kw_print = /print\b/; kw_match = /match\b/;
//  kw_peek = /peek\b/; kw_pop = /pop\b/; kw_abstract = /abstract\b/;
//  kw_instance = /instance\b/;
//  oparen = /\(/; cparen = /\)/;
//  lit_str = /"(?:\\.|[^"\\])*"/;
//  whitespace = /\s+/;  -- dropped
//  comment = /--.*/;    -- dropped
//  comma = /,/; semi = /;/; ident = /\w+/;
//  dcolon = /::/; colon = /:/; obracket = /\[/; cbracket = /\]/; or = /\|/;
//
//  file = statement, {statement};  -- the whole input must be consumed
//  statement = (assign | return | print), semi;
//  assign = ident, dcolon, expr;
//  return = kw_return, expr;
//  print = kw_print, oparen, expr, cparen;
//  expr = leaf, {leaf};
//  leaf = (ident | lit_str), [colon, ident];
/*
Alternatives are tried in order and the first successful one is taken, there is no
longest-match rule. Keywords match whole words only, so "returned" is an identifier.
Keywords match, peek, pop, abstract, and instance are reserved.

String literal is any sequence of symbols delimited with double quotes (").
A backslash inside a literal always takes the next symbol along: \" stands for a quote,
\\ stands for one backslash, any other pair (e.g. \d) is taken as is.

Identifier WORD denotes any word (\w+) of the parsed text,
any other identifier is a reference to a rule.

A leaf followed by colon and identifier is captured under that name.

Example:

	-- key-value pair
	pair :: WORD:key "=" WORD:value ;
	return pair:first "," pair:second ;
	print("debug" WORD) ;

Description must be a UTF-8 text, byte order mark (if any) is dropped by ParseBytes.
*/
package langdef
