// Package ast defines syntax tree of grammar definitions.
//
// The set of node types is closed: File, Assign, Return, Print, Seq, Ident, and LitStr.
// Code that needs to handle every node type implements Visitor, so adding a node type
// breaks the build of every visitor until it handles the new type.
package ast

// Kind identifies node type.
type Kind int

const (
	FileKind Kind = iota
	AssignKind
	ReturnKind
	PrintKind
	SeqKind
	IdentKind
	LitStrKind
)

var kindNames = [...]string{"file", "assign", "return", "print", "seq", "ident", "lit_str"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Pos is the position of the first token of a node.
type Pos struct {
	Source  string
	LineNum int
	ColNum  int
}

func (p Pos) SourceName() string {
	return p.Source
}

func (p Pos) Line() int {
	return p.LineNum
}

func (p Pos) Col() int {
	return p.ColNum
}

// Node is implemented by all syntax tree nodes.
type Node interface {
	Kind() Kind
	// Children returns child nodes in source order.
	Children() []Node
	Position() Pos
	Accept(v Visitor) error
	node()
}

// Statement is a top-level node: *Assign, *Return, or *Print.
type Statement interface {
	Node
	statement()
}

// Leaf is an element of an expression: *Ident or *LitStr.
type Leaf interface {
	Node
	// Capture returns capture name or empty string.
	Capture() string
	leaf()
}

// Visitor handles every node type.
type Visitor interface {
	VisitFile(n *File) error
	VisitAssign(n *Assign) error
	VisitReturn(n *Return) error
	VisitPrint(n *Print) error
	VisitSeq(n *Seq) error
	VisitIdent(n *Ident) error
	VisitLitStr(n *LitStr) error
}

// File is the root node: a non-empty list of statements.
type File struct {
	Pos
	Statements []Statement
}

// Assign is a rule definition: Name :: Value ;
type Assign struct {
	Pos
	Name  string
	Value *Seq
}

// Return is the entry rule definition: return Value ;
type Return struct {
	Pos
	Value *Seq
}

// Print is a diagnostic statement: print(Value) ;
type Print struct {
	Pos
	Value *Seq
}

// Seq is an expression: a non-empty sequence of leaves.
type Seq struct {
	Pos
	Items []Leaf
}

// Ident is a rule reference or the built-in WORD terminal.
type Ident struct {
	Pos
	Value string
	Name  string
}

// LitStr is a literal terminal, Value holds unquoted text.
type LitStr struct {
	Pos
	Value string
	Name  string
}

func (n *File) Kind() Kind { return FileKind }
func (n *Assign) Kind() Kind { return AssignKind }
func (n *Return) Kind() Kind { return ReturnKind }
func (n *Print) Kind() Kind { return PrintKind }
func (n *Seq) Kind() Kind { return SeqKind }
func (n *Ident) Kind() Kind { return IdentKind }
func (n *LitStr) Kind() Kind { return LitStrKind }

func (n *File) Position() Pos { return n.Pos }
func (n *Assign) Position() Pos { return n.Pos }
func (n *Return) Position() Pos { return n.Pos }
func (n *Print) Position() Pos { return n.Pos }
func (n *Seq) Position() Pos { return n.Pos }
func (n *Ident) Position() Pos { return n.Pos }
func (n *LitStr) Position() Pos { return n.Pos }

func (n *File) Children() []Node {
	result := make([]Node, len(n.Statements))
	for i, s := range n.Statements {
		result[i] = s
	}
	return result
}

func (n *Assign) Children() []Node { return []Node{n.Value} }
func (n *Return) Children() []Node { return []Node{n.Value} }
func (n *Print) Children() []Node { return []Node{n.Value} }

func (n *Seq) Children() []Node {
	result := make([]Node, len(n.Items))
	for i, l := range n.Items {
		result[i] = l
	}
	return result
}

func (n *Ident) Children() []Node { return nil }
func (n *LitStr) Children() []Node { return nil }

func (n *File) Accept(v Visitor) error { return v.VisitFile(n) }
func (n *Assign) Accept(v Visitor) error { return v.VisitAssign(n) }
func (n *Return) Accept(v Visitor) error { return v.VisitReturn(n) }
func (n *Print) Accept(v Visitor) error { return v.VisitPrint(n) }
func (n *Seq) Accept(v Visitor) error { return v.VisitSeq(n) }
func (n *Ident) Accept(v Visitor) error { return v.VisitIdent(n) }
func (n *LitStr) Accept(v Visitor) error { return v.VisitLitStr(n) }

func (n *Ident) Capture() string { return n.Name }
func (n *LitStr) Capture() string { return n.Name }

func (*File) node() {}
func (*Assign) node() {}
func (*Return) node() {}
func (*Print) node() {}
func (*Seq) node() {}
func (*Ident) node() {}
func (*LitStr) node() {}

func (*Assign) statement() {}
func (*Return) statement() {}
func (*Print) statement() {}

func (*Ident) leaf() {}
func (*LitStr) leaf() {}
