package ast

import (
	"fmt"
	"io"
	"strings"
)

// NodeVisitor is called for every visited node, level is 0 for the starting node.
type NodeVisitor func(n Node, level int) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, 0, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n Node, level int, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n, level)
	if !vc {
		return vs
	}

	children := n.Children()
	if rtl {
		for i := len(children) - 1; i >= 0 && vc; i-- {
			vc = visitNode(children[i], level+1, v, true)
		}
	} else {
		for i := 0; i < len(children) && vc; i++ {
			vc = visitNode(children[i], level+1, v, false)
		}
	}

	return vs
}

type NodeFilter func(n Node) bool

// Filter returns all nodes of the tree rooted at n accepted by f, in source order.
func Filter(n Node, f NodeFilter) []Node {
	var result []Node
	Walk(n, WalkLtr, func(n Node, _ int) (bool, bool) {
		if f(n) {
			result = append(result, n)
		}
		return true, true
	})
	return result
}

// Dump writes indented tree representation, one node per line:
//
//	file
//	  assign rule
//	    seq
//	      lit_str "a" :x
func Dump(w io.Writer, n Node) error {
	var e error
	Walk(n, WalkLtr, func(n Node, level int) (bool, bool) {
		_, e = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", level), describe(n))
		return e == nil, e == nil
	})
	return e
}

func describe(n Node) string {
	var text string
	switch n := n.(type) {
	case *Assign:
		text = n.Name
	case *Ident:
		text = n.Value + capture(n.Name)
	case *LitStr:
		text = fmt.Sprintf("%q", n.Value) + capture(n.Name)
	}

	if text == "" {
		return n.Kind().String()
	}
	return n.Kind().String() + " " + text
}

func capture(name string) string {
	if name == "" {
		return ""
	}
	return " :" + name
}
