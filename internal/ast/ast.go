// Package ast defines the typed abstract syntax tree produced by
// internal/parser: a closed set of node kinds per spec.md 3, each with a
// source-position span.
//
// Grounded on funvibe-funxy/internal/ast/ast_core.go's philosophy of a
// closed, named node-kind set, but implemented as a single concrete Node
// struct carrying a Kind field rather than funxy's Visitor double-dispatch:
// spec.md 4.5 specifies the evaluator as one function per node kind, which
// in Go reads most naturally as a switch over Kind.
package ast

import "github.com/glint-lang/glint/internal/lexer"

// Kind is one of the closed set of node kinds from spec.md 3. Adding a new
// kind is a compile-time event: every switch over Kind in internal/eval
// must be updated.
type Kind int

const (
	KindError Kind = iota
	KindInt
	KindFloat
	KindId
	KindChar
	KindStr
	KindEol
	KindFunCall
	KindArgList
	KindVariable
	KindEquation
	KindVarDecl
	KindExpression
	KindComparison
	KindAdditive
	KindMultiplicative
	KindNegate
	KindNot
	KindArrayCall
	KindDotAccess
	KindQuotedString
	KindSingleQuotedString
	KindLambda
	KindBlock
	KindDef
	KindWhile
	KindIf
	KindFor
	KindInlineArray
	KindInlineMap
	KindReturn
	KindFile
	KindPrefix
	KindBreak
	KindMapPair
	KindValueRange
	KindInlineRange
	KindAnnotation
)

// Span is a source-position range. Per spec.md 6, line/column are 0-based
// here even though lexer/diag positions are 1-based in error messages;
// FromPos converts.
type Span struct {
	File       string
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
}

// FromPos builds the start half of a Span from a 1-based lexer.Position.
func FromPos(file string, p lexer.Position) Span {
	return Span{File: file, StartLine: p.Line - 1, StartCol: p.Column - 1, EndLine: p.Line - 1, EndCol: p.Column - 1}
}

// End sets the span's end to the position just past a 1-based end
// lexer.Position.
func (s Span) End(p lexer.Position) Span {
	s.EndLine = p.Line - 1
	s.EndCol = p.Column - 1
	return s
}

// Node is every AST node: a kind, the literal text it was built from (may
// be empty for composite nodes), a span, an ordered list of children, and
// an optional attached Annotation, per spec.md 3.
type Node struct {
	Kind       Kind
	Text       string
	Span       Span
	Children   []*Node
	Annotation *Node

	// Ops holds the operator text between consecutive Children for the
	// left-folded chain nodes (Additive, Multiplicative, Comparison): it
	// has exactly len(Children)-1 entries, Ops[i] being the operator
	// applied between Children[i] and Children[i+1], per spec.md 4.5's
	// left-fold evaluation rule.
	Ops []string
}

// NewLeaf builds a childless node (Int, Float, Id, Char, Str, ...).
func NewLeaf(kind Kind, text string, span Span) *Node {
	return &Node{Kind: kind, Text: text, Span: span}
}

// New builds a composite node from its children.
func New(kind Kind, span Span, children ...*Node) *Node {
	return &Node{Kind: kind, Span: span, Children: children}
}

// NewChain starts a left-folded operator chain node (Additive,
// Multiplicative, Comparison) with its first operand.
func NewChain(kind Kind, span Span, first *Node) *Node {
	return &Node{Kind: kind, Span: span, Children: []*Node{first}}
}

// AppendOp extends a chain node with one more (operator, operand) pair and
// returns n for chaining calls.
func (n *Node) AppendOp(op string, next *Node) *Node {
	n.Ops = append(n.Ops, op)
	n.Children = append(n.Children, next)
	return n
}

// WithAnnotation attaches a comment/decorator Annotation node to n and
// returns n, per spec.md 3's "optional annotation node... attached to the
// following node".
func (n *Node) WithAnnotation(a *Node) *Node {
	n.Annotation = a
	return n
}

func (k Kind) String() string {
	switch k {
	case KindError:
		return "Error"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindId:
		return "Id"
	case KindChar:
		return "Char"
	case KindStr:
		return "Str"
	case KindEol:
		return "Eol"
	case KindFunCall:
		return "Fun_Call"
	case KindArgList:
		return "Arg_List"
	case KindVariable:
		return "Variable"
	case KindEquation:
		return "Equation"
	case KindVarDecl:
		return "Var_Decl"
	case KindExpression:
		return "Expression"
	case KindComparison:
		return "Comparison"
	case KindAdditive:
		return "Additive"
	case KindMultiplicative:
		return "Multiplicative"
	case KindNegate:
		return "Negate"
	case KindNot:
		return "Not"
	case KindArrayCall:
		return "Array_Call"
	case KindDotAccess:
		return "Dot_Access"
	case KindQuotedString:
		return "Quoted_String"
	case KindSingleQuotedString:
		return "Single_Quoted_String"
	case KindLambda:
		return "Lambda"
	case KindBlock:
		return "Block"
	case KindDef:
		return "Def"
	case KindWhile:
		return "While"
	case KindIf:
		return "If"
	case KindFor:
		return "For"
	case KindInlineArray:
		return "Inline_Array"
	case KindInlineMap:
		return "Inline_Map"
	case KindReturn:
		return "Return"
	case KindFile:
		return "File"
	case KindPrefix:
		return "Prefix"
	case KindBreak:
		return "Break"
	case KindMapPair:
		return "Map_Pair"
	case KindValueRange:
		return "Value_Range"
	case KindInlineRange:
		return "Inline_Range"
	case KindAnnotation:
		return "Annotation"
	default:
		return "Unknown"
	}
}
