package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The kinds
// below form the entire allow-list; the evaluator rejects anything else.
type node struct {
	kind nodeKind

	// val is the numeric value for nodeNum.
	val float64
	// name is the identifier for nodeName and nodeCall.
	name string
	// args holds call arguments or list elements, in source order.
	args []*node

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // numeric literal, value in val
	nodeName // identifier, resolved against the registry at eval time

	nodeCall // call of name with args
	nodeList // list literal with args as elements

	nodeNeg // negate left
	nodePos // evaluate left

	nodeAdd      // evaluate left, add right
	nodeSub      // evaluate left, sub right
	nodeMul      // evaluate left, mul right
	nodeDiv      // evaluate left, div by right
	nodeMod      // evaluate left, floored mod by right
	nodeFloorDiv // evaluate left, floor-div by right
	nodePow      // evaluate left, exp by right
)

var nodeKindNames = [...]string{
	"None", "Num", "Name", "Call", "List",
	"Neg", "Pos", "Add", "Sub", "Mul", "Div", "Mod", "FloorDiv", "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binopText is the source spelling of a binary operator node kind, for error
// messages and String. Kinds without one map to the empty string.
func binopText(k nodeKind) string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodeFloorDiv:
		return "//"
	case nodePow:
		return "**"
	}
	return ""
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized rendering of the tree, so that structure
// is unambiguous in test failures and the CLI's echo output.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use an invalid character.
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.fmtargs(b)
		b.WriteByte(')')
	case nodeList:
		b.WriteByte('[')
		n.fmtargs(b)
		b.WriteByte(']')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodePos:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodeFloorDiv, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(binopText(n.kind))
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder) {
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
}
