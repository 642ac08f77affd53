package render

import (
	"strings"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

// Tree renders node as an ASCII box-drawing diagram, per §4.5: left
// children are printed above their parent, right children below, joined
// by ┌ │ └ ─. Each node has at most one child above and one below, so no
// ├ branch glyph is drawn. Arrays appear with the token "array" in place
// of their literal text. indent controls the width of each connector column.
func Tree(node ast.Node, indent int) string {
	if indent < 1 {
		indent = 1
	}
	return strings.Join(build(node, indent).lines, "\n")
}

// block is a rendered subtree: its lines and the index within them of the
// line carrying the subtree's own root label, so a parent can attach its
// connector at the right row and thread a "│" bar through every line
// between that row and itself.
type block struct {
	lines  []string
	anchor int
}

func build(node ast.Node, indent int) block {
	if node == nil {
		return block{}
	}
	left, right := children(node)
	leftBlock := build(left, indent)
	rightBlock := build(right, indent)

	bar := strings.Repeat("─", indent-1)
	pad := strings.Repeat(" ", indent-1)

	var lines []string
	for i, l := range leftBlock.lines {
		switch {
		case i == leftBlock.anchor:
			lines = append(lines, "┌"+bar+l)
		case i > leftBlock.anchor:
			lines = append(lines, "│"+pad+l)
		default:
			lines = append(lines, " "+pad+l)
		}
	}

	anchor := len(lines)
	lines = append(lines, label(node))

	for i, l := range rightBlock.lines {
		switch {
		case i == rightBlock.anchor:
			lines = append(lines, "└"+bar+l)
		case i < rightBlock.anchor:
			lines = append(lines, "│"+pad+l)
		default:
			lines = append(lines, " "+pad+l)
		}
	}

	return block{lines: lines, anchor: anchor}
}

func children(node ast.Node) (ast.Node, ast.Node) {
	switch n := node.(type) {
	case *ast.ExprNode:
		return n.Left, n.Right
	default:
		return nil, nil
	}
}

func label(node ast.Node) string {
	switch n := node.(type) {
	case *ast.ObjectNode:
		if n.ObjKind == ast.Array {
			return "array"
		}
		return textObject(n)
	case *ast.ExprNode:
		if n.Category == catalog.UserFunction {
			return n.Name + "(...)"
		}
		if row, ok := catalog.Lookup(n.Code); ok {
			return row.Primary
		}
		return "?"
	default:
		return "?"
	}
}
