// Package render implements the three read-only tree traversals described
// in spec §4.5: canonical text, LaTeX, and an ASCII box-drawing tree
// diagram. It is grounded on the teacher's lang/value.go String()/
// pairToString() pattern — a switch on the node's discriminant, recursing
// into children and building up a string — generalized from printing a
// Scheme pair chain to printing an operator tree with precedence-aware
// parenthesisation.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

// Text renders node as canonical operator-expression text, per §4.5.
func Text(node ast.Node) string {
	return textNode(node)
}

func textNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	prefix := ""
	if defines := node.Defines(); defines != nil {
		prefix = "{" + textDefinesBody(defines) + "}"
	}
	switch n := node.(type) {
	case *ast.ObjectNode:
		return prefix + textObject(n)
	case *ast.ExprNode:
		return prefix + textExpr(n)
	default:
		return prefix
	}
}

func textDefinesBody(defines *ast.ObjectNode) string {
	parts := make([]string, len(defines.Elems))
	for i, e := range defines.Elems {
		parts[i] = textNode(e)
	}
	return strings.Join(parts, ",")
}

func textObject(n *ast.ObjectNode) string {
	switch n.ObjKind {
	case ast.Boolean:
		if n.BoolVal {
			return "true"
		}
		return "false"
	case ast.Real:
		return formatReal(n.RealVal)
	case ast.Imaginary:
		if n.RealVal == 1 {
			return "i"
		}
		return formatReal(n.RealVal) + "i"
	case ast.String:
		return fmt.Sprintf("%q", n.Text)
	case ast.Param:
		return "[" + n.Text + "]"
	case ast.Variable:
		return n.Text
	case ast.Array:
		parts := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			parts[i] = textNode(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return ""
	}
}

func textExpr(n *ast.ExprNode) string {
	if n.Category == catalog.UserFunction {
		return n.Name + textNode(n.Right)
	}
	row, ok := catalog.Lookup(n.Code)
	if !ok {
		return ""
	}
	switch n.Category {
	case catalog.Invocation, catalog.LargeScale, catalog.Evaluation:
		return row.Primary + textNode(n.Right)
	}

	lexeme := row.Primary
	if n.Postfix {
		return parenthesizeLeft(n, row) + lexeme
	}
	if row.Arity == catalog.Unary {
		// Word-lexeme (and symbolic) unary prefixes always parenthesise
		// their operand: "sqrt4" would misparse as an identifier, so the
		// segment production's implicit parens are made explicit here.
		return lexeme + "(" + textNode(n.Right) + ")"
	}
	return parenthesizeLeft(n, row) + lexeme + parenthesizeRight(n, row)
}

// parenthesizeLeft wraps left in parens when n strictly higher-binds
// (a lower precedence number) than left, per §4.5's "parenthesise left when
// the node strictly higher-binds than left" — i.e. n must render tighter
// than left for the pairing to be unambiguous without parens.
func parenthesizeLeft(n *ast.ExprNode, row catalog.Row) string {
	s := textNode(n.Left)
	if childRow, ok := childPrecedence(n.Left); ok && row.Precedence < childRow.Precedence {
		return "(" + s + ")"
	}
	return s
}

// parenthesizeRight wraps right in parens unless n strictly lower-binds
// than right (n has a higher precedence number), per §4.5: right needs
// parens whenever n binds as tight or tighter than right (n.Precedence <=
// right.Precedence, lower numbers binding tighter), since otherwise a
// same-or-looser-binding right operand would re-associate differently on
// reparse.
func parenthesizeRight(n *ast.ExprNode, row catalog.Row) string {
	s := textNode(n.Right)
	if childRow, ok := childPrecedence(n.Right); ok && row.Precedence <= childRow.Precedence {
		return "(" + s + ")"
	}
	return s
}

func childPrecedence(n ast.Node) (catalog.Row, bool) {
	expr, ok := n.(*ast.ExprNode)
	if !ok || expr.Category == catalog.UserFunction {
		return catalog.Row{}, false
	}
	row, ok := catalog.Lookup(expr.Code)
	if !ok || expr.Postfix || row.Arity == catalog.Unary && !isCallLike(row) {
		return catalog.Row{}, false
	}
	return row, ok
}

func isCallLike(row catalog.Row) bool {
	switch row.Category {
	case catalog.Invocation, catalog.LargeScale, catalog.Evaluation:
		return true
	default:
		return false
	}
}

func formatReal(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
