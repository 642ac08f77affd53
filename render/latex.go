package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

// Latex renders node as LaTeX, per §4.5's per-operator template table.
func Latex(node ast.Node) string {
	return latexNode(node)
}

func latexNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	prefix := ""
	if defines := node.Defines(); defines != nil {
		parts := make([]string, len(defines.Elems))
		for i, e := range defines.Elems {
			parts[i] = latexNode(e)
		}
		prefix = "\\{" + strings.Join(parts, ",\\ ") + "\\}"
	}
	switch n := node.(type) {
	case *ast.ObjectNode:
		return prefix + latexObject(n)
	case *ast.ExprNode:
		return prefix + latexExpr(n)
	default:
		return prefix
	}
}

func latexObject(n *ast.ObjectNode) string {
	switch n.ObjKind {
	case ast.Boolean:
		if n.BoolVal {
			return "\\mathrm{true}"
		}
		return "\\mathrm{false}"
	case ast.Real:
		return latexConstantOrNumber(n.RealVal)
	case ast.Imaginary:
		if n.RealVal == 1 {
			return "i"
		}
		return formatReal(n.RealVal) + "i"
	case ast.String:
		return "\\text{" + n.Text + "}"
	case ast.Param:
		return "\\left[" + n.Text + "\\right]"
	case ast.Variable:
		return n.Text
	case ast.Array:
		parts := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			parts[i] = latexNode(e)
		}
		return "\\left(" + strings.Join(parts, ",\\ ") + "\\right)"
	default:
		return ""
	}
}

// latexConstantOrNumber re-labels a value approaching π or e as the symbol,
// per §4.5's "Numeric constants approaching π or e are re-labelled".
func latexConstantOrNumber(v float64) string {
	const eps = 1e-9
	switch {
	case math.Abs(v-math.Pi) < eps:
		return "\\pi"
	case math.Abs(v+math.Pi) < eps:
		return "-\\pi"
	case math.Abs(v-math.E) < eps:
		return "e"
	case math.Abs(v+math.E) < eps:
		return "-e"
	default:
		return formatReal(v)
	}
}

func latexExpr(n *ast.ExprNode) string {
	if n.Category == catalog.UserFunction {
		return "\\mathrm{" + n.Name + "}" + latexWrap(n.Right)
	}
	row, ok := catalog.Lookup(n.Code)
	if !ok {
		return ""
	}
	switch n.Category {
	case catalog.Invocation, catalog.LargeScale, catalog.Evaluation:
		return latexCallLike(n, row)
	}
	if row.Arity == catalog.Binary {
		if template := latexBinaryTemplate(n); template != "" {
			return template
		}
		return latexGenericBinary(n, row)
	}
	if template := latexUnaryTemplate(n); template != "" {
		return template
	}
	return latexGenericUnary(n, row)
}

func latexWrap(right ast.Node) string {
	arr, ok := right.(*ast.ObjectNode)
	if !ok {
		return latexNode(right)
	}
	parts := make([]string, len(arr.Elems))
	for i, e := range arr.Elems {
		parts[i] = latexNode(e)
	}
	return "\\left(" + strings.Join(parts, ",\\ ") + "\\right)"
}

func latexBinaryTemplate(n *ast.ExprNode) string {
	l := latexNode(n.Left)
	r := latexNode(n.Right)
	switch n.Code {
	case catalog.CodeDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", l, r)
	case catalog.CodeRoot:
		return fmt.Sprintf("\\sqrt[%s]{%s}", r, l)
	case catalog.CodeLog:
		return fmt.Sprintf("\\log_{%s}\\left(%s\\right)", l, r)
	case catalog.CodePermute:
		return fmt.Sprintf("P_{%s}^{%s}", r, l)
	case catalog.CodeCombine:
		return fmt.Sprintf("C_{%s}^{%s}", r, l)
	case catalog.CodePolar:
		return fmt.Sprintf("%s\\angle %s", l, r)
	case catalog.CodeAnd:
		return fmt.Sprintf("%s \\land %s", l, r)
	case catalog.CodeOr:
		return fmt.Sprintf("%s \\lor %s", l, r)
	case catalog.CodeEq:
		return fmt.Sprintf("%s = %s", l, r)
	case catalog.CodeNeq:
		return fmt.Sprintf("%s \\neq %s", l, r)
	case catalog.CodeApprox:
		return fmt.Sprintf("%s \\approx %s", l, r)
	case catalog.CodeLe:
		return fmt.Sprintf("%s \\leq %s", l, r)
	case catalog.CodeGe:
		return fmt.Sprintf("%s \\geq %s", l, r)
	case catalog.CodeMul:
		return fmt.Sprintf("%s \\cdot %s", l, r)
	default:
		return ""
	}
}

func latexUnaryTemplate(n *ast.ExprNode) string {
	operand := latexNode(n.Right)
	if n.Postfix {
		operand = latexNode(n.Left)
	}
	switch n.Code {
	case catalog.CodeAbs:
		return fmt.Sprintf("\\left|%s\\right|", operand)
	case catalog.CodeCeil:
		return fmt.Sprintf("\\left\\lceil %s \\right\\rceil", operand)
	case catalog.CodeFloor:
		return fmt.Sprintf("\\left\\lfloor %s \\right\\rfloor", operand)
	case catalog.CodeNot:
		return fmt.Sprintf("\\neg %s", operand)
	case catalog.CodeSqrt:
		return fmt.Sprintf("\\sqrt{%s}", operand)
	case catalog.CodePolar:
		return fmt.Sprintf("\\angle %s", operand)
	case catalog.CodeDegree:
		return fmt.Sprintf("%s^{\\circ}", operand)
	case catalog.CodeFactorial:
		return fmt.Sprintf("%s!", operand)
	case catalog.CodeGamma:
		return fmt.Sprintf("\\Gamma\\left(%s\\right)", operand)
	case catalog.CodeAsin:
		return fmt.Sprintf("\\sin^{-1}\\left(%s\\right)", operand)
	case catalog.CodeAcos:
		return fmt.Sprintf("\\cos^{-1}\\left(%s\\right)", operand)
	case catalog.CodeAtan:
		return fmt.Sprintf("\\tan^{-1}\\left(%s\\right)", operand)
	case catalog.CodeAcot:
		return fmt.Sprintf("\\cot^{-1}\\left(%s\\right)", operand)
	case catalog.CodeAsec:
		return fmt.Sprintf("\\sec^{-1}\\left(%s\\right)", operand)
	case catalog.CodeAcsc:
		return fmt.Sprintf("\\csc^{-1}\\left(%s\\right)", operand)
	default:
		return ""
	}
}

// latexCallLike renders Invocation/LargeScale/Evaluation operators; the
// Σ/Π/∫ family get the template forms §4.5 calls out by name, everything
// else falls back to a named-operator-applied-to-wrap rendering.
func latexCallLike(n *ast.ExprNode, row catalog.Row) string {
	arr, ok := n.Right.(*ast.ObjectNode)
	if !ok {
		return "\\mathrm{" + row.Primary + "}" + latexNode(n.Right)
	}
	switch n.Code {
	case catalog.CodeSigma:
		return latexRangeOp("\\Sigma", arr)
	case catalog.CodePi:
		return latexRangeOp("\\Pi", arr)
	case catalog.CodeIntegral1:
		return latexIntegral(arr, 1)
	case catalog.CodeIntegral2:
		return latexIntegral(arr, 2)
	case catalog.CodeIntegral3:
		return latexIntegral(arr, 3)
	default:
		parts := make([]string, len(arr.Elems))
		for i, e := range arr.Elems {
			parts[i] = latexNode(e)
		}
		return "\\mathrm{" + row.Primary + "}\\left(" + strings.Join(parts, ",\\ ") + "\\right)"
	}
}

func latexRangeOp(symbol string, arr *ast.ObjectNode) string {
	if len(arr.Elems) != 3 {
		return symbol
	}
	lo := latexNode(arr.Elems[0])
	hi := latexNode(arr.Elems[1])
	body := latexNode(arr.Elems[2])
	return fmt.Sprintf("%s_{x=%s}^{%s} %s", symbol, lo, hi, body)
}

func latexIntegral(arr *ast.ObjectNode, dims int) string {
	switch dims {
	case 1:
		if len(arr.Elems) != 3 {
			return "\\int"
		}
		lo, hi, f := latexNode(arr.Elems[0]), latexNode(arr.Elems[1]), latexNode(arr.Elems[2])
		return fmt.Sprintf("\\int_{%s}^{%s} %s \\, dx", lo, hi, f)
	case 2:
		if len(arr.Elems) != 5 {
			return "\\iint"
		}
		lo1, hi1 := latexNode(arr.Elems[0]), latexNode(arr.Elems[1])
		lo2, hi2 := latexNode(arr.Elems[2]), latexNode(arr.Elems[3])
		f := latexNode(arr.Elems[4])
		return fmt.Sprintf("\\int_{%s}^{%s}\\int_{%s}^{%s} %s \\, dx\\, dy", lo1, hi1, lo2, hi2, f)
	default:
		if len(arr.Elems) != 7 {
			return "\\iiint"
		}
		lo1, hi1 := latexNode(arr.Elems[0]), latexNode(arr.Elems[1])
		lo2, hi2 := latexNode(arr.Elems[2]), latexNode(arr.Elems[3])
		lo3, hi3 := latexNode(arr.Elems[4]), latexNode(arr.Elems[5])
		f := latexNode(arr.Elems[6])
		return fmt.Sprintf("\\int_{%s}^{%s}\\int_{%s}^{%s}\\int_{%s}^{%s} %s \\, dx\\, dy\\, dz", lo1, hi1, lo2, hi2, lo3, hi3, f)
	}
}

// latexGenericBinary covers the remaining binary relation/arithmetic
// operators that have no special template: infix with the primary lexeme.
func latexGenericBinary(n *ast.ExprNode, row catalog.Row) string {
	l := latexNode(n.Left)
	r := latexNode(n.Right)
	return fmt.Sprintf("%s %s %s", l, row.Primary, r)
}

// latexGenericUnary covers the remaining unary operators (sin/cos/tan/
// ln/lg/neg/trunc/round/... and the prime-test family) that have no
// special template: named-operator-applied-to-operand.
func latexGenericUnary(n *ast.ExprNode, row catalog.Row) string {
	if n.Postfix {
		return fmt.Sprintf("\\mathrm{%s}\\left(%s\\right)", row.Primary, latexNode(n.Left))
	}
	if n.Code == catalog.CodeNeg {
		return "-" + latexNode(n.Right)
	}
	return fmt.Sprintf("\\mathrm{%s}\\left(%s\\right)", row.Primary, latexNode(n.Right))
}
