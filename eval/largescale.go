package eval

import (
	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// integrateSteps1/2/3 fix the sub-interval counts for single/double/triple
// integration, chosen so integrate3's (N+1)^3 grid-point count lands near
// the ~125 million function invocations per call noted in §5.
const (
	integrateSteps1 = 1000000
	integrateSteps2 = 8000
	integrateSteps3 = 500
)

// evalLargeScale implements §4.4.4's Σ/Π/∫ family. The right child is an
// Object(Array) of raw argument nodes; the final element is always the
// function reference and is classified rather than eagerly evaluated.
func evalLargeScale(n *ast.ExprNode, assist *Assist) value.Value {
	wrap, ok := n.Right.(*ast.ObjectNode)
	if !ok {
		return value.Inv()
	}
	args := wrap.Elems
	switch n.Code {
	case catalog.CodeSigma:
		return largeScaleFold(args, assist, 0, func(acc, x value.Value) value.Value {
			return operate(acc, catalog.CodeAdd, x, false)
		})
	case catalog.CodePi:
		return largeScaleFold(args, assist, 1, func(acc, x value.Value) value.Value {
			return operate(acc, catalog.CodeMul, x, false)
		})
	case catalog.CodeIntegral1:
		return integrate1(args, assist)
	case catalog.CodeIntegral2:
		return integrate2(args, assist)
	case catalog.CodeIntegral3:
		return integrate3(args, assist)
	default:
		return value.Inv()
	}
}

// largeScaleFold implements Σ/Π: fold f(i) over integer i in [lo, hi]
// (swapped if lo > hi), starting from init and combining via combine.
func largeScaleFold(args []ast.Node, assist *Assist, init float64, combine func(acc, x value.Value) value.Value) value.Value {
	if len(args) != 3 {
		return value.Inv()
	}
	lo := evalNode(args[0], assist).ToReal()
	hi := evalNode(args[1], assist).ToReal()
	f := classifyArg(args[2], assist)
	if !f.isFunc {
		return value.Inv()
	}
	loI, hiI := int64(lo), int64(hi)
	if loI > hiI {
		loI, hiI = hiI, loI
	}
	acc := value.Num(init)
	for i := loI; i <= hiI; i++ {
		acc = combine(acc, f.call([]value.Value{value.Num(float64(i))}))
	}
	return acc
}

// weight returns the composite-trapezoidal endpoint weight for index i of n.
func weight(i, n int) float64 {
	if i == 0 || i == n {
		return 0.5
	}
	return 1
}

func sampleReal(f arg, x float64) float64 {
	return f.call([]value.Value{value.Num(x)}).ToReal()
}

func integrate1(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 3 {
		return value.Inv()
	}
	lo := evalNode(args[0], assist).ToReal()
	hi := evalNode(args[1], assist).ToReal()
	f := classifyArg(args[2], assist)
	if !f.isFunc {
		return value.Inv()
	}
	n := integrateSteps1
	dx := (hi - lo) / float64(n)
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := lo + dx*float64(i)
		sum += weight(i, n) * sampleReal(f, x)
	}
	return value.Num(sum * dx)
}

func integrate2(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 5 {
		return value.Inv()
	}
	lo1 := evalNode(args[0], assist).ToReal()
	hi1 := evalNode(args[1], assist).ToReal()
	lo2 := evalNode(args[2], assist).ToReal()
	hi2 := evalNode(args[3], assist).ToReal()
	f := classifyArg(args[4], assist)
	if !f.isFunc || len(f.formals) < 2 {
		return value.Inv()
	}
	n := integrateSteps2
	dx := (hi1 - lo1) / float64(n)
	dy := (hi2 - lo2) / float64(n)
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := lo1 + dx*float64(i)
		wx := weight(i, n)
		for j := 0; j <= n; j++ {
			y := lo2 + dy*float64(j)
			sum += wx * weight(j, n) * f.call([]value.Value{value.Num(x), value.Num(y)}).ToReal()
		}
	}
	return value.Num(sum * dx * dy)
}

func integrate3(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 7 {
		return value.Inv()
	}
	lo1 := evalNode(args[0], assist).ToReal()
	hi1 := evalNode(args[1], assist).ToReal()
	lo2 := evalNode(args[2], assist).ToReal()
	hi2 := evalNode(args[3], assist).ToReal()
	lo3 := evalNode(args[4], assist).ToReal()
	hi3 := evalNode(args[5], assist).ToReal()
	f := classifyArg(args[6], assist)
	if !f.isFunc || len(f.formals) < 3 {
		return value.Inv()
	}
	n := integrateSteps3
	dx := (hi1 - lo1) / float64(n)
	dy := (hi2 - lo2) / float64(n)
	dz := (hi3 - lo3) / float64(n)
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := lo1 + dx*float64(i)
		wx := weight(i, n)
		for j := 0; j <= n; j++ {
			y := lo2 + dy*float64(j)
			wxy := wx * weight(j, n)
			for k := 0; k <= n; k++ {
				z := lo3 + dz*float64(k)
				sum += wxy * weight(k, n) * f.call([]value.Value{value.Num(x), value.Num(y), value.Num(z)}).ToReal()
			}
		}
	}
	return value.Num(sum * dx * dy * dz)
}
