// Package eval implements the tree-walking evaluator described in spec
// §4.4: calc(node, assist) dispatches on the concrete ast.Node variant and,
// for Expr nodes, on catalog.Category, bottoming out in operate() for
// scalar arithmetic/relation/logic and in dedicated files for sequence
// statistics, higher-order invocations, and large-scale operators. It is
// grounded on the teacher's runtime/primitives.go define(name, fn) table
// idiom — generalized here to a type switch plus per-category dispatch
// tables, since operators are keyed by a fixed catalog.Code rather than by
// a dynamically looked-up symbol.
package eval

import (
	"math/rand"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// Assist bundles the caller-supplied resolver callbacks and the lazily
// populated per-call-site definition cache, mirroring spec §4.4's "assist"
// triple (param-resolver, variable-resolver, cached definition map).
type Assist struct {
	Param    func(name string) value.Value
	Variable func(letter string) value.Value

	// cache maps a UserFunction call node to the definition discovered by
	// walking its defines chain, keyed by node rather than by name: a
	// given call site's enclosing defines chain is fixed after parsing,
	// so caching per node is safe even when two different call sites
	// happen to share a function name bound by different defines blocks.
	cache map[ast.Node]funcDef

	// seed optionally pins the PRNG used by CodeRand, per SPEC_FULL's
	// randomness design note. Nil means lazily seed from wall-clock on
	// first use, matching the teacher's randomRand package-level default.
	seed        *int64
	privateRand *rand.Rand
}

// NewAssist constructs an Assist with the given resolvers. Either resolver
// may be nil, in which case the corresponding literal evaluates to Invalid.
func NewAssist(param func(string) value.Value, variable func(string) value.Value) *Assist {
	return &Assist{Param: param, Variable: variable, cache: make(map[ast.Node]funcDef)}
}

// WithSeed returns a copy of a seeded for CodeRand with an explicit PRNG
// seed, sharing the same resolvers and definition cache.
func (a *Assist) WithSeed(seed int64) *Assist {
	cp := *a
	cp.seed = &seed
	return &cp
}

// withVariable returns a derived Assist whose variable-resolver is
// replaced (used to bind a user function's formals to actual arguments),
// reusing the same param-resolver and definition cache, per §4.4.1. A nil
// a yields an Assist carrying only the new variable-resolver.
func (a *Assist) withVariable(resolve func(string) value.Value) *Assist {
	if a == nil {
		return &Assist{Variable: resolve}
	}
	cp := *a
	cp.Variable = resolve
	return &cp
}

// Eval evaluates node under assist, per the dispatch table in §4.4.
func Eval(node ast.Node, assist *Assist) value.Value {
	v := evalNode(node, assist)
	return v.Collapse()
}

func evalNode(node ast.Node, assist *Assist) value.Value {
	if node == nil {
		return value.Inv()
	}
	switch n := node.(type) {
	case *ast.ObjectNode:
		return evalObject(n, assist)
	case *ast.ExprNode:
		return evalExpr(n, assist)
	default:
		return value.Inv()
	}
}

func evalObject(n *ast.ObjectNode, assist *Assist) value.Value {
	switch n.ObjKind {
	case ast.Boolean:
		return value.Bool(n.BoolVal)
	case ast.Real:
		return value.Num(n.RealVal)
	case ast.Imaginary:
		return value.Cplx(0, n.RealVal)
	case ast.String:
		return value.Str(n.Text)
	case ast.Param:
		if assist == nil || assist.Param == nil {
			return value.Inv()
		}
		return assist.Param(n.Text)
	case ast.Variable:
		if assist == nil || assist.Variable == nil {
			return value.Inv()
		}
		return assist.Variable(n.Text)
	case ast.Array:
		elems := make([]value.Value, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = evalNode(e, assist)
		}
		return value.Seq(elems...)
	default:
		return value.Inv()
	}
}

func evalExpr(n *ast.ExprNode, assist *Assist) value.Value {
	switch n.Category {
	case catalog.UserFunction:
		return evalUserFunctionCall(n, assist)
	case catalog.Invocation:
		return evalInvocation(n, assist)
	case catalog.LargeScale:
		return evalLargeScale(n, assist)
	default:
		// Logic, Relation, Arithmetic, Evaluation all route through the
		// scalar/sequence dispatch matrix; Evaluation's left is always
		// nil (it is a call-like unary operator) and operate ignores it.
		left := evalNode(n.Left, assist)
		right := evalNode(n.Right, assist)
		return operate(left, n.Code, right, n.Postfix)
	}
}
