package parser

import (
	"testing"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

func mustExpr(t *testing.T, n ast.Node) *ast.ExprNode {
	t.Helper()
	e, ok := n.(*ast.ExprNode)
	if !ok {
		t.Fatalf("expected *ast.ExprNode, got %T", n)
	}
	return e
}

func mustObject(t *testing.T, n ast.Node) *ast.ObjectNode {
	t.Helper()
	o, ok := n.(*ast.ObjectNode)
	if !ok {
		t.Fatalf("expected *ast.ObjectNode, got %T", n)
	}
	return o
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	root, err := Parse("1+2*3")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	add := mustExpr(t, root)
	if add.Code != catalog.CodeAdd {
		t.Fatalf("expected root operator Add, got %v", add.Code)
	}
	left := mustObject(t, add.Left)
	if left.RealVal != 1 {
		t.Fatalf("expected left operand 1, got %v", left.RealVal)
	}
	mul := mustExpr(t, add.Right)
	if mul.Code != catalog.CodeMul {
		t.Fatalf("expected right operand Mul, got %v", mul.Code)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	root, err := Parse("(1+2)*3")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	mul := mustExpr(t, root)
	if mul.Code != catalog.CodeMul {
		t.Fatalf("expected root operator Mul, got %v", mul.Code)
	}
	add := mustExpr(t, mul.Left)
	if add.Code != catalog.CodeAdd {
		t.Fatalf("expected left operand Add, got %v", add.Code)
	}
}

func TestPowerOperator(t *testing.T) {
	root, err := Parse("2^10")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	pow := mustExpr(t, root)
	if pow.Code != catalog.CodePow {
		t.Fatalf("expected Pow, got %v", pow.Code)
	}
	left := mustObject(t, pow.Left)
	right := mustObject(t, pow.Right)
	if left.RealVal != 2 || right.RealVal != 10 {
		t.Fatalf("expected operands 2,10, got %v,%v", left.RealVal, right.RealVal)
	}
}

func TestUnaryMinusAppliesBeforePower(t *testing.T) {
	root, err := Parse("-2^2")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	pow := mustExpr(t, root)
	if pow.Code != catalog.CodePow {
		t.Fatalf("expected root Pow, got %v", pow.Code)
	}
	neg := mustExpr(t, pow.Left)
	if neg.Code != catalog.CodeNeg {
		t.Fatalf("expected left operand Neg, got %v", neg.Code)
	}
}

func TestPostfixBindsToImmediatelyPrecedingOperand(t *testing.T) {
	root, err := Parse("2^3~!")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	pow := mustExpr(t, root)
	if pow.Code != catalog.CodePow {
		t.Fatalf("expected root Pow, got %v", pow.Code)
	}
	fact := mustExpr(t, pow.Right)
	if fact.Code != catalog.CodeFactorial || !fact.Postfix {
		t.Fatalf("expected right operand postfix Factorial, got %v postfix=%v", fact.Code, fact.Postfix)
	}
}

func TestDefinesBlockAttachesToUserFunctionCall(t *testing.T) {
	root, err := Parse("{f(x)=x*x}f(5)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	call := mustExpr(t, root)
	if call.Category != catalog.UserFunction || call.Name != "f" {
		t.Fatalf("expected UserFunction call named f, got category=%v name=%q", call.Category, call.Name)
	}
	wrap := mustObject(t, call.Right)
	if wrap.ObjKind != ast.Array || len(wrap.Elems) != 1 {
		t.Fatalf("expected one-element Array wrap, got %+v", wrap)
	}

	defines := root.Defines()
	if defines == nil || len(defines.Elems) != 1 {
		t.Fatalf("expected a one-entry defines block")
	}
	eq := mustExpr(t, defines.Elems[0])
	if eq.Code != catalog.CodeEq {
		t.Fatalf("expected defines entry to be an equality, got %v", eq.Code)
	}
	head := mustExpr(t, eq.Left)
	if head.Category != catalog.UserFunction || head.Name != "f" {
		t.Fatalf("expected defines LHS to be UserFunction f, got %+v", head)
	}
	rule := mustExpr(t, eq.Right)
	if rule.Code != catalog.CodeMul {
		t.Fatalf("expected rule x*x, got %v", rule.Code)
	}
}

func TestSumBuiltinAlwaysWrapsArgumentsInArray(t *testing.T) {
	root, err := Parse("sum(1,2,3,4)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	total := mustExpr(t, root)
	if total.Code != catalog.CodeTotal {
		t.Fatalf("expected sum to alias CodeTotal, got %v", total.Code)
	}
	wrap := mustObject(t, total.Right)
	if wrap.ObjKind != ast.Array || len(wrap.Elems) != 4 {
		t.Fatalf("expected 4-element Array wrap, got %+v", wrap)
	}
}

func TestNestedDefinesOnBareVariableArgument(t *testing.T) {
	root, err := Parse("∫(0, 1, {f(x)=x}f)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	integral := mustExpr(t, root)
	if integral.Code != catalog.CodeIntegral1 {
		t.Fatalf("expected Integral1, got %v", integral.Code)
	}
	wrap := mustObject(t, integral.Right)
	if len(wrap.Elems) != 3 {
		t.Fatalf("expected 3-element wrap, got %d", len(wrap.Elems))
	}
	fArg := mustObject(t, wrap.Elems[2])
	if fArg.ObjKind != ast.Variable || fArg.Text != "f" {
		t.Fatalf("expected bare variable f as third argument, got %+v", fArg)
	}
	if fArg.Defines() == nil {
		t.Fatalf("expected the bare variable argument to carry its own defines block")
	}
}

func TestBareImaginaryUnit(t *testing.T) {
	root, err := Parse("i")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	o := mustObject(t, root)
	if o.ObjKind != ast.Imaginary || o.RealVal != 1 {
		t.Fatalf("expected bare i to parse to Imaginary(1), got %+v", o)
	}
}

func TestParamLiteral(t *testing.T) {
	root, err := Parse("[p]+1")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	add := mustExpr(t, root)
	param := mustObject(t, add.Left)
	if param.ObjKind != ast.Param || param.Text != "p" {
		t.Fatalf("expected param literal p, got %+v", param)
	}
}

func TestBareParensAreTransparent(t *testing.T) {
	root, err := Parse("(5)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	o := mustObject(t, root)
	if o.ObjKind != ast.Real || o.RealVal != 5 {
		t.Fatalf("expected bare (5) to collapse to Real(5), got %+v", o)
	}
}

func TestCommaGroupBuildsArray(t *testing.T) {
	root, err := Parse("(1,2)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	arr := mustObject(t, root)
	if arr.ObjKind != ast.Array || len(arr.Elems) != 2 {
		t.Fatalf("expected a 2-element array, got %+v", arr)
	}
}

func TestSqrtOfNegativeParsesAsUnaryArithmetic(t *testing.T) {
	root, err := Parse("sqrt(-1)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	sqrt := mustExpr(t, root)
	if sqrt.Code != catalog.CodeSqrt {
		t.Fatalf("expected Sqrt, got %v", sqrt.Code)
	}
	neg := mustExpr(t, sqrt.Right)
	if neg.Code != catalog.CodeNeg {
		t.Fatalf("expected sqrt's operand to be unary Neg(1), got %v", neg.Code)
	}
}

func TestPrimeBuiltinsTakeABareOperand(t *testing.T) {
	// pri/npri are Arithmetic-category unary operators, not call-like
	// Evaluation/Invocation/LargeScale ones, so "(7)" is a transparent
	// parenthesised segment, not a forced Array wrap.
	for _, src := range []string{"pri(7)", "npri(0)"} {
		root, err := Parse(src)
		if err != nil {
			t.Fatalf("unexpected parse error for %q: %v", src, err)
		}
		expr := mustExpr(t, root)
		operand := mustObject(t, expr.Right)
		if operand.ObjKind != ast.Real {
			t.Fatalf("expected a bare Real operand for %q, got %+v", src, operand)
		}
	}
}

func TestCountBuiltinWrapsArgumentInArray(t *testing.T) {
	// cnt is an Evaluation-category operator and is call-like: even a
	// single argument is wrapped in an Array right child.
	root, err := Parse("cnt(7)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cnt := mustExpr(t, root)
	if cnt.Code != catalog.CodeCount {
		t.Fatalf("expected CodeCount, got %v", cnt.Code)
	}
	wrap := mustObject(t, cnt.Right)
	if wrap.ObjKind != ast.Array || len(wrap.Elems) != 1 {
		t.Fatalf("expected one-element Array wrap, got %+v", wrap)
	}
}

func TestTrailingGarbageIsSyntaxError(t *testing.T) {
	if _, err := Parse("1+"); err == nil {
		t.Fatalf("expected a syntax error for a dangling operator")
	}
	if _, err := Parse("1 2"); err == nil {
		t.Fatalf("expected a syntax error for unconsumed trailing input")
	}
}

func TestUnmatchedParenIsSyntaxError(t *testing.T) {
	if _, err := Parse("(1+2"); err == nil {
		t.Fatalf("expected a syntax error for an unmatched '('")
	}
}

func TestUnknownIdentifierWithoutCallIsSyntaxError(t *testing.T) {
	if _, err := Parse("xyz"); err == nil {
		t.Fatalf("expected a syntax error for a multi-letter identifier with no call parens")
	}
}

func TestCeilDoesNotSwallowLongerIdentifier(t *testing.T) {
	// "ceil" must not greedily match as a prefix of a longer identifier:
	// "ceiling(1)" is a call of a user function named "ceiling". Followed
	// directly by '(' it legitimately matches as the Ceil operator.
	root, err := Parse("ceiling(1)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	call := mustExpr(t, root)
	if call.Category != catalog.UserFunction || call.Name != "ceiling" {
		t.Fatalf("expected UserFunction call named ceiling, got category=%v name=%q", call.Category, call.Name)
	}

	root, err = Parse("ceil(1.5)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	ceil := mustExpr(t, root)
	if ceil.Code != catalog.CodeCeil {
		t.Fatalf("expected Ceil, got %v", ceil.Code)
	}
}
