package validate

import (
	"testing"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/parser"
)

func parseOrFatal(t *testing.T, src string) ast.Node {
	t.Helper()
	root, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return root
}

func TestValidArithmeticTree(t *testing.T) {
	root := parseOrFatal(t, "1+2*3")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestValidLogicTree(t *testing.T) {
	root := parseOrFatal(t, "true && false")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestValidUnaryArithmeticTree(t *testing.T) {
	root := parseOrFatal(t, "sqrt(-1)")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestValidPostfixTree(t *testing.T) {
	root := parseOrFatal(t, "2^3~!")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestValidCallLikeTree(t *testing.T) {
	root := parseOrFatal(t, "sum(1,2,3,4)")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestValidDefinesAndUserFunctionCall(t *testing.T) {
	root := parseOrFatal(t, "{f(x)=x*x}f(5)")
	if err := Validate(root, nil); err != nil {
		t.Fatalf("expected a valid tree, got %v", err)
	}
}

func TestResolverAcceptsKnownFunction(t *testing.T) {
	root := parseOrFatal(t, "{f(x)=x*x}f(5)")
	resolve := func(node ast.Node, name string) bool { return name == "f" }
	if err := Validate(root, resolve); err != nil {
		t.Fatalf("expected resolver to accept a defined function, got %v", err)
	}
}

func TestResolverRejectsUnknownFunction(t *testing.T) {
	root := parseOrFatal(t, "{f(x)=x*x}f(5)")
	resolve := func(node ast.Node, name string) bool { return false }
	if err := Validate(root, resolve); err == nil {
		t.Fatalf("expected resolver rejection to surface a validation error")
	}
}

func TestLogicOperandMustBeBoolResult(t *testing.T) {
	root := parseOrFatal(t, "1 && true")
	if err := Validate(root, nil); err == nil {
		t.Fatalf("expected a validation error: a real literal cannot satisfy a Logic operand")
	}
}

func TestArithmeticOperandMustBeValueResult(t *testing.T) {
	root := parseOrFatal(t, "true + 1")
	if err := Validate(root, nil); err == nil {
		t.Fatalf("expected a validation error: a boolean literal cannot satisfy an Arithmetic operand")
	}
}
