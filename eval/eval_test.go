package eval

import (
	"testing"

	"github.com/sergev/exprcalc/parser"
	"github.com/sergev/exprcalc/value"
)

func mustEval(t *testing.T, src string, assist *Assist) value.Value {
	t.Helper()
	root, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return Eval(root, assist)
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	got := mustEval(t, "1+2*3", nil)
	if !got.IsReal() || got.RealValue() != 7 {
		t.Fatalf("1+2*3 = %v, want 7", got)
	}
}

func TestEvalLogic(t *testing.T) {
	got := mustEval(t, "true && false", nil)
	if !got.IsBoolean() || got.BoolValue() != false {
		t.Fatalf("true && false = %v, want false", got)
	}
}

func TestEvalCollapsesZeroImaginaryComplex(t *testing.T) {
	got := mustEval(t, "sqrt(4)", nil)
	if !got.IsReal() || got.RealValue() != 2 {
		t.Fatalf("sqrt(4) = %v, want real 2", got)
	}
	got = mustEval(t, "i*i", nil)
	if !got.IsReal() || got.RealValue() != -1 {
		t.Fatalf("i*i = %v, want real -1", got)
	}
}

func TestEvalParamResolver(t *testing.T) {
	assist := NewAssist(func(name string) value.Value {
		if name == "x" {
			return value.Num(42)
		}
		return value.Inv()
	}, nil)
	got := mustEval(t, "[x] + 1", assist)
	if !got.IsReal() || got.RealValue() != 43 {
		t.Fatalf("[x]+1 = %v, want 43", got)
	}
}

func TestEvalUserFunctionCall(t *testing.T) {
	got := mustEval(t, "{f(x)=x*x}f(5)", nil)
	if !got.IsReal() || got.RealValue() != 25 {
		t.Fatalf("f(5) = %v, want 25", got)
	}
}

func TestEvalUserFunctionDoesNotSeeCallerVariables(t *testing.T) {
	assist := NewAssist(nil, func(letter string) value.Value {
		if letter == "y" {
			return value.Num(99)
		}
		return value.Inv()
	})
	got := mustEval(t, "{f(x)=x+y}f(1)", assist)
	if !got.IsInvalid() {
		t.Fatalf("f(1) referencing free y = %v, want Invalid (lexical scope only)", got)
	}
}

func TestEvalSequenceLiteral(t *testing.T) {
	got := mustEval(t, "cnt(1,2,3)", nil)
	if !got.IsReal() || got.RealValue() != 3 {
		t.Fatalf("cnt(1,2,3) = %v, want 3", got)
	}
}

func TestEvalNilNodeIsInvalid(t *testing.T) {
	got := Eval(nil, nil)
	if !got.IsInvalid() {
		t.Fatalf("Eval(nil, nil) = %v, want Invalid", got)
	}
}
