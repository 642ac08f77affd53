package eval

import (
	"math"
	"testing"

	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

func TestOperateRealArithmetic(t *testing.T) {
	got := operate(value.Num(3), catalog.CodeAdd, value.Num(4), false)
	if !got.IsReal() || got.RealValue() != 7 {
		t.Fatalf("3+4 = %v, want 7", got)
	}
}

func TestOperateUnaryNegUsesSyntheticZero(t *testing.T) {
	got := operate(value.Inv(), catalog.CodeNeg, value.Num(5), false)
	if !got.IsReal() || got.RealValue() != -5 {
		t.Fatalf("-5 = %v, want -5", got)
	}
}

func TestOperatePostfixFactorialUsesSyntheticZero(t *testing.T) {
	got := operate(value.Num(4), catalog.CodeFactorial, value.Inv(), true)
	if !got.IsReal() || math.Abs(got.RealValue()-24) > 1e-9 {
		t.Fatalf("4~! = %v, want 24", got)
	}
}

func TestOperateDivByZeroIsSignedInfinity(t *testing.T) {
	got := operate(value.Num(1), catalog.CodeDiv, value.Num(0), false)
	if !got.IsReal() || !math.IsInf(got.RealValue(), 1) {
		t.Fatalf("1/0 = %v, want +Inf", got)
	}
}

func TestOperateSqrtOfNegativeFallsBackToComplex(t *testing.T) {
	got := operate(value.Inv(), catalog.CodeSqrt, value.Num(-4), false)
	if !got.IsComplex() {
		t.Fatalf("sqrt(-4) = %v, want complex", got)
	}
	re, im := got.ComplexParts()
	if math.Abs(re) > 1e-9 || math.Abs(im-2) > 1e-9 {
		t.Fatalf("sqrt(-4) = %v+%vi, want 0+2i", re, im)
	}
}

func TestOperateComplexArithmetic(t *testing.T) {
	got := operate(value.Cplx(1, 2), catalog.CodeAdd, value.Cplx(3, -1), false)
	if !got.IsComplex() {
		t.Fatalf("(1+2i)+(3-1i) = %v, want complex", got)
	}
	re, im := got.ComplexParts()
	if re != 4 || im != 1 {
		t.Fatalf("(1+2i)+(3-1i) = %v+%vi, want 4+1i", re, im)
	}
}

func TestOperateStringConcat(t *testing.T) {
	got := operate(value.Str("foo"), catalog.CodeAdd, value.Str("bar"), false)
	if !got.IsString() || got.StringValue() != "foobar" {
		t.Fatalf("\"foo\"+\"bar\" = %v, want foobar", got)
	}
}

func TestOperateStringRegexMatch(t *testing.T) {
	got := operate(value.Str("hello"), catalog.CodeApprox, value.Str("^h.*o$"), false)
	if !got.IsBoolean() || !got.BoolValue() {
		t.Fatalf("\"hello\" ~= \"^h.*o$\" = %v, want true", got)
	}
}

func TestOperateRelation(t *testing.T) {
	got := operate(value.Num(3), catalog.CodeLt, value.Num(5), false)
	if !got.IsBoolean() || !got.BoolValue() {
		t.Fatalf("3 < 5 = %v, want true", got)
	}
}

func TestOperatePrimeQuery(t *testing.T) {
	got := operate(value.Inv(), catalog.CodePrime, value.Num(7), false)
	if !got.IsBoolean() || !got.BoolValue() {
		t.Fatalf("pri(7) = %v, want true", got)
	}
	got = operate(value.Inv(), catalog.CodePrime, value.Num(8), false)
	if !got.IsBoolean() || got.BoolValue() {
		t.Fatalf("pri(8) = %v, want false", got)
	}
}
