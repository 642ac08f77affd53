package exprengine

import (
	"strings"
	"testing"

	"github.com/sergev/exprcalc/eval"
	"github.com/sergev/exprcalc/value"
)

func TestConstructValidExpression(t *testing.T) {
	h := Construct("1+2*3")
	valid, _, hasOffset := h.IsValid()
	if !valid || hasOffset {
		t.Fatalf("IsValid() = (%v, _, %v), want (true, _, false)", valid, hasOffset)
	}
}

func TestConstructSyntaxErrorReportsOffset(t *testing.T) {
	h := Construct("1+")
	valid, offset, hasOffset := h.IsValid()
	if valid || !hasOffset {
		t.Fatalf("IsValid() = (%v, %d, %v), want (false, _, true)", valid, offset, hasOffset)
	}
}

func TestConstructRejectsUndefinedFunctionCall(t *testing.T) {
	h := Construct("g(5)")
	valid, _, hasOffset := h.IsValid()
	if valid || !hasOffset {
		t.Fatalf("IsValid() = (%v, _, %v), want the undefined call rejected", valid, hasOffset)
	}
}

func TestHandlerExprRoundTrips(t *testing.T) {
	h := Construct("1+2*3")
	if got := h.Expr(); got != "1+2*3" {
		t.Fatalf("Expr() = %q, want %q", got, "1+2*3")
	}
}

func TestHandlerLatexRendersFraction(t *testing.T) {
	h := Construct("1/2")
	if got := h.Latex(); got != "\\frac{1}{2}" {
		t.Fatalf("Latex() = %q, want %q", got, "\\frac{1}{2}")
	}
}

func TestHandlerTreeContainsBoxDrawingGlyphs(t *testing.T) {
	h := Construct("1+2*3")
	got := h.Tree(2)
	if got == "" {
		t.Fatalf("Tree() = %q, want non-empty diagram", got)
	}
	for _, glyph := range []string{"┌", "└"} {
		if !strings.Contains(got, glyph) {
			t.Fatalf("Tree() = %q, want glyph %q present", got, glyph)
		}
	}
}

func TestHandlerCalcEvaluatesExpression(t *testing.T) {
	h := Construct("{f(x)=x*x}f(5)")
	got := h.Calc(eval.NewAssist(nil, nil))
	if !got.IsReal() || got.RealValue() != 25 {
		t.Fatalf("Calc() = %v, want 25", got)
	}
}

func TestHandlerCalcUsesParamResolver(t *testing.T) {
	h := Construct("[x] + 1")
	assist := eval.NewAssist(func(name string) value.Value {
		if name == "x" {
			return value.Num(41)
		}
		return value.Inv()
	}, nil)
	got := h.Calc(assist)
	if !got.IsReal() || got.RealValue() != 42 {
		t.Fatalf("Calc() = %v, want 42", got)
	}
}

func TestHandlerInvalidHandlerDegradesGracefully(t *testing.T) {
	h := Construct("1+")
	if h.Expr() != "" {
		t.Fatalf("Expr() on invalid handler = %q, want empty", h.Expr())
	}
	if h.Latex() != "" {
		t.Fatalf("Latex() on invalid handler = %q, want empty", h.Latex())
	}
	if h.Tree(2) != "" {
		t.Fatalf("Tree() on invalid handler = %q, want empty", h.Tree(2))
	}
	got := h.Calc(eval.NewAssist(nil, nil))
	if !got.IsInvalid() {
		t.Fatalf("Calc() on invalid handler = %v, want Invalid", got)
	}
}

func TestHandlerDiscardsTreeOnStructuralValidationFailure(t *testing.T) {
	h := Construct("g(5)")
	if h.Expr() != "" {
		t.Fatalf("Expr() on structurally invalid handler = %q, want empty", h.Expr())
	}
	if h.Latex() != "" {
		t.Fatalf("Latex() on structurally invalid handler = %q, want empty", h.Latex())
	}
	if h.Tree(2) != "" {
		t.Fatalf("Tree() on structurally invalid handler = %q, want empty", h.Tree(2))
	}
	got := h.Calc(eval.NewAssist(nil, nil))
	if !got.IsInvalid() {
		t.Fatalf("Calc() on structurally invalid handler = %v, want Invalid", got)
	}
}
