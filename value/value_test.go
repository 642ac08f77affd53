package value

import "testing"

func TestCoercions(t *testing.T) {
	if !Num(3).ToBoolean() {
		t.Fatalf("expected non-zero real to be truthy")
	}
	if Num(0).ToBoolean() {
		t.Fatalf("expected zero real to be falsy")
	}
	if Cplx(1, 0).ToBoolean() {
		t.Fatalf("expected complex with zero imaginary part to be falsy")
	}
	if !Cplx(1, 2).ToBoolean() {
		t.Fatalf("expected complex with both parts non-zero to be truthy")
	}
	if Bool(true).ToReal() != 1 || Bool(false).ToReal() != 0 {
		t.Fatalf("expected boolean to real to be 0/1")
	}
	if Str("3.5").ToReal() != 3.5 {
		t.Fatalf("expected parsed string to real")
	}
	if Str("nope").ToReal() != 0 {
		t.Fatalf("expected unparsable string to coerce to zero")
	}
	if Seq(Num(1)).ToReal() != 0 {
		t.Fatalf("expected sequence to real to be zero")
	}
}

func TestCollapse(t *testing.T) {
	got := Cplx(4, 0).Collapse()
	if got.Kind() != Real || got.RealValue() != 4 {
		t.Fatalf("expected collapse to real, got %v", got)
	}
	got = Cplx(4, 1).Collapse()
	if got.Kind() != Complex {
		t.Fatalf("expected non-zero imaginary to stay complex")
	}
}

func TestToStringAndToText(t *testing.T) {
	if got := Str("hi").ToString(); got != "hi" {
		t.Fatalf("expected bare string, got %q", got)
	}
	if got := Str("hi").ToText(); got != `"hi"` {
		t.Fatalf("expected quoted string, got %q", got)
	}
	seq := Seq(Num(1), Str("x"))
	if got := seq.ToString(); got != `(1,"x")` {
		t.Fatalf("expected sequence text, got %q", got)
	}
	if got := Inv().ToString(); got != "invalid" {
		t.Fatalf("expected invalid string, got %q", got)
	}
}

func TestEqual(t *testing.T) {
	if Equal(Inv(), Inv()) {
		t.Fatalf("expected invalid to never equal invalid")
	}
	if !Equal(Num(1), Cplx(1, 0)) {
		t.Fatalf("expected real to equal complex with zero imaginary")
	}
	if !Equal(Seq(Num(1), Num(2)), Seq(Num(1), Num(2))) {
		t.Fatalf("expected equal sequences to compare equal")
	}
	if Equal(Seq(Num(1)), Seq(Num(1), Num(2))) {
		t.Fatalf("expected differently sized sequences to compare unequal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := Seq(Num(1), Str("x"))
	b := Seq(Num(1), Str("x"))
	if Hash(a) != Hash(b) {
		t.Fatalf("expected equal values to hash equal")
	}
}
