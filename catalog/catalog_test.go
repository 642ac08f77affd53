package catalog

import "testing"

func TestMatchBinaryPrefersLongestLexeme(t *testing.T) {
	if code, n, ok := MatchBinary("<=5"); !ok || code != CodeLe || n != 2 {
		t.Fatalf("expected \"<=\" to win over \"<\", got code=%v n=%d ok=%v", code, n, ok)
	}
	if code, n, ok := MatchBinary("<5"); !ok || code != CodeLt || n != 1 {
		t.Fatalf("expected \"<\" to match alone, got code=%v n=%d ok=%v", code, n, ok)
	}
}

func TestMatchUnaryPrefixRespectsWordBoundary(t *testing.T) {
	// "ceil" must not match as a prefix of a longer identifier such as
	// "ceiling" — the byte span after the match has to not be a letter.
	if _, _, ok := MatchUnaryPrefix("ceiling(1)"); ok {
		t.Fatalf("expected no match inside a longer identifier")
	}
	if code, n, ok := MatchUnaryPrefix("ceil(1)"); !ok || code != CodeCeil || n != 4 {
		t.Fatalf("expected \"ceil\" to match when followed by a non-letter, got code=%v n=%d ok=%v", code, n, ok)
	}
}

func TestMatchUnaryPrefixSymbolLexemeNeedsNoBoundary(t *testing.T) {
	if code, n, ok := MatchUnaryPrefix("√2"); !ok || code != CodeSqrt || n != len("√") {
		t.Fatalf("expected \"√\" to match a following digit directly, got code=%v n=%d ok=%v", code, n, ok)
	}
}

func TestHypotSplitByArity(t *testing.T) {
	// "hypot" names two distinct operators depending on arity bucket:
	// a binary Arithmetic one and a unary Evaluation (sequence) one.
	if code, _, ok := MatchBinary("hypot"); !ok || code != CodeHypotBinary {
		t.Fatalf("expected binary hypot to resolve to CodeHypotBinary, got %v ok=%v", code, ok)
	}
	if code, _, ok := MatchUnaryPrefix("hypot"); !ok || code != CodeHypotSeq {
		t.Fatalf("expected unary hypot to resolve to CodeHypotSeq, got %v ok=%v", code, ok)
	}
}

func TestLookupAndLexemeRoundTrip(t *testing.T) {
	row, ok := Lookup(CodeAdd)
	if !ok || row.Primary != "+" {
		t.Fatalf("expected CodeAdd to look up to \"+\", got %+v ok=%v", row, ok)
	}
	if got := Lexeme(CodeAdd); got != "+" {
		t.Fatalf("expected Lexeme(CodeAdd) == \"+\", got %q", got)
	}
	if _, ok := Lookup(Code(99999)); ok {
		t.Fatalf("expected an unknown code to miss")
	}
}

func TestSumAliasesTotalNotSigma(t *testing.T) {
	if code, _, ok := MatchUnaryPrefix("sum(1,2)"); !ok || code != CodeTotal {
		t.Fatalf("expected \"sum\" to alias CodeTotal, got %v ok=%v", code, ok)
	}
}
