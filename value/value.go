// Package value implements the runtime tagged value returned by
// evaluation: invalid, boolean, real, complex, string, or a sequence of
// values. It mirrors lang.Value from the teacher interpreter — a small
// struct carrying a discriminant plus an untyped payload — generalized
// from Gisp's Scheme values to this engine's numeric/logic value set.
package value

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Kind enumerates the value categories a Value may hold.
type Kind int

const (
	Invalid Kind = iota
	Boolean
	Real
	Complex
	String
	Sequence
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Boolean:
		return "boolean"
	case Real:
		return "real"
	case Complex:
		return "complex"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is the tagged runtime value. The zero Value is Inv().
type Value struct {
	kind Kind
	b    bool
	re   float64
	im   float64
	s    string
	seq  []Value
}

// Inv returns the invalid value.
func Inv() Value { return Value{kind: Invalid} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

// Num constructs a real value.
func Num(r float64) Value { return Value{kind: Real, re: r} }

// Cplx constructs a complex value.
func Cplx(re, im float64) Value { return Value{kind: Complex, re: re, im: im} }

// Str constructs a string value.
func Str(s string) Value { return Value{kind: String, s: s} }

// Seq constructs a sequence value from the given elements (copied).
func Seq(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: Sequence, seq: cp}
}

// Kind reports the value's discriminant.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsInvalid() bool  { return v.kind == Invalid }
func (v Value) IsBoolean() bool  { return v.kind == Boolean }
func (v Value) IsReal() bool     { return v.kind == Real }
func (v Value) IsComplex() bool  { return v.kind == Complex }
func (v Value) IsString() bool   { return v.kind == String }
func (v Value) IsSequence() bool { return v.kind == Sequence }

// BoolValue returns the raw boolean payload (only meaningful for Boolean).
func (v Value) BoolValue() bool { return v.b }

// RealValue returns the raw real payload (only meaningful for Real).
func (v Value) RealValue() float64 { return v.re }

// ComplexParts returns the raw complex payload (only meaningful for Complex).
func (v Value) ComplexParts() (float64, float64) { return v.re, v.im }

// Complex128 returns the Complex payload as a complex128.
func (v Value) Complex128() complex128 { return complex(v.re, v.im) }

// StringValue returns the raw string payload (only meaningful for String).
func (v Value) StringValue() string { return v.s }

// SequenceValue returns the raw sequence payload (only meaningful for Sequence).
// The returned slice is not a defensive copy; callers must not mutate it.
func (v Value) SequenceValue() []Value { return v.seq }

// Collapse demotes a zero-imaginary Complex to Real, per §4.4: "After
// computing the top-level result, if the value is a Complex with zero
// imaginary part, collapse to Real."
func (v Value) Collapse() Value {
	if v.kind == Complex && v.im == 0 {
		return Num(v.re)
	}
	return v
}

// ToBoolean coerces per §3: real non-zero, complex both-parts-non-zero,
// string non-empty, sequence never, invalid false.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case Boolean:
		return v.b
	case Real:
		return v.re != 0
	case Complex:
		return v.re != 0 && v.im != 0
	case String:
		return v.s != ""
	default:
		return false
	}
}

// ToReal coerces per §3: boolean 0/1, complex real part, string
// parsed-or-zero, sequence/invalid zero.
func (v Value) ToReal() float64 {
	switch v.kind {
	case Boolean:
		if v.b {
			return 1
		}
		return 0
	case Real:
		return v.re
	case Complex:
		return v.re
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ToComplex coerces per §3: real promotes to (r,0), everything else via ToReal.
func (v Value) ToComplex() (float64, float64) {
	if v.kind == Complex {
		return v.re, v.im
	}
	if v.kind == Real {
		return v.re, 0
	}
	return v.ToReal(), 0
}

// ToString renders a bare textual form (no quoting).
func (v Value) ToString() string {
	switch v.kind {
	case Invalid:
		return "invalid"
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	case Real:
		return formatReal(v.re)
	case Complex:
		return formatComplex(v.re, v.im)
	case String:
		return v.s
	case Sequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.ToText()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return ""
	}
}

// ToText renders the quoted/bracketed form used when a Value appears nested
// inside another Value's text (strings quoted, sequences parenthesised).
func (v Value) ToText() string {
	switch v.kind {
	case String:
		return strconv.Quote(v.s)
	default:
		return v.ToString()
	}
}

func formatReal(r float64) string {
	if math.IsInf(r, 1) {
		return "inf"
	}
	if math.IsInf(r, -1) {
		return "-inf"
	}
	if math.IsNaN(r) {
		return "nan"
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

func formatComplex(re, im float64) string {
	switch {
	case im == 0:
		return formatReal(re)
	case re == 0:
		return formatReal(im) + "i"
	case im < 0:
		return fmt.Sprintf("%s-%si", formatReal(re), formatReal(-im))
	default:
		return fmt.Sprintf("%s+%si", formatReal(re), formatReal(im))
	}
}

// Equal reports structural equality. Invalid never equals anything,
// including another Invalid — mirroring the NaN-like propagation described
// in §7 ("most binary operators receiving Invalid propagate Invalid").
func Equal(a, b Value) bool {
	if a.kind == Invalid || b.kind == Invalid {
		return false
	}
	if a.kind != b.kind {
		// Real and Complex with zero imaginary compare equal across kinds.
		if a.kind == Real && b.kind == Complex {
			return complex(a.re, 0) == complex(b.re, b.im)
		}
		if a.kind == Complex && b.kind == Real {
			return complex(a.re, a.im) == complex(b.re, 0)
		}
		return false
	}
	switch a.kind {
	case Boolean:
		return a.b == b.b
	case Real:
		return a.re == b.re
	case Complex:
		return cmplx.Abs(a.Complex128()-b.Complex128()) == 0
	case String:
		return a.s == b.s
	case Sequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a hash suitable for set/map keys (used by uniq/dedup),
// consistent with Equal for non-Invalid values.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	// Equal treats -0 and +0 as the same number, so hash both as +0.
	re, im := v.re, v.im
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}
	switch v.kind {
	case Boolean:
		if v.b {
			h.Write([]byte{1, 'b'})
		} else {
			h.Write([]byte{0, 'b'})
		}
	case Real:
		fmt.Fprintf(h, "r:%v", re)
	case Complex:
		if im == 0 {
			fmt.Fprintf(h, "r:%v", re)
		} else {
			fmt.Fprintf(h, "c:%v:%v", re, im)
		}
	case String:
		fmt.Fprintf(h, "s:%s", v.s)
	case Sequence:
		h.Write([]byte("q:"))
		for _, e := range v.seq {
			fmt.Fprintf(h, "%d", Hash(e))
			h.Write([]byte{';'})
		}
	default:
		h.Write([]byte("invalid"))
	}
	return h.Sum64()
}
