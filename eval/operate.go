package eval

import (
	"math"
	"math/cmplx"
	"regexp"
	"strings"

	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// operate implements §4.4.3's type-directed scalar dispatch. left/right are
// already-evaluated operand values; for a non-postfix unary left is
// value.Inv() (unused), for a postfix unary right is value.Inv() (unused).
func operate(left value.Value, code catalog.Code, right value.Value, postfix bool) value.Value {
	row, ok := catalog.Lookup(code)
	if !ok {
		return value.Inv()
	}

	switch row.Category {
	case catalog.Logic:
		return operateLogic(code, left, right)
	case catalog.Evaluation:
		return operateSequence(code, right)
	case catalog.Relation, catalog.Arithmetic:
		return operateValue(code, row, left, right, postfix)
	default:
		return value.Inv()
	}
}

func operateLogic(code catalog.Code, left, right value.Value) value.Value {
	switch code {
	case catalog.CodeAnd:
		return value.Bool(left.ToBoolean() && right.ToBoolean())
	case catalog.CodeOr:
		return value.Bool(left.ToBoolean() || right.ToBoolean())
	case catalog.CodeNot:
		return value.Bool(!right.ToBoolean())
	default:
		return value.Inv()
	}
}

// operateValue implements the Relation/Arithmetic matrix: Real×Real,
// Real×Complex (promote), Complex×Complex, String×String, and the
// synthetic-zero binding for unary operators.
func operateValue(code catalog.Code, row catalog.Row, left, right value.Value, postfix bool) value.Value {
	if row.Arity == catalog.Unary {
		if postfix {
			right = zeroOf(left)
		} else {
			left = zeroOf(right)
		}
	}

	if left.IsInvalid() || right.IsInvalid() {
		return value.Inv()
	}

	if left.IsString() && right.IsString() {
		return operateString(code, left, right)
	}
	if left.IsString() || right.IsString() {
		return value.Inv()
	}

	if left.IsComplex() || right.IsComplex() {
		lre, lim := left.ToComplex()
		rre, rim := right.ToComplex()
		return operateComplex(code, complex(lre, lim), complex(rre, rim))
	}

	return operateReal(code, left.ToReal(), right.ToReal())
}

// zeroOf returns a same-kind zero used as the synthetic missing operand of
// a unary operator, per §4.4.3: "bind a zero of the [other] operand type".
func zeroOf(v value.Value) value.Value {
	if v.IsComplex() {
		return value.Cplx(0, 0)
	}
	return value.Num(0)
}

const epsilon = 1e-9

// isZahlen reports whether y is within EPSILON of an integer, per §4.4.3's
// trig-singularity test.
func isZahlen(y float64) bool {
	return math.Abs(y-math.Round(y)) < epsilon
}

func operateReal(code catalog.Code, l, r float64) value.Value {
	switch code {
	case catalog.CodeEq:
		return value.Bool(l == r)
	case catalog.CodeNeq:
		return value.Bool(l != r)
	case catalog.CodeApprox:
		return value.Bool(math.Abs(l-r) < epsilon)
	case catalog.CodeLt:
		return value.Bool(l < r)
	case catalog.CodeLe:
		return value.Bool(l <= r)
	case catalog.CodeGt:
		return value.Bool(l > r)
	case catalog.CodeGe:
		return value.Bool(l >= r)

	case catalog.CodeAdd:
		return value.Num(l + r)
	case catalog.CodeSub:
		return value.Num(l - r)
	case catalog.CodeMul:
		return value.Num(l * r)
	case catalog.CodeDiv:
		if r == 0 {
			if l == 0 {
				return value.Inv()
			}
			return value.Num(math.Inf(sign(l)))
		}
		return value.Num(l / r)
	case catalog.CodeMod:
		if r == 0 {
			return value.Inv()
		}
		return value.Num(math.Mod(l, r))
	case catalog.CodePow:
		if l < 0 && r != math.Trunc(r) {
			return operateComplex(code, complex(l, 0), complex(r, 0))
		}
		return value.Num(math.Pow(l, r))
	case catalog.CodeLog:
		if l <= 0 || l == 1 || r <= 0 {
			return operateComplex(code, complex(l, 0), complex(r, 0))
		}
		return value.Num(math.Log(r) / math.Log(l))
	case catalog.CodeRoot:
		if l < 0 && math.Mod(r, 2) == 0 {
			return operateComplex(code, complex(l, 0), complex(r, 0))
		}
		if l < 0 {
			return value.Num(-math.Pow(-l, 1/r))
		}
		return value.Num(math.Pow(l, 1/r))
	case catalog.CodeHypotBinary:
		return value.Num(math.Hypot(l, r))
	case catalog.CodePolar:
		return value.Cplx(l*math.Cos(r), l*math.Sin(r))
	case catalog.CodePermute:
		return permute(l, r)
	case catalog.CodeCombine:
		return combine(l, r)

	case catalog.CodeNeg:
		return value.Num(-r)
	case catalog.CodeAbs:
		return value.Num(math.Abs(r))
	case catalog.CodeCeil:
		return value.Num(math.Ceil(r))
	case catalog.CodeFloor:
		return value.Num(math.Floor(r))
	case catalog.CodeTrunc:
		return value.Num(math.Trunc(r))
	case catalog.CodeRound:
		return value.Num(math.Round(r))
	case catalog.CodeRint:
		return value.Num(math.RoundToEven(r))
	case catalog.CodeSqrt:
		if r < 0 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Sqrt(r))
	case catalog.CodeLn:
		if r <= 0 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Log(r))
	case catalog.CodeLg:
		if r <= 0 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Log10(r))
	case catalog.CodeArg:
		if r < 0 {
			return value.Num(math.Pi)
		}
		return value.Num(0)
	case catalog.CodeRealPart:
		return value.Num(r)
	case catalog.CodeImagPart:
		return value.Num(0)
	case catalog.CodeConj:
		return value.Num(r)
	case catalog.CodeGamma:
		return value.Num(math.Gamma(r))
	case catalog.CodeToDeg:
		return value.Num(r * 180 / math.Pi)
	case catalog.CodeToRad:
		return value.Num(r * math.Pi / 180)

	case catalog.CodeSin:
		return value.Num(math.Sin(r))
	case catalog.CodeAsin:
		if r < -1 || r > 1 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Asin(r))
	case catalog.CodeCos:
		return value.Num(math.Cos(r))
	case catalog.CodeAcos:
		if r < -1 || r > 1 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Acos(r))
	case catalog.CodeTan:
		if isZahlen(r/math.Pi - 0.5) {
			return value.Num(math.Inf(1))
		}
		return value.Num(math.Tan(r))
	case catalog.CodeAtan:
		return value.Num(math.Atan(r))
	case catalog.CodeCot:
		if isZahlen(r / math.Pi) {
			return value.Num(math.Inf(1))
		}
		return value.Num(1 / math.Tan(r))
	case catalog.CodeAcot:
		return value.Num(math.Atan(1 / r))
	case catalog.CodeSec:
		if isZahlen(r/math.Pi - 0.5) {
			return value.Num(math.Inf(1))
		}
		return value.Num(1 / math.Cos(r))
	case catalog.CodeAsec:
		if r > -1 && r < 1 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Acos(1 / r))
	case catalog.CodeCsc:
		if isZahlen(r / math.Pi) {
			return value.Num(math.Inf(1))
		}
		return value.Num(1 / math.Sin(r))
	case catalog.CodeAcsc:
		if r > -1 && r < 1 {
			return operateComplex(code, 0, complex(r, 0))
		}
		return value.Num(math.Asin(1 / r))

	case catalog.CodePrime:
		return value.Bool(isPrime(int64(math.Trunc(r))))
	case catalog.CodeComposite:
		n := int64(math.Trunc(r))
		return value.Bool(n > 1 && !isPrime(n))
	case catalog.CodeNthPrime:
		return value.Num(float64(nthPrime(int64(math.Trunc(r)))))
	case catalog.CodeNthComposite:
		return value.Num(float64(nthComposite(int64(math.Trunc(r)))))

	case catalog.CodeFactorial:
		if l < 0 {
			return value.Inv()
		}
		return value.Num(math.Gamma(l + 1))
	case catalog.CodeDegree:
		return value.Num(l * math.Pi / 180)

	default:
		return value.Inv()
	}
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

func permute(n, k float64) value.Value {
	if n < 0 || k < 0 {
		return value.Inv()
	}
	if k > n {
		n, k = k, n
	}
	return value.Num(math.Gamma(n+1) / math.Gamma(n-k+1))
}

func combine(n, k float64) value.Value {
	if n < 0 || k < 0 {
		return value.Inv()
	}
	if k > n {
		n, k = k, n
	}
	return value.Num(math.Gamma(n+1) / (math.Gamma(k+1) * math.Gamma(n-k+1)))
}

func operateComplex(code catalog.Code, l, r complex128) value.Value {
	switch code {
	case catalog.CodeEq:
		return value.Bool(l == r)
	case catalog.CodeNeq:
		return value.Bool(l != r)
	case catalog.CodeApprox:
		return value.Bool(cmplx.Abs(l-r) < epsilon)

	case catalog.CodeAdd:
		return fromComplex(l + r)
	case catalog.CodeSub:
		return fromComplex(l - r)
	case catalog.CodeMul:
		return fromComplex(l * r)
	case catalog.CodeDiv:
		if r == 0 {
			return value.Inv()
		}
		return fromComplex(l / r)
	case catalog.CodePow:
		return fromComplex(cmplx.Pow(l, r))
	case catalog.CodeLog:
		if l == 0 || r == 0 {
			return value.Inv()
		}
		return fromComplex(cmplx.Log(r) / cmplx.Log(l))
	case catalog.CodeRoot:
		if r == 0 {
			return value.Inv()
		}
		return fromComplex(cmplx.Pow(l, 1/r))

	case catalog.CodeNeg:
		return fromComplex(-r)
	case catalog.CodeAbs:
		return value.Num(cmplx.Abs(r))
	case catalog.CodeArg:
		return value.Num(cmplx.Phase(r))
	case catalog.CodeRealPart:
		return value.Num(real(r))
	case catalog.CodeImagPart:
		return value.Num(imag(r))
	case catalog.CodeConj:
		return fromComplex(cmplx.Conj(r))
	case catalog.CodeSqrt:
		return fromComplex(cmplx.Sqrt(r))
	case catalog.CodeLn:
		return fromComplex(cmplx.Log(r))
	case catalog.CodeLg:
		return fromComplex(cmplx.Log10(r))

	case catalog.CodeSin:
		return fromComplex(cmplx.Sin(r))
	case catalog.CodeAsin:
		return fromComplex(cmplx.Asin(r))
	case catalog.CodeCos:
		return fromComplex(cmplx.Cos(r))
	case catalog.CodeAcos:
		return fromComplex(cmplx.Acos(r))
	case catalog.CodeTan:
		return fromComplex(cmplx.Tan(r))
	case catalog.CodeAtan:
		return fromComplex(cmplx.Atan(r))
	case catalog.CodeCot:
		return fromComplex(1 / cmplx.Tan(r))
	case catalog.CodeAcot:
		return fromComplex(cmplx.Atan(1 / r))
	case catalog.CodeSec:
		return fromComplex(1 / cmplx.Cos(r))
	case catalog.CodeAsec:
		return fromComplex(cmplx.Acos(1 / r))
	case catalog.CodeCsc:
		return fromComplex(1 / cmplx.Sin(r))
	case catalog.CodeAcsc:
		return fromComplex(cmplx.Asin(1 / r))

	default:
		return value.Inv()
	}
}

func fromComplex(c complex128) value.Value {
	return value.Cplx(real(c), imag(c))
}

func operateString(code catalog.Code, left, right value.Value) value.Value {
	l, r := left.StringValue(), right.StringValue()
	switch code {
	case catalog.CodeAdd:
		return value.Str(l + r)
	case catalog.CodeEq:
		return value.Bool(l == r)
	case catalog.CodeNeq:
		return value.Bool(l != r)
	case catalog.CodeApprox:
		re, err := regexp.Compile(r)
		if err != nil {
			return value.Inv()
		}
		return value.Bool(re.MatchString(l))
	case catalog.CodeLt:
		return value.Bool(strings.Compare(l, r) < 0)
	case catalog.CodeLe:
		return value.Bool(strings.Compare(l, r) <= 0)
	case catalog.CodeGt:
		return value.Bool(strings.Compare(l, r) > 0)
	case catalog.CodeGe:
		return value.Bool(strings.Compare(l, r) >= 0)
	default:
		return value.Inv()
	}
}
