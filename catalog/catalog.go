// Package catalog is the static operator table described in spec §4.1: one
// row per built-in operator, keyed by operator code, plus the
// longest-lexeme-first lookup tables the parser needs. It is grounded on
// the teacher's parser/token.go TokenType enum (a flat int enum with a
// switch-based String()) and on runtime/primitives.go's define(name, fn)
// table-building idiom, generalized here into a static []Row table.
package catalog

import (
	"unicode"
	"unicode/utf8"
)

// Category classifies what an operator's parent/child structural rules are.
type Category int

const (
	Logic Category = iota
	Relation
	Arithmetic
	Evaluation
	Invocation
	LargeScale
	UserFunction
)

func (c Category) String() string {
	switch c {
	case Logic:
		return "logic"
	case Relation:
		return "relation"
	case Arithmetic:
		return "arithmetic"
	case Evaluation:
		return "evaluation"
	case Invocation:
		return "invocation"
	case LargeScale:
		return "large-scale"
	case UserFunction:
		return "user-function"
	default:
		return "unknown"
	}
}

// Arity is the operand count an operator expects.
type Arity int

const (
	Unary Arity = iota
	Binary
)

// Code identifies a built-in operator row in the catalog.
type Code int

const (
	// Logic
	CodeAnd Code = iota
	CodeOr
	CodeNot

	// Relation
	CodeEq
	CodeNeq
	CodeApprox
	CodeLt
	CodeLe
	CodeGt
	CodeGe

	// Arithmetic — binary
	CodeAdd
	CodeSub
	CodeMul
	CodeDiv
	CodeMod
	CodePow
	CodeLog
	CodeRoot
	CodeHypotBinary
	CodePolar
	CodePermute
	CodeCombine

	// Arithmetic — unary prefix
	CodeNeg
	CodeAbs
	CodeCeil
	CodeFloor
	CodeTrunc
	CodeRound
	CodeRint
	CodeSqrt
	CodeLn
	CodeLg
	CodeArg
	CodeRealPart
	CodeImagPart
	CodeConj
	CodeGamma
	CodeToDeg
	CodeToRad
	CodeSin
	CodeAsin
	CodeCos
	CodeAcos
	CodeTan
	CodeAtan
	CodeCot
	CodeAcot
	CodeSec
	CodeAsec
	CodeCsc
	CodeAcsc
	CodePrime
	CodeComposite
	CodeNthPrime
	CodeNthComposite

	// Arithmetic — unary postfix
	CodeFactorial
	CodeDegree

	// Evaluation (sequence statistics; unary call-like)
	CodeCount
	CodeUniq
	CodeTotal
	CodeMean
	CodeGMean
	CodeQMean
	CodeHMean
	CodeVar
	CodeDev
	CodeMedian
	CodeMode
	CodeMax
	CodeMin
	CodeRange
	CodeHypotSeq
	CodeNorm
	CodeZNorm
	CodeGCD
	CodeLCM
	CodeDFT
	CodeIDFT
	CodeFFT
	CodeIFFT
	CodeZT

	// Invocation (higher-order sequence ops; unary call-like)
	CodeGen
	CodeHas
	CodePick
	CodeSel
	CodeSort
	CodeTrans
	CodeAcc
	CodeRand

	// LargeScale (unary call-like)
	CodeSigma
	CodePi
	CodeIntegral1
	CodeIntegral2
	CodeIntegral3
)

// Row is one catalog entry: the fixed attributes of a built-in operator.
type Row struct {
	Code       Code
	Category   Category
	Arity      Arity
	Precedence int
	Postfix    bool
	Primary    string
	Alias      string // empty if none
	Comment    string
}

var rows = []Row{
	{CodeAnd, Logic, Binary, 9, false, "&&", "&", "logical and"},
	{CodeOr, Logic, Binary, 9, false, "||", "", "logical or"},
	{CodeNot, Logic, Unary, 1, false, "!", "", "logical not"},

	{CodeEq, Relation, Binary, 8, false, "==", "=", "equality"},
	{CodeNeq, Relation, Binary, 8, false, "!=", "", "inequality"},
	{CodeApprox, Relation, Binary, 8, false, "~=", "", "approximate equality / regex match"},
	{CodeLt, Relation, Binary, 7, false, "<", "", "less than"},
	{CodeLe, Relation, Binary, 7, false, "<=", "", "less than or equal"},
	{CodeGt, Relation, Binary, 7, false, ">", "", "greater than"},
	{CodeGe, Relation, Binary, 7, false, ">=", "", "greater than or equal"},

	{CodeAdd, Arithmetic, Binary, 5, false, "+", "", "addition / string concatenation"},
	{CodeSub, Arithmetic, Binary, 5, false, "-", "", "subtraction"},
	{CodeMul, Arithmetic, Binary, 4, false, "*", "", "multiplication"},
	{CodeDiv, Arithmetic, Binary, 4, false, "/", "", "division"},
	{CodeMod, Arithmetic, Binary, 4, false, "%", "", "modulus"},
	{CodePow, Arithmetic, Binary, 2, false, "^", "", "power"},
	{CodeLog, Arithmetic, Binary, 2, false, "log", "", "logarithm: left base, right argument"},
	{CodeRoot, Arithmetic, Binary, 2, false, "root", "rt", "nth root: left radicand, right degree"},
	{CodeHypotBinary, Arithmetic, Binary, 6, false, "hypot", "", "two-argument hypotenuse"},
	{CodePolar, Arithmetic, Binary, 6, false, "∠", "pl", "polar to complex: left radius, right angle"},
	{CodePermute, Arithmetic, Binary, 6, false, "pm", "", "permutations: left n, right k"},
	{CodeCombine, Arithmetic, Binary, 6, false, "cb", "", "combinations: left n, right k"},

	{CodeNeg, Arithmetic, Unary, 3, false, "-", "", "unary minus"},
	{CodeAbs, Arithmetic, Unary, 1, false, "abs", "", "absolute value / modulus"},
	{CodeCeil, Arithmetic, Unary, 1, false, "ceil", "", "ceiling"},
	{CodeFloor, Arithmetic, Unary, 1, false, "floor", "", "floor"},
	{CodeTrunc, Arithmetic, Unary, 1, false, "trunc", "", "truncate toward zero"},
	{CodeRound, Arithmetic, Unary, 1, false, "round", "", "round to nearest"},
	{CodeRint, Arithmetic, Unary, 1, false, "rint", "", "round to nearest, ties to even"},
	{CodeSqrt, Arithmetic, Unary, 2, false, "sqrt", "√", "square root"},
	{CodeLn, Arithmetic, Unary, 1, false, "ln", "", "natural logarithm"},
	{CodeLg, Arithmetic, Unary, 1, false, "lg", "", "base-10 logarithm"},
	{CodeArg, Arithmetic, Unary, 1, false, "arg", "", "complex argument / phase"},
	{CodeRealPart, Arithmetic, Unary, 1, false, "real", "", "real part"},
	{CodeImagPart, Arithmetic, Unary, 1, false, "imag", "", "imaginary part"},
	{CodeConj, Arithmetic, Unary, 1, false, "conj", "", "complex conjugate"},
	{CodeGamma, Arithmetic, Unary, 1, false, "gamma", "Γ", "gamma function"},
	{CodeToDeg, Arithmetic, Unary, 1, false, "todeg", "", "radians to degrees"},
	{CodeToRad, Arithmetic, Unary, 1, false, "torad", "", "degrees to radians"},
	{CodeSin, Arithmetic, Unary, 1, false, "sin", "", "sine"},
	{CodeAsin, Arithmetic, Unary, 1, false, "asin", "", "arcsine"},
	{CodeCos, Arithmetic, Unary, 1, false, "cos", "", "cosine"},
	{CodeAcos, Arithmetic, Unary, 1, false, "acos", "", "arccosine"},
	{CodeTan, Arithmetic, Unary, 1, false, "tan", "", "tangent"},
	{CodeAtan, Arithmetic, Unary, 1, false, "atan", "", "arctangent"},
	{CodeCot, Arithmetic, Unary, 1, false, "cot", "", "cotangent"},
	{CodeAcot, Arithmetic, Unary, 1, false, "acot", "", "arccotangent"},
	{CodeSec, Arithmetic, Unary, 1, false, "sec", "", "secant"},
	{CodeAsec, Arithmetic, Unary, 1, false, "asec", "", "arcsecant"},
	{CodeCsc, Arithmetic, Unary, 1, false, "csc", "", "cosecant"},
	{CodeAcsc, Arithmetic, Unary, 1, false, "acsc", "", "arccosecant"},
	{CodePrime, Arithmetic, Unary, 1, false, "pri", "", "is-prime test"},
	{CodeComposite, Arithmetic, Unary, 1, false, "com", "", "is-composite test"},
	{CodeNthPrime, Arithmetic, Unary, 1, false, "npri", "", "nth prime (0-indexed)"},
	{CodeNthComposite, Arithmetic, Unary, 1, false, "ncom", "", "nth composite (0-indexed)"},

	{CodeFactorial, Arithmetic, Unary, 2, true, "~!", "", "factorial / gamma"},
	{CodeDegree, Arithmetic, Unary, 1, true, "°", "", "degrees to radians, postfix"},

	{CodeCount, Evaluation, Unary, 1, false, "cnt", "", "sequence length"},
	{CodeUniq, Evaluation, Unary, 1, false, "uniq", "", "stable dedup"},
	{CodeTotal, Evaluation, Unary, 1, false, "total", "sum", "sum of elements"},
	{CodeMean, Evaluation, Unary, 1, false, "mean", "", "arithmetic mean"},
	{CodeGMean, Evaluation, Unary, 1, false, "gmean", "", "geometric mean"},
	{CodeQMean, Evaluation, Unary, 1, false, "qmean", "", "quadratic mean"},
	{CodeHMean, Evaluation, Unary, 1, false, "hmean", "", "harmonic mean"},
	{CodeVar, Evaluation, Unary, 1, false, "var", "", "population variance"},
	{CodeDev, Evaluation, Unary, 1, false, "dev", "", "standard deviation"},
	{CodeMedian, Evaluation, Unary, 1, false, "med", "", "median"},
	{CodeMode, Evaluation, Unary, 1, false, "mode", "", "mode"},
	{CodeMax, Evaluation, Unary, 1, false, "max", "", "maximum"},
	{CodeMin, Evaluation, Unary, 1, false, "min", "", "minimum"},
	{CodeRange, Evaluation, Unary, 1, false, "range", "", "max minus min"},
	{CodeHypotSeq, Evaluation, Unary, 1, false, "hypot", "", "euclidean norm of a sequence"},
	{CodeNorm, Evaluation, Unary, 1, false, "norm", "", "linear rescale into [0,1]"},
	{CodeZNorm, Evaluation, Unary, 1, false, "znorm", "", "z-score normalisation"},
	{CodeGCD, Evaluation, Unary, 1, false, "gcd", "", "greatest common divisor"},
	{CodeLCM, Evaluation, Unary, 1, false, "lcm", "", "least common multiple"},
	{CodeDFT, Evaluation, Unary, 1, false, "dft", "", "discrete Fourier transform"},
	{CodeIDFT, Evaluation, Unary, 1, false, "idft", "", "inverse discrete Fourier transform"},
	{CodeFFT, Evaluation, Unary, 1, false, "fft", "", "fast Fourier transform"},
	{CodeIFFT, Evaluation, Unary, 1, false, "ifft", "", "inverse fast Fourier transform"},
	{CodeZT, Evaluation, Unary, 1, false, "zt", "", "z-transform"},

	{CodeGen, Invocation, Unary, 1, false, "gen", "", "generate a sequence"},
	{CodeHas, Invocation, Unary, 1, false, "has", "", "membership test"},
	{CodePick, Invocation, Unary, 1, false, "pick", "", "pick one element"},
	{CodeSel, Invocation, Unary, 1, false, "sel", "", "select (filter)"},
	{CodeSort, Invocation, Unary, 1, false, "sort", "", "sort"},
	{CodeTrans, Invocation, Unary, 1, false, "trans", "", "transform (map)"},
	{CodeAcc, Invocation, Unary, 1, false, "acc", "", "accumulate (fold)"},
	{CodeRand, Invocation, Unary, 1, false, "rand", "", "random real"},

	{CodeSigma, LargeScale, Unary, 1, false, "Σ", "", "finite summation over an integer range"},
	{CodePi, LargeScale, Unary, 1, false, "Π", "prod", "finite product over an integer range"},
	{CodeIntegral1, LargeScale, Unary, 1, false, "∫", "int", "one-dimensional numeric integration"},
	{CodeIntegral2, LargeScale, Unary, 1, false, "∫∫", "int2", "two-dimensional numeric integration"},
	{CodeIntegral3, LargeScale, Unary, 1, false, "∫∫∫", "int3", "three-dimensional numeric integration"},
}

var byCode = func() map[Code]Row {
	m := make(map[Code]Row, len(rows))
	for _, r := range rows {
		m[r.Code] = r
	}
	return m
}()

// Lookup returns the Row for a code.
func Lookup(code Code) (Row, bool) {
	r, ok := byCode[code]
	return r, ok
}

// lexemeEntry is one (lexeme, code) pair used by a longest-match table.
type lexemeEntry struct {
	lexeme string
	code   Code
}

// buildLexemeTable returns the lexeme->code entries for the given arity and
// postfix flag, sorted longest-lexeme-first so that e.g. "<=" is tried
// before "<". This is the "two derived maps" §4.1 asks the parser to
// consult.
func buildLexemeTable(arity Arity, postfix bool) []lexemeEntry {
	var entries []lexemeEntry
	for _, r := range rows {
		if r.Arity != arity || r.Postfix != postfix {
			continue
		}
		entries = append(entries, lexemeEntry{r.Primary, r.Code})
		if r.Alias != "" {
			entries = append(entries, lexemeEntry{r.Alias, r.Code})
		}
	}
	// Insertion sort by descending lexeme length; table is small and
	// built once, so clarity wins over an imported sort for one pass.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && len(entries[j].lexeme) > len(entries[j-1].lexeme); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries
}

var (
	binaryLexemes        = buildLexemeTable(Binary, false)
	unaryPrefixLexemes   = buildLexemeTable(Unary, false)
	unaryPostfixLexemes  = buildLexemeTable(Unary, true)
)

// MatchBinary finds the longest binary-operator lexeme that is a prefix of
// s, returning its code and length. ok is false if none match.
func MatchBinary(s string) (Code, int, bool) { return match(binaryLexemes, s) }

// MatchUnaryPrefix finds the longest non-postfix unary-operator lexeme that
// is a prefix of s.
func MatchUnaryPrefix(s string) (Code, int, bool) { return match(unaryPrefixLexemes, s) }

// MatchUnaryPostfix finds the longest postfix unary-operator lexeme that is
// a prefix of s.
func MatchUnaryPostfix(s string) (Code, int, bool) { return match(unaryPostfixLexemes, s) }

// isWordLexeme reports whether lexeme is spelled entirely in ASCII letters
// ("sin", "log", "hypot"), as opposed to a symbol lexeme ("+", "Σ", "~!").
// Word lexemes need a trailing word-boundary check so "ceil" doesn't match
// the first four bytes of an identifier like "ceiling".
func isWordLexeme(lexeme string) bool {
	for _, r := range lexeme {
		if r >= utf8.RuneSelf || !unicode.IsLetter(r) {
			return false
		}
	}
	return len(lexeme) > 0
}

func match(entries []lexemeEntry, s string) (Code, int, bool) {
	for _, e := range entries {
		if len(e.lexeme) > len(s) || s[:len(e.lexeme)] != e.lexeme {
			continue
		}
		if isWordLexeme(e.lexeme) {
			rest := s[len(e.lexeme):]
			if len(rest) > 0 {
				r, _ := utf8.DecodeRuneInString(rest)
				if r < utf8.RuneSelf && unicode.IsLetter(r) {
					continue // not a word boundary, try a shorter entry
				}
			}
		}
		return e.code, len(e.lexeme), true
	}
	return 0, 0, false
}

// Lexeme returns an operator's canonical (primary) lexeme, used by the
// renderers.
func Lexeme(code Code) string {
	r, ok := byCode[code]
	if !ok {
		return ""
	}
	return r.Primary
}
