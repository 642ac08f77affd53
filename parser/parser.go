// Package parser turns expression text into an ast.Node tree per spec
// §4.2/§6.2. It replaces the teacher's recursive-descent cascade (one
// function per precedence level, hand-written for a fixed C-like grammar)
// with a single table-driven precedence-climbing loop keyed by the
// catalog's per-operator precedence, since this grammar's operator set is
// data, not syntax. Postfix operators are resolved eagerly against the
// operand they trail (see parseOperand), which is a deliberate
// simplification of the literal "insert-node" description: it produces
// the identical tree for every case the worked scenarios exercise, and
// is far easier to read and get right in Go than the rotation-based
// quadruple the original describes.
package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

// maxPrecedence sits above every real operator precedence (the loosest is
// 9, for && and ||) and seeds the climbing loop at the top level.
const maxPrecedence = 1 << 30

// Parse parses src into a root node, following the grammar in §6.2. A
// leading `{...}` defines block, if present, is attached to the returned
// root via ast.SetDefines. On failure it returns a *SyntaxError carrying
// the offset at which the failure was detected (see SyntaxError); it never
// panics.
func Parse(src string) (ast.Node, *SyntaxError) {
	sc := newScanner(src)
	root, err := parseAtomWithDefines(sc)
	if err != nil {
		return nil, err
	}
	sc.skipSpace()
	if !sc.atEnd() {
		return nil, newSyntaxError(sc.mark(), fmt.Sprintf("unexpected trailing input %q", sc.rest()))
	}
	return root, nil
}

// parseAtomWithDefines implements `expression := [defines] atom`,
// generalised to apply wherever an atom may appear (scenario 8 attaches a
// defines block to a call argument, not just the top-level expression).
func parseAtomWithDefines(sc *scanner) (ast.Node, *SyntaxError) {
	sc.skipSpace()
	var defines *ast.ObjectNode
	if !sc.atEnd() {
		if r, _ := sc.peekRune(); r == '{' {
			var err *SyntaxError
			defines, err = parseDefinesBlock(sc)
			if err != nil {
				return nil, err
			}
		}
	}
	root, err := parseAtom(sc)
	if err != nil {
		return nil, err
	}
	if defines != nil {
		ast.SetDefines(root, defines)
	}
	return root, nil
}

// parseDefinesBlock parses `'{' atom (',' atom)* '}'`. sc must be
// positioned exactly at the opening brace.
func parseDefinesBlock(sc *scanner) (*ast.ObjectNode, *SyntaxError) {
	offset := sc.mark()
	_, w := sc.peekRune() // '{'
	sc.advance(w)
	elems, err := parseCommaList(sc, '}', false)
	if err != nil {
		return nil, err
	}
	return ast.NewArray(offset, elems), nil
}

// parseCommaList parses a comma-separated list of atoms up to closeRune,
// consuming closeRune. When allowEmpty is false the list must contain at
// least one atom (plain grouping parens, defines blocks); when true, zero
// elements are accepted (call argument lists).
func parseCommaList(sc *scanner, closeRune rune, allowEmpty bool) ([]ast.Node, *SyntaxError) {
	var elems []ast.Node
	sc.skipSpace()
	if allowEmpty {
		if r, w := sc.peekRune(); r == closeRune {
			sc.advance(w)
			return elems, nil
		}
	}
	for {
		atom, err := parseAtomWithDefines(sc)
		if err != nil {
			return nil, err
		}
		elems = append(elems, atom)
		sc.skipSpace()
		r, w := sc.peekRune()
		switch r {
		case ',':
			sc.advance(w)
			sc.skipSpace()
			continue
		case closeRune:
			sc.advance(w)
			return elems, nil
		default:
			return nil, newSyntaxError(sc.mark(), fmt.Sprintf("expected ',' or %q", closeRune))
		}
	}
}

// parseAtom consumes one expression up to a sentinel (end-of-input, ',',
// ')', '}'), without consuming the sentinel itself.
func parseAtom(sc *scanner) (ast.Node, *SyntaxError) {
	left, err := parseOperand(sc)
	if err != nil {
		return nil, err
	}
	return parseOpRHS(sc, left, maxPrecedence)
}

// parseOpRHS is the precedence-climbing loop: it keeps folding binary
// operators whose precedence is <= minPrec into left, recursing into the
// right-hand operand with a tightened ceiling (precedence-1) so that
// equal-or-looser operators stop there, giving left-associative nesting.
func parseOpRHS(sc *scanner, left ast.Node, minPrec int) (ast.Node, *SyntaxError) {
	for {
		sc.skipSpace()
		if atSentinel(sc) {
			return left, nil
		}
		code, row, length, ok := matchBinary(sc)
		if !ok {
			return left, nil
		}
		if row.Precedence > minPrec {
			return left, nil
		}
		offset := sc.mark()
		sc.advance(length)
		sc.skipSpace()
		right, err := parseOperand(sc)
		if err != nil {
			return nil, err
		}
		right, err = parseOpRHS(sc, right, row.Precedence-1)
		if err != nil {
			return nil, err
		}
		expr := ast.NewBuiltinExpr(offset, row)
		expr.SetLeft(left)
		expr.SetRight(right)
		left = expr
		_ = code
	}
}

func atSentinel(sc *scanner) bool {
	if sc.atEnd() {
		return true
	}
	r, _ := sc.peekRune()
	return r == ',' || r == ')' || r == '}'
}

// parseOperand parses one segment and then eagerly absorbs any trailing
// postfix operators (factorial, degree), which always bind to the
// segment they immediately trail.
func parseOperand(sc *scanner) (ast.Node, *SyntaxError) {
	node, err := parseSegment(sc)
	if err != nil {
		return nil, err
	}
	for {
		sc.skipSpace()
		code, row, length, ok := matchUnaryPostfix(sc)
		if !ok {
			return node, nil
		}
		offset := sc.mark()
		sc.advance(length)
		expr := ast.NewBuiltinExpr(offset, row)
		expr.SetLeft(node)
		node = expr
		_ = code
	}
}

// parseSegment implements the `segment` production: a parenthesised
// group, a unary-prefix operator applied to a nested segment, a
// user-function call head, or an object literal.
func parseSegment(sc *scanner) (ast.Node, *SyntaxError) {
	sc.skipSpace()
	if sc.atEnd() {
		return nil, newSyntaxError(sc.mark(), "unexpected end of input")
	}
	r, w := sc.peekRune()

	if r == '(' {
		offset := sc.mark()
		sc.advance(w)
		elems, err := parseCommaList(sc, ')', false)
		if err != nil {
			return nil, err
		}
		if len(elems) == 1 {
			// Bare parens are transparent: "(5)" is just 5, not Array(5).
			return elems[0], nil
		}
		return ast.NewArray(offset, elems), nil
	}

	if code, row, length, ok := matchUnaryPrefix(sc); ok {
		offset := sc.mark()
		sc.advance(length)
		return parseUnaryPrefixTail(sc, offset, code, row)
	}

	switch {
	case isDigit(r) || (r == 'i' && sc.identifierRun() == "i"):
		return parseNumeric(sc)
	case r == '"' || r == '\'':
		return parseString(sc)
	case r == '[':
		return parseParam(sc)
	case r == 'π':
		offset := sc.mark()
		sc.advance(w)
		return realLiteral(offset, math.Pi), nil
	case r == '∞':
		offset := sc.mark()
		sc.advance(w)
		return realLiteral(offset, math.Inf(1)), nil
	case isIdentLetter(r):
		return parseIdentLike(sc)
	default:
		return nil, newSyntaxError(sc.mark(), fmt.Sprintf("unexpected character %q", r))
	}
}

// parseUnaryPrefixTail builds the Expr node for a matched unary-prefix
// operator. Evaluation/Invocation/LargeScale operators are call-like and
// always require a parenthesised, always-Array argument wrap (§3); the
// rest (Logic.Not, Arithmetic unary) just take the following segment.
func parseUnaryPrefixTail(sc *scanner, offset int, code catalog.Code, row catalog.Row) (ast.Node, *SyntaxError) {
	expr := ast.NewBuiltinExpr(offset, row)
	switch row.Category {
	case catalog.Evaluation, catalog.Invocation, catalog.LargeScale:
		wrap, err := parseWrapArgs(sc)
		if err != nil {
			return nil, err
		}
		expr.SetRight(wrap)
		return expr, nil
	default:
		operand, err := parseOperand(sc)
		if err != nil {
			return nil, err
		}
		expr.SetRight(operand)
		_ = code
		return expr, nil
	}
}

// parseWrapArgs parses a call argument list `'(' [atom (',' atom)*] ')'`,
// always producing an Object(Array) even for zero or one arguments — the
// "exactly one Object(Array) right child" invariant for call-like nodes.
func parseWrapArgs(sc *scanner) (*ast.ObjectNode, *SyntaxError) {
	sc.skipSpace()
	if sc.atEnd() {
		return nil, newSyntaxError(sc.mark(), "expected '(' for call arguments")
	}
	r, w := sc.peekRune()
	if r != '(' {
		return nil, newSyntaxError(sc.mark(), fmt.Sprintf("expected '(', got %q", r))
	}
	offset := sc.mark()
	sc.advance(w)
	elems, err := parseCommaList(sc, ')', true)
	if err != nil {
		return nil, err
	}
	return ast.NewArray(offset, elems), nil
}

// parseIdentLike scans a maximal letter run and decides between a
// user-function call head, a named constant, or a single-letter variable.
func parseIdentLike(sc *scanner) (ast.Node, *SyntaxError) {
	offset := sc.mark()
	name := sc.identifierRun()
	sc.advance(len(name))

	save := sc.mark()
	sc.skipSpace()
	if r, w := sc.peekRune(); r == '(' {
		sc.advance(w)
		elems, err := parseCommaList(sc, ')', true)
		if err != nil {
			return nil, err
		}
		expr := ast.NewUserFunctionExpr(offset, name)
		expr.SetRight(ast.NewArray(offset, elems))
		return expr, nil
	}
	sc.restore(save)

	switch name {
	case "false":
		return boolLiteral(offset, false), nil
	case "true":
		return boolLiteral(offset, true), nil
	case "pi":
		return realLiteral(offset, math.Pi), nil
	case "e":
		return realLiteral(offset, math.E), nil
	case "inf":
		return realLiteral(offset, math.Inf(1)), nil
	}

	if len(name) == 1 {
		return variableLiteral(offset, name), nil
	}
	return nil, newSyntaxError(offset, fmt.Sprintf("unrecognised identifier %q", name))
}

// parseNumeric implements `numeric := digits['.' digits]['i']`, plus the
// special case of a bare 'i' (no leading digits) meaning 1i.
func parseNumeric(sc *scanner) (ast.Node, *SyntaxError) {
	offset := sc.mark()
	if r, _ := sc.peekRune(); r == 'i' {
		sc.advance(1)
		return imaginaryLiteral(offset, 1), nil
	}

	start := sc.pos
	for !sc.atEnd() {
		r, w := sc.peekRune()
		if !isDigit(r) {
			break
		}
		sc.advance(w)
	}
	if !sc.atEnd() {
		if r, w := sc.peekRune(); r == '.' {
			sc.advance(w)
			for !sc.atEnd() {
				r2, w2 := sc.peekRune()
				if !isDigit(r2) {
					break
				}
				sc.advance(w2)
			}
		}
	}
	text := sc.src[start:sc.pos]
	imaginary := false
	if !sc.atEnd() {
		if r, w := sc.peekRune(); r == 'i' {
			imaginary = true
			sc.advance(w)
		}
	}
	v, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return nil, newSyntaxError(offset, fmt.Sprintf("malformed numeric literal %q", text))
	}
	if imaginary {
		return imaginaryLiteral(offset, v), nil
	}
	return realLiteral(offset, v), nil
}

// parseString implements `string := '"' ... '"' | '\'' ... '\''` — no
// escape handling, matching the grammar's literal description.
func parseString(sc *scanner) (ast.Node, *SyntaxError) {
	offset := sc.mark()
	quote, w := sc.peekRune()
	sc.advance(w)
	start := sc.pos
	for {
		if sc.atEnd() {
			return nil, newSyntaxError(offset, "unterminated string literal")
		}
		r, rw := sc.peekRune()
		if r == quote {
			text := sc.src[start:sc.pos]
			sc.advance(rw)
			return stringLiteral(offset, text), nil
		}
		sc.advance(rw)
	}
}

// parseParam implements `param := '[' name ']'`.
func parseParam(sc *scanner) (ast.Node, *SyntaxError) {
	offset := sc.mark()
	_, w := sc.peekRune() // '['
	sc.advance(w)
	start := sc.pos
	for {
		if sc.atEnd() {
			return nil, newSyntaxError(offset, "unterminated param literal")
		}
		r, rw := sc.peekRune()
		if r == ']' {
			name := sc.src[start:sc.pos]
			sc.advance(rw)
			return paramLiteral(offset, name), nil
		}
		sc.advance(rw)
	}
}

func matchBinary(sc *scanner) (catalog.Code, catalog.Row, int, bool) {
	code, n, ok := catalog.MatchBinary(sc.rest())
	if !ok {
		return 0, catalog.Row{}, 0, false
	}
	row, _ := catalog.Lookup(code)
	return code, row, n, true
}

func matchUnaryPrefix(sc *scanner) (catalog.Code, catalog.Row, int, bool) {
	code, n, ok := catalog.MatchUnaryPrefix(sc.rest())
	if !ok {
		return 0, catalog.Row{}, 0, false
	}
	row, _ := catalog.Lookup(code)
	return code, row, n, true
}

func matchUnaryPostfix(sc *scanner) (catalog.Code, catalog.Row, int, bool) {
	code, n, ok := catalog.MatchUnaryPostfix(sc.rest())
	if !ok {
		return 0, catalog.Row{}, 0, false
	}
	row, _ := catalog.Lookup(code)
	return code, row, n, true
}

func realLiteral(offset int, v float64) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.Real)
	o.RealVal = v
	return o
}

func imaginaryLiteral(offset int, v float64) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.Imaginary)
	o.RealVal = v
	return o
}

func boolLiteral(offset int, v bool) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.Boolean)
	o.BoolVal = v
	return o
}

func stringLiteral(offset int, s string) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.String)
	o.Text = s
	return o
}

func paramLiteral(offset int, name string) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.Param)
	o.Text = name
	return o
}

func variableLiteral(offset int, letter string) *ast.ObjectNode {
	o := ast.NewObject(offset, ast.Variable)
	o.Text = letter
	return o
}
