// Package exprengine is the public facade described in spec §6.1: parse,
// validate, and render/evaluate a single expression string. It is grounded
// on the teacher's runtime/runtime.go NewEvaluator() constructor-facade
// idiom — bundle the sub-components behind one constructor and a handful
// of narrow methods — generalized here to a two-phase Construct/query
// shape since this grammar validates once up front rather than per call.
package exprengine

import (
	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/eval"
	"github.com/sergev/exprcalc/parser"
	"github.com/sergev/exprcalc/render"
	"github.com/sergev/exprcalc/validate"
	"github.com/sergev/exprcalc/value"
)

// Handler is the parsed, validated form of one expression string, per
// §6.1. A zero-value Handler is never produced by Construct; callers
// always get a non-nil pointer, even for unparseable input, so Expr/
// Latex/Tree/Calc can be called unconditionally after checking IsValid.
type Handler struct {
	root        ast.Node
	parseErr    *parser.SyntaxError
	validateErr *validate.Error
}

// Construct parses and structurally validates text, per §6.1/§4.2/§4.3.
// The result is always usable: IsValid reports whether parsing and
// validation both succeeded, and at which offset they didn't.
func Construct(text string) *Handler {
	h := &Handler{}
	root, syntaxErr := parser.Parse(text)
	if syntaxErr != nil {
		h.parseErr = syntaxErr
		return h
	}
	if validateErr := validate.Validate(root, resolveUserFunction); validateErr != nil {
		h.validateErr = validateErr
		return h
	}
	h.root = root
	return h
}

// resolveUserFunction answers validate.Resolver by walking the same
// defines chain eval.findDefinition walks (Upper, then each Defines
// block's CodeEq entries), duplicated here rather than exported from eval
// since validation runs before any Assist exists.
func resolveUserFunction(node ast.Node, name string) bool {
	for n := node; n != nil; n = ast.Upper(n) {
		defines := n.Defines()
		if defines == nil {
			continue
		}
		for _, elem := range defines.Elems {
			eq, ok := elem.(*ast.ExprNode)
			if !ok || eq.Code != catalog.CodeEq {
				continue
			}
			head, ok := eq.Left.(*ast.ExprNode)
			if ok && head.Category == catalog.UserFunction && head.Name == name {
				return true
			}
		}
	}
	return false
}

// IsValid reports whether h's source text parsed and validated cleanly.
// When it did not, offset identifies where the first syntax or structural
// error was found and hasOffset is true; for a clean Handler hasOffset is
// false and offset is 0.
func (h *Handler) IsValid() (valid bool, offset int, hasOffset bool) {
	if h.parseErr != nil {
		return false, h.parseErr.Offset, true
	}
	if h.validateErr != nil {
		return false, h.validateErr.Offset, true
	}
	return true, 0, false
}

// Expr renders h's tree as canonical operator-expression text, per §4.5.
// Called on an invalid Handler it returns "".
func (h *Handler) Expr() string {
	return render.Text(h.root)
}

// Latex renders h's tree as LaTeX, per §4.5. Called on an invalid Handler
// it returns "".
func (h *Handler) Latex() string {
	return render.Latex(h.root)
}

// Tree renders h's tree as an ASCII box-drawing diagram, per §4.5. Called
// on an invalid Handler it returns "".
func (h *Handler) Tree(indent int) string {
	return render.Tree(h.root, indent)
}

// Calc evaluates h's tree under assist, per §4.4. Called on an invalid
// Handler it returns value.Inv() without touching assist.
func (h *Handler) Calc(assist *eval.Assist) value.Value {
	if h.root == nil {
		return value.Inv()
	}
	return eval.Eval(h.root, assist)
}
