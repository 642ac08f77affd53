package eval

import (
	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// funcDef is a discovered user-function definition: its formal letters in
// declared order and the rule node to evaluate, per §3's "Within a defines
// list, each equality-expression binds the left-hand UserFunction's name
// to (formal-variable-letters, right-hand rule node)".
type funcDef struct {
	formals []string
	rule    ast.Node
}

// arg is a classified Invocation/LargeScale wrap element: either an
// already-evaluated plain value, or a deferred callable bound to a
// discovered funcDef, per §4.4.2's function_variables note.
type arg struct {
	isFunc  bool
	value   value.Value
	formals []string
	rule    ast.Node
	assist  *Assist
}

// call invokes a deferred callable, binding its formals positionally to
// actuals (extra formals beyond len(actuals) bind to Invalid, extra
// actuals are ignored). Calling a non-function arg just returns its value.
func (a arg) call(actuals []value.Value) value.Value {
	if !a.isFunc {
		return a.value
	}
	return evalNode(a.rule, bindFormals(a.assist, a.formals, actuals))
}

// classifyArg inspects a raw (unevaluated) wrap-argument node: if it is a
// bare Variable whose name resolves to a user-function definition in the
// enclosing defines chain, it is deferred as a callable; otherwise it is
// evaluated immediately as a plain value. This is the wrap-argument
// classifier decision recorded in DESIGN.md (scenarios 7 and 8 pass
// function references as bare names, with no call syntax).
func classifyArg(node ast.Node, assist *Assist) arg {
	if v, ok := node.(*ast.ObjectNode); ok && v.ObjKind == ast.Variable {
		if def, found := lookupDefinition(assist, node, v.Text); found {
			return arg{isFunc: true, formals: def.formals, rule: def.rule, assist: assist}
		}
	}
	return arg{isFunc: false, value: evalNode(node, assist)}
}

// lookupDefinition resolves name in the defines chain visible from site,
// per §3's "Scope of definitions": it checks site's own defines first,
// then walks upward via ast.Upper until an ancestor carries a matching
// equality entry. Results are cached per call site on assist, since a
// given syntactic node's enclosing chain never changes after parsing.
func lookupDefinition(assist *Assist, site ast.Node, name string) (funcDef, bool) {
	if assist != nil && assist.cache != nil {
		if def, ok := assist.cache[site]; ok {
			return def, true
		}
	}
	def, ok := findDefinition(site, name)
	if ok && assist != nil && assist.cache != nil {
		assist.cache[site] = def
	}
	return def, ok
}

func findDefinition(site ast.Node, name string) (funcDef, bool) {
	for n := site; n != nil; n = ast.Upper(n) {
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
			if !ok || head.Category != catalog.UserFunction || head.Name != name {
				continue
			}
			return funcDef{formals: formalLetters(head.Right), rule: eq.Right}, true
		}
	}
	return funcDef{}, false
}

// formalLetters extracts the single-letter Variable names declared in a
// user-function head's Array right child, in declared order.
func formalLetters(wrap ast.Node) []string {
	arr, ok := wrap.(*ast.ObjectNode)
	if !ok {
		return nil
	}
	var out []string
	for _, e := range arr.Elems {
		v, ok := e.(*ast.ObjectNode)
		if !ok || v.ObjKind != ast.Variable {
			continue
		}
		out = append(out, v.Text)
	}
	return out
}

// bindFormals returns a derived Assist whose variable-resolver maps the
// i-th formal letter to the i-th actual, or Invalid for a formal beyond
// len(actuals) or for any letter that is not one of formals. Per §4.4.1,
// this is deliberately a replacement, not a layering over the caller's
// resolver: a function body's free variables are its formals only.
func bindFormals(assist *Assist, formals []string, actuals []value.Value) *Assist {
	return assist.withVariable(func(letter string) value.Value {
		for i, f := range formals {
			if f == letter {
				if i < len(actuals) {
					return actuals[i]
				}
				return value.Inv()
			}
		}
		return value.Inv()
	})
}

// evalUserFunctionCall implements §4.4.1: look up the name, evaluate the
// right child to obtain actual arguments, bind formals, recurse into the
// rule. A missing definition or a non-Array/wrong-shape right is Invalid.
func evalUserFunctionCall(n *ast.ExprNode, assist *Assist) value.Value {
	def, ok := lookupDefinition(assist, n, n.Name)
	if !ok {
		return value.Inv()
	}
	argsVal := evalNode(n.Right, assist)
	if !argsVal.IsSequence() {
		return value.Inv()
	}
	return evalNode(def.rule, bindFormals(assist, def.formals, argsVal.SequenceValue()))
}
