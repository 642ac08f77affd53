// Package validate walks a parsed tree and rejects structurally ill-typed
// nodes before evaluation, per spec §4.3/§3. It is grounded on the
// teacher's parser/compile.go walk-and-switch-on-concrete-type pattern
// (that file rewrites a surface AST into s-expressions by switching on
// Decl/Stmt/Expr and erroring on mismatch); this package switches on
// ast.Node variants and catalog.Category instead of rewriting anything.
package validate

import (
	"fmt"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
)

// Resolver reports whether name is a known user-function in the
// defines-chain visible from the node being checked. Passing a nil
// Resolver disables the defines-resolution check (validation then only
// requires the Array shape for UserFunction nodes), per §4.3.
type Resolver func(node ast.Node, name string) bool

// Error describes why a tree failed validation, including the offset of
// the offending node so a caller can report it the way parse failures
// are reported.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

// Validate walks root and returns the first structural violation found,
// or nil if the tree is well-formed. resolve may be nil.
func Validate(root ast.Node, resolve Resolver) *Error {
	return walk(root, resolve)
}

func walk(n ast.Node, resolve Resolver) *Error {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *ast.ObjectNode:
		return walkObject(v, resolve)
	case *ast.ExprNode:
		return walkExpr(v, resolve)
	default:
		return &Error{Offset: ast.NodeOffset(n), Msg: fmt.Sprintf("unrecognised node type %T", n)}
	}
}

func walkObject(o *ast.ObjectNode, resolve Resolver) *Error {
	if o.ObjKind == ast.Array {
		for _, elem := range o.Elems {
			if elem.Super() != o {
				return &Error{Offset: o.Offset, Msg: "array element's super does not point back at the array"}
			}
			if err := walk(elem, resolve); err != nil {
				return err
			}
		}
	}
	if err := walkDefines(o, resolve); err != nil {
		return err
	}
	return nil
}

func walkExpr(e *ast.ExprNode, resolve Resolver) *Error {
	switch e.Category {
	case catalog.Logic:
		if err := requireArity(e); err != nil {
			return err
		}
		if err := requireBoolResultIfPresent(e.Left, resolve); err != nil {
			return err
		}
		if err := requireBoolResultIfPresent(e.Right, resolve); err != nil {
			return err
		}
	case catalog.Relation, catalog.Arithmetic:
		if err := requireArity(e); err != nil {
			return err
		}
		if err := requireValueResultIfPresent(e.Left, resolve); err != nil {
			return err
		}
		if err := requireValueResultIfPresent(e.Right, resolve); err != nil {
			return err
		}
	case catalog.Evaluation, catalog.Invocation, catalog.LargeScale:
		if e.Left != nil {
			return &Error{Offset: e.Offset, Msg: "call-like operator must have an empty left child"}
		}
		if err := requireArrayWrap(e); err != nil {
			return err
		}
		if err := walk(e.Right, resolve); err != nil {
			return err
		}
	case catalog.UserFunction:
		if e.Left != nil {
			return &Error{Offset: e.Offset, Msg: "user-function call must have an empty left child"}
		}
		if err := requireArrayWrap(e); err != nil {
			return err
		}
		if resolve != nil && !resolve(e, e.Name) {
			return &Error{Offset: e.Offset, Msg: fmt.Sprintf("undefined function %q", e.Name)}
		}
		if err := walk(e.Right, resolve); err != nil {
			return err
		}
	default:
		return &Error{Offset: e.Offset, Msg: fmt.Sprintf("unrecognised operator category %v", e.Category)}
	}
	return walkDefines(e, resolve)
}

// requireArity enforces §3's unary/binary child-shape invariant: a
// non-postfix unary has an empty left and a non-empty right; a postfix
// unary has a non-empty left and an empty right; a binary has both.
func requireArity(e *ast.ExprNode) *Error {
	row, ok := catalog.Lookup(e.Code)
	if !ok {
		return &Error{Offset: e.Offset, Msg: fmt.Sprintf("unknown operator code %v", e.Code)}
	}
	switch row.Arity {
	case catalog.Binary:
		if e.Left == nil || e.Right == nil {
			return &Error{Offset: e.Offset, Msg: "binary operator requires both operands"}
		}
	case catalog.Unary:
		if row.Postfix {
			if e.Left == nil || e.Right != nil {
				return &Error{Offset: e.Offset, Msg: "postfix unary operator requires a left operand and no right operand"}
			}
		} else {
			if e.Right == nil || e.Left != nil {
				return &Error{Offset: e.Offset, Msg: "prefix unary operator requires a right operand and no left operand"}
			}
		}
	}
	return nil
}

// requireArrayWrap enforces the "exactly one Object(Array) right child"
// invariant for call-like operators.
func requireArrayWrap(e *ast.ExprNode) *Error {
	o, ok := e.Right.(*ast.ObjectNode)
	if !ok || o.ObjKind != ast.Array {
		return &Error{Offset: e.Offset, Msg: "call-like operator requires an Array right child"}
	}
	return nil
}

// requireBoolResultIfPresent enforces the Logic-parent invariant on a
// non-nil operand: a boolean literal/param/variable, or a Logic/Relation
// node, or a UserFunction call (whose runtime result type is unknown
// until evaluation, so it is accepted structurally). A nil operand is
// the expected shape for the empty side of a unary operator and is
// skipped — requireArity already checked which side may be empty.
func requireBoolResultIfPresent(n ast.Node, resolve Resolver) *Error {
	if n == nil {
		return nil
	}
	if err := walk(n, resolve); err != nil {
		return err
	}
	switch v := n.(type) {
	case *ast.ObjectNode:
		switch v.ObjKind {
		case ast.Boolean, ast.Param, ast.Variable:
			return nil
		default:
			return &Error{Offset: v.Offset, Msg: fmt.Sprintf("expected a boolean-result operand, got %v literal", v.ObjKind)}
		}
	case *ast.ExprNode:
		switch v.Category {
		case catalog.Logic, catalog.Relation, catalog.UserFunction:
			return nil
		default:
			return &Error{Offset: v.Offset, Msg: fmt.Sprintf("expected a boolean-result operand, got %v operator", v.Category)}
		}
	}
	return nil
}

// requireValueResultIfPresent enforces the Relation/Arithmetic-parent
// invariant on a non-nil operand: a numeric/string/param/variable
// literal, or any value-producing operator category. A nil operand is
// skipped for the same reason as requireBoolResultIfPresent.
func requireValueResultIfPresent(n ast.Node, resolve Resolver) *Error {
	if n == nil {
		return nil
	}
	if err := walk(n, resolve); err != nil {
		return err
	}
	switch v := n.(type) {
	case *ast.ObjectNode:
		switch v.ObjKind {
		case ast.Real, ast.Imaginary, ast.String, ast.Param, ast.Variable:
			return nil
		default:
			return &Error{Offset: v.Offset, Msg: fmt.Sprintf("expected a value-result operand, got %v literal", v.ObjKind)}
		}
	case *ast.ExprNode:
		switch v.Category {
		case catalog.Arithmetic, catalog.Evaluation, catalog.Invocation, catalog.LargeScale, catalog.UserFunction:
			return nil
		default:
			return &Error{Offset: v.Offset, Msg: fmt.Sprintf("expected a value-result operand, got %v operator", v.Category)}
		}
	}
	return nil
}

// walkDefines validates an attached defines block: it must be an Array of
// Relation-equal expressions whose left is a UserFunction node.
func walkDefines(n ast.Node, resolve Resolver) *Error {
	defines := n.Defines()
	if defines == nil {
		return nil
	}
	for _, elem := range defines.Elems {
		eq, ok := elem.(*ast.ExprNode)
		if !ok || eq.Code != catalog.CodeEq {
			return &Error{Offset: ast.NodeOffset(elem), Msg: "defines entry must be an equality expression"}
		}
		head, ok := eq.Left.(*ast.ExprNode)
		if !ok || head.Category != catalog.UserFunction {
			return &Error{Offset: eq.Offset, Msg: "defines entry's left-hand side must be a user-function head"}
		}
		if err := requireArrayWrap(head); err != nil {
			return err
		}
		if err := walk(eq.Right, resolve); err != nil {
			return err
		}
	}
	return nil
}
