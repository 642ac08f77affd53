package eval

import (
	"sort"

	"github.com/sergev/exprcalc/ast"
	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// maxGenerateSize bounds gen's incremental sequence build, per §4.4.2.
const maxGenerateSize = 10000000

// evalInvocation implements §4.4.2's higher-order sequence operators. The
// right child is always an Object(Array) of raw argument nodes; individual
// operators read them directly (rather than through evalNode up front)
// because some positions may be deferred callables, per classifyArg.
func evalInvocation(n *ast.ExprNode, assist *Assist) value.Value {
	wrap, ok := n.Right.(*ast.ObjectNode)
	if !ok {
		return value.Inv()
	}
	args := wrap.Elems
	switch n.Code {
	case catalog.CodeGen:
		return invokeGen(args, assist)
	case catalog.CodeHas:
		return invokeHas(args, assist)
	case catalog.CodePick:
		return invokePick(args, assist)
	case catalog.CodeSel:
		return invokeSel(args, assist)
	case catalog.CodeSort:
		return invokeSort(args, assist)
	case catalog.CodeTrans:
		return invokeTrans(args, assist)
	case catalog.CodeAcc:
		return invokeAcc(args, assist)
	case catalog.CodeRand:
		return value.Num(assist.rng().Float64())
	default:
		return value.Inv()
	}
}

func invokeGen(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 2 {
		return value.Inv()
	}
	seedArg := classifyArg(args[0], assist)
	sizeArg := classifyArg(args[1], assist)

	seq := make([]value.Value, 0)
	nextSeed := func() value.Value {
		if seedArg.isFunc {
			return seedArg.call([]value.Value{value.Seq(seq...)})
		}
		return seedArg.value
	}

	if !sizeArg.isFunc {
		n := int64(sizeArg.value.ToReal())
		if n < 0 {
			return value.Inv()
		}
		if n > maxGenerateSize {
			n = maxGenerateSize
		}
		for int64(len(seq)) < n {
			seq = append(seq, nextSeed())
		}
		return value.Seq(seq...)
	}

	for len(seq) < maxGenerateSize {
		next := nextSeed()
		if !sizeArg.call([]value.Value{value.Seq(seq...), next}).ToBoolean() {
			break
		}
		seq = append(seq, next)
	}
	return value.Seq(seq...)
}

func invokeHas(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 2 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := seqVal.SequenceValue()
	probe := classifyArg(args[1], assist)
	for i, item := range seq {
		if matchProbe(probe, item, i, seqVal) {
			return value.Bool(true)
		}
	}
	return value.Bool(false)
}

func matchProbe(probe arg, item value.Value, index int, whole value.Value) bool {
	if probe.isFunc {
		return probe.call([]value.Value{item, value.Num(float64(index)), whole}).ToBoolean()
	}
	return value.Equal(item, probe.value)
}

func invokePick(args []ast.Node, assist *Assist) value.Value {
	if len(args) < 2 || len(args) > 3 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := seqVal.SequenceValue()
	def := value.Inv()
	if len(args) == 3 {
		def = evalNode(args[2], assist)
	}
	probe := classifyArg(args[1], assist)
	if !probe.isFunc {
		idx := int64(probe.value.ToReal())
		if idx < 0 {
			idx += int64(len(seq))
		}
		if idx < 0 || idx >= int64(len(seq)) {
			return def
		}
		return seq[idx]
	}
	for i, item := range seq {
		if matchProbe(probe, item, i, seqVal) {
			return item
		}
	}
	return def
}

func invokeSel(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 2 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := seqVal.SequenceValue()
	probe := classifyArg(args[1], assist)
	var out []value.Value
	for i, item := range seq {
		if matchProbe(probe, item, i, seqVal) {
			out = append(out, item)
		}
	}
	return value.Seq(out...)
}

func invokeSort(args []ast.Node, assist *Assist) value.Value {
	if len(args) < 1 || len(args) > 2 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := append([]value.Value(nil), seqVal.SequenceValue()...)

	var less func(a, b value.Value) bool
	if len(args) == 2 {
		probe := classifyArg(args[1], assist)
		if probe.isFunc {
			less = func(a, b value.Value) bool { return probe.call([]value.Value{a, b}).ToBoolean() }
		} else if !probe.value.ToBoolean() {
			less = func(a, b value.Value) bool { return operate(a, catalog.CodeGt, b, false).ToBoolean() }
		}
	}
	if less == nil {
		less = func(a, b value.Value) bool { return operate(a, catalog.CodeLt, b, false).ToBoolean() }
	}
	sort.SliceStable(seq, func(i, j int) bool { return less(seq[i], seq[j]) })
	return value.Seq(seq...)
}

func invokeTrans(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 2 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := seqVal.SequenceValue()
	probe := classifyArg(args[1], assist)
	out := make([]value.Value, len(seq))
	for i, item := range seq {
		if probe.isFunc {
			out[i] = probe.call([]value.Value{item, value.Num(float64(i)), seqVal})
		} else {
			out[i] = probe.value
		}
	}
	return value.Seq(out...)
}

func invokeAcc(args []ast.Node, assist *Assist) value.Value {
	if len(args) != 3 {
		return value.Inv()
	}
	seqVal := evalNode(args[0], assist)
	if !seqVal.IsSequence() {
		return value.Inv()
	}
	seq := seqVal.SequenceValue()
	probe := classifyArg(args[1], assist)
	if !probe.isFunc {
		return value.Inv()
	}
	acc := evalNode(args[2], assist)
	for i, item := range seq {
		acc = probe.call([]value.Value{acc, item, value.Num(float64(i)), seqVal})
	}
	return acc
}
