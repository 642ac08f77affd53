package eval

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/sergev/exprcalc/catalog"
	"github.com/sergev/exprcalc/value"
)

// operateSequence implements §4.4.4: the Evaluation-category operators,
// each consuming the Sequence produced by evaluating a call-like node's
// Array right child. Per §4.4.3's unwrap rule, a size-1 sequence whose
// sole element is itself a sequence is unwrapped once first (this is what
// makes both "total(1,2,3)" and "total((1,2,3))" mean the same thing).
func operateSequence(code catalog.Code, right value.Value) value.Value {
	if !right.IsSequence() {
		return value.Inv()
	}
	seq := right.SequenceValue()
	if len(seq) == 1 && seq[0].IsSequence() {
		seq = seq[0].SequenceValue()
	}

	switch code {
	case catalog.CodeCount:
		return value.Num(float64(len(seq)))
	case catalog.CodeUniq:
		return seqUniq(seq)
	case catalog.CodeTotal:
		return value.Num(seqTotal(seq))
	case catalog.CodeMean:
		if len(seq) == 0 {
			return value.Inv()
		}
		return value.Num(seqTotal(seq) / float64(len(seq)))
	case catalog.CodeGMean:
		return seqGMean(seq)
	case catalog.CodeQMean:
		return seqQMean(seq)
	case catalog.CodeHMean:
		return seqHMean(seq)
	case catalog.CodeVar:
		return seqVar(seq)
	case catalog.CodeDev:
		v := seqVar(seq)
		if v.IsInvalid() {
			return v
		}
		return value.Num(math.Sqrt(v.RealValue()))
	case catalog.CodeMedian:
		return seqMedian(seq)
	case catalog.CodeMode:
		return seqMode(seq)
	case catalog.CodeMax:
		return seqExtreme(seq, true)
	case catalog.CodeMin:
		return seqExtreme(seq, false)
	case catalog.CodeRange:
		return seqRange(seq)
	case catalog.CodeHypotSeq:
		return seqHypot(seq)
	case catalog.CodeNorm:
		return seqNorm(seq)
	case catalog.CodeZNorm:
		return seqZNorm(seq)
	case catalog.CodeGCD:
		return seqGCD(seq)
	case catalog.CodeLCM:
		return seqLCM(seq)
	case catalog.CodeDFT:
		return seqDFT(seq, -1)
	case catalog.CodeIDFT:
		return seqIDFT(seq)
	case catalog.CodeFFT:
		return seqFFT(seq, false)
	case catalog.CodeIFFT:
		return seqFFT(seq, true)
	case catalog.CodeZT:
		return seqZT(seq)
	default:
		return value.Inv()
	}
}

func toReals(seq []value.Value) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = v.ToReal()
	}
	return out
}

func seqTotal(seq []value.Value) float64 {
	var total float64
	for _, v := range seq {
		total += v.ToReal()
	}
	return total
}

func seqUniq(seq []value.Value) value.Value {
	seen := make(map[uint64][]value.Value)
	var out []value.Value
	for _, v := range seq {
		h := value.Hash(v)
		dup := false
		for _, s := range seen[h] {
			if value.Equal(s, v) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], v)
		out = append(out, v)
	}
	return value.Seq(out...)
}

func seqGMean(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	product := 1.0
	for _, v := range seq {
		product *= v.ToReal()
	}
	if product < 0 {
		return value.Inv()
	}
	return value.Num(math.Pow(product, 1/float64(len(seq))))
}

func seqQMean(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	var sumSq float64
	for _, v := range seq {
		r := v.ToReal()
		sumSq += r * r
	}
	return value.Num(math.Sqrt(sumSq / float64(len(seq))))
}

func seqHMean(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	var sumInv float64
	for _, v := range seq {
		r := v.ToReal()
		if r == 0 {
			return value.Inv()
		}
		sumInv += 1 / r
	}
	if sumInv == 0 {
		return value.Inv()
	}
	return value.Num(float64(len(seq)) / sumInv)
}

func seqVar(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	mean := seqTotal(seq) / float64(len(seq))
	var sumSq float64
	for _, v := range seq {
		d := v.ToReal() - mean
		sumSq += d * d
	}
	return value.Num(sumSq / float64(len(seq)))
}

func seqMedian(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	reals := toReals(seq)
	sort.Float64s(reals)
	n := len(reals)
	if n%2 == 1 {
		return value.Num(reals[n/2])
	}
	return value.Num((reals[n/2-1] + reals[n/2]) / 2)
}

func seqMode(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	reals := toReals(seq)
	sorted := append([]float64(nil), reals...)
	sort.Float64s(sorted)
	bestVal := sorted[0]
	bestCount := 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		count := j - i
		if count > bestCount {
			bestCount = count
			bestVal = sorted[i]
		}
		i = j
	}
	return value.Num(bestVal)
}

func seqExtreme(seq []value.Value, wantMax bool) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	best := seq[0].ToReal()
	for _, v := range seq[1:] {
		r := v.ToReal()
		if (wantMax && r > best) || (!wantMax && r < best) {
			best = r
		}
	}
	return value.Num(best)
}

func seqRange(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	reals := toReals(seq)
	lo, hi := reals[0], reals[0]
	for _, r := range reals[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return value.Num(hi - lo)
}

func seqHypot(seq []value.Value) value.Value {
	var sumSq float64
	for _, v := range seq {
		r := v.ToReal()
		sumSq += r * r
	}
	return value.Num(math.Sqrt(sumSq))
}

func seqNorm(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Seq()
	}
	reals := toReals(seq)
	lo, hi := reals[0], reals[0]
	for _, r := range reals[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	out := make([]value.Value, len(reals))
	rng := hi - lo
	for i, r := range reals {
		if rng == 0 {
			out[i] = value.Num(0.5)
		} else {
			out[i] = value.Num((r - lo) / rng)
		}
	}
	return value.Seq(out...)
}

func seqZNorm(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Seq()
	}
	reals := toReals(seq)
	mean := seqTotal(seq) / float64(len(reals))
	var sumSq float64
	for _, r := range reals {
		d := r - mean
		sumSq += d * d
	}
	dev := math.Sqrt(sumSq / float64(len(reals)))
	out := make([]value.Value, len(reals))
	for i, r := range reals {
		if dev == 0 {
			out[i] = value.Num(0)
		} else {
			out[i] = value.Num((r - mean) / dev)
		}
	}
	return value.Seq(out...)
}

func seqGCD(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	g := int64(math.Abs(math.Trunc(seq[0].ToReal())))
	for _, v := range seq[1:] {
		n := int64(math.Abs(math.Trunc(v.ToReal())))
		g = gcdInt(g, n)
		if g == 1 {
			break
		}
	}
	return value.Num(float64(g))
}

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func seqLCM(seq []value.Value) value.Value {
	if len(seq) == 0 {
		return value.Inv()
	}
	l := int64(math.Abs(math.Trunc(seq[0].ToReal())))
	for _, v := range seq[1:] {
		n := int64(math.Abs(math.Trunc(v.ToReal())))
		if n == 0 || l == 0 {
			l = 0
			continue
		}
		l = l / gcdInt(l, n) * n
	}
	return value.Num(float64(l))
}

func seqDFT(seq []value.Value, sign float64) value.Value {
	n := len(seq)
	if n == 0 {
		return value.Seq()
	}
	in := make([]complex128, n)
	for i, v := range seq {
		re, im := v.ToComplex()
		in[i] = complex(re, im)
	}
	out := make([]value.Value, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			angle := sign * 2 * math.Pi * float64(k) * float64(t) / float64(n)
			sum += in[t] * cmplx.Exp(complex(0, angle))
		}
		out[k] = fromComplex(sum)
	}
	return value.Seq(out...)
}

func seqIDFT(seq []value.Value) value.Value {
	n := len(seq)
	result := seqDFT(seq, 1)
	if n == 0 {
		return result
	}
	out := result.SequenceValue()
	scaled := make([]value.Value, n)
	for i, v := range out {
		re, im := v.ToComplex()
		scaled[i] = fromComplex(complex(re/float64(n), im/float64(n)))
	}
	return value.Seq(scaled...)
}

func seqFFT(seq []value.Value, inverse bool) value.Value {
	n := len(seq)
	if n == 0 {
		return value.Seq()
	}
	size := 1
	for size < n {
		size *= 2
	}
	buf := make([]complex128, size)
	for i, v := range seq {
		re, im := v.ToComplex()
		buf[i] = complex(re, im)
	}
	fftRadix2(buf, inverse)
	if inverse {
		for i := range buf {
			buf[i] /= complex(float64(size), 0)
		}
	}
	out := make([]value.Value, size)
	for i, c := range buf {
		out[i] = fromComplex(c)
	}
	return value.Seq(out...)
}

// fftRadix2 is an in-place Cooley-Tukey transform; len(a) must be a power
// of two.
func fftRadix2(a []complex128, inverse bool) {
	n := len(a)
	if n <= 1 {
		return
	}
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		angle := 2 * math.Pi / float64(length)
		if !inverse {
			angle = -angle
		}
		wlen := cmplx.Exp(complex(0, angle))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := a[i+j]
				v := a[i+j+length/2] * w
				a[i+j] = u + v
				a[i+j+length/2] = u - v
				w *= wlen
			}
		}
	}
}

// seqZT implements the z-transform per §4.4.4: wrap[0] is the sample
// sequence, the remaining elements (or a single trailing sequence) are
// the z-values; for each z compute Σk sk·z^(-k).
func seqZT(seq []value.Value) value.Value {
	if len(seq) < 2 || !seq[0].IsSequence() {
		return value.Inv()
	}
	samples := seq[0].SequenceValue()
	var zs []value.Value
	if len(seq) == 2 && seq[1].IsSequence() {
		zs = seq[1].SequenceValue()
	} else {
		zs = seq[1:]
	}
	out := make([]value.Value, len(zs))
	for i, zv := range zs {
		zre, zim := zv.ToComplex()
		z := complex(zre, zim)
		var sum complex128
		for k, sv := range samples {
			sre, sim := sv.ToComplex()
			s := complex(sre, sim)
			sum += s * cmplx.Pow(z, complex(float64(-k), 0))
		}
		out[i] = fromComplex(sum)
	}
	return value.Seq(out...)
}
