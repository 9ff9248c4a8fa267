package qre

import "math"

// matrix is a dense row-major float64 matrix sized for the continuation
// kernel. All storage is allocated up front by the tracer; the kernel
// routines below never allocate.
type matrix struct {
	rows, cols int
	data       []float64
}

func newMatrix(rows, cols int) matrix {
	return matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m matrix) at(i, j int) float64     { return m.data[i*m.cols+j] }
func (m matrix) set(i, j int, v float64) { m.data[i*m.cols+j] = v }
func (m matrix) ptr(i, j int) *float64   { return &m.data[i*m.cols+j] }

// row returns the i-th row as a slice aliasing the matrix storage.
func (m matrix) row(i int) []float64 { return m.data[i*m.cols : (i+1)*m.cols] }

// makeIdent overwrites m with the identity.
func (m matrix) makeIdent() {
	for i := range m.data {
		m.data[i] = 0
	}
	for i := 0; i < m.rows; i++ {
		m.data[i*m.cols+i] = 1
	}
}

func sqr(x float64) float64 { return x * x }

// givens applies a plane rotation zeroing *c2 into *c1, where c1 and c2 point
// at entries (l1, m) and (l2, m) of b. The rotation is applied to all columns
// of q at rows l1, l2 and to columns l3 onward of b. A zero pair is left
// untouched.
//
// The norm is computed as |cmax|*sqrt(1+(cmin/cmax)^2); the plain
// sqrt(c1^2+c2^2) overflows on the matrices this solver produces at large
// lambda.
func givens(b, q matrix, c1, c2 *float64, l1, l2, l3 int) {
	if math.Abs(*c1)+math.Abs(*c2) == 0 {
		return
	}

	var sn float64
	if math.Abs(*c2) >= math.Abs(*c1) {
		sn = math.Sqrt(1+sqr(*c1 / *c2)) * math.Abs(*c2)
	} else {
		sn = math.Sqrt(1+sqr(*c2 / *c1)) * math.Abs(*c1)
	}
	s1 := *c1 / sn
	s2 := *c2 / sn

	for k := 0; k < q.cols; k++ {
		sv1 := q.at(l1, k)
		sv2 := q.at(l2, k)
		q.set(l1, k, s1*sv1+s2*sv2)
		q.set(l2, k, -s2*sv1+s1*sv2)
	}

	for k := l3; k < b.cols; k++ {
		sv1 := b.at(l1, k)
		sv2 := b.at(l2, k)
		b.set(l1, k, s1*sv1+s2*sv2)
		b.set(l2, k, -s2*sv1+s1*sv2)
	}

	*c1 = sn
	*c2 = 0
}

// qrDecomp reduces b to upper-triangular form in place by Givens rotations,
// accumulating the orthogonal factor into q so that on exit q * b_in = b_out
// (equivalently q^T * b_out = b_in). With b one row taller than wide, the
// last row of q spans the one-dimensional kernel of b_in^T.
func qrDecomp(b, q matrix) {
	q.makeIdent()
	for m := 0; m < b.cols; m++ {
		for k := m + 1; k < b.rows; k++ {
			givens(b, q, b.ptr(m, m), b.ptr(k, m), m, k, m+1)
		}
	}
}

// newtonStep applies one Newton correction to u in place: solve the
// triangular system in b for y (b holds the strictly upper entries of the
// logical transpose, so this reads b(l, k) with l < k), back-multiply by the
// rows of q, and subtract. Returns the Euclidean length of the correction.
// y is consumed as scratch.
func newtonStep(q, b matrix, u, y []float64) float64 {
	for k := 0; k < b.cols; k++ {
		for l := 0; l < k; l++ {
			y[k] -= b.at(l, k) * y[l]
		}
		y[k] /= b.at(k, k)
	}

	d := 0.0
	for k := 0; k < b.rows; k++ {
		s := 0.0
		for l := 0; l < b.cols; l++ {
			s += q.at(l, k) * y[l]
		}
		u[k] -= s
		d += s * s
	}
	return math.Sqrt(d)
}
