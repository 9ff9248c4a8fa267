package qre

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillTest populates m with a deterministic pseudo-random pattern.
func fillTest(m matrix, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range m.data {
		m.data[i] = rng.NormFloat64()
	}
}

func cloneMatrix(m matrix) matrix {
	out := newMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// TestQRDecomp_RoundTrip verifies that Q^T times the triangular factor
// reproduces the input within 1e-10 in Frobenius norm.
func TestQRDecomp_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9} {
		b := newMatrix(n+1, n)
		fillTest(b, int64(n))
		orig := cloneMatrix(b)
		q := newMatrix(n+1, n+1)

		qrDecomp(b, q)

		// reconstruct q^T * b and accumulate the squared error
		var frob float64
		for i := 0; i < n+1; i++ {
			for j := 0; j < n; j++ {
				s := 0.0
				for k := 0; k < n+1; k++ {
					s += q.at(k, i) * b.at(k, j)
				}
				frob += sqr(s - orig.at(i, j))
			}
		}
		if math.Sqrt(frob) > 1e-10 {
			t.Errorf("n=%d: ||q^T*b - orig||_F = %g, want <= 1e-10", n, math.Sqrt(frob))
		}
	}
}

// TestQRDecomp_Triangular verifies the top square block of b is upper
// triangular after decomposition.
func TestQRDecomp_Triangular(t *testing.T) {
	n := 6
	b := newMatrix(n+1, n)
	fillTest(b, 7)
	q := newMatrix(n+1, n+1)

	qrDecomp(b, q)

	for i := 0; i < n+1; i++ {
		for j := 0; j < n && j < i; j++ {
			assert.InDelta(t, 0.0, b.at(i, j), 1e-12, "b(%d,%d) below the diagonal", i, j)
		}
	}
}

// TestQRDecomp_Orthogonal verifies q*q^T is the identity.
func TestQRDecomp_Orthogonal(t *testing.T) {
	n := 5
	b := newMatrix(n+1, n)
	fillTest(b, 3)
	q := newMatrix(n+1, n+1)

	qrDecomp(b, q)

	for i := 0; i < n+1; i++ {
		for j := 0; j < n+1; j++ {
			s := 0.0
			for k := 0; k < n+1; k++ {
				s += q.at(i, k) * q.at(j, k)
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, s, 1e-12, "(q q^T)(%d,%d)", i, j)
		}
	}
}

// TestGivens_ZeroPair verifies a rotation on a zero pair leaves both matrices
// byte-identical.
func TestGivens_ZeroPair(t *testing.T) {
	b := newMatrix(4, 3)
	q := newMatrix(4, 4)
	fillTest(b, 11)
	q.makeIdent()
	b.set(0, 0, 0)
	b.set(2, 0, 0)
	origB := cloneMatrix(b)
	origQ := cloneMatrix(q)

	givens(b, q, b.ptr(0, 0), b.ptr(2, 0), 0, 2, 1)

	assert.Equal(t, origB.data, b.data, "b modified by zero-pair rotation")
	assert.Equal(t, origQ.data, q.data, "q modified by zero-pair rotation")
}

// TestGivens_ScaleFree verifies the overflow-safe norm on entries whose
// squares overflow float64.
func TestGivens_ScaleFree(t *testing.T) {
	b := newMatrix(2, 1)
	q := newMatrix(2, 2)
	q.makeIdent()
	big := 1e200
	b.set(0, 0, 3*big)
	b.set(1, 0, 4*big)

	givens(b, q, b.ptr(0, 0), b.ptr(1, 0), 0, 1, 1)

	require.False(t, math.IsInf(b.at(0, 0), 0), "norm overflowed")
	assert.InEpsilon(t, 5*big, b.at(0, 0), 1e-12)
	assert.Equal(t, 0.0, b.at(1, 0))
}

// TestNewtonStep_LinearSystem verifies one Newton step lands exactly on the
// zero set of a linear map: with F(u) = J*u - c, the corrected point must
// satisfy F(u1) = 0 to rounding.
func TestNewtonStep_LinearSystem(t *testing.T) {
	// J is 2x3, stored transposed as b (3x2): variables on rows.
	j := [][]float64{
		{1, 0, 2},
		{0, 1, 3},
	}
	c := []float64{1, 2}

	b := newMatrix(3, 2)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			b.set(col, row, j[row][col])
		}
	}
	q := newMatrix(3, 3)
	qrDecomp(b, q)

	u := []float64{0.3, -0.2, 0.9}
	y := make([]float64, 2)
	for row := 0; row < 2; row++ {
		y[row] = -c[row]
		for col := 0; col < 3; col++ {
			y[row] += j[row][col] * u[col]
		}
	}

	dist := newtonStep(q, b, u, y)
	require.Greater(t, dist, 0.0)

	for row := 0; row < 2; row++ {
		res := -c[row]
		for col := 0; col < 3; col++ {
			res += j[row][col] * u[col]
		}
		assert.InDelta(t, 0.0, res, 1e-12, "residual row %d after Newton step", row)
	}
}

// TestQRDecomp_TangentInKernel verifies the last row of q is a unit vector in
// the kernel of the original equation system.
func TestQRDecomp_TangentInKernel(t *testing.T) {
	n := 4
	b := newMatrix(n+1, n)
	fillTest(b, 21)
	orig := cloneMatrix(b)
	q := newMatrix(n+1, n+1)

	qrDecomp(b, q)

	tan := q.row(n)
	norm := 0.0
	for _, v := range tan {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-12, "tangent not unit norm")

	// each column of the original b (an equation gradient) must be
	// orthogonal to the tangent
	for j := 0; j < n; j++ {
		s := 0.0
		for i := 0; i < n+1; i++ {
			s += tan[i] * orig.at(i, j)
		}
		assert.InDelta(t, 0.0, s, 1e-10, "tangent not orthogonal to equation %d", j)
	}
}
