package qre

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/riabaldevia/gambit/efg"
)

// Tuning constants of the predictor-corrector loop. These are design-fixed;
// the stepsize adapts between hMin and the curvature-driven estimate.
const (
	maxIters    = 5000    // hard ceiling on accepted+rejected steps
	tol         = 1.0e-4  // corrector convergence tolerance
	maxDecel    = 1.1     // largest per-step stepsize change factor
	maxDist     = 0.4     // largest admissible first corrector distance
	maxContr    = 0.6     // slowest admissible corrector contraction
	eta         = 0.1     // regularizer in the contraction denominator
	hInit       = 0.03    // initial stepsize
	hMin        = 1.0e-5  // stepsize floor; below this the branch is abandoned
	boundaryTol = 1.0e-10 // probability at which an action leaves the support
)

// ErrNumericalFault reports a non-finite value produced by the defining
// system or the corrector; the facade treats it like cancellation.
var ErrNumericalFault = errors.New("qre: non-finite value in corrector")

// Point is one accepted point of the traced branch: a snapshot of the
// behavior profile and its lambda.
type Point struct {
	Profile *efg.BehavProfile
	Lambda  float64
}

// tracePath follows the equilibrium curve from (start, startLambda) until
// lambda leaves [0, maxLambda), the stepsize collapses, or the iteration cap
// is hit, appending every accepted point to sols. omega selects the direction
// of travel along the tangent. When a probability falls below boundaryTol the
// action is dropped from the support and tracing restarts recursively on the
// reduced profile at the current lambda.
//
// start is consumed as scratch storage: all working arrays, including the
// profile, are owned by this invocation and reused across iterations. Each
// recursion level allocates a fresh, smaller set.
func tracePath(start *efg.BehavProfile, startLambda, maxLambda, omega float64, status Status, sols *[]Point) error {
	n := start.Len()
	x := make([]float64, n+1)
	u := make([]float64, n+1)
	y := make([]float64, n)
	t := make([]float64, n+1)
	newT := make([]float64, n+1)
	b := newMatrix(n+1, n)
	q := newMatrix(n+1, n+1)

	for i := 0; i < n; i++ {
		x[i] = start.Get(i)
	}
	x[n] = startLambda

	qreJacobian(start, x, b)
	qrDecomp(b, q)
	copy(t, q.row(n))

	// A coordinate may already sit on the simplex boundary at entry, e.g.
	// when the caller hands over a freshly reduced profile whose neighbor
	// coordinate collapsed in the same region.
	for i := 0; i < n; i++ {
		if x[i] < boundaryTol {
			return traceReduced(start, x, i, maxLambda, omega, status, sols)
		}
	}

	h := hInit
	for niters := 0; x[n] >= 0 && x[n] < maxLambda; {
		if err := status.Get(); err != nil {
			return err
		}
		if niters >= maxIters {
			logrus.Debugf("qre: iteration cap reached at lambda=%g", x[n])
			return nil
		}
		if niters%25 == 0 {
			status.SetProgress(x[n]/maxLambda, fmt.Sprintf("lambda = %g", x[n]))
		}
		niters++

		if math.Abs(h) <= hMin {
			logrus.Debugf("qre: stepsize collapsed at lambda=%g", x[n])
			return nil
		}

		// Predictor: one Euler step along the tangent.
		accept := true
		for k := 0; k <= n; k++ {
			u[k] = x[k] + h*omega*t[k]
			if k < n && u[k] < 0 {
				accept = false
				break
			}
		}
		if !accept {
			h *= 0.5
			continue
		}

		decel := 1.0 / maxDecel
		qreJacobian(start, u, b)
		qrDecomp(b, q)

		// Corrector: Newton iterations back onto the curve, with the
		// deceleration bookkeeping driving the next stepsize.
		disto := 0.0
		for iter := 1; ; iter++ {
			qreLHS(start, u, y)
			dist := newtonStep(q, b, u, y)
			if math.IsNaN(dist) || math.IsInf(dist, 0) {
				return ErrNumericalFault
			}
			if dist >= maxDist {
				accept = false
				break
			}
			for i := 0; i < n; i++ {
				if u[i] < 0 {
					// don't go negative
					accept = false
					break
				}
			}
			if !accept {
				break
			}

			decel = math.Max(decel, math.Sqrt(dist/maxDist)*maxDecel)
			if iter >= 2 {
				contr := dist / (disto + tol*eta)
				if contr > maxContr {
					accept = false
					break
				}
				decel = math.Max(decel, math.Sqrt(contr/maxContr)*maxDecel)
			}

			if dist <= tol {
				break
			}
			disto = dist
		}

		if !accept {
			h /= maxDecel // stay on the same point with a shorter step
			if math.Abs(h) <= hMin {
				logrus.Debugf("qre: stepsize collapsed at lambda=%g", x[n])
				return nil
			}
			continue
		}

		if decel > maxDecel {
			decel = maxDecel
		}
		h = math.Abs(h / decel)

		// Step accepted: adopt u, reducing the support first if a
		// coordinate has hit the boundary.
		for i := 0; i < n; i++ {
			if u[i] < boundaryTol {
				return traceReduced(start, u, i, maxLambda, omega, status, sols)
			}
			x[i] = u[i]
		}
		x[n] = u[n]

		for i := 0; i < n; i++ {
			start.Set(i, x[i])
		}
		*sols = append(*sols, Point{Profile: start.Clone(), Lambda: x[n]})

		copy(newT, q.row(n))
		if floats.Dot(t, newT) < 0 {
			// A fold or bifurcation was crossed; reversing the
			// orientation keeps us on the same connected branch.
			logrus.Debugf("qre: orientation flip at lambda=%g", x[n])
			omega = -omega
		}
		copy(t, newT)
	}
	return nil
}

// traceReduced drops the action at flat index i from the support, projects pt
// down to the reduced profile, and continues the trace recursively at pt's
// lambda with the same orientation.
func traceReduced(start *efg.BehavProfile, pt []float64, i int, maxLambda, omega float64, status Status, sols *[]Point) error {
	pl, iset, act := start.Support().Triple(i)
	logrus.Debugf("qre: dropping action (%d,%d,%d) at lambda=%g", pl, iset, act, pt[len(pt)-1])

	reduced := start.Support().RemoveActionAt(i).NewBehavProfile()
	for j := 0; j < reduced.Len(); j++ {
		if j < i {
			reduced.Set(j, pt[j])
		} else {
			reduced.Set(j, pt[j+1])
		}
	}
	return tracePath(reduced, pt[len(pt)-1], maxLambda, omega, status, sols)
}
