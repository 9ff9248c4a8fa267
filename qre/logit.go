package qre

import (
	"github.com/sirupsen/logrus"

	"github.com/riabaldevia/gambit/efg"
)

// LogitSolver traces the principal branch of the logit QRE correspondence
// from the centroid at lambda = 0 up to MaxLambda.
type LogitSolver struct {
	MaxLambda float64 // trace until lambda reaches this value
	StepSize  float64 // advisory initial step hint; the tracer adapts its own
	FullGraph bool    // keep every accepted point instead of only the last
}

// NewLogitSolver returns a solver with the standard configuration.
func NewLogitSolver() *LogitSolver {
	return &LogitSolver{MaxLambda: 30.0, StepSize: 1.0e-4, FullGraph: false}
}

// Solve traces the branch starting from the uniform profile on the given
// support. With FullGraph set, the first returned point is the centroid at
// lambda 0; when FullGraph is false only the terminal point of the branch is
// kept (the centroid itself if no step was accepted). Errors
// raised by the status collaborator (or by a numerical fault) end the trace
// early; the points accumulated so far are returned.
func (s *LogitSolver) Solve(support *efg.Support, status Status) []Point {
	start := support.NewBehavProfile()
	sols := []Point{{Profile: start.Clone(), Lambda: 0}}

	if err := tracePath(start, 0.0, s.MaxLambda, 1.0, status, &sols); err != nil {
		logrus.Debugf("qre: trace ended early: %v", err)
	}

	if !s.FullGraph {
		sols = sols[len(sols)-1:]
	}
	return sols
}
