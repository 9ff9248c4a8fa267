package qre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogitSolver_Defaults(t *testing.T) {
	got := NewLogitSolver()
	want := &LogitSolver{MaxLambda: 30.0, StepSize: 1.0e-4, FullGraph: false}
	assert.Equal(t, want, got)
}

func TestNullStatus_NeverCancels(t *testing.T) {
	var s NullStatus
	assert.NoError(t, s.Get())
	s.SetProgress(0.5, "lambda = 15")
}

func TestFuncStatus_NilCallbacks(t *testing.T) {
	s := &FuncStatus{}
	assert.NoError(t, s.Get())
	s.SetProgress(0.5, "lambda = 15")
}
