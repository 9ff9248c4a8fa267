package qre

import "errors"

// ErrCanceled is returned by a Status to stop the trace. The solver facade
// swallows it and returns whatever points were accumulated.
var ErrCanceled = errors.New("qre: trace canceled")

// Status lets a host observe and interrupt a running trace. Get is polled
// once per tracer iteration; a non-nil error aborts the trace. SetProgress is
// advisory and called every 25 iterations.
type Status interface {
	Get() error
	SetProgress(fraction float64, label string)
}

// NullStatus is a Status that never cancels and ignores progress.
type NullStatus struct{}

func (NullStatus) Get() error                  { return nil }
func (NullStatus) SetProgress(float64, string) {}

// FuncStatus adapts callbacks to the Status interface. Nil callbacks behave
// like NullStatus.
type FuncStatus struct {
	GetFunc      func() error
	ProgressFunc func(fraction float64, label string)
}

func (s *FuncStatus) Get() error {
	if s.GetFunc == nil {
		return nil
	}
	return s.GetFunc()
}

func (s *FuncStatus) SetProgress(fraction float64, label string) {
	if s.ProgressFunc != nil {
		s.ProgressFunc(fraction, label)
	}
}
