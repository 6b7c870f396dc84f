package client

import (
	"sync"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
)

// CalcSession guards a stream of asynchronous calculation results against
// stale responses. Every request takes a monotonically increasing sequence
// number; a response is applied only if it carries the latest issued number,
// so a slow response for old inputs can never overwrite a newer result.
type CalcSession struct {
	mu      sync.Mutex
	nextSeq uint64
	latest  uint64
	result  *finance.CalculationResult
}

// Begin registers a new calculation request and returns its sequence number.
// Beginning a request invalidates all earlier in-flight requests.
func (s *CalcSession) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.latest = s.nextSeq
	return s.nextSeq
}

// Apply records a completed calculation. It reports whether the result was
// accepted; results for superseded requests are discarded.
func (s *CalcSession) Apply(seq uint64, result finance.CalculationResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latest {
		return false
	}
	s.result = &result
	return true
}

// Fail records a failed calculation. A failure of the latest request clears
// the current result; failures of superseded requests are ignored.
func (s *CalcSession) Fail(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latest {
		return false
	}
	s.result = nil
	return true
}

// Reset drops the current result and invalidates in-flight requests.
func (s *CalcSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.latest = s.nextSeq
	s.result = nil
}

// Result returns the currently applied calculation, nil when none.
func (s *CalcSession) Result() *finance.CalculationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
