package calc

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
)

// memcell is a session's one mutable slot. Loads and stores are plain
// atomic operations; no transactional isolation is promised across
// concurrent evaluations.
type memcell struct {
	bits atomic.Uint64
}

func (c *memcell) load() float64 {
	return math.Float64frombits(c.bits.Load())
}

func (c *memcell) store(v float64) {
	c.bits.Store(math.Float64bits(v))
}

// Session owns a name registry and a memory cell and evaluates expressions
// against them. A session is safe for concurrent use: evaluation shares no
// mutable state other than reads of the memory cell.
type Session struct {
	mem memcell
	reg registry
}

// NewSession creates a session with memory set to zero.
func NewSession() *Session {
	s := &Session{}
	s.reg = newRegistry(&s.mem)
	return s
}

// Evaluate normalizes, parses, and evaluates a single expression. Errors
// classify with Kind.
func (s *Session) Evaluate(text string) (float64, error) {
	a, err := ParseString(Normalize(text))
	if err != nil {
		return 0, err
	}
	return a.Eval(s)
}

// Store sets the memory cell. Memory changes only through Store and Clear;
// expressions read it via mem() but cannot write it.
func (s *Session) Store(v float64) {
	s.mem.store(v)
}

// Recall returns the memory cell's value.
func (s *Session) Recall() float64 {
	return s.mem.load()
}

// Clear resets the memory cell to zero.
func (s *Session) Clear() {
	s.mem.store(0)
}

// Result is the outcome of one expression in a batch. Exactly one of Value
// and Err is meaningful.
type Result struct {
	// Expr is the originating expression text.
	Expr  string
	Value float64
	Err   error
}

// EvaluateAll evaluates a batch of independent expressions concurrently.
// Results are recorded by input index, so they attribute back to their
// expressions regardless of completion order. One failing expression never
// affects its siblings. If ctx is canceled or its deadline passes,
// unfinished expressions record the context's error.
func (s *Session) EvaluateAll(ctx context.Context, exprs []string) []Result {
	res := make([]Result, len(exprs))
	var wg sync.WaitGroup
	for i, src := range exprs {
		i, src := i, src
		res[i].Expr = src
		wg.Add(1)
		go func() {
			defer wg.Done()
			type outcome struct {
				v   float64
				err error
			}
			ch := make(chan outcome, 1)
			go func() {
				v, err := s.Evaluate(src)
				ch <- outcome{v, err}
			}()
			select {
			case o := <-ch:
				res[i].Value, res[i].Err = o.v, o.err
			case <-ctx.Done():
				res[i].Err = ctx.Err()
			}
		}()
	}
	wg.Wait()
	return res
}

// EvalString is a shortcut to evaluate one expression on a fresh session.
func EvalString(src string) (float64, error) {
	return NewSession().Evaluate(src)
}
