package calc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/quartzite/calc"
)

func TestSessionMemory(t *testing.T) {
	sess := calc.NewSession()

	if got, err := sess.Evaluate("mem()"); err != nil || got != 0 {
		t.Errorf("fresh memory: want 0, got %g (err %v)", got, err)
	}

	sess.Store(7.5)
	if got := sess.Recall(); got != 7.5 {
		t.Errorf("after Store(7.5): Recall gave %g", got)
	}
	if got, err := sess.Evaluate("mem + 1"); err != nil || got != 8.5 {
		t.Errorf("mem + 1 after Store(7.5): want 8.5, got %g (err %v)", got, err)
	}
	if got, err := sess.Evaluate("mem() * 2"); err != nil || got != 15 {
		t.Errorf("mem() * 2 after Store(7.5): want 15, got %g (err %v)", got, err)
	}

	sess.Clear()
	if got, err := sess.Evaluate("mem"); err != nil || got != 0 {
		t.Errorf("after Clear: want 0, got %g (err %v)", got, err)
	}
}

func TestSessionsIndependent(t *testing.T) {
	a := calc.NewSession()
	b := calc.NewSession()
	a.Store(3)
	if got := b.Recall(); got != 0 {
		t.Errorf("storing in one session leaked into another: %g", got)
	}
}

func TestEvaluateAll(t *testing.T) {
	exprs := []string{
		"2 + 2",
		"1/0",
		"mem * 10",
		"sqrt(144)",
		"nope",
	}
	sess := calc.NewSession()
	sess.Store(2.5)
	res := sess.EvaluateAll(context.Background(), exprs)
	if len(res) != len(exprs) {
		t.Fatalf("want %d results, got %d", len(exprs), len(res))
	}
	for i, r := range res {
		if r.Expr != exprs[i] {
			t.Errorf("result %d attributes to %q, want %q", i, r.Expr, exprs[i])
		}
		// Every expression gives the same answer it would sequentially.
		want, wantErr := sess.Evaluate(exprs[i])
		if (r.Err == nil) != (wantErr == nil) {
			t.Errorf("result %d (%q): err %v, sequential err %v", i, r.Expr, r.Err, wantErr)
			continue
		}
		if r.Err == nil && r.Value != want {
			t.Errorf("result %d (%q): %g, sequential %g", i, r.Expr, r.Value, want)
		}
	}
	if res[1].Err == nil || calc.Kind(res[1].Err) != calc.ErrDivision {
		t.Errorf("1/0 in batch: want DivisionByZero, got %v", res[1].Err)
	}
	if res[3].Err != nil || res[3].Value != 12 {
		t.Errorf("sqrt(144) in batch: want 12, got %g (err %v)", res[3].Value, res[3].Err)
	}
}

func TestEvaluateAllEmpty(t *testing.T) {
	sess := calc.NewSession()
	res := sess.EvaluateAll(context.Background(), nil)
	if len(res) != 0 {
		t.Errorf("empty batch gave %d results", len(res))
	}
}

func TestEvaluateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := calc.NewSession()
	res := sess.EvaluateAll(ctx, []string{"2 + 2", "3 + 3"})
	for i, r := range res {
		// A result may still have raced in ahead of the cancellation, but
		// any error must be the context's, not an evaluation failure.
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d: %v", i, r.Err)
		}
	}
}

func TestEvalString(t *testing.T) {
	got, err := calc.EvalString("6 * 7")
	if err != nil || got != 42 {
		t.Errorf("EvalString(6 * 7): want 42, got %g (err %v)", got, err)
	}
}

func ExampleSession_Store() {
	sess := calc.NewSession()
	sess.Store(7.5)
	v, _ := sess.Evaluate("mem + 1")
	fmt.Println(v)
	// Output:
	// 8.5
}
