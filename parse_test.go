package calc

import (
	"errors"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind || n.val != m.val || n.name != m.name {
		return n, m
	}
	if len(n.args) != len(m.args) {
		return n, m
	}
	for i := range n.args {
		if d, e := n.args[i].diff(m.args[i]); d != nil || e != nil {
			return d, e
		}
	}
	if d, e := n.left.diff(m.left); d != nil || e != nil {
		return d, e
	}
	return n.right.diff(m.right)
}

func TestParseEquivalences(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"mul-before-add", "1+2*3", "1+(2*3)"},
		{"div-before-sub", "1-6/3", "1-(6/3)"},
		{"mod-at-term-level", "7%3*2", "(7%3)*2"},
		{"floordiv-at-term-level", "7//2*3", "(7//2)*3"},
		{"add-left-assoc", "1-2-3", "(1-2)-3"},
		{"term-left-assoc", "8/4/2", "(8/4)/2"},
		{"pow-right-assoc", "2**3**2", "2**(3**2)"},
		{"pow-before-mul", "2*3**2", "2*(3**2)"},
		{"sign-binds-base", "-2**2", "(-2)**2"},
		{"sign-in-exponent", "2**-3", "2**(-3)"},
		{"call-is-primary", "sin(90)+1", "(sin(90))+1"},
		{"args-whitespace", "[1, 2]", "[1,2]"},
		{"nested-call", "sum([1,sqrt(4)])", "sum( [ 1 , sqrt( 4 ) ] )"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.b, err)
			}
			if d, e := a.n.diff(b.n); d != nil || e != nil {
				t.Errorf("%q and %q parse differently:\n\t%v\n\t%v\n\tfirst difference: %v vs %v", c.a, c.b, a, b, d, e)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	srcs := []string{
		"2 + 2",
		"3 * (4 + 5)",
		"sqrt(25) + fact(5)",
		"sum([1, 2, 3])",
		"-2**-3",
		"mem()",
	}
	for _, src := range srcs {
		a, err := ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		b, err := ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to re-parse: %v", src, err)
		}
		if d, e := a.n.diff(b.n); d != nil || e != nil {
			t.Errorf("%q parses differently on re-parse: %v vs %v", src, d, e)
		}
	}
}

func TestParseErrors(t *testing.T) {
	var (
		lexErr   *LexError
		brErr    *BracketError
		emptyErr *EmptyExpressionError
		opErr    *OperatorError
		sepErr   *SeparatorError
		tokErr   *TokenError
	)
	cases := []struct {
		name string
		src  string
		as   any
	}{
		{"empty", "", &emptyErr},
		{"spaces", "   ", &emptyErr},
		{"trailing-op", "2+", &emptyErr},
		{"trailing-ops", "2 ++", &emptyErr},
		{"open-group", "2+(", &emptyErr},
		{"unclosed", "(2", &brErr},
		{"unopened", "2)", &brErr},
		{"mismatched", "(1]", &brErr},
		{"unclosed-call", "sin(1", &brErr},
		{"unclosed-list", "[1, 2", &brErr},
		{"empty-group", "()", &emptyErr},
		{"double-sign", "--2", &opErr},
		{"stacked-mul", "2 * * 3", &opErr},
		{"bare-sep", "1,2", &sepErr},
		{"sep-in-group", "(1,2)", &sepErr},
		{"trailing-arg-sep", "f(1,)", &emptyErr},
		{"adjacent-terms", "2 3", &tokErr},
		{"bad-rune", "$", &lexErr},
		{"double-dot", "1..2", &lexErr},
		{"caret-unrewritten", "2^3", &lexErr},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed with no error", c.src)
			}
			if !errors.As(err, c.as) {
				t.Errorf("%q gave %#v, not %T", c.src, err, c.as)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q gave %#v, which is not an InputError", c.src, err)
			} else if ie.Pos() < 0 {
				t.Errorf("%q gave negative position %d", c.src, ie.Pos())
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"-2**2", "((-2) ** 2)"},
		{"7//2%3", "((7 // 2) % 3)"},
		{"sum([1, 2])", "sum([1, 2])"},
		{"mem()", "mem()"},
		{"sqrt(25) + fact(5)", "(sqrt(25) + fact(5))"},
	}
	for _, c := range cases {
		a, err := ParseString(c.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		if got := a.String(); got != c.want {
			t.Errorf("%q renders as %q, want %q", c.src, got, c.want)
		}
	}
}

func TestBinopTextCoversBinaryKinds(t *testing.T) {
	for _, k := range []nodeKind{nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodeFloorDiv, nodePow} {
		if binopText(k) == "" {
			t.Errorf("no operator text for %v", k)
		}
	}
}
