package calc

import "math"

// Eval evaluates the expression against a session's registry and memory
// cell. The result is a single number; any violation of the allow-list or
// of an operator's domain is a typed error, never a NaN or a panic.
func (e *Expr) Eval(s *Session) (float64, error) {
	v, err := e.n.eval(s.reg)
	if err != nil {
		return 0, err
	}
	if v.isSeq {
		return 0, &TypeError{Where: "expression yields a sequence, not a number"}
	}
	return v.num, nil
}

// eval is the restricted tree walk. The switch enumerates the closed node
// set; the default arm reports anything else instead of trusting that the
// parser is the only producer of trees.
func (n *node) eval(reg registry) (Value, error) {
	switch n.kind {
	case nodeNum:
		return number(n.val), nil
	case nodeName:
		switch e := reg[n.name].(type) {
		case Constant:
			return number(float64(e)), nil
		case *Function:
			return Value{}, &UnknownNameError{Name: n.name, IsFunc: true}
		default:
			return Value{}, &UnknownNameError{Name: n.name}
		}
	case nodeCall:
		ent, ok := reg[n.name]
		if !ok {
			return Value{}, &UnknownFunctionError{Name: n.name}
		}
		f, ok := ent.(*Function)
		if !ok {
			return Value{}, &NotCallableError{Name: n.name}
		}
		args := make([]Value, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(reg)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		if !f.CanCall(len(args)) {
			return Value{}, &ArityError{Func: n.name, Len: len(args), Min: f.min, Max: f.max}
		}
		r, err := f.fn(args)
		if err != nil {
			return Value{}, err
		}
		// Some math functions return NaN instead of an error for infinite
		// arguments, e.g. sin(1e999). Those leave the real domain too.
		if math.IsNaN(r) {
			de := &DomainError{Func: n.name}
			if len(args) > 0 && !args[0].isSeq {
				de.X, de.Arg = args[0].num, 1
			}
			return Value{}, de
		}
		return number(r), nil
	case nodeList:
		elems := make([]float64, len(n.args))
		for i, a := range n.args {
			x, err := a.evalScalar(reg, "list element")
			if err != nil {
				return Value{}, err
			}
			elems[i] = x
		}
		return sequence(elems), nil
	case nodeNeg:
		x, err := n.left.evalScalar(reg, "-")
		if err != nil {
			return Value{}, err
		}
		return number(-x), nil
	case nodePos:
		x, err := n.left.evalScalar(reg, "+")
		if err != nil {
			return Value{}, err
		}
		return number(x), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodeFloorDiv, nodePow:
		op := binopText(n.kind)
		l, err := n.left.evalScalar(reg, op)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.evalScalar(reg, op)
		if err != nil {
			return Value{}, err
		}
		return applyBinary(n.kind, l, r)
	default:
		return Value{}, &UnsupportedError{Node: n.kind.String()}
	}
}

// evalScalar evaluates an operand that must be a single number.
func (n *node) evalScalar(reg registry, where string) (float64, error) {
	v, err := n.eval(reg)
	if err != nil {
		return 0, err
	}
	if v.isSeq {
		return 0, &TypeError{Where: "sequence operand to " + where}
	}
	return v.num, nil
}

func applyBinary(kind nodeKind, l, r float64) (Value, error) {
	op := binopText(kind)
	var res float64
	switch kind {
	case nodeAdd:
		res = l + r
	case nodeSub:
		res = l - r
	case nodeMul:
		res = l * r
	case nodeDiv:
		if r == 0 {
			return Value{}, &DivisionError{Op: op}
		}
		res = l / r
	case nodeMod:
		if r == 0 {
			return Value{}, &DivisionError{Op: op}
		}
		// Floored modulus: the result takes the sign of the divisor.
		res = math.Mod(l, r)
		if res != 0 && (res < 0) != (r < 0) {
			res += r
		}
	case nodeFloorDiv:
		if r == 0 {
			return Value{}, &DivisionError{Op: op}
		}
		res = math.Floor(l / r)
	case nodePow:
		res = math.Pow(l, r)
	}
	// An operation that produces NaN from real operands left the real
	// domain: a negative base with a fractional exponent, inf - inf, and
	// the like. Those surface as errors, never as NaN results.
	if math.IsNaN(res) && !math.IsNaN(l) && !math.IsNaN(r) {
		return Value{}, &DomainError{X: l, Func: op}
	}
	return number(res), nil
}
