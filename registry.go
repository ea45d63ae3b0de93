package calc

import "math"

// Value is an evaluated operand: a single number or, for list literals, an
// ordered sequence of numbers. Only function arguments may be sequences.
type Value struct {
	num   float64
	seq   []float64
	isSeq bool
}

func number(f float64) Value {
	return Value{num: f}
}

func sequence(s []float64) Value {
	return Value{seq: s, isSeq: true}
}

// Entry is a name registry entry: a Constant or a *Function. The registry
// is the entire set of names an expression may use; there is no fallback
// lookup anywhere else.
type Entry interface {
	registryEntry()
}

// Constant is a registry entry holding a fixed numeric value.
type Constant float64

func (Constant) registryEntry() {}

// Function is a registry entry holding a callable with declared arity
// bounds.
type Function struct {
	min, max int
	fn       func(args []Value) (float64, error)
}

func (*Function) registryEntry() {}

// CanCall reports whether the function accepts n arguments.
func (f *Function) CanCall(n int) bool {
	return f.min <= n && n <= f.max
}

type registry map[string]Entry

// scalarArg extracts argument i as a number, rejecting sequences.
func scalarArg(name string, args []Value, i int) (float64, error) {
	if args[i].isSeq {
		return 0, &TypeError{Where: "sequence argument to " + name + " where a number is required"}
	}
	return args[i].num, nil
}

// monadic wraps a function of one number into a registry Function.
func monadic(name string, f func(x float64) (float64, error)) *Function {
	return &Function{min: 1, max: 1, fn: func(args []Value) (float64, error) {
		x, err := scalarArg(name, args, 0)
		if err != nil {
			return 0, err
		}
		return f(x)
	}}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// factorial truncates its argument to an integer. Arguments above 170
// overflow float64, so the result saturates to +Inf without iterating.
func factorial(name string) *Function {
	return monadic(name, func(x float64) (float64, error) {
		n := math.Trunc(x)
		if n < 0 {
			return 0, &DomainError{X: x, Arg: 1, Func: name}
		}
		if n > 170 {
			return math.Inf(1), nil
		}
		r := 1.0
		for i := 2.0; i <= n; i++ {
			r *= i
		}
		return r, nil
	})
}

// newRegistry builds the static name registry for one session. Trig takes
// and returns degrees. The mem entry is the single dynamic binding: it
// reads the session's memory cell through the given handle at call time.
func newRegistry(cell *memcell) registry {
	return registry{
		"pi": Constant(math.Pi),
		"e":  Constant(math.E),

		"sin": monadic("sin", func(x float64) (float64, error) { return math.Sin(radians(x)), nil }),
		"cos": monadic("cos", func(x float64) (float64, error) { return math.Cos(radians(x)), nil }),
		"tan": monadic("tan", func(x float64) (float64, error) { return math.Tan(radians(x)), nil }),
		"asin": monadic("asin", func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, &DomainError{X: x, Arg: 1, Func: "asin"}
			}
			return degrees(math.Asin(x)), nil
		}),
		"acos": monadic("acos", func(x float64) (float64, error) {
			if x < -1 || x > 1 {
				return 0, &DomainError{X: x, Arg: 1, Func: "acos"}
			}
			return degrees(math.Acos(x)), nil
		}),
		"atan": monadic("atan", func(x float64) (float64, error) { return degrees(math.Atan(x)), nil }),

		"sqrt": monadic("sqrt", func(x float64) (float64, error) {
			if x < 0 {
				return 0, &DomainError{X: x, Arg: 1, Func: "sqrt"}
			}
			return math.Sqrt(x), nil
		}),
		"log": monadic("log", func(x float64) (float64, error) {
			if x <= 0 {
				return 0, &DomainError{X: x, Arg: 1, Func: "log"}
			}
			return math.Log(x), nil
		}),
		"log10": monadic("log10", func(x float64) (float64, error) {
			if x <= 0 {
				return 0, &DomainError{X: x, Arg: 1, Func: "log10"}
			}
			return math.Log10(x), nil
		}),

		"abs":   monadic("abs", func(x float64) (float64, error) { return math.Abs(x), nil }),
		"floor": monadic("floor", func(x float64) (float64, error) { return math.Floor(x), nil }),
		"ceil":  monadic("ceil", func(x float64) (float64, error) { return math.Ceil(x), nil }),

		// round takes an optional precision argument. Half-way cases round
		// to even.
		"round": &Function{min: 1, max: 2, fn: func(args []Value) (float64, error) {
			x, err := scalarArg("round", args, 0)
			if err != nil {
				return 0, err
			}
			if len(args) == 1 {
				return math.RoundToEven(x), nil
			}
			p, err := scalarArg("round", args, 1)
			if err != nil {
				return 0, err
			}
			shift := math.Pow(10, math.Trunc(p))
			return math.RoundToEven(x*shift) / shift, nil
		}},

		"fact":      factorial("fact"),
		"factorial": factorial("factorial"),

		"sum": &Function{min: 1, max: 1, fn: func(args []Value) (float64, error) {
			if !args[0].isSeq {
				return 0, &TypeError{Where: "sum requires a sequence argument"}
			}
			var t float64
			for _, v := range args[0].seq {
				t += v
			}
			return t, nil
		}},

		"mem": &Function{min: 0, max: 0, fn: func([]Value) (float64, error) {
			return cell.load(), nil
		}},
	}
}
