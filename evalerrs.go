package calc

import (
	"errors"
	"strconv"
)

// ErrKind classifies every error the evaluator can produce, plus ErrParse
// for anything the parser rejects. The presentation layer keys off the kind;
// the error message carries the detail.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrParse
	ErrUnsupported
	ErrUnknownName
	ErrUnknownFunction
	ErrNotCallable
	ErrArity
	ErrDivision
	ErrDomain
	ErrType
)

var errKindNames = [...]string{
	"None", "ParseError", "UnsupportedExpression", "UnknownName",
	"UnknownFunction", "NotCallable", "ArityMismatch", "DivisionByZero",
	"DomainError", "TypeMismatch",
}

func (k ErrKind) String() string {
	if k < 0 || int(k) >= len(errKindNames) {
		return "ErrKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errKindNames[k]
}

// EvalError is an error produced by evaluating a parsed expression. Every
// evaluation error carries its kind.
type EvalError interface {
	error
	Kind() ErrKind
}

// Kind classifies any error returned from evaluating an expression. Parse
// and lex errors classify as ErrParse; errors from outside the evaluator
// (for example a canceled batch context) classify as ErrNone.
func Kind(err error) ErrKind {
	var ee EvalError
	if errors.As(err, &ee) {
		return ee.Kind()
	}
	var ie InputError
	if errors.As(err, &ie) {
		return ErrParse
	}
	return ErrNone
}

// UnsupportedError indicates a syntax tree node outside the closed set the
// evaluator accepts. The grammar cannot produce one, but the evaluator
// defends independently rather than trusting its caller.
type UnsupportedError struct {
	// Node describes the rejected node kind.
	Node string
}

func (err *UnsupportedError) Error() string {
	return "unsupported expression: " + err.Node
}

func (err *UnsupportedError) Kind() ErrKind { return ErrUnsupported }

// UnknownNameError indicates an identifier that does not resolve to a
// numeric constant.
type UnknownNameError struct {
	// Name is the identifier.
	Name string
	// IsFunc reports that the name exists but is a function, which cannot be
	// referenced as a value.
	IsFunc bool
}

func (err *UnknownNameError) Error() string {
	if err.IsFunc {
		return strconv.Quote(err.Name) + " is a function and must be called"
	}
	return "unknown name " + strconv.Quote(err.Name)
}

func (err *UnknownNameError) Kind() ErrKind { return ErrUnknownName }

// UnknownFunctionError indicates a call of a name that is not in the
// registry.
type UnknownFunctionError struct {
	// Name is the name that was called.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

func (err *UnknownFunctionError) Kind() ErrKind { return ErrUnknownFunction }

// NotCallableError indicates call syntax applied to a constant.
type NotCallableError struct {
	// Name is the constant that was called.
	Name string
}

func (err *NotCallableError) Error() string {
	return strconv.Quote(err.Name) + " is not callable"
}

func (err *NotCallableError) Kind() ErrKind { return ErrNotCallable }

// ArityError indicates a function call with an argument count outside the
// function's declared bounds.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Min and Max are the function's declared bounds.
	Min, Max int
}

func (err *ArityError) Error() string {
	want := strconv.Itoa(err.Min)
	if err.Max != err.Min {
		want += " to " + strconv.Itoa(err.Max)
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) +
		" arguments (expects " + want + ")"
}

func (err *ArityError) Kind() ErrKind { return ErrArity }

// DivisionError indicates a zero divisor or modulus.
type DivisionError struct {
	// Op is the operator: /, //, or %.
	Op string
}

func (err *DivisionError) Error() string {
	if err.Op == "%" {
		return "modulus by zero"
	}
	return "division by zero"
}

func (err *DivisionError) Kind() ErrKind { return ErrDivision }

// DomainError indicates an argument outside a function's or operator's
// domain, such as the square root of a negative number.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument, or 0 when not applicable.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Kind() ErrKind { return ErrDomain }

// TypeError indicates a sequence in a context that requires a single
// number, or a number where a sequence is required.
type TypeError struct {
	// Where describes the violating context.
	Where string
}

func (err *TypeError) Error() string {
	return "type mismatch: " + err.Where
}

func (err *TypeError) Kind() ErrKind { return ErrType }

var (
	_ EvalError = (*UnsupportedError)(nil)
	_ EvalError = (*UnknownNameError)(nil)
	_ EvalError = (*UnknownFunctionError)(nil)
	_ EvalError = (*NotCallableError)(nil)
	_ EvalError = (*ArityError)(nil)
	_ EvalError = (*DivisionError)(nil)
	_ EvalError = (*DomainError)(nil)
	_ EvalError = (*TypeError)(nil)
)
