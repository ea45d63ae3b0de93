package calc

import "strconv"

// OperatorError is an error indicating an operator token in a position where
// no operator may appear. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "misplaced operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket, or of the end of input
	// when a bracket was never closed.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list or list literal. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, `separator "," outside an argument list`)
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that cannot continue the
// expression, such as a second expression with no operator between. It
// implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the unexpected token.
	Token string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from text that fails to parse implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*LexError)(nil)
)
