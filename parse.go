package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// expr     := term (('+' | '-') term)*
// term     := factor (('*' | '/' | '%' | '//') factor)*
// factor   := unary ('**' unary)*      right-associative
// unary    := ('+' | '-')? primary
// primary  := NUMBER | '(' expr ')' | IDENT '(' args? ')' | IDENT | '[' args? ']'
// args     := expr (',' expr)*

// Expr is a parsed expression that can be evaluated against a session. The
// parser performs no name resolution; unknown identifiers and arity errors
// are reported at evaluation time so that syntax and allow-list violations
// stay distinguishable.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. All returned errors implement InputError.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	n, err := parseExpr(scan)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
		return &Expr{n: n}, nil
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// String creates a fully parenthesized representation of the parsed
// expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// parseExpr parses a sum of terms.
func parseExpr(scan *lexer) (*node, error) {
	n, err := parseTerm(scan)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		var kind nodeKind
		switch {
		case tok.kind == tokenOp && tok.text == "+":
			kind = nodeAdd
		case tok.kind == tokenOp && tok.text == "-":
			kind = nodeSub
		default:
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseTerm(scan)
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

// parseTerm parses a product of factors.
func parseTerm(scan *lexer) (*node, error) {
	n, err := parseFactor(scan)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		var kind nodeKind
		if tok.kind == tokenOp {
			switch tok.text {
			case "*":
				kind = nodeMul
			case "/":
				kind = nodeDiv
			case "%":
				kind = nodeMod
			case "//":
				kind = nodeFloorDiv
			}
		}
		if kind == nodeNone {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseFactor(scan)
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

// parseFactor parses an exponentiation. ** is right-associative, so the
// right-hand side is a whole factor.
func parseFactor(scan *lexer) (*node, error) {
	n, err := parseUnary(scan)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "**" {
		scan.push(tok)
		return n, nil
	}
	rhs, err := parseFactor(scan)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodePow, left: n, right: rhs}, nil
}

// parseUnary parses a primary with at most one leading sign.
func parseUnary(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var kind nodeKind
	switch {
	case tok.kind == tokenOp && tok.text == "+":
		kind = nodePos
	case tok.kind == tokenOp && tok.text == "-":
		kind = nodeNeg
	default:
		scan.push(tok)
		return parsePrimary(scan)
	}
	operand, err := parsePrimary(scan)
	if err != nil {
		return nil, err
	}
	return &node{kind: kind, left: operand}, nil
}

func parsePrimary(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return &node{kind: nodeNum, val: v}, nil
	case tokenIdent:
		nxt, err := scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen && nxt.text == "(" {
			args, err := parseArgs(scan, nxt)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeCall, name: tok.text, args: args}, nil
		}
		scan.push(nxt)
		return &node{kind: nodeName, name: tok.text}, nil
	case tokenOpen:
		if tok.text == "[" {
			args, err := parseArgs(scan, tok)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeList, args: args}, nil
		}
		n, err := parseExpr(scan)
		if err != nil {
			return nil, err
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokenClose || end.text != ")" {
			return nil, itShouldNotHaveEndedThisWay(tok, end)
		}
		return n, nil
	case tokenOp:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos}
	case tokenClose, tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parseArgs parses a bracketed, comma-separated list of zero or more
// argument expressions, consuming the matching close bracket.
func parseArgs(scan *lexer, open lexToken) ([]*node, error) {
	match := closebrackets[rightbracket(open.text)]
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose && tok.text == match {
		return nil, nil
	}
	scan.push(tok)
	var args []*node
	for {
		arg, err := parseExpr(scan)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenSep:
			continue
		case tokenClose:
			if end.text != match {
				return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
			}
			return args, nil
		default:
			return nil, itShouldNotHaveEndedThisWay(open, end)
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("calc: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a bracketed subexpression opened by open.
func itShouldNotHaveEndedThisWay(open, end lexToken) error {
	switch end.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: end.pos, Left: open.text, Right: ""}
	case tokenClose:
		return &BracketError{Col: end.pos, Left: open.text, Right: end.text}
	case tokenSep:
		// Separator outside a function call or list.
		return &SeparatorError{Col: end.pos}
	default:
		return &TokenError{Col: end.pos, Token: end.text}
	}
}
