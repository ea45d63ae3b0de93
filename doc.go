// Package calc implements a sandboxed evaluator for infix arithmetic.
//
// Expressions are plain math notation: "2 + 2", "3 * (4 + 5)",
// "sqrt(25) + fact(5)". Evaluation walks a parsed syntax tree under a
// closed allow-list of operators and named functions; there is no path
// from an expression to general code execution. Anything outside the
// allow-list fails with a typed error rather than a crash or a NaN.
//
// A Session owns a single numeric memory cell, readable from
// expressions as "mem()" (or bare "mem", which the preprocessor
// rewrites). The caret is accepted as a power operator and never as
// bitwise XOR. Many expressions may be evaluated on one session
// concurrently; the memory cell is the only shared state.
package calc
