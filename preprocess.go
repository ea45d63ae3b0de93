package calc

import "strings"

// Normalize rewrites raw expression text into the form the parser accepts.
// It is a pure text transform and never fails. Two rewrites apply, in order:
// every caret becomes the ** power operator, and every bare occurrence of
// the identifier mem becomes the call mem(). Normalization is a separate
// pass so that the grammar itself stays free of spelling concerns.
func Normalize(text string) string {
	return rewriteBareMem(rewriteCaret(text))
}

// rewriteCaret replaces ^ with **. The caret is always a power operator
// here, never bitwise XOR.
func rewriteCaret(text string) string {
	return strings.ReplaceAll(text, "^", "**")
}

// rewriteBareMem replaces each bare mem identifier with mem(). An occurrence
// is bare when the neighboring characters, if present, are not alphanumeric
// and the identifier is not already followed by an open parenthesis.
func rewriteBareMem(text string) string {
	if !strings.Contains(text, "mem") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], "mem") {
			prevOK := i == 0 || !isAlnum(text[i-1])
			nextOK := i+3 == len(text) || (!isAlnum(text[i+3]) && text[i+3] != '(')
			if prevOK && nextOK {
				b.WriteString("mem()")
				i += 3
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
