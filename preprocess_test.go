package calc

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"2 + 2", "2 + 2"},
		// caret rewrite
		{"2^10", "2**10"},
		{"2 ^ 10", "2 ** 10"},
		{"2^3^2", "2**3**2"},
		{"^", "**"},
		// bare mem rewrite
		{"mem", "mem()"},
		{"mem+1", "mem()+1"},
		{"1+mem", "1+mem()"},
		{"1 + mem * 2", "1 + mem() * 2"},
		{"mem()", "mem()"},
		{"mem(", "mem("},
		{"sin(mem)", "sin(mem())"},
		{"mem mem", "mem() mem()"},
		// not bare: part of a longer identifier
		{"memo", "memo"},
		{"amem", "amem"},
		{"mem1", "mem1"},
		{"1mem", "1mem"},
		// underscore is not alphanumeric, so these boundaries count as bare
		{"mem_1", "mem()_1"},
		{"_mem", "_mem()"},
		// both rewrites together
		{"mem^2", "mem()**2"},
		{"2^mem", "2**mem()"},
	}
	for _, c := range cases {
		if got := Normalize(c.src); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestNormalizeIsPure(t *testing.T) {
	src := "mem + 2^3"
	if a, b := Normalize(src), Normalize(src); a != b {
		t.Errorf("Normalize(%q) is unstable: %q then %q", src, a, b)
	}
	// Normalizing already-normalized text must not rewrite again.
	once := Normalize(src)
	if twice := Normalize(once); twice != once {
		t.Errorf("Normalize is not idempotent: %q then %q", once, twice)
	}
}
