package regena

import (
	"testing"
)

func TestCompileAndMatchLiteral(t *testing.T) {
	re, err := Compile("abc")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.Match("abc") {
		t.Errorf("expected \"abc\" to match")
	}
	if re.Match("abcd") {
		t.Errorf("expected \"abcd\" to reject (whole-match only)")
	}
	if re.Match("ab") {
		t.Errorf("expected a prefix-only string to reject")
	}
}

func TestCompileUnionAndRepetition(t *testing.T) {
	re, err := Compile("(ab|ba)+")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, s := range []string{"ab", "ba", "abba", "abab", "baba"} {
		if !re.Match(s) {
			t.Errorf("expected %q to match", s)
		}
	}
	for _, s := range []string{"", "a", "abb", "abc"} {
		if re.Match(s) {
			t.Errorf("expected %q to reject", s)
		}
	}
}

func TestCompileIntersection(t *testing.T) {
	// strings over {a,b} of length 4, that also contain "ab" somewhere.
	re, err := Compile("(a|b){4}&.*ab.*")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.Match("aabb") {
		t.Errorf("expected \"aabb\" to match")
	}
	if re.Match("bbaa") {
		t.Errorf("expected \"bbaa\" to reject: no \"ab\" substring")
	}
	if re.Match("ababa") {
		t.Errorf("expected \"ababa\" to reject: wrong length")
	}
}

func TestCompileComplement(t *testing.T) {
	// ! takes the whole following e0 as its operand, so !(a.*) and !a.*
	// both negate the "starts with a" language; the group is explicit
	// here only for readability.
	re, err := Compile("!(a.*)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re.Match("abc") {
		t.Errorf("expected \"abc\" to reject: starts with a")
	}
	if !re.Match("bbb") {
		t.Errorf("expected \"bbb\" to match: does not start with a")
	}
	if !re.Match("") {
		t.Errorf("expected \"\" to match: does not start with a")
	}
}

func TestCompileDoubleComplementCancels(t *testing.T) {
	re, err := Compile("!!abc")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.Match("abc") {
		t.Errorf("expected \"abc\" to match under double complement")
	}
	if re.Match("abd") {
		t.Errorf("expected \"abd\" to reject under double complement")
	}
}

func TestCompileCharClassAndDot(t *testing.T) {
	re, err := Compile("[a-c].[0-9]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.Match("aX5") {
		t.Errorf("expected \"aX5\" to match")
	}
	if re.Match("dX5") {
		t.Errorf("expected \"dX5\" to reject: d outside [a-c]")
	}
}

func TestCompileEngineLevelsAgree(t *testing.T) {
	pattern := "(foo|bar)(baz)?[0-9]{2,4}"
	inputs := []string{"foo12", "bar123456", "foobaz99", "foo1", "qux12"}

	levels := []Level{LevelOnone, LevelO0, LevelO1, LevelO2, LevelO3}
	var results [][]bool
	for _, lvl := range levels {
		cfg := DefaultConfig()
		cfg.MaxOptimise = lvl
		re, err := CompileWithConfig(pattern, cfg)
		if err != nil {
			t.Fatalf("CompileWithConfig(%v): %v", lvl, err)
		}
		if re.Level() != lvl {
			t.Fatalf("expected Level() == %v, got %v", lvl, re.Level())
		}
		var got []bool
		for _, in := range inputs {
			got = append(got, re.Match(in))
		}
		results = append(results, got)
	}

	for i := 1; i < len(results); i++ {
		for j := range inputs {
			if results[i][j] != results[0][j] {
				t.Errorf("engine level mismatch on %q: level %v got %v, level %v got %v",
					inputs[j], levels[0], results[0][j], levels[i], results[i][j])
			}
		}
	}
}

func TestCompileBadPatternReturnsParseError(t *testing.T) {
	_, err := Compile("(abc")
	if err == nil {
		t.Fatal("expected an error for an unmatched paren")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestMustCompilePanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on an invalid pattern")
		}
	}()
	MustCompile("[unterminated")
}

func TestOptimiseSwapsEngine(t *testing.T) {
	re, err := Compile("a(b|c)*d")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re.Level() != LevelO3 {
		t.Fatalf("expected default Level() == LevelO3, got %v", re.Level())
	}
	if err := re.Optimise(LevelO0); err != nil {
		t.Fatalf("Optimise(LevelO0): %v", err)
	}
	if re.Level() != LevelO0 {
		t.Errorf("expected Level() == LevelO0 after Optimise, got %v", re.Level())
	}
	if !re.Match("abbcd") {
		t.Errorf("expected \"abbcd\" to still match after Optimise")
	}
}

func TestOptimiseUnavailableFromOnone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxOptimise = LevelOnone
	re, err := CompileWithConfig("abc", cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}
	if err := re.Optimise(LevelO3); err == nil {
		t.Fatal("expected Optimise(LevelO3) to fail from a Regex with no DFA")
	}
}

func TestPrintRegexRoundTripsLanguage(t *testing.T) {
	re, err := Compile("a(b|c)d")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	printed := re.PrintRegex()
	re2, err := Compile(printed)
	if err != nil {
		t.Fatalf("Compile(printed %q): %v", printed, err)
	}
	for _, s := range []string{"abd", "acd", "ad", "abcd"} {
		if re.Match(s) != re2.Match(s) {
			t.Errorf("printed-regex mismatch on %q", s)
		}
	}
}

func TestDumpExprTreeIsNonEmpty(t *testing.T) {
	re, err := Compile("a*")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re.DumpExprTree() == "" {
		t.Error("expected a non-empty tree dump")
	}
	if re.PrintParseTree() == "" {
		t.Error("expected a non-empty parse tree print")
	}
}

func TestNumCaptures(t *testing.T) {
	re, err := Compile("(a)(b(c))")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re.NumCaptures() != 3 {
		t.Errorf("expected 3 capture groups, got %d", re.NumCaptures())
	}
}

func TestStateLimitFallsBackToOnone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateLimit = 1
	re, err := CompileWithConfig("a{1,50}", cfg)
	if err == nil {
		t.Fatal("expected a CapacityExceeded diagnostic")
	}
	if !containsCapacityExceeded(err) {
		t.Fatalf("expected *CapacityExceeded in the error chain, got %v", err)
	}
	if re.Level() != LevelOnone {
		t.Errorf("expected fallback to LevelOnone, got %v", re.Level())
	}
	if !re.Match("aaaaa") {
		t.Errorf("expected the degraded engine to still match correctly")
	}
}

// TestSpecScenarios covers the six concrete end-to-end scenarios from
// spec.md §8, literal input/output pairs against Compile+Match. Two
// patterns are written slightly differently from spec.md's prose form:
// scenario 4's "complement of the singleton language" wraps abc in
// parens, which parses the same as !abc since ! takes a whole e0
// operand (see TestCompileComplement); scenario 5's "&" has no
// surrounding whitespace since the lexer doesn't skip spaces.
func TestSpecScenarios(t *testing.T) {
	type scenario struct {
		name    string
		pattern string
		withCfg func(Config) Config
		accepts []string
		rejects []string
	}

	scenarios := []scenario{
		{
			name:    "anchored union-star",
			pattern: "^a(b|c)*d$",
			accepts: []string{"abcbcd"},
			rejects: []string{"abcbce"},
		},
		{
			name:    "bounded self-recursion",
			pattern: "a(?R)?b",
			withCfg: func(c Config) Config {
				c.RecursiveLimit = 4
				return c
			},
			accepts: []string{"aaabbb"},
			rejects: []string{"aabbb"},
		},
		{
			name:    "bounded repetition of a character class",
			pattern: "[a-z]{2,4}",
			accepts: []string{"ab", "abcd"},
			rejects: []string{"a", "abcde"},
		},
		{
			name:    "complement of a singleton",
			pattern: "!(abc)",
			accepts: []string{"abcd", "ab", ""},
			rejects: []string{"abc"},
		},
		{
			name:    "intersection of digits and a substring",
			pattern: "[0-9]+&.*5.*",
			accepts: []string{"12345"},
			rejects: []string{"1234", "12a45"},
		},
		{
			name:    "byte-level literal escapes",
			pattern: `\xff\x00`,
			accepts: []string{"\xff\x00"},
			rejects: []string{"\xff\x01"},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if sc.withCfg != nil {
				cfg = sc.withCfg(cfg)
			}
			re, err := CompileWithConfig(sc.pattern, cfg)
			if err != nil && !containsCapacityExceeded(err) {
				t.Fatalf("CompileWithConfig(%q): %v", sc.pattern, err)
			}
			for _, s := range sc.accepts {
				if !re.Match(s) {
					t.Errorf("pattern %q: expected %q to accept", sc.pattern, s)
				}
			}
			for _, s := range sc.rejects {
				if re.Match(s) {
					t.Errorf("pattern %q: expected %q to reject", sc.pattern, s)
				}
			}
		})
	}
}

func containsCapacityExceeded(err error) bool {
	if _, ok := err.(*CapacityExceeded); ok {
		return true
	}
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range u.Unwrap() {
			if containsCapacityExceeded(e) {
				return true
			}
		}
	}
	return false
}
