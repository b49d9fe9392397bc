// Package round extracts explicit round numbers from free-text lines.
//
// Forum posts name rounds inconsistently: "Round 3", "Turno 3", "terzo
// turno", "Turno III". Detection first rewrites spelled-out Italian
// ordinals and roman numerals into Arabic digits, then searches for a
// round word next to a number.
package round

import (
	"regexp"
	"strconv"
)

// rewriteRule rewrites one non-standard round-number form.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Ordinal words and roman numerals I-XVI, word-bounded. Only the first
// matching rule is applied, to avoid double-rewriting (e.g. the "1" that
// "primo" produced being picked up again).
var rewriteRules = buildRewriteRules([]struct {
	form string
	num  int
}{
	{"primo", 1}, {"secondo", 2}, {"terzo", 3}, {"quarto", 4},
	{"quinto", 5}, {"sesto", 6}, {"settimo", 7}, {"ottavo", 8},
	{"nono", 9}, {"decimo", 10}, {"undicesimo", 11}, {"dodicesimo", 12},
	{"tredicesimo", 13}, {"quattordicesimo", 14}, {"quindicesimo", 15},
	{"sedicesimo", 16},
	{"I", 1}, {"II", 2}, {"III", 3}, {"IV", 4}, {"V", 5}, {"VI", 6},
	{"VII", 7}, {"VIII", 8}, {"IX", 9}, {"X", 10}, {"XI", 11},
	{"XII", 12}, {"XIII", 13}, {"XIV", 14}, {"XV", 15}, {"XVI", 16},
})

func buildRewriteRules(forms []struct {
	form string
	num  int
}) []rewriteRule {
	rules := make([]rewriteRule, len(forms))
	for i, f := range forms {
		rules[i] = rewriteRule{
			pattern:     regexp.MustCompile(`(?i)(^|\W)` + f.form + `($|\W)`),
			replacement: " " + strconv.Itoa(f.num) + " ",
		}
	}
	return rules
}

// Round word next to a number, in either order.
var searchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Round|Turno)\D*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\D*(?:Round|Turno)`),
}

// Normalize rewrites the first ordinal-word or roman-numeral form found in
// line into its Arabic equivalent, padded with spaces. At most one rule is
// applied; a line with no such form is returned unchanged.
func Normalize(line string) string {
	for _, rule := range rewriteRules {
		if rule.pattern.MatchString(line) {
			return rule.pattern.ReplaceAllString(line, rule.replacement)
		}
	}
	return line
}

// Detect returns the round number named on the line, if any. A captured
// number that does not parse as an integer is treated as no match.
func Detect(line string) (int, bool) {
	line = Normalize(line)
	for _, pattern := range searchPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}
