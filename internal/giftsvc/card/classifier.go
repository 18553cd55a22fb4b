package card

import (
	"regexp"
)

const TypeOther = "Other"

type pattern struct {
	name string
	re   *regexp.Regexp
}

// patterns are tried in order; the generic Store Card pattern must stay
// last or it would shadow the numeric brands above it.
var patterns = []pattern{
	{"Amazon", regexp.MustCompile(`(?i)^[A-Z0-9]{4}-[A-Z0-9]{6}-[A-Z0-9]{4}$`)},
	{"iTunes", regexp.MustCompile(`(?i)^[A-Z0-9]{16}$`)},
	{"Google Play", regexp.MustCompile(`(?i)^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)},
	{"Steam", regexp.MustCompile(`(?i)^[A-Z0-9]{5}-[A-Z0-9]{5}-[A-Z0-9]{5}$`)},
	{"Visa", regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)},
	{"Mastercard", regexp.MustCompile(`^5[1-5][0-9]{14}$`)},
	{"Walmart", regexp.MustCompile(`^[0-9]{16}$`)},
	{"Target", regexp.MustCompile(`^[0-9]{16}$`)},
	{"Store Card", regexp.MustCompile(`^[0-9]{13,19}$`)},
}

// spaceClass is every character web clients treat as whitespace: ASCII
// spacing, vertical tab, Unicode space separators (NBSP, thin space...),
// line and paragraph separators and the BOM.
const spaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var whitespaceRe = regexp.MustCompile(`[` + spaceClass + `]+`)

// DetectType returns the label of the first pattern matching code with
// all whitespace removed, or TypeOther.
func DetectType(code string) string {
	clean := whitespaceRe.ReplaceAllString(code, "")
	for _, p := range patterns {
		if p.re.MatchString(clean) {
			return p.name
		}
	}
	return TypeOther
}

// Types lists the known labels in match order, followed by TypeOther.
func Types() []string {
	out := make([]string, 0, len(patterns)+1)
	for _, p := range patterns {
		out = append(out, p.name)
	}
	return append(out, TypeOther)
}

// IsAutoDetect reports whether a caller-supplied card type should be
// replaced by detection.
func IsAutoDetect(cardType string) bool {
	return cardType == "" || cardType == TypeOther
}
