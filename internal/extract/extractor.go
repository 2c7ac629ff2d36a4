// Package extract parses free-form query text into a structured constraint
// set using deterministic pattern rules. It is pure text analysis: no model
// calls, no I/O, and it never fails: an utterance matching nothing simply
// yields an unconstrained set.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hotelgenx/concierge/internal/domain/constraint"
)

// number accepts plain digit runs and digits grouped by a locale thousand
// separator (space, NBSP, comma or dot): "5000", "10 000", "1,500".
const number = `(\d{1,3}(?:[ \x{00a0}.,]\d{3})+|\d+)`

var (
	priceMaxRe = regexp.MustCompile(`(?:не дороже|дешевле|не более|максимум|до)\s+` + number)
	priceMinRe = regexp.MustCompile(`(?:минимум|свыше|от)\s+` + number)
)

// luxuryStems set a five-star lower bound. No other star thresholds are
// extracted from text.
var luxuryStems = []string{"5 зв", "пятизв", "люкс", "luxury"}

// Extractor turns utterances into constraint sets.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract applies every rule independently to the utterance. Later rules may
// overwrite a field set by an earlier one; a conflicting price bound evicts
// the opposite bound so the range never inverts.
func (e *Extractor) Extract(utterance string) constraint.Set {
	lower := strings.ToLower(utterance)
	b := constraint.NewBuilder()

	if n, ok := firstNumber(priceMaxRe, lower); ok {
		b.PriceMax(n)
	}
	if n, ok := firstNumber(priceMinRe, lower); ok {
		b.PriceMin(n)
	}

	if name, ok := matchPlace(countryGroups, lower); ok {
		b.Country(name)
	}
	if name, ok := matchPlace(cityGroups, lower); ok {
		b.City(name)
	}

	for _, stem := range luxuryStems {
		if strings.Contains(lower, stem) {
			b.StarsMin(5)
			break
		}
	}

	return b.Build()
}

// firstNumber returns the first numeric capture of re in s, with thousand
// separators stripped before conversion.
func firstNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(stripSeparators(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func stripSeparators(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// matchPlace returns the canonical name of the first group with a stem
// contained in s. Later groups are not checked once one matches.
func matchPlace(groups []placeGroup, s string) (string, bool) {
	for _, g := range groups {
		for _, stem := range g.stems {
			if strings.Contains(s, stem) {
				return g.name, true
			}
		}
	}
	return "", false
}
