package search

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/edunari/marketplace-api/internal/models"
)

// Weighted fields for relevance scoring, most significant first.
const (
	weightBusinessName = 15
	weightName         = 12
	weightTags         = 10
	weightCategory     = 8
	weightDescription  = 6
	weightOwnerName    = 4
	weightOwnerCareer  = 2
)

// Fixed bonuses on top of the weighted field scores.
const (
	bonusExactTag          = 20
	bonusBusinessWord      = 25
	bonusBusinessSubstring = 15
	bonusQueryIsBusiness   = 50
	bonusQueryInBusiness   = 30
	bonusAvailable         = 5
)

// normalization divisor per query term; keeps scores inside [0,100].
// Inherited heuristic, reproduced as-is.
const perTermCeiling = 80

// Score computes the relevance of a listing for a query on a 0-100 scale.
// An empty query scores 0. Each term accumulates weighted points per field
// it appears in, multiplied by exact-word, position and term-length bonuses,
// plus fixed bonuses for exact tag hits and business-name hits. The total is
// normalized by the number of terms and clamped to 100.
func Score(l models.Listing, query string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return 0
	}

	queryTerms := terms(normalized)
	if len(queryTerms) == 0 {
		return 0
	}

	businessName := strings.ToLower(l.Business.Name)
	weighted := []struct {
		field  string
		weight float64
	}{
		{businessName, weightBusinessName},
		{strings.ToLower(l.Name), weightName},
		{strings.ToLower(l.Tags), weightTags},
		{strings.ToLower(l.Category), weightCategory},
		{strings.ToLower(l.Description), weightDescription},
		{strings.ToLower(l.Business.OwnerName), weightOwnerName},
		{strings.ToLower(l.Business.OwnerCareer), weightOwnerCareer},
	}
	tags := tagTokens(l.Tags)
	businessWords := strings.Fields(businessName)

	var total float64

	for _, term := range queryTerms {
		for _, wf := range weighted {
			idx := strings.Index(wf.field, term)
			if idx < 0 {
				continue
			}

			exactBonus := 1.0
			if containsWord(wf.field, term) {
				exactBonus = 2.5
			}

			positionBonus := 1.0
			switch {
			case idx == 0:
				positionBonus = 2
			case idx < 10:
				positionBonus = 1.5
			}

			lengthBonus := 1.0
			if utf8.RuneCountInString(term) >= 5 {
				lengthBonus = 1.2
			}

			total += wf.weight * exactBonus * positionBonus * lengthBonus
		}

		for _, tag := range tags {
			if tag == term {
				total += bonusExactTag
				break
			}
		}

		if strings.Contains(businessName, term) {
			if containsExact(businessWords, term) {
				total += bonusBusinessWord
			} else {
				total += bonusBusinessSubstring
			}
		}
	}

	if businessName != "" {
		if normalized == businessName {
			total += bonusQueryIsBusiness
		} else if strings.Contains(businessName, normalized) {
			total += bonusQueryInBusiness
		}
	}

	if l.Available {
		total += bonusAvailable
	}

	score := 100 * total / (float64(len(queryTerms)) * perTermCeiling)
	return math.Min(100, score)
}

// containsWord reports whether term appears in field as a whole word.
func containsWord(field, term string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(field)
}

func containsExact(words []string, term string) bool {
	for _, w := range words {
		if w == term {
			return true
		}
	}
	return false
}
