package search

import (
	"strings"
	"unicode/utf8"

	"github.com/edunari/marketplace-api/internal/models"
)

// terms normalizes a query into lowercase search terms, discarding terms
// shorter than two characters.
func terms(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// tagTokens splits a comma-separated tags string into trimmed lowercase
// tokens.
func tagTokens(tags string) []string {
	parts := strings.Split(strings.ToLower(tags), ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a listing matches the free-text query.
//
// An empty query matches everything. Otherwise every term must match some
// field (logical AND), where a term matches via substring in the listing's
// name, description, tags, category, business name, owner name or owner
// career, or via the tag tokens. As a deliberate widening of the AND rule, a
// listing whose business name contains the whole query matches outright;
// business-name search is intentionally more permissive than per-term
// matching.
func Matches(l models.Listing, query string) bool {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return true
	}

	queryTerms := terms(normalized)
	if len(queryTerms) == 0 {
		return true
	}

	businessName := strings.ToLower(l.Business.Name)
	if businessName != "" && strings.Contains(businessName, normalized) {
		return true
	}

	fields := []string{
		strings.ToLower(l.Name),
		strings.ToLower(l.Description),
		strings.ToLower(l.Tags),
		strings.ToLower(l.Category),
		businessName,
		strings.ToLower(l.Business.OwnerName),
		strings.ToLower(l.Business.OwnerCareer),
	}
	tags := tagTokens(l.Tags)

	for _, term := range queryTerms {
		if !termMatches(term, fields, tags) {
			return false
		}
	}
	return true
}

func termMatches(term string, fields, tags []string) bool {
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}
	for _, tag := range tags {
		if tag == term || strings.Contains(tag, term) {
			return true
		}
	}
	return false
}
