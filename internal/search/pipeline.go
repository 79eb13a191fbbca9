package search

import (
	"math"
	"sort"
	"strings"

	"github.com/edunari/marketplace-api/internal/catalog"
	"github.com/edunari/marketplace-api/internal/models"
)

// Result is a listing plus its request-scoped relevance score. The score is
// only populated when the search had a query.
type Result struct {
	models.Listing
	Score float64 `json:"relevanceScore,omitempty"`
}

// Search runs the full pipeline over a catalog snapshot: query matching,
// category filtering, relevance scoring, ordering, and pagination. It
// returns the requested page and the total number of matching listings.
//
// Ordering is stable. Available listings always rank before unavailable
// ones. With a query, descending relevance comes next (scores within 0.01
// are tied), then the selected price order. Without a query, availability
// then price order. Sort order none leaves relative order unchanged.
func Search(c *catalog.Catalog, state State) ([]Result, int) {
	hasQuery := strings.TrimSpace(state.Query) != ""

	var results []Result
	for _, l := range c.Listings {
		if !Matches(l, state.Query) {
			continue
		}
		if state.ProductCategory != "" &&
			(l.Kind != models.KindProduct || l.Category != state.ProductCategory) {
			continue
		}
		if state.ServiceCategory != "" &&
			(l.Kind != models.KindService || l.Category != state.ServiceCategory) {
			continue
		}

		r := Result{Listing: l}
		if hasQuery {
			r.Score = Score(l, state.Query)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		if a.Available != b.Available {
			return a.Available
		}
		if hasQuery && math.Abs(a.Score-b.Score) > 0.01 {
			return a.Score > b.Score
		}

		switch state.Sort {
		case SortAsc:
			return a.Price < b.Price
		case SortDesc:
			return a.Price > b.Price
		default:
			return false
		}
	})

	return paginate(results, state.Page, state.PageSize), len(results)
}

func paginate(results []Result, page, pageSize int) []Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(results) {
		return nil
	}

	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// TotalPages returns the number of pages needed for total results.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
