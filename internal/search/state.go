// Package search implements the catalog search core: query matching,
// relevance scoring, and the filter/sort/paginate pipeline.
package search

import "strings"

// SortOrder is the tri-state price ordering.
type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPageSize is the fixed number of listings per result page.
const DefaultPageSize = 12

// Cycle advances the sort order: none -> asc -> desc -> none.
// Unknown values reset to none.
func (s SortOrder) Cycle() SortOrder {
	switch s {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// ParseSortOrder maps a request parameter to a SortOrder, defaulting to none.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return SortNone
	}
}

// State holds one search pass's query, filters, sort order and page.
// The product and service category filters are mutually exclusive: setting
// one clears the other. Changing the query, a filter or the sort order
// resets the page to 1.
type State struct {
	Query           string
	ProductCategory string
	ServiceCategory string
	Sort            SortOrder
	Page            int
	PageSize        int
}

// NewState returns a State with default sort order, page and page size.
func NewState() State {
	return State{
		Sort:     SortNone,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// SetQuery updates the query and resets pagination.
func (s *State) SetQuery(query string) {
	s.Query = strings.TrimSpace(query)
	s.Page = 1
}

// SetProductCategory selects a product category, clearing any service
// category selection.
func (s *State) SetProductCategory(category string) {
	s.ProductCategory = category
	s.ServiceCategory = ""
	s.Page = 1
}

// SetServiceCategory selects a service category, clearing any product
// category selection.
func (s *State) SetServiceCategory(category string) {
	s.ServiceCategory = category
	s.ProductCategory = ""
	s.Page = 1
}

// CycleSort advances the price sort order and resets pagination.
func (s *State) CycleSort() {
	s.Sort = s.Sort.Cycle()
	s.Page = 1
}
