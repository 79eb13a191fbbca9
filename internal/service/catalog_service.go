package service

import (
	"context"
	"time"

	"github.com/edunari/marketplace-api/internal/catalog"
	"github.com/edunari/marketplace-api/internal/models"
	"github.com/edunari/marketplace-api/internal/search"
)

// Listing query limits for the category endpoints.
const (
	defaultListingLimit = 50
	maxListingLimit     = 100
)

// CatalogLoader provides the current catalog snapshot.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogService handles catalog queries: status, search, and listings by
// category.
type CatalogService struct {
	loader CatalogLoader
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(loader CatalogLoader) *CatalogService {
	return &CatalogService{loader: loader}
}

// Status summarizes the current catalog snapshot.
type Status struct {
	TotalProducts     int       `json:"totalProducts"`
	TotalServices     int       `json:"totalServices"`
	TotalBusinesses   int       `json:"totalBusinesses"`
	AvailableProducts int       `json:"availableProducts"`
	AvailableServices int       `json:"availableServices"`
	ProductCategories []string  `json:"productCategories"`
	ServiceCategories []string  `json:"serviceCategories"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// Status returns catalog counters and the category sets.
func (s *CatalogService) Status(ctx context.Context) (*Status, error) {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		TotalBusinesses:   len(c.Businesses),
		ProductCategories: c.ProductCategories(),
		ServiceCategories: c.ServiceCategories(),
		LastUpdated:       c.LoadedAt,
	}
	for _, l := range c.Listings {
		switch l.Kind {
		case models.KindProduct:
			st.TotalProducts++
			if l.Available {
				st.AvailableProducts++
			}
		case models.KindService:
			st.TotalServices++
			if l.Available {
				st.AvailableServices++
			}
		}
	}
	return st, nil
}

// SearchResult is one page of search output.
type SearchResult struct {
	Items      []search.Result `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// Search runs the full search pipeline against the current snapshot.
func (s *CatalogService) Search(ctx context.Context, state search.State) (*SearchResult, error) {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	items, total := search.Search(c, state)
	page := state.Page
	if page < 1 {
		page = 1
	}

	return &SearchResult{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: search.TotalPages(total, state.PageSize),
	}, nil
}

// Products returns products, optionally filtered by exact category, capped
// at limit (default 50, max 100).
func (s *CatalogService) Products(ctx context.Context, category string, limit int) ([]models.Listing, error) {
	return s.listings(ctx, models.KindProduct, category, limit)
}

// Services returns services, optionally filtered by exact category.
func (s *CatalogService) Services(ctx context.Context, category string, limit int) ([]models.Listing, error) {
	return s.listings(ctx, models.KindService, category, limit)
}

func (s *CatalogService) listings(ctx context.Context, kind models.Kind, category string, limit int) ([]models.Listing, error) {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListingLimit
	}
	if limit > maxListingLimit {
		limit = maxListingLimit
	}

	out := make([]models.Listing, 0, limit)
	for _, l := range c.Listings {
		if l.Kind != kind {
			continue
		}
		if category != "" && l.Category != category {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Entrepreneurs returns every business in the catalog.
func (s *CatalogService) Entrepreneurs(ctx context.Context) ([]models.Business, error) {
	c, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Businesses, nil
}
