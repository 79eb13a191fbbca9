// Package catalog builds the in-memory marketplace catalog from the three
// CSV tables (products, services, businesses) and caches it between reloads.
package catalog

import (
	"sort"
	"strconv"
	"time"

	"github.com/edunari/marketplace-api/internal/csvdata"
	"github.com/edunari/marketplace-api/internal/models"
)

// Column names used by the Edunari data files.
const (
	colID          = "id"
	colName        = "nombre"
	colDescription = "descripcion"
	colCategory    = "categoria"
	colTags        = "tags"
	colPrice       = "precio"
	colAvailable   = "disponible"
	colBusinessID  = "emprendimiento_id"
	colStock       = "stock"
	colDuration    = "duracion"
	colOwnerEmail  = "emprendedor_email"
	colOwnerName   = "emprendedor_nombre"
	colOwnerCareer = "emprendedor_carrera"
)

// Catalog is one load cycle's snapshot of every listing and business.
// It is rebuilt wholesale on each reload and never mutated in place, so it is
// safe to share between concurrent requests.
type Catalog struct {
	Listings   []models.Listing
	Businesses []models.Business
	LoadedAt   time.Time

	businessByID map[string]models.Business
}

// Build joins product and service rows with business rows and produces the
// unified listing collection: enriched products first, then enriched services.
// A listing whose business identifier is unknown gets a zero-value Business.
// Duplicate business identifiers resolve last-write-wins. Input tables are not
// mutated and may be nil (a file that failed to load contributes nothing).
func Build(products, services, businesses *csvdata.Table) *Catalog {
	c := &Catalog{
		LoadedAt:     time.Now(),
		businessByID: make(map[string]models.Business),
	}

	if businesses != nil {
		c.Businesses = make([]models.Business, 0, len(businesses.Rows))
		for _, row := range businesses.Rows {
			b := models.Business{
				ID:          row[colID],
				Name:        row[colName],
				Description: row[colDescription],
				Email:       row[colOwnerEmail],
				OwnerName:   row[colOwnerName],
				OwnerCareer: row[colOwnerCareer],
			}
			c.Businesses = append(c.Businesses, b)
			c.businessByID[b.ID] = b
		}
	}

	if products != nil {
		for _, row := range products.Rows {
			c.Listings = append(c.Listings, c.newListing(row, models.KindProduct))
		}
	}
	if services != nil {
		for _, row := range services.Rows {
			c.Listings = append(c.Listings, c.newListing(row, models.KindService))
		}
	}

	return c
}

func (c *Catalog) newListing(row csvdata.Row, kind models.Kind) models.Listing {
	l := models.Listing{
		ID:          row[colID],
		Kind:        kind,
		Name:        row[colName],
		Description: row[colDescription],
		Category:    row[colCategory],
		Tags:        row[colTags],
		Price:       atoi(row[colPrice]),
		Available:   row[colAvailable] == "true",
		BusinessID:  row[colBusinessID],
		Business:    c.businessByID[row[colBusinessID]],
	}

	switch kind {
	case models.KindProduct:
		l.Stock = atoi(row[colStock])
	case models.KindService:
		l.Duration = row[colDuration]
	}

	return l
}

// Business returns the business for the given identifier.
func (c *Catalog) Business(id string) (models.Business, bool) {
	b, ok := c.businessByID[id]
	return b, ok
}

// ProductCategories returns the sorted set of non-empty product categories.
func (c *Catalog) ProductCategories() []string {
	return c.categories(models.KindProduct)
}

// ServiceCategories returns the sorted set of non-empty service categories.
func (c *Catalog) ServiceCategories() []string {
	return c.categories(models.KindService)
}

func (c *Catalog) categories(kind models.Kind) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range c.Listings {
		if l.Kind != kind || l.Category == "" {
			continue
		}
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		out = append(out, l.Category)
	}
	sort.Strings(out)
	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
