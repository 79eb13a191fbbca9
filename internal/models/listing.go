package models

// Kind discriminates products from services in the unified catalog.
type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// Listing represents a product or service offered by a business.
// Listings are built once per catalog load and are immutable afterwards;
// request-scoped data such as relevance scores lives outside this struct.
type Listing struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        string   `json:"tags"`
	Price       int      `json:"price"`
	Available   bool     `json:"available"`
	BusinessID  string   `json:"businessId"`
	Duration    string   `json:"duration,omitempty"` // services only
	Stock       int      `json:"stock,omitempty"`    // products only
	Business    Business `json:"business"`
}
