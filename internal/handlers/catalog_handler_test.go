package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edunari/marketplace-api/internal/catalog"
	"github.com/edunari/marketplace-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const handlerProductsCSV = `id,nombre,descripcion,categoria,tags,precio,disponible,emprendimiento_id,stock
p1,Arepas integrales,Arepas artesanales de maíz,alimentos,"comida,saludable",5000,true,b1,20
p2,Bolso tejido,Bolso hecho a mano,accesorios,moda,12000,false,b2,3
`

const handlerServicesCSV = `id,nombre,descripcion,categoria,tags,precio,disponible,emprendimiento_id,duracion
s1,Clases de guitarra,Clases personalizadas,educacion,musica,25000,true,b1,1 hora
`

const handlerBusinessesCSV = `id,nombre,descripcion,emprendedor_email,emprendedor_nombre,emprendedor_carrera
b1,EcoSnacks,Snacks saludables,laura@uni.cl,Laura Gómez,Ingeniería de Alimentos
b2,Tejidos Andinos,Tejidos tradicionales,rosa@uni.cl,Rosa Mamani,Diseño
`

func newCatalogHandler(t *testing.T) *CatalogHandler {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		catalog.ProductsFile:   handlerProductsCSV,
		catalog.ServicesFile:   handlerServicesCSV,
		catalog.BusinessesFile: handlerBusinessesCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	log := testLogger()
	loader := catalog.NewLoader(dir, time.Minute, log)
	return NewCatalogHandler(service.NewCatalogService(loader), log)
}

func TestCatalogHandlerStatus(t *testing.T) {
	h := newCatalogHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s, want application/json", ct)
	}

	var status service.Status
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.TotalProducts != 2 {
		t.Errorf("totalProducts = %d, want 2", status.TotalProducts)
	}
	if status.TotalServices != 1 {
		t.Errorf("totalServices = %d, want 1", status.TotalServices)
	}
	if status.TotalBusinesses != 2 {
		t.Errorf("totalBusinesses = %d, want 2", status.TotalBusinesses)
	}
	if len(status.ProductCategories) != 2 {
		t.Errorf("productCategories = %v, want 2 entries", status.ProductCategories)
	}
}

func TestCatalogHandlerSearch(t *testing.T) {
	h := newCatalogHandler(t)

	tests := []struct {
		name      string
		target    string
		wantTotal int
		wantFirst string
	}{
		{
			name:      "empty query returns everything",
			target:    "/api/search",
			wantTotal: 3,
		},
		{
			name:      "query matches by name",
			target:    "/api/search?q=arepas",
			wantTotal: 1,
			wantFirst: "p1",
		},
		{
			name:      "query matches business name",
			target:    "/api/search?q=EcoSnacks",
			wantTotal: 2,
		},
		{
			name:      "product category filter",
			target:    "/api/search?productCategory=accesorios",
			wantTotal: 1,
			wantFirst: "p2",
		},
		{
			name:      "service category filter",
			target:    "/api/search?serviceCategory=educacion",
			wantTotal: 1,
			wantFirst: "s1",
		},
		{
			name:      "no matches",
			target:    "/api/search?q=inexistente",
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.Search(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var result service.SearchResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if result.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", result.Total, tt.wantTotal)
			}
			if tt.wantFirst != "" {
				if len(result.Items) == 0 {
					t.Fatalf("expected at least one item")
				}
				if result.Items[0].ID != tt.wantFirst {
					t.Errorf("first item = %s, want %s", result.Items[0].ID, tt.wantFirst)
				}
			}
		})
	}
}

func TestCatalogHandlerSearchSortsByPrice(t *testing.T) {
	h := newCatalogHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?sort=asc", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	var result service.SearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(result.Items))
	}

	// Available listings come first, cheapest of them leading.
	if result.Items[0].ID != "p1" {
		t.Errorf("first item = %s, want p1", result.Items[0].ID)
	}
	if result.Items[len(result.Items)-1].ID != "p2" {
		t.Errorf("last item = %s, want unavailable p2", result.Items[len(result.Items)-1].ID)
	}
}

func TestCatalogHandlerSearchPageClamped(t *testing.T) {
	h := newCatalogHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?page=99", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	var result service.SearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Page != 99 {
		t.Errorf("page = %d, want 99", result.Page)
	}
	if len(result.Items) != 0 {
		t.Errorf("items past the last page = %d, want 0", len(result.Items))
	}
	if result.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", result.TotalPages)
	}
}

func TestCatalogHandlerListProducts(t *testing.T) {
	h := newCatalogHandler(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"all products", "/api/products", 2},
		{"category filter", "/api/products?category=alimentos", 1},
		{"limit", "/api/products?limit=1", 1},
		{"unknown category", "/api/products?category=otros", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.ListProducts(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var listings []json.RawMessage
			if err := json.NewDecoder(w.Body).Decode(&listings); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(listings) != tt.want {
				t.Errorf("listings = %d, want %d", len(listings), tt.want)
			}
		})
	}
}

func TestCatalogHandlerListEntrepreneurs(t *testing.T) {
	h := newCatalogHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/entrepreneurs", nil)
	w := httptest.NewRecorder()
	h.ListEntrepreneurs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var businesses []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(w.Body).Decode(&businesses); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(businesses) != 2 {
		t.Fatalf("businesses = %d, want 2", len(businesses))
	}
	if businesses[0].Name != "EcoSnacks" {
		t.Errorf("first business = %s, want EcoSnacks", businesses[0].Name)
	}
}
