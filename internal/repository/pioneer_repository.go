package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/edunari/marketplace-api/internal/csvdata"
	"github.com/edunari/marketplace-api/internal/models"
)

// PioneerRepository defines the interface for early-access sign-up storage.
type PioneerRepository interface {
	Create(ctx context.Context, pioneer models.Pioneer) error
	List(ctx context.Context) ([]models.Pioneer, error)
}

const pioneersFile = "pioneers.csv"

var pioneerHeaders = []string{"id", "fecha", "nombre", "email", "telefono"}

// CSVPioneerRepository implements PioneerRepository over an append-only CSV
// file.
type CSVPioneerRepository struct {
	path   string
	parser *csvdata.Parser
	mu     sync.Mutex
}

// NewCSVPioneerRepository creates a pioneer repository rooted at the data
// directory.
func NewCSVPioneerRepository(dataDir string, log *slog.Logger) *CSVPioneerRepository {
	return &CSVPioneerRepository{
		path:   filepath.Join(dataDir, pioneersFile),
		parser: csvdata.NewParser(log),
	}
}

func (r *CSVPioneerRepository) load() (*csvdata.Table, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &csvdata.Table{Headers: pioneerHeaders}, nil
		}
		return nil, fmt.Errorf("read pioneers file: %w", err)
	}

	table, err := r.parser.Parse(string(raw))
	if err != nil {
		if errors.Is(err, csvdata.ErrFormat) {
			return &csvdata.Table{Headers: pioneerHeaders}, nil
		}
		return nil, fmt.Errorf("parse pioneers file: %w", err)
	}
	return table, nil
}

// Create appends a pioneer record.
func (r *CSVPioneerRepository) Create(ctx context.Context, pioneer models.Pioneer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.load()
	if err != nil {
		return err
	}

	table.Rows = append(table.Rows, csvdata.Row{
		"id":       pioneer.ID,
		"fecha":    pioneer.RegisteredAt,
		"nombre":   pioneer.Name,
		"email":    pioneer.Email,
		"telefono": pioneer.Phone,
	})

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(table.Serialize()+"\n"), 0644); err != nil {
		return fmt.Errorf("write pioneers file: %w", err)
	}
	return nil
}

// List returns every registered pioneer in file order.
func (r *CSVPioneerRepository) List(ctx context.Context) ([]models.Pioneer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.load()
	if err != nil {
		return nil, err
	}

	pioneers := make([]models.Pioneer, 0, len(table.Rows))
	for _, row := range table.Rows {
		pioneers = append(pioneers, models.Pioneer{
			ID:           row["id"],
			RegisteredAt: row["fecha"],
			Name:         row["nombre"],
			Email:        row["email"],
			Phone:        row["telefono"],
		})
	}
	return pioneers, nil
}
