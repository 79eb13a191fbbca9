package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/edunari/marketplace-api/internal/csvdata"
	"github.com/edunari/marketplace-api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) error
}

const usersFile = "users.csv"

var userHeaders = []string{"email", "password", "nombre", "apellido", "numero_telefono"}

// CSVUserRepository implements UserRepository over a CSV file, the same file
// format the original data directory uses. The file is created with two seed
// accounts when absent.
type CSVUserRepository struct {
	path   string
	parser *csvdata.Parser
	log    *slog.Logger
	mu     sync.Mutex
}

// NewCSVUserRepository creates a user repository rooted at the data directory.
func NewCSVUserRepository(dataDir string, log *slog.Logger) (*CSVUserRepository, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &CSVUserRepository{
		path:   filepath.Join(dataDir, usersFile),
		parser: csvdata.NewParser(log),
		log:    log,
	}
	if err := r.ensureFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CSVUserRepository) ensureFile() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	seed := &csvdata.Table{
		Headers: userHeaders,
		Rows: []csvdata.Row{
			{"email": "admin@edunari.com", "password": "admin123", "nombre": "Administrador",
				"apellido": "Sistema", "numero_telefono": "+56 9 8765 4321"},
			{"email": "test@test.com", "password": "password123", "nombre": "Juan",
				"apellido": "Pérez", "numero_telefono": "+56 9 5555 1234"},
		},
	}
	if err := os.WriteFile(r.path, []byte(seed.Serialize()+"\n"), 0644); err != nil {
		return fmt.Errorf("seed users file: %w", err)
	}

	r.log.Info("created users file with seed accounts", "path", r.path)
	return nil
}

func (r *CSVUserRepository) load() ([]models.User, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	table, err := r.parser.Parse(string(raw))
	if err != nil {
		if errors.Is(err, csvdata.ErrFormat) {
			// Header-only file: no accounts yet.
			return nil, nil
		}
		return nil, fmt.Errorf("parse users file: %w", err)
	}

	users := make([]models.User, 0, len(table.Rows))
	for _, row := range table.Rows {
		users = append(users, models.User{
			Email:     row["email"],
			Password:  row["password"],
			FirstName: row["nombre"],
			LastName:  row["apellido"],
			Phone:     row["numero_telefono"],
		})
	}
	return users, nil
}

func (r *CSVUserRepository) save(users []models.User) error {
	table := &csvdata.Table{Headers: userHeaders}
	for _, u := range users {
		table.Rows = append(table.Rows, csvdata.Row{
			"email":           u.Email,
			"password":        u.Password,
			"nombre":          u.FirstName,
			"apellido":        u.LastName,
			"numero_telefono": u.Phone,
		})
	}

	if err := os.WriteFile(r.path, []byte(table.Serialize()+"\n"), 0644); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

// GetAll returns every registered user.
func (r *CSVUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// FindByEmail returns the user with the given email, case-insensitively.
func (r *CSVUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range users {
		if strings.ToLower(u.Email) == needle {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user, failing with ErrUserExists on a duplicate email.
func (r *CSVUserRepository) Create(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	needle := strings.ToLower(user.Email)
	for _, u := range users {
		if strings.ToLower(u.Email) == needle {
			return ErrUserExists
		}
	}

	return r.save(append(users, user))
}
