package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edunari/marketplace-api/internal/repository"
	"github.com/edunari/marketplace-api/internal/service"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	log := testLogger()
	repo, err := repository.NewCSVUserRepository(t.TempDir(), log)
	if err != nil {
		t.Fatalf("create user repository: %v", err)
	}
	return NewAuthHandler(service.NewAuthService(repo), log)
}

func TestAuthHandlerLogin(t *testing.T) {
	h := newAuthHandler(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectSuccess  bool
	}{
		{
			name:           "valid credentials",
			body:           `{"email":"test@test.com","password":"password123"}`,
			expectedStatus: http.StatusOK,
			expectSuccess:  true,
		},
		{
			name:           "wrong password",
			body:           `{"email":"test@test.com","password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           `{"email":"ghost@test.com","password":"password123"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           `{"email":"","password":""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.Login(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var resp struct {
				Success bool `json:"success"`
				User    *struct {
					Email    string  `json:"email"`
					Password *string `json:"password"`
				} `json:"user"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success != tt.expectSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.expectSuccess)
			}
			if tt.expectSuccess {
				if resp.User == nil {
					t.Fatalf("expected user in response")
				}
				if resp.User.Password != nil {
					t.Errorf("password leaked in response")
				}
			}
		})
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid registration",
			body:           `{"email":"nueva@edunari.com","password":"secreto9","firstName":"Nueva","lastName":"Cuenta"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email",
			body:           `{"email":"test@test.com","password":"secreto9"}`,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid email",
			body:           `{"email":"not-an-email","password":"secreto9"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "weak password",
			body:           `{"email":"ok@edunari.com","password":"abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.Register(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d, body: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestAuthHandlerCheckUser(t *testing.T) {
	h := newAuthHandler(t)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		wantExists     bool
	}{
		{"existing user", "/api/auth/check-user?email=test@test.com", http.StatusOK, true},
		{"unknown user", "/api/auth/check-user?email=ghost@test.com", http.StatusOK, false},
		{"missing email", "/api/auth/check-user", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.CheckUser(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp map[string]bool
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["exists"] != tt.wantExists {
				t.Errorf("exists = %v, want %v", resp["exists"], tt.wantExists)
			}
		})
	}
}

func TestAuthHandlerProfile(t *testing.T) {
	h := newAuthHandler(t)

	t.Run("existing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile?email=admin@edunari.com", nil)
		w := httptest.NewRecorder()
		h.Profile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var resp struct {
			Success bool `json:"success"`
			User    struct {
				FirstName string `json:"firstName"`
			} `json:"user"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success {
			t.Errorf("success = false, want true")
		}
		if resp.User.FirstName != "Administrador" {
			t.Errorf("firstName = %s, want Administrador", resp.User.FirstName)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile?email=ghost@test.com", nil)
		w := httptest.NewRecorder()
		h.Profile(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		w := httptest.NewRecorder()
		h.Profile(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
