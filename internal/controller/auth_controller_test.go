package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/utils/jwt"
)

type mockUserStore struct {
	findByEmailFn func(email string) (*model.User, error)
	findByIDFn    func(id uint) (*model.User, error)
}

func (m *mockUserStore) FindByEmail(email string) (*model.User, error) {
	return m.findByEmailFn(email)
}
func (m *mockUserStore) FindByID(id uint) (*model.User, error) { return m.findByIDFn(id) }

func adminUser(t *testing.T, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &model.User{ID: 1, Email: "admin@example.com", Password: string(hashed)}
}

func TestLogin(t *testing.T) {
	user := adminUser(t, "correct-horse")
	st := &mockUserStore{
		findByEmailFn: func(email string) (*model.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, store.ErrNotFound
		},
	}
	tokens := jwt.NewManager("test-secret", time.Hour)
	ctl := NewAuthController(st, tokens)

	app := fiber.New()
	app.Post("/api/auth/login", ctl.Login)

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct-horse",
	}), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims, err := tokens.ValidateToken(out.Token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.UserID != 1 || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := adminUser(t, "correct-horse")
	st := &mockUserStore{
		findByEmailFn: func(email string) (*model.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, store.ErrNotFound
		},
	}
	ctl := NewAuthController(st, jwt.NewManager("test-secret", time.Hour))

	app := fiber.New()
	app.Post("/api/auth/login", ctl.Login)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"email": "admin@example.com", "password": "wrong"}},
		{"unknown email", map[string]string{"email": "nobody@example.com", "password": "correct-horse"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/api/auth/login", tc.body), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}
