package handlers_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rohanz/shopkart/internal/handlers"
	"github.com/rohanz/shopkart/internal/middleware"
	"github.com/rohanz/shopkart/internal/models"
	"github.com/rohanz/shopkart/internal/services"
)

const testSecret = "handler-test-secret"

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) Insert(_ context.Context, user models.User) error {
	if _, ok := s.users[user.Username]; ok {
		return services.ErrDuplicateUsername
	}
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return models.User{}, services.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeProductStore struct {
	products []models.Product
}

func (s *fakeProductStore) Insert(_ context.Context, p models.Product) error {
	s.products = append(s.products, p)
	return nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, services.ErrNotFound
}

func (s *fakeProductStore) Update(_ context.Context, p models.Product) error {
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return nil
		}
	}
	return services.ErrNotFound
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

func (s *fakeProductStore) Search(_ context.Context, q services.ProductQuery) ([]models.Product, int64, error) {
	var matched []models.Product
	for _, p := range s.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *fakeProductStore) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// fakeMediaStore records uploads and hands back deterministic URLs.
type fakeMediaStore struct {
	uploads []string
}

func (s *fakeMediaStore) UploadImage(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, objectName)
	return fmt.Sprintf("http://media.test/images/%s", objectName), nil
}

type testEnv struct {
	app      *fiber.App
	users    *fakeUserStore
	products *fakeProductStore
	media    *fakeMediaStore
}

// newTestEnv builds the full route table over fake stores, mirroring
// the wiring in cmd/main.go.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    newFakeUserStore(),
		products: &fakeProductStore{},
		media:    &fakeMediaStore{},
	}

	authService := services.NewAuthService(env.users, testSecret)
	productService := services.NewProductService(env.products)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, env.media)
	adminHandler := handlers.NewAdminHandler(authService)

	app := fiber.New()
	protected := middleware.Protected(testSecret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/auth/verify", protected, authHandler.Verify)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Post("/products", protected, adminOnly, productHandler.Create)
	api.Put("/products/:id", protected, adminOnly, productHandler.Update)
	api.Delete("/products/:id", protected, adminOnly, productHandler.Delete)
	api.Get("/categories", productHandler.Categories)
	api.Get("/admin/users", protected, adminOnly, adminHandler.ListUsers)

	env.app = app
	return env
}

func (e *testEnv) tokenFor(t *testing.T, role string) string {
	t.Helper()
	user := models.User{ID: primitive.NewObjectID(), Username: "tester-" + role, Role: role}
	token, err := services.IssueToken(testSecret, user)
	require.NoError(t, err)
	return "Bearer " + token
}
