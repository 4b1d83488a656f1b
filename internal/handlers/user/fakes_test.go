package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	findErr error // erreur forcée, simule une panne du store
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return database.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserStore) UpdateByEmail(_ context.Context, email, name, address string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	u.Name = name
	u.Address = address
	cp := *u
	return &cp, nil
}

type fakeCartStore struct {
	mu       sync.Mutex
	items    []models.CartItem
	products map[primitive.ObjectID]models.Product
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeCartStore) Insert(_ context.Context, item *models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeCartStore) ItemsForUser(_ context.Context, userID primitive.ObjectID) ([]models.CartItemWithProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CartItemWithProduct{}
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		out = append(out, models.CartItemWithProduct{
			ID:       item.ID,
			UserID:   item.UserID,
			Quantity: item.Quantity,
			Product:  f.products[item.ProductID],
		})
	}
	return out, nil
}

func (f *fakeCartStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendWelcomeEmail(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUserStore
	carts  *fakeCartStore
	mail   *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users: newFakeUserStore(),
		carts: newFakeCartStore(),
		mail:  &fakeMailer{},
	}
	h := NewHandler(env.users, env.carts, env.mail)

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/profile/:email", h.GetProfile)
	r.PUT("/profile/update", h.UpdateProfile)
	r.POST("/cart", h.AddToCart)
	r.GET("/viewcart", h.ViewCart)
	env.router = r
	return env
}

func (env *testEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encodage payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
