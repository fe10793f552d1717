package handlers

import (
	"context"
	"sync"
	"time"

	"digitalstore_back_end/internal/models"
	"digitalstore_back_end/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo stores, mirroring their error
// semantics so handler tests run without a database.

type fakeUserStore struct {
	mu    sync.Mutex
	users []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories []*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{}
}

func (s *fakeCategoryStore) Create(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == category.Slug {
			return store.ErrDuplicate
		}
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = time.Now()
	s.categories = append(s.categories, category)
	return nil
}

func (s *fakeCategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeCategoryStore) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeCategoryStore) Update(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == category.ID {
			s.categories[i] = category
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *fakeCategoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID.Hex() == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []*models.Order

	statusUpdates int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	// Strictly increasing dates keep the newest-first ordering stable
	// even when two orders land in the same wall-clock instant.
	order.Date = time.Now().Add(time.Duration(len(s.orders)) * time.Millisecond)
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeOrderStore) newestFirst(keep func(*models.Order) bool) []models.Order {
	out := []models.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if keep(s.orders[i]) {
			out = append(out, *s.orders[i])
		}
	}
	return out
}

func (s *fakeOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newestFirst(func(*models.Order) bool { return true }), nil
}

func (s *fakeOrderStore) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newestFirst(func(o *models.Order) bool {
		return o.User != nil && o.User.Hex() == userID
	}), nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID.Hex() == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID.Hex() == id {
			o.Status = status
			s.statusUpdates++
			cp := *o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses, in order
}

func (m *fakeMailer) Send(to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// fakeEventMarker mimics the Redis SETNX dedup without a Redis server.
type fakeEventMarker struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeEventMarker() *fakeEventMarker {
	return &fakeEventMarker{seen: map[string]bool{}}
}

func (m *fakeEventMarker) MarkProcessed(_ context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}
