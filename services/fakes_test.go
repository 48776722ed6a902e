package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory product repository ---

type memProducts struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Product
	order []primitive.ObjectID
}

func newMemProducts() *memProducts {
	return &memProducts{items: make(map[primitive.ObjectID]models.Product)}
}

func (m *memProducts) FindActive(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, id := range m.order {
		if p := m.items[id]; p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.items[p.ID] = *p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memProducts) CreateMany(ctx context.Context, products []models.Product) error {
	for i := range products {
		if err := m.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, patch repository.ProductPatch) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.BasePrice != nil {
		p.BasePrice = *patch.BasePrice
	}
	if patch.ModelURL != nil {
		p.ModelURL = *patch.ModelURL
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.Colors != nil {
		p.CustomizationOptions.Colors = *patch.Colors
	}
	if patch.Materials != nil {
		p.CustomizationOptions.Materials = *patch.Materials
	}
	if patch.Components != nil {
		p.CustomizationOptions.Components = *patch.Components
	}
	p.UpdatedAt = patch.UpdatedAt
	m.items[id] = p
	return &p, nil
}

func (m *memProducts) SetActive(_ context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = active
	p.UpdatedAt = at
	m.items[id] = p
	return nil
}

func (m *memProducts) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = make(map[primitive.ObjectID]models.Product)
	m.order = nil
	return n, nil
}

func (m *memProducts) Stats(_ context.Context) (repository.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s repository.Stats
	for _, p := range m.items {
		s.TotalProducts++
		if p.IsActive {
			s.ActiveProducts++
		}
	}
	return s, nil
}

func (m *memProducts) Ping(context.Context) error { return nil }

// --- In-memory customization repository ---

type memCustomizations struct {
	mu      sync.Mutex
	items   map[primitive.ObjectID]models.Customization
	creates int
}

func newMemCustomizations() *memCustomizations {
	return &memCustomizations{items: make(map[primitive.ObjectID]models.Customization)}
}

func (m *memCustomizations) Create(_ context.Context, c *models.Customization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.items[c.ID] = *c
	m.creates++
	return nil
}

func (m *memCustomizations) FindByID(_ context.Context, id primitive.ObjectID) (*models.Customization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *memCustomizations) FindActiveByUser(_ context.Context, userID string) ([]models.Customization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Customization
	for _, c := range m.items {
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memCustomizations) SetActive(_ context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = active
	c.UpdatedAt = at
	m.items[id] = c
	return nil
}

// --- Idempotency store ---

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
	ttl  time.Duration
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: make(map[string]string)}
}

func (m *memIdempotency) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.keys[key]; held {
		return false, nil
	}
	m.keys[key] = repository.IdempotencyPending
	m.ttl = ttl
	return true, nil
}

func (m *memIdempotency) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key], nil
}

func (m *memIdempotency) Set(_ context.Context, key, recordID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = recordID
	m.ttl = ttl
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

// --- Cart sink ---

type recordingSink struct {
	events []models.CartEvent
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e models.CartEvent) error {
	s.events = append(s.events, e)
	return s.err
}

var errBroker = errors.New("broker down")

// --- Fixtures ---

func ptr[T any](v T) *T { return &v }

func chair() models.Product {
	return models.Product{
		Name:        "Modern Chair",
		Description: "A comfortable and stylish modern chair",
		BasePrice:   299,
		ModelURL:    "/assets/models/chair.gltf",
		IsActive:    true,
		CustomizationOptions: models.CustomizationOptions{
			Colors: []models.ColorOption{
				{Name: "Black", Hex: "#000000", Price: 0},
				{Name: "Brown", Hex: "#8B4513", Price: 25},
			},
			Materials: []models.MaterialOption{
				{Name: "Fabric", Price: 0},
				{Name: "Leather", Price: 50},
				{Name: "Plastic", Price: -10},
			},
			Components: []models.ComponentOption{
				{Name: "Standard Legs", Price: 0},
				{Name: "Metal Legs", Price: 30},
			},
		},
	}
}
