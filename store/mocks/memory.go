// Package mocks provides in-memory store implementations for tests.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
)

// MemProductStore is an in-memory store.ProductStore.
type MemProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func NewMemProductStore() *MemProductStore {
	return &MemProductStore{products: map[primitive.ObjectID]models.Product{}}
}

// Seed inserts a product directly, keeping whatever timestamps it carries.
func (s *MemProductStore) Seed(p models.Product) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *MemProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func matchesKeyword(p models.Product, keyword string) bool {
	kw := strings.ToLower(keyword)
	fields := []string{p.Name, p.Description, p.Brand, p.Category, p.Subcategory}
	fields = append(fields, p.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), kw) {
			return true
		}
	}
	return false
}

func matchesFilter(p models.Product, f store.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	if f.Size != "" && !contains(p.Sizes, f.Size) {
		return false
	}
	if f.Color != "" && !contains(p.Colors, f.Color) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bestseller && !p.IsBestseller {
		return false
	}
	if f.Keyword != "" && !matchesKeyword(p, f.Keyword) {
		return false
	}
	return true
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func (s *MemProductStore) List(ctx context.Context, f store.ProductFilter, page, pageSize int, sortBy store.ProductSort) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Product{}
	for _, p := range s.products {
		if matchesFilter(p, f) {
			matched = append(matched, p)
		}
	}

	switch sortBy {
	case store.SortPriceAsc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case store.SortPriceDesc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case store.SortRating:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Ratings > matched[j].Ratings })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := int64(len(matched))
	start := pageSize * (page - 1)
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemProductStore) ListBestsellers(ctx context.Context, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, p := range s.products {
		if p.IsBestseller && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemProductStore) ListNewest(ctx context.Context, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := []models.Product{}
	for _, p := range s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemProductStore) ListRelated(ctx context.Context, category, subcategory string, exclude primitive.ObjectID, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, p := range s.products {
		if p.ID != exclude && p.Category == category && p.Subcategory == subcategory && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemProductStore) Insert(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = *p
	return nil
}

func (s *MemProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return store.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.products[p.ID] = *p
	return nil
}

func (s *MemProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	if p.Stock < qty {
		return store.ErrInsufficientStock
	}
	p.Stock -= qty
	s.products[id] = p
	return nil
}

func (s *MemProductStore) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Stock += qty
	s.products[id] = p
	return nil
}

func (s *MemProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.products)), nil
}

// MemCartStore is an in-memory store.CartStore keyed by user.
type MemCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart
}

func NewMemCartStore() *MemCartStore {
	return &MemCartStore{carts: map[primitive.ObjectID]models.Cart{}}
}

func (s *MemCartStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *MemCartStore) Insert(ctx context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[c.UserID]; ok {
		return store.ErrDuplicate
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.carts[c.UserID] = *c
	return nil
}

func (s *MemCartStore) Save(ctx context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[c.UserID]; !ok {
		return store.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	s.carts[c.UserID] = *c
	return nil
}

// MemOrderStore is an in-memory store.OrderStore.
type MemOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
	seq    int
	order  map[primitive.ObjectID]int // insertion order, for stable newest-first
}

func NewMemOrderStore() *MemOrderStore {
	return &MemOrderStore{
		orders: map[primitive.ObjectID]models.Order{},
		order:  map[primitive.ObjectID]int{},
	}
}

func (s *MemOrderStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (s *MemOrderStore) Insert(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	s.seq++
	s.order[o.ID] = s.seq
	s.orders[o.ID] = *o
	return nil
}

func (s *MemOrderStore) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return store.ErrNotFound
	}
	o.UpdatedAt = time.Now()
	s.orders[o.ID] = *o
	return nil
}

func (s *MemOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	s.sortNewestFirst(out)
	return out, nil
}

func (s *MemOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, o)
	}
	s.sortNewestFirst(out)
	return out, nil
}

func (s *MemOrderStore) sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return s.order[orders[i].ID] > s.order[orders[j].ID]
	})
}

func (s *MemOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *MemOrderStore) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.orders {
		if o.OrderStatus == status {
			n++
		}
	}
	return n, nil
}

// MemUserStore is an in-memory store.UserStore.
type MemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *MemUserStore) Seed(u models.User) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return u.ID
}

func (s *MemUserStore) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *MemUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemUserStore) Insert(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *MemUserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *MemUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemUserStore) ListAll(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		u.Password = ""
		out = append(out, u)
	}
	return out, nil
}

func (s *MemUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}
