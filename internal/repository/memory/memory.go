package memory

import (
	"errors"
	"sync"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store keeps all entities in process memory behind a single RWMutex.
// Constructed once at startup and injected; there is no per-order lock, so
// concurrent writers to the same key are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	orders   map[string]models.Order
	users    map[string]models.User
	orgs     map[string]models.Organization
	products map[string]models.Product
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[string]models.Order),
		users:    make(map[string]models.User),
		orgs:     make(map[string]models.Organization),
		products: make(map[string]models.Product),
	}
}

func (s *Store) Create(ord models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[ord.Number]; ok {
		return ErrConflict
	}
	s.orders[ord.Number] = ord
	return nil
}

func (s *Store) Update(ord models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[ord.Number]; !ok {
		return ErrNotFound
	}
	s.orders[ord.Number] = ord
	return nil
}

func (s *Store) Get(number string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ord, ok := s.orders[number]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return ord, nil
}

func (s *Store) GetAll() ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, ord := range s.orders {
		out = append(out, ord)
	}
	return out, nil
}

func (s *Store) CreateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return ErrConflict
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrConflict
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) UpdateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUsersByOrg(orgID string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0)
	for _, u := range s.users {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) CreateOrg(o models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[o.ID]; ok {
		return ErrConflict
	}
	s.orgs[o.ID] = o
	return nil
}

func (s *Store) UpdateOrg(o models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[o.ID]; !ok {
		return ErrNotFound
	}
	s.orgs[o.ID] = o
	return nil
}

func (s *Store) GetOrg(id string) (models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return models.Organization{}, ErrNotFound
	}
	return o, nil
}

func (s *Store) GetActiveOrgs() ([]models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Organization, 0)
	for _, o := range s.orgs {
		if o.Status == models.OrgActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) CreateProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return ErrConflict
	}
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return ErrConflict
		}
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) UpdateProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return ErrNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) GetProduct(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}
