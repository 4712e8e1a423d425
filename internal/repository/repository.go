package repository

import (
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/memory"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/postgres"

	"github.com/jinzhu/gorm"
)

// ErrNotFound / ErrConflict sentinels live here so both store flavors report
// misses and uniqueness violations the same way.
var (
	ErrNotFound = memory.ErrNotFound
	ErrConflict = memory.ErrConflict
)

type OrderStore interface {
	Create(ord models.Order) error
	Update(ord models.Order) error
	Get(number string) (models.Order, error)
	GetAll() ([]models.Order, error)
}

type UserStore interface {
	CreateUser(u models.User) error
	UpdateUser(u models.User) error
	DeleteUser(id string) error
	GetUser(id string) (models.User, error)
	GetUsersByOrg(orgID string) ([]models.User, error)
}

type OrgStore interface {
	CreateOrg(o models.Organization) error
	UpdateOrg(o models.Organization) error
	GetOrg(id string) (models.Organization, error)
	GetActiveOrgs() ([]models.Organization, error)
}

type ProductStore interface {
	CreateProduct(p models.Product) error
	UpdateProduct(p models.Product) error
	DeleteProduct(id string) error
	GetProduct(id string) (models.Product, error)
	GetAllProducts() ([]models.Product, error)
}

type Repository struct {
	OrderStore
	UserStore
	OrgStore
	ProductStore
}

// NewMemoryRepository builds the in-memory store set. One instance per
// process; mutations race last-write-wins by design.
func NewMemoryRepository() *Repository {
	s := memory.NewStore()
	return &Repository{
		OrderStore:   s,
		UserStore:    s,
		OrgStore:     s,
		ProductStore: s,
	}
}

func NewPostgresRepository(db *gorm.DB) *Repository {
	s := postgres.NewStore(db)
	return &Repository{
		OrderStore:   s,
		UserStore:    s,
		OrgStore:     s,
		ProductStore: s,
	}
}
