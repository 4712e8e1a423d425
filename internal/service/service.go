package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// CRM is the full application surface the delivery layer talks to.
type CRM interface {
	CreateOrder(actor models.Actor, ord models.Order) (models.Order, error)
	GetOrder(number string) (models.Order, error)
	GetAllOrders() ([]models.Order, error)
	EditOrder(actor models.Actor, number string, patch OrderPatch) (models.Order, error)
	Transition(number string, status models.OrderStatus, notes *string) (models.Order, error)
	SetPaymentStatus(actor models.Actor, number string, status models.PaymentStatus) (models.Order, error)

	AddDefect(number string, qty int, note string) (models.Defect, models.Order, error)
	SetDefectArchived(number, defectID string, archived *bool) (models.Defect, error)

	ListProducts(actor models.Actor) ([]models.Product, error)
	CreateProduct(actor models.Actor, p models.Product) (models.Product, error)
	UpdateProduct(actor models.Actor, p models.Product) (models.Product, error)
	DeleteProduct(actor models.Actor, id string) error

	CreateStaff(actor models.Actor, u models.User) (models.User, error)
	UpdateStaff(actor models.Actor, u models.User) (models.User, error)
	DeleteStaff(actor models.Actor, targetID string) error

	SetDiscount(actor models.Actor, orgID string, discount int) (models.Organization, error)
	ExportCounterparties() ([]models.Organization, error)

	HandlePartnerOrder(ctx context.Context, payload []byte) error
}

// StatusNotifier pushes an order status to the partner system. Callers treat
// it as fire-and-forget: a returned error is logged, never propagated.
type StatusNotifier interface {
	PushStatus(externalRef string, status models.OrderStatus) error
}

// EventPublisher emits order lifecycle events; same isolation contract as
// the notifier.
type EventPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

type Service struct {
	repo   *repository.Repository
	mirror StatusNotifier
	events EventPublisher
	v      *validator.Validate

	editWindow time.Duration
	strict     bool
	now        func() time.Time
}

type Option func(*Service)

func WithMirror(m StatusNotifier) Option    { return func(s *Service) { s.mirror = m } }
func WithEvents(p EventPublisher) Option    { return func(s *Service) { s.events = p } }
func WithEditWindow(d time.Duration) Option { return func(s *Service) { s.editWindow = d } }
func WithStrictTransitions() Option         { return func(s *Service) { s.strict = true } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo *repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		v:          validator.New(),
		editWindow: 24 * time.Hour,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
