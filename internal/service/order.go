package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository"
)

const orderStatusValues = "pending in_production ready rework shipped delivered"

// strict adjacency graph, used only when the service was built with
// WithStrictTransitions. Rework branches off the production floor and
// always returns the order to in_production.
var allowedNext = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:      {models.StatusInProduction},
	models.StatusInProduction: {models.StatusReady, models.StatusRework},
	models.StatusReady:        {models.StatusShipped, models.StatusRework},
	models.StatusRework:       {models.StatusInProduction},
	models.StatusShipped:      {models.StatusDelivered},
	models.StatusDelivered:    {},
}

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}

func (s *Service) mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	}
	return err
}

func (s *Service) CreateOrder(actor models.Actor, ord models.Order) (models.Order, error) {
	now := s.now().UTC()
	if ord.Number == "" {
		ord.Number = "LF-" + strings.ToUpper(uuid.NewString()[:8])
	}
	ord.Status = models.StatusPending
	if ord.PaymentStatus == "" {
		ord.PaymentStatus = models.PaymentUnpaid
	}
	ord.CreatedBy = actor.ID
	ord.OrgID = actor.OrgID
	ord.CreatedAt = now
	ord.Meta.UpdatedAt = now
	ord.Defects = nil
	ord.ProductionStartedAt = nil
	ord.ProductionCompletedAt = nil
	ord.ShippedAt = nil
	ord.DeliveredAt = nil

	if err := s.v.Struct(ord); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return models.Order{}, fmt.Errorf("%w: %s", ErrValidation, humanizeValidationErrors(verrs))
		}
		return models.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.mapStoreErr(s.repo.OrderStore.Create(ord)); err != nil {
		return models.Order{}, err
	}
	s.publishEvent("order_created", ord)
	return ord, nil
}

func (s *Service) GetOrder(number string) (models.Order, error) {
	ord, err := s.repo.OrderStore.Get(number)
	return ord, s.mapStoreErr(err)
}

func (s *Service) GetAllOrders() ([]models.Order, error) {
	return s.repo.OrderStore.GetAll()
}

// OrderPatch carries the fields an order's creator may still change during
// the edit window. Status is deliberately absent; it only moves through
// Transition.
type OrderPatch struct {
	Patient      *models.Patient `json:"patient,omitempty"`
	LensConfig   json.RawMessage `json:"lens_config,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	DeliveryType *string         `json:"delivery_type,omitempty" validate:"omitempty,oneof=pickup courier post"`
	DeliveryAddr *string         `json:"delivery_addr,omitempty"`
}

func (s *Service) EditOrder(actor models.Actor, number string, patch OrderPatch) (models.Order, error) {
	if err := s.v.Struct(patch); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	ord, err := s.GetOrder(number)
	if err != nil {
		return models.Order{}, err
	}
	if ord.CreatedBy != actor.ID {
		return models.Order{}, fmt.Errorf("%w: only the order's creator may edit it", ErrForbidden)
	}
	if !CanEditOrder(ord, s.now(), s.editWindow) {
		return models.Order{}, fmt.Errorf("%w: edit window closed", ErrForbidden)
	}

	if patch.Patient != nil {
		ord.Patient = patch.Patient
	}
	if patch.LensConfig != nil {
		ord.LensConfig = patch.LensConfig
	}
	if patch.Notes != nil {
		ord.Notes = *patch.Notes
	}
	if patch.DeliveryType != nil {
		ord.DeliveryType = *patch.DeliveryType
	}
	if patch.DeliveryAddr != nil {
		ord.DeliveryAddr = *patch.DeliveryAddr
	}
	ord.Meta.UpdatedAt = s.now().UTC()

	if err := s.mapStoreErr(s.repo.OrderStore.Update(ord)); err != nil {
		return models.Order{}, err
	}
	return ord, nil
}

// Transition moves an order to the requested status. Milestone timestamps
// are stamped on the first entry into their status and never overwritten.
// The local mutation is the source of truth; the partner mirror and the
// event stream are best-effort and never fail the call.
func (s *Service) Transition(number string, status models.OrderStatus, notes *string) (models.Order, error) {
	if err := s.v.Var(string(status), "required,oneof="+orderStatusValues); err != nil {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	ord, err := s.GetOrder(number)
	if err != nil {
		return models.Order{}, err
	}
	if s.strict && !nextAllowed(ord.Status, status) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidState, ord.Status, status)
	}

	now := s.now().UTC()
	ord.Status = status
	switch status {
	case models.StatusInProduction:
		if ord.ProductionStartedAt == nil {
			ord.ProductionStartedAt = &now
		}
	case models.StatusReady:
		if ord.ProductionCompletedAt == nil {
			ord.ProductionCompletedAt = &now
		}
	case models.StatusShipped:
		if ord.ShippedAt == nil {
			ord.ShippedAt = &now
		}
	case models.StatusDelivered:
		if ord.DeliveredAt == nil {
			ord.DeliveredAt = &now
		}
	}
	if notes != nil {
		ord.Notes = *notes
	}
	ord.Meta.UpdatedAt = now

	if err := s.mapStoreErr(s.repo.OrderStore.Update(ord)); err != nil {
		return models.Order{}, err
	}

	if s.mirror != nil && ord.ExternalRef != "" {
		if err := s.mirror.PushStatus(ord.ExternalRef, ord.Status); err != nil {
			logrus.WithError(err).
				WithField("number", ord.Number).
				WithField("external_ref", ord.ExternalRef).
				Warn("partner status sync failed")
		}
	}
	s.publishEvent("order_status_changed", ord)

	return ord, nil
}

func nextAllowed(from, to models.OrderStatus) bool {
	for _, st := range allowedNext[from] {
		if st == to {
			return true
		}
	}
	return false
}

func (s *Service) SetPaymentStatus(actor models.Actor, number string, status models.PaymentStatus) (models.Order, error) {
	if !Authorized(actor, ActionChangePayment) {
		return models.Order{}, fmt.Errorf("%w: payment status is accountant-only", ErrForbidden)
	}
	if err := s.v.Var(string(status), "required,oneof=unpaid paid partial"); err != nil {
		return models.Order{}, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}
	ord, err := s.GetOrder(number)
	if err != nil {
		return models.Order{}, err
	}
	ord.PaymentStatus = status
	ord.Meta.UpdatedAt = s.now().UTC()
	if err := s.mapStoreErr(s.repo.OrderStore.Update(ord)); err != nil {
		return models.Order{}, err
	}
	return ord, nil
}

// partnerOrder is the intake payload the partner system publishes to Kafka.
type partnerOrder struct {
	ExternalRef  string          `json:"external_ref"`
	Number       string          `json:"number"`
	Patient      *models.Patient `json:"patient"`
	LensConfig   json.RawMessage `json:"lens_config"`
	Notes        string          `json:"notes"`
	DeliveryType string          `json:"delivery_type"`
	DeliveryAddr string          `json:"delivery_addr"`
	OrgID        string          `json:"org_id"`
}

func (s *Service) HandlePartnerOrder(_ context.Context, payload []byte) error {
	var po partnerOrder
	if err := json.Unmarshal(payload, &po); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if po.ExternalRef == "" {
		return fmt.Errorf("%w: partner order without external_ref", ErrValidation)
	}
	actor := models.Actor{ID: "partner:" + po.ExternalRef, Role: models.RoleOptic, OrgID: po.OrgID}
	ord := models.Order{
		Number:       po.Number,
		Patient:      po.Patient,
		LensConfig:   po.LensConfig,
		Notes:        po.Notes,
		DeliveryType: po.DeliveryType,
		DeliveryAddr: po.DeliveryAddr,
		ExternalRef:  po.ExternalRef,
	}
	_, err := s.CreateOrder(actor, ord)
	return err
}

type orderEvent struct {
	Kind      string             `json:"kind"`
	Number    string             `json:"number"`
	Status    models.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// publishEvent is best-effort; a dropped event is only corrected by the next
// mutation, matching the mirror contract.
func (s *Service) publishEvent(kind string, ord models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(orderEvent{
		Kind:      kind,
		Number:    ord.Number,
		Status:    ord.Status,
		UpdatedAt: ord.Meta.UpdatedAt,
	})
	if err != nil {
		logrus.WithError(err).Warn("order event marshal failed")
		return
	}
	if err := s.events.Publish(context.Background(), body); err != nil {
		logrus.WithError(err).WithField("number", ord.Number).Warn("order event publish failed")
	}
}
