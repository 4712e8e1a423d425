package service

import (
	"time"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

type Action string

const (
	ActionViewCatalog       Action = "catalog:view"
	ActionMutateCatalog     Action = "catalog:mutate"
	ActionManageLabStaff    Action = "staff:lab"
	ActionManageClinicStaff Action = "staff:clinic"
	ActionChangePayment     Action = "order:payment"
	ActionChangeDiscount    Action = "counterparty:discount"
)

// Authorized is the pure role matrix. Organization scoping and self-action
// checks happen at the call sites that know the target resource.
func Authorized(actor models.Actor, action Action) bool {
	switch action {
	case ActionViewCatalog:
		return actor.ID != ""
	case ActionMutateCatalog, ActionManageLabStaff:
		return actor.SubRole == models.SubRoleLabHead || actor.SubRole == models.SubRoleLabAdmin
	case ActionManageClinicStaff:
		return actor.SubRole == models.SubRoleOpticManager
	case ActionChangePayment:
		return actor.SubRole == models.SubRoleLabAccountant
	case ActionChangeDiscount:
		return actor.SubRole == models.SubRoleLabHead
	}
	return false
}

// CanSeePrices: laboratory pricing is hidden from ordering doctors.
func CanSeePrices(actor models.Actor) bool {
	if actor.Role == models.RoleDoctor {
		return false
	}
	return actor.SubRole != models.SubRoleOpticDoctor
}

// CanEditOrder holds only while the order has not entered production and the
// edit window since creation has not elapsed. Status wins over the clock: a
// pending order past the window is frozen, and an order already in
// production is frozen even inside the window.
func CanEditOrder(ord models.Order, now time.Time, window time.Duration) bool {
	if ord.Status != models.StatusPending {
		return false
	}
	return !now.After(ord.CreatedAt.Add(window))
}
