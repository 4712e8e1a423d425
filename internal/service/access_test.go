package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	svc "github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"
)

func actorWith(role models.Role, sub models.SubRole) models.Actor {
	return models.Actor{ID: "u-1", Role: role, SubRole: sub, OrgID: "org-a"}
}

func TestAuthorized_Matrix(t *testing.T) {
	head := actorWith(models.RoleLaboratory, models.SubRoleLabHead)
	admin := actorWith(models.RoleLaboratory, models.SubRoleLabAdmin)
	accountant := actorWith(models.RoleLaboratory, models.SubRoleLabAccountant)
	manager := actorWith(models.RoleOptic, models.SubRoleOpticManager)
	opticDoc := actorWith(models.RoleOptic, models.SubRoleOpticDoctor)
	doctor := actorWith(models.RoleDoctor, "")

	cases := []struct {
		name   string
		actor  models.Actor
		action svc.Action
		want   bool
	}{
		{"anyone views catalog", doctor, svc.ActionViewCatalog, true},
		{"head mutates catalog", head, svc.ActionMutateCatalog, true},
		{"admin mutates catalog", admin, svc.ActionMutateCatalog, true},
		{"accountant cannot mutate catalog", accountant, svc.ActionMutateCatalog, false},
		{"manager cannot mutate catalog", manager, svc.ActionMutateCatalog, false},
		{"head manages lab staff", head, svc.ActionManageLabStaff, true},
		{"manager cannot manage lab staff", manager, svc.ActionManageLabStaff, false},
		{"manager manages clinic staff", manager, svc.ActionManageClinicStaff, true},
		{"optic doctor cannot manage clinic staff", opticDoc, svc.ActionManageClinicStaff, false},
		{"accountant changes payment", accountant, svc.ActionChangePayment, true},
		{"head cannot change payment", head, svc.ActionChangePayment, false},
		{"head changes discount", head, svc.ActionChangeDiscount, true},
		{"admin cannot change discount", admin, svc.ActionChangeDiscount, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, svc.Authorized(tc.actor, tc.action))
		})
	}
}

func TestAuthorized_Unauthenticated(t *testing.T) {
	require.False(t, svc.Authorized(models.Actor{}, svc.ActionViewCatalog))
}

func TestCanSeePrices(t *testing.T) {
	require.False(t, svc.CanSeePrices(actorWith(models.RoleDoctor, "")))
	require.False(t, svc.CanSeePrices(actorWith(models.RoleOptic, models.SubRoleOpticDoctor)))
	require.True(t, svc.CanSeePrices(actorWith(models.RoleOptic, models.SubRoleOpticManager)))
	require.True(t, svc.CanSeePrices(actorWith(models.RoleLaboratory, models.SubRoleLabHead)))
}

func TestCanEditOrder(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	pending := models.Order{Status: models.StatusPending, CreatedAt: created}
	require.True(t, svc.CanEditOrder(pending, created.Add(time.Hour), window))
	require.True(t, svc.CanEditOrder(pending, created.Add(window), window))
	require.False(t, svc.CanEditOrder(pending, created.Add(window+time.Second), window))

	// any status past pending freezes the order, clock irrelevant
	inProd := models.Order{Status: models.StatusInProduction, CreatedAt: created}
	require.False(t, svc.CanEditOrder(inProd, created.Add(time.Minute), window))
}
