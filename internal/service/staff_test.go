package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	svc "github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"
)

func seedUser(t *testing.T, s *svc.Service, actor models.Actor, u models.User) models.User {
	t.Helper()
	created, err := s.CreateStaff(actor, u)
	require.NoError(t, err)
	return created
}

func TestCreateStaff_Roles(t *testing.T) {
	s, _ := newSvc()

	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}
	_, err := s.CreateStaff(admin, models.User{
		Email: "tech@lab.kz", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAccountant, OrgID: "org-lab",
	})
	require.NoError(t, err)

	opticDoc := models.Actor{ID: "od-1", Role: models.RoleOptic, SubRole: models.SubRoleOpticDoctor, OrgID: "org-a"}
	_, err = s.CreateStaff(opticDoc, models.User{Email: "x@a.kz", Role: models.RoleOptic})
	require.ErrorIs(t, err, svc.ErrForbidden)
}

func TestCreateStaff_ManagerPinnedToOwnOrg(t *testing.T) {
	s, _ := newSvc()

	manager := models.Actor{ID: "mgr-a", Role: models.RoleOptic, SubRole: models.SubRoleOpticManager, OrgID: "org-a"}
	created, err := s.CreateStaff(manager, models.User{
		Email: "new@a.kz", Role: models.RoleOptic, SubRole: models.SubRoleOpticDoctor, OrgID: "org-b",
	})
	require.NoError(t, err)
	require.Equal(t, "org-a", created.OrgID)
}

func TestCreateStaff_DuplicateEmail_Conflict(t *testing.T) {
	s, _ := newSvc()
	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}

	seedUser(t, s, admin, models.User{Email: "dup@lab.kz", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"})
	_, err := s.CreateStaff(admin, models.User{Email: "dup@lab.kz", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"})
	require.ErrorIs(t, err, svc.ErrConflict)
}

func TestDeleteStaff_CrossOrg_IsNotFound(t *testing.T) {
	s, _ := newSvc()
	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}
	managerA := models.Actor{ID: "mgr-a", Role: models.RoleOptic, SubRole: models.SubRoleOpticManager, OrgID: "org-a"}

	victim := seedUser(t, s, admin, models.User{
		Email: "doc@b.kz", Role: models.RoleOptic, SubRole: models.SubRoleOpticDoctor, OrgID: "org-b",
	})

	// manager from org A must not even learn the org B id exists
	err := s.DeleteStaff(managerA, victim.ID)
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.NotErrorIs(t, err, svc.ErrForbidden)
}

func TestDeleteStaff_SelfDeletionRejected(t *testing.T) {
	s, _ := newSvc()
	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}
	manager := models.Actor{ID: "mgr-a", Role: models.RoleOptic, SubRole: models.SubRoleOpticManager, OrgID: "org-a"}

	require.ErrorIs(t, s.DeleteStaff(admin, "adm-1"), svc.ErrValidation)
	require.ErrorIs(t, s.DeleteStaff(manager, "mgr-a"), svc.ErrValidation)
}

func TestUpdateStaff_CannotMoveBetweenOrgs(t *testing.T) {
	s, _ := newSvc()
	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}

	u := seedUser(t, s, admin, models.User{
		Email: "doc@a.kz", Role: models.RoleOptic, SubRole: models.SubRoleOpticDoctor, OrgID: "org-a",
	})

	u.OrgID = "org-b"
	u.Name = "Renamed"
	updated, err := s.UpdateStaff(admin, u)
	require.NoError(t, err)
	require.Equal(t, "org-a", updated.OrgID)
	require.Equal(t, "Renamed", updated.Name)
}

func TestSetDiscount_HeadOnly(t *testing.T) {
	s, repo := newSvc()
	require.NoError(t, repo.OrgStore.CreateOrg(models.Organization{
		ID: "org-a", Name: "Vision+", City: "Almaty", Status: models.OrgActive, Discount: 5,
	}))

	head := models.Actor{ID: "head-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabHead, OrgID: "org-lab"}
	org, err := s.SetDiscount(head, "org-a", 15)
	require.NoError(t, err)
	require.Equal(t, 15, org.Discount)

	admin := models.Actor{ID: "adm-1", Role: models.RoleLaboratory, SubRole: models.SubRoleLabAdmin, OrgID: "org-lab"}
	_, err = s.SetDiscount(admin, "org-a", 20)
	require.ErrorIs(t, err, svc.ErrForbidden)

	_, err = s.SetDiscount(head, "org-a", 101)
	require.ErrorIs(t, err, svc.ErrValidation)

	_, err = s.SetDiscount(head, "org-404", 10)
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestExportCounterparties_ActiveOnly(t *testing.T) {
	s, repo := newSvc()
	require.NoError(t, repo.OrgStore.CreateOrg(models.Organization{ID: "org-a", Name: "Vision+", Status: models.OrgActive}))
	require.NoError(t, repo.OrgStore.CreateOrg(models.Organization{ID: "org-x", Name: "Gone", Status: models.OrgInactive}))

	orgs, err := s.ExportCounterparties()
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, "org-a", orgs[0].ID)
}
