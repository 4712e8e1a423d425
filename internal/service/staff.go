package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

// staffTarget loads a staff member and checks the actor may see them. A
// clinic manager must not
// learn that a user id exists in another organization, so out-of-scope
// lookups answer NotFound rather than Forbidden.
func (s *Service) staffTarget(actor models.Actor, targetID string) (models.User, error) {
	target, err := s.repo.UserStore.GetUser(targetID)
	if err != nil {
		return models.User{}, s.mapStoreErr(err)
	}
	if actor.SubRole == models.SubRoleOpticManager && target.OrgID != actor.OrgID {
		return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, targetID)
	}
	return target, nil
}

func canManageStaff(actor models.Actor) bool {
	return Authorized(actor, ActionManageLabStaff) || Authorized(actor, ActionManageClinicStaff)
}

func (s *Service) CreateStaff(actor models.Actor, u models.User) (models.User, error) {
	if !canManageStaff(actor) {
		return models.User{}, fmt.Errorf("%w: staff management", ErrForbidden)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	// clinic managers only hire into their own organization
	if actor.SubRole == models.SubRoleOpticManager {
		u.OrgID = actor.OrgID
		u.Role = models.RoleOptic
	}
	if err := s.v.Struct(u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.mapStoreErr(s.repo.UserStore.CreateUser(u)); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Service) UpdateStaff(actor models.Actor, u models.User) (models.User, error) {
	if !canManageStaff(actor) {
		return models.User{}, fmt.Errorf("%w: staff management", ErrForbidden)
	}
	target, err := s.staffTarget(actor, u.ID)
	if err != nil {
		return models.User{}, err
	}
	// org membership is not transferable through a staff update
	u.OrgID = target.OrgID
	if err := s.v.Struct(u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.mapStoreErr(s.repo.UserStore.UpdateUser(u)); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Service) DeleteStaff(actor models.Actor, targetID string) error {
	if !canManageStaff(actor) {
		return fmt.Errorf("%w: staff management", ErrForbidden)
	}
	if actor.ID == targetID {
		return fmt.Errorf("%w: cannot delete own account", ErrValidation)
	}
	if _, err := s.staffTarget(actor, targetID); err != nil {
		return err
	}
	return s.mapStoreErr(s.repo.UserStore.DeleteUser(targetID))
}
