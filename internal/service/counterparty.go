package service

import (
	"fmt"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

// SetDiscount changes a counterparty's discount percentage. Head of
// laboratory only.
func (s *Service) SetDiscount(actor models.Actor, orgID string, discount int) (models.Organization, error) {
	if !Authorized(actor, ActionChangeDiscount) {
		return models.Organization{}, fmt.Errorf("%w: discounts are lab_head-only", ErrForbidden)
	}
	if discount < 0 || discount > 100 {
		return models.Organization{}, fmt.Errorf("%w: discount must be within 0..100", ErrValidation)
	}
	org, err := s.repo.OrgStore.GetOrg(orgID)
	if err != nil {
		return models.Organization{}, s.mapStoreErr(err)
	}
	org.Discount = discount
	if err := s.mapStoreErr(s.repo.OrgStore.UpdateOrg(org)); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// ExportCounterparties lists active organizations for the partner system.
// Key authentication happens at the HTTP boundary.
func (s *Service) ExportCounterparties() ([]models.Organization, error) {
	return s.repo.OrgStore.GetActiveOrgs()
}
