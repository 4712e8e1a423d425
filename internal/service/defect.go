package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

// AddDefect records a rework/defect entry on an order. Only orders that are
// physically on the production floor can collect defects.
func (s *Service) AddDefect(number string, qty int, note string) (models.Defect, models.Order, error) {
	if qty < 1 {
		return models.Defect{}, models.Order{}, fmt.Errorf("%w: qty must be a positive integer", ErrValidation)
	}
	ord, err := s.GetOrder(number)
	if err != nil {
		return models.Defect{}, models.Order{}, err
	}
	if !ord.DefectAllowed() {
		return models.Defect{}, models.Order{},
			fmt.Errorf("%w: defects only during production/ready/rework", ErrInvalidState)
	}

	d := models.Defect{
		ID:        uuid.NewString(),
		Qty:       qty,
		Note:      note,
		CreatedAt: s.now().UTC(),
		Archived:  false,
	}
	ord.Defects = append(ord.Defects, d)
	ord.Meta.UpdatedAt = s.now().UTC()

	if err := s.mapStoreErr(s.repo.OrderStore.Update(ord)); err != nil {
		return models.Defect{}, models.Order{}, err
	}
	return d, ord, nil
}

// SetDefectArchived flips or sets the archived flag of a defect. A nil
// archived value toggles.
func (s *Service) SetDefectArchived(number, defectID string, archived *bool) (models.Defect, error) {
	ord, err := s.GetOrder(number)
	if err != nil {
		return models.Defect{}, err
	}

	idx := -1
	for i := range ord.Defects {
		if ord.Defects[i].ID == defectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Defect{}, fmt.Errorf("%w: defect %s", ErrNotFound, defectID)
	}

	if archived != nil {
		ord.Defects[idx].Archived = *archived
	} else {
		ord.Defects[idx].Archived = !ord.Defects[idx].Archived
	}
	ord.Meta.UpdatedAt = s.now().UTC()

	if err := s.mapStoreErr(s.repo.OrderStore.Update(ord)); err != nil {
		return models.Defect{}, err
	}
	return ord.Defects[idx], nil
}
