package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
)

func (s *Service) ListProducts(actor models.Actor) ([]models.Product, error) {
	if !Authorized(actor, ActionViewCatalog) {
		return nil, fmt.Errorf("%w: catalog requires authentication", ErrForbidden)
	}
	products, err := s.repo.ProductStore.GetAllProducts()
	if err != nil {
		return nil, err
	}
	if !CanSeePrices(actor) {
		for i := range products {
			products[i] = products[i].Public()
		}
	}
	return products, nil
}

func (s *Service) CreateProduct(actor models.Actor, p models.Product) (models.Product, error) {
	if !Authorized(actor, ActionMutateCatalog) {
		return models.Product{}, fmt.Errorf("%w: catalog is managed by the laboratory", ErrForbidden)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.v.Struct(p); err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.mapStoreErr(s.repo.ProductStore.CreateProduct(p)); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(actor models.Actor, p models.Product) (models.Product, error) {
	if !Authorized(actor, ActionMutateCatalog) {
		return models.Product{}, fmt.Errorf("%w: catalog is managed by the laboratory", ErrForbidden)
	}
	if err := s.v.Struct(p); err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.mapStoreErr(s.repo.ProductStore.UpdateProduct(p)); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(actor models.Actor, id string) error {
	if !Authorized(actor, ActionMutateCatalog) {
		return fmt.Errorf("%w: catalog is managed by the laboratory", ErrForbidden)
	}
	return s.mapStoreErr(s.repo.ProductStore.DeleteProduct(id))
}
