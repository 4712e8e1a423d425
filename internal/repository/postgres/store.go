package postgres

import (
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/memory"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func mapErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case gorm.IsRecordNotFoundError(err):
		return memory.ErrNotFound
	case strings.Contains(err.Error(), "duplicate key value"):
		return memory.ErrConflict
	}
	return errors.Wrap(err, op)
}

func (s *Store) Create(o models.Order) error {
	if o.Patient != nil {
		o.Patient.OrderRefer = o.Number
	}
	for i := range o.Defects {
		o.Defects[i].OrderRefer = o.Number
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&o).Error
	})
	return mapErr(err, "order create")
}

// Update rewrites the order header, its patient row and the full defect
// list; defects are replaced wholesale since they live inside the order.
func (s *Store) Update(o models.Order) error {
	if o.Patient != nil {
		o.Patient.OrderRefer = o.Number
	}
	for i := range o.Defects {
		o.Defects[i].OrderRefer = o.Number
	}

	err := s.db.
		Set("gorm:association_autocreate", false).
		Set("gorm:association_autoupdate", false).
		Transaction(func(tx *gorm.DB) error {
			var count int
			if err := tx.Model(&models.Order{}).
				Where("number = ?", o.Number).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}

			if err := tx.Model(&models.Order{}).
				Where("number = ?", o.Number).
				Updates(map[string]interface{}{
					"status":                  o.Status,
					"lens_config":             o.LensConfig,
					"notes":                   o.Notes,
					"delivery_type":           o.DeliveryType,
					"delivery_addr":           o.DeliveryAddr,
					"payment_status":          o.PaymentStatus,
					"production_started_at":   o.ProductionStartedAt,
					"production_completed_at": o.ProductionCompletedAt,
					"shipped_at":              o.ShippedAt,
					"delivered_at":            o.DeliveredAt,
					"external_ref":            o.ExternalRef,
					"meta_updated_at":         o.Meta.UpdatedAt,
				}).Error; err != nil {
				return err
			}

			if o.Patient != nil {
				var p models.Patient
				err := tx.Where("order_refer = ?", o.Number).First(&p).Error
				switch {
				case gorm.IsRecordNotFoundError(err):
					if err := tx.Model(&models.Patient{}).Create(o.Patient).Error; err != nil {
						return err
					}
				case err != nil:
					return err
				default:
					if err := tx.Model(&p).Updates(o.Patient).Error; err != nil {
						return err
					}
				}
			}

			if err := tx.Where("order_refer = ?", o.Number).Delete(models.Defect{}).Error; err != nil {
				return err
			}
			for i := range o.Defects {
				if err := tx.Model(&models.Defect{}).Create(&o.Defects[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
	return mapErr(err, "order update")
}

func (s *Store) Get(number string) (models.Order, error) {
	var o models.Order
	q := s.db.Preload("Patient").
		Preload("Defects").
		Where("number = ?", number).
		First(&o)
	return o, mapErr(q.Error, "order get")
}

func (s *Store) GetAll() ([]models.Order, error) {
	var out []models.Order
	q := s.db.Preload("Patient").
		Preload("Defects").
		Find(&out)
	return out, mapErr(q.Error, "orders get all")
}

func (s *Store) CreateUser(u models.User) error {
	return mapErr(s.db.Create(&u).Error, "user create")
}

func (s *Store) UpdateUser(u models.User) error {
	var existing models.User
	if err := s.db.Where("id = ?", u.ID).First(&existing).Error; err != nil {
		return mapErr(err, "user update lookup")
	}
	return mapErr(s.db.Model(&existing).Updates(u).Error, "user update")
}

func (s *Store) DeleteUser(id string) error {
	q := s.db.Where("id = ?", id).Delete(&models.User{})
	if q.Error != nil {
		return mapErr(q.Error, "user delete")
	}
	if q.RowsAffected == 0 {
		return memory.ErrNotFound
	}
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	var u models.User
	err := s.db.Where("id = ?", id).First(&u).Error
	return u, mapErr(err, "user get")
}

func (s *Store) GetUsersByOrg(orgID string) ([]models.User, error) {
	var out []models.User
	err := s.db.Where("org_id = ?", orgID).Find(&out).Error
	return out, mapErr(err, "users by org")
}

func (s *Store) CreateOrg(o models.Organization) error {
	return mapErr(s.db.Create(&o).Error, "org create")
}

func (s *Store) UpdateOrg(o models.Organization) error {
	var existing models.Organization
	if err := s.db.Where("id = ?", o.ID).First(&existing).Error; err != nil {
		return mapErr(err, "org update lookup")
	}
	return mapErr(s.db.Model(&existing).Updates(map[string]interface{}{
		"name":     o.Name,
		"city":     o.City,
		"status":   o.Status,
		"discount": o.Discount,
	}).Error, "org update")
}

func (s *Store) GetOrg(id string) (models.Organization, error) {
	var o models.Organization
	err := s.db.Where("id = ?", id).First(&o).Error
	return o, mapErr(err, "org get")
}

func (s *Store) GetActiveOrgs() ([]models.Organization, error) {
	var out []models.Organization
	err := s.db.Where("status = ?", models.OrgActive).Find(&out).Error
	return out, mapErr(err, "active orgs")
}

func (s *Store) CreateProduct(p models.Product) error {
	return mapErr(s.db.Create(&p).Error, "product create")
}

func (s *Store) UpdateProduct(p models.Product) error {
	var existing models.Product
	if err := s.db.Where("id = ?", p.ID).First(&existing).Error; err != nil {
		return mapErr(err, "product update lookup")
	}
	return mapErr(s.db.Model(&existing).Updates(p).Error, "product update")
}

func (s *Store) DeleteProduct(id string) error {
	q := s.db.Where("id = ?", id).Delete(&models.Product{})
	if q.Error != nil {
		return mapErr(q.Error, "product delete")
	}
	if q.RowsAffected == 0 {
		return memory.ErrNotFound
	}
	return nil
}

func (s *Store) GetProduct(id string) (models.Product, error) {
	var p models.Product
	err := s.db.Where("id = ?", id).First(&p).Error
	return p, mapErr(err, "product get")
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	var out []models.Product
	err := s.db.Find(&out).Error
	return out, mapErr(err, "products get all")
}
