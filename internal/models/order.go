package models

import (
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusInProduction OrderStatus = "in_production"
	StatusReady        OrderStatus = "ready"
	StatusRework       OrderStatus = "rework"
	StatusShipped      OrderStatus = "shipped"
	StatusDelivered    OrderStatus = "delivered"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
)

type Order struct {
	Number        string          `json:"number"         validate:"required" gorm:"primary_key;unique"`
	Status        OrderStatus     `json:"status"         validate:"required,oneof=pending in_production ready rework shipped delivered"`
	Patient       *Patient        `json:"patient"        validate:"required" gorm:"foreignkey:OrderRefer;association_foreignkey:Number"`
	LensConfig    json.RawMessage `json:"lens_config"    gorm:"type:jsonb"`
	Notes         string          `json:"notes"`
	DeliveryType  string          `json:"delivery_type"  validate:"omitempty,oneof=pickup courier post"`
	DeliveryAddr  string          `json:"delivery_addr"`
	PaymentStatus PaymentStatus   `json:"payment_status" validate:"required,oneof=unpaid paid partial"`
	Defects       []Defect        `json:"defects"        gorm:"foreignkey:OrderRefer;association_foreignkey:Number"`

	// Milestones: each is stamped on the first transition into the matching
	// status and never overwritten afterwards.
	ProductionStartedAt   *time.Time `json:"production_started_at,omitempty"`
	ProductionCompletedAt *time.Time `json:"production_completed_at,omitempty"`
	ShippedAt             *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt           *time.Time `json:"delivered_at,omitempty"`

	// ExternalRef is the partner-side order id; when set, status changes are
	// mirrored to the partner system best-effort.
	ExternalRef string `json:"external_ref,omitempty"`

	CreatedBy string    `json:"created_by" validate:"required"`
	OrgID     string    `json:"org_id"     validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`

	Meta Meta `json:"meta" gorm:"embedded;embedded_prefix:meta_"`
}

type Meta struct {
	UpdatedAt time.Time `json:"updated_at"`
}

type Patient struct {
	OrderRefer string `json:"-" gorm:"type:varchar(36);index"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"`
}

type Defect struct {
	OrderRefer string    `json:"-"          gorm:"type:varchar(36);index"`
	ID         string    `json:"id"         validate:"required" gorm:"primary_key;unique"`
	Qty        int       `json:"qty"        validate:"required,gte=1"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Archived   bool      `json:"archived"`
}

// DefectAllowed reports whether the order's current status permits recording
// defects; they only make sense while the item is on the production floor.
func (o Order) DefectAllowed() bool {
	switch o.Status {
	case StatusInProduction, StatusReady, StatusRework:
		return true
	}
	return false
}
