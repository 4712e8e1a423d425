package models

type OrgStatus string

const (
	OrgActive   OrgStatus = "active"
	OrgInactive OrgStatus = "inactive"
)

// Organization is a clinic/optic as seen from the laboratory side; billing
// calls it a counterparty.
type Organization struct {
	ID       string    `json:"id"       validate:"required" gorm:"primary_key;unique"`
	Name     string    `json:"name"     validate:"required"`
	City     string    `json:"city"`
	Status   OrgStatus `json:"status"   validate:"required,oneof=active inactive"`
	Discount int       `json:"discount" validate:"gte=0,lte=100"`
}
