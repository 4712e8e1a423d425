package models

type Role string

const (
	RoleDoctor     Role = "doctor"
	RoleOptic      Role = "optic"
	RoleLaboratory Role = "laboratory"
)

type SubRole string

const (
	SubRoleLabHead       SubRole = "lab_head"
	SubRoleLabAdmin      SubRole = "lab_admin"
	SubRoleLabAccountant SubRole = "lab_accountant"
	SubRoleOpticManager  SubRole = "optic_manager"
	SubRoleOpticDoctor   SubRole = "optic_doctor"
)

type User struct {
	ID      string  `json:"id"       validate:"required" gorm:"primary_key;unique"`
	Email   string  `json:"email"    validate:"required,email" gorm:"unique_index"`
	Name    string  `json:"name"`
	Role    Role    `json:"role"     validate:"required,oneof=doctor optic laboratory"`
	SubRole SubRole `json:"sub_role" validate:"omitempty,oneof=lab_head lab_admin lab_accountant optic_manager optic_doctor"`
	OrgID   string  `json:"org_id"`
}

// Actor is the authenticated identity a request acts on behalf of. Token
// issuance happens upstream; the service only sees the resolved identity.
type Actor struct {
	ID      string
	Role    Role
	SubRole SubRole
	OrgID   string
}
