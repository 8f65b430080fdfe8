package models

import (
	"time"
)

const (
	RoleOwner       = "owner"
	RoleBillingDesk = "billing_desk"
)

// Operator is a staff login. Owners administer, the billing desk runs check-in and checkout.
type Operator struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string    `gorm:"size:32;index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
