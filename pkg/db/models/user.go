package models

import (
	"time"

	"marketpulse/pkg/enums"

	"github.com/google/uuid"
)

// User represents a customer, merchant, or admin identity.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Address      string         `gorm:"column:address;not null"`
	City         string         `gorm:"column:city;not null"`
	State        string         `gorm:"column:state;not null"`
	Zip          string         `gorm:"column:zip;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'default'"`
	Active       bool           `gorm:"column:active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// IsMerchant reports whether the user owns a merchant catalog.
func (u *User) IsMerchant() bool {
	return u != nil && u.Role == enums.UserRoleMerchant
}

// IsAdmin reports whether the user has marketplace-wide visibility.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == enums.UserRoleAdmin
}
