package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel mirrors the 'devices' table. OwnerID is a required FK to users,
// LocationID an optional FK to locations; both are enforced at the database
// so a dangling reference surfaces as a constraint violation.
type DeviceModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Type       string     `gorm:"type:varchar(100);not null"`
	Login      string     `gorm:"type:varchar(255);not null"`
	Password   string     `gorm:"type:varchar(255);not null"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Location *LocationModel `gorm:"foreignKey:LocationID"`
	Owner    *UserModel     `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (DeviceModel) TableName() string {
	return "devices"
}
