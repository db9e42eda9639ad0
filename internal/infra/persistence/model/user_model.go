package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The primary key is the auth identity
// id, not a generated value: profile rows are keyed by the identity that
// owns them so reconciliation can join the two worlds directly.
type UserModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	Email     string     `gorm:"type:varchar(255);unique;not null"`
	FullName  string     `gorm:"type:varchar(100);not null"`
	Phone     string     `gorm:"type:varchar(30)"`
	Role      string     `gorm:"type:varchar(20);not null;default:'citizen'"`
	CommuneID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Commune *CommuneModel `gorm:"foreignKey:CommuneID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
