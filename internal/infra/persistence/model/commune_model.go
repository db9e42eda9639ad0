package model

import (
	"time"

	"github.com/google/uuid"
)

// CommuneModel mirrors the 'communes' table.
type CommuneModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name       string    `gorm:"type:varchar(100);unique;not null"`
	Latitude   float64   `gorm:"type:decimal(10,8);not null"`
	Longitude  float64   `gorm:"type:decimal(11,8);not null"`
	Population int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommuneModel) TableName() string {
	return "communes"
}

// ProblemTypeModel mirrors the 'problem_types' table.
type ProblemTypeModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name          string    `gorm:"type:varchar(100);unique;not null"`
	Description   string    `gorm:"type:text"`
	PriorityLevel int       `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProblemTypeModel) TableName() string {
	return "problem_types"
}
