package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportModel mirrors the 'reports' table. UserID stays populated even for
// anonymous reports; anonymity is applied at presentation time only.
type ReportModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Code          string     `gorm:"type:varchar(30);unique;not null"`
	ProblemTypeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CommuneID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	Description   string     `gorm:"type:text;not null"`
	Address       string     `gorm:"type:text"`
	Latitude      *float64   `gorm:"type:decimal(10,8)"`
	Longitude     *float64   `gorm:"type:decimal(11,8)"`
	Priority      string     `gorm:"type:varchar(20);not null;default:'medium'"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsAnonymous   bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time

	Images []ReportImageModel `gorm:"foreignKey:ReportID"`
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}

// ReportImageModel mirrors the 'report_images' table.
type ReportImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL  string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReportImageModel) TableName() string {
	return "report_images"
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}
