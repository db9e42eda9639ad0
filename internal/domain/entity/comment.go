package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a follow-up note left on a report by an authenticated user.
type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ReportID  uuid.UUID
	Content   string
	CreatedAt time.Time
}
