package usecase

import (
	"context"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// AssignRoleInput changes a user's role. CommuneID is required when the new
// role is bourgmestre and ignored otherwise.
type AssignRoleInput struct {
	UserID    uuid.UUID
	Role      entity.Role
	CommuneID *uuid.UUID
}

// AdminUsecase defines city-administration operations. Access is gated on
// the admin role at the delivery layer and re-checked here.
type AdminUsecase interface {
	ListUsers(ctx context.Context, actor *entity.User) ([]*entity.User, error)
	AssignRole(ctx context.Context, actor *entity.User, input *AssignRoleInput) (*entity.User, error)
}
