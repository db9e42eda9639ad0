package repository

import (
	"context"
	"errors"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCommuneNotFound is returned when no commune matches the lookup.
var ErrCommuneNotFound = errors.New("commune not found")

// ErrProblemTypeNotFound is returned when no problem type matches the lookup.
var ErrProblemTypeNotFound = errors.New("problem type not found")

// CommuneRepository gives read access to the seeded commune reference data.
// Create exists only for the seeding tool.
type CommuneRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Commune, error)
	FindByName(ctx context.Context, name string) (*entity.Commune, error)
	List(ctx context.Context) ([]*entity.Commune, error)
	Create(ctx context.Context, commune *entity.Commune) error
}

// ProblemTypeRepository gives read access to the seeded problem categories.
type ProblemTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProblemType, error)
	FindByName(ctx context.Context, name string) (*entity.ProblemType, error)
	List(ctx context.Context) ([]*entity.ProblemType, error)
	Create(ctx context.Context, problemType *entity.ProblemType) error
}
