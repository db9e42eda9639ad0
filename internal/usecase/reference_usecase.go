package usecase

import (
	"context"

	"alerte/internal/domain/entity"
)

// ReferenceUsecase serves the seeded reference data the submission forms
// are built from. Public, read-only.
type ReferenceUsecase interface {
	ListCommunes(ctx context.Context) ([]*entity.Commune, error)
	ListProblemTypes(ctx context.Context) ([]*entity.ProblemType, error)
}
