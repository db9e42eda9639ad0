package impl

import (
	"context"

	"alerte/internal/domain/entity"
	"alerte/internal/domain/repository"
	"alerte/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// referenceService implements the ReferenceUsecase interface.
type referenceService struct {
	communeRepo     repository.CommuneRepository
	problemTypeRepo repository.ProblemTypeRepository
}

// ReferenceServiceParams holds dependencies for ReferenceService, injected by Fx.
type ReferenceServiceParams struct {
	fx.In

	CommuneRepo     repository.CommuneRepository
	ProblemTypeRepo repository.ProblemTypeRepository
}

// NewReferenceService is the constructor for referenceService.
func NewReferenceService(params ReferenceServiceParams) usecase.ReferenceUsecase {
	return &referenceService{
		communeRepo:     params.CommuneRepo,
		problemTypeRepo: params.ProblemTypeRepo,
	}
}

// ListCommunes returns the seeded communes, ordered by name.
func (srv *referenceService) ListCommunes(ctx context.Context) ([]*entity.Commune, error) {
	communes, err := srv.communeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list communes")
	}

	return communes, nil
}

// ListProblemTypes returns the seeded problem categories, ordered by name.
func (srv *referenceService) ListProblemTypes(ctx context.Context) ([]*entity.ProblemType, error) {
	problemTypes, err := srv.problemTypeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list problem types")
	}

	return problemTypes, nil
}
