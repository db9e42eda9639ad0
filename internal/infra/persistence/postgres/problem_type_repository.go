package postgres

import (
	"context"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// problemTypeRepository implements the domain.ProblemTypeRepository interface using GORM.
type problemTypeRepository struct {
	db *gorm.DB
}

// NewProblemTypeRepository is the constructor for problemTypeRepository.
func NewProblemTypeRepository(db *gorm.DB) repository.ProblemTypeRepository {
	return &problemTypeRepository{db: db}
}

// FindByID retrieves a single problem type by id.
func (repo *problemTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProblemType, error) {
	var typeM model.ProblemTypeModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&typeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProblemTypeNotFound
		}

		return nil, errors.Wrap(err, "failed to find problem type by id")
	}

	return toProblemTypeDomain(&typeM), nil
}

// FindByName retrieves a single problem type by its unique name.
func (repo *problemTypeRepository) FindByName(ctx context.Context, name string) (*entity.ProblemType, error) {
	var typeM model.ProblemTypeModel
	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&typeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProblemTypeNotFound
		}

		return nil, errors.Wrap(err, "failed to find problem type by name")
	}

	return toProblemTypeDomain(&typeM), nil
}

// List returns every problem type, ordered by name.
func (repo *problemTypeRepository) List(ctx context.Context) ([]*entity.ProblemType, error) {
	var typeMs []model.ProblemTypeModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&typeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list problem types")
	}

	types := make([]*entity.ProblemType, 0, len(typeMs))
	for i := range typeMs {
		types = append(types, toProblemTypeDomain(&typeMs[i]))
	}

	return types, nil
}

// Create persists a problem type row. Seeding tool only.
func (repo *problemTypeRepository) Create(ctx context.Context, problemType *entity.ProblemType) error {
	typeM := &model.ProblemTypeModel{
		ID:            problemType.ID,
		Name:          problemType.Name,
		Description:   problemType.Description,
		PriorityLevel: problemType.PriorityLevel,
	}

	if err := repo.db.WithContext(ctx).Create(typeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("problem type already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create problem type")
	}

	problemType.ID = typeM.ID

	return nil
}

func toProblemTypeDomain(data *model.ProblemTypeModel) *entity.ProblemType {
	if data == nil {
		return nil
	}

	return &entity.ProblemType{
		ID:            data.ID,
		Name:          data.Name,
		Description:   data.Description,
		PriorityLevel: data.PriorityLevel,
	}
}
