package postgres

import (
	"context"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// communeRepository implements the domain.CommuneRepository interface using GORM.
type communeRepository struct {
	db *gorm.DB
}

// NewCommuneRepository is the constructor for communeRepository.
func NewCommuneRepository(db *gorm.DB) repository.CommuneRepository {
	return &communeRepository{db: db}
}

// FindByID retrieves a single commune by id.
func (repo *communeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Commune, error) {
	var communeM model.CommuneModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&communeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommuneNotFound
		}

		return nil, errors.Wrap(err, "failed to find commune by id")
	}

	return toCommuneDomain(&communeM), nil
}

// FindByName retrieves a single commune by its unique name.
func (repo *communeRepository) FindByName(ctx context.Context, name string) (*entity.Commune, error) {
	var communeM model.CommuneModel
	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&communeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommuneNotFound
		}

		return nil, errors.Wrap(err, "failed to find commune by name")
	}

	return toCommuneDomain(&communeM), nil
}

// List returns every commune, ordered by name.
func (repo *communeRepository) List(ctx context.Context) ([]*entity.Commune, error) {
	var communeMs []model.CommuneModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&communeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list communes")
	}

	communes := make([]*entity.Commune, 0, len(communeMs))
	for i := range communeMs {
		communes = append(communes, toCommuneDomain(&communeMs[i]))
	}

	return communes, nil
}

// Create persists a commune row. Seeding tool only.
func (repo *communeRepository) Create(ctx context.Context, commune *entity.Commune) error {
	communeM := &model.CommuneModel{
		ID:         commune.ID,
		Name:       commune.Name,
		Latitude:   commune.Location.Lat(),
		Longitude:  commune.Location.Lon(),
		Population: commune.Population,
	}

	if err := repo.db.WithContext(ctx).Create(communeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("commune already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create commune")
	}

	commune.ID = communeM.ID

	return nil
}

func toCommuneDomain(data *model.CommuneModel) *entity.Commune {
	if data == nil {
		return nil
	}

	return &entity.Commune{
		ID:         data.ID,
		Name:       data.Name,
		Location:   orb.Point{data.Longitude, data.Latitude},
		Population: data.Population,
	}
}
