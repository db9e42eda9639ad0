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

// reportImageRepository implements the domain.ReportImageRepository interface using GORM.
type reportImageRepository struct {
	db *gorm.DB
}

// NewReportImageRepository is the constructor for reportImageRepository.
func NewReportImageRepository(db *gorm.DB) repository.ReportImageRepository {
	return &reportImageRepository{db: db}
}

// Create records an uploaded image URL against a report.
func (repo *reportImageRepository) Create(ctx context.Context, image *entity.ReportImage) error {
	imageM := &model.ReportImageModel{
		ID:       image.ID,
		ReportID: image.ReportID,
		ImageURL: image.ImageURL,
	}

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrReportNotFound.WrapMessage("report does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report image")
	}

	image.ID = imageM.ID
	image.CreatedAt = imageM.CreatedAt

	return nil
}

// ListByReport returns a report's images, oldest first.
func (repo *reportImageRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.ReportImage, error) {
	var imageMs []model.ReportImageModel
	if err := repo.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&imageMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list report images")
	}

	images := make([]*entity.ReportImage, 0, len(imageMs))
	for i := range imageMs {
		images = append(images, toReportImageDomain(&imageMs[i]))
	}

	return images, nil
}
