package postgres

import (
	"context"
	"time"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reportRepository implements the domain.ReportRepository interface using GORM.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a new report with its generated id and code.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportM := fromReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("report code already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrReportCreationFailed.WrapMessage("invalid commune or problem type reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrReportCreationFailed.WrapMessage("report violates a database constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report")
	}

	report.ID = reportM.ID
	report.CreatedAt = reportM.CreatedAt
	report.UpdatedAt = reportM.UpdatedAt

	return nil
}

// FindByID retrieves a single report with its images preloaded.
func (repo *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var reportM model.ReportModel
	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&reportM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find report by id")
	}

	return toReportDomain(&reportM), nil
}

// List returns the reports matching the filter, newest first.
func (repo *reportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, error) {
	query := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC")

	query = applyScope(query, filter.Scope)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ProblemTypeID != nil {
		query = query.Where("problem_type_id = ?", *filter.ProblemTypeID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var reportMs []model.ReportModel
	if err := query.Find(&reportMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	reports := make([]*entity.Report, 0, len(reportMs))
	for i := range reportMs {
		reports = append(reports, toReportDomain(&reportMs[i]))
	}

	return reports, nil
}

// UpdateStatus sets a report's status and stamps updated_at to the transition
// time, returning the refreshed row.
func (repo *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) (*entity.Report, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ReportModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update report status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrReportNotFound
	}

	return repo.FindByID(ctx, id)
}

// applyScope narrows a report query to the caller's visibility.
func applyScope(query *gorm.DB, scope entity.ReportScope) *gorm.DB {
	switch scope.Kind {
	case entity.ScopeOwn:
		return query.Where("user_id = ?", scope.UserID)
	case entity.ScopeCommune:
		return query.Where("commune_id = ?", scope.CommuneID)
	default:
		// ScopeAll: no narrowing.
		return query
	}
}

// --- Mapper Functions ---

func toReportDomain(data *model.ReportModel) *entity.Report {
	if data == nil {
		return nil
	}

	var location *orb.Point
	if data.Latitude != nil && data.Longitude != nil {
		point := orb.Point{*data.Longitude, *data.Latitude}
		location = &point
	}

	images := make([]*entity.ReportImage, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, toReportImageDomain(&data.Images[i]))
	}

	return &entity.Report{
		ID:            data.ID,
		Code:          data.Code,
		ProblemTypeID: data.ProblemTypeID,
		CommuneID:     data.CommuneID,
		UserID:        data.UserID,
		Description:   data.Description,
		Address:       data.Address,
		Location:      location,
		Priority:      entity.ReportPriority(data.Priority),
		Status:        entity.ReportStatus(data.Status),
		IsAnonymous:   data.IsAnonymous,
		Images:        images,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromReportDomain(data *entity.Report) *model.ReportModel {
	if data == nil {
		return nil
	}

	var latitude, longitude *float64
	if data.Location != nil {
		lat := data.Location.Lat()
		lon := data.Location.Lon()
		latitude = &lat
		longitude = &lon
	}

	return &model.ReportModel{
		ID:            data.ID,
		Code:          data.Code,
		ProblemTypeID: data.ProblemTypeID,
		CommuneID:     data.CommuneID,
		UserID:        data.UserID,
		Description:   data.Description,
		Address:       data.Address,
		Latitude:      latitude,
		Longitude:     longitude,
		Priority:      string(data.Priority),
		Status:        string(data.Status),
		IsAnonymous:   data.IsAnonymous,
	}
}

func toReportImageDomain(data *model.ReportImageModel) *entity.ReportImage {
	if data == nil {
		return nil
	}

	return &entity.ReportImage{
		ID:        data.ID,
		ReportID:  data.ReportID,
		ImageURL:  data.ImageURL,
		CreatedAt: data.CreatedAt,
	}
}
