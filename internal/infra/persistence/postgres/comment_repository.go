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

// commentRepository implements the domain.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := &model.CommentModel{
		ID:       comment.ID,
		UserID:   comment.UserID,
		ReportID: comment.ReportID,
		Content:  comment.Content,
	}

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrReportNotFound.WrapMessage("report does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

// ListByReport returns a report's comments, oldest first.
func (repo *commentRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.Comment, error) {
	var commentMs []model.CommentModel
	if err := repo.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&commentMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(commentMs))
	for i := range commentMs {
		comments = append(comments, &entity.Comment{
			ID:        commentMs[i].ID,
			UserID:    commentMs[i].UserID,
			ReportID:  commentMs[i].ReportID,
			Content:   commentMs[i].Content,
			CreatedAt: commentMs[i].CreatedAt,
		})
	}

	return comments, nil
}
