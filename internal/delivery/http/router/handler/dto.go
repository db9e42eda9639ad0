// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"alerte/internal/domain/entity"
	"alerte/internal/usecase"

	"github.com/google/uuid"
)

// View models returned by the API. Domain entities never cross the HTTP
// boundary directly: the views control field exposure (an anonymous report
// carries no user id) and JSON naming.

// UserView is the public shape of a profile.
type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	CommuneID *uuid.UUID `json:"commune_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toUserView(user *entity.User) *UserView {
	if user == nil {
		return nil
	}

	return &UserView{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CommuneID: user.CommuneID,
		CreatedAt: user.CreatedAt,
	}
}

func toUserViews(users []*entity.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

// AuthView returns the token pair after signup or login.
type AuthView struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *UserView `json:"user"`
}

func toAuthView(output *usecase.AuthOutput) *AuthView {
	return &AuthView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserView(output.User),
	}
}

// PointView is a GPS position, lat/lng.
type PointView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReportImageView is one attached photo.
type ReportImageView struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"image_url"`
}

// ReportView is the public shape of a report. UserID is absent for
// anonymous reports.
type ReportView struct {
	ID            uuid.UUID          `json:"id"`
	Code          string             `json:"code"`
	ProblemTypeID uuid.UUID          `json:"problem_type_id"`
	CommuneID     uuid.UUID          `json:"commune_id"`
	UserID        *uuid.UUID         `json:"user_id,omitempty"`
	Description   string             `json:"description"`
	Address       string             `json:"address,omitempty"`
	Location      *PointView         `json:"location,omitempty"`
	Priority      string             `json:"priority"`
	Status        string             `json:"status"`
	IsAnonymous   bool               `json:"is_anonymous"`
	Images        []*ReportImageView `json:"images"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func toReportView(report *entity.Report) *ReportView {
	if report == nil {
		return nil
	}

	view := &ReportView{
		ID:            report.ID,
		Code:          report.Code,
		ProblemTypeID: report.ProblemTypeID,
		CommuneID:     report.CommuneID,
		UserID:        report.UserID,
		Description:   report.Description,
		Address:       report.Address,
		Priority:      string(report.Priority),
		Status:        string(report.Status),
		IsAnonymous:   report.IsAnonymous,
		Images:        make([]*ReportImageView, 0, len(report.Images)),
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}

	if report.Location != nil {
		view.Location = &PointView{Latitude: report.Location.Lat(), Longitude: report.Location.Lon()}
	}

	for _, image := range report.Images {
		view.Images = append(view.Images, &ReportImageView{ID: image.ID, ImageURL: image.ImageURL})
	}

	return view
}

func toReportViews(reports []*entity.Report) []*ReportView {
	views := make([]*ReportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, toReportView(report))
	}

	return views
}

// ImageResultView reports per-image upload outcome on submission.
type ImageResultView struct {
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	Failed   bool   `json:"failed"`
}

// SubmitReportView is the submission response: the created report plus the
// outcome of each attempted image upload.
type SubmitReportView struct {
	Report       *ReportView        `json:"report"`
	ImageResults []*ImageResultView `json:"image_results"`
}

func toImageResultViews(results []usecase.ImageResult) []*ImageResultView {
	views := make([]*ImageResultView, 0, len(results))
	for _, r := range results {
		views = append(views, &ImageResultView{FileName: r.FileName, URL: r.URL, Failed: r.Failed})
	}

	return views
}

func toSubmitReportView(output *usecase.SubmitReportOutput) *SubmitReportView {
	return &SubmitReportView{
		Report:       toReportView(output.Report),
		ImageResults: toImageResultViews(output.ImageResults),
	}
}

// CommentView is a follow-up note on a report.
type CommentView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ReportID  uuid.UUID `json:"report_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentView(comment *entity.Comment) *CommentView {
	return &CommentView{
		ID:        comment.ID,
		UserID:    comment.UserID,
		ReportID:  comment.ReportID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func toCommentViews(comments []*entity.Comment) []*CommentView {
	views := make([]*CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, toCommentView(comment))
	}

	return views
}

// CommuneView is one administrative subdivision.
type CommuneView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Population int       `json:"population"`
}

func toCommuneViews(communes []*entity.Commune) []*CommuneView {
	views := make([]*CommuneView, 0, len(communes))
	for _, commune := range communes {
		views = append(views, &CommuneView{
			ID:         commune.ID,
			Name:       commune.Name,
			Latitude:   commune.Location.Lat(),
			Longitude:  commune.Location.Lon(),
			Population: commune.Population,
		})
	}

	return views
}

// ProblemTypeView is one problem category.
type ProblemTypeView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PriorityLevel int       `json:"priority_level"`
}

func toProblemTypeViews(problemTypes []*entity.ProblemType) []*ProblemTypeView {
	views := make([]*ProblemTypeView, 0, len(problemTypes))
	for _, problemType := range problemTypes {
		views = append(views, &ProblemTypeView{
			ID:            problemType.ID,
			Name:          problemType.Name,
			Description:   problemType.Description,
			PriorityLevel: problemType.PriorityLevel,
		})
	}

	return views
}
