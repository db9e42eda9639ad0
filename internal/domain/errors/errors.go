package errors

import (
	"net/http"

	"alerte/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. User-facing messages are in French, the working
// language of the platform; raw causes are logged, never shown verbatim.
var (
	// User / profile errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Utilisateur introuvable",
		"",
	)

	ErrEmailAlreadyUsed = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_USED",
		"Cette adresse e-mail est déjà utilisée",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"La création du compte a échoué",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"La mise à jour du profil a échoué",
		"",
	)

	// ErrProfileNotLoaded signals that the profile could not be resolved in
	// time: the session stays valid but the role is unknown and every
	// role-gated action is denied until reconciliation succeeds.
	ErrProfileNotLoaded = NewBaseError(
		http.StatusForbidden,
		"PROFILE_NOT_LOADED",
		"Profil non chargé, veuillez réessayer",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Adresse e-mail ou mot de passe incorrect",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Jeton de session invalide ou expiré",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Erreur lors du traitement du mot de passe",
		"",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"RESET_TOKEN_INVALID",
		"Lien de réinitialisation invalide ou expiré",
		"",
	)

	// Report errors
	ErrReportNotFound = NewBaseError(
		http.StatusNotFound,
		"REPORT_NOT_FOUND",
		"Signalement introuvable",
		"",
	)

	ErrReportCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"REPORT_CREATION_FAILED",
		"L'enregistrement du signalement a échoué",
		"",
	)

	ErrInvalidPriority = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PRIORITY",
		"Priorité invalide : choisissez faible, moyenne ou élevée",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Statut de signalement invalide",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"Cette transition de statut n'est pas autorisée",
		"",
	)

	ErrCommuneNotFound = NewBaseError(
		http.StatusNotFound,
		"COMMUNE_NOT_FOUND",
		"Commune introuvable",
		"",
	)

	ErrProblemTypeNotFound = NewBaseError(
		http.StatusNotFound,
		"PROBLEM_TYPE_NOT_FOUND",
		"Type de problème introuvable",
		"",
	)

	// Administration errors
	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Rôle invalide",
		"",
	)

	ErrCommuneRequired = NewBaseError(
		http.StatusBadRequest,
		"COMMUNE_REQUIRED",
		"Une commune doit être assignée à un bourgmestre",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Les données saisies sont invalides",
		"",
	)

	// Transaction errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Échec de la transaction en base de données",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Erreur interne du système",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Accès refusé",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Ressource introuvable",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflit de ressources",
		"",
	)
)

// NewDatabaseExecuteError wraps a low-level database error into a generic
// AppError while keeping the cause in the details for diagnostics.
func NewDatabaseExecuteError(cause error, message string) error {
	return errors.Wrap(ErrTransactionFailed.WithDetails(cause.Error()), message)
}
