package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"alerte/config"
	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileCacheTTL bounds how stale a cached profile may be. Mutations
// invalidate explicitly; the TTL only covers changes made out of band.
const profileCacheTTL = 5 * time.Minute

type cachedProfile struct {
	user      *entity.User
	expiresAt time.Time
}

// profileService implements the ProfileUsecase interface: the reconciliation
// layer between authentication identities and profile rows.
type profileService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	fetchTimeout time.Duration
	logger       *slog.Logger

	mu    sync.RWMutex
	cache map[uuid.UUID]cachedProfile
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	AuthRepo  repository.AuthRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	fetchTimeout := 3 * time.Second
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ProfileFetchTimeout > 0 {
		fetchTimeout = params.Config.Auth.ProfileFetchTimeout
	}

	return &profileService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		authRepo:     params.AuthRepo,
		fetchTimeout: fetchTimeout,
		logger:       params.Logger,
		cache:        make(map[uuid.UUID]cachedProfile),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// EnsureProfile resolves the profile for an identity, creating a default
// citizen profile when the row is missing. Repeated calls for the same
// identity are served from cache and never re-create anything.
func (srv *profileService) EnsureProfile(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	if identity == nil {
		return nil, errors.Wrap(domainerrors.ErrProfileNotLoaded, "no identity")
	}

	if user := srv.cached(identity.ID); user != nil {
		return user, nil
	}

	// The lookup is bounded: a slow profile store must not hold the whole
	// request hostage. On expiry the profile counts as "not loaded".
	fetchCtx, cancel := context.WithTimeout(ctx, srv.fetchTimeout)
	defer cancel()

	user, err := srv.userRepo.FindByID(fetchCtx, identity.ID)
	if err == nil {
		srv.store(user)

		return user, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
		srv.log(ctx).Warn("Profile fetch timed out",
			slog.Any("userID", identity.ID),
			slog.Duration("timeout", srv.fetchTimeout),
		)

		return nil, errors.Wrap(domainerrors.ErrProfileNotLoaded, "profile fetch timed out")
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find profile")
	}

	// Credential without a profile row: observed drift in older data.
	// Heal it by creating a default citizen profile keyed by the identity id.
	srv.log(ctx).Info("Profile missing for identity, self-healing",
		slog.Any("userID", identity.ID),
		slog.String("email", identity.Email),
	)

	user, err = srv.createDefaultProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	srv.store(user)

	return user, nil
}

// createDefaultProfile inserts the healing row. If the email is already
// taken by another profile (legacy duplicate), the insert is retried once
// with a suffixed fallback so healing never hard-fails on the constraint.
func (srv *profileService) createDefaultProfile(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	user := &entity.User{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  entity.RoleCitizen,
	}
	if identity.Metadata != nil {
		user.FullName = identity.Metadata.FullName
		user.Phone = identity.Metadata.Phone
		user.CommuneID = identity.Metadata.CommuneID
	}
	if user.FullName == "" {
		user.FullName = displayNameFromEmail(identity.Email)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, domainerrors.ErrEmailAlreadyUsed) {
		return nil, errors.Wrap(err, "failed to create default profile")
	}

	// Another profile already owns this email. Keep the identity usable
	// under a fallback address; operators resolve the duplicate later.
	fallback := fallbackEmail(identity.Email)
	srv.log(ctx).Warn("Email taken during profile healing, using fallback",
		slog.Any("userID", identity.ID),
		slog.String("fallbackEmail", fallback),
	)

	user.Email = fallback
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create default profile with fallback email")
	}

	return user, nil
}

// Invalidate drops the cached profile for a user.
func (srv *profileService) Invalidate(userID uuid.UUID) {
	srv.mu.Lock()
	delete(srv.cache, userID)
	srv.mu.Unlock()
}

// UpdateProfile applies contact-field changes for the user.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		if input.FullName != "" {
			user.FullName = input.FullName
		}
		user.Phone = input.Phone
		if input.CommuneID != nil {
			user.CommuneID = input.CommuneID
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.Invalidate(userID)
	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return updated, nil
}

// RepairOrphans creates default profiles for credentials with no profile row.
func (srv *profileService) RepairOrphans(ctx context.Context) (int, error) {
	orphans, err := srv.authRepo.ListOrphaned(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list orphaned credentials")
	}

	repaired := 0
	for _, auth := range orphans {
		identity := &entity.Identity{ID: auth.UserID, Email: auth.ProviderUserID}
		if _, err := srv.createDefaultProfile(ctx, identity); err != nil {
			srv.log(ctx).Warn("Failed to repair orphaned credential",
				slog.Any("userID", auth.UserID),
				slog.Any("error", err),
			)

			continue
		}
		repaired++
	}

	srv.log(ctx).Info("Orphan repair pass completed",
		slog.Int("orphans", len(orphans)),
		slog.Int("repaired", repaired),
	)

	return repaired, nil
}

func (srv *profileService) cached(userID uuid.UUID) *entity.User {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	entry, ok := srv.cache[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	return entry.user
}

func (srv *profileService) store(user *entity.User) {
	srv.mu.Lock()
	srv.cache[user.ID] = cachedProfile{
		user:      user,
		expiresAt: time.Now().Add(profileCacheTTL),
	}
	srv.mu.Unlock()
}

// displayNameFromEmail derives a default display name from the local part.
func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

// fallbackEmail suffixes the local part with a timestamp so the healed row
// passes the unique constraint.
func fallbackEmail(email string) string {
	suffix := fmt.Sprintf("+%d", time.Now().Unix())
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at] + suffix + email[at:]
	}

	return email + suffix
}
