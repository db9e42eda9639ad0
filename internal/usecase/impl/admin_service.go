package impl

import (
	"context"
	"log/slog"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	profileUsecase usecase.ProfileUsecase
	logger         *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	ProfileUsecase usecase.ProfileUsecase
	Logger         *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		profileUsecase: params.ProfileUsecase,
		logger:         params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireAdmin re-checks the actor's role. The middleware already gates the
// admin routes; this keeps the rule enforced even for internal callers.
func requireAdmin(actor *entity.User) error {
	if actor == nil || actor.Role != entity.RoleAdmin {
		return errors.Wrap(domainerrors.ErrForbidden, "admin role required")
	}

	return nil
}

// ListUsers returns every profile, oldest first.
func (srv *adminService) ListUsers(ctx context.Context, actor *entity.User) ([]*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// AssignRole promotes or demotes a user. A bourgmestre assignment binds the
// user to a commune; assigning any other role clears the commune binding.
func (srv *adminService) AssignRole(ctx context.Context, actor *entity.User, input *usecase.AssignRoleInput) (*entity.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole, "unknown role")
	}

	if input.Role == entity.RoleBourgmestre && input.CommuneID == nil {
		return nil, errors.Wrap(domainerrors.ErrCommuneRequired, "bourgmestre needs a commune")
	}

	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		user.Role = input.Role
		if input.Role == entity.RoleBourgmestre {
			if _, err := repoFactory.CommuneRepo().FindByID(ctx, *input.CommuneID); err != nil {
				if errors.Is(err, repository.ErrCommuneNotFound) {
					return errors.Wrap(domainerrors.ErrCommuneNotFound, "unknown commune")
				}

				return errors.Wrap(err, "failed to find commune")
			}
			user.CommuneID = input.CommuneID
		} else {
			user.CommuneID = nil
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user role")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute role assignment transaction")
	}

	// The cached profile now carries a stale role; drop it so the next
	// request of that user sees the new permissions.
	srv.profileUsecase.Invalidate(updated.ID)

	srv.log(ctx).Info("Role assigned",
		slog.Any("userID", updated.ID),
		slog.String("role", string(updated.Role)),
		slog.Any("actorID", actor.ID),
	)

	return updated, nil
}
