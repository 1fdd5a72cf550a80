package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService lets an owner manage the cashiers of its tenant
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns the users of the tenant
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) (shared.Paginated[UserDTO], error) {
	f := shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search).
		With("role", filter.Role)

	users, total, err := s.userRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return shared.Paginated[UserDTO]{}, err
	}
	items := make([]UserDTO, len(users))
	for i := range users {
		items[i] = ToUserDTO(&users[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// CreateCashier adds a cashier to the owner's tenant
func (s *UserService) CreateCashier(ctx context.Context, tc TenantContext, req CreateCashierRequest) (*UserDTO, error) {
	owner, err := s.userRepo.FindByIDForTenant(ctx, tc.TenantID, tc.TenantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	cashier, err := identity.NewCashier(owner, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, cashier); err != nil {
		return nil, err
	}

	s.logger.Info("Cashier created",
		zap.String("tenant_id", tc.TenantID.String()),
		zap.String("user_id", cashier.ID.String()))

	dto := ToUserDTO(cashier)
	return &dto, nil
}

// UpdateCashier renames, re-keys or (de)activates a cashier
func (s *UserService) UpdateCashier(ctx context.Context, tenantID, userID uuid.UUID, req UpdateCashierRequest) (*UserDTO, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if user.IsOwner() {
		return nil, shared.NewDomainError("FORBIDDEN", "The owner account cannot be managed here")
	}

	if req.Name != nil {
		if err := user.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			user.Activate()
		} else if err := user.Deactivate(); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// DeleteCashier removes a cashier. Sales they rang up keep their cashier id.
func (s *UserService) DeleteCashier(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if user.IsOwner() {
		return shared.NewDomainError("FORBIDDEN", "The owner account cannot be deleted")
	}
	if err := s.userRepo.DeleteForTenant(ctx, tenantID, userID); err != nil {
		return err
	}
	s.logger.Info("Cashier deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
