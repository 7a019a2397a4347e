package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
)

// UserUseCase реализует управление пользователями каталога.
// Удаление мягкое; email уникален среди неудалённых пользователей.
// Движок персональных цен пользователей не изменяет — сюда ходит только
// тонкий CRUD-слой.
type UserUseCase struct {
	userRepo UserRepository
	logger   logger.Logger
}

func NewUserUC(userRepo UserRepository, logger logger.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser создаёт пользователя. Занятый email отклоняется и предварительной
// проверкой, и частичным уникальным индексом в хранилище.
func (u *UserUseCase) CreateUser(ctx context.Context, req *CreateUserReq) (*domain.User, error) {
	const op = "UserUseCase.CreateUser"

	if err := validateCreateUser(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		return nil, e.Wrap(op, e.ErrEmailTaken)
	}

	created, err := u.userRepo.Create(ctx, domain.NewUser(req.Name, req.Email, req.Role))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateUser частично обновляет пользователя; смена email проверяется на
// занятость.
func (u *UserUseCase) UpdateUser(ctx context.Context, id int64, req *UpdateUserReq) (*domain.User, error) {
	const op = "UserUseCase.UpdateUser"

	if err := validateUpdateUser(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	current, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current == nil {
		return nil, e.Wrap(op, e.ErrUserNotFound)
	}

	if req.Email != nil && *req.Email != current.Email {
		existing, err := u.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if existing != nil {
			return nil, e.Wrap(op, e.ErrEmailTaken)
		}
	}

	patch := &UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}

	updated, err := u.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if updated == nil {
		return nil, e.Wrap(op, e.ErrUserNotFound)
	}

	return updated, nil
}

// DeleteUser мягко удаляет пользователя: запись остаётся, но исчезает из
// всех выборок.
func (u *UserUseCase) DeleteUser(ctx context.Context, id int64) error {
	const op = "UserUseCase.DeleteUser"

	deleted, err := u.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		return e.Wrap(op, e.ErrUserNotFound)
	}

	return nil
}

// GetUser возвращает неудалённого пользователя по идентификатору.
func (u *UserUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	const op = "UserUseCase.GetUser"

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if user == nil {
		return nil, e.Wrap(op, e.ErrUserNotFound)
	}

	return user, nil
}

// ListUsers возвращает всех неудалённых пользователей.
func (u *UserUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	const op = "UserUseCase.ListUsers"

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return users, nil
}

func validateCreateUser(req *CreateUserReq) error {
	var violations []string

	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, "name is required")
	}
	if !emailRe.MatchString(req.Email) {
		violations = append(violations, "email is invalid")
	}
	if strings.TrimSpace(req.Role) == "" {
		violations = append(violations, "role is required")
	}

	if len(violations) > 0 {
		return e.NewValidationError(violations)
	}

	return nil
}

func validateUpdateUser(req *UpdateUserReq) error {
	var violations []string

	if req.Name == nil && req.Email == nil && req.Role == nil {
		violations = append(violations, "no fields to update")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		violations = append(violations, "name must not be empty")
	}
	if req.Email != nil && !emailRe.MatchString(*req.Email) {
		violations = append(violations, "email is invalid")
	}
	if req.Role != nil && strings.TrimSpace(*req.Role) == "" {
		violations = append(violations, "role must not be empty")
	}

	if len(violations) > 0 {
		return e.NewValidationError(violations)
	}

	return nil
}
