package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const userColumns = `id, name, email, role, created_at, is_deleted`

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
// Пишет напрямую через пул: операции над пользователями однострочные
// и не участвуют в транзакциях ценообразования.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет пользователя. Занятый email (среди неудалённых)
// транслируется в доменную ошибку.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `;
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, user.Name, user.Email, user.Role).Scan(
		&model.ID, &model.Name, &model.Email, &model.Role, &model.CreatedAt, &model.IsDeleted,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.ErrEmailTaken
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// Update частично обновляет неудалённого пользователя.
// Возвращает (nil, nil), если пользователя нет.
func (u *UserRepo) Update(ctx context.Context, id int64, patch *usecase.UserPatch) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			role = COALESCE($4, role)
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + userColumns + `;
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, id, patch.Name, patch.Email, patch.Role).Scan(
		&model.ID, &model.Name, &model.Email, &model.Role, &model.CreatedAt, &model.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if postgresDuplicate(err) {
			return nil, e.ErrEmailTaken
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// SoftDelete помечает пользователя удалённым; false — пользователя нет.
func (u *UserRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE users
		SET is_deleted = TRUE
		WHERE id = $1 AND NOT is_deleted;
	`

	result, err := u.pool.Exec(ctx, query, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// FindByID возвращает неудалённого пользователя или (nil, nil).
func (u *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND NOT is_deleted;
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Email, &model.Role, &model.CreatedAt, &model.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// FindByEmail возвращает неудалённого пользователя по email или (nil, nil).
func (u *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND NOT is_deleted;
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, email).Scan(
		&model.ID, &model.Name, &model.Email, &model.Role, &model.CreatedAt, &model.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// FindAll возвращает всех неудалённых пользователей.
func (u *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT is_deleted
		ORDER BY id;
	`

	rows, err := u.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.UserModel, 0)
	for rows.Next() {
		var model converter.UserModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Email, &model.Role, &model.CreatedAt, &model.IsDeleted,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToArrEntity(models), nil
}
