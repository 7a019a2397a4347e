package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const specialPriceColumns = `id, user_id, user_name, user_email, product_id, product_name, special_price, discount, is_active, notes, created_at, updated_at`

// SpecialPriceRepo реализует репозиторий специальных цен поверх PostgreSQL.
type SpecialPriceRepo struct {
	pool *pgxpool.Pool
	conv converter.SpecialPriceConverter
}

func NewSpecialPriceRepo(pool *pgxpool.Pool, conv converter.SpecialPriceConverter) *SpecialPriceRepo {
	return &SpecialPriceRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет специальную цену в текущей транзакции. Нарушение
// уникальности пары (user_id, product_id) транслируется в доменную ошибку.
func (s *SpecialPriceRepo) Create(ctx context.Context, price *domain.SpecialPrice) (*domain.SpecialPrice, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO special_prices (user_id, user_name, user_email, product_id, product_name,
			special_price, discount, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + specialPriceColumns + `;
	`

	var model converter.SpecialPriceModel
	err = tx.QueryRow(ctx, query,
		price.UserID, price.UserName, price.UserEmail, price.ProductID, price.ProductName,
		price.SpecialPrice, price.Discount, price.IsActive, price.Notes,
	).Scan(
		&model.ID, &model.UserID, &model.UserName, &model.UserEmail,
		&model.ProductID, &model.ProductName, &model.SpecialPrice, &model.Discount,
		&model.IsActive, &model.Notes, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.ErrSpecialPriceExists
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}

// Update частично обновляет запись в текущей транзакции: nil-поля патча
// сохраняют текущие значения. Возвращает (nil, nil), если записи нет.
func (s *SpecialPriceRepo) Update(ctx context.Context, id int64, patch *usecase.SpecialPricePatch) (*domain.SpecialPrice, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE special_prices
		SET special_price = COALESCE($2, special_price),
			discount = COALESCE($3, discount),
			is_active = COALESCE($4, is_active),
			notes = COALESCE($5, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + specialPriceColumns + `;
	`

	var model converter.SpecialPriceModel
	err = tx.QueryRow(ctx, query,
		id, patch.SpecialPrice, patch.Discount, patch.IsActive, patch.Notes,
	).Scan(
		&model.ID, &model.UserID, &model.UserName, &model.UserEmail,
		&model.ProductID, &model.ProductName, &model.SpecialPrice, &model.Discount,
		&model.IsActive, &model.Notes, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}

// Delete безвозвратно удаляет запись; false — записи не было.
func (s *SpecialPriceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM special_prices WHERE id = $1;`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// FindByID возвращает запись или (nil, nil).
func (s *SpecialPriceRepo) FindByID(ctx context.Context, id int64) (*domain.SpecialPrice, error) {
	query := `
		SELECT ` + specialPriceColumns + `
		FROM special_prices
		WHERE id = $1;
	`

	var model converter.SpecialPriceModel
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.UserID, &model.UserName, &model.UserEmail,
		&model.ProductID, &model.ProductName, &model.SpecialPrice, &model.Discount,
		&model.IsActive, &model.Notes, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}

// FindByUserAndProduct возвращает запись по паре пользователь-товар или (nil, nil).
func (s *SpecialPriceRepo) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.SpecialPrice, error) {
	query := `
		SELECT ` + specialPriceColumns + `
		FROM special_prices
		WHERE user_id = $1 AND product_id = $2;
	`

	var model converter.SpecialPriceModel
	err := s.pool.QueryRow(ctx, query, userID, productID).Scan(
		&model.ID, &model.UserID, &model.UserName, &model.UserEmail,
		&model.ProductID, &model.ProductName, &model.SpecialPrice, &model.Discount,
		&model.IsActive, &model.Notes, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}

// FindByUserID возвращает все записи пользователя, включая неактивные.
func (s *SpecialPriceRepo) FindByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	query := `
		SELECT ` + specialPriceColumns + `
		FROM special_prices
		WHERE user_id = $1
		ORDER BY id;
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return s.scanSpecialPrices(rows)
}

// FindActiveByUserID возвращает только активные записи пользователя.
func (s *SpecialPriceRepo) FindActiveByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	query := `
		SELECT ` + specialPriceColumns + `
		FROM special_prices
		WHERE user_id = $1 AND is_active
		ORDER BY id;
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return s.scanSpecialPrices(rows)
}

func (s *SpecialPriceRepo) scanSpecialPrices(rows pgx.Rows) ([]domain.SpecialPrice, error) {
	models := make([]converter.SpecialPriceModel, 0)
	for rows.Next() {
		var model converter.SpecialPriceModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.UserName, &model.UserEmail,
			&model.ProductID, &model.ProductName, &model.SpecialPrice, &model.Discount,
			&model.IsActive, &model.Notes, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToArrEntity(models), nil
}
