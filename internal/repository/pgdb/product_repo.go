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

const productColumns = `id, name, description, price, category_id, stock, brand, sku, tags, created_at, updated_at, is_archived`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет новый товар в текущей транзакции.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, description, price, category_id, stock, brand, sku, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.CategoryID,
		product.Stock, product.Brand, product.SKU, product.Tags,
	).Scan(
		&model.ID, &model.Name, &model.Description, &model.Price, &model.CategoryID,
		&model.Stock, &model.Brand, &model.SKU, &model.Tags,
		&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Update полностью обновляет неархивированный товар в текущей транзакции.
// Возвращает (nil, nil), если товара нет.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category_id = $5,
			stock = $6, brand = $7, sku = $8, tags = $9, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.CategoryID,
		product.Stock, product.Brand, product.SKU, product.Tags,
	).Scan(
		&model.ID, &model.Name, &model.Description, &model.Price, &model.CategoryID,
		&model.Stock, &model.Brand, &model.SKU, &model.Tags,
		&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Archive мягко архивирует товар; false — товара нет или он уже архивирован.
func (p *ProductRepo) Archive(ctx context.Context, id int64) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET is_archived = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived;
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// FindByID возвращает неархивированный товар или (nil, nil).
func (p *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND NOT is_archived;
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Description, &model.Price, &model.CategoryID,
		&model.Stock, &model.Brand, &model.SKU, &model.Tags,
		&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// FindAll возвращает весь каталог в каталожном порядке (по id).
func (p *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE NOT is_archived
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

// FindByCategory возвращает товары категории в каталожном порядке.
func (p *ProductRepo) FindByCategory(ctx context.Context, categoryName string) ([]domain.Product, error) {
	query := `
		SELECT pr.id, pr.name, pr.description, pr.price, pr.category_id, pr.stock,
			pr.brand, pr.sku, pr.tags, pr.created_at, pr.updated_at, pr.is_archived
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE cat.name = $1 AND NOT pr.is_archived
		ORDER BY pr.id;
	`

	rows, err := p.pool.Query(ctx, query, categoryName)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

// Search ищет товары по подстроке названия без учёта регистра.
func (p *ProductRepo) Search(ctx context.Context, substring string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%' AND NOT is_archived
		ORDER BY id;
	`

	rows, err := p.pool.Query(ctx, query, substring)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanProducts(rows)
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам,
// включая название категории.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.description, cat.name, pr.price, pr.stock
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1) AND NOT pr.is_archived;
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description,
			&product.CategoryName, &product.Price, &product.Stock,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Price, &model.CategoryID,
			&model.Stock, &model.Brand, &model.SKU, &model.Tags,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}
