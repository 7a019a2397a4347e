package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// ProductUseCase реализует бизнес-логику управления каталогом товаров.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	dbPool       transaction.Transactional
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

type productEventPayload struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Stock     int64  `json:"stock"`
}

func newProductEventPayload(product *domain.Product) productEventPayload {
	return productEventPayload{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
	}
}

// CreateProduct создаёт товар с идемпотентным созданием категории.
// Запись товара и outbox-событие пишутся в одной транзакции.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	var err error
	if err = validateSaveProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := p.categoryRepo.Ensure(ctx, domain.NewCategory(req.CategoryName))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Description, req.Price, category.ID, req.Stock)
	product.Brand = req.Brand
	product.SKU = req.SKU
	product.Tags = req.Tags

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, ProductCreated, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct полностью обновляет товар и сбрасывает его кэш.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	var err error
	if err = validateSaveProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := p.categoryRepo.Ensure(ctx, domain.NewCategory(req.CategoryName))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Description, req.Price, category.ID, req.Stock)
	product.ID = id
	product.Brand = req.Brand
	product.SKU = req.SKU
	product.Tags = req.Tags

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if updated == nil {
		err = e.ErrProductNotFound
		return nil, e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, ProductUpdated, updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id, op)

	return updated, nil
}

// ArchiveProduct мягко архивирует товар и сбрасывает его кэш.
func (p *ProductUseCase) ArchiveProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.ArchiveProduct"

	var err error
	existing, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if existing == nil {
		return e.Wrap(op, e.ErrProductNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	archived, err := p.productRepo.Archive(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !archived {
		err = e.ErrProductNotFound
		return e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, ProductArchived, existing); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id, op)

	return nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам.
// Читает сквозь кэш: промахи добираются из БД и фоново кэшируются.
func (p *ProductUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProductsInfo"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	cacheProductsMap, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, productID := range req.IDs {
			if _, ok := cacheProductsMap[productID]; !ok {
				nonCacheable = append(nonCacheable, productID)
			}
		}
	}

	var productsInfoFromDB []ProductInfo
	if len(nonCacheable) > 0 {
		productsInfoFromDB, err = p.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProducts(bgCtx, productsInfoFromDB); err != nil {
				p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbProductsMap := make(map[int64]ProductInfo, len(productsInfoFromDB))
	for _, productInfo := range productsInfoFromDB {
		dbProductsMap[productInfo.ID] = productInfo
	}

	result := make([]ProductInfo, 0, len(req.IDs))
	notFoundProducts := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cacheProductsMap[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[id]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, id)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// ListProducts возвращает весь каталог в каталожном порядке.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// ListProductsByCategory возвращает товары одной категории.
func (p *ProductUseCase) ListProductsByCategory(ctx context.Context, categoryName string) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProductsByCategory"

	products, err := p.productRepo.FindByCategory(ctx, categoryName)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// SearchProducts ищет товары по подстроке названия.
func (p *ProductUseCase) SearchProducts(ctx context.Context, substring string) ([]domain.Product, error) {
	const op = "ProductUseCase.SearchProducts"

	products, err := p.productRepo.Search(ctx, substring)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// writeEvent пишет outbox-событие в текущей транзакции.
func (p *ProductUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	event, err := NewOutboxEvent(eventType, product.ID, newProductEventPayload(product))
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, event)
	return err
}

// invalidateCache удаляет товар из кэша после мутации; ошибка кэша не
// фатальна и только логируется.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id int64, op string) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}
}

// validateSaveProduct собирает все нарушения полей запроса.
func validateSaveProduct(req *SaveProductReq) error {
	var violations []string

	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, "product name is required")
	}
	if strings.TrimSpace(req.CategoryName) == "" {
		violations = append(violations, "category is required")
	}
	if req.Price <= 0 {
		violations = append(violations, "price must be positive")
	}
	if req.Stock < 0 {
		violations = append(violations, "stock must not be negative")
	}

	if len(violations) > 0 {
		return e.NewValidationError(violations)
	}

	return nil
}
