package usecase

import (
	"context"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
)

// Репозитории возвращают (nil, nil) для отсутствующих записей:
// перевод отсутствия в доменную ошибку — ответственность usecase-слоя.

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Archive(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, categoryName string) ([]domain.Product, error)
	Search(ctx context.Context, substring string) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type CategoryRepository interface {
	Ensure(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type SpecialPriceRepository interface {
	Create(ctx context.Context, sp *domain.SpecialPrice) (*domain.SpecialPrice, error)
	Update(ctx context.Context, id int64, patch *SpecialPricePatch) (*domain.SpecialPrice, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.SpecialPrice, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.SpecialPrice, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error)
	FindActiveByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, patch *UserPatch) (*domain.User, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
