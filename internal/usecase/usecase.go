package usecase

import (
	"context"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
)

type ProductUC interface {
	CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error)
	ArchiveProduct(ctx context.Context, id int64) error
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryName string) ([]domain.Product, error)
	SearchProducts(ctx context.Context, substring string) ([]domain.Product, error)
}

type PricingUC interface {
	CreateSpecialPrice(ctx context.Context, req *CreateSpecialPriceReq) (*domain.SpecialPrice, error)
	UpdateSpecialPrice(ctx context.Context, id int64, req *UpdateSpecialPriceReq) (*domain.SpecialPrice, error)
	DeleteSpecialPrice(ctx context.Context, id int64) error
	GetSpecialPriceForUserAndProduct(ctx context.Context, userID, productID int64) (*domain.SpecialPrice, error)
	GetSpecialPricesForUser(ctx context.Context, userID int64) ([]domain.SpecialPrice, error)
	GetActiveSpecialPricesForUser(ctx context.Context, userID int64) ([]domain.SpecialPrice, error)
	GetUserPricingSummary(ctx context.Context, userID int64) (*PricingSummaryRes, error)
}

type PricingViewUC interface {
	GetCatalogForUser(ctx context.Context, userID int64) ([]PricedProduct, error)
}

type UserUC interface {
	CreateUser(ctx context.Context, req *CreateUserReq) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, req *UpdateUserReq) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
