package http

import (
	"time"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/money"
)

// Цены в JSON ходят строками с двумя знаками после запятой ("599.99"),
// внутри системы — int64 в копейках.

type SaveProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Stock       int64    `json:"stock"`
	Brand       *string  `json:"brand,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type ProductResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	CategoryID  int64      `json:"category_id"`
	Stock       int64      `json:"stock"`
	Brand       *string    `json:"brand,omitempty"`
	SKU         *string    `json:"sku,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ProductInfoResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	Price        string `json:"price"`
	Stock        int64  `json:"stock"`
}

type GetProductsResponse struct {
	Products         []ProductInfoResponse `json:"products"`
	NotFoundProducts []int64               `json:"not_found_products,omitempty"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSpecialPriceRequest struct {
	UserID       int64   `json:"user_id"`
	UserName     string  `json:"user_name"`
	UserEmail    string  `json:"user_email"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	SpecialPrice string  `json:"special_price"`
	Discount     int64   `json:"discount"`
	Notes        *string `json:"notes,omitempty"`
}

type UpdateSpecialPriceRequest struct {
	SpecialPrice *string `json:"special_price,omitempty"`
	Discount     *int64  `json:"discount,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type SpecialPriceResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	UserName     string     `json:"user_name"`
	UserEmail    string     `json:"user_email"`
	ProductID    int64      `json:"product_id"`
	ProductName  string     `json:"product_name"`
	SpecialPrice string     `json:"special_price"`
	Discount     int64      `json:"discount"`
	IsActive     bool       `json:"is_active"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type PricedProductResponse struct {
	Product        ProductResponse `json:"product"`
	EffectivePrice string          `json:"effective_price"`
	IsOverridden   bool            `json:"is_overridden"`
	Discount       int64           `json:"discount"`
}

type PricingSummaryResponse struct {
	UserID            int64                  `json:"user_id"`
	HasSpecialPricing bool                   `json:"has_special_pricing"`
	SpecialPrices     []SpecialPriceResponse `json:"special_prices"`
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       money.FormatCents(product.Price),
		CategoryID:  product.CategoryID,
		Stock:       product.Stock,
		Brand:       product.Brand,
		SKU:         product.SKU,
		Tags:        product.Tags,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, toProductResponse(&products[i]))
	}
	return result
}

func toProductInfoResponse(info usecase.ProductInfo) ProductInfoResponse {
	return ProductInfoResponse{
		ID:           info.ID,
		Name:         info.Name,
		Description:  info.Description,
		CategoryName: info.CategoryName,
		Price:        money.FormatCents(info.Price),
		Stock:        info.Stock,
	}
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func toArrUserResponse(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result
}

func toSpecialPriceResponse(sp *domain.SpecialPrice) SpecialPriceResponse {
	return SpecialPriceResponse{
		ID:           sp.ID,
		UserID:       sp.UserID,
		UserName:     sp.UserName,
		UserEmail:    sp.UserEmail,
		ProductID:    sp.ProductID,
		ProductName:  sp.ProductName,
		SpecialPrice: money.FormatCents(sp.SpecialPrice),
		Discount:     sp.Discount,
		IsActive:     sp.IsActive,
		Notes:        sp.Notes,
		CreatedAt:    sp.CreatedAt,
		UpdatedAt:    sp.UpdatedAt,
	}
}

func toArrSpecialPriceResponse(prices []domain.SpecialPrice) []SpecialPriceResponse {
	result := make([]SpecialPriceResponse, 0, len(prices))
	for i := range prices {
		result = append(result, toSpecialPriceResponse(&prices[i]))
	}
	return result
}

func toPricedProductResponse(pp usecase.PricedProduct) PricedProductResponse {
	return PricedProductResponse{
		Product:        toProductResponse(&pp.Product),
		EffectivePrice: money.FormatCents(pp.EffectivePrice),
		IsOverridden:   pp.IsOverridden,
		Discount:       pp.Discount,
	}
}

func toArrPricedProductResponse(products []usecase.PricedProduct) []PricedProductResponse {
	result := make([]PricedProductResponse, 0, len(products))
	for i := range products {
		result = append(result, toPricedProductResponse(products[i]))
	}
	return result
}
