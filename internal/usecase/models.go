package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/google/uuid"
)

// PRODUCT USECASE

// SaveProductReq — запрос на создание или полное обновление товара.
type SaveProductReq struct {
	Name         string
	Description  string
	CategoryName string
	Price        int64
	Stock        int64
	Brand        *string
	SKU          *string
	Tags         []string
}

// GetProductsReq — запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID           int64
	Name         string
	Description  string
	CategoryName string
	Price        int64
	Stock        int64
}

// PRICING USECASE

// CreateSpecialPriceReq — запрос на создание персональной цены.
// Имя, email пользователя и название товара приходят от вызывающей стороны
// уже разрешёнными и сохраняются как снимки.
type CreateSpecialPriceReq struct {
	UserID       int64
	UserName     string
	UserEmail    string
	ProductID    int64
	ProductName  string
	SpecialPrice int64
	Discount     int64
	Notes        *string
}

// UpdateSpecialPriceReq — частичное обновление персональной цены.
// nil-поля не трогаются.
type UpdateSpecialPriceReq struct {
	SpecialPrice *int64
	Discount     *int64
	IsActive     *bool
	Notes        *string
}

// SpecialPricePatch — набор изменяемых полей для репозитория.
type SpecialPricePatch struct {
	SpecialPrice *int64
	Discount     *int64
	IsActive     *bool
	Notes        *string
}

// PricingSummaryRes — сводка персональных цен пользователя.
type PricingSummaryRes struct {
	UserID            int64
	HasSpecialPricing bool
	SpecialPrices     []domain.SpecialPrice
}

// PricedProduct — одна строка эффективного прайса: товар каталога,
// декорированный активной персональной ценой пользователя, если она есть.
type PricedProduct struct {
	Product        domain.Product
	EffectivePrice int64
	IsOverridden   bool
	Discount       int64 // вычисляется из цен, 0 для неперекрытых товаров
}

// USER USECASE

type CreateUserReq struct {
	Name  string
	Email string
	Role  string
}

type UpdateUserReq struct {
	Name  *string
	Email *string
	Role  *string
}

// UserPatch — набор изменяемых полей пользователя для репозитория.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated      OutboxEventType = "product.created"
	ProductUpdated      OutboxEventType = "product.updated"
	ProductArchived     OutboxEventType = "product.archived"
	SpecialPriceCreated OutboxEventType = "special_price.created"
	SpecialPriceUpdated OutboxEventType = "special_price.updated"
	SpecialPriceDeleted OutboxEventType = "special_price.deleted"
)

// OutboxEvent — событие изменения, записываемое в одной транзакции с
// самим изменением и публикуемое воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	EntityID    int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	EntityID int64
	Payload  []byte
}

// MAPPERS

func NewSaveProductReq(name, description, category string, price, stock int64,
	brand, sku *string, tags []string) *SaveProductReq {
	return &SaveProductReq{
		Name:         name,
		Description:  description,
		CategoryName: category,
		Price:        price,
		Stock:        stock,
		Brand:        brand,
		SKU:          sku,
		Tags:         tags,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name, description, category string, price, stock int64) ProductInfo {
	return ProductInfo{
		ID:           id,
		Name:         name,
		Description:  description,
		CategoryName: category,
		Price:        price,
		Stock:        stock,
	}
}

func NewPricingSummaryRes(userID int64, specialPrices []domain.SpecialPrice) *PricingSummaryRes {
	return &PricingSummaryRes{
		UserID:            userID,
		HasSpecialPricing: len(specialPrices) > 0,
		SpecialPrices:     specialPrices,
	}
}

func NewWriteRawMessageReq(entityID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		EntityID: entityID,
		Payload:  payload,
	}
}

// NewOutboxEvent формирует событие со свежим UUID и JSON-полезной нагрузкой.
func NewOutboxEvent(eventType OutboxEventType, entityID int64, payload any) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		EntityID:  entityID,
		Payload:   data,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
