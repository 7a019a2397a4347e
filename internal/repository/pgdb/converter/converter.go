package converter

import (
	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter interface {
	ToModel(entity *domain.User) *UserModel
	ToEntity(model *UserModel) *domain.User
	ToArrEntity(models []UserModel) []domain.User
}

// SpecialPriceConverter преобразует сущности SpecialPrice между domain и моделью PostgreSQL.
type SpecialPriceConverter interface {
	ToModel(entity *domain.SpecialPrice) *SpecialPriceModel
	ToEntity(model *SpecialPriceModel) *domain.SpecialPrice
	ToArrEntity(models []SpecialPriceModel) []domain.SpecialPrice
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl { return &ProductConverterImpl{} }

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		CategoryID:  entity.CategoryID,
		Stock:       entity.Stock,
		Brand:       entity.Brand,
		SKU:         entity.SKU,
		Tags:        entity.Tags,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
		IsArchived:  entity.IsArchived,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		CategoryID:  model.CategoryID,
		Stock:       model.Stock,
		Brand:       model.Brand,
		SKU:         model.SKU,
		Tags:        model.Tags,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		IsArchived:  model.IsArchived,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

type CategoryConverterImpl struct{}

func NewCategoryConverterImpl() *CategoryConverterImpl { return &CategoryConverterImpl{} }

func (c *CategoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:         entity.ID,
		Name:       entity.Name,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
		IsArchived: entity.IsArchived,
	}
}

func (c *CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:         model.ID,
		Name:       model.Name,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		IsArchived: model.IsArchived,
	}
}

type UserConverterImpl struct{}

func NewUserConverterImpl() *UserConverterImpl { return &UserConverterImpl{} }

func (c *UserConverterImpl) ToModel(entity *domain.User) *UserModel {
	return &UserModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Email:     entity.Email,
		Role:      entity.Role,
		CreatedAt: entity.CreatedAt,
		IsDeleted: entity.IsDeleted,
	}
}

func (c *UserConverterImpl) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		IsDeleted: model.IsDeleted,
	}
}

func (c *UserConverterImpl) ToArrEntity(models []UserModel) []domain.User {
	result := make([]domain.User, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

type SpecialPriceConverterImpl struct{}

func NewSpecialPriceConverterImpl() *SpecialPriceConverterImpl { return &SpecialPriceConverterImpl{} }

func (c *SpecialPriceConverterImpl) ToModel(entity *domain.SpecialPrice) *SpecialPriceModel {
	return &SpecialPriceModel{
		ID:           entity.ID,
		UserID:       entity.UserID,
		UserName:     entity.UserName,
		UserEmail:    entity.UserEmail,
		ProductID:    entity.ProductID,
		ProductName:  entity.ProductName,
		SpecialPrice: entity.SpecialPrice,
		Discount:     entity.Discount,
		IsActive:     entity.IsActive,
		Notes:        entity.Notes,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (c *SpecialPriceConverterImpl) ToEntity(model *SpecialPriceModel) *domain.SpecialPrice {
	return &domain.SpecialPrice{
		ID:           model.ID,
		UserID:       model.UserID,
		UserName:     model.UserName,
		UserEmail:    model.UserEmail,
		ProductID:    model.ProductID,
		ProductName:  model.ProductName,
		SpecialPrice: model.SpecialPrice,
		Discount:     model.Discount,
		IsActive:     model.IsActive,
		Notes:        model.Notes,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (c *SpecialPriceConverterImpl) ToArrEntity(models []SpecialPriceModel) []domain.SpecialPrice {
	result := make([]domain.SpecialPrice, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		EntityID:    entity.EntityID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		EntityID:    model.EntityID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}
	return result
}
