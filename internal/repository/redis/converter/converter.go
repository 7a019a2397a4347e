package converter

import (
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
)

// ProductInfoConverter преобразует информацию о товаре между usecase и моделью Redis.
type ProductInfoConverter interface {
	ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel
	ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo
	ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel
	ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo
}

type ProductInfoConverterImpl struct{}

func NewProductInfoConverterImpl() *ProductInfoConverterImpl { return &ProductInfoConverterImpl{} }

func (c *ProductInfoConverterImpl) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	return &ProductInfoRedisModel{
		ID:           entity.ID,
		Name:         entity.Name,
		Description:  entity.Description,
		CategoryName: entity.CategoryName,
		Price:        entity.Price,
		Stock:        entity.Stock,
	}
}

func (c *ProductInfoConverterImpl) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	return &usecase.ProductInfo{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		CategoryName: model.CategoryName,
		Price:        model.Price,
		Stock:        model.Stock,
	}
}

func (c *ProductInfoConverterImpl) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	result := make([]ProductInfoRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}
	return result
}

func (c *ProductInfoConverterImpl) ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo {
	result := make([]usecase.ProductInfo, 0, len(models))
	for i := range models {
		result = append(result, *c.ToUseCase(&models[i]))
	}
	return result
}
