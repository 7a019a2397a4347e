package usecase

import (
	"context"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/DRSN-tech/pricing-backend/pkg/money"
)

// PricingProjector строит эффективный прайс: полный каталог одного
// пользователя с подставленными активными персональными ценами.
//
// Представление собирается заново на каждый запрос и нигде не кэшируется,
// поэтому всегда отражает текущую цену товара и текущий набор активных
// персональных цен.
type PricingProjector struct {
	productRepo      ProductRepository
	specialPriceRepo SpecialPriceRepository
	logger           logger.Logger
}

func NewPricingProjector(
	productRepo ProductRepository,
	specialPriceRepo SpecialPriceRepository,
	logger logger.Logger,
) *PricingProjector {
	return &PricingProjector{
		productRepo:      productRepo,
		specialPriceRepo: specialPriceRepo,
		logger:           logger,
	}
}

// GetCatalogForUser возвращает ровно одну строку на каждый товар каталога
// в порядке каталога. Отсутствие персональных цен у пользователя — не
// ошибка, а обычный прайс без скидок.
//
// Каталоги небольшие, поэтому соединение делается честным map-join в
// памяти: один проход по активным ценам, один по товарам.
func (p *PricingProjector) GetCatalogForUser(ctx context.Context, userID int64) ([]PricedProduct, error) {
	const op = "PricingProjector.GetCatalogForUser"

	products, err := p.productRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	overrides, err := p.specialPriceRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Активных цен не больше одной на товар — гарантируется уникальным
	// индексом (user_id, product_id).
	overrideByProduct := make(map[int64]domain.SpecialPrice, len(overrides))
	for _, override := range overrides {
		overrideByProduct[override.ProductID] = override
	}

	result := make([]PricedProduct, 0, len(products))
	for _, product := range products {
		entry := PricedProduct{
			Product:        product,
			EffectivePrice: product.Price,
		}

		if override, ok := overrideByProduct[product.ID]; ok {
			entry.EffectivePrice = override.SpecialPrice
			entry.IsOverridden = true
			entry.Discount = money.DiscountFromPrices(product.Price, override.SpecialPrice)
		}

		result = append(result, entry)
	}

	return result, nil
}
