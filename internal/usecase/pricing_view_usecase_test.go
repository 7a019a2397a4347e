package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjector(products *fakeProductRepo, prices *fakeSpecialPriceRepo) *PricingProjector {
	return NewPricingProjector(products, prices, testLogger())
}

func TestGetCatalogForUser(t *testing.T) {
	t.Run("каждый товар ровно один раз, порядок каталога сохраняется", func(t *testing.T) {
		products := (&fakeProductRepo{}).
			add(domain.Product{ID: 3, Name: "Keyboard", Price: 5000}).
			add(domain.Product{ID: 1, Name: "Laptop", Price: 100000}).
			add(domain.Product{ID: 2, Name: "Mouse", Price: 2500})
		prices := (&fakeSpecialPriceRepo{}).
			add(domain.SpecialPrice{ID: 1, UserID: 7, ProductID: 1, SpecialPrice: 90000, IsActive: true})

		view, err := newProjector(products, prices).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, view, 3)
		assert.Equal(t, []int64{3, 1, 2}, []int64{view[0].Product.ID, view[1].Product.ID, view[2].Product.ID})
	})

	t.Run("эффективная цена берётся из активной персональной цены", func(t *testing.T) {
		products := (&fakeProductRepo{}).
			add(domain.Product{ID: 1, Name: "Laptop", Price: 10000}).
			add(domain.Product{ID: 2, Name: "Mouse", Price: 2500})
		prices := (&fakeSpecialPriceRepo{}).
			add(domain.SpecialPrice{ID: 1, UserID: 7, ProductID: 1, SpecialPrice: 9000, IsActive: true})

		view, err := newProjector(products, prices).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, view, 2)

		assert.True(t, view[0].IsOverridden)
		assert.Equal(t, int64(9000), view[0].EffectivePrice)
		assert.Equal(t, int64(10), view[0].Discount)

		assert.False(t, view[1].IsOverridden)
		assert.Equal(t, int64(2500), view[1].EffectivePrice)
		assert.Zero(t, view[1].Discount)
	})

	t.Run("неактивные цены не участвуют", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(domain.Product{ID: 1, Name: "Laptop", Price: 10000})
		prices := (&fakeSpecialPriceRepo{}).
			add(domain.SpecialPrice{ID: 1, UserID: 7, ProductID: 1, SpecialPrice: 9000, IsActive: false})

		view, err := newProjector(products, prices).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, view, 1)
		assert.False(t, view[0].IsOverridden)
		assert.Equal(t, int64(10000), view[0].EffectivePrice)
	})

	t.Run("чужие персональные цены не просачиваются", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(domain.Product{ID: 1, Name: "Laptop", Price: 10000})
		prices := (&fakeSpecialPriceRepo{}).
			add(domain.SpecialPrice{ID: 1, UserID: 8, ProductID: 1, SpecialPrice: 9000, IsActive: true})

		view, err := newProjector(products, prices).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		assert.False(t, view[0].IsOverridden)
	})

	t.Run("пользователь без персональных цен получает обычный прайс", func(t *testing.T) {
		products := (&fakeProductRepo{}).
			add(domain.Product{ID: 1, Name: "Laptop", Price: 10000}).
			add(domain.Product{ID: 2, Name: "Mouse", Price: 2500})

		view, err := newProjector(products, &fakeSpecialPriceRepo{}).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, view, 2)
		for _, entry := range view {
			assert.False(t, entry.IsOverridden)
			assert.Equal(t, entry.Product.Price, entry.EffectivePrice)
		}
	})

	t.Run("пустой каталог даёт пустое представление", func(t *testing.T) {
		view, err := newProjector(&fakeProductRepo{}, &fakeSpecialPriceRepo{}).GetCatalogForUser(context.Background(), 7)

		require.NoError(t, err)
		assert.Empty(t, view)
	})
}
