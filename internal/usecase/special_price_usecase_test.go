package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(products *fakeProductRepo, prices *fakeSpecialPriceRepo, outbox *fakeOutboxRepo) *PricingEngine {
	return NewPricingEngine(prices, products, outbox, &fakeDB{}, testLogger())
}

func validCreateReq() *CreateSpecialPriceReq {
	return &CreateSpecialPriceReq{
		UserID:       1,
		UserName:     "Ivan Petrov",
		UserEmail:    "ivan@example.com",
		ProductID:    1,
		ProductName:  "Laptop",
		SpecialPrice: 9000,
		Discount:     10,
	}
}

func laptop() domain.Product {
	return domain.Product{ID: 1, Name: "Laptop", Price: 10000, CategoryID: 1}
}

func TestCreateSpecialPrice(t *testing.T) {
	t.Run("успешное создание активной цены", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		outbox := &fakeOutboxRepo{}
		engine := newEngine(products, prices, outbox)

		created, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())

		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.Equal(t, int64(9000), created.SpecialPrice)
		assert.Equal(t, "Ivan Petrov", created.UserName)
		assert.NotZero(t, created.ID)

		require.Len(t, outbox.events, 1)
		assert.Equal(t, SpecialPriceCreated, outbox.events[0].EventType)
	})

	t.Run("валидация собирает все нарушения разом", func(t *testing.T) {
		engine := newEngine(&fakeProductRepo{}, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		_, err := engine.CreateSpecialPrice(context.Background(), &CreateSpecialPriceReq{
			UserEmail:    "not-an-email",
			SpecialPrice: -5,
			Discount:     150,
		})

		require.ErrorIs(t, err, e.ErrValidationFailed)

		var vErr *e.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Violations, 7)
	})

	t.Run("отсутствующий товар проверяется раньше дубликата", func(t *testing.T) {
		// Дубликат для пары существует, но товара нет: приоритет у ProductNotFound.
		prices := (&fakeSpecialPriceRepo{}).add(domain.SpecialPrice{
			ID: 1, UserID: 1, ProductID: 1, SpecialPrice: 8000, IsActive: true,
		})
		engine := newEngine(&fakeProductRepo{}, prices, &fakeOutboxRepo{})

		_, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())

		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("повторное создание для пары отклоняется", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		engine := newEngine(products, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		_, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		// Другие поля не влияют: пара (user, product) уже занята.
		second := validCreateReq()
		second.SpecialPrice = 5000
		second.Discount = 50
		_, err = engine.CreateSpecialPrice(context.Background(), second)

		assert.ErrorIs(t, err, e.ErrSpecialPriceExists)
	})

	t.Run("цена не ниже текущей цены товара отклоняется", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		engine := newEngine(products, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		for _, price := range []int64{10000, 15000} {
			req := validCreateReq()
			req.SpecialPrice = price
			_, err := engine.CreateSpecialPrice(context.Background(), req)
			assert.ErrorIs(t, err, e.ErrPriceNotBelowOriginal, "special=%d", price)
		}
	})

	t.Run("гонка на вставке переводится в ту же ошибку дубликата", func(t *testing.T) {
		// Пре-чек пары не атомарен со вставкой: фейк воспроизводит отказ
		// уникального индекса на самой вставке.
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		engine := newEngine(products, prices, &fakeOutboxRepo{})

		_, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		_, err = prices.Create(context.Background(), domain.NewSpecialPrice(
			1, "Ivan Petrov", "ivan@example.com", 1, "Laptop", 8500, 15, nil,
		))
		assert.ErrorIs(t, err, e.ErrSpecialPriceExists)
	})
}

func TestUpdateSpecialPrice(t *testing.T) {
	t.Run("сценарий: повышение выше цены товара отклоняется, запись не меняется", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		engine := newEngine(products, prices, &fakeOutboxRepo{})

		created, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		newPrice := int64(15000)
		_, err = engine.UpdateSpecialPrice(context.Background(), created.ID, &UpdateSpecialPriceReq{
			SpecialPrice: &newPrice,
		})
		require.ErrorIs(t, err, e.ErrPriceNotBelowOriginal)

		unchanged, err := prices.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9000), unchanged.SpecialPrice)
		assert.Nil(t, unchanged.UpdatedAt)
	})

	t.Run("частичное обновление не трогает отсутствующие поля", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		outbox := &fakeOutboxRepo{}
		engine := newEngine(products, prices, outbox)

		created, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		notes := "seasonal deal"
		updated, err := engine.UpdateSpecialPrice(context.Background(), created.ID, &UpdateSpecialPriceReq{
			Notes: &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(9000), updated.SpecialPrice)
		assert.Equal(t, int64(10), updated.Discount)
		assert.True(t, updated.IsActive)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, notes, *updated.Notes)
		assert.NotNil(t, updated.UpdatedAt)

		require.Len(t, outbox.events, 2)
		assert.Equal(t, SpecialPriceUpdated, outbox.events[1].EventType)
	})

	t.Run("сравнение идёт с текущей ценой товара, а не с ценой на момент создания", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		engine := newEngine(products, prices, &fakeOutboxRepo{})

		created, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		// Товар подешевел до 85.00: прежняя спеццена 90.00 больше не проходит.
		products.products[0].Price = 8500

		samePrice := int64(9000)
		_, err = engine.UpdateSpecialPrice(context.Background(), created.ID, &UpdateSpecialPriceReq{
			SpecialPrice: &samePrice,
		})
		assert.ErrorIs(t, err, e.ErrPriceNotBelowOriginal)
	})

	t.Run("несуществующий id", func(t *testing.T) {
		engine := newEngine(&fakeProductRepo{}, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		active := false
		_, err := engine.UpdateSpecialPrice(context.Background(), 42, &UpdateSpecialPriceReq{
			IsActive: &active,
		})
		assert.ErrorIs(t, err, e.ErrSpecialPriceNotFound)
	})

	t.Run("пустой запрос и выход за диапазоны отклоняются", func(t *testing.T) {
		engine := newEngine(&fakeProductRepo{}, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		_, err := engine.UpdateSpecialPrice(context.Background(), 1, &UpdateSpecialPriceReq{})
		assert.ErrorIs(t, err, e.ErrValidationFailed)

		badDiscount := int64(101)
		_, err = engine.UpdateSpecialPrice(context.Background(), 1, &UpdateSpecialPriceReq{
			Discount: &badDiscount,
		})
		assert.ErrorIs(t, err, e.ErrValidationFailed)
	})
}

func TestDeleteSpecialPrice(t *testing.T) {
	t.Run("удаление безвозвратно", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := &fakeSpecialPriceRepo{}
		outbox := &fakeOutboxRepo{}
		engine := newEngine(products, prices, outbox)

		created, err := engine.CreateSpecialPrice(context.Background(), validCreateReq())
		require.NoError(t, err)

		require.NoError(t, engine.DeleteSpecialPrice(context.Background(), created.ID))

		gone, err := prices.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		require.Len(t, outbox.events, 2)
		assert.Equal(t, SpecialPriceDeleted, outbox.events[1].EventType)
	})

	t.Run("несуществующий id, хранилища не меняются", func(t *testing.T) {
		products := (&fakeProductRepo{}).add(laptop())
		prices := (&fakeSpecialPriceRepo{}).add(domain.SpecialPrice{
			ID: 1, UserID: 1, ProductID: 1, SpecialPrice: 9000, IsActive: true,
		})
		outbox := &fakeOutboxRepo{}
		engine := newEngine(products, prices, outbox)

		err := engine.DeleteSpecialPrice(context.Background(), 999)

		assert.ErrorIs(t, err, e.ErrSpecialPriceNotFound)
		assert.Len(t, prices.prices, 1)
		assert.Len(t, products.products, 1)
		assert.Empty(t, outbox.events)
	})
}

func TestGetSpecialPriceForUserAndProduct(t *testing.T) {
	t.Run("отсутствие записи это не ошибка", func(t *testing.T) {
		engine := newEngine(&fakeProductRepo{}, &fakeSpecialPriceRepo{}, &fakeOutboxRepo{})

		sp, err := engine.GetSpecialPriceForUserAndProduct(context.Background(), 1, 1)

		require.NoError(t, err)
		assert.Nil(t, sp)
	})

	t.Run("существующая запись возвращается", func(t *testing.T) {
		prices := (&fakeSpecialPriceRepo{}).add(domain.SpecialPrice{
			ID: 7, UserID: 1, ProductID: 2, SpecialPrice: 4500, IsActive: true,
		})
		engine := newEngine(&fakeProductRepo{}, prices, &fakeOutboxRepo{})

		sp, err := engine.GetSpecialPriceForUserAndProduct(context.Background(), 1, 2)

		require.NoError(t, err)
		require.NotNil(t, sp)
		assert.Equal(t, int64(7), sp.ID)
	})
}

func TestGetUserPricingSummary(t *testing.T) {
	t.Run("без активных цен", func(t *testing.T) {
		prices := (&fakeSpecialPriceRepo{}).add(domain.SpecialPrice{
			ID: 1, UserID: 1, ProductID: 1, SpecialPrice: 9000, IsActive: false,
		})
		engine := newEngine(&fakeProductRepo{}, prices, &fakeOutboxRepo{})

		summary, err := engine.GetUserPricingSummary(context.Background(), 1)

		require.NoError(t, err)
		assert.False(t, summary.HasSpecialPricing)
		assert.Empty(t, summary.SpecialPrices)
	})

	t.Run("только активные цены попадают в сводку", func(t *testing.T) {
		prices := (&fakeSpecialPriceRepo{}).
			add(domain.SpecialPrice{ID: 1, UserID: 1, ProductID: 1, SpecialPrice: 9000, IsActive: true}).
			add(domain.SpecialPrice{ID: 2, UserID: 1, ProductID: 2, SpecialPrice: 4000, IsActive: false}).
			add(domain.SpecialPrice{ID: 3, UserID: 2, ProductID: 1, SpecialPrice: 8000, IsActive: true})
		engine := newEngine(&fakeProductRepo{}, prices, &fakeOutboxRepo{})

		summary, err := engine.GetUserPricingSummary(context.Background(), 1)

		require.NoError(t, err)
		assert.True(t, summary.HasSpecialPricing)
		require.Len(t, summary.SpecialPrices, 1)
		assert.Equal(t, int64(1), summary.SpecialPrices[0].ID)
	})
}

func TestGetSpecialPricesForUser(t *testing.T) {
	prices := (&fakeSpecialPriceRepo{}).
		add(domain.SpecialPrice{ID: 1, UserID: 1, ProductID: 1, IsActive: true}).
		add(domain.SpecialPrice{ID: 2, UserID: 1, ProductID: 2, IsActive: false})
	engine := newEngine(&fakeProductRepo{}, prices, &fakeOutboxRepo{})

	all, err := engine.GetSpecialPricesForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := engine.GetActiveSpecialPricesForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)
}
