// Package money содержит денежную арифметику сервиса.
// Цены хранятся в копейках (int64); decimal используется для всех
// промежуточных вычислений, чтобы исключить погрешности float.
package money

import (
	"strings"

	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// Верхний предел цены: 1 миллиард (в единицах валюты, не в копейках).
	maxPrice = decimal.NewFromInt(1_000_000_000)
)

// ParseToCents конвертирует строку вида "599.99" или "600" в int64 копеек.
// Возвращает ошибку, если:
// - некорректный формат
// - больше 2 знаков после запятой
// - отрицательное значение
// - превышен разумный предел (10^9)
func ParseToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	cents := d.Mul(hundred).Round(0)

	return cents.IntPart(), nil
}

// FormatCents форматирует копейки в строку с двумя знаками после запятой ("90.00").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}

// DiscountFromPrices вычисляет целочисленный процент скидки:
// round(((original − special) / original) × 100).
// Возвращает 0, если original ≤ 0 — деления на ноль и отрицательных
// результатов не бывает.
func DiscountFromPrices(originalCents, specialCents int64) int64 {
	if originalCents <= 0 {
		return 0
	}

	original := decimal.NewFromInt(originalCents)
	special := decimal.NewFromInt(specialCents)

	return original.Sub(special).Div(original).Mul(hundred).Round(0).IntPart()
}

// PriceFromDiscount вычисляет цену по скидке: original × (1 − discount/100),
// округлённую до копейки.
// Формулы DiscountFromPrices и PriceFromDiscount намеренно не являются
// точными обратными: первая округляет до целого процента, вторая до копейки.
func PriceFromDiscount(originalCents, discountPercent int64) int64 {
	original := decimal.NewFromInt(originalCents)
	discount := decimal.NewFromInt(discountPercent)

	return original.Mul(hundred.Sub(discount)).Div(hundred).Round(0).IntPart()
}
