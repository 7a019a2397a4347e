package money

import (
	"testing"

	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{name: "целое число", input: "600", want: 60000},
		{name: "два знака после запятой", input: "599.99", want: 59999},
		{name: "один знак после запятой", input: "10.5", want: 1050},
		{name: "ноль", input: "0", want: 0},
		{name: "пустая строка", input: "", wantErr: e.ErrInvalidPrice},
		{name: "мусор", input: "abc", wantErr: e.ErrInvalidPrice},
		{name: "отрицательное", input: "-1.00", wantErr: e.ErrInvalidPrice},
		{name: "три знака после запятой", input: "1.999", wantErr: e.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToCents(tt.input)
			if tt.want == 0 && tt.input != "0" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "90.00", FormatCents(9000))
	assert.Equal(t, "599.99", FormatCents(59999))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.00", FormatCents(0))
}

func TestDiscountFromPrices(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		special  int64
		want     int64
	}{
		{name: "100 -> 90 это 10%", original: 10000, special: 9000, want: 10},
		{name: "100 -> 75 это 25%", original: 10000, special: 7500, want: 25},
		{name: "округление вверх", original: 30000, special: 20000, want: 33},
		{name: "цена без скидки", original: 10000, special: 10000, want: 0},
		{name: "скидка 100%", original: 10000, special: 0, want: 100},
		{name: "нулевая исходная цена", original: 0, special: 9000, want: 0},
		{name: "отрицательная исходная цена", original: -100, special: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountFromPrices(tt.original, tt.special))
		})
	}
}

// Скидка всегда остаётся в диапазоне [0, 100], пока special ∈ [0, original].
func TestDiscountFromPricesRange(t *testing.T) {
	const original = 33333
	for special := int64(0); special <= original; special += 1111 {
		d := DiscountFromPrices(original, special)
		assert.GreaterOrEqual(t, d, int64(0))
		assert.LessOrEqual(t, d, int64(100))
	}
}

func TestPriceFromDiscount(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		discount int64
		want     int64
	}{
		{name: "10% от 100", original: 10000, discount: 10, want: 9000},
		{name: "25% от 200", original: 20000, discount: 25, want: 15000},
		{name: "0% не меняет цену", original: 59999, discount: 0, want: 59999},
		{name: "100% обнуляет цену", original: 59999, discount: 100, want: 0},
		{name: "округление до копейки", original: 999, discount: 33, want: 669},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceFromDiscount(tt.original, tt.discount))
		})
	}
}

// Цена, полученная из целого процента скидки, восстанавливается через
// DiscountFromPrices -> PriceFromDiscount с точностью до копейки.
func TestDiscountRoundTrip(t *testing.T) {
	originals := []int64{10000, 25000, 100, 999900}
	for _, original := range originals {
		for discount := int64(0); discount <= 100; discount += 7 {
			special := PriceFromDiscount(original, discount)
			got := PriceFromDiscount(original, DiscountFromPrices(original, special))
			assert.InDelta(t, special, got, 1,
				"original=%d discount=%d", original, discount)
		}
	}
}
