// Package pricing содержит чистые функции расчёта цен товара.
// Флаг акции без указанной акционной цены трактуется как отсутствие акции.
package pricing

import (
	"github.com/shopspring/decimal"

	"heladeria/internal/domain"
)

// DisplayPrice цена, которую видит и платит покупатель
func DisplayPrice(p domain.Product) float64 {
	if p.IsOnPromotion && p.PromotionalPrice != nil {
		return *p.PromotionalPrice
	}
	return p.Price
}

// DiscountPercentage процент скидки, округлённый до целого; 0 без акции
func DiscountPercentage(p domain.Product) int {
	if !p.IsOnPromotion || p.PromotionalPrice == nil || p.Price <= 0 {
		return 0
	}
	price := decimal.NewFromFloat(p.Price)
	promo := decimal.NewFromFloat(*p.PromotionalPrice)
	pct := price.Sub(promo).Div(price).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// SavingsAmount экономия покупателя; 0 без акции
func SavingsAmount(p domain.Product) float64 {
	if !p.IsOnPromotion || p.PromotionalPrice == nil {
		return 0
	}
	price := decimal.NewFromFloat(p.Price)
	promo := decimal.NewFromFloat(*p.PromotionalPrice)
	return price.Sub(promo).InexactFloat64()
}

// LineTotal стоимость позиции без округления; накопление идёт в decimal,
// чтобы ошибка округления не накапливалась по позициям
func LineTotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// RoundAmount приводит накопленную сумму к двум знакам для выдачи наружу
func RoundAmount(total decimal.Decimal) float64 {
	return total.Round(2).InexactFloat64()
}
