package valueobject

import (
	"fmt"
	"math"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// Money хранит сумму в минимальных единицах валюты (центах).
type Money int64

// PlatformFeePercent: комиссия платформы, которую платит нанимающая сторона сверх ставки.
const PlatformFeePercent = 15

// MoneyFromFloat переводит сумму из API (доллары с копейками) в центы.
func MoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperror.New(apperror.ErrCodeValidation, "некорректная сумма")
	}
	if v < 0 {
		return 0, apperror.New(apperror.ErrCodeValidation, "сумма не может быть отрицательной")
	}
	return Money(math.Round(v * 100)), nil
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// PlatformFee считает комиссию с округлением половины цента вверх.
func PlatformFee(amount Money) Money {
	return Money((int64(amount)*PlatformFeePercent + 50) / 100)
}

// FeeBreakdown показывается клиенту перед оплатой.
type FeeBreakdown struct {
	Amount Money
	Fee    Money
	Total  Money
}

// NewFeeBreakdown: исполнитель получает Amount, клиент платит Total.
func NewFeeBreakdown(amount Money) FeeBreakdown {
	fee := PlatformFee(amount)
	return FeeBreakdown{
		Amount: amount,
		Fee:    fee,
		Total:  amount + fee,
	}
}
