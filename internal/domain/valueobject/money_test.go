package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeeBreakdown_EightyDollarBid(t *testing.T) {
	amount, err := MoneyFromFloat(80)
	require.NoError(t, err)

	b := NewFeeBreakdown(amount)

	assert.Equal(t, Money(8000), b.Amount)
	assert.Equal(t, Money(1200), b.Fee)
	assert.Equal(t, Money(9200), b.Total)
	assert.Equal(t, "92.00", b.Total.String())
}

func TestPlatformFee_RoundsHalfUp(t *testing.T) {
	// 0.10 * 15% = 1.5 цента
	assert.Equal(t, Money(2), PlatformFee(Money(10)))
	assert.Equal(t, Money(0), PlatformFee(Money(3)))
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := MoneyFromFloat(19.99)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), m.Cents())
	assert.InDelta(t, 19.99, m.Float64(), 0.0001)

	_, err = MoneyFromFloat(-1)
	assert.Error(t, err)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-1.50", Money(-150).String())
}
