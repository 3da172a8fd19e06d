package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

func fixedRoll(v float64) RandFunc {
	return func() float64 { return v }
}

func TestNewStrategy_SuccessRates(t *testing.T) {
	tests := []struct {
		method domain.PaymentMethod
		name   string
		roll   float64
		want   bool
	}{
		{domain.MethodCreditCard, "Credit Card", 0.84, true},
		{domain.MethodCreditCard, "Credit Card", 0.86, false},
		{domain.MethodBankTransfer, "Bank Transfer", 0.94, true},
		{domain.MethodBankTransfer, "Bank Transfer", 0.96, false},
		{domain.MethodDigitalWallet, "Digital Wallet", 0.89, true},
		{domain.MethodDigitalWallet, "Digital Wallet", 0.91, false},
		{domain.MethodCash, "Cash", 0.999, true},
		{domain.MethodCash, "Cash", 0.0, true},
	}

	for _, tt := range tests {
		s, err := NewStrategy(tt.method, fixedRoll(tt.roll))
		require.NoError(t, err)
		assert.Equal(t, tt.name, s.Name())
		assert.Equal(t, tt.want, s.Execute(100.0), "%s with roll %.2f", tt.method, tt.roll)
	}
}

func TestNewStrategy_UnsupportedMethod(t *testing.T) {
	_, err := NewStrategy(domain.PaymentMethod("barter"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestNewStrategy_NilRollDefaultsToRand(t *testing.T) {
	s, err := NewStrategy(domain.MethodCash, nil)
	require.NoError(t, err)
	assert.True(t, s.Execute(50.0))
}

func TestPaymentContext_NoStrategySelected(t *testing.T) {
	pctx := NewPaymentContext()

	_, err := pctx.Execute(100.0)
	assert.ErrorIs(t, err, ErrNoStrategySelected)
	assert.Equal(t, "Unknown", pctx.StrategyName())
}

func TestPaymentContext_ExecutesSelectedStrategy(t *testing.T) {
	pctx := NewPaymentContext()
	s, err := NewStrategy(domain.MethodCash, nil)
	require.NoError(t, err)
	pctx.SetStrategy(s)

	ok, err := pctx.Execute(100.0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Cash", pctx.StrategyName())
}

func TestPaymentContext_StrategyCanBeSwapped(t *testing.T) {
	pctx := NewPaymentContext()

	failing, err := NewStrategy(domain.MethodCreditCard, fixedRoll(0.99))
	require.NoError(t, err)
	pctx.SetStrategy(failing)
	ok, err := pctx.Execute(100.0)
	require.NoError(t, err)
	assert.False(t, ok)

	succeeding, err := NewStrategy(domain.MethodBankTransfer, fixedRoll(0.1))
	require.NoError(t, err)
	pctx.SetStrategy(succeeding)
	ok, err = pctx.Execute(100.0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Bank Transfer", pctx.StrategyName())
}
