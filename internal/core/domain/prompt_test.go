package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zano-pay/zanopayd/internal/core/domain"
)

func TestNewPaymentPrompt(t *testing.T) {
	prompt, err := domain.NewPaymentPrompt(
		"ZANO", "iZxDeposit", "feedfacefeedface", 2, 500000000000,
	)
	require.NoError(t, err)
	require.Equal(t, "ZANO", prompt.Network)
	require.Equal(t, uint32(2), prompt.AccountIndex)
	require.Equal(t, uint64(500000000000), prompt.ExpectedAmount)
	require.False(t, prompt.CreatedAt.IsZero())
	require.Equal(t, "ZANO:iZxDeposit:feedfacefeedface", prompt.Key())
}

func TestNewPaymentPromptValidation(t *testing.T) {
	tests := []struct {
		name      string
		network   string
		address   string
		paymentID string
		amount    uint64
	}{
		{"missing network", "", "iZxDeposit", "feedfacefeedface", 10},
		{"missing address", "ZANO", "", "feedfacefeedface", 10},
		{"missing payment id", "ZANO", "iZxDeposit", "", 10},
		{"zero amount", "ZANO", "iZxDeposit", "feedfacefeedface", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPaymentPrompt(
				tt.network, tt.address, tt.paymentID, 0, tt.amount,
			)
			require.True(t, errors.Is(err, domain.ErrInvalidPrompt))
		})
	}
}

func TestDetectedTransferMined(t *testing.T) {
	require.False(t, domain.DetectedTransfer{Height: 0}.Mined())
	require.True(t, domain.DetectedTransfer{Height: 1}.Mined())
}

func TestReconciliationStatusString(t *testing.T) {
	require.Equal(t, "Unmatched", domain.Unmatched.String())
	require.Equal(t, "PendingConfirmation", domain.PendingConfirmation.String())
	require.Equal(t, "Confirmed", domain.Confirmed.String())
	require.Equal(t, "AmountMismatch", domain.AmountMismatch.String())
	require.Equal(t, "Orphaned", domain.Orphaned.String())
}
