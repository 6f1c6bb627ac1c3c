package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zano-pay/zanopayd/internal/core/domain"
)

func newPrompt(t *testing.T, network, address, paymentID string) domain.PaymentPrompt {
	t.Helper()
	prompt, err := domain.NewPaymentPrompt(
		network, address, paymentID, 0, 500000000000,
	)
	require.NoError(t, err)
	return *prompt
}

func TestPromptRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPromptRepositoryImpl()
	prompt := newPrompt(t, "ZANO", "iZxDeposit", "feedfacefeedface")

	require.NoError(t, repo.AddPrompt(ctx, prompt))

	found, err := repo.GetPrompt(ctx, "ZANO", "iZxDeposit", "feedfacefeedface")
	require.NoError(t, err)
	require.Equal(t, prompt.ExpectedAmount, found.ExpectedAmount)

	require.NoError(
		t, repo.DeletePrompt(ctx, "ZANO", "iZxDeposit", "feedfacefeedface"),
	)
	_, err = repo.GetPrompt(ctx, "ZANO", "iZxDeposit", "feedfacefeedface")
	require.True(t, errors.Is(err, domain.ErrPromptNotFound))
}

func TestPromptRepositoryRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewPromptRepositoryImpl()
	prompt := newPrompt(t, "ZANO", "iZxDeposit", "feedfacefeedface")

	require.NoError(t, repo.AddPrompt(ctx, prompt))
	err := repo.AddPrompt(ctx, prompt)
	require.True(t, errors.Is(err, domain.ErrPromptAlreadyExists))

	// same address, different payment id is a distinct prompt
	other := newPrompt(t, "ZANO", "iZxDeposit", "0000000000000000")
	require.NoError(t, repo.AddPrompt(ctx, other))
}

func TestPromptRepositoryListsByNetwork(t *testing.T) {
	ctx := context.Background()
	repo := NewPromptRepositoryImpl()

	require.NoError(t, repo.AddPrompt(ctx, newPrompt(t, "ZANO", "iZxA", "aa")))
	require.NoError(t, repo.AddPrompt(ctx, newPrompt(t, "ZANO", "iZxB", "bb")))
	require.NoError(t, repo.AddPrompt(ctx, newPrompt(t, "ZANOTEST", "iZxC", "cc")))

	prompts, err := repo.ListPrompts(ctx, "ZANO")
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	prompts, err = repo.ListPrompts(ctx, "DOGE")
	require.NoError(t, err)
	require.Empty(t, prompts)
}

func TestPromptRepositoryDeleteUnknown(t *testing.T) {
	repo := NewPromptRepositoryImpl()
	err := repo.DeletePrompt(context.Background(), "ZANO", "iZxA", "aa")
	require.True(t, errors.Is(err, domain.ErrPromptNotFound))
}
