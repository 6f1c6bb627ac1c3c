package application

import (
	"context"
	"errors"

	"github.com/zano-pay/zanopayd/internal/config"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

// addressRetries bounds the attempts at drawing a fresh integrated
// address when the daemon hands back a (address, payment id) pair that is
// already bound to an outstanding prompt.
const addressRetries = 3

// PaymentService exposes the operations the host invoice system calls
// into: issuing deposit addresses, managing prompts, querying status and
// the non-production cheat-mode shortcuts.
type PaymentService struct {
	pool    *WalletPool
	prompts domain.PromptRepository
	chain   string
}

// NewPaymentService ...
func NewPaymentService(
	pool *WalletPool, prompts domain.PromptRepository, chain string,
) *PaymentService {
	return &PaymentService{pool: pool, prompts: prompts, chain: chain}
}

// NewDepositAddress asks the network's wallet for a fresh integrated
// address and registers a prompt expecting exactly expectedAmount atomic
// units on it. No two outstanding prompts ever share an (address, payment
// id) pair on the same network.
func (s *PaymentService) NewDepositAddress(
	ctx context.Context,
	network string, accountIndex uint32, expectedAmount uint64,
) (*domain.PaymentPrompt, error) {
	session, err := s.pool.Session(network)
	if err != nil {
		return nil, err
	}

	for i := 0; i < addressRetries; i++ {
		address, err := session.NewIntegratedAddress(ctx)
		if err != nil {
			return nil, err
		}
		prompt, err := domain.NewPaymentPrompt(
			network, address.IntegratedAddress, address.PaymentID,
			accountIndex, expectedAmount,
		)
		if err != nil {
			return nil, err
		}
		if err := s.prompts.AddPrompt(ctx, *prompt); err != nil {
			if errors.Is(err, domain.ErrPromptAlreadyExists) {
				continue
			}
			return nil, err
		}
		return prompt, nil
	}
	return nil, domain.ErrPromptAlreadyExists
}

// CancelPrompt removes a prompt once its invoice is finalized or expired.
func (s *PaymentService) CancelPrompt(
	ctx context.Context, network, address, paymentID string,
) error {
	return s.prompts.DeletePrompt(ctx, network, address, paymentID)
}

// ListPrompts returns the outstanding prompts of a network.
func (s *PaymentService) ListPrompts(
	ctx context.Context, network string,
) ([]domain.PaymentPrompt, error) {
	return s.prompts.ListPrompts(ctx, network)
}

// NetworkStatus is one entry of the daemon's status report.
type NetworkStatus struct {
	Network string               `json:"network"`
	State   string               `json:"state"`
	Summary domain.WalletSummary `json:"summary"`
}

// Status reports the session state and last summary of every configured
// network. Served from the last known good snapshots, it never blocks on
// the daemons.
func (s *PaymentService) Status() []NetworkStatus {
	networks := s.pool.Networks()
	statuses := make([]NetworkStatus, 0, len(networks))
	for _, network := range networks {
		session, err := s.pool.Session(network)
		if err != nil {
			continue
		}
		statuses = append(statuses, NetworkStatus{
			Network: network,
			State:   session.State().String(),
			Summary: session.Summary(),
		})
	}
	return statuses
}

// Send submits a transfer from the network's primary wallet.
func (s *PaymentService) Send(
	ctx context.Context,
	network string, destinations []zanorpc.TransferDestination,
) (string, error) {
	session, err := s.pool.Session(network)
	if err != nil {
		return "", err
	}
	return session.Send(ctx, destinations)
}

// CheatPay pays an invoice address from the cash-cow wallet. Refused on
// mainnet.
func (s *PaymentService) CheatPay(
	ctx context.Context, network, address string, amount uint64,
) (string, error) {
	if s.chain == config.ChainMainnet {
		return "", ErrCheatModeDisabled
	}
	session, err := s.pool.Session(network)
	if err != nil {
		return "", err
	}
	return session.CashCowSend(ctx, []zanorpc.TransferDestination{
		{Address: address, Amount: amount},
	})
}

// CheatMine mines blocks to the given address to advance confirmations.
// Refused on mainnet.
func (s *PaymentService) CheatMine(
	ctx context.Context, network, address string, blocks int,
) error {
	if s.chain == config.ChainMainnet {
		return ErrCheatModeDisabled
	}
	session, err := s.pool.Session(network)
	if err != nil {
		return err
	}
	return session.GenerateBlocks(ctx, address, blocks)
}
