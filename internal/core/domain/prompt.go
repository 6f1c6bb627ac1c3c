package domain

import (
	"context"
	"fmt"
	"time"
)

// PaymentPrompt is an outstanding request for payment issued by the host
// invoice system. The (Network, Address, PaymentID) triple is unique for the
// lifetime of the prompt so that an incoming transfer can be matched
// unambiguously. Prompts are immutable once issued.
type PaymentPrompt struct {
	Network        string
	Address        string
	PaymentID      string
	AccountIndex   uint32
	ExpectedAmount uint64
	CreatedAt      time.Time
}

// NewPaymentPrompt returns a new prompt for the given integrated address and
// payment id, expecting exactly expectedAmount atomic units.
func NewPaymentPrompt(
	network, address, paymentID string,
	accountIndex uint32, expectedAmount uint64,
) (*PaymentPrompt, error) {
	if network == "" || address == "" || paymentID == "" || expectedAmount == 0 {
		return nil, ErrInvalidPrompt
	}
	return &PaymentPrompt{
		Network:        network,
		Address:        address,
		PaymentID:      paymentID,
		AccountIndex:   accountIndex,
		ExpectedAmount: expectedAmount,
		CreatedAt:      time.Now(),
	}, nil
}

// Key returns the unique storage key of the prompt.
func (p *PaymentPrompt) Key() string {
	return PromptKey(p.Network, p.Address, p.PaymentID)
}

// PromptKey builds the storage key for a (network, address, payment id)
// triple.
func PromptKey(network, address, paymentID string) string {
	return fmt.Sprintf("%s:%s:%s", network, address, paymentID)
}

// PromptRepository is the registry of outstanding payment prompts.
type PromptRepository interface {
	// AddPrompt registers a prompt, failing with ErrPromptAlreadyExists if
	// another prompt with the same (network, address, payment id) is
	// outstanding.
	AddPrompt(ctx context.Context, prompt PaymentPrompt) error
	// GetPrompt returns the prompt for the triple, or ErrPromptNotFound.
	GetPrompt(ctx context.Context, network, address, paymentID string) (*PaymentPrompt, error)
	// ListPrompts returns all outstanding prompts for a network.
	ListPrompts(ctx context.Context, network string) ([]PaymentPrompt, error)
	// DeletePrompt removes a finalized or expired prompt.
	DeletePrompt(ctx context.Context, network, address, paymentID string) error
}
