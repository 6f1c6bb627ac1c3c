package inmemory

import (
	"context"
	"sync"

	"github.com/zano-pay/zanopayd/internal/core/domain"
)

type promptRepositoryImpl struct {
	mutex   *sync.RWMutex
	prompts map[string]domain.PaymentPrompt
}

// NewPromptRepositoryImpl returns an in-memory implementation of the
// domain.PromptRepository. Outstanding prompts are lost on restart.
func NewPromptRepositoryImpl() domain.PromptRepository {
	return &promptRepositoryImpl{
		mutex:   &sync.RWMutex{},
		prompts: map[string]domain.PaymentPrompt{},
	}
}

func (r *promptRepositoryImpl) AddPrompt(
	_ context.Context, prompt domain.PaymentPrompt,
) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.prompts[prompt.Key()]; ok {
		return domain.ErrPromptAlreadyExists
	}
	r.prompts[prompt.Key()] = prompt
	return nil
}

func (r *promptRepositoryImpl) GetPrompt(
	_ context.Context, network, address, paymentID string,
) (*domain.PaymentPrompt, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prompt, ok := r.prompts[domain.PromptKey(network, address, paymentID)]
	if !ok {
		return nil, domain.ErrPromptNotFound
	}
	return &prompt, nil
}

func (r *promptRepositoryImpl) ListPrompts(
	_ context.Context, network string,
) ([]domain.PaymentPrompt, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prompts := make([]domain.PaymentPrompt, 0)
	for _, prompt := range r.prompts {
		if prompt.Network == network {
			prompts = append(prompts, prompt)
		}
	}
	return prompts, nil
}

func (r *promptRepositoryImpl) DeletePrompt(
	_ context.Context, network, address, paymentID string,
) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := domain.PromptKey(network, address, paymentID)
	if _, ok := r.prompts[key]; !ok {
		return domain.ErrPromptNotFound
	}
	delete(r.prompts, key)
	return nil
}
