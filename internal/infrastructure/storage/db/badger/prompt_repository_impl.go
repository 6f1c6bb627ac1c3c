package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"github.com/zano-pay/zanopayd/internal/core/domain"
)

type promptRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPromptRepositoryImpl returns a badger-backed implementation of the
// domain.PromptRepository so that outstanding prompts survive a daemon
// restart.
func NewPromptRepositoryImpl(store *badgerhold.Store) domain.PromptRepository {
	return promptRepositoryImpl{store}
}

// OpenStore opens the badgerhold store under dir with logging disabled.
func OpenStore(dir string) (*badgerhold.Store, error) {
	opts := badgerhold.DefaultOptions
	opts.Options = badger.DefaultOptions(dir).WithLogger(nil)
	return badgerhold.Open(opts)
}

func (r promptRepositoryImpl) AddPrompt(
	_ context.Context, prompt domain.PaymentPrompt,
) error {
	err := r.store.Insert(prompt.Key(), &prompt)
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return domain.ErrPromptAlreadyExists
	}
	return err
}

func (r promptRepositoryImpl) GetPrompt(
	_ context.Context, network, address, paymentID string,
) (*domain.PaymentPrompt, error) {
	var prompt domain.PaymentPrompt
	err := r.store.Get(domain.PromptKey(network, address, paymentID), &prompt)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, domain.ErrPromptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r promptRepositoryImpl) ListPrompts(
	_ context.Context, network string,
) ([]domain.PaymentPrompt, error) {
	var prompts []domain.PaymentPrompt
	query := badgerhold.Where("Network").Eq(network)
	if err := r.store.Find(&prompts, query); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r promptRepositoryImpl) DeletePrompt(
	_ context.Context, network, address, paymentID string,
) error {
	err := r.store.Delete(
		domain.PromptKey(network, address, paymentID), domain.PaymentPrompt{},
	)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return domain.ErrPromptNotFound
	}
	return err
}
