package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/pkg/poller"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

const observeTimeout = 30 * time.Second

// transferObservable polls one network's wallet session for new incoming
// transfers. The cursor advances only after a cycle completes without a
// transport failure, and always stays depth blocks behind the highest
// observed height so that a still-confirming transfer keeps being
// re-observed until it settles.
type transferObservable struct {
	session *WalletSession
	depth   uint64

	mutex       sync.Mutex
	sinceHeight uint64
}

func newTransferObservable(session *WalletSession, depth uint64) *transferObservable {
	return &transferObservable{session: session, depth: depth}
}

func (o *transferObservable) Key() string {
	return "transfers:" + o.session.Network().CryptoCode
}

func (o *transferObservable) Observe(errChan chan error, eventChan chan poller.Event) {
	switch o.session.State() {
	case domain.SessionDegraded, domain.SessionClosed:
		// skip the cycle silently, the session recovers on its own
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), observeTimeout)
	defer cancel()

	network := o.session.Network().CryptoCode

	o.mutex.Lock()
	sinceHeight := o.sinceHeight
	o.mutex.Unlock()

	transfers, err := o.session.IncomingTransfers(ctx, 0, sinceHeight)
	if err != nil {
		if !errors.Is(err, ErrSessionDegraded) {
			errChan <- err
		}
		return
	}

	var maxHeight uint64
	for _, t := range transfers {
		eventChan <- poller.TransferEvent{
			Network:  network,
			Transfer: detectedTransfer(network, t),
		}
		if t.Height > maxHeight {
			maxHeight = t.Height
		}
	}

	if maxHeight > o.depth {
		o.mutex.Lock()
		if cursor := maxHeight - o.depth; cursor > o.sinceHeight {
			o.sinceHeight = cursor
		}
		o.mutex.Unlock()
	}
}

func detectedTransfer(network string, t zanorpc.TransferDetails) domain.DetectedTransfer {
	return domain.DetectedTransfer{
		Network:         network,
		TxID:            t.TxID,
		Address:         t.Address,
		PaymentID:       t.PaymentID,
		AccountIndex:    t.SubaddrIndex.Major,
		Amount:          t.Amount,
		Confirmations:   t.Confirmations,
		Height:          t.Height,
		DoubleSpendSeen: t.DoubleSpendSeen,
	}
}

// summaryObservable polls balance and sync height for one network. On
// failure it keeps the last good numbers and only flips DaemonReachable:
// stale-but-present data beats absent data on a dashboard.
type summaryObservable struct {
	session *WalletSession
}

func newSummaryObservable(session *WalletSession) *summaryObservable {
	return &summaryObservable{session}
}

func (o *summaryObservable) Key() string {
	return "summary:" + o.session.Network().CryptoCode
}

func (o *summaryObservable) Observe(errChan chan error, eventChan chan poller.Event) {
	if o.session.State() == domain.SessionClosed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), observeTimeout)
	defer cancel()

	summary := o.session.Summary()
	summary.Network = o.session.Network().CryptoCode
	summary.UpdatedAt = time.Now()

	balance, balanceErr := o.session.Balance(ctx)
	if balanceErr == nil {
		summary.Balance = balance.Balance
		summary.UnlockedBalance = balance.UnlockedBalance
	}
	height, heightErr := o.session.SyncHeight(ctx)
	if heightErr == nil {
		summary.SyncHeight = height
	}
	summary.DaemonReachable = balanceErr == nil && heightErr == nil

	o.session.UpdateSummary(summary)
	eventChan <- poller.SummaryEvent{Network: summary.Network, Summary: summary}

	if balanceErr != nil && !errors.Is(balanceErr, ErrSessionDegraded) {
		errChan <- balanceErr
	} else if heightErr != nil && !errors.Is(heightErr, ErrSessionDegraded) {
		errChan <- heightErr
	}
}
