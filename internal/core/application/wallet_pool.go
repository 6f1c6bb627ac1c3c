package application

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/zano-pay/zanopayd/internal/config"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/pkg/circuitbreaker"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

var (
	// OpenBackoffInitial is the first retry delay after a failed call.
	OpenBackoffInitial = 2 * time.Second
	// OpenBackoffMax caps the exponential backoff of a degraded session.
	OpenBackoffMax = 2 * time.Minute
)

// ClientFactory builds the RPC clients of a network's endpoints. Tests
// inject a factory returning fakes.
type ClientFactory interface {
	NewWalletService(uri, username, password string) zanorpc.WalletService
	NewDaemonService(uri, username, password string) zanorpc.DaemonService
}

type rpcClientFactory struct {
	timeout time.Duration
}

// NewRPCClientFactory returns the production factory building JSON-RPC
// clients over HTTP(S). A zero timeout keeps the transport default.
func NewRPCClientFactory(timeout time.Duration) ClientFactory {
	return rpcClientFactory{timeout}
}

func (f rpcClientFactory) NewWalletService(uri, username, password string) zanorpc.WalletService {
	return zanorpc.NewWalletClient(f.newTransport(uri, username, password))
}

func (f rpcClientFactory) NewDaemonService(uri, username, password string) zanorpc.DaemonService {
	return zanorpc.NewDaemonClient(f.newTransport(uri, username, password))
}

func (f rpcClientFactory) newTransport(uri, username, password string) *zanorpc.Transport {
	transport := zanorpc.NewTransport(uri, username, password)
	if f.timeout > 0 {
		transport = transport.WithTimeout(f.timeout)
	}
	return transport
}

// WalletPool manages one wallet daemon session per configured network,
// opening wallet files lazily on first use and tracking per-network
// reachability.
type WalletPool struct {
	sessions map[string]*WalletSession
}

// NewWalletPool creates a pool with one session per network, all in the
// Configuring state. Networks absent from the list are Unconfigured and
// excluded entirely.
func NewWalletPool(networks []config.NetworkConfig, factory ClientFactory) *WalletPool {
	sessions := make(map[string]*WalletSession, len(networks))
	for _, net := range networks {
		session := &WalletSession{
			network: net,
			wallet:  factory.NewWalletService(net.WalletDaemonURI, net.Username, net.Password),
			daemon:  factory.NewDaemonService(net.DaemonURI, net.Username, net.Password),
			breaker: circuitbreaker.NewWalletBreaker(net.CryptoCode),
			state:   domain.SessionConfiguring,
			summary: domain.WalletSummary{Network: net.CryptoCode},
		}
		if net.HasCashCow() {
			session.cashcow = factory.NewWalletService(
				net.CashCowWalletDaemonURI, net.Username, net.Password,
			)
		}
		sessions[net.CryptoCode] = session
	}
	return &WalletPool{sessions}
}

// Networks returns the crypto codes of all configured networks.
func (p *WalletPool) Networks() []string {
	networks := make([]string, 0, len(p.sessions))
	for code := range p.sessions {
		networks = append(networks, code)
	}
	return networks
}

// Session returns the wallet session of a network, or
// ErrNetworkNotConfigured.
func (p *WalletPool) Session(network string) (*WalletSession, error) {
	session, ok := p.sessions[network]
	if !ok {
		return nil, ErrNetworkNotConfigured
	}
	return session, nil
}

// Close shuts down every session. Closed sessions are not reopened.
func (p *WalletPool) Close() {
	for _, session := range p.sessions {
		session.close()
	}
}

// WalletSession owns the connection to one opened wallet file for one
// network. At most one open_wallet/create_wallet call is in flight per
// network: concurrent opens against the same wallet file are
// daemon-undefined behavior.
type WalletSession struct {
	network config.NetworkConfig
	wallet  zanorpc.WalletService
	daemon  zanorpc.DaemonService
	cashcow zanorpc.WalletService
	breaker *gobreaker.CircuitBreaker

	openMutex sync.Mutex

	mutex     sync.RWMutex
	state     domain.SessionState
	backoff   time.Duration
	nextRetry time.Time
	summary   domain.WalletSummary
}

// Network returns the session's network configuration.
func (s *WalletSession) Network() config.NetworkConfig {
	return s.network
}

// State returns the current lifecycle state.
func (s *WalletSession) State() domain.SessionState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// Summary returns the last known good balance/sync snapshot. It keeps
// serving stale values while the session is degraded.
func (s *WalletSession) Summary() domain.WalletSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.summary
}

// UpdateSummary publishes a new snapshot. Written only by the summary
// publisher task of the session's network.
func (s *WalletSession) UpdateSummary(summary domain.WalletSummary) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.summary = summary
}

// Balance returns the wallet's total and unlocked balance in atomic units.
func (s *WalletSession) Balance(ctx context.Context) (*zanorpc.GetBalanceResponse, error) {
	var balance *zanorpc.GetBalanceResponse
	err := s.do(ctx, func() error {
		var err error
		balance, err = s.wallet.GetBalance(ctx, nil)
		return err
	})
	return balance, err
}

// SyncHeight returns the wallet daemon's current sync height.
func (s *WalletSession) SyncHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := s.do(ctx, func() error {
		var err error
		height, err = s.wallet.GetHeight(ctx)
		return err
	})
	return height, err
}

// DaemonHeight returns the node daemon's chain height.
func (s *WalletSession) DaemonHeight(ctx context.Context) (uint64, error) {
	return s.daemon.GetHeight(ctx)
}

// IncomingTransfers lists incoming transfers for the account starting at
// minHeight.
func (s *WalletSession) IncomingTransfers(
	ctx context.Context, accountIndex uint32, minHeight uint64,
) ([]zanorpc.TransferDetails, error) {
	var transfers []zanorpc.TransferDetails
	err := s.do(ctx, func() error {
		var err error
		transfers, err = s.wallet.ListIncomingTransfers(ctx, accountIndex, minHeight)
		return err
	})
	return transfers, err
}

// TransferByTxID returns the details of one transfer.
func (s *WalletSession) TransferByTxID(
	ctx context.Context, txid string,
) (*zanorpc.TransferDetails, error) {
	var transfer *zanorpc.TransferDetails
	err := s.do(ctx, func() error {
		var err error
		transfer, err = s.wallet.GetTransferByTxID(ctx, txid, nil)
		return err
	})
	return transfer, err
}

// NewIntegratedAddress asks the daemon for a fresh integrated address and
// its embedded payment id. Both values are opaque to the engine.
func (s *WalletSession) NewIntegratedAddress(
	ctx context.Context,
) (*zanorpc.CreateAddressResponse, error) {
	var address *zanorpc.CreateAddressResponse
	err := s.do(ctx, func() error {
		var err error
		address, err = s.wallet.CreateAddress(ctx)
		return err
	})
	return address, err
}

// CreateAccount creates a new account in the opened wallet.
func (s *WalletSession) CreateAccount(
	ctx context.Context,
) (*zanorpc.CreateAccountResponse, error) {
	var account *zanorpc.CreateAccountResponse
	err := s.do(ctx, func() error {
		var err error
		account, err = s.wallet.CreateAccount(ctx)
		return err
	})
	return account, err
}

// Send submits a transfer from the primary wallet to the given
// destinations and returns the transaction hash.
func (s *WalletSession) Send(
	ctx context.Context, destinations []zanorpc.TransferDestination,
) (string, error) {
	var txHash string
	err := s.do(ctx, func() error {
		var err error
		txHash, err = s.wallet.Transfer(ctx, destinations)
		return err
	})
	return txHash, err
}

// CashCowSend pays the given destinations from the cash-cow wallet. Used
// by cheat mode on non-production chains.
func (s *WalletSession) CashCowSend(
	ctx context.Context, destinations []zanorpc.TransferDestination,
) (string, error) {
	if s.cashcow == nil {
		return "", ErrNoCashCowWallet
	}
	return s.cashcow.Transfer(ctx, destinations)
}

// GenerateBlocks mines blocks to the given address through the cash-cow
// wallet if present, the primary wallet otherwise.
func (s *WalletSession) GenerateBlocks(
	ctx context.Context, address string, blocks int,
) error {
	wallet := s.wallet
	if s.cashcow != nil {
		wallet = s.cashcow
	}
	return wallet.GenerateBlocks(ctx, address, blocks)
}

// do runs one RPC call once the session is Ready, routing the outcome
// back into the state machine: a transport failure degrades the session,
// any success restores it.
func (s *WalletSession) do(ctx context.Context, fn func() error) error {
	if err := s.ensureReady(ctx); err != nil {
		return err
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		if zanorpc.IsRetryable(err) || errors.Is(err, gobreaker.ErrOpenState) {
			s.markDegraded(err)
		}
		return err
	}
	s.markReady()
	return nil
}

func (s *WalletSession) ensureReady(ctx context.Context) error {
	s.mutex.RLock()
	state, nextRetry := s.state, s.nextRetry
	s.mutex.RUnlock()

	switch state {
	case domain.SessionReady:
		return nil
	case domain.SessionClosed:
		return ErrSessionClosed
	case domain.SessionDegraded:
		// The wallet file is still open daemon-side. Fail fast inside the
		// backoff window, let the first call after it restore the session.
		if time.Now().Before(nextRetry) {
			return ErrSessionDegraded
		}
		return nil
	default:
		return s.open(ctx)
	}
}

// open serializes the open-or-create handshake. A timed-out open is
// treated as failed and retried from Configuring on a later call.
func (s *WalletSession) open(ctx context.Context) error {
	s.openMutex.Lock()
	defer s.openMutex.Unlock()

	s.mutex.Lock()
	switch s.state {
	case domain.SessionReady:
		s.mutex.Unlock()
		return nil
	case domain.SessionClosed:
		s.mutex.Unlock()
		return ErrSessionClosed
	case domain.SessionConfiguring:
		if time.Now().Before(s.nextRetry) {
			s.mutex.Unlock()
			return ErrSessionDegraded
		}
	}
	s.state = domain.SessionOpening
	s.mutex.Unlock()

	net := s.network
	err := s.wallet.OpenWallet(ctx, net.WalletFilename, net.WalletPassword)
	var openErr *zanorpc.OpenWalletError
	if errors.As(err, &openErr) && openErr.WalletNotFound() {
		log.Infof(
			"%s wallet file %s not found, creating it",
			net.CryptoCode, net.WalletFilename,
		)
		_, err = s.wallet.CreateWallet(ctx, net.WalletFilename, net.WalletPassword, "English")
	}
	if err != nil {
		s.mutex.Lock()
		s.state = domain.SessionConfiguring
		s.bumpBackoffLocked()
		s.mutex.Unlock()
		log.WithError(err).Warnf("failed opening %s wallet", net.CryptoCode)
		return err
	}

	s.markReady()
	log.Infof("%s wallet session ready", net.CryptoCode)
	return nil
}

func (s *WalletSession) markReady() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == domain.SessionClosed {
		return
	}
	s.state = domain.SessionReady
	s.backoff = 0
	s.nextRetry = time.Time{}
}

func (s *WalletSession) markDegraded(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == domain.SessionClosed {
		return
	}
	s.state = domain.SessionDegraded
	s.bumpBackoffLocked()
	log.WithError(err).Warnf(
		"%s wallet session degraded, next retry in %s",
		s.network.CryptoCode, s.backoff,
	)
}

func (s *WalletSession) bumpBackoffLocked() {
	if s.backoff == 0 {
		s.backoff = OpenBackoffInitial
	} else if s.backoff < OpenBackoffMax {
		s.backoff *= 2
		if s.backoff > OpenBackoffMax {
			s.backoff = OpenBackoffMax
		}
	}
	s.nextRetry = time.Now().Add(s.backoff)
}

func (s *WalletSession) close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = domain.SessionClosed
}
