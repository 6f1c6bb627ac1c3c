package application

import (
	"context"
	"sync"
	"time"

	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

// fakeWalletService scripts the wallet daemon RPC surface for tests.
type fakeWalletService struct {
	mutex sync.Mutex

	openErr   error
	openDelay time.Duration
	openCalls int
	openInFly int
	maxInFly  int

	createCalls int

	balance      zanorpc.GetBalanceResponse
	balanceErr   error
	balanceCalls int

	height    uint64
	heightErr error

	// transfersByCycle holds the ListIncomingTransfers return of each
	// successive call; the last entry repeats once exhausted.
	transfersByCycle [][]zanorpc.TransferDetails
	transferErrs     []error
	listCalls        int
	minHeights       []uint64

	addresses []zanorpc.CreateAddressResponse
	addrCalls int

	txHash      string
	transferErr error
}

func (f *fakeWalletService) CreateWallet(
	_ context.Context, _, _, _ string,
) (*zanorpc.CreateWalletResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.createCalls++
	return &zanorpc.CreateWalletResponse{AccountIndex: 0, Address: "addr0"}, nil
}

func (f *fakeWalletService) OpenWallet(_ context.Context, _, _ string) error {
	f.mutex.Lock()
	f.openCalls++
	f.openInFly++
	if f.openInFly > f.maxInFly {
		f.maxInFly = f.openInFly
	}
	delay, err := f.openDelay, f.openErr
	f.mutex.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mutex.Lock()
	f.openInFly--
	f.mutex.Unlock()
	return err
}

func (f *fakeWalletService) CreateAccount(
	_ context.Context,
) (*zanorpc.CreateAccountResponse, error) {
	return &zanorpc.CreateAccountResponse{AccountIndex: 1, Address: "addr1"}, nil
}

func (f *fakeWalletService) CreateAddress(
	_ context.Context,
) (*zanorpc.CreateAddressResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if len(f.addresses) == 0 {
		return &zanorpc.CreateAddressResponse{
			IntegratedAddress: "iZxDefault",
			PaymentID:         "feedfacefeedface",
		}, nil
	}
	address := f.addresses[f.addrCalls%len(f.addresses)]
	f.addrCalls++
	return &address, nil
}

func (f *fakeWalletService) GetBalance(
	_ context.Context, _ *uint32,
) (*zanorpc.GetBalanceResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.balanceCalls++
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	balance := f.balance
	return &balance, nil
}

func (f *fakeWalletService) GetTransferByTxID(
	_ context.Context, _ string, _ *uint32,
) (*zanorpc.TransferDetails, error) {
	return &zanorpc.TransferDetails{}, nil
}

func (f *fakeWalletService) ListIncomingTransfers(
	_ context.Context, _ uint32, minHeight uint64,
) ([]zanorpc.TransferDetails, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.minHeights = append(f.minHeights, minHeight)
	cycle := f.listCalls
	f.listCalls++

	if cycle < len(f.transferErrs) && f.transferErrs[cycle] != nil {
		return nil, f.transferErrs[cycle]
	}
	if len(f.transfersByCycle) == 0 {
		return nil, nil
	}
	if cycle >= len(f.transfersByCycle) {
		cycle = len(f.transfersByCycle) - 1
	}
	return f.transfersByCycle[cycle], nil
}

func (f *fakeWalletService) Transfer(
	_ context.Context, _ []zanorpc.TransferDestination,
) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.transferErr != nil {
		return "", f.transferErr
	}
	return f.txHash, nil
}

func (f *fakeWalletService) GetHeight(_ context.Context) (uint64, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.heightErr != nil {
		return 0, f.heightErr
	}
	return f.height, nil
}

func (f *fakeWalletService) GenerateBlocks(
	_ context.Context, _ string, _ int,
) error {
	return nil
}

type fakeDaemonService struct {
	height uint64
}

func (f *fakeDaemonService) GetHeight(_ context.Context) (uint64, error) {
	return f.height, nil
}

// fakeClientFactory hands back the same scripted services for every
// network.
type fakeClientFactory struct {
	wallet *fakeWalletService
	daemon *fakeDaemonService
}

func (f *fakeClientFactory) NewWalletService(
	_, _, _ string,
) zanorpc.WalletService {
	return f.wallet
}

func (f *fakeClientFactory) NewDaemonService(
	_, _, _ string,
) zanorpc.DaemonService {
	return f.daemon
}
