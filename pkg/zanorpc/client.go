package zanorpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Daemon error codes observed from zano-like wallet daemons.
const (
	codeWrongAddress   = -2
	codeNotEnoughMoney = -17
)

// WalletService is the wallet daemon RPC surface used by the payment
// engine. All operations are idempotent reads except CreateWallet,
// CreateAccount, CreateAddress and Transfer, which are at-most-once from
// the client's perspective: deduplication of accidental resubmission is
// the caller's responsibility.
type WalletService interface {
	CreateWallet(ctx context.Context, filename, password, language string) (*CreateWalletResponse, error)
	OpenWallet(ctx context.Context, filename, password string) error
	CreateAccount(ctx context.Context) (*CreateAccountResponse, error)
	CreateAddress(ctx context.Context) (*CreateAddressResponse, error)
	GetBalance(ctx context.Context, accountIndex *uint32) (*GetBalanceResponse, error)
	GetTransferByTxID(ctx context.Context, txid string, accountIndex *uint32) (*TransferDetails, error)
	ListIncomingTransfers(ctx context.Context, accountIndex uint32, minHeight uint64) ([]TransferDetails, error)
	Transfer(ctx context.Context, destinations []TransferDestination) (string, error)
	GetHeight(ctx context.Context) (uint64, error)
	GenerateBlocks(ctx context.Context, walletAddress string, blocks int) error
}

// DaemonService is the node daemon RPC surface used for sync queries.
type DaemonService interface {
	GetHeight(ctx context.Context) (uint64, error)
}

type walletClient struct {
	transport *Transport
}

// NewWalletClient returns a WalletService talking to the wallet daemon
// behind the given transport.
func NewWalletClient(transport *Transport) WalletService {
	return &walletClient{transport}
}

func (c *walletClient) CreateWallet(
	ctx context.Context, filename, password, language string,
) (*CreateWalletResponse, error) {
	params := CreateWalletRequest{
		Filename: filename,
		Password: password,
		Language: language,
	}
	result := &CreateWalletResponse{}
	if err := c.transport.Call(ctx, "create_wallet", params, result); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) &&
			strings.Contains(strings.ToLower(rpcErr.Message), "already exists") {
			return nil, fmt.Errorf("%w: %s", ErrWalletExists, filename)
		}
		return nil, err
	}
	return result, nil
}

func (c *walletClient) OpenWallet(
	ctx context.Context, filename, password string,
) error {
	params := OpenWalletRequest{Filename: filename, Password: password}
	if err := c.transport.Call(ctx, "open_wallet", params, nil); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return &OpenWalletError{Code: rpcErr.Code, Message: rpcErr.Message}
		}
		return err
	}
	return nil
}

func (c *walletClient) CreateAccount(
	ctx context.Context,
) (*CreateAccountResponse, error) {
	result := &CreateAccountResponse{}
	if err := c.transport.Call(ctx, "create_account", nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *walletClient) CreateAddress(
	ctx context.Context,
) (*CreateAddressResponse, error) {
	result := &CreateAddressResponse{}
	if err := c.transport.Call(
		ctx, "make_integrated_address", nil, result,
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *walletClient) GetBalance(
	ctx context.Context, accountIndex *uint32,
) (*GetBalanceResponse, error) {
	params := GetBalanceRequest{AccountIndex: accountIndex}
	result := &GetBalanceResponse{}
	if err := c.transport.Call(ctx, "get_balance", params, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *walletClient) GetTransferByTxID(
	ctx context.Context, txid string, accountIndex *uint32,
) (*TransferDetails, error) {
	params := GetTransferByTxIDRequest{TxID: txid, AccountIndex: accountIndex}
	result := &GetTransferByTxIDResponse{}
	if err := c.transport.Call(
		ctx, "get_transfer_by_txid", params, result,
	); err != nil {
		return nil, err
	}
	return &result.Transfer, nil
}

func (c *walletClient) ListIncomingTransfers(
	ctx context.Context, accountIndex uint32, minHeight uint64,
) ([]TransferDetails, error) {
	params := GetTransfersRequest{
		In:             true,
		AccountIndex:   accountIndex,
		FilterByHeight: minHeight > 0,
		MinHeight:      minHeight,
	}
	result := &GetTransfersResponse{}
	if err := c.transport.Call(ctx, "get_transfers", params, result); err != nil {
		return nil, err
	}
	return result.In, nil
}

func (c *walletClient) Transfer(
	ctx context.Context, destinations []TransferDestination,
) (string, error) {
	if len(destinations) == 0 {
		return "", fmt.Errorf("%w: no destinations given", ErrInvalidDestination)
	}
	params := TransferRequest{Destinations: destinations}
	result := &TransferResponse{}
	if err := c.transport.Call(ctx, "transfer", params, result); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return "", mapTransferError(rpcErr)
		}
		return "", err
	}
	return result.TxHash, nil
}

func (c *walletClient) GetHeight(ctx context.Context) (uint64, error) {
	result := &GetHeightResponse{}
	if err := c.transport.Call(ctx, "get_height", nil, result); err != nil {
		return 0, err
	}
	return result.Height, nil
}

func (c *walletClient) GenerateBlocks(
	ctx context.Context, walletAddress string, blocks int,
) error {
	params := GenerateBlocksRequest{
		WalletAddress:  walletAddress,
		AmountOfBlocks: blocks,
	}
	return c.transport.Call(ctx, "generateblocks", params, nil)
}

func mapTransferError(rpcErr *RPCError) error {
	msg := strings.ToLower(rpcErr.Message)
	switch {
	case rpcErr.Code == codeNotEnoughMoney,
		strings.Contains(msg, "not enough money"),
		strings.Contains(msg, "not enough unlocked money"):
		return fmt.Errorf("%w: %s", ErrInsufficientFunds, rpcErr.Message)
	case rpcErr.Code == codeWrongAddress,
		strings.Contains(msg, "wrong address"),
		strings.Contains(msg, "invalid address"):
		return fmt.Errorf("%w: %s", ErrInvalidDestination, rpcErr.Message)
	default:
		return rpcErr
	}
}

type daemonClient struct {
	transport *Transport
}

// NewDaemonClient returns a DaemonService talking to the node daemon
// behind the given transport.
func NewDaemonClient(transport *Transport) DaemonService {
	return &daemonClient{transport}
}

func (c *daemonClient) GetHeight(ctx context.Context) (uint64, error) {
	result := &GetHeightResponse{}
	if err := c.transport.Call(ctx, "getheight", nil, result); err != nil {
		return 0, err
	}
	return result.Height, nil
}
