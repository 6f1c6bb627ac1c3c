package zanorpc

import "encoding/json"

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// CreateWalletRequest is the payload of a create_wallet call.
type CreateWalletRequest struct {
	Filename string `json:"filename"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// CreateWalletResponse ...
type CreateWalletResponse struct {
	AccountIndex uint32 `json:"account_index"`
	Address      string `json:"address"`
}

// OpenWalletRequest is the payload of an open_wallet call.
type OpenWalletRequest struct {
	Filename string `json:"filename"`
	Password string `json:"password"`
}

// CreateAccountResponse ...
type CreateAccountResponse struct {
	AccountIndex uint32 `json:"account_index"`
	Address      string `json:"address"`
}

// CreateAddressResponse carries an integrated address embedding a
// daemon-chosen payment id. Both values are opaque to the client.
type CreateAddressResponse struct {
	IntegratedAddress string `json:"integrated_address"`
	PaymentID         string `json:"payment_id"`
}

// GetBalanceRequest ...
type GetBalanceRequest struct {
	AccountIndex *uint32 `json:"account_index,omitempty"`
}

// GetBalanceResponse reports balances in atomic units. The daemon
// guarantees UnlockedBalance <= Balance.
type GetBalanceResponse struct {
	Balance         uint64 `json:"balance"`
	UnlockedBalance uint64 `json:"unlocked_balance"`
}

// GetTransferByTxIDRequest ...
type GetTransferByTxIDRequest struct {
	TxID         string  `json:"txid"`
	AccountIndex *uint32 `json:"account_index,omitempty"`
}

// GetTransferByTxIDResponse ...
type GetTransferByTxIDResponse struct {
	Transfer TransferDetails `json:"transfer"`
}

// SubaddrIndex locates the receiving account of a transfer.
type SubaddrIndex struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// TransferDetails is one transfer entry as reported by get_transfers or
// get_transfer_by_txid.
type TransferDetails struct {
	TxID            string       `json:"txid"`
	PaymentID       string       `json:"payment_id"`
	Address         string       `json:"address"`
	Amount          uint64       `json:"amount"`
	Confirmations   uint64       `json:"confirmations"`
	Height          uint64       `json:"height"`
	Timestamp       int64        `json:"timestamp"`
	UnlockTime      uint64       `json:"unlock_time"`
	SubaddrIndex    SubaddrIndex `json:"subaddr_index"`
	Type            string       `json:"type"`
	DoubleSpendSeen bool         `json:"double_spend_seen"`
}

// GetTransfersRequest ...
type GetTransfersRequest struct {
	In             bool   `json:"in"`
	AccountIndex   uint32 `json:"account_index"`
	FilterByHeight bool   `json:"filter_by_height,omitempty"`
	MinHeight      uint64 `json:"min_height,omitempty"`
}

// GetTransfersResponse ...
type GetTransfersResponse struct {
	In []TransferDetails `json:"in"`
}

// TransferDestination is one (address, amount) output of a transfer call.
type TransferDestination struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// TransferRequest ...
type TransferRequest struct {
	Destinations []TransferDestination `json:"destinations"`
}

// TransferResponse ...
type TransferResponse struct {
	TxHash string `json:"tx_hash"`
}

// GenerateBlocksRequest mines blocks to a wallet address. Non-production
// networks only.
type GenerateBlocksRequest struct {
	WalletAddress  string `json:"wallet_address"`
	AmountOfBlocks int    `json:"amount_of_blocks"`
}

// GetHeightResponse ...
type GetHeightResponse struct {
	Height uint64 `json:"height"`
}
