package httpinterface

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zano-pay/zanopayd/internal/config"
	"github.com/zano-pay/zanopayd/internal/core/application"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/internal/infrastructure/storage/db/inmemory"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

type stubWalletService struct{}

func (stubWalletService) CreateWallet(
	_ context.Context, _, _, _ string,
) (*zanorpc.CreateWalletResponse, error) {
	return &zanorpc.CreateWalletResponse{}, nil
}

func (stubWalletService) OpenWallet(_ context.Context, _, _ string) error {
	return nil
}

func (stubWalletService) CreateAccount(
	_ context.Context,
) (*zanorpc.CreateAccountResponse, error) {
	return &zanorpc.CreateAccountResponse{}, nil
}

func (stubWalletService) CreateAddress(
	_ context.Context,
) (*zanorpc.CreateAddressResponse, error) {
	return &zanorpc.CreateAddressResponse{
		IntegratedAddress: "iZxDeposit",
		PaymentID:         "feedfacefeedface",
	}, nil
}

func (stubWalletService) GetBalance(
	_ context.Context, _ *uint32,
) (*zanorpc.GetBalanceResponse, error) {
	return &zanorpc.GetBalanceResponse{Balance: 100, UnlockedBalance: 50}, nil
}

func (stubWalletService) GetTransferByTxID(
	_ context.Context, _ string, _ *uint32,
) (*zanorpc.TransferDetails, error) {
	return &zanorpc.TransferDetails{}, nil
}

func (stubWalletService) ListIncomingTransfers(
	_ context.Context, _ uint32, _ uint64,
) ([]zanorpc.TransferDetails, error) {
	return nil, nil
}

func (stubWalletService) Transfer(
	_ context.Context, _ []zanorpc.TransferDestination,
) (string, error) {
	return "ff01", nil
}

func (stubWalletService) GetHeight(_ context.Context) (uint64, error) {
	return 42, nil
}

func (stubWalletService) GenerateBlocks(_ context.Context, _ string, _ int) error {
	return nil
}

type stubDaemonService struct{}

func (stubDaemonService) GetHeight(_ context.Context) (uint64, error) {
	return 42, nil
}

type stubClientFactory struct{}

func (stubClientFactory) NewWalletService(_, _, _ string) zanorpc.WalletService {
	return stubWalletService{}
}

func (stubClientFactory) NewDaemonService(_, _, _ string) zanorpc.DaemonService {
	return stubDaemonService{}
}

func newTestServer(t *testing.T, chain string) (*httptest.Server, domain.PromptRepository) {
	t.Helper()
	pool := application.NewWalletPool([]config.NetworkConfig{{
		CryptoCode:      "ZANO",
		DaemonURI:       "http://localhost:11211",
		WalletDaemonURI: "http://localhost:11233",
		WalletFilename:  "zano_wallet",
	}}, stubClientFactory{})
	prompts := inmemory.NewPromptRepositoryImpl()
	payments := application.NewPaymentService(pool, prompts, chain)

	svc := NewService(":0", payments)
	server := httptest.NewServer(svc.server.Handler)
	t.Cleanup(server.Close)
	return server, prompts
}

func TestReadyz(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Get(server.URL + "/readyz")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestStatusEndpoint(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entries []struct {
		Network        string `json:"network"`
		State          string `json:"state"`
		BalanceDisplay string `json:"balance_display"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entries))
	require.Len(t, entries, 1)
	require.Equal(t, "ZANO", entries[0].Network)
	require.Equal(t, "Configuring", entries[0].State)
	require.Equal(t, "0.000000000000", entries[0].BalanceDisplay)
}

func TestNewAddressEndpoint(t *testing.T) {
	server, prompts := newTestServer(t, config.ChainMainnet)

	res, err := http.Post(
		server.URL+"/v1/addresses",
		"application/json",
		bytes.NewBufferString(
			`{"network":"ZANO","account_index":0,"expected_amount":500000000000}`,
		),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		Address        string `json:"address"`
		PaymentID      string `json:"payment_id"`
		ExpectedAmount uint64 `json:"expected_amount"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	require.Equal(t, "iZxDeposit", created.Address)
	require.Equal(t, "feedfacefeedface", created.PaymentID)
	require.Equal(t, uint64(500000000000), created.ExpectedAmount)

	_, err = prompts.GetPrompt(
		context.Background(), "ZANO", created.Address, created.PaymentID,
	)
	require.NoError(t, err)
}

func TestNewAddressUnknownNetwork(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Post(
		server.URL+"/v1/addresses",
		"application/json",
		bytes.NewBufferString(`{"network":"DOGE","expected_amount":10}`),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPromptsEndpoint(t *testing.T) {
	server, prompts := newTestServer(t, config.ChainMainnet)

	prompt, err := domain.NewPaymentPrompt(
		"ZANO", "iZxDeposit", "feedfacefeedface", 0, 10,
	)
	require.NoError(t, err)
	require.NoError(t, prompts.AddPrompt(context.Background(), *prompt))

	res, err := http.Get(server.URL + "/v1/prompts?network=ZANO")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listed []domain.PaymentPrompt
	require.NoError(t, json.NewDecoder(res.Body).Decode(&listed))
	require.Len(t, listed, 1)

	req, err := http.NewRequest(
		http.MethodDelete,
		server.URL+"/v1/prompts",
		bytes.NewBufferString(
			`{"network":"ZANO","address":"iZxDeposit","payment_id":"feedfacefeedface"}`,
		),
	)
	require.NoError(t, err)
	deleteRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer deleteRes.Body.Close()
	require.Equal(t, http.StatusNoContent, deleteRes.StatusCode)

	_, err = prompts.GetPrompt(
		context.Background(), "ZANO", "iZxDeposit", "feedfacefeedface",
	)
	require.ErrorIs(t, err, domain.ErrPromptNotFound)
}

func TestDeleteUnknownPrompt(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	req, err := http.NewRequest(
		http.MethodDelete,
		server.URL+"/v1/prompts",
		bytes.NewBufferString(`{"network":"ZANO","address":"iZxA","payment_id":"aa"}`),
	)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestTransferEndpoint(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Post(
		server.URL+"/v1/transfer",
		"application/json",
		bytes.NewBufferString(
			`{"network":"ZANO","destinations":[{"address":"iZxDest","amount":10}]}`,
		),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var sent struct {
		TxHash string `json:"tx_hash"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sent))
	require.Equal(t, "ff01", sent.TxHash)
}

func TestCheatEndpointsRefusedOnMainnet(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Post(
		server.URL+"/v1/cheat/pay",
		"application/json",
		bytes.NewBufferString(`{"network":"ZANO","address":"iZxDest","amount":10}`),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	mineRes, err := http.Post(
		server.URL+"/v1/cheat/mine",
		"application/json",
		bytes.NewBufferString(`{"network":"ZANO","address":"iZxDest","blocks":1}`),
	)
	require.NoError(t, err)
	defer mineRes.Body.Close()
	require.Equal(t, http.StatusForbidden, mineRes.StatusCode)
}

func TestCheatMineOnRegtest(t *testing.T) {
	server, _ := newTestServer(t, config.ChainRegtest)

	res, err := http.Post(
		server.URL+"/v1/cheat/mine",
		"application/json",
		bytes.NewBufferString(`{"network":"ZANO","address":"iZxDest","blocks":1}`),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t, config.ChainMainnet)

	res, err := http.Get(server.URL + "/v1/transfer")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
