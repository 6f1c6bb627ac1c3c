package zanorpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransportCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/json_rpc", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			username, password, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "operator", username)
			require.Equal(t, "hunter2", password)

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "2.0", req["jsonrpc"])
			require.Equal(t, "0", req["id"])
			require.Equal(t, "get_balance", req["method"])

			fmt.Fprint(
				w,
				`{"jsonrpc":"2.0","id":"0","result":{"balance":100,"unlocked_balance":50}}`,
			)
		},
	))
	defer server.Close()

	transport := NewTransport(server.URL, "operator", "hunter2")
	result := &GetBalanceResponse{}
	err := transport.Call(context.Background(), "get_balance", nil, result)
	require.NoError(t, err)
	require.Equal(t, uint64(100), result.Balance)
	require.Equal(t, uint64(50), result.UnlockedBalance)
}

func TestTransportCallWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _, ok := r.BasicAuth()
			require.False(t, ok)
			fmt.Fprint(w, `{"jsonrpc":"2.0","id":"0","result":{}}`)
		},
	))
	defer server.Close()

	transport := NewTransport(server.URL, "", "")
	err := transport.Call(context.Background(), "get_height", nil, nil)
	require.NoError(t, err)
}

func TestTransportDaemonError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(
				w,
				`{"jsonrpc":"2.0","id":"0","error":{"code":-17,"message":"not enough money"}}`,
			)
		},
	))
	defer server.Close()

	transport := NewTransport(server.URL, "", "")
	err := transport.Call(context.Background(), "transfer", nil, nil)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, -17, rpcErr.Code)
	require.Equal(t, "not enough money", rpcErr.Message)
	require.Equal(t, "transfer", rpcErr.Method)
	require.False(t, IsRetryable(err))
}

func TestTransportHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	))
	defer server.Close()

	transport := NewTransport(server.URL, "", "")
	err := transport.Call(context.Background(), "get_height", nil, nil)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	require.Equal(t, "get_height", tErr.Method)
	require.True(t, IsRetryable(err))
}

func TestTransportUnreachableDaemon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	))
	server.Close()

	transport := NewTransport(server.URL, "", "")
	err := transport.Call(context.Background(), "get_height", nil, nil)
	require.True(t, IsRetryable(err))
}

func TestTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-release
		},
	))
	defer server.Close()
	defer close(release)

	transport := NewTransport(server.URL, "", "").WithTimeout(20 * time.Millisecond)
	err := transport.Call(context.Background(), "get_height", nil, nil)
	require.True(t, IsRetryable(err))
}

func TestTransportContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		},
	))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := NewTransport(server.URL, "", "")
	err := transport.Call(ctx, "get_height", nil, nil)
	require.True(t, IsRetryable(err))
	require.True(t, errors.Is(err, context.Canceled))
}
