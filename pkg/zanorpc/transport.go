package zanorpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	jsonRPCVersion = "2.0"
	jsonRPCPath    = "/json_rpc"

	defaultTimeout = 30 * time.Second
)

// Transport exchanges JSON-RPC envelopes with one daemon endpoint over
// HTTP(S), optionally authenticating with basic auth. It performs no
// retries: retry policy belongs to callers, which can tell a retryable
// *TransportError apart from a daemon-reported *RPCError.
type Transport struct {
	endpoint string
	username string
	password string
	client   *http.Client
}

// NewTransport returns a transport for the daemon reachable at uri.
// Credentials may be empty.
func NewTransport(uri, username, password string) *Transport {
	return &Transport{
		endpoint: strings.TrimSuffix(uri, "/") + jsonRPCPath,
		username: username,
		password: password,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// WithTimeout overrides the default per-call timeout.
func (t *Transport) WithTimeout(timeout time.Duration) *Transport {
	t.client.Timeout = timeout
	return t
}

// Call invokes method with params and decodes the daemon's result field
// into result, which may be nil for ack-only methods.
func (t *Transport) Call(
	ctx context.Context, method string, params, result interface{},
) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      "0",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, t.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}

	res, err := t.client.Do(req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &TransportError{
			Method: method,
			Err:    fmt.Errorf("unexpected http status %d", res.StatusCode),
		}
	}

	var envelope rpcResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return &TransportError{
			Method: method,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	if envelope.Error != nil {
		envelope.Error.Method = method
		return envelope.Error
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return &TransportError{
				Method: method,
				Err:    fmt.Errorf("decode result: %w", err),
			}
		}
	}
	return nil
}
