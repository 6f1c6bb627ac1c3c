package httpinterface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/zano-pay/zanopayd/internal/core/application"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/pkg/mathutil"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

// Service is the HTTP surface the host application talks to: prompt
// management, status snapshots, prometheus metrics and the cheat-mode
// shortcuts for non-production chains.
type Service struct {
	payments *application.PaymentService
	server   *http.Server
}

// NewService ...
func NewService(addr string, payments *application.PaymentService) *Service {
	svc := &Service{payments: payments}

	mux := http.NewServeMux()
	mux.HandleFunc("/readyz", svc.handleReadyz)
	mux.HandleFunc("/status", svc.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/addresses", svc.handleAddresses)
	mux.HandleFunc("/v1/prompts", svc.handlePrompts)
	mux.HandleFunc("/v1/transfer", svc.handleTransfer)
	mux.HandleFunc("/v1/cheat/pay", svc.handleCheatPay)
	mux.HandleFunc("/v1/cheat/mine", svc.handleCheatMine)

	svc.server = &http.Server{Addr: addr, Handler: mux}
	return svc
}

// Start serves the HTTP interface until Shutdown.
func (s *Service) Start() error {
	log.Infof("http interface is listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Service) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Service) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type statusEntry struct {
	application.NetworkStatus
	BalanceDisplay string `json:"balance_display"`
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	statuses := s.payments.Status()
	entries := make([]statusEntry, 0, len(statuses))
	for _, status := range statuses {
		entries = append(entries, statusEntry{
			NetworkStatus:  status,
			BalanceDisplay: mathutil.FormatAtomicUnits(status.Summary.Balance),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

type newAddressRequest struct {
	Network        string `json:"network"`
	AccountIndex   uint32 `json:"account_index"`
	ExpectedAmount uint64 `json:"expected_amount"`
}

type newAddressResponse struct {
	Network        string `json:"network"`
	Address        string `json:"address"`
	PaymentID      string `json:"payment_id"`
	AccountIndex   uint32 `json:"account_index"`
	ExpectedAmount uint64 `json:"expected_amount"`
}

func (s *Service) handleAddresses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req newAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prompt, err := s.payments.NewDepositAddress(
		r.Context(), req.Network, req.AccountIndex, req.ExpectedAmount,
	)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, newAddressResponse{
		Network:        prompt.Network,
		Address:        prompt.Address,
		PaymentID:      prompt.PaymentID,
		AccountIndex:   prompt.AccountIndex,
		ExpectedAmount: prompt.ExpectedAmount,
	})
}

type deletePromptRequest struct {
	Network   string `json:"network"`
	Address   string `json:"address"`
	PaymentID string `json:"payment_id"`
}

func (s *Service) handlePrompts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prompts, err := s.payments.ListPrompts(r.Context(), r.URL.Query().Get("network"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, prompts)
	case http.MethodDelete:
		var req deletePromptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.payments.CancelPrompt(
			r.Context(), req.Network, req.Address, req.PaymentID,
		); err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

type transferRequest struct {
	Network      string                        `json:"network"`
	Destinations []zanorpc.TransferDestination `json:"destinations"`
}

type transferResponse struct {
	TxHash string `json:"tx_hash"`
}

func (s *Service) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txHash, err := s.payments.Send(r.Context(), req.Network, req.Destinations)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, transferResponse{TxHash: txHash})
}

type cheatPayRequest struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

func (s *Service) handleCheatPay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req cheatPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txHash, err := s.payments.CheatPay(r.Context(), req.Network, req.Address, req.Amount)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, transferResponse{TxHash: txHash})
}

type cheatMineRequest struct {
	Network string `json:"network"`
	Address string `json:"address"`
	Blocks  int    `json:"blocks"`
}

func (s *Service) handleCheatMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req cheatMineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.payments.CheatMine(
		r.Context(), req.Network, req.Address, req.Blocks,
	); err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, application.ErrNetworkNotConfigured),
		errors.Is(err, domain.ErrPromptNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrCheatModeDisabled),
		errors.Is(err, application.ErrNoCashCowWallet):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPromptAlreadyExists),
		errors.Is(err, domain.ErrInvalidPrompt),
		errors.Is(err, zanorpc.ErrInvalidDestination):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrSessionDegraded),
		errors.Is(err, application.ErrSessionClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed writing http response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
