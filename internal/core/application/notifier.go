package application

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zano-pay/zanopayd/internal/core/domain"
)

// WebhookNotifier drains the payment listener's results and POSTs each
// one as JSON to the host's webhook endpoint. With no endpoint configured
// it only logs, keeping the results channel drained either way.
type WebhookNotifier struct {
	url    string
	client *http.Client
	done   chan struct{}
}

// NewWebhookNotifier ...
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		done:   make(chan struct{}),
	}
}

// Start consumes results until the channel is closed.
func (n *WebhookNotifier) Start(results <-chan domain.ReconciliationResult) {
	go func() {
		for result := range results {
			n.notify(result)
		}
		close(n.done)
	}()
}

// Wait blocks until the results channel has been fully drained.
func (n *WebhookNotifier) Wait() {
	<-n.done
}

func (n *WebhookNotifier) notify(result domain.ReconciliationResult) {
	log.Debugf(
		"reconciliation %s: %s tx %s (%d confirmations)",
		result.ID, result.Status, result.Transfer.TxID, result.Confirmations,
	)
	if n.url == "" {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.WithError(err).Warn("failed encoding reconciliation result")
		return
	}
	res, err := n.client.Post(n.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.WithError(err).Warnf(
			"failed delivering reconciliation %s to webhook", result.ID,
		)
		return
	}
	res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Warnf(
			"webhook answered status %d for reconciliation %s",
			res.StatusCode, result.ID,
		)
	}
}
