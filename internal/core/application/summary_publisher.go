package application

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zano-pay/zanopayd/internal/stats"
	"github.com/zano-pay/zanopayd/pkg/poller"
)

// SummaryPublisher runs one recurring task per network publishing
// balance/sync snapshots to the wallet pool and the metrics registry. Its
// interval is independent from the payment listener's.
type SummaryPublisher struct {
	pool      *WalletPool
	pollerSvc poller.Service
	done      chan struct{}
}

// NewSummaryPublisher wires a publisher polling every interval.
func NewSummaryPublisher(
	pool *WalletPool, interval time.Duration, rpcLimit int,
) *SummaryPublisher {
	pollerSvc := poller.NewService(poller.Opts{
		Interval: interval,
		ErrorHandler: func(err error) {
			log.WithError(err).Debug("summary poll failed")
		},
		RPCLimit: rpcLimit,
	})
	return &SummaryPublisher{
		pool:      pool,
		pollerSvc: pollerSvc,
		done:      make(chan struct{}),
	}
}

// Start launches the per-network summary tasks.
func (p *SummaryPublisher) Start() {
	for _, network := range p.pool.Networks() {
		session, err := p.pool.Session(network)
		if err != nil {
			continue
		}
		p.pollerSvc.AddObservable(newSummaryObservable(session))
	}
	go p.pollerSvc.Start()
	go p.handleEvents()
}

// Stop ends the summary tasks cooperatively.
func (p *SummaryPublisher) Stop() {
	p.pollerSvc.Stop()
	<-p.done
}

func (p *SummaryPublisher) handleEvents() {
	for event := range p.pollerSvc.GetEventChannel() {
		switch e := event.(type) {
		case poller.QuitEvent:
			close(p.done)
			return
		case poller.SummaryEvent:
			reachable := float64(0)
			if e.Summary.DaemonReachable {
				reachable = 1
			}
			stats.WalletBalance.WithLabelValues(e.Network).Set(float64(e.Summary.Balance))
			stats.WalletUnlockedBalance.WithLabelValues(e.Network).Set(float64(e.Summary.UnlockedBalance))
			stats.WalletSyncHeight.WithLabelValues(e.Network).Set(float64(e.Summary.SyncHeight))
			stats.DaemonReachable.WithLabelValues(e.Network).Set(reachable)
		}
	}
}
