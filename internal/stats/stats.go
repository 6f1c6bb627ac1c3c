package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WalletBalance tracks the last observed total balance per network,
	// in atomic units.
	WalletBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zanopay_wallet_balance_atomic",
		Help: "Total wallet balance in atomic units",
	}, []string{"network"})

	// WalletUnlockedBalance ...
	WalletUnlockedBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zanopay_wallet_unlocked_balance_atomic",
		Help: "Unlocked wallet balance in atomic units",
	}, []string{"network"})

	// WalletSyncHeight ...
	WalletSyncHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zanopay_wallet_sync_height",
		Help: "Wallet daemon sync height",
	}, []string{"network"})

	// DaemonReachable is 1 while the wallet daemon answers, 0 otherwise.
	DaemonReachable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zanopay_daemon_reachable",
		Help: "Whether the wallet daemon is reachable",
	}, []string{"network"})

	// TransfersDetected counts incoming transfers observed by the payment
	// listener, matched or not.
	TransfersDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zanopay_transfers_detected_total",
		Help: "Incoming transfers observed by the payment listener",
	}, []string{"network"})

	// PaymentsConfirmed counts payments reported settled.
	PaymentsConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zanopay_payments_confirmed_total",
		Help: "Payments that reached the required confirmation depth",
	}, []string{"network"})
)
