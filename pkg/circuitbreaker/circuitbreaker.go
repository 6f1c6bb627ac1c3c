package circuitbreaker

import (
	"github.com/sony/gobreaker"
	"github.com/zano-pay/zanopayd/pkg/zanorpc"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
)

// NewWalletBreaker returns a *gobreaker.CircuitBreaker guarding one
// network's wallet daemon. It trips when the overall number of failing
// requests reaches MaxNumOfFailingRequests and the failing ratio meets
// FailingRatio. Only transport-level failures count: a daemon-reported
// rpc error means the daemon is alive and must not open the breaker.
func NewWalletBreaker(network string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: network,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !zanorpc.IsRetryable(err)
		},
	})
}
