package poller

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

type observableStatus struct {
	sync.RWMutex
	status Status
}

func newObservableStatus() *observableStatus {
	return &observableStatus{
		status: New,
	}
}

func (o *observableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *observableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

// Observable is one recurring poll target, typically a network's wallet
// session. Observe runs one poll cycle and pushes any resulting events or
// errors. The handler keeps the status at Waiting while a cycle is in
// flight so a slow cycle is never overlapped by the next tick.
type Observable interface {
	Observe(errChan chan error, eventChan chan Event)
	Key() string
}

type observableHandler struct {
	observable  Observable
	wg          *sync.WaitGroup
	ticker      *time.Ticker
	eventChan   chan Event
	errChan     chan error
	stopChan    chan int
	status      *observableStatus
	rateLimiter *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	wg *sync.WaitGroup,
	interval time.Duration,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	return &observableHandler{
		observable:  observable,
		wg:          wg,
		ticker:      time.NewTicker(interval),
		eventChan:   eventChan,
		errChan:     errChan,
		stopChan:    make(chan int, 1),
		status:      newObservableStatus(),
		rateLimiter: rateLimiter,
	}
}

func (oh *observableHandler) start() {
	defer oh.wg.Done()
	log.Debugf("start observing %s", oh.observable.Key())
	for {
		select {
		case <-oh.ticker.C:
			if oh.status.Get() != Waiting {
				oh.observe()
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) observe() {
	oh.status.Set(Waiting)
	defer oh.status.Set(Processed)

	if err := oh.rateLimiter.Wait(context.Background()); err != nil {
		oh.errChan <- err
		return
	}
	oh.observable.Observe(oh.errChan, oh.eventChan)
}

// stop signals the handler's loop to exit. An in-flight cycle completes
// before the loop sees the signal; the service's wait group is released
// only when the loop returns.
func (oh *observableHandler) stop() {
	log.Debugf("stop observing %s", oh.observable.Key())
	oh.stopChan <- 1
}
