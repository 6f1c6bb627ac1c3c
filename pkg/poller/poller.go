package poller

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	eventQueueMaxSize = 100
	errorQueueMaxSize = 10
)

// Service runs one independent recurring poll task per registered
// observable and fans their events into a single channel. Observables for
// different networks never block each other.
type Service interface {
	Start()
	Stop()
	AddObservable(observable Observable)
	RemoveObservable(observable Observable)
	GetEventChannel() chan Event
}

type pollerService struct {
	interval     time.Duration
	errChan      chan error
	eventChan    chan Event
	observables  map[string]*observableHandler
	errorHandler func(err error)
	rateLimiter  *rate.Limiter
	mutex        *sync.RWMutex
	wg           *sync.WaitGroup
}

// Opts defines the parameters needed for creating a poller service with
// NewService.
type Opts struct {
	Interval     time.Duration
	ErrorHandler func(err error)
	// RPCLimit caps the overall daemon calls per second across all
	// observables. Zero means no limit.
	RPCLimit int
}

// NewService returns a poller ready to watch wallet sessions. Use Start
// and Stop to manage it.
func NewService(opts Opts) Service {
	limit := rate.Inf
	burst := 1
	if opts.RPCLimit > 0 {
		limit = rate.Limit(opts.RPCLimit)
		burst = opts.RPCLimit
	}
	errorHandler := opts.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(err error) {}
	}
	return &pollerService{
		interval:     opts.Interval,
		errChan:      make(chan error, errorQueueMaxSize),
		eventChan:    make(chan Event, eventQueueMaxSize),
		observables:  map[string]*observableHandler{},
		errorHandler: errorHandler,
		rateLimiter:  rate.NewLimiter(limit, burst),
		mutex:        &sync.RWMutex{},
		wg:           &sync.WaitGroup{},
	}
}

// Start drains the error channel, dispatching every observation error to
// the configured handler. It returns when Stop closes the channel.
func (p *pollerService) Start() {
	for err := range p.errChan {
		p.errorHandler(err)
	}
}

// Stop stops all observables, then emits a final QuitEvent.
func (p *pollerService) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, handler := range p.observables {
		go handler.stop()
	}
	p.wg.Wait()
	p.eventChan <- QuitEvent{}
	close(p.errChan)
}

// GetEventChannel returns the channel events are published on.
func (p *pollerService) GetEventChannel() chan Event {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.eventChan
}

// AddObservable starts watching the given observable unless one with the
// same key is already watched.
func (p *pollerService) AddObservable(observable Observable) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.observables[observable.Key()]; !ok {
		handler := newObservableHandler(
			observable, p.wg, p.interval, p.eventChan, p.errChan, p.rateLimiter,
		)
		p.observables[observable.Key()] = handler
		p.wg.Add(1)
		go handler.start()
	}
}

// RemoveObservable stops watching the given observable.
func (p *pollerService) RemoveObservable(observable Observable) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if handler, ok := p.observables[observable.Key()]; ok {
		handler.stop()
		delete(p.observables, observable.Key())
	}
}
