// Package presenter drives a live countdown: it recomputes the remaining time
// on a fixed cadence and fans each snapshot out to subscribers.
package presenter

import (
	"io"
	"sync"
	"time"

	"github.com/bborn/countdown/internal/countdown"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the refresh cadence of a live countdown.
const DefaultInterval = time.Second

// subscriberBuffer is how many snapshots a slow subscriber may lag behind
// before ticks are dropped for it.
const subscriberBuffer = 4

// Snapshot is what every display cell sees for one tick.
type Snapshot struct {
	Target    time.Time               `json:"target"`
	At        time.Time               `json:"at"`
	Remaining countdown.TimeRemaining `json:"remaining"`
	Greatest  countdown.Unit          `json:"greatest"`
}

// Slots returns one display slot per unit.
func (s Snapshot) Slots() []countdown.Slot {
	return s.Remaining.Slots()
}

// Reached reports whether the countdown is over.
func (s Snapshot) Reached() bool {
	return s.Remaining.Reached()
}

// Presenter recomputes the countdown once per interval.
type Presenter struct {
	target   time.Time
	clock    clockwork.Clock
	calc     *countdown.Calculator
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	subs    map[chan Snapshot]struct{}
	current Snapshot
	handle  *Handle
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithClock sets the clock used for ticking and for "now".
func WithClock(c clockwork.Clock) Option {
	return func(p *Presenter) { p.clock = c }
}

// WithInterval overrides the refresh cadence.
func WithInterval(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// New creates a presenter for target. The first snapshot is computed here so
// a fresh presenter never shows visibility left over from an older target.
func New(target time.Time, opts ...Option) *Presenter {
	p := &Presenter{
		target:   target,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		logger:   log.New(io.Discard),
		subs:     make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.calc = &countdown.Calculator{Target: target, Clock: p.clock}
	p.current = p.compute()
	return p
}

// Target returns the instant being counted down to.
func (p *Presenter) Target() time.Time {
	return p.target
}

// Current returns the most recent snapshot.
func (p *Presenter) Current() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Subscribe registers a new subscriber. Every subscriber gets the same
// snapshot value for a given tick.
func (p *Presenter) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, subscriberBuffer)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (p *Presenter) Unsubscribe(ch <-chan Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for c := range p.subs {
		if c == ch {
			delete(p.subs, c)
			close(c)
			return
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (p *Presenter) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Start publishes a snapshot immediately and then once per interval until
// the returned handle is stopped. Starting an already running presenter
// returns the existing handle.
func (p *Presenter) Start() *Handle {
	p.mu.Lock()
	if p.handle != nil && !p.handle.stopped {
		h := p.handle
		p.mu.Unlock()
		return h
	}

	h := &Handle{
		p:      p,
		ticker: p.clock.NewTicker(p.interval),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	p.handle = h
	p.publishLocked(p.compute())
	p.mu.Unlock()

	p.logger.Debug("countdown started", "target", p.target.Format(time.RFC3339), "interval", p.interval)
	go h.run()
	return h
}

// Close stops the running handle, if any, and closes every subscriber.
func (p *Presenter) Close() {
	p.mu.Lock()
	h := p.handle
	p.mu.Unlock()
	if h != nil {
		h.Stop()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs {
		delete(p.subs, ch)
		close(ch)
	}
}

func (p *Presenter) compute() Snapshot {
	now := p.calc.Now()
	r := p.calc.At(now)
	return Snapshot{
		Target:    p.target,
		At:        now,
		Remaining: r,
		Greatest:  countdown.Greatest(r),
	}
}

// tick computes and publishes one snapshot unless h has been stopped.
func (p *Presenter) tick(h *Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h.stopped {
		return
	}
	prev := p.current
	p.publishLocked(p.compute())
	if !prev.Reached() && p.current.Reached() {
		p.logger.Info("countdown reached target", "target", p.target.Format(time.RFC3339))
	}
}

func (p *Presenter) publishLocked(s Snapshot) {
	p.current = s
	for ch := range p.subs {
		select {
		case ch <- s:
		default:
			// Subscriber is behind; it will catch up on the next tick.
		}
	}
}

// Handle controls a running presenter.
type Handle struct {
	p      *Presenter
	ticker clockwork.Ticker
	quit   chan struct{}
	done   chan struct{}

	// guarded by p.mu
	stopped bool
}

func (h *Handle) run() {
	defer close(h.done)
	for {
		select {
		case <-h.quit:
			return
		case <-h.ticker.Chan():
			h.p.tick(h)
		}
	}
}

// Stop halts the ticker. Once Stop returns no further snapshot is computed
// or published. It is safe to call more than once.
func (h *Handle) Stop() {
	h.p.mu.Lock()
	if h.stopped {
		h.p.mu.Unlock()
		<-h.done
		return
	}
	h.stopped = true
	h.ticker.Stop()
	close(h.quit)
	h.p.mu.Unlock()

	<-h.done
	h.p.logger.Debug("countdown stopped", "target", h.p.target.Format(time.RFC3339))
}

// Stopped reports whether Stop has been called.
func (h *Handle) Stopped() bool {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()
	return h.stopped
}

// Done is closed once the tick goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
