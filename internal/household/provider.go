// Package household loads the household aggregate once per session and
// shares it with every form. Categories and members are never fetched
// independently for the expense form; this provider is the single
// source of truth for their option lists.
package household

import (
	"context"
	"sync"

	"homebook/internal/domain"
	"homebook/internal/infra/observability"
	"homebook/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// State of the provider, observable by consumers.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// Provider holds the household aggregate. A failed refresh keeps the
// last good aggregate and surfaces the error separately; the state is
// StateError only when nothing has ever loaded.
type Provider struct {
	client  port.HouseholdFetcher
	metrics *observability.Metrics
	logger  *zap.Logger

	group singleflight.Group

	mu      sync.RWMutex
	state   State
	data    *domain.Household
	lastErr error
	subs    []func()
}

// NewProvider creates a Provider in the loading state.
func NewProvider(client port.HouseholdFetcher, metrics *observability.Metrics, logger *zap.Logger) *Provider {
	return &Provider{
		client:  client,
		metrics: metrics,
		logger:  logger,
		state:   StateLoading,
	}
}

// Subscribe registers fn to run after every state transition.
func (p *Provider) Subscribe(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *Provider) notify() {
	p.mu.RLock()
	subs := make([]func(), len(p.subs))
	copy(subs, p.subs)
	p.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// Load fetches the household aggregate, replacing it wholesale.
// Concurrent calls are collapsed into one upstream request.
func (p *Provider) Load(ctx context.Context) error {
	_, err, _ := p.group.Do("load", func() (any, error) {
		p.mu.Lock()
		p.state = StateLoading
		p.mu.Unlock()
		p.notify()

		hh, err := p.client.Get(ctx)

		p.mu.Lock()
		if err != nil {
			p.lastErr = err
			if p.data == nil {
				p.state = StateError
			} else {
				// Keep serving the last good aggregate.
				p.state = StateReady
			}
			p.mu.Unlock()
			p.logger.Warn("household: load failed", zap.Error(err))
			p.notify()
			return nil, err
		}
		p.data = hh
		p.lastErr = nil
		p.state = StateReady
		p.mu.Unlock()
		p.logger.Debug("household: loaded",
			zap.Int64("household_id", hh.ID),
			zap.Int("categories", len(hh.Categories)),
			zap.Int("members", len(hh.Members)),
		)
		p.notify()
		return hh, nil
	})
	return err
}

// Refresh re-runs the fetch, e.g. after a Settings change.
func (p *Provider) Refresh(ctx context.Context) error {
	return p.Load(ctx)
}

// State returns the current observable state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Data returns the current aggregate, nil when none has loaded.
// Consumers must treat nil as "disable household-dependent inputs".
func (p *Provider) Data() *domain.Household {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.data != nil {
		p.metrics.IncrCacheHit("household")
	} else {
		p.metrics.IncrCacheMiss("household")
	}
	return p.data
}

// LastError returns the most recent load failure, nil after a
// successful load.
func (p *Provider) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}
