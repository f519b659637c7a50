package aggregate

import (
	"fmt"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
)

// Gate waits for the two metadata descriptors the aggregator depends on:
// the session object (which names the schedule relationship) and the
// schedule object (which names the service relationship). They may arrive
// in any order; Ready is closed once both are in.
type Gate struct {
	mu       sync.Mutex
	session  *domain.ObjectInfo
	schedule *domain.ObjectInfo
	ready    chan struct{}
	once     sync.Once

	scheduleField string
	serviceField  string
	fields        domain.FieldKeys
}

// NewGate creates a gate reading the default lookup fields.
func NewGate() *Gate {
	return &Gate{
		ready:         make(chan struct{}),
		scheduleField: domain.FieldServiceSchedule,
		serviceField:  domain.FieldService,
		fields:        domain.DefaultFieldKeys(),
	}
}

// SetSessionInfo records the session object descriptor.
func (g *Gate) SetSessionInfo(info domain.ObjectInfo) {
	g.mu.Lock()
	g.session = &info
	g.mu.Unlock()
	g.check()
}

// SetScheduleInfo records the schedule object descriptor.
func (g *Gate) SetScheduleInfo(info domain.ObjectInfo) {
	g.mu.Lock()
	g.schedule = &info
	g.mu.Unlock()
	g.check()
}

func (g *Gate) check() {
	g.mu.Lock()
	both := g.session != nil && g.schedule != nil
	g.mu.Unlock()
	if both {
		g.once.Do(func() { close(g.ready) })
	}
}

// Ready is closed once both descriptors have arrived.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// IsReady reports whether both descriptors have arrived.
func (g *Gate) IsReady() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// Config assembles the aggregator configuration from both descriptors.
// It returns domain.ErrNotReady until both have arrived.
func (g *Gate) Config() (domain.AggregatorConfig, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session == nil || g.schedule == nil {
		return domain.AggregatorConfig{}, domain.ErrNotReady
	}

	scheduleRel, err := g.session.RelationshipName(g.scheduleField)
	if err != nil {
		return domain.AggregatorConfig{}, fmt.Errorf("resolve schedule relationship: %w", err)
	}
	serviceRel, err := g.schedule.RelationshipName(g.serviceField)
	if err != nil {
		return domain.AggregatorConfig{}, fmt.Errorf("resolve service relationship: %w", err)
	}

	return domain.AggregatorConfig{
		ScheduleRelationship: scheduleRel,
		ServiceRelationship:  serviceRel,
		Fields:               g.fields,
		Label:                g.session.Label,
		LabelPlural:          g.session.LabelPlural,
	}, nil
}
