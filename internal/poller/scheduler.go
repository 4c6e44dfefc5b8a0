package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vietdv277/skymap/pkg/types"
)

// State is the lifecycle state of a Scheduler
type State int

const (
	// StateIdle means no VPC is configured
	StateIdle State = iota
	// StatePolling means a cycle is running or nothing was published yet
	StatePolling
	// StatePublished means a result is retained and shown
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StatePublished:
		return "published"
	default:
		return "unknown"
	}
}

// Scheduler polls one VPC at a fixed interval and publishes every
// successful result. Cycles of one VPC never overlap; a cycle that
// outlives its configuration is discarded.
type Scheduler struct {
	fetcher   Fetcher
	publisher Publisher
	reporter  ErrorReporter
	cfg       Config

	// ops serializes Configure, Clear and Stop
	ops sync.Mutex

	// publishMu is held from the generation check through Publish, so
	// nothing is published once Clear returns
	publishMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	state   State
	vpcID   string
	latest  *types.PollResult
	cancel  context.CancelFunc
	refresh chan struct{}
	done    chan struct{}
}

// New creates an idle scheduler. A nil reporter discards errors.
func New(fetcher Fetcher, publisher Publisher, reporter ErrorReporter, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if publisher == nil {
		publisher = PublisherFunc(func(types.PollResult) {})
	}
	return &Scheduler{
		fetcher:   fetcher,
		publisher: publisher,
		reporter:  reporterOrDiscard(reporter),
		cfg:       cfg,
	}
}

// Configure starts polling vpcID, replacing any previous run. The first
// cycle starts immediately. The run stops when ctx is cancelled or on
// Clear/Stop.
func (s *Scheduler) Configure(ctx context.Context, vpcID string) error {
	if vpcID == "" {
		return ErrNoNetworkID
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	if done := s.reset(); done != nil {
		<-done
	}

	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.vpcID = vpcID
	s.state = StatePolling
	s.cancel = cancel
	s.refresh = make(chan struct{}, 1)
	s.done = make(chan struct{})
	refresh, done := s.refresh, s.done
	s.mu.Unlock()

	log.Info().Str("vpc_id", vpcID).Dur("interval", s.cfg.Interval).Msg("polling started")

	go s.loop(runCtx, gen, vpcID, refresh, done)
	return nil
}

// Clear stops polling and drops the retained result. It does not wait for
// an in-flight fetch to return, but that fetch's result is discarded.
func (s *Scheduler) Clear() {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.reset()
}

// Stop is Clear followed by waiting for the poll loop to exit
func (s *Scheduler) Stop() {
	s.ops.Lock()
	defer s.ops.Unlock()
	if done := s.reset(); done != nil {
		<-done
	}
}

// reset moves to Idle and returns the done channel of the cancelled run
func (s *Scheduler) reset() chan struct{} {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	done := s.done
	prev := s.vpcID
	s.cancel = nil
	s.done = nil
	s.refresh = nil
	s.vpcID = ""
	s.latest = nil
	s.state = StateIdle
	s.mu.Unlock()

	// wait out a publish that passed its generation check before the bump
	s.publishMu.Lock()
	s.publishMu.Unlock()

	if prev != "" {
		log.Info().Str("vpc_id", prev).Msg("polling stopped")
	}
	return done
}

// Refresh asks for an immediate cycle. Requests made while a cycle is
// running are coalesced into one follow-up cycle.
func (s *Scheduler) Refresh() error {
	s.mu.Lock()
	ch := s.refresh
	s.mu.Unlock()

	if ch == nil {
		return ErrNoNetworkID
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return nil
}

// Latest returns the retained result, if any
func (s *Scheduler) Latest() (types.PollResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return types.PollResult{}, false
	}
	return *s.latest, true
}

// State returns the current lifecycle state
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NetworkID returns the configured VPC ID, or "" when idle
func (s *Scheduler) NetworkID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vpcID
}

func (s *Scheduler) loop(ctx context.Context, gen uint64, vpcID string, refresh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.cycle(ctx, gen, vpcID)

		select {
		case <-ctx.Done():
			s.expire(gen, vpcID)
			return
		case <-ticker.C:
		case <-refresh:
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context, gen uint64, vpcID string) {
	if ctx.Err() != nil {
		return
	}

	logger := log.With().
		Str("cycle_id", uuid.NewString()).
		Str("vpc_id", vpcID).
		Logger()
	ctx = logger.WithContext(ctx)

	ctx, span := tracer.Start(ctx, "poller.Cycle",
		trace.WithAttributes(attribute.String("vpc.id", vpcID)),
	)
	defer span.End()

	if s.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CycleTimeout)
		defer cancel()
	}

	if !s.begin(gen) {
		return
	}

	start := time.Now()
	logger.Debug().Msg("poll cycle started")

	result, err := Poll(ctx, s.fetcher, s.cfg, vpcID, s.reporter)
	cycleDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !s.fail(gen, vpcID, err) {
			cyclesTotal.WithLabelValues("discarded").Inc()
			logger.Debug().Err(err).Msg("poll cycle discarded")
			return
		}
		cyclesTotal.WithLabelValues("failure").Inc()
		logger.Error().Err(err).Dur("took", time.Since(start)).Msg("poll cycle failed")
		return
	}

	if !s.publish(gen, result) {
		cyclesTotal.WithLabelValues("discarded").Inc()
		logger.Debug().Msg("poll cycle discarded")
		return
	}

	counts := result.CountByKind()
	for _, kind := range []types.NodeKind{types.NodeKindLoadBalancer, types.NodeKindZoneGroup, types.NodeKindInstance} {
		topologyNodes.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}
	cyclesTotal.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("topology.nodes", len(result.Nodes)))

	logger.Info().
		Int("nodes", len(result.Nodes)).
		Int("edges", len(result.Edges)).
		Dur("took", time.Since(start)).
		Msg("topology published")
}

// expire moves to Idle when the run ended through its parent context
// rather than Clear, Stop or Configure
func (s *Scheduler) expire(gen uint64, vpcID string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.cancel = nil
	s.done = nil
	s.refresh = nil
	s.vpcID = ""
	s.latest = nil
	s.state = StateIdle
	s.mu.Unlock()

	log.Info().Str("vpc_id", vpcID).Msg("polling stopped")
}

// begin marks a cycle as running
func (s *Scheduler) begin(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.state = StatePolling
	return true
}

// publish retains and publishes result unless the run was replaced
func (s *Scheduler) publish(gen uint64, result types.PollResult) bool {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	s.latest = &result
	s.state = StatePublished
	s.mu.Unlock()

	s.publisher.Publish(result)
	return true
}

// fail reports err unless the run was replaced. The retained result is kept.
func (s *Scheduler) fail(gen uint64, vpcID string, err error) bool {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	if s.latest != nil {
		s.state = StatePublished
	} else {
		s.state = StatePolling
	}
	s.mu.Unlock()

	s.reporter.ReportError("poll "+vpcID, err)
	return true
}
