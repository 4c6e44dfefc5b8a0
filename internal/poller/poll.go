package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vietdv277/skymap/internal/topology"
	"github.com/vietdv277/skymap/pkg/types"
)

// DefaultInterval is the time between two poll cycles
const DefaultInterval = 10 * time.Second

// Config controls what a poll cycle produces
type Config struct {
	Interval time.Duration

	// CycleTimeout bounds one cycle. Zero means the cycle is only bounded
	// by cancellation.
	CycleTimeout time.Duration

	Rules  topology.Rules
	Layout topology.Layout
}

// DefaultConfig returns the stock polling configuration
func DefaultConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		CycleTimeout: 30 * time.Second,
		Rules:        topology.DefaultRules(),
		Layout:       topology.DefaultLayout(),
	}
}

// Poll runs one fetch, classify and build pass for a VPC. Shadowed load
// balancers are logged to the logger carried by ctx.
func Poll(ctx context.Context, f Fetcher, cfg Config, vpcID string, reporter ErrorReporter) (types.PollResult, error) {
	res, err := FetchAll(ctx, f, vpcID, reporter)
	if err != nil {
		return types.PollResult{}, err
	}

	c := topology.Classify(cfg.Rules, res.Instances, res.LoadBalancers)

	logger := zerolog.Ctx(ctx)
	for _, lb := range c.Shadowed {
		logger.Warn().
			Str("arn", lb.ARN).
			Str("role", string(lb.Role)).
			Msgf("load balancer %q ignored: role already taken", lb.Name)
	}
	shadowedBalancers.Set(float64(len(c.Shadowed)))

	return types.PollResult{
		VPCID:     vpcID,
		Graph:     topology.Build(cfg.Layout, c),
		FetchedAt: res.FetchedAt,
	}, nil
}
