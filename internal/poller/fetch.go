// Package poller drives the fetch, classify, build and publish cycle for a
// single VPC.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vietdv277/skymap/pkg/types"
)

var tracer = otel.Tracer("skymap/poller")

// ErrNoNetworkID is returned when an operation needs a VPC ID and got none
var ErrNoNetworkID = errors.New("VPC ID is required")

// Fetcher lists the raw resources of one region
type Fetcher interface {
	// FetchInstances returns every instance in the VPC, paginated to completion
	FetchInstances(ctx context.Context, vpcID string) ([]types.RawInstance, error)

	// FetchLoadBalancers returns every load balancer in the region. There is
	// no server-side VPC filter.
	FetchLoadBalancers(ctx context.Context) ([]types.RawLoadBalancer, error)

	// FetchLoadBalancerTags returns tags keyed by ARN. ARNs missing from the
	// result have no tags.
	FetchLoadBalancerTags(ctx context.Context, arns []string) (map[string]types.Tags, error)
}

// Resources is the joined output of one fetch
type Resources struct {
	Instances     []types.RawInstance
	LoadBalancers []types.RawLoadBalancer
	FetchedAt     time.Time
}

// FetchAll fetches instances and load balancers concurrently. Both must
// succeed; the first error cancels the other branch and is returned.
func FetchAll(ctx context.Context, f Fetcher, vpcID string, reporter ErrorReporter) (*Resources, error) {
	if vpcID == "" {
		return nil, ErrNoNetworkID
	}

	var (
		instances []types.RawInstance
		lbs       []types.RawLoadBalancer
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		instances, err = FetchInstances(gctx, f, vpcID)
		return err
	})

	g.Go(func() error {
		var err error
		lbs, err = FetchLoadBalancers(gctx, f, vpcID, reporter)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Resources{
		Instances:     instances,
		LoadBalancers: lbs,
		FetchedAt:     time.Now(),
	}, nil
}

// FetchInstances lists the instances of a VPC sorted by ID
func FetchInstances(ctx context.Context, f Fetcher, vpcID string) ([]types.RawInstance, error) {
	ctx, span := tracer.Start(ctx, "poller.FetchInstances",
		trace.WithAttributes(attribute.String("vpc.id", vpcID)),
	)
	defer span.End()

	instances, err := f.FetchInstances(ctx, vpcID)
	if err != nil {
		fetchErrors.WithLabelValues("instances").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to fetch instances: %w", err)
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].ID < instances[j].ID
	})
	span.SetAttributes(attribute.Int("instances.count", len(instances)))
	return instances, nil
}

// FetchLoadBalancers lists the load balancers of a VPC with their tags
// joined, sorted by ARN. A failed tag lookup is reported and leaves every
// balancer unnamed instead of failing.
func FetchLoadBalancers(ctx context.Context, f Fetcher, vpcID string, reporter ErrorReporter) ([]types.RawLoadBalancer, error) {
	ctx, span := tracer.Start(ctx, "poller.FetchLoadBalancers",
		trace.WithAttributes(attribute.String("vpc.id", vpcID)),
	)
	defer span.End()

	all, err := f.FetchLoadBalancers(ctx)
	if err != nil {
		fetchErrors.WithLabelValues("load_balancers").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to fetch load balancers: %w", err)
	}

	var lbs []types.RawLoadBalancer
	for _, lb := range all {
		if lb.VPCID == vpcID {
			lbs = append(lbs, lb)
		}
	}
	if len(lbs) == 0 {
		return lbs, nil
	}

	arns := make([]string, len(lbs))
	for i, lb := range lbs {
		arns[i] = lb.ARN
	}

	tags, err := f.FetchLoadBalancerTags(ctx, arns)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		fetchErrors.WithLabelValues("tags").Inc()
		span.RecordError(err)
		reporterOrDiscard(reporter).ReportError("load balancer tags", fmt.Errorf("failed to fetch load balancer tags: %w", err))
		tags = nil
	}

	for i := range lbs {
		lbs[i].Tags = tags[lbs[i].ARN]
	}

	sort.SliceStable(lbs, func(i, j int) bool {
		return lbs[i].ARN < lbs[j].ARN
	})
	span.SetAttributes(attribute.Int("load_balancers.count", len(lbs)))
	return lbs, nil
}
