package poller

import (
	"context"
	"errors"
	"sync"

	"github.com/vietdv277/skymap/pkg/types"
)

var errMockFailure = errors.New("mock failure")

// mockFetcher implements Fetcher for testing.
type mockFetcher struct {
	InstancesFn func(ctx context.Context, vpcID string) ([]types.RawInstance, error)
	BalancersFn func(ctx context.Context) ([]types.RawLoadBalancer, error)
	TagsFn      func(ctx context.Context, arns []string) (map[string]types.Tags, error)
}

func (m *mockFetcher) FetchInstances(ctx context.Context, vpcID string) ([]types.RawInstance, error) {
	if m.InstancesFn != nil {
		return m.InstancesFn(ctx, vpcID)
	}
	return []types.RawInstance{
		{ID: "i-1", State: types.InstanceStateRunning, AZ: "az-1", Tags: named("WEB-Instance-1")},
		{ID: "i-2", State: types.InstanceStateStopped, AZ: "az-1", Tags: named("WAS-Instance-1")},
	}, nil
}

func (m *mockFetcher) FetchLoadBalancers(ctx context.Context) ([]types.RawLoadBalancer, error) {
	if m.BalancersFn != nil {
		return m.BalancersFn(ctx)
	}
	return []types.RawLoadBalancer{
		{ARN: "arn:web", VPCID: "vpc-1", State: "active"},
		{ARN: "arn:app", VPCID: "vpc-1", State: "active"},
		{ARN: "arn:elsewhere", VPCID: "vpc-2", State: "active"},
	}, nil
}

func (m *mockFetcher) FetchLoadBalancerTags(ctx context.Context, arns []string) (map[string]types.Tags, error) {
	if m.TagsFn != nil {
		return m.TagsFn(ctx, arns)
	}
	return map[string]types.Tags{
		"arn:web":       named("DRS-WEB-ALB"),
		"arn:app":       named("DRS-WAS-ALB"),
		"arn:elsewhere": named("DRS-WEB-ALB"),
	}, nil
}

func named(name string) types.Tags {
	return types.Tags{{Key: "Name", Value: name}}
}

// recorder collects published results and reported errors.
type recorder struct {
	mu      sync.Mutex
	results []types.PollResult
	errs    []error
}

func (r *recorder) Publish(result types.PollResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recorder) ReportError(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) published() []types.PollResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.PollResult(nil), r.results...)
}

func (r *recorder) reported() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}
