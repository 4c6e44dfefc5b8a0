package poller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/skymap/pkg/types"
)

func TestFetchAll_AllSuccess(t *testing.T) {
	res, err := FetchAll(context.Background(), &mockFetcher{}, "vpc-1", nil)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Instances, 2)
	require.Len(t, res.LoadBalancers, 2)
	assert.Equal(t, "arn:app", res.LoadBalancers[0].ARN)
	assert.Equal(t, "DRS-WAS-ALB", res.LoadBalancers[0].Tags.Name())
	assert.Equal(t, "arn:web", res.LoadBalancers[1].ARN)
	assert.False(t, res.FetchedAt.IsZero())
}

func TestFetchAll_EmptyVPCID(t *testing.T) {
	called := false
	mf := &mockFetcher{
		InstancesFn: func(_ context.Context, _ string) ([]types.RawInstance, error) {
			called = true
			return nil, nil
		},
	}

	res, err := FetchAll(context.Background(), mf, "", nil)
	assert.ErrorIs(t, err, ErrNoNetworkID)
	assert.Nil(t, res)
	assert.False(t, called)
}

func TestFetchAll_InstanceFailure(t *testing.T) {
	mf := &mockFetcher{
		InstancesFn: func(_ context.Context, _ string) ([]types.RawInstance, error) {
			return nil, errMockFailure
		},
	}

	res, err := FetchAll(context.Background(), mf, "vpc-1", nil)
	assert.ErrorIs(t, err, errMockFailure)
	assert.Nil(t, res)
}

func TestFetchAll_BalancerFailureCancelsInstances(t *testing.T) {
	mf := &mockFetcher{
		InstancesFn: func(ctx context.Context, _ string) ([]types.RawInstance, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		BalancersFn: func(_ context.Context) ([]types.RawLoadBalancer, error) {
			return nil, errMockFailure
		},
	}

	_, err := FetchAll(context.Background(), mf, "vpc-1", nil)
	assert.ErrorIs(t, err, errMockFailure)
}

func TestFetchAll_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mf := &mockFetcher{
		InstancesFn: func(ctx context.Context, _ string) ([]types.RawInstance, error) {
			return nil, ctx.Err()
		},
		BalancersFn: func(ctx context.Context) ([]types.RawLoadBalancer, error) {
			return nil, ctx.Err()
		},
	}

	_, err := FetchAll(ctx, mf, "vpc-1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchAll_SortsInstances(t *testing.T) {
	mf := &mockFetcher{
		InstancesFn: func(_ context.Context, _ string) ([]types.RawInstance, error) {
			return []types.RawInstance{{ID: "i-c"}, {ID: "i-a"}, {ID: "i-b"}}, nil
		},
	}

	res, err := FetchAll(context.Background(), mf, "vpc-1", nil)
	require.NoError(t, err)
	ids := []string{res.Instances[0].ID, res.Instances[1].ID, res.Instances[2].ID}
	assert.Equal(t, []string{"i-a", "i-b", "i-c"}, ids)
}

func TestFetchLoadBalancers_FiltersByVPC(t *testing.T) {
	var asked []string
	mf := &mockFetcher{
		TagsFn: func(_ context.Context, arns []string) (map[string]types.Tags, error) {
			asked = arns
			return nil, nil
		},
	}

	lbs, err := FetchLoadBalancers(context.Background(), mf, "vpc-1", nil)
	require.NoError(t, err)
	assert.Len(t, lbs, 2)
	assert.ElementsMatch(t, []string{"arn:web", "arn:app"}, asked)
	for _, lb := range lbs {
		assert.Equal(t, "vpc-1", lb.VPCID)
	}
}

func TestFetchLoadBalancers_NoneInVPCSkipsTagLookup(t *testing.T) {
	mf := &mockFetcher{
		TagsFn: func(_ context.Context, _ []string) (map[string]types.Tags, error) {
			t.Fatal("tag lookup should not run")
			return nil, nil
		},
	}

	lbs, err := FetchLoadBalancers(context.Background(), mf, "vpc-empty", nil)
	require.NoError(t, err)
	assert.Empty(t, lbs)
}

func TestFetchLoadBalancers_TagFailureDegradesToUnnamed(t *testing.T) {
	rec := &recorder{}
	mf := &mockFetcher{
		TagsFn: func(_ context.Context, _ []string) (map[string]types.Tags, error) {
			return nil, errMockFailure
		},
	}

	lbs, err := FetchLoadBalancers(context.Background(), mf, "vpc-1", rec)
	require.NoError(t, err)
	require.Len(t, lbs, 2)
	for _, lb := range lbs {
		assert.Empty(t, lb.Tags.Name())
	}

	errs := rec.reported()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], errMockFailure)
}

func TestFetchLoadBalancers_MissingTagsAreUnnamed(t *testing.T) {
	mf := &mockFetcher{
		TagsFn: func(_ context.Context, _ []string) (map[string]types.Tags, error) {
			return map[string]types.Tags{"arn:web": named("DRS-WEB-ALB")}, nil
		},
	}

	lbs, err := FetchLoadBalancers(context.Background(), mf, "vpc-1", nil)
	require.NoError(t, err)
	require.Len(t, lbs, 2)
	assert.Empty(t, lbs[0].Tags)
	assert.Equal(t, "DRS-WEB-ALB", lbs[1].Tags.Name())
}

func TestPoll_BuildsScenario(t *testing.T) {
	result, err := Poll(context.Background(), &mockFetcher{}, DefaultConfig(), "vpc-1", nil)
	require.NoError(t, err)

	assert.Equal(t, "vpc-1", result.VPCID)
	counts := result.CountByKind()
	assert.Equal(t, 2, counts[types.NodeKindLoadBalancer])
	assert.Equal(t, 2, counts[types.NodeKindZoneGroup])
	assert.Equal(t, 2, counts[types.NodeKindInstance])
	assert.Len(t, result.Edges, 5)
}

func TestPoll_ShadowedBalancerIsIgnored(t *testing.T) {
	mf := &mockFetcher{
		BalancersFn: func(_ context.Context) ([]types.RawLoadBalancer, error) {
			return []types.RawLoadBalancer{
				{ARN: "arn:b", VPCID: "vpc-1"},
				{ARN: "arn:a", VPCID: "vpc-1"},
			}, nil
		},
		TagsFn: func(_ context.Context, _ []string) (map[string]types.Tags, error) {
			return map[string]types.Tags{
				"arn:a": named("DRS-WEB-ALB"),
				"arn:b": named("DRS-WEB-ALB"),
			}, nil
		},
	}

	result, err := Poll(context.Background(), mf, DefaultConfig(), "vpc-1", nil)
	require.NoError(t, err)

	n, ok := result.Node("web-lb")
	require.True(t, ok)
	// ARN order decides, not listing order
	assert.Equal(t, "arn:a", n.(types.LoadBalancerNode).ARN)
	assert.Equal(t, 1, result.CountByKind()[types.NodeKindLoadBalancer])
}

func TestPoll_DiscoveryOrderDoesNotChangeGraph(t *testing.T) {
	forward := &mockFetcher{}
	reversed := &mockFetcher{
		InstancesFn: func(ctx context.Context, vpcID string) ([]types.RawInstance, error) {
			in, _ := (&mockFetcher{}).FetchInstances(ctx, vpcID)
			return []types.RawInstance{in[1], in[0]}, nil
		},
		BalancersFn: func(ctx context.Context) ([]types.RawLoadBalancer, error) {
			lbs, _ := (&mockFetcher{}).FetchLoadBalancers(ctx)
			return []types.RawLoadBalancer{lbs[2], lbs[1], lbs[0]}, nil
		},
	}

	a, err := Poll(context.Background(), forward, DefaultConfig(), "vpc-1", nil)
	require.NoError(t, err)
	b, err := Poll(context.Background(), reversed, DefaultConfig(), "vpc-1", nil)
	require.NoError(t, err)

	assert.Equal(t, a.Graph, b.Graph)
}
