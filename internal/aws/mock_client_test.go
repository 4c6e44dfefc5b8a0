package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var errMockFailure = errors.New("mock failure")

// mockEC2 implements EC2API for testing.
type mockEC2 struct {
	DescribeInstancesFn func(ctx context.Context, in *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
	DescribeVpcsFn      func(ctx context.Context, in *ec2.DescribeVpcsInput) (*ec2.DescribeVpcsOutput, error)
}

func (m *mockEC2) DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if m.DescribeInstancesFn != nil {
		return m.DescribeInstancesFn(ctx, in)
	}
	return &ec2.DescribeInstancesOutput{}, nil
}

func (m *mockEC2) DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if m.DescribeVpcsFn != nil {
		return m.DescribeVpcsFn(ctx, in)
	}
	return &ec2.DescribeVpcsOutput{}, nil
}

// mockELBv2 implements ELBv2API for testing.
type mockELBv2 struct {
	DescribeLoadBalancersFn func(ctx context.Context, in *elbv2.DescribeLoadBalancersInput) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeTagsFn          func(ctx context.Context, in *elbv2.DescribeTagsInput) (*elbv2.DescribeTagsOutput, error)
}

func (m *mockELBv2) DescribeLoadBalancers(ctx context.Context, in *elbv2.DescribeLoadBalancersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	if m.DescribeLoadBalancersFn != nil {
		return m.DescribeLoadBalancersFn(ctx, in)
	}
	return &elbv2.DescribeLoadBalancersOutput{}, nil
}

func (m *mockELBv2) DescribeTags(ctx context.Context, in *elbv2.DescribeTagsInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error) {
	if m.DescribeTagsFn != nil {
		return m.DescribeTagsFn(ctx, in)
	}
	return &elbv2.DescribeTagsOutput{}, nil
}

// mockSTS implements STSAPI for testing.
type mockSTS struct {
	GetCallerIdentityFn func(ctx context.Context, in *sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTS) GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.GetCallerIdentityFn != nil {
		return m.GetCallerIdentityFn(ctx, in)
	}
	return &sts.GetCallerIdentityOutput{}, nil
}
