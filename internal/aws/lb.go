package aws

import (
	"context"
	"fmt"

	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/vietdv277/skymap/pkg/types"
)

// describeTagsBatch is the DescribeTags limit on ResourceArns
const describeTagsBatch = 20

// FetchLoadBalancers returns every ALB/NLB in the region. DescribeLoadBalancers
// has no VPC filter; callers filter on VPCID.
func (c *Client) FetchLoadBalancers(ctx context.Context) ([]types.RawLoadBalancer, error) {
	paginator := elbv2.NewDescribeLoadBalancersPaginator(c.ELBv2, &elbv2.DescribeLoadBalancersInput{})

	var lbs []types.RawLoadBalancer
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe load balancers: %w", err)
		}
		for _, lb := range page.LoadBalancers {
			lbs = append(lbs, toRawLoadBalancer(lb))
		}
	}

	return lbs, nil
}

// FetchLoadBalancerTags returns tags keyed by load balancer ARN, looked up
// in batches of 20
func (c *Client) FetchLoadBalancerTags(ctx context.Context, arns []string) (map[string]types.Tags, error) {
	tags := make(map[string]types.Tags, len(arns))

	for start := 0; start < len(arns); start += describeTagsBatch {
		end := min(start+describeTagsBatch, len(arns))

		output, err := c.ELBv2.DescribeTags(ctx, &elbv2.DescribeTagsInput{
			ResourceArns: arns[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe tags: %w", err)
		}

		for _, desc := range output.TagDescriptions {
			arn := deref(desc.ResourceArn)
			for _, tag := range desc.Tags {
				tags[arn] = append(tags[arn], types.Tag{Key: deref(tag.Key), Value: deref(tag.Value)})
			}
		}
	}

	return tags, nil
}

// toRawLoadBalancer converts an ELBv2 LoadBalancer to our RawLoadBalancer type
func toRawLoadBalancer(lb elbv2types.LoadBalancer) types.RawLoadBalancer {
	result := types.RawLoadBalancer{
		ARN:     deref(lb.LoadBalancerArn),
		Name:    deref(lb.LoadBalancerName),
		DNSName: deref(lb.DNSName),
		VPCID:   deref(lb.VpcId),
		Type:    string(lb.Type),
		Scheme:  string(lb.Scheme),
	}

	if lb.State != nil {
		result.State = string(lb.State.Code)
	}

	return result
}
