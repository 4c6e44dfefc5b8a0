package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/skymap/pkg/types"
)

// FetchInstances returns every instance in the VPC regardless of state
func (c *Client) FetchInstances(ctx context.Context, vpcID string) ([]types.RawInstance, error) {
	paginator := ec2.NewDescribeInstancesPaginator(c.EC2, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
		},
	})

	var instances []types.RawInstance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances in %s: %w", vpcID, err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, toRawInstance(inst))
			}
		}
	}

	return instances, nil
}

// toRawInstance converts an EC2 Instance to our RawInstance type
func toRawInstance(i ec2types.Instance) types.RawInstance {
	inst := types.RawInstance{
		ID:           deref(i.InstanceId),
		State:        types.InstanceStateUnknown,
		PublicIP:     deref(i.PublicIpAddress),
		PrivateIP:    deref(i.PrivateIpAddress),
		InstanceType: string(i.InstanceType),
	}

	if i.State != nil && i.State.Name != "" {
		inst.State = types.InstanceState(i.State.Name)
	}

	if i.Placement != nil {
		inst.AZ = deref(i.Placement.AvailabilityZone)
	}

	for _, tag := range i.Tags {
		inst.Tags = append(inst.Tags, types.Tag{Key: deref(tag.Key), Value: deref(tag.Value)})
	}

	return inst
}
