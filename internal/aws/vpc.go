package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/skymap/pkg/types"
)

// ListVPCs returns all VPCs in the region, default VPC first, then by name
func (c *Client) ListVPCs(ctx context.Context) ([]types.VPC, error) {
	paginator := ec2.NewDescribeVpcsPaginator(c.EC2, &ec2.DescribeVpcsInput{})

	var vpcs []types.VPC
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe VPCs: %w", err)
		}
		for _, v := range page.Vpcs {
			vpcs = append(vpcs, toVPC(v))
		}
	}

	sort.SliceStable(vpcs, func(i, j int) bool {
		if vpcs[i].IsDefault != vpcs[j].IsDefault {
			return vpcs[i].IsDefault
		}
		return vpcs[i].DisplayName() < vpcs[j].DisplayName()
	})

	return vpcs, nil
}

// toVPC converts an EC2 VPC to our VPC type
func toVPC(v ec2types.Vpc) types.VPC {
	vpc := types.VPC{
		ID:        deref(v.VpcId),
		CIDR:      deref(v.CidrBlock),
		State:     string(v.State),
		IsDefault: derefBool(v.IsDefault),
		OwnerID:   deref(v.OwnerId),
	}

	for _, tag := range v.Tags {
		if deref(tag.Key) == "Name" {
			vpc.Name = deref(tag.Value)
			break
		}
	}

	return vpc
}
