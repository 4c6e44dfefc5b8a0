package types

// RawLoadBalancer represents an ELBv2 load balancer (ALB/NLB) with its
// tags joined from the secondary tag lookup
type RawLoadBalancer struct {
	ARN     string `json:"loadBalancerArn" yaml:"arn"`
	Name    string `json:"loadBalancerName,omitempty" yaml:"name,omitempty"`
	DNSName string `json:"dnsName" yaml:"dns_name"`
	VPCID   string `json:"vpcId" yaml:"vpc_id"`
	State   string `json:"state" yaml:"state"`   // active, provisioning, active_impaired, failed
	Type    string `json:"type" yaml:"type"`     // application, network, gateway
	Scheme  string `json:"scheme" yaml:"scheme"` // internet-facing, internal
	Tags    Tags   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsActive returns true if the load balancer is serving traffic
func (lb *RawLoadBalancer) IsActive() bool {
	return lb.State == "active"
}
