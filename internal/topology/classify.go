// Package topology turns raw EC2 and ELBv2 listings into a laid-out
// two-tier graph. Everything in this package is pure: no I/O, no clocks,
// no shared state.
package topology

import (
	"strings"

	"github.com/vietdv277/skymap/pkg/types"
)

// Default classification markers
const (
	DefaultWebInstanceMarker   = "WEB-Instance"
	DefaultAppInstanceMarker   = "WAS-Instance"
	DefaultWebLoadBalancerName = "DRS-WEB-ALB"
	DefaultAppLoadBalancerName = "DRS-WAS-ALB"
)

// Rules holds the Name-tag values used to classify resources
type Rules struct {
	// Instances whose Name tag contains the marker join the tier
	WebInstanceMarker string
	AppInstanceMarker string

	// Load balancers whose Name tag equals the name front the tier
	WebLoadBalancerName string
	AppLoadBalancerName string
}

// DefaultRules returns the stock classification rules
func DefaultRules() Rules {
	return Rules{
		WebInstanceMarker:   DefaultWebInstanceMarker,
		AppInstanceMarker:   DefaultAppInstanceMarker,
		WebLoadBalancerName: DefaultWebLoadBalancerName,
		AppLoadBalancerName: DefaultAppLoadBalancerName,
	}
}

// Classification is the output of Classify
type Classification struct {
	Instances     []types.ClassifiedInstance
	LoadBalancers []types.ClassifiedLoadBalancer

	// Shadowed holds load balancers that matched a role already taken by
	// an earlier balancer. They are not part of the topology.
	Shadowed []types.ClassifiedLoadBalancer
}

// LoadBalancer returns the balancer holding the role, if any
func (c Classification) LoadBalancer(role types.Role) (types.ClassifiedLoadBalancer, bool) {
	for _, lb := range c.LoadBalancers {
		if lb.Role == role {
			return lb, true
		}
	}
	return types.ClassifiedLoadBalancer{}, false
}

// InstanceTier resolves the tier of a single instance from its Name tag
func (r Rules) InstanceTier(inst types.RawInstance) types.Tier {
	name := inst.Tags.Name()
	switch {
	case r.WebInstanceMarker != "" && strings.Contains(name, r.WebInstanceMarker):
		return types.TierWeb
	case r.AppInstanceMarker != "" && strings.Contains(name, r.AppInstanceMarker):
		return types.TierApp
	default:
		return types.TierExcluded
	}
}

// LoadBalancerRole resolves the role of a single load balancer from its Name tag
func (r Rules) LoadBalancerRole(lb types.RawLoadBalancer) types.Role {
	name := lb.Tags.Name()
	switch {
	case name == "":
		return types.RoleExcluded
	case name == r.WebLoadBalancerName:
		return types.RoleWebFront
	case name == r.AppLoadBalancerName:
		return types.RoleAppFront
	default:
		return types.RoleExcluded
	}
}

// Classify tags raw records with their tier or role and drops everything
// excluded. It is total: missing or malformed tags only ever lead to
// exclusion.
func Classify(rules Rules, instances []types.RawInstance, lbs []types.RawLoadBalancer) Classification {
	var c Classification

	for _, inst := range instances {
		tier := rules.InstanceTier(inst)
		if tier == types.TierExcluded {
			continue
		}
		c.Instances = append(c.Instances, types.ClassifiedInstance{
			RawInstance: inst,
			Tier:        tier,
			Name:        inst.Tags.Name(),
		})
	}

	taken := make(map[types.Role]bool, 2)
	for _, lb := range lbs {
		role := rules.LoadBalancerRole(lb)
		if role == types.RoleExcluded {
			continue
		}
		classified := types.ClassifiedLoadBalancer{
			RawLoadBalancer: lb,
			Role:            role,
			Name:            lb.Tags.Name(),
		}
		if taken[role] {
			c.Shadowed = append(c.Shadowed, classified)
			continue
		}
		taken[role] = true
		c.LoadBalancers = append(c.LoadBalancers, classified)
	}

	return c
}
