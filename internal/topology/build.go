package topology

import (
	"sort"

	"github.com/vietdv277/skymap/pkg/types"
)

// tierSpec describes how one tier is named on the graph
type tierSpec struct {
	tier        types.Tier
	role        types.Role
	lbID        string
	lbLabel     string
	groupPrefix string
	groupLabel  string
}

// tiers is ordered top to bottom
var tiers = [...]tierSpec{
	{types.TierWeb, types.RoleWebFront, "web-lb", "WEB ALB", "web-group-", "WEB"},
	{types.TierApp, types.RoleAppFront, "app-lb", "WAS ALB", "app-group-", "WAS"},
}

// LoadBalancerNodeID returns the graph ID of the load balancer fronting tier
func LoadBalancerNodeID(tier types.Tier) string {
	for _, spec := range tiers {
		if spec.tier == tier {
			return spec.lbID
		}
	}
	return ""
}

// ZoneGroupNodeID returns the graph ID of the zone group for tier and az
func ZoneGroupNodeID(tier types.Tier, az string) string {
	for _, spec := range tiers {
		if spec.tier == tier {
			return spec.groupPrefix + az
		}
	}
	return ""
}

// zoneMembers maps an availability zone to its instances in input order
type zoneMembers map[string][]types.ClassifiedInstance

func (z zoneMembers) largest() int {
	n := 0
	for _, members := range z {
		if len(members) > n {
			n = len(members)
		}
	}
	return n
}

// partition groups classified instances by tier, then by zone
func partition(instances []types.ClassifiedInstance) map[types.Tier]zoneMembers {
	out := map[types.Tier]zoneMembers{
		types.TierWeb: {},
		types.TierApp: {},
	}
	for _, inst := range instances {
		zones, ok := out[inst.Tier]
		if !ok {
			continue
		}
		zones[inst.AZ] = append(zones[inst.AZ], inst)
	}
	return out
}

// sortedZones returns the sorted union of zones across all tiers
func sortedZones(byTier map[types.Tier]zoneMembers) []string {
	seen := make(map[string]bool)
	var zones []string
	for _, spec := range tiers {
		for az := range byTier[spec.tier] {
			if !seen[az] {
				seen[az] = true
				zones = append(zones, az)
			}
		}
	}
	sort.Strings(zones)
	return zones
}

// Build lays out a classification as a directed graph. It never fails: an
// empty classification yields an empty graph, a tier without a load
// balancer is drawn without its root.
func Build(layout Layout, c Classification) types.Graph {
	byTier := partition(c.Instances)
	zones := sortedZones(byTier)
	centerX := layout.centerX(len(zones))

	var (
		lbNodes   []types.Node
		tierNodes []types.Node
	)
	edges := make([]types.Edge, 0)

	// IDs of the previous tier's instances, fanned in to this tier's balancer
	var upstream []string
	lbY := 0.0

	for _, spec := range tiers {
		members := byTier[spec.tier]
		height := layout.GroupHeight(members.largest())
		groupY := lbY + layout.BalancerToGroup
		instanceY := groupY + layout.GroupToInstance

		lb, hasLB := c.LoadBalancer(spec.role)
		if hasLB {
			lbNodes = append(lbNodes, types.LoadBalancerNode{
				ID:       spec.lbID,
				ARN:      lb.ARN,
				Label:    spec.lbLabel,
				DNSName:  lb.DNSName,
				Role:     lb.Role,
				State:    lb.State,
				Position: types.Position{X: centerX, Y: lbY},
			})
			for _, id := range upstream {
				edges = append(edges, types.Edge{Source: id, Target: spec.lbID})
			}
		}

		var groupEdges, memberEdges []types.Edge
		var tierInstances []string

		for i, az := range zones {
			groupID := spec.groupPrefix + az
			colX := layout.columnX(i)
			zoneInstances := members[az]

			ids := make([]string, 0, len(zoneInstances))
			nodes := make([]types.Node, 0, len(zoneInstances))
			for k, inst := range zoneInstances {
				x, y := layout.instancePosition(colX, instanceY, k)
				nodes = append(nodes, types.InstanceNode{
					ID:         inst.ID,
					InstanceID: inst.ID,
					Tier:       spec.tier,
					Label:      inst.Name,
					State:      inst.State,
					Status:     inst.IsRunning(),
					PublicIP:   inst.PublicIP,
					PrivateIP:  inst.PrivateIP,
					Type:       inst.InstanceType,
					AZ:         az,
					Position:   types.Position{X: x, Y: y},
				})
				ids = append(ids, inst.ID)
				memberEdges = append(memberEdges, types.Edge{Source: groupID, Target: inst.ID})
			}

			tierNodes = append(tierNodes, types.ZoneGroupNode{
				ID:       groupID,
				Label:    spec.groupLabel + " " + az,
				AZ:       az,
				Tier:     spec.tier,
				Members:  ids,
				Height:   height,
				Position: types.Position{X: colX, Y: groupY},
			})
			tierNodes = append(tierNodes, nodes...)
			tierInstances = append(tierInstances, ids...)

			if hasLB {
				groupEdges = append(groupEdges, types.Edge{Source: spec.lbID, Target: groupID})
			}
		}

		edges = append(edges, groupEdges...)
		edges = append(edges, memberEdges...)

		upstream = tierInstances
		lbY = instanceY + height + layout.GroupSpacing
	}

	nodes := make([]types.Node, 0, len(lbNodes)+len(tierNodes))
	nodes = append(nodes, lbNodes...)
	nodes = append(nodes, tierNodes...)

	return types.Graph{Nodes: nodes, Edges: edges}
}
