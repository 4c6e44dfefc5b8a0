package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vietdv277/skymap/pkg/types"
)

var instanceColumns = []Column{
	{"AZ", 16},
	{"Instance ID", 20},
	{"Name", 26},
	{"State", 15},
	{"Type", 11},
	{"Private IP", 15},
	{"Public IP", 15},
}

// tierView is one tier of a graph regrouped for display
type tierView struct {
	tier     types.Tier
	balancer *types.LoadBalancerNode
	groups   []types.ZoneGroupNode
}

var tierOrder = []types.Tier{types.TierWeb, types.TierApp}

// splitTiers walks the graph once and regroups nodes by tier
func splitTiers(g types.Graph) ([]tierView, map[string]types.InstanceNode) {
	views := make(map[types.Tier]*tierView, len(tierOrder))
	for _, tier := range tierOrder {
		views[tier] = &tierView{tier: tier}
	}
	instances := make(map[string]types.InstanceNode)

	for _, node := range g.Nodes {
		switch n := node.(type) {
		case types.LoadBalancerNode:
			if v, ok := views[n.Role.Tier()]; ok {
				lb := n
				v.balancer = &lb
			}
		case types.ZoneGroupNode:
			if v, ok := views[n.Tier]; ok {
				v.groups = append(v.groups, n)
			}
		case types.InstanceNode:
			instances[n.ID] = n
		}
	}

	out := make([]tierView, 0, len(tierOrder))
	for _, tier := range tierOrder {
		v := views[tier]
		if v.balancer == nil && len(v.groups) == 0 {
			continue
		}
		out = append(out, *v)
	}
	return out, instances
}

func tierTitle(tier types.Tier) string {
	if tier == types.TierApp {
		return "WAS TIER"
	}
	return "WEB TIER"
}

// renderTier draws a tier heading, its load balancer and an instance table
func renderTier(v tierView, instances map[string]types.InstanceNode) string {
	var sb strings.Builder

	sb.WriteString(tierStyle(v.tier).Render(tierTitle(v.tier)))
	sb.WriteString("\n")

	if v.balancer != nil {
		lb := v.balancer
		sb.WriteString("  ")
		sb.WriteString(NameStyle.Render(lb.Label))
		sb.WriteString("  ")
		sb.WriteString(balancerStyle(lb.State).Render("● " + lb.State))
		sb.WriteString("  ")
		sb.WriteString(MutedStyle.Render(lb.DNSName))
		sb.WriteString("\n")
	} else {
		sb.WriteString(MutedStyle.Render("  no load balancer"))
		sb.WriteString("\n")
	}

	var rows [][]Cell
	for _, group := range v.groups {
		if len(group.Members) == 0 {
			rows = append(rows, []Cell{
				{group.AZ, AZStyle},
				{"-", MutedStyle},
				{"(no instances)", MutedStyle},
			})
			continue
		}
		for _, id := range group.Members {
			inst, ok := instances[id]
			if !ok {
				continue
			}
			rows = append(rows, []Cell{
				{inst.AZ, AZStyle},
				{inst.InstanceID, IDStyle},
				{inst.Label, NameStyle},
				{stateIndicator(inst.State) + " " + string(inst.State), InstanceStateStyle(inst.State)},
				{inst.Type, MutedStyle},
				{inst.PrivateIP, IPStyle},
				{inst.PublicIP, IPStyle},
			})
		}
	}

	if len(rows) > 0 {
		sb.WriteString(RenderTable(instanceColumns, rows))
	}
	return sb.String()
}

// summary returns the one-line node count
func summary(g types.Graph) string {
	counts := g.CountByKind()
	return fmt.Sprintf("%d load balancers, %d zone groups, %d instances, %d edges",
		counts[types.NodeKindLoadBalancer],
		counts[types.NodeKindZoneGroup],
		counts[types.NodeKindInstance],
		len(g.Edges),
	)
}

// RenderTopology draws every tier of a graph, top to bottom
func RenderTopology(g types.Graph) string {
	if g.IsEmpty() {
		return MutedStyle.Render("No WEB/WAS instances or load balancers found in this VPC.") + "\n"
	}

	views, instances := splitTiers(g)
	parts := make([]string, 0, len(views))
	for _, v := range views {
		parts = append(parts, renderTier(v, instances))
	}
	return strings.Join(parts, "\n")
}

// PrintTopologyTable prints a poll result as styled tables
func PrintTopologyTable(w io.Writer, result types.PollResult) {
	fmt.Fprintf(w, "%s %s  %s\n\n",
		HeaderStyle.Render("VPC"),
		IDStyle.Render(result.VPCID),
		MutedStyle.Render("fetched "+result.FetchedAt.Local().Format(time.DateTime)),
	)
	fmt.Fprint(w, RenderTopology(result.Graph))
	fmt.Fprintf(w, "\n  %s\n", summary(result.Graph))
}
