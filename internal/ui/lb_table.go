package ui

import (
	"fmt"
	"io"

	"github.com/vietdv277/skymap/pkg/types"
)

var lbColumns = []Column{
	{"Name", 28},
	{"Role", 10},
	{"Used", 8},
	{"Type", 12},
	{"Scheme", 16},
	{"State", 16},
	{"DNS Name", 50},
}

// LoadBalancerRow is one balancer of a VPC with its classification
type LoadBalancerRow struct {
	types.ClassifiedLoadBalancer
	// InTopology is false for excluded and shadowed balancers
	InTopology bool
}

// PrintLoadBalancerTable prints the load balancers of a VPC and the role
// each one got
func PrintLoadBalancerTable(w io.Writer, rows []LoadBalancerRow) {
	cells := make([][]Cell, 0, len(rows))
	for _, lb := range rows {
		name := lb.Name
		if name == "" {
			name = "(unnamed)"
		}

		role, roleStyle := "-", MutedStyle
		switch lb.Role.Tier() {
		case types.TierWeb:
			role, roleStyle = "WEB", WebStyle
		case types.TierApp:
			role, roleStyle = "WAS", AppStyle
		}

		used, usedStyle := "No", MutedStyle
		if lb.InTopology {
			used, usedStyle = "Yes", RunningStyle
		}

		cells = append(cells, []Cell{
			{name, NameStyle},
			{role, roleStyle},
			{used, usedStyle},
			{lb.Type, MutedStyle},
			{lb.Scheme, MutedStyle},
			{"● " + lb.State, balancerStyle(lb.State)},
			{lb.DNSName, IPStyle},
		})
	}

	fmt.Fprint(w, RenderTable(lbColumns, cells))
	fmt.Fprintf(w, "  %d load balancers\n", len(rows))
}
