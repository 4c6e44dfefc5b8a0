package ui

import (
	"fmt"
	"io"

	"github.com/vietdv277/skymap/pkg/types"
)

var vpcColumns = []Column{
	{"ID", 24},
	{"Name", 30},
	{"CIDR", 18},
	{"State", 12},
	{"Default", 8},
}

// PrintVPCTable prints VPCs in a styled box table. The saved default VPC,
// if any, is marked with an asterisk.
func PrintVPCTable(w io.Writer, vpcs []types.VPC, current string) {
	rows := make([][]Cell, 0, len(vpcs))
	for _, vpc := range vpcs {
		id := vpc.ID
		if id == current {
			id = "* " + id
		}

		stateStyle := PendingStyle
		indicator := "○"
		if vpc.State == "available" {
			stateStyle = RunningStyle
			indicator = "●"
		}

		rows = append(rows, []Cell{
			{id, IDStyle},
			{vpc.Name, NameStyle},
			{vpc.CIDR, IPStyle},
			{indicator + " " + vpc.State, stateStyle},
			{formatBool(vpc.IsDefault), MutedStyle},
		})
	}

	fmt.Fprint(w, RenderTable(vpcColumns, rows))
	fmt.Fprintf(w, "  %d VPCs\n", len(vpcs))
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
