package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietdv277/skymap/internal/logging"
	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/internal/topology"
	"github.com/vietdv277/skymap/internal/ui"
	"github.com/vietdv277/skymap/pkg/types"
)

var lbCmd = &cobra.Command{
	Use:   "lb",
	Short: "Inspect load balancers",
}

var lbLsCmd = &cobra.Command{
	Use:   "ls [vpc-id]",
	Short: "List the load balancers of a VPC and their tier",
	Long: `List every load balancer of a VPC with the tier its Name tag maps to,
and whether it is the one drawn in the topology. Use this to find out why a
tier has no load balancer.

Examples:
  skymap lb ls vpc-0abc123
  skymap lb ls --web-lb-name PROD-WEB-ALB`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLBList,
}

func init() {
	rootCmd.AddCommand(lbCmd)
	lbCmd.AddCommand(lbLsCmd)
}

func runLBList(cmd *cobra.Command, args []string) error {
	ctx := withLogger(cmd.Context())

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	vpcID, err := resolveVPC(ctx, client, args, false)
	if err != nil {
		return err
	}

	lbs, err := poller.FetchLoadBalancers(ctx, client, vpcID, logging.NewReporter(nil))
	if err != nil {
		return err
	}

	if len(lbs) == 0 {
		fmt.Printf("No load balancers found in %s\n", vpcID)
		return nil
	}

	ui.PrintLoadBalancerTable(os.Stdout, loadBalancerRows(pollerConfig().Rules, lbs))
	return nil
}

// loadBalancerRows classifies every balancer, keeping the ones that did
// not make it into the topology
func loadBalancerRows(rules topology.Rules, lbs []types.RawLoadBalancer) []ui.LoadBalancerRow {
	used := make(map[string]bool)
	for _, lb := range topology.Classify(rules, nil, lbs).LoadBalancers {
		used[lb.ARN] = true
	}

	rows := make([]ui.LoadBalancerRow, 0, len(lbs))
	for _, lb := range lbs {
		rows = append(rows, ui.LoadBalancerRow{
			ClassifiedLoadBalancer: types.ClassifiedLoadBalancer{
				RawLoadBalancer: lb,
				Role:            rules.LoadBalancerRole(lb),
				Name:            lb.Tags.Name(),
			},
			InTopology: used[lb.ARN],
		})
	}
	return rows
}
