package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/skymap/internal/aws"
	"github.com/vietdv277/skymap/internal/ui"
)

var vpcCmd = &cobra.Command{
	Use:   "vpc",
	Short: "Inspect VPCs",
}

var vpcLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all VPCs",
	Long: `List all VPCs with their CIDR, state, name, and default flag.
The saved default VPC is marked with an asterisk.

Examples:
  skymap vpc ls              # List all VPCs
  skymap vpc ls -p prod      # List VPCs using production profile`,
	RunE: runVPCList,
}

func init() {
	rootCmd.AddCommand(vpcCmd)
	vpcCmd.AddCommand(vpcLsCmd)
}

func runVPCList(cmd *cobra.Command, args []string) error {
	client, err := newAWSClient(cmd.Context())
	if err != nil {
		return err
	}

	vpcs, err := client.ListVPCs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list VPCs: %w", err)
	}

	if len(vpcs) == 0 {
		fmt.Println("No VPCs found")
		return nil
	}

	ui.PrintVPCTable(os.Stdout, vpcs, viper.GetString(keyVPCID))
	return nil
}

// resolveVPC picks the VPC to poll: the argument, then the saved default,
// then, if interactive, the VPC picker
func resolveVPC(ctx context.Context, client *aws.Client, args []string, interactive bool) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if saved := viper.GetString(keyVPCID); saved != "" {
		return saved, nil
	}
	if !interactive {
		return "", fmt.Errorf("no VPC given: pass a VPC ID or save one with 'skymap use <vpc-id>'")
	}

	vpcs, err := client.ListVPCs(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list VPCs: %w", err)
	}

	selected, err := ui.SelectVPC(vpcs)
	if err != nil {
		return "", err
	}
	if selected == nil {
		return "", ui.ErrSelectionCancelled
	}
	return selected.ID, nil
}
