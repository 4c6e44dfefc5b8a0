package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/skymap/internal/config"
)

var useClear bool

var useCmd = &cobra.Command{
	Use:   "use <vpc-id>",
	Short: "Save the default VPC",
	Long: `Save the VPC that watch, snapshot and serve use when no VPC ID is given.

Examples:
  skymap use vpc-0abc123    # Save the default VPC
  skymap use --clear        # Forget it`,
	Args: func(cmd *cobra.Command, args []string) error {
		if useClear {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.Flags().BoolVar(&useClear, "clear", false, "clear the saved VPC")
}

func runUse(cmd *cobra.Command, args []string) error {
	if useClear {
		if err := config.SetVPC(""); err != nil {
			return fmt.Errorf("failed to clear default VPC: %w", err)
		}
		fmt.Println("Default VPC cleared")
		return nil
	}

	vpcID := args[0]
	if err := config.SetVPC(vpcID); err != nil {
		return fmt.Errorf("failed to save default VPC: %w", err)
	}

	fmt.Printf("Default VPC: %s\n", vpcID)
	fmt.Printf("  Saved to %s\n", config.GetConfigPath())
	return nil
}
