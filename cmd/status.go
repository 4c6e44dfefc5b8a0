package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/skymap/internal/config"
	"github.com/vietdv277/skymap/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings and authentication status",
	Long: `Display the resolved profile, region and default VPC, and verify that
the credentials work.

Examples:
  skymap status
  skymap status -p prod`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	client, err := newAWSClient(cmd.Context())
	if err != nil {
		return err
	}

	profile := client.Profile()
	if profile == "" {
		profile = ui.MutedStyle.Render("(default)")
	}
	fmt.Printf("Profile:  %s\n", profile)
	fmt.Printf("Region:   %s\n", client.Region())

	vpc := viper.GetString(keyVPCID)
	if vpc == "" {
		vpc = ui.MutedStyle.Render("(not set)")
	} else {
		vpc = ui.IDStyle.Render(vpc)
	}
	fmt.Printf("VPC:      %s\n", vpc)
	fmt.Printf("Config:   %s\n", ui.MutedStyle.Render(config.GetConfigPath()))
	fmt.Println()

	fmt.Print("Auth:     ")
	identity, err := client.GetCallerIdentity(cmd.Context())
	if err != nil {
		fmt.Println(ui.StoppedStyle.Render("✗ Not authenticated"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		if p := GetProfile(); p != "" {
			fmt.Println()
			fmt.Println("To authenticate:")
			fmt.Printf("  aws sso login --profile %s\n", p)
		}
		return nil
	}

	fmt.Println(ui.RunningStyle.Render("✓ Authenticated"))
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}
	return nil
}
