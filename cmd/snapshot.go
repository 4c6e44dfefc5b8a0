package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/skymap/internal/logging"
	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/internal/ui"
	"github.com/vietdv277/skymap/pkg/types"
)

var snapshotOutput string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [vpc-id]",
	Short: "Poll a VPC once and print its topology",
	Long: `Run a single poll cycle and print the result. Without a VPC ID the
saved default is used.

Examples:
  skymap snapshot vpc-0abc123            # Box tables
  skymap snapshot vpc-0abc123 -o json    # Nodes with positions and edges
  skymap snapshot -o yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "table", "output format: table, json, yaml")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	vpcID, err := resolveVPC(ctx, client, args, false)
	if err != nil {
		return err
	}

	cfg := pollerConfig()
	if cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CycleTimeout)
		defer cancel()
	}

	result, err := poller.Poll(withLogger(ctx), client, cfg, vpcID, logging.NewReporter(nil))
	if err != nil {
		return err
	}

	return writeSnapshot(os.Stdout, snapshotOutput, result)
}

func writeSnapshot(w io.Writer, format string, result types.PollResult) error {
	switch format {
	case "table", "":
		ui.PrintTopologyTable(w, result)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (supported: table, json, yaml)", format)
	}
}
