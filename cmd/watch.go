package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vietdv277/skymap/internal/logging"
	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [vpc-id]",
	Short: "Show the live topology of a VPC",
	Long: `Poll a VPC every 10 seconds and redraw its WEB/WAS topology.
If no VPC ID is given, the saved default is used, then an interactive
selector. Logs are only written when --log-file is set.

Keys:
  r    poll now
  q    quit

Examples:
  skymap watch                                  # Saved VPC or selector
  skymap watch vpc-0abc123 --log-file skymap.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	vpcID, err := resolveVPC(ctx, client, args, true)
	if err != nil {
		if errors.Is(err, ui.ErrSelectionCancelled) {
			return nil
		}
		return err
	}

	pub := &ui.ProgramPublisher{}
	logReporter := logging.NewReporter(nil)
	reporter := poller.ReporterFunc(func(context string, err error) {
		logReporter.ReportError(context, err)
		pub.ReportError(context, err)
	})

	sched := poller.New(client, pub, reporter, pollerConfig())
	model := ui.NewTopologyModel(vpcID, sched)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	pub.Program = p

	if err := sched.Configure(withLogger(ctx), vpcID); err != nil {
		return err
	}
	defer sched.Stop()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running topology view: %w", err)
	}
	return nil
}
