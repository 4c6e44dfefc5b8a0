package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/skymap/internal/logging"
	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/internal/server"
	"github.com/vietdv277/skymap/pkg/types"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [vpc-id]",
	Short: "Serve the topology over HTTP",
	Long: `Start the HTTP API. If a VPC ID is given, or a default VPC is saved,
polling starts immediately; otherwise use PUT /api/network.

Routes:
  GET    /api/instances?vpcId=      raw instances of a VPC
  GET    /api/loadbalancers?vpcId=  classified load balancers of a VPC
  GET    /api/topology              last published topology
  PUT    /api/network               {"vpcId": "..."} start polling
  DELETE /api/network               stop polling
  POST   /api/refresh               poll now
  GET    /healthz
  GET    /metrics

Examples:
  skymap serve vpc-0abc123
  skymap serve --addr 127.0.0.1:9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := withLogger(cmd.Context())

	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	cfg := pollerConfig()
	reporter := logging.NewReporter(nil)
	publisher := poller.PublisherFunc(func(result types.PollResult) {
		counts := result.CountByKind()
		log.Info().
			Str("vpc_id", result.VPCID).
			Int("load_balancers", counts[types.NodeKindLoadBalancer]).
			Int("instances", counts[types.NodeKindInstance]).
			Msg("topology published")
	})

	sched := poller.New(client, publisher, reporter, cfg)
	defer sched.Stop()

	vpcID := viper.GetString(keyVPCID)
	if len(args) > 0 {
		vpcID = args[0]
	}
	if vpcID != "" {
		if err := sched.Configure(ctx, vpcID); err != nil {
			return err
		}
	}

	srv := server.New(ctx, client, sched, cfg, reporter)

	log.Info().Str("addr", serveAddr).Str("region", client.Region()).Msg("serving")
	return srv.Run(ctx, serveAddr)
}
