package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/skymap/internal/aws"
	"github.com/vietdv277/skymap/internal/config"
	"github.com/vietdv277/skymap/internal/logging"
	"github.com/vietdv277/skymap/internal/poller"
)

// viper keys
const (
	keyProfile   = "profile"
	keyRegion    = "region"
	keyVPCID     = "vpc_id"
	keyWebLBName = "web_lb_name"
	keyAppLBName = "app_lb_name"
	keyLogLevel  = "log_level"
	keyLogFile   = "log_file"
)

var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "skymap",
	Short: "skymap - live two-tier topology of an AWS VPC",
	Long: `skymap polls the EC2 instances and ELBv2 load balancers of a VPC and draws
the WEB/WAS topology: each tier's load balancer, one group per availability
zone, and the instances inside.

Examples:
  skymap watch vpc-0abc123       # Live topology in the terminal
  skymap snapshot vpc-0abc123    # Print the topology once
  skymap serve --addr :8080      # HTTP API
  skymap vpc ls                  # Find a VPC ID
  skymap use vpc-0abc123         # Save the default VPC`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region to use (default "+aws.DefaultRegion+")")
	flags.String("log-level", "", "log level: error, warn, info, debug, trace")
	flags.String("log-file", "", "append logs to this file")
	flags.String("web-lb-name", "", "Name tag of the WEB tier load balancer")
	flags.String("app-lb-name", "", "Name tag of the WAS tier load balancer")

	_ = viper.BindPFlag(keyProfile, flags.Lookup("profile"))
	_ = viper.BindPFlag(keyRegion, flags.Lookup("region"))
	_ = viper.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(keyLogFile, flags.Lookup("log-file"))
	_ = viper.BindPFlag(keyWebLBName, flags.Lookup("web-lb-name"))
	_ = viper.BindPFlag(keyAppLBName, flags.Lookup("app-lb-name"))
}

// initConfig layers flag > SKYMAP_* env > AWS_REGION/AWS_DEFAULT_REGION
// (region only) > config file > built-in default
func initConfig() {
	viper.SetEnvPrefix("SKYMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv(keyRegion, "SKYMAP_REGION", "AWS_REGION", "AWS_DEFAULT_REGION")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg = &config.Config{}
	}

	viper.SetDefault(keyProfile, cfg.Profile)
	viper.SetDefault(keyRegion, cfg.Region)
	viper.SetDefault(keyVPCID, cfg.VPCID)
	viper.SetDefault(keyWebLBName, cfg.WebLBName)
	viper.SetDefault(keyAppLBName, cfg.AppLBName)
	viper.SetDefault(keyLogLevel, cfg.LogLevel)
}

// setupLogging configures the global logger. Commands that own the
// terminal never log to it: without --log-file their logs are dropped.
func setupLogging(cmd *cobra.Command, args []string) error {
	opts := logging.Options{Level: viper.GetString(keyLogLevel)}

	switch path := viper.GetString(keyLogFile); {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		opts.Output = f
	case ownsTerminal(cmd):
		opts.Output = io.Discard
	default:
		opts.Output = os.Stderr
		opts.Console = true
	}

	logging.Setup(opts)
	return nil
}

func ownsTerminal(cmd *cobra.Command) bool {
	return cmd.Name() == "watch"
}

// GetProfile returns the resolved AWS profile
func GetProfile() string {
	return viper.GetString(keyProfile)
}

// GetRegion returns the resolved AWS region
func GetRegion() string {
	return viper.GetString(keyRegion)
}

func newAWSClient(ctx context.Context) (*aws.Client, error) {
	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return client, nil
}

// pollerConfig applies the load balancer name overrides to the defaults
func pollerConfig() poller.Config {
	cfg := poller.DefaultConfig()
	if name := viper.GetString(keyWebLBName); name != "" {
		cfg.Rules.WebLoadBalancerName = name
	}
	if name := viper.GetString(keyAppLBName); name != "" {
		cfg.Rules.AppLoadBalancerName = name
	}
	return cfg
}

// withLogger attaches the global logger to ctx for zerolog.Ctx
func withLogger(ctx context.Context) context.Context {
	return log.Logger.WithContext(ctx)
}
