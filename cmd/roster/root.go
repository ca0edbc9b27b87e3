package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/client"
	"github.com/noah-isme/sma-roster/pkg/config"
	"github.com/noah-isme/sma-roster/pkg/logger"
)

type rootOptions struct {
	endpoint string
	token    string
	timeout  time.Duration
	logFile  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "roster",
		Short:        "Browse and maintain the student roster",
		SilenceUsage: true,
		Long: `roster talks to the student endpoint. Run "roster tui" for the interactive screen,
or use list and delete for one-shot operations.`,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opts.endpoint, "endpoint", "", "student endpoint URL (default $ROSTER_ENDPOINT)")
	fs.StringVar(&opts.token, "token", "", "bearer token sent with every request (default $ROSTER_TOKEN)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "per request timeout, 0 for none (default $ROSTER_TIMEOUT)")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file (default $LOG_FILE, none when empty)")

	cmd.AddCommand(newTUICmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	return cmd
}

// session is what every subcommand needs: merged config, a logger that stays off the
// terminal, and the endpoint client.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *client.Client
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.endpoint != "" {
		cfg.Client.Endpoint = o.endpoint
	}
	if o.token != "" {
		cfg.Client.Token = o.token
	}
	if o.timeout > 0 {
		cfg.Client.Timeout = o.timeout
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	return cfg, nil
}

func (o *rootOptions) open() (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logr, err := logger.NewForTerminal(cfg)
	if err != nil {
		return nil, err
	}
	cl, err := client.New(client.Options{
		Endpoint: cfg.Client.Endpoint,
		Token:    cfg.Client.Token,
		Timeout:  cfg.Client.Timeout,
		Logger:   logr,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logr, client: cl}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
