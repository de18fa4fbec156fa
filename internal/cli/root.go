// Package cli implements the rfqctl command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

var configPath string

// newService builds the pipeline for commands that need the language model or the mailer.
// Tests replace it.
var newService = func(ctx context.Context, cfg *config.Config, opts app.Options) (rfq.Service, error) {
	pipeline, err := app.New(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	return pipeline.Service, nil
}

var rootCmd = &cobra.Command{
	Use:   "rfqctl",
	Short: "Extract RFQ fields from documents and draft Requests for Quote",
	Long: `rfqctl runs the RFQ pipeline from the command line.

  rfqctl text request.pdf          print the document text
  rfqctl extract request.docx      ask the model for the RFQ fields
  rfqctl render fields.json        render rfq_draft.txt without sending
  rfqctl send fields.json          render and email the draft to the reviewer
  rfqctl mcp serve                 expose the pipeline as MCP tools`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig logs to stderr so command output on stdout stays clean.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger_i.InitWithWriter(cfg.Log, cmd.ErrOrStderr())
	return cfg, nil
}

func buildService(cmd *cobra.Command, opts app.Options) (rfq.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		if !opts.SendMail {
			cfg.Delivery.DryRun = true
			err = cfg.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return newService(cmd.Context(), cfg, opts)
}
