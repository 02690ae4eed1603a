package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/touchstone-ocr/pkg/api"
	"github.com/hazyhaar/touchstone-ocr/pkg/ocr"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries what every subcommand needs after flags are parsed.
type app struct {
	configPath string
	cfg        config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "touchstone-ocr",
		Short: "Recognize and correct scanned bank account numbers",
		Long: `touchstone-ocr reads account numbers printed as 3x3 glyphs of spaces,
underscores and pipes, checks them against the mod-11 checksum and proposes
single-digit corrections for illegible or invalid entries.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			boot := newLogger(cmd.ErrOrStderr(), "info")
			cfg, err := loadConfig(a.configPath, boot)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newServeCmd(a),
		newMCPCmd(a),
		newScanCmd(a),
		newDigitsCmd(),
	)
	return root
}

func (a *app) scanner(correct bool) *ocr.Scanner {
	return ocr.NewScanner(
		ocr.WithCorrection(correct),
		ocr.WithParallelism(a.cfg.Correction.Parallelism),
	)
}

func (a *app) service() *api.Service {
	return api.NewService(a.scanner(a.cfg.Correction.Enabled), api.Config{
		MaxBatch: a.cfg.MaxBatch,
		Workers:  a.cfg.Workers,
		Logger:   a.logger,
	})
}

func newDigitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digits ACCOUNT",
		Short: "Print the scanned form of a 9-character account number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := ocr.ParseAccountNumber(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), ocr.Render(account))
			return err
		},
	}
}
