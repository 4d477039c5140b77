package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/pipeline"
)

// NewParseCmd creates the parse command.
func NewParseCmd(cfgFile, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse one or more IIS log files (use - for stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, cfgFile, logLevel)
		},
	}

	// Parser flags
	cmd.Flags().Int("batch-size", 0, "records per batch in bounded mode")
	cmd.Flags().Int("threshold-mb", -1, "file size in MiB below which a file is read in one pass")
	cmd.Flags().Bool("strict", false, "report data lines that precede any #Fields: directive")
	cmd.Flags().String("on-malformed", "", "malformed line policy (abort, skip)")

	// Emitter flags
	cmd.Flags().String("stdout-format", "", "stdout output format (json, text, w3c)")
	cmd.Flags().Bool("no-stdout", false, "disable the stdout emitter")
	cmd.Flags().String("output", "", "also write JSON lines to this rotating file")

	return cmd
}

func runParse(cmd *cobra.Command, paths []string, cfgFile, logLevel *string) error {
	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyCLIOverrides(cmd, cfg)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log := SetupLogging(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summaries, err := p.Run(ctx, paths...)

	total := 0
	for _, s := range summaries {
		total += s.Events
	}
	log.Infof("done: files=%d, parsed=%d, events=%d", len(paths), len(summaries), total)

	if errors.Is(err, context.Canceled) {
		log.Info("parse interrupted")
	}
	return err
}

func applyCLIOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("batch-size"); v > 0 {
		cfg.Parser.BatchSize = v
	}
	if v, _ := cmd.Flags().GetInt("threshold-mb"); v >= 0 {
		cfg.Parser.FullBufferThresholdMB = v
	}
	if v, _ := cmd.Flags().GetBool("strict"); v {
		cfg.Parser.Strict = true
	}
	if v, _ := cmd.Flags().GetString("on-malformed"); v != "" {
		cfg.Parser.OnMalformed = v
	}
	if v, _ := cmd.Flags().GetString("stdout-format"); v != "" {
		cfg.Emitters.Stdout.Format = v
	}
	if v, _ := cmd.Flags().GetBool("no-stdout"); v {
		cfg.Emitters.Stdout.Enabled = false
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Emitters.File.Enabled = true
		cfg.Emitters.File.Path = v
	}
}
