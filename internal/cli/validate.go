package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/pipeline"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			// Create a silent logger for validation (discards output)
			log := logger.NewConsoleLogger(io.Discard)

			p, err := pipeline.New(cfg, log)
			if err != nil {
				return fmt.Errorf("pipeline configuration error: %w", err)
			}

			fmt.Printf("Configuration valid:\n")
			fmt.Printf("  Batch size:     %d\n", cfg.Parser.BatchSize)
			fmt.Printf("  Threshold:      %d MiB\n", cfg.Parser.FullBufferThresholdMB)
			fmt.Printf("  On malformed:   %s\n", cfg.Parser.OnMalformed)
			fmt.Printf("  Strict:         %t\n", cfg.Parser.Strict)
			fmt.Printf("  Emitters:       %d enabled\n", p.EmitterCount())
			return nil
		},
	}
}
