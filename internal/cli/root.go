package cli

import (
	"github.com/spf13/cobra"
)

// Execute builds and runs the CLI.
func Execute() error {
	var (
		cfgFile  string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "iislog",
		Short: "Parse IIS W3C extended log files into typed records",
		Long: `iislog reads W3C extended log format files as written by IIS and turns
every data line into a typed record, following the #Fields: directives
declared in the file.

Files below the full-buffer threshold are parsed in a single pass. Larger
files, and standard input, are parsed in bounded batches so memory use stays
flat regardless of file size.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./iislog.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		NewParseCmd(&cfgFile, &logLevel),
		NewValidateCmd(&cfgFile),
		NewVersionCmd(),
	)

	return rootCmd.Execute()
}
