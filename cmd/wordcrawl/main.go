package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordcrawl [config-path]",
		Short: "WordCrawl - parallel web crawler and word counter",
		Long: `WordCrawl crawls the web from a set of start pages, counts the words it
finds and reports the most popular ones, along with profiling data for the run.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Usage: wordcrawl [config-path]")
				return nil
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			return run(cmd.Context(), args[0], verbose, cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
