package cmd

import (
	"github.com/dendrascience/qiimewb/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the qiimewb CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qiimewb",
		Short: "qiimewb - run the QIIME amplicon tutorial in a private working directory",
		Long: `qiimewb walks through the QIIME microbiome amplicon tutorial on a shared machine.

Every run works inside its own randomly named session directory, so several
users can follow the tutorial at the same time without touching each other's
files. Datasets are downloaded and unpacked into the session, and the QIIME
scripts are invoked there with the documented flags.

Use subcommands to perform different operations:
  - session: allocate, list and inspect session directories
  - fetch: download and unpack tutorial datasets
  - otus, summarize, diversity, exclude: run one QIIME step
  - tutorial: run the whole workflow in order
  - inventory: count what a session directory holds`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to the qiimewb config file (default $XDG_CONFIG_HOME/qiimewb/config.yaml)")

	groupSession := "session"
	groupAnalysis := "analysis"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{ID: groupSession, Title: "Session and Data"})
	rootCmd.AddGroup(&cobra.Group{ID: groupAnalysis, Title: "QIIME Analysis"})
	rootCmd.AddGroup(&cobra.Group{ID: groupUtilities, Title: "Utility Commands"})

	for _, c := range []*cobra.Command{NewSessionCmd(), NewDatasetsCmd(), NewFetchCmd()} {
		c.GroupID = groupSession
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewOTUsCmd(), NewSummarizeCmd(), NewDiversityCmd(), NewExcludeCmd(), NewTutorialCmd()} {
		c.GroupID = groupAnalysis
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewInventoryCmd(), NewQiimeConfigCmd()} {
		c.GroupID = groupUtilities
		rootCmd.AddCommand(c)
	}

	return rootCmd
}
