package cmd

import (
	"github.com/dendrascience/qiimewb/qiime"
	"github.com/spf13/cobra"
)

// NewSummarizeCmd creates the summarize subcommand wrapping
// `biom summarize-table`.
func NewSummarizeCmd() *cobra.Command {
	var (
		dir    string
		dryRun bool
		s      qiime.SummarizeTable
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize an OTU table with biom summarize-table",
		Long: `Summarize per-sample sequence counts of a BIOM table.

The minimum count across samples is the usual choice for the sampling depth
passed to "qiimewb diversity --depth".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := enterSession(cfg, dir); err != nil {
				return err
			}
			return runTool(cmd.Context(), newRunner(cmd, cfg, dryRun), s)
		},
	}

	cmd.Flags().StringVarP(&s.Table, "input", "i", "otus/otu_table_mc2_w_tax_no_pynast_failures.biom", "BIOM table to summarize")
	cmd.Flags().StringVarP(&s.Output, "output", "o", "", "Write the summary to this file instead of stdout")
	cmd.Flags().BoolVar(&s.Qualitative, "qualitative", false, "Count unique OTUs per sample instead of sequences")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	addWorkdirFlag(cmd, &dir)

	return cmd
}
