package cmd

import (
	"github.com/dendrascience/qiimewb/qiime"
	"github.com/spf13/cobra"
)

// NewDiversityCmd creates the diversity subcommand wrapping
// core_diversity_analyses.py.
func NewDiversityCmd() *cobra.Command {
	var (
		dir    string
		dryRun bool
		c      qiime.CoreDiversityAnalyses
	)

	cmd := &cobra.Command{
		Use:   "diversity",
		Short: "Run core_diversity_analyses.py on an OTU table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.NonPhylogenetic && !cmd.Flags().Changed("tree") {
				c.Tree = ""
			}
			if _, err := c.Args(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := enterSession(cfg, dir); err != nil {
				return err
			}
			return runTool(cmd.Context(), newRunner(cmd, cfg, dryRun), c)
		},
	}

	cmd.Flags().StringVarP(&c.Table, "input", "i", "otus/otu_table_mc2_w_tax_no_pynast_failures.biom", "BIOM table")
	cmd.Flags().StringVarP(&c.Output, "output", "o", "cdout", "Output directory")
	cmd.Flags().StringVarP(&c.MappingFile, "mapping", "m", "", "Sample mapping file (required)")
	cmd.Flags().StringVarP(&c.Tree, "tree", "t", "otus/rep_set.tre", "Phylogenetic tree (ignored with --nonphylogenetic unless set)")
	cmd.Flags().IntVarP(&c.SamplingDepth, "depth", "e", 0, "Rarefaction depth (required)")
	cmd.Flags().StringSliceVarP(&c.Categories, "categories", "c", nil, "Metadata categories to compare")
	cmd.Flags().BoolVar(&c.NonPhylogenetic, "nonphylogenetic", false, "Skip phylogenetic metrics")
	cmd.Flags().StringVarP(&c.ParamsFile, "params", "p", "", "QIIME parameters file")
	cmd.Flags().BoolVarP(&c.Parallel, "parallel", "a", false, "Run in parallel where possible")
	cmd.Flags().IntVarP(&c.JobsToStart, "jobs", "O", 0, "Number of jobs to start with --parallel")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	addWorkdirFlag(cmd, &dir)
	cmd.MarkFlagRequired("mapping")
	cmd.MarkFlagRequired("depth")

	return cmd
}
