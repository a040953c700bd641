package cmd

import (
	"context"

	"github.com/dendrascience/qiimewb/qiime"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/spf13/cobra"
)

// runTool runs one QIIME command and reports suppressed warnings.
func runTool(ctx context.Context, r *qiime.Runner, c qiime.Command) error {
	res, err := r.Run(ctx, c)
	if err != nil {
		return err
	}
	if r.DryRun {
		return nil
	}
	if res.SuppressedWarnings > 0 {
		ui.Warn("%s: %d expected warnings hidden", c.Name(), res.SuppressedWarnings)
	}
	ui.Success("%s finished", c.Name())
	return nil
}

// NewOTUsCmd creates the otus subcommand wrapping pick_open_reference_otus.py.
func NewOTUsCmd() *cobra.Command {
	var (
		dir    string
		dryRun bool
		p      qiime.PickOpenReferenceOTUs
	)

	cmd := &cobra.Command{
		Use:   "otus",
		Short: "Pick OTUs with pick_open_reference_otus.py",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := p.Args(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := enterSession(cfg, dir); err != nil {
				return err
			}
			return runTool(cmd.Context(), newRunner(cmd, cfg, dryRun), p)
		},
	}

	cmd.Flags().StringVarP(&p.Input, "input", "i", "", "Demultiplexed sequences in FASTA format (required)")
	cmd.Flags().StringVarP(&p.Output, "output", "o", "otus", "Output directory")
	cmd.Flags().StringVarP(&p.Reference, "reference", "r", "", "Reference sequences (default: QIIME's configured reference)")
	cmd.Flags().StringVarP(&p.ParamsFile, "params", "p", "", "QIIME parameters file")
	cmd.Flags().StringVarP(&p.Method, "method", "m", "", "OTU picking method: uclust, usearch61 or sortmerna_sumaclust")
	cmd.Flags().BoolVarP(&p.Parallel, "parallel", "a", false, "Run in parallel where possible")
	cmd.Flags().IntVarP(&p.JobsToStart, "jobs", "O", 0, "Number of jobs to start with --parallel")
	cmd.Flags().BoolVar(&p.SuppressTaxonomy, "suppress-taxonomy", false, "Skip taxonomy assignment")
	cmd.Flags().BoolVarP(&p.Force, "force", "f", false, "Overwrite an existing output directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	addWorkdirFlag(cmd, &dir)
	cmd.MarkFlagRequired("input")

	return cmd
}
