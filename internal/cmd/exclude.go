package cmd

import (
	"strconv"

	"github.com/dendrascience/qiimewb/qiime"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/spf13/cobra"
)

// NewExcludeCmd creates the exclude subcommand wrapping
// exclude_seqs_by_blast.py.
func NewExcludeCmd() *cobra.Command {
	var (
		dir    string
		dryRun bool
		e      qiime.ExcludeSeqsByBlast
	)

	cmd := &cobra.Command{
		Use:   "exclude",
		Short: "Screen out contaminant sequences with exclude_seqs_by_blast.py",
		Long: `Search query sequences against a subject database with BLAST and split them
into matching and non-matching sets, e.g. to remove human reads before
submitting data.

Four files are written to the output directory: matching.fna,
non-matching.fna, raw_blast_results.txt and sequence_exclusion.log.

The subject database path must not contain spaces; formatdb cannot handle
them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectZeroFlags(cmd, e.Name(), "e-value", "percent-aligned", "max-hits", "word-size"); err != nil {
				return err
			}
			if _, err := e.Args(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := enterSession(cfg, dir); err != nil {
				return err
			}
			if e.NoFormatDB && !dryRun {
				if err := qiime.CheckFormattedDB(e.SubjectDB); err != nil {
					return err
				}
			}
			if err := runTool(cmd.Context(), newRunner(cmd, cfg, dryRun), e); err != nil {
				return err
			}
			if !dryRun {
				out := e.OutputFiles()
				ui.Info("matching sequences: %s", out.Matching)
				ui.Info("non-matching sequences: %s", out.NonMatching)
				ui.Info("raw BLAST results: %s", out.RawResults)
				ui.Info("log: %s", out.Log)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&e.QueryDB, "querydb", "i", "", "FASTA file of query sequences (required)")
	cmd.Flags().StringVarP(&e.SubjectDB, "subjectdb", "d", "", "FASTA file to BLAST against (required)")
	cmd.Flags().StringVarP(&e.OutputDir, "output", "o", "exclude_seqs", "Output directory")
	cmd.Flags().Float64VarP(&e.EValue, "e-value", "e", qiime.DefaultEValue, "E-value cutoff for BLAST queries")
	cmd.Flags().Float64VarP(&e.PercentAligned, "percent-aligned", "p", qiime.DefaultPercentAligned, "Alignment fraction cutoff for BLAST queries")
	cmd.Flags().IntVarP(&e.MaxHits, "max-hits", "m", qiime.DefaultMaxHits, "Max hits parameter for BLAST")
	cmd.Flags().IntVar(&e.WordSize, "word-size", qiime.DefaultWordSize, "Word size for the BLAST search")
	cmd.Flags().BoolVar(&e.NoClean, "no-clean", false, "Keep the files generated by formatdb")
	cmd.Flags().BoolVarP(&e.NoFormatDB, "no-format-db", "n", false, "Use an already formatted subject database")
	cmd.Flags().StringVar(&e.BlastMatRoot, "blastmatroot", "", "Directory containing BLAST matrices")
	cmd.Flags().StringVar(&e.WorkingDir, "blast-working-dir", "", "Working directory for BLAST")
	cmd.Flags().BoolVarP(&e.Verbose, "verbose", "v", false, "Print BLAST progress")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	addWorkdirFlag(cmd, &dir)
	cmd.MarkFlagRequired("querydb")
	cmd.MarkFlagRequired("subjectdb")

	return cmd
}

// rejectZeroFlags fails for numeric flags explicitly set to zero, since the
// builders read zero as the default.
func rejectZeroFlags(cmd *cobra.Command, tool string, names ...string) error {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if v, err := strconv.ParseFloat(f.Value.String(), 64); err == nil && v == 0 {
			return &qiime.ParamError{Tool: tool, Param: name, Reason: "must be greater than zero"}
		}
	}
	return nil
}
