package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dendrascience/qiimewb/qiime"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/spf13/cobra"
)

// Layout of the moving pictures tutorial bundle after extraction.
const (
	tutorialRoot       = "moving_pictures_tutorial-1.9.0"
	tutorialOTUDir     = "otus"
	tutorialTable      = "otus/otu_table_mc2_w_tax_no_pynast_failures.biom"
	tutorialTree       = "otus/rep_set.tre"
	tutorialSummary    = "otus/table_summary.txt"
	tutorialDiversity  = "cdout"
	tutorialDepth      = 1114
	tutorialDatasetRef = "moving_pictures"
)

type tutorialOptions struct {
	dir        string
	datasets   []string
	input      string
	mapping    string
	params     string
	reference  string
	depth      int
	categories []string
	parallel   bool
	jobs       int
	dryRun     bool
}

// NewTutorialCmd creates the tutorial subcommand, which runs the complete
// open-reference workflow step by step in one session directory.
func NewTutorialCmd() *cobra.Command {
	var o tutorialOptions

	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Run the complete QIIME tutorial workflow in a new session",
		Long: `Run the QIIME open-reference tutorial from start to finish:

  1. allocate a session directory (or re-enter --workdir)
  2. download and unpack the tutorial datasets
  3. pick OTUs with pick_open_reference_otus.py
  4. summarize the OTU table with biom summarize-table
  5. run core_diversity_analyses.py

The moving_pictures bundle is expected to unpack into
moving_pictures_tutorial-1.9.0/ with already demultiplexed reads at
slout/seqs.fna, the sample mapping file map.tsv and the OTU picking
parameters uc_fast_params.txt. Nothing here demultiplexes raw reads; point
--input, --mapping and --params elsewhere if the bundle differs.

Steps run one after another; the first failure stops the workflow.
Warnings that QIIME prints while computing diversity metrics are expected
and hidden from the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTutorial(cmd, o)
		},
	}

	cmd.Flags().StringSliceVar(&o.datasets, "datasets", []string{tutorialDatasetRef}, "Datasets to fetch before the analysis")
	cmd.Flags().StringVarP(&o.input, "input", "i", filepath.Join(tutorialRoot, "slout", "seqs.fna"), "Demultiplexed sequences, as shipped in the moving_pictures bundle")
	cmd.Flags().StringVarP(&o.mapping, "mapping", "m", filepath.Join(tutorialRoot, "map.tsv"), "Sample mapping file")
	cmd.Flags().StringVarP(&o.params, "params", "p", filepath.Join(tutorialRoot, "uc_fast_params.txt"), "QIIME parameters file for OTU picking")
	cmd.Flags().StringVarP(&o.reference, "reference", "r", "", "Reference sequences (default: QIIME's configured reference)")
	cmd.Flags().IntVarP(&o.depth, "depth", "e", tutorialDepth, "Rarefaction depth for diversity analyses")
	cmd.Flags().StringSliceVarP(&o.categories, "categories", "c", []string{"SampleType", "DaysSinceExperimentStart"}, "Metadata categories to compare")
	cmd.Flags().BoolVarP(&o.parallel, "parallel", "a", false, "Run QIIME steps in parallel where possible")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "O", 0, "Number of jobs to start with --parallel")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Fetch data but only print the QIIME commands")
	addWorkdirFlag(cmd, &o.dir)

	return cmd
}

func runTutorial(cmd *cobra.Command, o tutorialOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	steps := []qiime.Command{
		qiime.PickOpenReferenceOTUs{
			Input:       o.input,
			Output:      tutorialOTUDir,
			Reference:   o.reference,
			ParamsFile:  o.params,
			Parallel:    o.parallel,
			JobsToStart: o.jobs,
		},
		qiime.SummarizeTable{Table: tutorialTable, Output: tutorialSummary},
		qiime.CoreDiversityAnalyses{
			Table:         tutorialTable,
			Output:        tutorialDiversity,
			MappingFile:   o.mapping,
			Tree:          tutorialTree,
			SamplingDepth: o.depth,
			Categories:    o.categories,
			Parallel:      o.parallel,
			JobsToStart:   o.jobs,
		},
	}
	// reject bad flags before allocating anything
	for _, c := range steps {
		if _, err := c.Args(); err != nil {
			return err
		}
	}
	for _, name := range o.datasets {
		if _, err := catalog.Lookup(name); err != nil {
			return err
		}
	}

	total := 2 + len(steps)
	ui.Step(1, total, "Allocate session")
	s, err := enterSession(cfg, o.dir)
	if err != nil {
		return err
	}

	ui.Step(2, total, "Fetch datasets")
	for _, name := range o.datasets {
		ds, _ := catalog.Lookup(name)
		if err := fetchOne(ctx, cfg, ds, s.Path); err != nil {
			return err
		}
	}

	for _, path := range []string{o.input, o.mapping, o.params} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("tutorial input missing after fetch (check --input, --mapping and --params): %w", err)
		}
	}

	runner := newRunner(cmd, cfg, o.dryRun)
	for i, c := range steps {
		ui.Step(3+i, total, "Run %s", c.Name())
		if err := runTool(ctx, runner, c); err != nil {
			return err
		}
	}

	ui.Success("tutorial complete in %s", ui.SessionName(s.Path, s.Tag()))
	return nil
}
