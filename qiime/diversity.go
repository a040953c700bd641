package qiime

import (
	"strconv"
	"strings"
)

// CoreDiversityAnalyses computes alpha/beta diversity and taxonomy
// summaries from an OTU table.
type CoreDiversityAnalyses struct {
	Table         string // -i, BIOM table
	Output        string // -o
	MappingFile   string // -m
	Tree          string // -t
	SamplingDepth int    // -e
	// Categories are metadata columns compared across samples (-c).
	Categories      []string
	NonPhylogenetic bool
	ParamsFile      string
	Parallel        bool
	JobsToStart     int
}

func (c CoreDiversityAnalyses) Name() string { return ToolCoreDiversity }

// Args validates c; a tree is required unless NonPhylogenetic is set.
func (c CoreDiversityAnalyses) Args() ([]string, error) {
	for _, r := range []struct{ param, value string }{
		{"input_biom_fp", c.Table},
		{"output_dir", c.Output},
		{"mapping_fp", c.MappingFile},
	} {
		if err := required(c.Name(), r.param, r.value); err != nil {
			return nil, err
		}
	}
	if c.SamplingDepth < 1 {
		return nil, &ParamError{Tool: c.Name(), Param: "sampling_depth", Reason: "must be positive"}
	}
	if c.Tree == "" && !c.NonPhylogenetic {
		return nil, &ParamError{Tool: c.Name(), Param: "tree_fp", Reason: "is required unless nonphylogenetic diversity is requested"}
	}

	args := []string{
		"-i", c.Table,
		"-o", c.Output,
		"-m", c.MappingFile,
		"-e", strconv.Itoa(c.SamplingDepth),
	}
	if c.Tree != "" {
		args = append(args, "-t", c.Tree)
	}
	if c.NonPhylogenetic {
		args = append(args, "--nonphylogenetic_diversity")
	}
	if len(c.Categories) > 0 {
		args = append(args, "-c", strings.Join(c.Categories, ","))
	}
	if c.ParamsFile != "" {
		args = append(args, "-p", c.ParamsFile)
	}
	par, err := parallel(c.Name(), c.Parallel, c.JobsToStart)
	if err != nil {
		return nil, err
	}
	return append(args, par...), nil
}
