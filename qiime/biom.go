package qiime

// SummarizeTable runs `biom summarize-table` to report per-sample counts,
// which the tutorial uses to choose the rarefaction depth.
type SummarizeTable struct {
	Table       string
	Output      string // empty prints to stdout
	Qualitative bool
}

func (s SummarizeTable) Name() string { return ToolBiom }

// Args returns the biom subcommand followed by its flags.
func (s SummarizeTable) Args() ([]string, error) {
	if err := required("biom summarize-table", "input_fp", s.Table); err != nil {
		return nil, err
	}
	args := []string{"summarize-table", "-i", s.Table}
	if s.Output != "" {
		args = append(args, "-o", s.Output)
	}
	if s.Qualitative {
		args = append(args, "--qualitative")
	}
	return args, nil
}
