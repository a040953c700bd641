package qiime

// PickOpenReferenceOTUs runs open-reference OTU picking on demultiplexed
// sequences.
type PickOpenReferenceOTUs struct {
	Input     string // -i, FASTA of split sequences
	Output    string // -o
	Reference string // -r, defaults to QIIME's configured reference
	// ParamsFile is passed with -p.
	ParamsFile       string
	Method           string // -m: uclust, usearch61, sortmerna_sumaclust
	Parallel         bool
	JobsToStart      int
	SuppressTaxonomy bool
	Force            bool
}

func (p PickOpenReferenceOTUs) Name() string { return ToolPickOpenReferenceOTUs }

// Args validates p and returns the pick_open_reference_otus.py arguments.
func (p PickOpenReferenceOTUs) Args() ([]string, error) {
	if err := required(p.Name(), "input", p.Input); err != nil {
		return nil, err
	}
	if err := required(p.Name(), "output", p.Output); err != nil {
		return nil, err
	}
	args := []string{"-i", p.Input, "-o", p.Output}
	if p.Reference != "" {
		args = append(args, "-r", p.Reference)
	}
	if p.ParamsFile != "" {
		args = append(args, "-p", p.ParamsFile)
	}
	switch p.Method {
	case "":
	case "uclust", "usearch61", "sortmerna_sumaclust":
		args = append(args, "-m", p.Method)
	default:
		return nil, &ParamError{Tool: p.Name(), Param: "otu_picking_method", Reason: "must be uclust, usearch61 or sortmerna_sumaclust"}
	}
	par, err := parallel(p.Name(), p.Parallel, p.JobsToStart)
	if err != nil {
		return nil, err
	}
	args = append(args, par...)
	if p.SuppressTaxonomy {
		args = append(args, "--suppress_taxonomy_assignment")
	}
	if p.Force {
		args = append(args, "-f")
	}
	return args, nil
}
