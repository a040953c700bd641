package qiime

import (
	"strconv"
	"strings"
)

// Command is one invocation of an external QIIME tool.
type Command interface {
	// Name is the executable, e.g. "pick_open_reference_otus.py".
	Name() string
	// Args validates the parameters and renders the argument vector.
	Args() ([]string, error)
}

// Tool names.
const (
	ToolPickOpenReferenceOTUs = "pick_open_reference_otus.py"
	ToolCoreDiversity         = "core_diversity_analyses.py"
	ToolBiom                  = "biom"
	ToolExcludeSeqsByBlast    = "exclude_seqs_by_blast.py"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parallel renders -a and -O the way the QIIME workflow scripts expect.
func parallel(tool string, enabled bool, jobs int) ([]string, error) {
	if jobs < 0 {
		return nil, &ParamError{Tool: tool, Param: "jobs_to_start", Reason: "must not be negative"}
	}
	if !enabled {
		if jobs > 0 {
			return nil, &ParamError{Tool: tool, Param: "jobs_to_start", Reason: "requires parallel"}
		}
		return nil, nil
	}
	args := []string{"-a"}
	if jobs > 0 {
		args = append(args, "-O", strconv.Itoa(jobs))
	}
	return args, nil
}

// CommandLine renders a command as a shell-like string for display.
func CommandLine(c Command) (string, error) {
	args, err := c.Args()
	if err != nil {
		return "", err
	}
	parts := append([]string{c.Name()}, args...)
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t'\"$\\") {
			parts[i] = "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
		}
	}
	return strings.Join(parts, " "), nil
}
