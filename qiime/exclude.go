package qiime

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults of exclude_seqs_by_blast.py.
const (
	DefaultEValue         = 1e-10
	DefaultPercentAligned = 0.97
	DefaultMaxHits        = 100
	DefaultWordSize       = 28
)

// BlastDBExtensions are the files formatdb writes next to a nucleotide
// subject database.
var BlastDBExtensions = []string{".nhr", ".nin", ".nsd", ".nsi", ".nsq"}

// ExcludeSeqsByBlast screens query sequences against a subject database,
// e.g. to drop human reads before submission. Zero numeric fields take the
// script defaults, so an explicit zero cannot be expressed; callers taking
// user input should reject it before building the command.
type ExcludeSeqsByBlast struct {
	QueryDB        string // -i
	SubjectDB      string // -d
	OutputDir      string // -o
	EValue         float64
	PercentAligned float64
	MaxHits        int
	WordSize       int
	NoClean        bool
	NoFormatDB     bool
	BlastMatRoot   string
	WorkingDir     string
	Verbose        bool
}

func (e ExcludeSeqsByBlast) Name() string { return ToolExcludeSeqsByBlast }

func (e ExcludeSeqsByBlast) withDefaults() ExcludeSeqsByBlast {
	if e.EValue == 0 {
		e.EValue = DefaultEValue
	}
	if e.PercentAligned == 0 {
		e.PercentAligned = DefaultPercentAligned
	}
	if e.MaxHits == 0 {
		e.MaxHits = DefaultMaxHits
	}
	if e.WordSize == 0 {
		e.WordSize = DefaultWordSize
	}
	return e
}

// Args fills in defaults, validates e and returns the script arguments.
func (e ExcludeSeqsByBlast) Args() ([]string, error) {
	for _, r := range []struct{ param, value string }{
		{"querydb", e.QueryDB},
		{"subjectdb", e.SubjectDB},
		{"outputdir", e.OutputDir},
	} {
		if err := required(e.Name(), r.param, r.value); err != nil {
			return nil, err
		}
	}
	// formatdb cannot handle spaces in the database path
	if strings.ContainsAny(e.SubjectDB, " \t") {
		return nil, &ParamError{Tool: e.Name(), Param: "subjectdb", Reason: "must not contain whitespace"}
	}

	e = e.withDefaults()
	if e.EValue <= 0 {
		return nil, &ParamError{Tool: e.Name(), Param: "e_value", Reason: "must be greater than zero"}
	}
	if e.PercentAligned <= 0 || e.PercentAligned > 1 {
		return nil, &ParamError{Tool: e.Name(), Param: "percent_aligned", Reason: "must be in (0, 1]"}
	}
	if e.MaxHits <= 0 {
		return nil, &ParamError{Tool: e.Name(), Param: "max_hits", Reason: "must be greater than zero"}
	}
	if e.WordSize <= 0 {
		return nil, &ParamError{Tool: e.Name(), Param: "word_size", Reason: "must be greater than zero"}
	}

	args := []string{
		"-i", e.QueryDB,
		"-d", e.SubjectDB,
		"-o", e.OutputDir,
		"-e", formatFloat(e.EValue),
		"-p", formatFloat(e.PercentAligned),
		"-m", strconv.Itoa(e.MaxHits),
		"-w", strconv.Itoa(e.WordSize),
	}
	if e.NoClean {
		args = append(args, "--no_clean")
	}
	if e.NoFormatDB {
		args = append(args, "-n")
	}
	if e.BlastMatRoot != "" {
		args = append(args, "--blastmatroot", e.BlastMatRoot)
	}
	if e.WorkingDir != "" {
		args = append(args, "--working_dir", e.WorkingDir)
	}
	if e.Verbose {
		args = append(args, "-v")
	}
	return args, nil
}

// ExclusionOutputs are the four files the screen writes.
type ExclusionOutputs struct {
	Matching    string
	NonMatching string
	RawResults  string
	Log         string
}

// Result file names inside the output directory. They do not depend on the
// query file name.
const (
	MatchingFile    = "matching.fna"
	NonMatchingFile = "non-matching.fna"
	RawResultsFile  = "raw_blast_results.txt"
	ExclusionLog    = "sequence_exclusion.log"
)

// OutputFiles returns where the screen results will be written.
func (e ExcludeSeqsByBlast) OutputFiles() ExclusionOutputs {
	return ExclusionOutputs{
		Matching:    filepath.Join(e.OutputDir, MatchingFile),
		NonMatching: filepath.Join(e.OutputDir, NonMatchingFile),
		RawResults:  filepath.Join(e.OutputDir, RawResultsFile),
		Log:         filepath.Join(e.OutputDir, ExclusionLog),
	}
}

// CheckFormattedDB verifies that formatdb output exists for subjectDB, which
// is required when the screen is run with NoFormatDB.
func CheckFormattedDB(subjectDB string) error {
	for _, ext := range BlastDBExtensions {
		path := subjectDB + ext
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s (run without --no-format-db to let formatdb create it)", ErrMissingBlastDB, path)
		}
		if err != nil {
			return err
		}
		f.Close()
	}
	return nil
}
