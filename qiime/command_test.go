package qiime

import (
	"errors"
	"reflect"
	"testing"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []string
	}{
		{
			name: "open reference otus minimal",
			cmd:  PickOpenReferenceOTUs{Input: "split_library_output/seqs.fna", Output: "otus"},
			want: []string{"-i", "split_library_output/seqs.fna", "-o", "otus"},
		},
		{
			name: "open reference otus full",
			cmd: PickOpenReferenceOTUs{
				Input: "seqs.fna", Output: "otus", Reference: "gg/97_otus.fasta",
				ParamsFile: "uc_fast_params.txt", Method: "uclust",
				Parallel: true, JobsToStart: 4, SuppressTaxonomy: true, Force: true,
			},
			want: []string{
				"-i", "seqs.fna", "-o", "otus", "-r", "gg/97_otus.fasta",
				"-p", "uc_fast_params.txt", "-m", "uclust", "-a", "-O", "4",
				"--suppress_taxonomy_assignment", "-f",
			},
		},
		{
			name: "core diversity",
			cmd: CoreDiversityAnalyses{
				Table: "otus/otu_table_mc2_w_tax_no_pynast_failures.biom", Output: "cdout",
				MappingFile: "map.tsv", Tree: "otus/rep_set.tre", SamplingDepth: 1114,
				Categories: []string{"SampleType", "DaysSinceExperimentStart"},
			},
			want: []string{
				"-i", "otus/otu_table_mc2_w_tax_no_pynast_failures.biom", "-o", "cdout",
				"-m", "map.tsv", "-e", "1114", "-t", "otus/rep_set.tre",
				"-c", "SampleType,DaysSinceExperimentStart",
			},
		},
		{
			name: "core diversity nonphylogenetic in parallel",
			cmd: CoreDiversityAnalyses{
				Table: "t.biom", Output: "cd", MappingFile: "map.tsv", SamplingDepth: 100,
				NonPhylogenetic: true, Parallel: true,
			},
			want: []string{"-i", "t.biom", "-o", "cd", "-m", "map.tsv", "-e", "100", "--nonphylogenetic_diversity", "-a"},
		},
		{
			name: "summarize table",
			cmd:  SummarizeTable{Table: "otu_table.biom", Output: "summary.txt", Qualitative: true},
			want: []string{"summarize-table", "-i", "otu_table.biom", "-o", "summary.txt", "--qualitative"},
		},
		{
			name: "exclude seqs defaults",
			cmd:  ExcludeSeqsByBlast{QueryDB: "repr_set_seqs.fasta", SubjectDB: "ref_seq_set.fna", OutputDir: "exclude_seqs"},
			want: []string{
				"-i", "repr_set_seqs.fasta", "-d", "ref_seq_set.fna", "-o", "exclude_seqs",
				"-e", "1e-10", "-p", "0.97", "-m", "100", "-w", "28",
			},
		},
		{
			name: "exclude seqs custom",
			cmd: ExcludeSeqsByBlast{
				QueryDB: "q.fasta", SubjectDB: "s.fna", OutputDir: "out",
				EValue: 1e-5, PercentAligned: 0.95, MaxHits: 10, WordSize: 11,
				NoClean: true, NoFormatDB: true, BlastMatRoot: "/blast/data", WorkingDir: "/tmp", Verbose: true,
			},
			want: []string{
				"-i", "q.fasta", "-d", "s.fna", "-o", "out",
				"-e", "1e-05", "-p", "0.95", "-m", "10", "-w", "11",
				"--no_clean", "-n", "--blastmatroot", "/blast/data", "--working_dir", "/tmp", "-v",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cmd.Args()
			if err != nil {
				t.Fatalf("Args() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestCommandArgs_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		param string
	}{
		{"otus without input", PickOpenReferenceOTUs{Output: "o"}, "input"},
		{"otus without output", PickOpenReferenceOTUs{Input: "i"}, "output"},
		{"otus bad method", PickOpenReferenceOTUs{Input: "i", Output: "o", Method: "cdhit"}, "otu_picking_method"},
		{"otus jobs without parallel", PickOpenReferenceOTUs{Input: "i", Output: "o", JobsToStart: 2}, "jobs_to_start"},
		{"diversity without mapping", CoreDiversityAnalyses{Table: "t", Output: "o", SamplingDepth: 1, Tree: "x"}, "mapping_fp"},
		{"diversity without depth", CoreDiversityAnalyses{Table: "t", Output: "o", MappingFile: "m", Tree: "x"}, "sampling_depth"},
		{"diversity without tree", CoreDiversityAnalyses{Table: "t", Output: "o", MappingFile: "m", SamplingDepth: 5}, "tree_fp"},
		{"summarize without table", SummarizeTable{}, "input_fp"},
		{"exclude without subject", ExcludeSeqsByBlast{QueryDB: "q", OutputDir: "o"}, "subjectdb"},
		{"exclude subject with space", ExcludeSeqsByBlast{QueryDB: "q", SubjectDB: "my db.fna", OutputDir: "o"}, "subjectdb"},
		{"exclude percent above one", ExcludeSeqsByBlast{QueryDB: "q", SubjectDB: "s", OutputDir: "o", PercentAligned: 1.5}, "percent_aligned"},
		{"exclude negative evalue", ExcludeSeqsByBlast{QueryDB: "q", SubjectDB: "s", OutputDir: "o", EValue: -1}, "e_value"},
		{"exclude negative max hits", ExcludeSeqsByBlast{QueryDB: "q", SubjectDB: "s", OutputDir: "o", MaxHits: -5}, "max_hits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.Args()
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("Args() error = %v, want *ParamError", err)
			}
			if pe.Param != tt.param {
				t.Errorf("ParamError.Param = %q, want %q", pe.Param, tt.param)
			}
		})
	}
}

func TestCommandLine_Quotes(t *testing.T) {
	got, err := CommandLine(SummarizeTable{Table: "my table.biom"})
	if err != nil {
		t.Fatal(err)
	}
	want := "biom summarize-table -i 'my table.biom'"
	if got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
}
