package cmd

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/qiimewb/qiime"
	"github.com/dendrascience/qiimewb/ui"
	"github.com/dendrascience/qiimewb/workdir"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	oldOut := ui.Out
	ui.Out = &stderr
	t.Cleanup(func() { ui.Out = oldOut })

	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

// writeConfig writes a config file pointing sessions at base.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func tutorialArchive(t *testing.T) []byte {
	t.Helper()
	return tarGz(t, map[string]string{
		"moving_pictures_tutorial-1.9.0/map.tsv":            "#SampleID\tSampleType\n",
		"moving_pictures_tutorial-1.9.0/uc_fast_params.txt": "pick_otus:enable_rev_strand_match True\n",
		"moving_pictures_tutorial-1.9.0/slout/seqs.fna":     ">s1\nACGT\n",
	})
}

func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg})
		tw.Write([]byte(body))
	}
	tw.Close()
	gz.Close()
	return buf.Bytes()
}

func TestSessionNew(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	out, err := execute(t, "--config", cfg, "session", "new", "--base", "temp", "--length", "12")
	if err != nil {
		t.Fatalf("session new failed: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Base(filepath.Dir(path)) != "temp" {
		t.Errorf("session path %q not under temp", path)
	}
	if !workdir.IsSuffix(filepath.Base(path), 12) {
		t.Errorf("session path %q has a bad suffix", path)
	}
	if _, err := os.Stat(filepath.Join(path, workdir.ManifestName)); err != nil {
		t.Errorf("manifest missing: %v", err)
	}

	shown, err := execute(t, "--config", cfg, "session", "show", path)
	if err != nil {
		t.Fatalf("session show failed: %v", err)
	}
	if !strings.Contains(shown, filepath.Base(path)) {
		t.Errorf("session show output missing suffix: %s", shown)
	}
}

func TestSessionList_ExplicitBase(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "base_dir: temp\n")

	s, err := workdir.Allocate("elsewhere", 8)
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	out, err := execute(t, "--config", cfg, "session", "list", "elsewhere")
	if err != nil {
		t.Fatalf("session list elsewhere failed: %v", err)
	}
	if !strings.Contains(out, s.Path) {
		t.Errorf("session list output missing %s:\n%s", s.Path, out)
	}

	if _, err := execute(t, "--config", cfg, "session", "list", "a", "b"); err == nil {
		t.Error("session list with two bases should fail")
	}
}

func TestSessionNew_InvalidLength(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	if _, err := execute(t, "--config", cfg, "session", "new", "--length", "0"); err == nil {
		t.Error("session new --length 0 should fail")
	}
}

func TestDatasets(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	out, err := execute(t, "--config", cfg, "datasets")
	if err != nil {
		t.Fatalf("datasets failed: %v", err)
	}
	for _, name := range []string{"moving_pictures", "gg_13_8_otus"} {
		if !strings.Contains(out, name) {
			t.Errorf("datasets output missing %s:\n%s", name, out)
		}
	}
}

func TestFetch_UnknownDatasetAllocatesNothing(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "base_dir: sessions\n")

	if _, err := execute(t, "--config", cfg, "fetch", "silva_138"); err == nil {
		t.Fatal("fetch of an unknown dataset should fail")
	}
	if _, err := os.Stat(filepath.Join(root, "sessions")); !os.IsNotExist(err) {
		t.Error("a session was allocated for an unknown dataset")
	}
}

func TestOTUs_DryRunInExistingSession(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	s, err := workdir.Allocate("temp", 12)
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	out, err := execute(t, "--config", cfg, "otus", "--workdir", s.Path, "-i", "slout/seqs.fna", "-p", "uc_fast_params.txt", "--dry-run")
	if err != nil {
		t.Fatalf("otus failed: %v", err)
	}
	want := "pick_open_reference_otus.py -i slout/seqs.fna -o otus -p uc_fast_params.txt\n"
	if out != want {
		t.Errorf("otus output = %q, want %q", out, want)
	}
}

func TestExclude_DryRun(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	out, err := execute(t, "--config", cfg, "exclude", "-i", "repr_set_seqs.fasta", "-d", "ref_seq_set.fna", "--dry-run")
	if err != nil {
		t.Fatalf("exclude failed: %v", err)
	}
	want := "exclude_seqs_by_blast.py -i repr_set_seqs.fasta -d ref_seq_set.fna -o exclude_seqs -e 1e-10 -p 0.97 -m 100 -w 28\n"
	if out != want {
		t.Errorf("exclude output = %q, want %q", out, want)
	}
}

func TestExclude_RejectsExplicitZero(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "base_dir: sessions\n")

	for _, flag := range []string{"-e", "-p", "-m", "--word-size"} {
		t.Run(flag, func(t *testing.T) {
			_, err := execute(t, "--config", cfg, "exclude", "-i", "q.fasta", "-d", "s.fna", flag, "0", "--dry-run")
			var pe *qiime.ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("exclude %s 0: error = %v, want *qiime.ParamError", flag, err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(root, "sessions")); !os.IsNotExist(err) {
		t.Error("a session was allocated for rejected flags")
	}
}

func TestDiversity_NonPhylogeneticDropsDefaultTree(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default tree dropped",
			args: nil,
			want: "core_diversity_analyses.py -i t.biom -o cdout -m map.tsv -e 100 --nonphylogenetic_diversity\n",
		},
		{
			name: "explicit tree kept",
			args: []string{"-t", "rep_set.tre"},
			want: "core_diversity_analyses.py -i t.biom -o cdout -m map.tsv -e 100 -t rep_set.tre --nonphylogenetic_diversity\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "diversity", "-i", "t.biom", "-m", "map.tsv", "-e", "100", "--nonphylogenetic", "--dry-run"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("diversity failed: %v", err)
			}
			if out != tt.want {
				t.Errorf("diversity output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestDiversity_RequiresDepth(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	cfg := writeConfig(t, root, "")

	if _, err := execute(t, "--config", cfg, "diversity", "-m", "map.tsv", "--dry-run"); err == nil {
		t.Error("diversity without --depth should fail")
	}
}

func TestTutorial_DryRun(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	payload := tutorialArchive(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	catalog := filepath.Join(root, "catalog.yaml")
	os.WriteFile(catalog, []byte(fmt.Sprintf(`datasets:
  - name: moving_pictures
    url: %s/moving_pictures_tutorial-1.9.0.tgz
`, srv.URL)), 0o644)
	cfg := writeConfig(t, root, "base_dir: sessions\nsuffix_length: 8\ncatalog: "+catalog+"\n")

	out, err := execute(t, "--config", cfg, "tutorial", "--dry-run")
	if err != nil {
		t.Fatalf("tutorial failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d command lines, want 3:\n%s", len(lines), out)
	}
	wantPrefixes := []string{
		"pick_open_reference_otus.py -i moving_pictures_tutorial-1.9.0/slout/seqs.fna -o otus",
		"biom summarize-table -i otus/otu_table_mc2_w_tax_no_pynast_failures.biom -o otus/table_summary.txt",
		"core_diversity_analyses.py -i otus/otu_table_mc2_w_tax_no_pynast_failures.biom -o cdout -m moving_pictures_tutorial-1.9.0/map.tsv -e 1114 -t otus/rep_set.tre",
	}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}

	sessions, err := workdir.List(filepath.Join(root, "sessions"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("found %d sessions, want 1", len(sessions))
	}
	seqs := filepath.Join(sessions[0].Path, "moving_pictures_tutorial-1.9.0", "slout", "seqs.fna")
	if _, err := os.Stat(seqs); err != nil {
		t.Errorf("tutorial data not unpacked into the session: %v", err)
	}
}

func TestTutorial_MissingInputStopsBeforeTools(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	payload := tarGz(t, map[string]string{
		"moving_pictures_tutorial-1.9.0/map.tsv":                "#SampleID\tSampleType\n",
		"moving_pictures_tutorial-1.9.0/uc_fast_params.txt":     "pick_otus:enable_rev_strand_match True\n",
		"moving_pictures_tutorial-1.9.0/forward_reads.fastq.gz": "raw",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	catalog := filepath.Join(root, "catalog.yaml")
	os.WriteFile(catalog, []byte(fmt.Sprintf(`datasets:
  - name: moving_pictures
    url: %s/moving_pictures_tutorial-1.9.0.tgz
`, srv.URL)), 0o644)
	cfg := writeConfig(t, root, "base_dir: sessions\ncatalog: "+catalog+"\n")

	out, err := execute(t, "--config", cfg, "tutorial", "--dry-run")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("tutorial error = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "seqs.fna") {
		t.Errorf("error %q does not name the missing input", err)
	}
	if out != "" {
		t.Errorf("tools ran despite missing input:\n%s", out)
	}
}

func TestInventory(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "otus"), 0o755)
	os.WriteFile(filepath.Join(dir, "otus", "rep_set.tre"), []byte("(a,b);"), 0o644)
	os.WriteFile(filepath.Join(dir, "otus", "log.txt"), []byte("1234"), 0o644)
	os.WriteFile(filepath.Join(dir, "session.json"), []byte("{}"), 0o644)

	inv, err := takeInventory(dir, nil)
	if err != nil {
		t.Fatalf("takeInventory failed: %v", err)
	}
	if inv.total.files != 3 || inv.total.bytes != 12 {
		t.Errorf("total = %+v, want 3 files and 12 bytes", inv.total)
	}
	if e := inv.byTop["otus"]; e == nil || e.files != 2 || e.bytes != 10 {
		t.Errorf("otus entry = %+v", e)
	}

	out, err := execute(t, "inventory", dir)
	if err != nil {
		t.Fatalf("inventory failed: %v", err)
	}
	if !strings.Contains(out, "total") || !strings.Contains(out, "otus") {
		t.Errorf("inventory output:\n%s", out)
	}
}

func TestQiimeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qiime_config")
	os.WriteFile(path, []byte("temp_dir\t/tmp/qiime\njobs_to_start\t4\n"), 0o644)

	out, err := execute(t, "qiime-config", "--file", path)
	if err != nil {
		t.Fatalf("qiime-config failed: %v", err)
	}
	if !strings.Contains(out, "temp_dir") || !strings.Contains(out, "/tmp/qiime") {
		t.Errorf("qiime-config output:\n%s", out)
	}
}
