package dataset

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// Result describes what Fetch did for one dataset.
type Result struct {
	Dataset string
	// Archive is the downloaded file.
	Archive string
	// Downloaded is false when a verified copy was already present.
	Downloaded bool
	Bytes      int64
	// Files lists extracted files relative to the extraction directory.
	Files []string
}

// Fetch downloads ds into dir, verifies its checksum if the catalog has one
// and extracts it below dir/ds.Dest.
func Fetch(ctx context.Context, client *http.Client, ds Dataset, dir string) (*Result, error) {
	res := &Result{
		Dataset: ds.Name,
		Archive: filepath.Join(dir, ds.FileName()),
	}

	reuse, err := reusable(res.Archive, ds.SHA256)
	if err != nil {
		return nil, err
	}
	if !reuse {
		n, err := Download(ctx, client, ds.URL, res.Archive)
		if err != nil {
			return nil, err
		}
		res.Downloaded = true
		res.Bytes = n
		if ds.SHA256 != "" {
			if err := VerifySHA256(res.Archive, ds.SHA256); err != nil {
				return nil, err
			}
		}
	}

	files, err := Extract(res.Archive, filepath.Join(dir, ds.Dest), ds.Kind())
	if err != nil {
		return nil, err
	}
	res.Files = files
	return res, nil
}

// reusable reports whether an existing download can be kept.
func reusable(archive, sha string) (bool, error) {
	info, err := os.Stat(archive)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() || info.Size() == 0 {
		return false, nil
	}
	if sha == "" {
		return true, nil
	}
	err = VerifySHA256(archive, sha)
	if errors.Is(err, ErrChecksumMismatch) {
		return false, nil
	}
	return err == nil, err
}
