package dataset

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind names an archive format.
type Kind string

const (
	KindTarGz Kind = "tar.gz"
	KindGzip  Kind = "gz"
	KindZip   Kind = "zip"
	KindNone  Kind = "none"
)

// Valid reports whether k is one of the supported archive kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTarGz, KindGzip, KindZip, KindNone:
		return true
	}
	return false
}

// DetectKind guesses the archive format from a file name.
func DetectKind(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return KindTarGz
	case strings.HasSuffix(lower, ".gz"):
		return KindGzip
	case strings.HasSuffix(lower, ".zip"):
		return KindZip
	}
	return KindNone
}

// Extract unpacks archive into destDir and returns the paths of the regular
// files it wrote, relative to destDir. KindNone extracts nothing.
func Extract(archive, destDir string, kind Kind) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}
	switch kind {
	case KindTarGz:
		return extractTarGz(archive, destDir)
	case KindGzip:
		return gunzip(archive, destDir)
	case KindZip:
		return unzip(archive, destDir)
	case KindNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedArchive, kind)
}

// safeJoin resolves an archive member name below destDir.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func extractTarGz(archive, destDir string) ([]string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archive, err)
	}
	defer gz.Close()

	var files []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		// insecure names are rejected below by safeJoin
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return files, fmt.Errorf("%s: %w", archive, err)
		}
		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return files, err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return files, err
			}
			files = append(files, filepath.ToSlash(filepath.Clean(hdr.Name)))
		default:
			// links and devices are not part of the tutorial data
			continue
		}
	}
	return files, nil
}

func gunzip(archive, destDir string) ([]string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archive, err)
	}
	defer gz.Close()

	name := strings.TrimSuffix(filepath.Base(archive), filepath.Ext(archive))
	if err := writeFile(filepath.Join(destDir, name), gz, 0o644); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func unzip(archive, destDir string) ([]string, error) {
	zrc, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%s: %w", archive, err)
	}
	defer zrc.Close()

	var files []string
	for _, zf := range zrc.File {
		target, err := safeJoin(destDir, zf.Name)
		if err != nil {
			return files, err
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, err
			}
			continue
		}
		if !zf.Mode().IsRegular() {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return files, err
		}
		err = writeFile(target, rc, zf.Mode())
		rc.Close()
		if err != nil {
			return files, err
		}
		files = append(files, filepath.ToSlash(filepath.Clean(zf.Name)))
	}
	return files, nil
}
