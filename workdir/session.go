package workdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/taigrr/colorhash"
)

// ManifestName is the file written into every session directory.
const ManifestName = "session.json"

// TagBuckets is the number of distinct values Session.Tag returns.
const TagBuckets = 6

// Session describes one allocated working directory.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	Base      string    `json:"base"`
	Suffix    string    `json:"suffix"`
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"workbench_version"`
}

// Tag maps the suffix to a stable bucket in [0, TagBuckets) so that
// terminal output can give every session its own colour.
func (s *Session) Tag() int {
	h := colorhash.HashString(s.Suffix) % TagBuckets
	if h < 0 {
		h += TagBuckets
	}
	return h
}

// ManifestPath returns the location of the session manifest.
func (s *Session) ManifestPath() string {
	return filepath.Join(s.Path, ManifestName)
}

func (s *Session) writeManifest() error {
	f, err := os.Create(s.ManifestPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// ReadSession loads the manifest of the session directory at path without
// changing the working directory.
func ReadSession(path string) (*Session, error) {
	f, err := os.Open(filepath.Join(path, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotSession)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Session
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.Name(), err)
	}
	return &s, nil
}

// Open re-enters an existing session: it loads the manifest and changes the
// process working directory to path.
func Open(path string) (*Session, error) {
	s, err := ReadSession(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(abs); err != nil {
		return nil, err
	}
	s.Path = abs
	return s, nil
}

// List returns the sessions found directly below base, oldest first.
// Directories without a manifest are skipped.
func List(base string) ([]*Session, error) {
	dirents, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var sessions []*Session
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		s, err := ReadSession(filepath.Join(base, d.Name()))
		if errors.Is(err, ErrNotSession) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}
