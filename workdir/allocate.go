package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/qiimewb/version"
	"github.com/google/uuid"
)

type options struct {
	src       Source
	exclusive bool
	perm      os.FileMode
	now       func() time.Time
}

// Option configures Allocate.
type Option func(*options)

// WithSource replaces the random source used for the suffix.
func WithSource(src Source) Option {
	return func(o *options) { o.src = src }
}

// WithExclusive makes Allocate fail if the generated directory already
// exists instead of silently reusing it.
func WithExclusive() Option {
	return func(o *options) { o.exclusive = true }
}

// WithPerm sets the permission bits of created directories.
func WithPerm(perm os.FileMode) Option {
	return func(o *options) { o.perm = perm }
}

func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Allocate creates base/<suffix> with a random suffix of length n, makes it
// the process working directory and writes the session manifest into it.
//
// Filesystem errors are returned as they are. In exclusive mode a collision
// with an existing directory surfaces as an error satisfying
// errors.Is(err, fs.ErrExist); there is no retry.
func Allocate(base string, n int, opts ...Option) (*Session, error) {
	o := options{src: DefaultSource, perm: 0o755, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	path, err := NewPath(o.src, base, n)
	if err != nil {
		return nil, err
	}

	if o.exclusive {
		if err := os.MkdirAll(filepath.Dir(path), o.perm); err != nil {
			return nil, err
		}
		if err := os.Mkdir(path, o.perm); err != nil {
			return nil, err
		}
	} else if err := os.MkdirAll(path, o.perm); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(abs); err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New(),
		Path:      abs,
		Base:      base,
		Suffix:    filepath.Base(path),
		CreatedAt: o.now().UTC().Truncate(time.Second),
		Version:   version.GetVersion(),
	}
	if err := s.writeManifest(); err != nil {
		return nil, fmt.Errorf("failed to write session manifest: %w", err)
	}
	return s, nil
}
