package qiime

import (
	"bytes"
	"io"
	"regexp"
	"sync"
)

// DefaultWarningPatterns match warnings the tutorial documents as safe to
// ignore: numpy/scipy runtime and deprecation warnings emitted while
// computing diversity metrics and plots.
var DefaultWarningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`RuntimeWarning: `),
	regexp.MustCompile(`DeprecationWarning: `),
	regexp.MustCompile(`FutureWarning: `),
	regexp.MustCompile(`UserWarning: .*(matplotlib|tight_layout|font)`),
	regexp.MustCompile(`^Warning: .*(negative eigenvalues|rarefaction)`),
}

// WarningFilter is an io.Writer that drops benign warning lines before
// forwarding output to W. The indented source line Python prints after a
// warning is dropped with it.
type WarningFilter struct {
	W        io.Writer
	Patterns []*regexp.Regexp

	mu         sync.Mutex
	buf        []byte
	suppressed int
	dropNext   bool
}

// NewWarningFilter returns a filter writing to w that drops lines matching
// DefaultWarningPatterns.
func NewWarningFilter(w io.Writer) *WarningFilter {
	return &WarningFilter{W: w, Patterns: DefaultWarningPatterns}
}

// Write buffers p and forwards every complete line that is not an expected
// warning.
func (f *WarningFilter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buf = append(f.buf, p...)
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		line := f.buf[:i+1]
		if err := f.emit(line); err != nil {
			return len(p), err
		}
		f.buf = f.buf[i+1:]
	}
	return len(p), nil
}

func (f *WarningFilter) emit(line []byte) error {
	if f.dropNext && len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		f.dropNext = false
		return nil
	}
	f.dropNext = false
	for _, re := range f.Patterns {
		if re.Match(line) {
			f.suppressed++
			f.dropNext = true
			return nil
		}
	}
	_, err := f.W.Write(line)
	return err
}

// Flush forwards a trailing partial line.
func (f *WarningFilter) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.buf) == 0 {
		return nil
	}
	err := f.emit(f.buf)
	f.buf = nil
	return err
}

// Suppressed returns how many warnings were dropped.
func (f *WarningFilter) Suppressed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppressed
}
