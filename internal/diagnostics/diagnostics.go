// Package diagnostics writes the raw and cleaned content of vendor pastes to a
// scratch directory, so a bad conversion can be reproduced later.
package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultKeep is the number of dumps retained by Prune when no limit is set.
const DefaultKeep = 20

const (
	rawFile     = "raw.html"
	cleanedFile = "cleaned.html"
	reportFile  = "report.yaml"
)

// Dump is one recorded paste.
type Dump struct {
	Raw     string
	Cleaned string
	// Report is serialized to report.yaml when non-nil (typically paste stats and warnings).
	Report any
}

// Recorder writes dumps below a directory of an afero filesystem.
type Recorder struct {
	fs   afero.Fs
	dir  string
	keep int
	now  func() time.Time
}

// New creates a recorder writing to dir on fs. keep <= 0 means DefaultKeep.
func New(fs afero.Fs, dir string, keep int) *Recorder {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Recorder{
		fs:   fs,
		dir:  dir,
		keep: keep,
		now:  time.Now,
	}
}

// NewOS creates a recorder on the real filesystem.
func NewOS(dir string, keep int) *Recorder {
	return New(afero.NewOsFs(), dir, keep)
}

// DefaultDir returns the scratch directory used when none is configured.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "pasteclean")
}

// Dir returns the directory dumps are written to.
func (r *Recorder) Dir() string {
	return r.dir
}

// Record writes the dump into a new timestamped directory and returns its path.
// Older dumps beyond the retention limit are pruned afterwards.
func (r *Recorder) Record(d Dump) (string, error) {
	path, err := r.nextDir()
	if err != nil {
		return "", err
	}
	if err := r.fs.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating dump directory: %w", err)
	}

	if err := afero.WriteFile(r.fs, filepath.Join(path, rawFile), []byte(d.Raw), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", rawFile, err)
	}
	if err := afero.WriteFile(r.fs, filepath.Join(path, cleanedFile), []byte(d.Cleaned), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", cleanedFile, err)
	}
	if d.Report != nil {
		data, err := yaml.Marshal(d.Report)
		if err != nil {
			return "", fmt.Errorf("encoding report: %w", err)
		}
		if err := afero.WriteFile(r.fs, filepath.Join(path, reportFile), data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", reportFile, err)
		}
	}

	if _, err := r.Prune(); err != nil {
		return path, err
	}
	return path, nil
}

// nextDir returns an unused dump directory name for the current time.
func (r *Recorder) nextDir() (string, error) {
	base := r.now().UTC().Format("20060102T150405.000000000")
	for i := 0; i < 100; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s-%d", base, i)
		}
		path := filepath.Join(r.dir, name)
		exists, err := afero.DirExists(r.fs, path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free dump directory for %s", base)
}

// List returns the dump directories, oldest first.
func (r *Recorder) List() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	// timestamp names sort chronologically
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(r.dir, name)
	}
	return paths, nil
}

// Prune removes the oldest dumps beyond the retention limit and returns how
// many were removed.
func (r *Recorder) Prune() (int, error) {
	dumps, err := r.List()
	if err != nil {
		return 0, err
	}
	if len(dumps) <= r.keep {
		return 0, nil
	}

	excess := dumps[:len(dumps)-r.keep]
	for i, path := range excess {
		if err := r.fs.RemoveAll(path); err != nil {
			return i, fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return len(excess), nil
}
