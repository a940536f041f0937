package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// FileResult reports the outcome of loading one matched catalog file.
// Parse and validation failures land here instead of failing the whole
// load, so one broken file never blanks the library.
type FileResult struct {
	Path    string
	Rows    int
	Records int
	Err     error
}

// Loader expands glob patterns into catalog files and assembles snapshots.
type Loader struct {
	baseDir  string
	patterns []string
}

// NewLoader creates a loader. Relative patterns resolve against baseDir.
func NewLoader(baseDir string, patterns []string) *Loader {
	return &Loader{baseDir: baseDir, patterns: patterns}
}

// Load assembles a snapshot from every matched file. Files are parsed in
// parallel and merged in path order, later files overriding earlier ones
// by row and record ID. With no patterns configured the embedded demo
// catalog is returned.
func (l *Loader) Load(ctx context.Context) (*Catalog, []FileResult, error) {
	paths, err := l.expand()
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		cat, err := Demo()
		return cat, nil, err
	}

	results := make([]FileResult, len(paths))
	files := make([]File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = FileResult{Path: path, Err: ctx.Err()}
				return nil
			default:
			}

			f, err := ParseFile(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}
			files[i] = f
			results[i] = FileResult{Path: path, Rows: len(f.Rows), Records: len(f.Content)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, results, err
	}

	rows, records := merge(files, results)
	return New(rows, records), results, nil
}

// WatchRoots returns the static directory prefix of each pattern, for
// filesystem watching. "catalog/**/*.yml" watches "catalog".
func (l *Loader) WatchRoots() []string {
	seen := map[string]bool{}
	var roots []string
	for _, pattern := range l.patterns {
		static, _ := doublestar.SplitPattern(l.resolve(pattern))
		if static == "" {
			static = "."
		}
		if !seen[static] {
			seen[static] = true
			roots = append(roots, static)
		}
	}
	return roots
}

func (l *Loader) resolve(pattern string) string {
	if filepath.IsAbs(pattern) || l.baseDir == "" {
		return pattern
	}
	return filepath.Join(l.baseDir, pattern)
}

// expand matches all patterns and returns deduplicated paths in sorted
// order so merges are deterministic.
func (l *Loader) expand() ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, pattern := range l.patterns {
		matches, err := doublestar.FilepathGlob(l.resolve(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ParseFile reads, normalizes, and validates one catalog file.
func ParseFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read catalog file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse catalog file: %w", err)
	}

	f.normalize()
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// merge folds parsed files into one row list and record list. A row or
// record redefined by a later file replaces the earlier definition while
// keeping its original position.
func merge(files []File, results []FileResult) ([]Row, []Record) {
	var rows []Row
	rowIdx := map[string]int{}

	var records []Record
	recIdx := map[string]int{}

	for i, f := range files {
		if results[i].Err != nil {
			continue
		}
		for _, row := range f.Rows {
			if j, ok := rowIdx[row.ID]; ok {
				rows[j] = row
				continue
			}
			rowIdx[row.ID] = len(rows)
			rows = append(rows, row)
		}
		for _, rec := range f.Content {
			if j, ok := recIdx[rec.ID]; ok {
				records[j] = rec
				continue
			}
			recIdx[rec.ID] = len(records)
			records = append(records, rec)
		}
	}
	return rows, records
}
