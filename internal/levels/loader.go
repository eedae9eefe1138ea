package levels

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Loader handles loading levels from a directory tree.
type Loader struct {
	fsys   fs.FS
	root   string
	base   string // Prefix for FilePath; empty for embedded files
	logger *log.Logger
}

// NewLoader creates a loader for the directory at root.
func NewLoader(root string, logger *log.Logger) *Loader {
	l := newFSLoader(os.DirFS(root), ".", root, logger)
	l.base = root
	return l
}

func newFSLoader(fsys fs.FS, dir, label string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		fsys:   fsys,
		root:   dir,
		logger: logger.WithPrefix("levels").With("source", label),
	}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are logged and skipped. A missing root yields no levels.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.logger.Warn("skipping level file", "file", p, "err", err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	level, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if l.base != "" {
		level.FilePath = filepath.Join(l.base, filepath.FromSlash(p))
	}
	return level, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
