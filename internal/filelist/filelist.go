// Package filelist produces bounded, gitignore-aware directory
// listings for the session-create pickers.
package filelist

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/AdamGardelov/paneboard/internal/userpath"
)

// Options bound the walk. Zero values mean unlimited depth and items
// with hidden entries excluded.
type Options struct {
	MaxDepth   int
	MaxItems   int
	ShowHidden bool
}

// Entry is one file or directory, with Path relative to the walk root
// in slash form.
type Entry struct {
	Path  string
	IsDir bool
}

// List walks root and returns the surviving entries sorted directories
// first, then by path. The boolean reports whether MaxItems cut the
// walk short.
func List(root string, opts Options) ([]Entry, bool, error) {
	return walk(root, opts, false)
}

// Dirs is List restricted to directories. The session-create form uses
// it for project suggestions.
func Dirs(root string, opts Options) ([]Entry, bool, error) {
	return walk(root, opts, true)
}

func walk(root string, opts Options, onlyDirs bool) ([]Entry, bool, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, false, err
	}
	w := &walker{
		root:     abs,
		opts:     opts,
		onlyDirs: onlyDirs,
		ignores:  newIgnoreCache(abs),
	}
	if err := filepath.WalkDir(abs, w.visit); err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, false, err
	}
	sort.SliceStable(w.entries, func(i, j int) bool {
		if w.entries[i].IsDir != w.entries[j].IsDir {
			return w.entries[i].IsDir
		}
		return w.entries[i].Path < w.entries[j].Path
	})
	return w.entries, w.truncated, nil
}

func resolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", errors.New("empty root path")
	}
	abs, err := filepath.Abs(userpath.Expand(root))
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", errors.New("root path is not a directory")
	}
	return abs, nil
}

type walker struct {
	root      string
	opts      Options
	onlyDirs  bool
	ignores   *ignoreCache
	entries   []Entry
	truncated bool
}

func (w *walker) visit(curr string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		// Unreadable subtrees are skipped, not fatal.
		return nil
	}
	if curr == w.root {
		return nil
	}
	rel, err := filepath.Rel(w.root, curr)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if w.exclude(rel, d) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if w.onlyDirs && !d.IsDir() {
		return nil
	}

	w.entries = append(w.entries, Entry{Path: rel, IsDir: d.IsDir()})
	if w.opts.MaxItems > 0 && len(w.entries) >= w.opts.MaxItems {
		w.truncated = true
		return filepath.SkipAll
	}
	return nil
}

func (w *walker) exclude(rel string, d fs.DirEntry) bool {
	base := path.Base(rel)
	if d.IsDir() && base == ".git" {
		return true
	}
	if !w.opts.ShowHidden && strings.HasPrefix(base, ".") {
		return true
	}
	if w.opts.MaxDepth > 0 && depthOf(rel) > w.opts.MaxDepth {
		return true
	}
	return w.ignores.ignored(rel, d.IsDir())
}

func depthOf(rel string) int {
	if rel == "" || rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// ignoreCache compiles .gitignore files lazily, one parser per
// directory that has one. Patterns apply to everything below their
// directory and are matched relative to it, as git does.
type ignoreCache struct {
	root    string
	parsers map[string]ignore.IgnoreParser
}

func newIgnoreCache(root string) *ignoreCache {
	return &ignoreCache{root: root, parsers: make(map[string]ignore.IgnoreParser)}
}

func (c *ignoreCache) ignored(rel string, isDir bool) bool {
	prefix := ""
	for {
		sub := strings.TrimPrefix(strings.TrimPrefix(rel, prefix), "/")
		if sub == "" {
			return false
		}
		if parser := c.parserFor(prefix); parser != nil {
			if parser.MatchesPath(sub) {
				return true
			}
			if isDir && parser.MatchesPath(sub+"/") {
				return true
			}
		}
		idx := strings.Index(sub, "/")
		if idx < 0 {
			return false
		}
		if prefix == "" {
			prefix = sub[:idx]
		} else {
			prefix += "/" + sub[:idx]
		}
	}
}

func (c *ignoreCache) parserFor(prefix string) ignore.IgnoreParser {
	if parser, ok := c.parsers[prefix]; ok {
		return parser
	}
	var parser ignore.IgnoreParser
	name := filepath.Join(c.root, filepath.FromSlash(prefix), ".gitignore")
	if compiled, err := ignore.CompileIgnoreFile(name); err == nil {
		parser = compiled
	}
	c.parsers[prefix] = parser
	return parser
}
