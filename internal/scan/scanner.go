// Package scan implements the Scanner collaborator (spec §6.1): it
// walks a directory tree, applies .gitignore and hardcoded ignore
// patterns, and reports every surviving file as a root-relative,
// '/'-separated path.
package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultIgnorePatterns are applied regardless of whatever .gitignore
// files a tree contains, mirroring keystorm's
// internal/project/watcher.DefaultIgnorePatterns list.
var DefaultIgnorePatterns = []string{
	".git",
	"node_modules",
	"vendor",
	".venv",
	"venv",
	"__pycache__",
	"dist",
	"build",
	"target",
	".idea",
	".vscode",
	"*.swp",
	"*.swo",
	"*~",
	".DS_Store",
	"Thumbs.db",
}

// Config configures a Scanner.
type Config struct {
	// MaxDepth limits how many path components below root are
	// traversed. Zero means unlimited.
	MaxDepth int
	// RespectGitignore makes the Scanner honor .gitignore files found
	// anywhere under root, in addition to IgnorePatterns.
	RespectGitignore bool
	// IncludeHidden includes dotfiles and dot-directories that would
	// otherwise be skipped.
	IncludeHidden bool
	// IgnorePatterns are gitignore-syntax patterns applied regardless
	// of RespectGitignore.
	IgnorePatterns []string
}

// DefaultConfig returns the Scanner configuration used by the CLI: no
// depth limit, gitignore respected, hidden files excluded.
func DefaultConfig() Config {
	return Config{
		RespectGitignore: true,
		IncludeHidden:    false,
		IgnorePatterns:   DefaultIgnorePatterns,
	}
}

// Scanner walks a directory tree per Config.
type Scanner struct {
	cfg Config
}

// New returns a Scanner configured by cfg.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan walks root and invokes add with the root-relative, '/'-separated
// path of every surviving regular file. Scan returns an error only if
// it cannot begin walking root at all; a single unreadable file or
// directory beneath root is skipped and does not abort the scan (spec
// §7's "filesystem transient" error kind).
func (s *Scanner) Scan(root string, add func(relPath string)) error {
	if _, err := os.Stat(root); err != nil {
		return err
	}

	matcher := s.buildMatcher(root)

	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		parts := strings.Split(rel, "/")

		if !s.cfg.IncludeHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if s.cfg.MaxDepth > 0 && len(parts) > s.cfg.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.Match(parts, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		add(rel)
		return nil
	})
}

func (s *Scanner) buildMatcher(root string) gitignore.Matcher {
	var patterns []gitignore.Pattern
	for _, p := range s.cfg.IgnorePatterns {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	if s.cfg.RespectGitignore {
		patterns = append(patterns, loadGitignoreFiles(root)...)
	}
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}

// loadGitignoreFiles finds every .gitignore under root and parses its
// lines into domain-scoped gitignore.Pattern values, so that a nested
// .gitignore's rules only apply within its own subtree.
func loadGitignoreFiles(root string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}
		dir, relErr := filepath.Rel(root, filepath.Dir(p))
		if relErr != nil {
			return nil
		}
		var domain []string
		if dir != "." {
			domain = strings.Split(filepath.ToSlash(dir), "/")
		}
		f, openErr := os.Open(p)
		if openErr != nil {
			return nil
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, domain))
		}
		return nil
	})
	return patterns
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
