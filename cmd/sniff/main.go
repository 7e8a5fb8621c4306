// Command sniff is the CLI surface for the fuzzy file finder (spec
// §6.3): sniff [--json] [--limit N] [--help] <directory> [query].
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/nicolaygerold/sniff/internal/cache"
	"github.com/nicolaygerold/sniff/internal/platform"
	"github.com/nicolaygerold/sniff/internal/protocol"
	"github.com/nicolaygerold/sniff/internal/scan"
	"github.com/nicolaygerold/sniff/internal/search"
	"github.com/nicolaygerold/sniff/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	JSON      bool
	Limit     int
	Help      bool
	Directory string
	Query     string
}

const usage = "Usage: sniff [--json] [--limit N] [--help] <directory> [query]\n"

// parseArgs implements §6.3's permissive parsing: unrecognized flags
// are silently ignored, and positionals are assigned first-wins
// (directory, then query).
func parseArgs(args []string) options {
	opts := options{Limit: 10}
	var positionals []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--json":
			opts.JSON = true
		case a == "--help":
			opts.Help = true
		case a == "--limit":
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil && n > 0 {
					opts.Limit = n
				}
				i++
			}
		case strings.HasPrefix(a, "--limit="):
			if n, err := strconv.Atoi(strings.TrimPrefix(a, "--limit=")); err == nil && n > 0 {
				opts.Limit = n
			}
		case strings.HasPrefix(a, "-"):
			// unrecognized flag: silently ignored per §6.3.
		default:
			positionals = append(positionals, a)
		}
	}

	if len(positionals) > 0 {
		opts.Directory = positionals[0]
	}
	if len(positionals) > 1 {
		opts.Query = positionals[1]
	}
	return opts
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := parseArgs(args)
	if opts.Help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if opts.Directory == "" {
		reportError(opts.JSON, stdout, stderr, "missing directory")
		return 0
	}

	root, err := filepath.Abs(opts.Directory)
	if err != nil {
		reportError(opts.JSON, stdout, stderr, fmt.Sprintf("cannot resolve directory: %v", err))
		return 0
	}
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		reportError(opts.JSON, stdout, stderr, fmt.Sprintf("not a directory: %s", root))
		return 0
	}

	svc := service.New(root, scan.DefaultConfig())
	svc.Logf = func(format string, a ...any) { fmt.Fprintf(stderr, format+"\n", a...) }

	started := time.Now()
	cachePath, cacheErr := cacheFilePath(root)
	loaded := false
	if cacheErr == nil {
		loaded, _ = svc.LoadCache(cachePath)
	}
	if !loaded {
		if _, err := svc.IndexDirectory(); err != nil {
			reportError(opts.JSON, stdout, stderr, fmt.Sprintf("indexing failed: %v", err))
			return 0
		}
		if cacheErr == nil {
			if err := svc.SaveCache(cachePath); err != nil {
				svc.Logf("sniff: cache save failed: %v", err)
			}
		}
	}
	indexTime := time.Since(started)

	colorize := isatty.IsTerminal(os.Stdout.Fd())

	switch {
	case opts.Query != "":
		runOneShot(svc, opts, stdout, colorize)
	case opts.JSON:
		runJSON(svc, stdin, stdout, indexTime)
	default:
		runInteractive(svc, stdin, stdout, opts, colorize)
	}
	return 0
}

func cacheFilePath(root string) (string, error) {
	dir, err := platform.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cache.FileName(root)), nil
}

func reportError(jsonMode bool, stdout, stderr io.Writer, message string) {
	if jsonMode {
		_ = protocol.NewWriter(stdout).Error(message)
		return
	}
	fmt.Fprintln(stderr, "sniff:", message)
}

func runJSON(svc *service.Service, stdin io.Reader, stdout io.Writer, indexTime time.Duration) {
	w := protocol.NewWriter(stdout)
	_ = w.Ready(svc.Index.Count(), indexTime.Milliseconds())

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		start := time.Now()
		results := svc.Search(line)
		elapsed := time.Since(start)

		items := make([]protocol.ResultItem, len(results))
		for i, r := range results {
			items[i] = protocol.ResultItem{Path: r.Entry.Path, Score: r.Score, Positions: r.Positions}
		}
		_ = w.Results(line, elapsed.Milliseconds(), items)
	}
}

func runOneShot(svc *service.Service, opts options, stdout io.Writer, colorize bool) {
	results := svc.Search(opts.Query)
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	printResults(stdout, results, colorize)
}

func runInteractive(svc *service.Service, stdin io.Reader, stdout io.Writer, opts options, colorize bool) {
	sc := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		results := svc.Search(line)
		if len(results) > opts.Limit {
			results = results[:opts.Limit]
		}
		printResults(stdout, results, colorize)
	}
}

func printResults(stdout io.Writer, results []search.ScoredEntry, colorize bool) {
	for _, r := range results {
		fmt.Fprintf(stdout, "%s (score: %d)\n", highlight(r.Entry.Path, r.Positions, colorize), r.Score)
	}
}

// highlight wraps the bytes at positions in bold ANSI codes. It is a
// presentation detail of the CLI front-end, not a scoring feature: it
// renders the positions the Scorer already computed.
func highlight(path string, positions []int, colorize bool) string {
	if !colorize || len(positions) == 0 {
		return path
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		if marked[i] {
			b.WriteString("\x1b[1m")
			b.WriteByte(path[i])
			b.WriteString("\x1b[0m")
		} else {
			b.WriteByte(path[i])
		}
	}
	return b.String()
}
