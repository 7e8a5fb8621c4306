package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseArgsFirstWinsPositionals(t *testing.T) {
	opts := parseArgs([]string{"--json", "/tmp/proj", "main", "extra", "--unknown-flag"})
	if !opts.JSON {
		t.Error("JSON should be true")
	}
	if opts.Directory != "/tmp/proj" {
		t.Errorf("Directory = %q, want /tmp/proj", opts.Directory)
	}
	if opts.Query != "main" {
		t.Errorf("Query = %q, want main", opts.Query)
	}
}

func TestParseArgsLimit(t *testing.T) {
	opts := parseArgs([]string{"--limit", "5", "."})
	if opts.Limit != 5 {
		t.Errorf("Limit = %d, want 5", opts.Limit)
	}
	opts2 := parseArgs([]string{"--limit=7", "."})
	if opts2.Limit != 7 {
		t.Errorf("Limit = %d, want 7", opts2.Limit)
	}
}

func TestParseArgsHelp(t *testing.T) {
	opts := parseArgs([]string{"--help"})
	if !opts.Help {
		t.Error("Help should be true")
	}
}

func TestRunOneShotPrintsScoredPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{dir, "main"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "main.go (score:") {
		t.Errorf("stdout = %q, want it to contain a scored main.go line", stdout.String())
	}
}

func TestRunJSONModeEmitsReadyThenResults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", dir}, strings.NewReader("main\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() exit code = %d, want 0", code)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (ready + results): %q", len(lines), stdout.String())
	}
	var ready map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ready); err != nil || ready["type"] != "ready" {
		t.Errorf("first line = %q, want a ready event", lines[0])
	}
	var results map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &results); err != nil || results["type"] != "results" {
		t.Errorf("second line = %q, want a results event", lines[1])
	}
}

func TestRunJSONWithQueryStillRunsOneShot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", dir, "main"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "main.go (score:") {
		t.Errorf("stdout = %q, want one-shot output even with --json set", stdout.String())
	}
	var ready map[string]any
	if json.Unmarshal(stdout.Bytes(), &ready) == nil {
		t.Errorf("stdout = %q, should not be a JSON ready event when a query is given", stdout.String())
	}
}

func TestRunMissingDirectoryReportsErrorExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "missing directory") {
		t.Errorf("stderr = %q, want a missing-directory message", stderr.String())
	}
}
