package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ostnam/velox/pkg/config"
)

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.vx")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFile(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "success",
			src:        "function add(a, b) { return a + b; }\nprint(add(2, 3));\n",
			wantCode:   0,
			wantStdout: "5\n",
		},
		{
			name:       "runtime error",
			src:        "print(1 / 0);\n",
			wantCode:   1,
			wantStderr: "runtime error in PATH at 1:9: division by zero",
		},
		{
			name:       "parse error",
			src:        "print(1)\n",
			wantCode:   1,
			wantStderr: "parse error in PATH at 1:9: expected ';', found end of input",
		},
		{
			name:       "lex error",
			src:        "print(1);\nvar a = $;\n",
			wantCode:   1,
			wantStderr: "lex error in PATH at 2:9: unexpected character '$'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProgram(t, tt.src)
			var stdout, stderr strings.Builder
			code := runFile(path, config.Default(), &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("want exit code %d, got %d (stderr %q)", tt.wantCode, code, stderr.String())
			}
			if stdout.String() != tt.wantStdout {
				t.Errorf("want stdout %q, got %q", tt.wantStdout, stdout.String())
			}
			wantStderr := strings.ReplaceAll(tt.wantStderr, "PATH", path)
			if !strings.Contains(stderr.String(), wantStderr) {
				t.Errorf("want stderr containing %q, got %q", wantStderr, stderr.String())
			}
		})
	}
}

func TestRunFileMissing(t *testing.T) {
	var stdout, stderr strings.Builder
	code := runFile(filepath.Join(t.TempDir(), "nope.vx"), config.Default(), &stdout, &stderr)
	if code != 1 {
		t.Errorf("want exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "velox: ") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRunFileDebug(t *testing.T) {
	path := writeProgram(t, "print(1);")
	cfg := config.Default()
	cfg.Debug = true
	var stdout, stderr strings.Builder
	if code := runFile(path, cfg, &stdout, &stderr); code != 0 {
		t.Fatalf("want exit code 0, got %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Tokens scanned:", "1:1 'print'", "AST parsed:", "Print\n  | Num: 1\n", "\n1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output lacks %q:\n%s", want, out)
		}
	}
}

func TestRunFileLoopLimit(t *testing.T) {
	path := writeProgram(t, "while (1) { }")
	cfg := config.Default()
	cfg.MaxLoopIterations = 10
	var stdout, stderr strings.Builder
	if code := runFile(path, cfg, &stdout, &stderr); code != 1 {
		t.Errorf("want exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "loop exceeded 10 iterations") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "velox.yaml")
	if err := os.WriteFile(path, []byte("max_loop_iterations: 50\nmax_call_depth: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("velox", flag.ContinueOnError)
	maxLoop := fs.Int("max-loop", 0, "")
	maxDepth := fs.Int("max-depth", 0, "")
	logLevel := fs.String("loglevel", "info", "")
	debug := fs.Bool("debug", false, "")
	if err := fs.Parse([]string{"-max-loop", "5", "prog.vx"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(fs, path, *maxLoop, *maxDepth, *logLevel, *debug)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxLoopIterations != 5 || cfg.MaxCallDepth != 7 {
		t.Errorf("want max loop 5 from the flag and max depth 7 from the file, got %+v", cfg)
	}

	if err := fs.Parse([]string{"-max-depth", "-1"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(fs, "", *maxLoop, *maxDepth, *logLevel, *debug)
	if err != nil || cfg.MaxCallDepth != -1 {
		t.Errorf("a negative call depth lifts the cap, got %+v, %v", cfg, err)
	}

	if err := fs.Parse([]string{"-max-loop", "-1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(fs, "", *maxLoop, *maxDepth, *logLevel, *debug); err == nil {
		t.Error("want error for a negative loop cap")
	}
}
