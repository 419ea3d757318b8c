package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ostnam/velox/pkg/eval"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
max_loop_iterations: 1000
log_level: verbose
debug: true
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.MaxLoopIterations = 1000
	want.LogLevel = "verbose"
	want.Debug = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, src := range []string{"", "# nothing set\n"} {
		cfg, err := Decode(strings.NewReader(src))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", src, err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("Decode(%q) mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "max_loops: 3\n", "field max_loops not found"},
		{"negative loop cap", "max_loop_iterations: -1\n", "max_loop_iterations must not be negative"},
		{"wrong type", "debug: [1, 2]\n", "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeUncappedDepth(t *testing.T) {
	cfg, err := Decode(strings.NewReader("max_call_depth: -1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Runtime(nil).MaxCallDepth; got != -1 {
		t.Errorf("want -1 passed through to the interpreter, got %d", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "velox.yaml")
	if err := os.WriteFile(path, []byte("max_call_depth: 64\nhistory_file: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxCallDepth != 64 || cfg.HistoryPath() != "" {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("want error for a missing file")
	}
}

func TestHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	tests := []struct {
		file string
		want string
	}{
		{DefaultHistoryFile, filepath.Join(home, ".velox_history")},
		{"~", home},
		{"/var/tmp/hist", "/var/tmp/hist"},
		{"~other/hist", "~other/hist"},
		{"", ""},
	}
	for _, tt := range tests {
		cfg := Config{HistoryFile: tt.file}
		if got := cfg.HistoryPath(); got != tt.want {
			t.Errorf("HistoryPath(%q): want %q, got %q", tt.file, tt.want, got)
		}
	}
}

func TestRuntime(t *testing.T) {
	var out strings.Builder
	cfg := Config{MaxLoopIterations: 10, MaxCallDepth: 20}
	got := cfg.Runtime(&out)
	want := eval.RuntimeConfig{Output: &out, MaxLoopIterations: 10, MaxCallDepth: 20}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}
