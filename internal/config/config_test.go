package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/hammamikhairi/recipebox/internal/imageenc"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyConfig, "", "")
	fs.String(KeyDataset, "", "")
	fs.String(KeyLogLevel, "normal", "")
	fs.String(KeyLogFile, DefaultLogFile, "")
	fs.Int64(KeyMaxImageBytes, imageenc.DefaultMaxBytes, "")
	fs.Bool(KeyExpanded, false, "")
	fs.Bool(KeyVerbose, false, "")
	fs.Bool(KeyQuiet, false, "")
	return fs
}

// isolate runs the test in an empty directory so no stray config or
// .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dataset != "" || cfg.LogFile != DefaultLogFile || cfg.Expanded {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != logger.LevelNormal {
		t.Fatalf("expected normal level, got %s", cfg.LogLevel)
	}
	if cfg.MaxImageBytes != imageenc.DefaultMaxBytes {
		t.Fatalf("expected default max bytes, got %d", cfg.MaxImageBytes)
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("RECIPEBOX_DATASET", "mine.yaml")
	t.Setenv("RECIPEBOX_LOG_LEVEL", "verbose")
	t.Setenv("RECIPEBOX_MAX_IMAGE_BYTES", "1024")

	cfg, err := Load(testFlags())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dataset != "mine.yaml" {
		t.Fatalf("dataset = %q", cfg.Dataset)
	}
	if cfg.LogLevel != logger.LevelVerbose {
		t.Fatalf("level = %s", cfg.LogLevel)
	}
	if cfg.MaxImageBytes != 1024 {
		t.Fatalf("max bytes = %d", cfg.MaxImageBytes)
	}
}

func TestFlagsBeatEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("RECIPEBOX_DATASET", "env.json")

	fs := testFlags()
	if err := fs.Parse([]string{"--dataset", "flag.json", "--quiet"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dataset != "flag.json" {
		t.Fatalf("dataset = %q, want flag.json", cfg.Dataset)
	}
	if cfg.LogLevel != logger.LevelOff {
		t.Fatalf("--quiet should turn logging off, got %s", cfg.LogLevel)
	}
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	data := "dataset: from-file.toml\nexpanded: true\nlog-file: stderr\n"
	if err := os.WriteFile(filepath.Join(dir, "recipebox.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(testFlags())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dataset != "from-file.toml" || !cfg.Expanded || cfg.LogFile != "stderr" {
		t.Fatalf("file settings not applied: %+v", cfg)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)
	fs := testFlags()
	if err := fs.Parse([]string{"--config", filepath.Join(dir, "nope.yaml")}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{"RECIPEBOX_LOG_LEVEL": "chatty"}},
		{"zero max bytes", map[string]string{"RECIPEBOX_MAX_IMAGE_BYTES": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
