package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"turingregex/internal/turing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults changed (-want +got):\n%s", diff)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turingregex.yaml")
	data := "mode: find\nalphabet: a-c\nreject: regex_reject\nmax_steps: 50\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TURINGREGEX_PREFIX", "env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "find" || cfg.Alphabet != "a-c" || cfg.MaxSteps != 50 || cfg.Prefix != "env" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ConfigFile != path {
		t.Fatalf("want config file %s got %s", path, cfg.ConfigFile)
	}

	req, err := cfg.Request("(a+b)+")
	if err != nil {
		t.Fatal(err)
	}
	want := turing.Request{Pattern: "(a+b)+", Alphabet: "a-c", Reject: "regex_reject", Prefix: "env", Mode: turing.Find}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing config file")
	}
}

func TestRequestBadMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "grep"
	if _, err := cfg.Request("a"); !errors.Is(err, turing.ErrUnknownMode) {
		t.Fatalf("want ErrUnknownMode got %v", err)
	}
}
