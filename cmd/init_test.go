package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshdayorg/vibe-check/internal/config"
)

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "init", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vibecheck.config.json"))
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config not valid json: %v", err)
	}
	if cfg.Extends != "vibe-check:recommended" {
		t.Errorf("basic type must extend recommended, got %q", cfg.Extends)
	}
}

func TestInitProfileTypes(t *testing.T) {
	for _, typ := range []string{"strict", "next", "supabase"} {
		dir := t.TempDir()
		if _, err := execute(t, "init", dir, "--type", typ); err != nil {
			t.Fatalf("init --type %s failed: %v", typ, err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "vibecheck.config.json"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "vibe-check:"+typ) {
			t.Errorf("type %s: wrong extends in %s", typ, data)
		}
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibecheck.config.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "init", dir)
	if err == nil || !strings.Contains(err.Error(), "refusing to overwrite") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{}\n" {
		t.Errorf("existing config was modified")
	}
}

func TestInitUnknownType(t *testing.T) {
	if _, err := execute(t, "init", t.TempDir(), "--type", "paranoid"); err == nil {
		t.Fatal("expected unknown type error")
	}
}
