package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"BankReserves/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("expected version in output, got %q", out)
	}
}

func TestRunCmd_JSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out", "metrics.db")
	cfg := writeConfig(t, "model:\n  population: 8\n  seed: 5\ndatabase:\n  sqlite_path: \""+filepath.ToSlash(dbPath)+"\"\n")

	out, err := execute(t, "run", "--config", cfg, "--ticks", "4", "--json")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	var rep model.TickReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rep.Tick != 4 {
		t.Errorf("expected tick 4, got %d", rep.Tick)
	}
	if rep.Census.Total() != 8 {
		t.Errorf("expected census over 8 persons, got %+v", rep.Census)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected sqlite database to be created: %v", err)
	}
}

func TestRunCmd_PopulationFlag(t *testing.T) {
	cfg := writeConfig(t, "model:\n  seed: 1\n")
	out, err := execute(t, "run", "--config", cfg, "--ticks", "1", "--population", "3")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "tick 1") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunCmd_RejectsBadConfig(t *testing.T) {
	cfg := writeConfig(t, "model:\n  reserve_percent: 2\n")
	if _, err := execute(t, "run", "--config", cfg, "--ticks", "1"); err == nil {
		t.Error("expected validation error")
	}
}
