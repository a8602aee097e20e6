package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"EquitySentinel/internal/model"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mockConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "data_source:\n  provider: mock\n  mock_price: 50\ndatabase:\n  sqlite_path: " + filepath.Join(dir, "test.db") + "\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "EquitySentinel ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAnalyze_MockProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	out, err := runCmd(t, "analyze", "thyao", "--config", mockConfig(t), "--no-summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<b>THYAO</b>") || !strings.Contains(out, "P/E: - | P/B: -") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAnalyze_JSON(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	out, err := runCmd(t, "analyze", "THYAO", "--config", mockConfig(t), "--json", "--record")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var a model.Analysis
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if a.Symbol != "THYAO.IS" || a.Ratios.PriceToEarnings.Valid {
		t.Errorf("unexpected analysis %s %+v", a.Symbol, a.Ratios)
	}
}

func TestAnalyze_RequiresSymbol(t *testing.T) {
	if _, err := runCmd(t, "analyze"); err == nil {
		t.Error("expected argument error")
	}
}
