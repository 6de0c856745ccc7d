package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bitcoin-analyst/internal/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		Date:  "2026-08-30",
		Topic: "Bitcoin market today",
		Outputs: map[string]string{
			"search":         "articles",
			"recommendation": "BUY with High confidence",
		},
		Recommendation: types.Recommendation{Action: "BUY", Confidence: "HIGH", Detail: "momentum"},
		GeneratedAt:    time.Now(),
		HTML:           "<!DOCTYPE html><html><head></head><body>report</body></html>",
	}
}

func TestSaveWritesIndexDatedCopyAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	htmlPath, jsonPath, err := w.Save(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if htmlPath != filepath.Join(dir, "index.html") {
		t.Errorf("Unexpected html path: %s", htmlPath)
	}
	if jsonPath != filepath.Join(dir, "report_2026-08-30.json") {
		t.Errorf("Unexpected snapshot path: %s", jsonPath)
	}

	page, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("Failed to read index.html: %v", err)
	}
	if !strings.Contains(string(page), "report") {
		t.Errorf("Unexpected index.html content: %s", page)
	}

	dated, err := os.ReadFile(filepath.Join(dir, "report_2026-08-30.html"))
	if err != nil {
		t.Fatalf("Failed to read dated copy: %v", err)
	}
	if string(dated) != string(page) {
		t.Error("Expected dated copy to match index.html")
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	var snap map[string]any
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}
	if snap["date"] != "2026-08-30" {
		t.Errorf("Expected date in snapshot, got %v", snap["date"])
	}
	if _, ok := snap["html"]; ok {
		t.Error("Expected HTML excluded from JSON snapshot")
	}
	outputs, ok := snap["outputs"].(map[string]any)
	if !ok || outputs["recommendation"] == "" {
		t.Errorf("Expected stage outputs in snapshot, got %v", snap["outputs"])
	}
}

func TestSaveCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewWriter(dir)

	if _, _, err := w.Save(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("Expected index.html in created dir: %v", err)
	}
}

func TestSaveRejectsEmptyReport(t *testing.T) {
	w := NewWriter(t.TempDir())

	rep := sampleReport()
	rep.HTML = ""
	if _, _, err := w.Save(context.Background(), rep); err == nil {
		t.Error("Expected error for empty HTML")
	}

	rep = sampleReport()
	rep.Date = ""
	if _, _, err := w.Save(context.Background(), rep); err == nil {
		t.Error("Expected error for missing date")
	}
}
