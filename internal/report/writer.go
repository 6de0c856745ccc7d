package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/types"
)

// Writer persists rendered reports and their JSON snapshots.
type Writer struct {
	outputDir string
}

// NewWriter creates a report writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{outputDir: outputDir}
}

// Save writes the rendered HTML as index.html plus a dated copy, and a
// parallel JSON snapshot carrying every stage output for the report date.
// It returns the paths of the index page and the snapshot.
func (w *Writer) Save(ctx context.Context, rep *types.Report) (htmlPath, jsonPath string, err error) {
	if rep.HTML == "" {
		return "", "", fmt.Errorf("report has no HTML content")
	}
	if rep.Date == "" {
		return "", "", fmt.Errorf("report has no date")
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", "", err
	}

	htmlPath = filepath.Join(w.outputDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(rep.HTML), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report: %w", err)
	}

	datedPath := filepath.Join(w.outputDir, fmt.Sprintf("report_%s.html", rep.Date))
	if err := os.WriteFile(datedPath, []byte(rep.HTML), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write dated report: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal report snapshot: %w", err)
	}
	jsonPath = filepath.Join(w.outputDir, fmt.Sprintf("report_%s.json", rep.Date))
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report snapshot: %w", err)
	}

	logger.Info(ctx, "Report saved", "html", htmlPath, "snapshot", jsonPath, "date", rep.Date)
	return htmlPath, jsonPath, nil
}
