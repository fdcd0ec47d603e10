package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/dataflows"
)

type recordingUploader struct {
	docs []dataflows.VectorDocument
	err  error
}

func (u *recordingUploader) AddDocuments(ctx context.Context, docs []dataflows.VectorDocument) error {
	u.docs = append(u.docs, docs...)
	return u.err
}

func TestFilenameMetadata(t *testing.T) {
	meta := filenameMetadata("/data/reports/NH투자증권_삼성전자_20251015.txt")

	if meta["securities_firm"] != "NH투자증권" {
		t.Errorf("firm = %s", meta["securities_firm"])
	}
	if meta["company"] != "삼성전자" {
		t.Errorf("company = %s", meta["company"])
	}
	if meta["date"] != "20251015" {
		t.Errorf("date = %s", meta["date"])
	}
	if meta["title"] != "NH투자증권_삼성전자_20251015.txt" {
		t.Errorf("title = %s", meta["title"])
	}
}

func TestFilenameMetadataDegradesToUnknown(t *testing.T) {
	meta := filenameMetadata("/data/reports/notes.md")

	if meta["securities_firm"] != "notes" {
		t.Errorf("firm = %s", meta["securities_firm"])
	}
	if meta["company"] != "Unknown" || meta["date"] != "Unknown" {
		t.Errorf("meta = %v", meta)
	}
}

func TestLoadReportsFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"NH투자증권_삼성전자_20251015.txt": "리포트 본문",
		"키움증권_카카오_20251001.md":     "다른 본문",
		"ignore.pdf":                "binary",
		"ignore.json":               "{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	reports, err := LoadReports(dir)
	if err != nil {
		t.Fatalf("LoadReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d", len(reports))
	}
}

func TestIngesterRunUploadsChunksWithMetadata(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("증권사 리포트 내용입니다. ", 60)
	if err := os.WriteFile(filepath.Join(dir, "NH투자증권_삼성전자_20251015.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &recordingUploader{}
	ing := NewIngester(NewSplitter(100, 20), store, zap.NewNop())

	n, err := ing.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n < 2 {
		t.Fatalf("expected multiple chunks, got %d", n)
	}
	if len(store.docs) != n {
		t.Errorf("uploaded %d docs, reported %d", len(store.docs), n)
	}
	for _, doc := range store.docs {
		if doc.Metadata["securities_firm"] != "NH투자증권" {
			t.Errorf("metadata lost: %v", doc.Metadata)
		}
	}
}

func TestIngesterRunEmptyDir(t *testing.T) {
	store := &recordingUploader{}
	ing := NewIngester(NewSplitter(100, 20), store, zap.NewNop())

	n, err := ing.Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 0 || len(store.docs) != 0 {
		t.Errorf("n = %d, docs = %d", n, len(store.docs))
	}
}
