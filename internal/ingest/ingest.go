package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/dataflows"
)

// Uploader ships chunks to the vector store for embedding.
type Uploader interface {
	AddDocuments(ctx context.Context, docs []dataflows.VectorDocument) error
}

// Report is one analyst-report file with metadata derived from its name.
type Report struct {
	Path     string
	Content  string
	Metadata map[string]string
}

// Ingester loads report files, chunks them and uploads the chunks.
type Ingester struct {
	splitter *Splitter
	store    Uploader
	log      *zap.Logger
}

func NewIngester(splitter *Splitter, store Uploader, log *zap.Logger) *Ingester {
	return &Ingester{splitter: splitter, store: store, log: log}
}

// LoadReports reads every .txt and .md file under dir. Filenames are
// expected as firm_company_date.ext; missing parts degrade to "Unknown".
func LoadReports(dir string) ([]*Report, error) {
	var reports []*Report

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read report %s: %w", path, err)
		}

		reports = append(reports, &Report{
			Path:     path,
			Content:  string(content),
			Metadata: filenameMetadata(path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// filenameMetadata derives source metadata from names like
// "NH투자증권_삼성전자_20251015.txt".
func filenameMetadata(path string) map[string]string {
	filename := filepath.Base(path)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, "_")

	meta := map[string]string{
		"title":           filename,
		"securities_firm": "Unknown",
		"company":         "Unknown",
		"date":            "Unknown",
		"source":          path,
	}
	if len(parts) > 0 && parts[0] != "" {
		meta["securities_firm"] = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		meta["company"] = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		meta["date"] = parts[2]
	}
	return meta
}

// Run ingests every report under dir and returns the number of chunks
// uploaded.
func (i *Ingester) Run(ctx context.Context, dir string) (int, error) {
	reports, err := LoadReports(dir)
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		i.log.Warn("no report files found", zap.String("dir", dir))
		return 0, nil
	}
	i.log.Info("reports loaded", zap.Int("files", len(reports)))

	var docs []dataflows.VectorDocument
	for _, report := range reports {
		chunks := i.splitter.Split(report.Content)
		for _, chunk := range chunks {
			docs = append(docs, dataflows.VectorDocument{
				Content:  chunk,
				Metadata: report.Metadata,
			})
		}
		i.log.Info("report chunked",
			zap.String("file", filepath.Base(report.Path)), zap.Int("chunks", len(chunks)))
	}

	if err := i.store.AddDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("upload chunks: %w", err)
	}

	i.log.Info("ingestion complete", zap.Int("chunks", len(docs)))
	return len(docs), nil
}
