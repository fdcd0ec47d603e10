package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/roboadvisor/investai/internal/config"
	"github.com/roboadvisor/investai/internal/models"
)

// VectorClient queries the vector-store service that holds embedded
// analyst-report chunks. The service owns embedding; this client only
// ships text back and forth.
type VectorClient struct {
	client     *resty.Client
	collection string
}

// NewVectorClient creates a new vector-store client
func NewVectorClient(cfg *config.Config) *VectorClient {
	client := resty.New()
	client.SetBaseURL(cfg.VectorURL)
	client.SetTimeout(30 * time.Second)

	return &VectorClient{
		client:     client,
		collection: cfg.VectorCollection,
	}
}

type vectorQueryRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type vectorQueryResponse struct {
	Results []struct {
		Content  string            `json:"content"`
		Metadata map[string]string `json:"metadata"`
		Score    float64           `json:"score"`
	} `json:"results"`
}

// Search returns the top-k passages most similar to the query, best first.
func (v *VectorClient) Search(ctx context.Context, query string, k int) ([]*models.Passage, error) {
	var out vectorQueryResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(vectorQueryRequest{Query: query, K: k}).
		SetResult(&out).
		Post("/collections/" + v.collection + "/query")
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("vector API error %d: %s", resp.StatusCode(), resp.String())
	}

	passages := make([]*models.Passage, 0, len(out.Results))
	for _, r := range out.Results {
		p := &models.Passage{
			Title:   metadataOr(r.Metadata, "title", "Unknown"),
			Firm:    metadataOr(r.Metadata, "securities_firm", "Unknown"),
			Date:    metadataOr(r.Metadata, "date", "Unknown"),
			Content: r.Content,
		}
		passages = append(passages, p)
	}

	return passages, nil
}

// VectorDocument is one chunk to be embedded and stored.
type VectorDocument struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// AddDocuments uploads chunks to the collection for embedding.
func (v *VectorClient) AddDocuments(ctx context.Context, docs []VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"documents": docs}).
		Post("/collections/" + v.collection + "/add")
	if err != nil {
		return fmt.Errorf("vector add: %w", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return fmt.Errorf("vector API error %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}

func metadataOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}
