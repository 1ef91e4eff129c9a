package trieve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/search"
)

const defaultBaseURL = "https://api.trieve.ai"

// Provider queries a Trieve dataset whose chunks carry the product document
// as metadata.
type Provider struct {
	BaseURL   string
	APIKey    string
	DatasetID string
	Client    *http.Client
}

var _ search.Provider = &Provider{}

func NewProvider(baseURL, apiKey, datasetID string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		DatasetID: datasetID,
		Client:    &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	SearchType string `json:"search_type"`
}

type searchResponse struct {
	ScoreChunks []struct {
		Chunk struct {
			ID         string          `json:"id"`
			TrackingID string          `json:"tracking_id"`
			Metadata   catalog.Product `json:"metadata"`
		} `json:"chunk"`
		Score float64 `json:"score"`
	} `json:"score_chunks"`
}

func (p *Provider) Search(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	payload, err := json.Marshal(searchRequest{
		Query:      query,
		Limit:      limit,
		SearchType: "hybrid",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/chunk/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TR-Dataset", p.DatasetID)
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trieve request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trieve error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	products := make([]catalog.Product, 0, len(out.ScoreChunks))
	for _, sc := range out.ScoreChunks {
		meta := sc.Chunk.Metadata
		if meta.ID == "" {
			meta.ID = sc.Chunk.TrackingID
		}
		prod, err := meta.Normalize()
		if err != nil {
			// chunks uploaded without product metadata are not products
			continue
		}
		products = append(products, prod)
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}
