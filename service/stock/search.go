package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns the singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService resolves free-text inventory searches against an optional
// Elasticsearch index of variants. When unconfigured the listing falls back
// to SQL LIKE.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		// Not configured: callers use the SQL fallback.
		return &SearchService{}
	}
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "storeops_variant"
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether the Elasticsearch path is available.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// SearchVariantIDs returns variant entity IDs matching the query, best first.
func (s *SearchService) SearchVariantIDs(ctx context.Context, query string, limit int) ([]uint, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	if limit <= 0 {
		limit = 100
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"sku^3", "name^2", "product_name"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	var ids []uint
	for _, hit := range esResp.Hits.Hits {
		if entityID, ok := hit.Source["entity_id"].(float64); ok {
			ids = append(ids, uint(entityID))
		}
	}
	return ids, nil
}
