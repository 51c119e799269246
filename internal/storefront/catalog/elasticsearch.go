package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"storefront-workers/internal/models"
)

var ErrIndexNotFound = errors.New("product index not found")

// ElasticsearchProductSearch serves product lists from the product index.
type ElasticsearchProductSearch struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchProductSearch(client *elasticsearch.Client, index string) *ElasticsearchProductSearch {
	if index == "" {
		index = "products"
	}
	return &ElasticsearchProductSearch{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// buildProductSearch returns the search body for filter.
func buildProductSearch(filter models.ProductFilter) map[string]interface{} {
	filters := []interface{}{}
	if filter.StoreID != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"storeId": filter.StoreID},
		})
	} else {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"storeSlug": filter.StoreSlug},
		})
	}
	if filter.FeaturedOnly {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"featured": true},
		})
	}
	if filter.CategoryID != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"categoryId": filter.CategoryID},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filters,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"featured": "desc"},
			map[string]interface{}{"rating": "desc"},
			map[string]interface{}{"id": "asc"},
		},
	}
}

func (s *ElasticsearchProductSearch) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if filter.StoreID == "" && strings.TrimSpace(filter.StoreSlug) == "" {
		return nil, ErrEmptySlug
	}

	body, err := json.Marshal(buildProductSearch(filter))
	if err != nil {
		return nil, fmt.Errorf("encode product search: %w", err)
	}
	size := clampLimit(filter.Limit)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("product search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("product search failed: %s", res.String())
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode product search: %w", err)
	}

	products := make([]models.Product, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
