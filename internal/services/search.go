package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"digitalstore_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const productIndex = "products"

// Search mirrors the product catalog into Elasticsearch. All indexing is
// best-effort; Mongo stays the source of truth.
type Search struct {
	client *elasticsearch.Client
}

func NewSearch(client *elasticsearch.Client) *Search {
	return &Search{client: client}
}

// Enabled reports whether an Elasticsearch client was configured.
func (s *Search) Enabled() bool {
	return s != nil && s.client != nil
}

// IndexProduct upserts a product document into the search index.
func (s *Search) IndexProduct(ctx context.Context, p models.Product) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Println("❌ Could not marshal product for indexing:", err)
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		log.Println("❌ Elasticsearch index request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️  Elasticsearch rejected product %s: %s", p.ID.Hex(), res.String())
	}
}

// RemoveProduct drops a product from the index after deletion.
func (s *Search) RemoveProduct(ctx context.Context, id string) {
	if !s.Enabled() {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productIndex,
		DocumentID: id,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		log.Println("❌ Elasticsearch delete request failed:", err)
		return
	}
	res.Body.Close()
}

// QueryProducts runs a multi_match over both languages of name and
// description.
func (s *Search) QueryProducts(ctx context.Context, query string) ([]models.Product, error) {
	if !s.Enabled() {
		return nil, errors.New("elasticsearch is not configured")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name.en", "name.es", "description.en", "description.es"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("could not encode search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
