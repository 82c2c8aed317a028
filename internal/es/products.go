package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

// ProductIndex keeps a searchable copy of active products.
type ProductIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewProductIndex(client *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{client: client, index: index}
}

type productDoc struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	MaterialUsed []string `json:"material_used"`
	Featured     bool     `json:"featured"`
}

func (ix *ProductIndex) IndexProduct(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(productDoc{
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Category:     p.Category,
		Subcategory:  p.Subcategory,
		MaterialUsed: p.MaterialUsed,
		Featured:     p.Featured,
	})
	if err != nil {
		return err
	}

	res, err := ix.client.Index(ix.index, bytes.NewReader(body),
		ix.client.Index.WithContext(ctx),
		ix.client.Index.WithDocumentID(p.ID),
	)
	if err != nil {
		return fmt.Errorf("es: index %s: %w", p.ID, err)
	}
	return checkResponse(res, "index")
}

func (ix *ProductIndex) DeleteProduct(ctx context.Context, id string) error {
	res, err := ix.client.Delete(ix.index, id, ix.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete %s: %w", id, err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse(res, "delete")
}

// SearchProducts returns matching document ids ordered by relevance.
func (ix *ProductIndex) SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []string, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^3", "category^2", "subcategory^2", "material_used", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from":    offset,
		"size":    limit,
		"_source": false,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ix.client.Search(
		ix.client.Search.WithContext(ctx),
		ix.client.Search.WithIndex(ix.index),
		ix.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		b, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("es: search: %s: %s", res.Status(), strings.TrimSpace(string(b)))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	ids := make([]string, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		ids[i] = h.ID
	}
	return r.Hits.Total.Value, ids, nil
}

func checkResponse(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("es: %s: %s: %s", op, res.Status(), strings.TrimSpace(string(b)))
	}
	return nil
}

const productMapping = `{
  "mappings": {
    "properties": {
      "title":         {"type": "text"},
      "slug":          {"type": "keyword"},
      "description":   {"type": "text"},
      "category":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "subcategory":   {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "material_used": {"type": "text"},
      "featured":      {"type": "boolean"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist and
// reports whether it did.
func (ix *ProductIndex) EnsureIndex(ctx context.Context) (bool, error) {
	res, err := ix.client.Indices.Exists([]string{ix.index}, ix.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("es: exists %s: %w", ix.index, err)
	}
	res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return false, nil
	case http.StatusNotFound:
	default:
		return false, fmt.Errorf("es: exists %s: %s", ix.index, res.Status())
	}

	res, err = ix.client.Indices.Create(ix.index,
		ix.client.Indices.Create.WithContext(ctx),
		ix.client.Indices.Create.WithBody(strings.NewReader(productMapping)),
	)
	if err != nil {
		return false, fmt.Errorf("es: create %s: %w", ix.index, err)
	}
	return true, checkResponse(res, "create index")
}
