package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func reply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newIndex(t *testing.T, fn roundTripFunc) *ProductIndex {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: fn,
	})
	require.NoError(t, err)
	return NewProductIndex(client, "products")
}

func TestProductIndex_IndexProduct(t *testing.T) {
	var gotPath string
	var gotDoc map[string]any
	ix := newIndex(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		return reply(http.StatusCreated, `{"result":"created"}`), nil
	})

	err := ix.IndexProduct(context.Background(), &models.Product{
		Base:     models.Base{ID: "65a1b2c3d4e5f60718293a4b"},
		Title:    "Jute Rug",
		Category: "Rugs",
	})
	require.NoError(t, err)
	assert.Equal(t, "/products/_doc/65a1b2c3d4e5f60718293a4b", gotPath)
	assert.Equal(t, "Jute Rug", gotDoc["title"])
	assert.Equal(t, "Rugs", gotDoc["category"])
}

func TestProductIndex_DeleteIgnoresMissing(t *testing.T) {
	ix := newIndex(t, func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodDelete, r.Method)
		return reply(http.StatusNotFound, `{"result":"not_found"}`), nil
	})
	assert.NoError(t, ix.DeleteProduct(context.Background(), "65a1b2c3d4e5f60718293a4b"))
}

func TestProductIndex_SearchProducts(t *testing.T) {
	ix := newIndex(t, func(r *http.Request) (*http.Response, error) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/products/_search"))
		return reply(http.StatusOK, `{"hits":{"total":{"value":7},"hits":[{"_id":"b"},{"_id":"a"}]}}`), nil
	})

	total, ids, err := ix.SearchProducts(context.Background(), "jute", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestProductIndex_SearchError(t *testing.T) {
	ix := newIndex(t, func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusBadRequest, `{"error":"parsing_exception"}`), nil
	})
	_, _, err := ix.SearchProducts(context.Background(), "jute", 0, 2)
	assert.ErrorContains(t, err, "parsing_exception")
}

func TestProductIndex_EnsureIndex(t *testing.T) {
	var calls []string
	exists := false
	ix := newIndex(t, func(r *http.Request) (*http.Response, error) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodHead:
			if exists {
				return reply(http.StatusOK, ``), nil
			}
			return reply(http.StatusNotFound, ``), nil
		case http.MethodPut:
			b, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(b), `"material_used"`)
			exists = true
			return reply(http.StatusOK, `{"acknowledged":true}`), nil
		}
		return reply(http.StatusBadRequest, `{}`), nil
	})

	created, err := ix.EnsureIndex(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = ix.EnsureIndex(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []string{"HEAD /products", "PUT /products", "HEAD /products"}, calls)
}
