package typesense

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

func TestDocumentsCreateRoundTripsBody(t *testing.T) {
	var receivedBody []byte
	var receivedAction string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/collections/books/documents", r.URL.Path)
		receivedAction = r.URL.Query().Get("action")
		var err error
		receivedBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(receivedBody)
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	input := book{ID: "1", Title: "Dune", Rating: 5}
	created, err := client.Collection("books").Documents().Create(context.Background(), input, DocumentWriteParams{})
	require.NoError(t, err)

	assert.Equal(t, "create", receivedAction)

	// the request body, decoded, equals the input document
	var decoded book
	require.NoError(t, json.Unmarshal(receivedBody, &decoded))
	assert.Equal(t, input, decoded)

	// and the response comes back structurally unchanged
	assert.Equal(t, map[string]any{"id": "1", "title": "Dune", "rating": float64(5)}, created)
}

func TestDocumentsSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/books/documents/search", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "dune", query.Get("q"))
		assert.Equal(t, "title", query.Get("query_by"))
		assert.Equal(t, "rating:>3", query.Get("filter_by"))
		assert.Equal(t, "true", query.Get("prefix"))
		_, _ = w.Write([]byte(`{
			"found": 1,
			"out_of": 10,
			"page": 1,
			"search_time_ms": 2,
			"hits": [{"document": {"id": "1", "title": "Dune"}, "text_match": 12345}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	prefix := true
	result, err := client.Collection("books").Documents().Search(context.Background(), SearchParams{
		Q:        "dune",
		QueryBy:  "title",
		FilterBy: "rating:>3",
		Prefix:   &prefix,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Found)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Dune", result.Hits[0].Document["title"])
	assert.EqualValues(t, 12345, result.Hits[0].TextMatch)
}

func TestDocumentsImport(t *testing.T) {
	var receivedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/books/documents/import", r.URL.Path)
		assert.Equal(t, "upsert", r.URL.Query().Get("action"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		receivedBody = string(body)
		_, _ = w.Write([]byte("{\"success\":true}\n{\"success\":false,\"error\":\"bad document\"}"))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	results, err := client.Collection("books").Documents().Import(context.Background(), []any{
		book{ID: "1", Title: "Dune", Rating: 5},
		book{ID: "2", Title: "Emma", Rating: 4},
	}, ImportParams{Action: "upsert"})
	require.NoError(t, err)

	lines := strings.Split(receivedBody, "\n")
	require.Len(t, lines, 2)
	var first book
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Dune", first.Title)

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "bad document", results[1].Error)
}

func TestDocumentsImportBatches(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		responses := make([]string, len(lines))
		for i := range lines {
			responses[i] = `{"success":true}`
		}
		_, _ = w.Write([]byte(strings.Join(responses, "\n")))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	documents := make([]any, 5)
	for i := range documents {
		documents[i] = book{ID: "1", Title: "x"}
	}
	results, err := client.Collection("books").Documents().Import(context.Background(), documents, ImportParams{BatchSize: 2})
	require.NoError(t, err)
	assert.Len(t, results, 5)
	assert.Equal(t, 3, requests)
}

func TestDocumentsImportRejectsEmptyInput(t *testing.T) {
	client := newTestClient(t, Config{
		Nodes:  []Node{{Host: "localhost", Port: 8108, Protocol: "http"}},
		APIKey: "test-key",
	})

	_, err := client.Collection("books").Documents().Import(context.Background(), nil, ImportParams{})
	assert.ErrorIs(t, err, ErrRequestMalformed)
}

func TestDocumentsExport(t *testing.T) {
	const jsonl = "{\"id\":\"1\"}\n{\"id\":\"2\"}"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/books/documents/export", r.URL.Path)
		assert.Equal(t, "rating:>3", r.URL.Query().Get("filter_by"))
		_, _ = w.Write([]byte(jsonl))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	exported, err := client.Collection("books").Documents().Export(context.Background(), ExportParams{FilterBy: "rating:>3"})
	require.NoError(t, err)
	assert.Equal(t, jsonl, exported)
}

func TestDocumentsDeleteByFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "rating:<2", r.URL.Query().Get("filter_by"))
		assert.Equal(t, "100", r.URL.Query().Get("batch_size"))
		_, _ = w.Write([]byte(`{"num_deleted": 7}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	response, err := client.Collection("books").Documents().Delete(context.Background(), DeleteDocumentsParams{
		FilterBy:  "rating:<2",
		BatchSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, response.NumDeleted)
}

func TestDocumentRetrieveUpdateDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/books/documents/1", r.URL.Path)
		switch r.Method {
		case http.MethodGet, http.MethodDelete:
			_, _ = w.Write([]byte(`{"id":"1","title":"Dune"}`))
		case http.MethodPatch:
			_, _ = w.Write([]byte(`{"id":"1","title":"Dune","rating":5}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))
	document := client.Collection("books").Document("1")

	retrieved, err := document.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dune", retrieved["title"])

	updated, err := document.Update(context.Background(), map[string]any{"rating": 5})
	require.NoError(t, err)
	assert.Equal(t, float64(5), updated["rating"])

	deleted, err := document.Delete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", deleted["id"])
}
