package typesense

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasUpsertRetrieveDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aliases/books", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			var schema AliasSchema
			require.NoError(t, json.NewDecoder(r.Body).Decode(&schema))
			require.NoError(t, json.NewEncoder(w).Encode(CollectionAlias{
				Name:           "books",
				CollectionName: schema.CollectionName,
			}))
		case http.MethodGet, http.MethodDelete:
			_, _ = w.Write([]byte(`{"name":"books","collection_name":"books-2026-08-27-10-00-00"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))
	ctx := context.Background()

	upserted, err := client.Aliases().Upsert(ctx, "books", AliasSchema{CollectionName: "books-2026-08-27-10-00-00"})
	require.NoError(t, err)
	assert.Equal(t, "books-2026-08-27-10-00-00", upserted.CollectionName)

	retrieved, err := client.Alias("books").Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "books", retrieved.Name)

	deleted, err := client.Alias("books").Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "books", deleted.Name)
}

func TestAliasesRetrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aliases", r.URL.Path)
		_, _ = w.Write([]byte(`{"aliases":[{"name":"books","collection_name":"books-1"},{"name":"authors","collection_name":"authors-1"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	response, err := client.Aliases().Retrieve(context.Background())
	require.NoError(t, err)
	require.Len(t, response.Aliases, 2)
	assert.Equal(t, "authors-1", response.Aliases[1].CollectionName)
}
