package typesense

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Documents manages the documents of one collection.
type Documents struct {
	call       *apiCall
	collection string
}

func (d *Documents) endpoint(action string) string {
	path := collectionsPath + "/" + url.PathEscape(d.collection) + "/documents"
	if action != "" {
		path += "/" + action
	}
	return path
}

// Create indexes a new document; the server rejects duplicates by ID.
func (d *Documents) Create(ctx context.Context, document any, params DocumentWriteParams) (map[string]any, error) {
	return d.write(ctx, document, params.values("create"))
}

// Upsert indexes the document, replacing an existing one with the same ID.
func (d *Documents) Upsert(ctx context.Context, document any, params DocumentWriteParams) (map[string]any, error) {
	return d.write(ctx, document, params.values("upsert"))
}

// Update partially updates an existing document.
func (d *Documents) Update(ctx context.Context, document any, params DocumentWriteParams) (map[string]any, error) {
	raw, err := d.call.patch(ctx, d.endpoint(""), params.values("update"), document)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

func (d *Documents) write(ctx context.Context, document any, params url.Values) (map[string]any, error) {
	raw, err := d.call.post(ctx, d.endpoint(""), params, document)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Delete removes all documents matching params.FilterBy.
func (d *Documents) Delete(ctx context.Context, params DeleteDocumentsParams) (*DeleteDocumentsResponse, error) {
	values := url.Values{}
	if params.FilterBy != "" {
		values.Set("filter_by", params.FilterBy)
	}
	if params.BatchSize > 0 {
		values.Set("batch_size", strconv.Itoa(params.BatchSize))
	}
	raw, err := d.call.delete(ctx, d.endpoint(""), values)
	if err != nil {
		return nil, err
	}
	var response DeleteDocumentsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Search runs a search over the collection.
func (d *Documents) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	raw, err := d.call.get(ctx, d.endpoint("search"), params.Values())
	if err != nil {
		return nil, err
	}
	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Import bulk-indexes documents as JSONL, batching client-side when
// params.BatchSize is set. The result carries one entry per document, in
// input order.
func (d *Documents) Import(ctx context.Context, documents []any, params ImportParams) ([]ImportResult, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: cannot import an empty list of documents", ErrRequestMalformed)
	}
	if params.BatchSize > 0 {
		batchSize := params.BatchSize
		flat := params
		flat.BatchSize = 0
		var results []ImportResult
		for start := 0; start < len(documents); start += batchSize {
			end := min(start+batchSize, len(documents))
			batchResults, err := d.Import(ctx, documents[start:end], flat)
			if err != nil {
				return nil, err
			}
			results = append(results, batchResults...)
		}
		return results, nil
	}

	lines := make([]string, 0, len(documents))
	for _, document := range documents {
		encoded, err := json.Marshal(document)
		if err != nil {
			return nil, err
		}
		lines = append(lines, string(encoded))
	}
	return d.ImportJSONL(ctx, strings.Join(lines, "\n"), params)
}

// ImportJSONL bulk-indexes a pre-encoded JSONL payload.
func (d *Documents) ImportJSONL(ctx context.Context, jsonl string, params ImportParams) ([]ImportResult, error) {
	raw, err := d.call.postRaw(ctx, d.endpoint("import"), params.values(), []byte(jsonl))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	results := make([]ImportResult, 0, len(lines))
	for _, line := range lines {
		var result ImportResult
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			return nil, fmt.Errorf("typesense: invalid import response line %q: %w", line, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Export streams the collection's documents as JSONL.
func (d *Documents) Export(ctx context.Context, params ExportParams) (string, error) {
	raw, err := d.call.getRaw(ctx, d.endpoint("export"), params.values())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Document addresses one document of a collection by ID.
type Document struct {
	call       *apiCall
	collection string
	id         string
}

func (d *Document) endpoint() string {
	return collectionsPath + "/" + url.PathEscape(d.collection) + "/documents/" + url.PathEscape(d.id)
}

// Retrieve fetches the document.
func (d *Document) Retrieve(ctx context.Context) (map[string]any, error) {
	raw, err := d.call.get(ctx, d.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Update partially updates the document.
func (d *Document) Update(ctx context.Context, document any) (map[string]any, error) {
	raw, err := d.call.patch(ctx, d.endpoint(), nil, document)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Delete removes the document and returns its last state.
func (d *Document) Delete(ctx context.Context) (map[string]any, error) {
	raw, err := d.call.delete(ctx, d.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

func decodeDocument(raw json.RawMessage) (map[string]any, error) {
	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, err
	}
	return document, nil
}
