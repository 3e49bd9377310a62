package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const collectionsPath = "/collections"

// Collections manages the collections of the cluster.
type Collections struct {
	call *apiCall
}

// Create creates a new collection from the given schema.
func (c *Collections) Create(ctx context.Context, schema CollectionSchema) (*CollectionResponse, error) {
	raw, err := c.call.post(ctx, collectionsPath, nil, schema)
	if err != nil {
		return nil, err
	}
	var response CollectionResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Retrieve returns all collections.
func (c *Collections) Retrieve(ctx context.Context) ([]CollectionResponse, error) {
	raw, err := c.call.get(ctx, collectionsPath, nil)
	if err != nil {
		return nil, err
	}
	var response []CollectionResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Collection addresses one collection by name or alias.
type Collection struct {
	call *apiCall
	name string
}

func (c *Collection) endpoint() string {
	return collectionsPath + "/" + url.PathEscape(c.name)
}

// Name returns the collection name this handle addresses.
func (c *Collection) Name() string {
	return c.name
}

// Retrieve returns the collection's schema and document count.
func (c *Collection) Retrieve(ctx context.Context) (*CollectionResponse, error) {
	raw, err := c.call.get(ctx, c.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var response CollectionResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Update alters the collection schema, adding or dropping fields.
func (c *Collection) Update(ctx context.Context, schema CollectionUpdateSchema) (*CollectionUpdateSchema, error) {
	raw, err := c.call.patch(ctx, c.endpoint(), nil, schema)
	if err != nil {
		return nil, err
	}
	var response CollectionUpdateSchema
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete drops the collection and all of its documents.
func (c *Collection) Delete(ctx context.Context) (*CollectionResponse, error) {
	raw, err := c.call.delete(ctx, c.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var response CollectionResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Documents manages the documents of this collection.
func (c *Collection) Documents() *Documents {
	return &Documents{call: c.call, collection: c.name}
}

// Document addresses one document by ID.
func (c *Collection) Document(id string) *Document {
	return &Document{call: c.call, collection: c.name, id: id}
}

// Overrides manages the curation overrides of this collection.
func (c *Collection) Overrides() *Overrides {
	return &Overrides{call: c.call, collection: c.name}
}

// Override addresses one curation override by ID.
func (c *Collection) Override(id string) *Override {
	return &Override{call: c.call, collection: c.name, id: id}
}

// Synonyms manages the synonyms of this collection.
func (c *Collection) Synonyms() *Synonyms {
	return &Synonyms{call: c.call, collection: c.name}
}

// Synonym addresses one synonym by ID.
func (c *Collection) Synonym(id string) *Synonym {
	return &Synonym{call: c.call, collection: c.name, id: id}
}
