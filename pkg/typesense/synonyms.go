package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

// Synonyms manages the synonyms of one collection.
type Synonyms struct {
	call       *apiCall
	collection string
}

func (s *Synonyms) endpoint(id string) string {
	path := collectionsPath + "/" + url.PathEscape(s.collection) + "/synonyms"
	if id != "" {
		path += "/" + url.PathEscape(id)
	}
	return path
}

// Upsert creates or replaces the synonym with the given ID.
func (s *Synonyms) Upsert(ctx context.Context, id string, schema SearchSynonymSchema) (*SearchSynonym, error) {
	raw, err := s.call.put(ctx, s.endpoint(id), nil, schema)
	if err != nil {
		return nil, err
	}
	var synonym SearchSynonym
	if err := json.Unmarshal(raw, &synonym); err != nil {
		return nil, err
	}
	return &synonym, nil
}

// Retrieve returns all synonyms of the collection.
func (s *Synonyms) Retrieve(ctx context.Context) (*SearchSynonymsResponse, error) {
	raw, err := s.call.get(ctx, s.endpoint(""), nil)
	if err != nil {
		return nil, err
	}
	var response SearchSynonymsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Synonym addresses one synonym by ID.
type Synonym struct {
	call       *apiCall
	collection string
	id         string
}

func (s *Synonym) endpoint() string {
	return collectionsPath + "/" + url.PathEscape(s.collection) + "/synonyms/" + url.PathEscape(s.id)
}

// Retrieve fetches the synonym.
func (s *Synonym) Retrieve(ctx context.Context) (*SearchSynonym, error) {
	raw, err := s.call.get(ctx, s.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var synonym SearchSynonym
	if err := json.Unmarshal(raw, &synonym); err != nil {
		return nil, err
	}
	return &synonym, nil
}

// Delete removes the synonym.
func (s *Synonym) Delete(ctx context.Context) (*SearchSynonym, error) {
	raw, err := s.call.delete(ctx, s.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var synonym SearchSynonym
	if err := json.Unmarshal(raw, &synonym); err != nil {
		return nil, err
	}
	return &synonym, nil
}
