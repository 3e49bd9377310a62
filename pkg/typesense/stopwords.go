package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const stopwordsPath = "/stopwords"

// Stopwords manages the stopwords sets of the cluster.
type Stopwords struct {
	call *apiCall
}

// Upsert creates or replaces the stopwords set with the given ID.
func (s *Stopwords) Upsert(ctx context.Context, id string, schema StopwordsSetSchema) (*StopwordsSet, error) {
	raw, err := s.call.put(ctx, stopwordsPath+"/"+url.PathEscape(id), nil, schema)
	if err != nil {
		return nil, err
	}
	var set StopwordsSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Retrieve returns all stopwords sets.
func (s *Stopwords) Retrieve(ctx context.Context) (*StopwordsSetsResponse, error) {
	raw, err := s.call.get(ctx, stopwordsPath, nil)
	if err != nil {
		return nil, err
	}
	var response StopwordsSetsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Stopword addresses one stopwords set by ID.
type Stopword struct {
	call *apiCall
	id   string
}

func (s *Stopword) endpoint() string {
	return stopwordsPath + "/" + url.PathEscape(s.id)
}

// Retrieve fetches the stopwords set.
func (s *Stopword) Retrieve(ctx context.Context) (*StopwordsSet, error) {
	raw, err := s.call.get(ctx, s.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var response StopwordsSetResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response.Stopwords, nil
}

// Delete removes the stopwords set.
func (s *Stopword) Delete(ctx context.Context) (*StopwordsSet, error) {
	raw, err := s.call.delete(ctx, s.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var set StopwordsSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return &set, nil
}
