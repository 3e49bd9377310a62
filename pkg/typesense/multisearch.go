package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const multiSearchPath = "/multi_search"

// MultiSearch sends multiple search queries in a single request. Results
// come back in request order.
type MultiSearch struct {
	call *apiCall
}

type multiSearchBody struct {
	Searches []MultiSearchQuery `json:"searches"`
}

// Perform runs the given queries. common, when non-nil, supplies query
// parameters applied to every search unless overridden per query.
func (m *MultiSearch) Perform(ctx context.Context, queries []MultiSearchQuery, common *SearchParams) (*MultiSearchResult, error) {
	var params url.Values
	if common != nil {
		params = common.Values()
	}
	raw, err := m.call.post(ctx, multiSearchPath, params, multiSearchBody{Searches: queries})
	if err != nil {
		return nil, err
	}
	var result MultiSearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
