package typesense

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// CollectionField describes one field of a collection schema.
type CollectionField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Facet    bool   `json:"facet,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Index    *bool  `json:"index,omitempty"`
	Sort     *bool  `json:"sort,omitempty"`
	Infix    bool   `json:"infix,omitempty"`
	Locale   string `json:"locale,omitempty"`
	NumDim   int    `json:"num_dim,omitempty"`
	Drop     bool   `json:"drop,omitempty"`
}

// CollectionSchema is the request body for creating a collection.
type CollectionSchema struct {
	Name                string            `json:"name"`
	Fields              []CollectionField `json:"fields"`
	DefaultSortingField string            `json:"default_sorting_field,omitempty"`
	TokenSeparators     []string          `json:"token_separators,omitempty"`
	SymbolsToIndex      []string          `json:"symbols_to_index,omitempty"`
	EnableNestedFields  bool              `json:"enable_nested_fields,omitempty"`
}

// CollectionResponse is a collection as returned by the server.
type CollectionResponse struct {
	CollectionSchema
	NumDocuments int64 `json:"num_documents"`
	CreatedAt    int64 `json:"created_at"`
}

// CollectionUpdateSchema is the request body for altering a collection.
// Fields are added, or dropped when Drop is set.
type CollectionUpdateSchema struct {
	Fields []CollectionField `json:"fields"`
}

// SearchParams are the typed query parameters for a document search.
type SearchParams struct {
	Q                   string
	QueryBy             string
	QueryByWeights      string
	FilterBy            string
	SortBy              string
	FacetBy             string
	MaxFacetValues      int
	Page                int
	PerPage             int
	GroupBy             string
	GroupLimit          int
	IncludeFields       string
	ExcludeFields       string
	HighlightFullFields string
	NumTypos            *int
	Prefix              *bool
	Preset              string
}

// Values renders the parameters as a URL query, with booleans normalized to
// their lowercase string form.
func (p SearchParams) Values() url.Values {
	values := url.Values{}
	setString := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	setInt := func(key string, value int) {
		if value != 0 {
			values.Set(key, strconv.Itoa(value))
		}
	}
	setString("q", p.Q)
	setString("query_by", p.QueryBy)
	setString("query_by_weights", p.QueryByWeights)
	setString("filter_by", p.FilterBy)
	setString("sort_by", p.SortBy)
	setString("facet_by", p.FacetBy)
	setInt("max_facet_values", p.MaxFacetValues)
	setInt("page", p.Page)
	setInt("per_page", p.PerPage)
	setString("group_by", p.GroupBy)
	setInt("group_limit", p.GroupLimit)
	setString("include_fields", p.IncludeFields)
	setString("exclude_fields", p.ExcludeFields)
	setString("highlight_full_fields", p.HighlightFullFields)
	if p.NumTypos != nil {
		values.Set("num_typos", strconv.Itoa(*p.NumTypos))
	}
	if p.Prefix != nil {
		values.Set("prefix", strconv.FormatBool(*p.Prefix))
	}
	setString("preset", p.Preset)
	return values
}

// SearchHighlight is a highlighted fragment of a matching document.
type SearchHighlight struct {
	Field         string          `json:"field"`
	Snippet       string          `json:"snippet,omitempty"`
	Value         string          `json:"value,omitempty"`
	MatchedTokens json.RawMessage `json:"matched_tokens,omitempty"`
}

// SearchHit is one matching document together with its match metadata.
type SearchHit struct {
	Document   map[string]any    `json:"document"`
	Highlights []SearchHighlight `json:"highlights,omitempty"`
	TextMatch  int64             `json:"text_match,omitempty"`
}

// SearchResult is the response of a single search.
type SearchResult struct {
	Found        int             `json:"found"`
	OutOf        int             `json:"out_of"`
	Page         int             `json:"page"`
	SearchTimeMs int             `json:"search_time_ms"`
	FacetCounts  json.RawMessage `json:"facet_counts,omitempty"`
	GroupedHits  json.RawMessage `json:"grouped_hits,omitempty"`
	Hits         []SearchHit     `json:"hits"`
}

// MultiSearchQuery is one entry of a multi-search request.
type MultiSearchQuery struct {
	Collection string `json:"collection"`
	Q          string `json:"q,omitempty"`
	QueryBy    string `json:"query_by,omitempty"`
	FilterBy   string `json:"filter_by,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	FacetBy    string `json:"facet_by,omitempty"`
	Page       int    `json:"page,omitempty"`
	PerPage    int    `json:"per_page,omitempty"`
	Preset     string `json:"preset,omitempty"`
}

// MultiSearchResult holds one search result per query, in request order.
type MultiSearchResult struct {
	Results []SearchResult `json:"results"`
}

// DocumentWriteParams control single-document writes.
type DocumentWriteParams struct {
	DirtyValues string
}

func (p DocumentWriteParams) values(action string) url.Values {
	values := url.Values{}
	values.Set("action", action)
	if p.DirtyValues != "" {
		values.Set("dirty_values", p.DirtyValues)
	}
	return values
}

// ImportParams control a bulk document import.
type ImportParams struct {
	Action      string
	BatchSize   int
	DirtyValues string
	ReturnDoc   bool
	ReturnID    bool
}

func (p ImportParams) values() url.Values {
	values := url.Values{}
	if p.Action != "" {
		values.Set("action", p.Action)
	}
	if p.DirtyValues != "" {
		values.Set("dirty_values", p.DirtyValues)
	}
	if p.ReturnDoc {
		values.Set("return_doc", "true")
	}
	if p.ReturnID {
		values.Set("return_id", "true")
	}
	return values
}

// ImportResult is the per-line outcome of a bulk import.
type ImportResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Document string `json:"document,omitempty"`
	ID       string `json:"id,omitempty"`
}

// ExportParams control a JSONL document export.
type ExportParams struct {
	FilterBy      string
	IncludeFields string
	ExcludeFields string
}

func (p ExportParams) values() url.Values {
	values := url.Values{}
	if p.FilterBy != "" {
		values.Set("filter_by", p.FilterBy)
	}
	if p.IncludeFields != "" {
		values.Set("include_fields", p.IncludeFields)
	}
	if p.ExcludeFields != "" {
		values.Set("exclude_fields", p.ExcludeFields)
	}
	return values
}

// DeleteDocumentsParams select the documents removed by a bulk delete.
type DeleteDocumentsParams struct {
	FilterBy  string
	BatchSize int
}

// DeleteDocumentsResponse reports the number of removed documents.
type DeleteDocumentsResponse struct {
	NumDeleted int `json:"num_deleted"`
}

// APIKeySchema is the request body for creating an API key.
type APIKeySchema struct {
	Description string   `json:"description,omitempty"`
	Actions     []string `json:"actions"`
	Collections []string `json:"collections"`
	Value       string   `json:"value,omitempty"`
	ExpiresAt   int64    `json:"expires_at,omitempty"`
}

// APIKey is an API key as returned by the server. Value is only present in
// the create response; listings carry ValuePrefix instead.
type APIKey struct {
	APIKeySchema
	ID          int64  `json:"id"`
	ValuePrefix string `json:"value_prefix,omitempty"`
}

// APIKeysResponse is the listing of all API keys.
type APIKeysResponse struct {
	Keys []APIKey `json:"keys"`
}

// APIKeyDeleteResponse confirms a key deletion.
type APIKeyDeleteResponse struct {
	ID int64 `json:"id"`
}

// ScopedSearchKeyParams are embedded into a generated scoped search key.
// Only keys generated from a parent key with the documents:search action are
// accepted by the server.
type ScopedSearchKeyParams struct {
	FilterBy      string `json:"filter_by,omitempty"`
	QueryBy       string `json:"query_by,omitempty"`
	IncludeFields string `json:"include_fields,omitempty"`
	ExcludeFields string `json:"exclude_fields,omitempty"`
	LimitHits     int    `json:"limit_hits,omitempty"`
	ExpiresAt     int64  `json:"expires_at,omitempty"`
}

// AliasSchema is the request body for upserting a collection alias.
type AliasSchema struct {
	CollectionName string `json:"collection_name"`
}

// CollectionAlias is an alias as returned by the server.
type CollectionAlias struct {
	Name           string `json:"name"`
	CollectionName string `json:"collection_name"`
}

// CollectionAliasesResponse is the listing of all aliases.
type CollectionAliasesResponse struct {
	Aliases []CollectionAlias `json:"aliases"`
}

// SearchOverrideRule decides which queries an override applies to.
type SearchOverrideRule struct {
	Query    string `json:"query,omitempty"`
	Match    string `json:"match,omitempty"`
	FilterBy string `json:"filter_by,omitempty"`
}

// SearchOverrideInclude pins a document to a position.
type SearchOverrideInclude struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// SearchOverrideExclude hides a document from results.
type SearchOverrideExclude struct {
	ID string `json:"id"`
}

// SearchOverrideSchema is the request body for upserting a curation override.
type SearchOverrideSchema struct {
	Rule                SearchOverrideRule      `json:"rule"`
	Includes            []SearchOverrideInclude `json:"includes,omitempty"`
	Excludes            []SearchOverrideExclude `json:"excludes,omitempty"`
	FilterBy            string                  `json:"filter_by,omitempty"`
	SortBy              string                  `json:"sort_by,omitempty"`
	RemoveMatchedTokens bool                    `json:"remove_matched_tokens,omitempty"`
	StopProcessing      bool                    `json:"stop_processing,omitempty"`
}

// SearchOverride is an override as returned by the server.
type SearchOverride struct {
	SearchOverrideSchema
	ID string `json:"id"`
}

// SearchOverridesResponse is the listing of a collection's overrides.
type SearchOverridesResponse struct {
	Overrides []SearchOverride `json:"overrides"`
}

// SearchSynonymSchema is the request body for upserting a synonym.
type SearchSynonymSchema struct {
	Root     string   `json:"root,omitempty"`
	Synonyms []string `json:"synonyms"`
}

// SearchSynonym is a synonym as returned by the server.
type SearchSynonym struct {
	SearchSynonymSchema
	ID string `json:"id"`
}

// SearchSynonymsResponse is the listing of a collection's synonyms.
type SearchSynonymsResponse struct {
	Synonyms []SearchSynonym `json:"synonyms"`
}

// StopwordsSetSchema is the request body for upserting a stopwords set.
type StopwordsSetSchema struct {
	Stopwords []string `json:"stopwords"`
	Locale    string   `json:"locale,omitempty"`
}

// StopwordsSet is a stopwords set as returned by the server.
type StopwordsSet struct {
	StopwordsSetSchema
	ID string `json:"id"`
}

// StopwordsSetResponse wraps a single retrieved stopwords set.
type StopwordsSetResponse struct {
	Stopwords StopwordsSet `json:"stopwords"`
}

// StopwordsSetsResponse is the listing of all stopwords sets.
type StopwordsSetsResponse struct {
	Stopwords []StopwordsSet `json:"stopwords"`
}

// AnalyticsRuleSource names the collections an analytics rule observes.
type AnalyticsRuleSource struct {
	Collections []string `json:"collections"`
}

// AnalyticsRuleDestination names the collection a rule writes into.
type AnalyticsRuleDestination struct {
	Collection string `json:"collection"`
}

// AnalyticsRuleParams configure an analytics rule.
type AnalyticsRuleParams struct {
	Source      AnalyticsRuleSource      `json:"source"`
	Destination AnalyticsRuleDestination `json:"destination"`
	Limit       int                      `json:"limit,omitempty"`
}

// AnalyticsRuleSchema is an analytics rule, both request and response shape.
type AnalyticsRuleSchema struct {
	Name   string              `json:"name"`
	Type   string              `json:"type"`
	Params AnalyticsRuleParams `json:"params"`
}

// AnalyticsRulesResponse is the listing of all analytics rules.
type AnalyticsRulesResponse struct {
	Rules []AnalyticsRuleSchema `json:"rules"`
}

// AnalyticsRuleDeleteResponse confirms a rule deletion.
type AnalyticsRuleDeleteResponse struct {
	Name string `json:"name"`
}

// AnalyticsEvent is a user interaction reported to the analytics endpoint.
type AnalyticsEvent struct {
	Type string         `json:"type"`
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// AnalyticsEventResponse confirms an ingested event.
type AnalyticsEventResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// OperationResponse is the body of cluster operation endpoints.
type OperationResponse struct {
	Success bool `json:"success"`
}

// SnapshotParams configure a snapshot operation.
type SnapshotParams struct {
	SnapshotPath string
}

// SlowRequestLogParams configure the server's slow request log threshold.
// A negative threshold disables the log.
type SlowRequestLogParams struct {
	LogSlowRequestsTimeMs int `json:"log-slow-requests-time-ms"`
}

// DebugResponse is the body of GET /debug.
type DebugResponse struct {
	State   int    `json:"state"`
	Version string `json:"version"`
}

// MetricsResponse is the body of GET /metrics.json; the server reports every
// value as a string.
type MetricsResponse map[string]string

// StatsResponse is the body of GET /stats.json.
type StatsResponse map[string]any
