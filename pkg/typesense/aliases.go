package typesense

import (
	"context"
	"encoding/json"
	"net/url"
)

const aliasesPath = "/aliases"

// Aliases manages collection aliases.
type Aliases struct {
	call *apiCall
}

// Upsert points the alias name at a collection, creating it if necessary.
func (a *Aliases) Upsert(ctx context.Context, name string, schema AliasSchema) (*CollectionAlias, error) {
	raw, err := a.call.put(ctx, aliasesPath+"/"+url.PathEscape(name), nil, schema)
	if err != nil {
		return nil, err
	}
	var alias CollectionAlias
	if err := json.Unmarshal(raw, &alias); err != nil {
		return nil, err
	}
	return &alias, nil
}

// Retrieve returns all aliases.
func (a *Aliases) Retrieve(ctx context.Context) (*CollectionAliasesResponse, error) {
	raw, err := a.call.get(ctx, aliasesPath, nil)
	if err != nil {
		return nil, err
	}
	var response CollectionAliasesResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Alias addresses one alias by name.
type Alias struct {
	call *apiCall
	name string
}

func (a *Alias) endpoint() string {
	return aliasesPath + "/" + url.PathEscape(a.name)
}

// Retrieve fetches the alias and the collection it points at.
func (a *Alias) Retrieve(ctx context.Context) (*CollectionAlias, error) {
	raw, err := a.call.get(ctx, a.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var alias CollectionAlias
	if err := json.Unmarshal(raw, &alias); err != nil {
		return nil, err
	}
	return &alias, nil
}

// Delete removes the alias; the underlying collection is untouched.
func (a *Alias) Delete(ctx context.Context) (*CollectionAlias, error) {
	raw, err := a.call.delete(ctx, a.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var alias CollectionAlias
	if err := json.Unmarshal(raw, &alias); err != nil {
		return nil, err
	}
	return &alias, nil
}
