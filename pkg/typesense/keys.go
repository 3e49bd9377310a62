package typesense

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

const keysPath = "/keys"

// Keys manages the API keys of the cluster.
type Keys struct {
	call *apiCall
}

// Create creates a new API key. The full key value is only returned here;
// subsequent retrievals expose a prefix.
func (k *Keys) Create(ctx context.Context, schema APIKeySchema) (*APIKey, error) {
	raw, err := k.call.post(ctx, keysPath, nil, schema)
	if err != nil {
		return nil, err
	}
	var key APIKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// Retrieve returns all API keys.
func (k *Keys) Retrieve(ctx context.Context) (*APIKeysResponse, error) {
	raw, err := k.call.get(ctx, keysPath, nil)
	if err != nil {
		return nil, err
	}
	var response APIKeysResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GenerateScopedSearchKey derives a scoped search key from searchKey without
// a server round trip. The embedded parameters are enforced server-side on
// every search made with the derived key. Only a parent key carrying the
// documents:search action is accepted.
func (k *Keys) GenerateScopedSearchKey(searchKey string, params ScopedSearchKeyParams) (string, error) {
	if len(searchKey) < 4 {
		return "", fmt.Errorf("%w: search key is too short", ErrConfig)
	}
	encodedParams, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(searchKey))
	mac.Write(encodedParams)
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	rawScopedKey := digest + searchKey[:4] + string(encodedParams)
	return base64.StdEncoding.EncodeToString([]byte(rawScopedKey)), nil
}

// Key addresses one API key by ID.
type Key struct {
	call *apiCall
	id   int64
}

func (k *Key) endpoint() string {
	return keysPath + "/" + strconv.FormatInt(k.id, 10)
}

// Retrieve fetches the key's metadata.
func (k *Key) Retrieve(ctx context.Context) (*APIKey, error) {
	raw, err := k.call.get(ctx, k.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var key APIKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// Delete revokes the key.
func (k *Key) Delete(ctx context.Context) (*APIKeyDeleteResponse, error) {
	raw, err := k.call.delete(ctx, k.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var response APIKeyDeleteResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
