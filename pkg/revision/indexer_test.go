package revision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticProvider struct {
	documents map[IndexID][]any
	err       error
}

func (p *staticProvider) Provide(_ context.Context, indexID IndexID) ([]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.documents[indexID], nil
}

func TestIndexerRunCommitsOnSuccess(t *testing.T) {
	fake, manager := newRevisionTestSetup(t)

	indexer := NewIndexer(zaptest.NewLogger(t), manager, &staticProvider{
		documents: map[IndexID][]any{
			"books": {
				book{ID: "1", Title: "To Kill a Mockingbird"},
			},
		},
	})

	require.NoError(t, indexer.Run(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "books-2026-08-27-10-00-00", fake.aliases["books"])
	assert.Equal(t, 1, fake.imported["books-2026-08-27-10-00-00"])
}

func TestIndexerRunRevertsOnProviderError(t *testing.T) {
	fake, manager := newRevisionTestSetup(t)

	indexer := NewIndexer(zaptest.NewLogger(t), manager, &staticProvider{
		err: errors.New("upstream gone"),
	})

	require.NoError(t, indexer.Run(context.Background()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.NotContains(t, fake.collections, "books-2026-08-27-10-00-00")
	assert.Empty(t, fake.aliases)
}
