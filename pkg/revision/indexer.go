package revision

import (
	"context"

	"go.uber.org/zap"
)

// DocumentProvider supplies the documents to index for one index ID.
type DocumentProvider interface {
	Provide(ctx context.Context, indexID IndexID) ([]any, error)
}

// Indexer runs one full reindex: it initializes a new revision, fills it
// from the document provider and commits on success, or reverts when any
// index failed.
type Indexer struct {
	l        *zap.Logger
	manager  *Manager
	provider DocumentProvider
}

func NewIndexer(l *zap.Logger, manager *Manager, provider DocumentProvider) *Indexer {
	return &Indexer{
		l:        l,
		manager:  manager,
		provider: provider,
	}
}

func (i *Indexer) Healthz(ctx context.Context) error {
	return i.manager.Healthz(ctx)
}

func (i *Indexer) Run(ctx context.Context) error {
	// Step 1: Ensure Typesense is initialized
	revisionID, err := i.manager.Initialize(ctx)
	if err != nil || revisionID == "" {
		i.l.Error("Failed to initialize Typesense", zap.Error(err))
		return err
	}

	// Step 2: Retrieve all configured indices
	indices, err := i.manager.Indices()
	if err != nil {
		i.l.Error("Failed to retrieve indices from Typesense", zap.Error(err))
		return err
	}

	// Step 3: Track errors while upserting
	tainted := false
	indexedDocuments := 0

	for _, indexID := range indices {
		documents, err := i.provider.Provide(ctx, indexID)
		if err != nil {
			i.l.Error("Failed to fetch documents", zap.String("index", string(indexID)), zap.Error(err))
			tainted = true
			continue
		}

		err = i.manager.UpsertDocuments(ctx, revisionID, indexID, documents)
		if err != nil {
			i.l.Error(
				"Failed to upsert documents",
				zap.String("index", string(indexID)),
				zap.String("revision", string(revisionID)),
				zap.Int("documents", len(documents)),
				zap.Error(err),
			)
			tainted = true
			continue
		}

		indexedDocuments += len(documents)
		i.l.Info("Successfully upserted documents",
			zap.String("index", string(indexID)),
			zap.Int("count", len(documents)),
		)
	}

	// Step 4: Commit or Revert the Revision
	if !tainted && indexedDocuments > 0 {
		if err := i.manager.CommitRevision(ctx, revisionID); err != nil {
			i.l.Error("Failed to commit revision", zap.String("revision", string(revisionID)), zap.Error(err))
			return err
		}
		i.l.Info("Successfully committed revision", zap.String("revision", string(revisionID)))
	} else {
		i.l.Warn("Errors detected during upsert, reverting revision", zap.String("revision", string(revisionID)))

		if err := i.manager.RevertRevision(ctx, revisionID); err != nil {
			i.l.Error("Failed to revert revision", zap.String("revision", string(revisionID)), zap.Error(err))
			return err
		}
		i.l.Info("Successfully reverted revision", zap.String("revision", string(revisionID)))
	}

	return nil
}
