// Package revision implements blue/green index rollouts on top of the
// Typesense client: every reindex run writes into freshly revisioned
// collections and atomically repoints aliases on commit.
package revision

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/foomo/typesense-client/pkg/typesense"
)

type IndexID string
type RevisionID string
type DocumentID string

const revisionTimeLayout = "2006-01-02-15-04-05"

// keep the live revision and the one before it when pruning
const revisionsToKeep = 2

// Manager owns the collections and aliases for a set of indices. Collection
// names are the index ID concatenated with a revision ID timestamp, e.g.
// "products-2026-08-27-10-00-00"; one alias per index ID points at the live
// revision.
type Manager struct {
	l           *zap.Logger
	client      *typesense.Client
	collections map[IndexID]typesense.CollectionSchema

	revisionID RevisionID
	now        func() time.Time
}

func NewManager(
	l *zap.Logger,
	client *typesense.Client,
	collections map[IndexID]typesense.CollectionSchema,
) *Manager {
	return &Manager{
		l:           l,
		client:      client,
		collections: collections,
		now:         time.Now,
	}
}

// Healthz will check if the revisionID is set
func (m *Manager) Healthz(_ context.Context) error {
	if m.revisionID == "" {
		return errors.New("revisionID not set")
	}
	return nil
}

// Indices returns a list of all configured index IDs
func (m *Manager) Indices() ([]IndexID, error) {
	if len(m.collections) == 0 {
		return nil, errors.New("no collections configured")
	}
	indices := make([]IndexID, 0, len(m.collections))
	for index := range m.collections {
		indices = append(indices, index)
	}
	return indices, nil
}

// Initialize ensures that a new collection is created for each configured
// index on every run and that each alias points at an existing collection.
// It sets the generated revision ID internally and returns it; documents are
// then upserted into the new revision and the aliases repointed on commit.
func (m *Manager) Initialize(ctx context.Context) (RevisionID, error) {
	m.l.Info("Initializing Typesense collections and aliases...")

	// Step 1: Check the Typesense connection
	healthy, err := m.client.Operations().IsHealthy(ctx)
	if err != nil {
		m.l.Error("Typesense health check failed", zap.Error(err))
		return "", err
	}
	if !healthy {
		return "", errors.New("typesense is not healthy")
	}

	// Step 2: Retrieve existing aliases and collections
	aliases, err := m.client.Aliases().Retrieve(ctx)
	if err != nil {
		m.l.Error("Failed to retrieve aliases", zap.Error(err))
		return "", err
	}

	existingCollections, err := m.fetchExistingCollections(ctx)
	if err != nil {
		return "", err
	}

	// Step 3: Warn about aliases pointing nowhere
	for _, alias := range aliases.Aliases {
		if !existingCollections[alias.CollectionName] {
			m.l.Warn("Alias points to missing collection, resetting", zap.String("alias", alias.Name))
		}
	}

	// Step 4: Create a new revision for every configured index
	newRevisionID := m.generateRevisionID()
	m.l.Info("Generated new revision", zap.String("revisionID", string(newRevisionID)))

	for indexID, schema := range m.collections {
		collectionName := formatCollectionName(indexID, newRevisionID)

		m.l.Info("Creating new collection",
			zap.String("index", string(indexID)),
			zap.String("collection", collectionName),
		)

		if err := m.createCollectionIfNotExists(ctx, schema, collectionName); err != nil {
			return "", err
		}
		if err := m.ensureAliasMapping(ctx, indexID, existingCollections); err != nil {
			return "", err
		}
	}

	m.revisionID = newRevisionID
	m.l.Info("Initialization completed", zap.String("revisionID", string(m.revisionID)))

	return m.revisionID, nil
}

// UpsertDocuments bulk-upserts documents into the revisioned collection of
// the given index.
func (m *Manager) UpsertDocuments(
	ctx context.Context,
	revisionID RevisionID,
	indexID IndexID,
	documents []any,
) error {
	if len(documents) == 0 {
		m.l.Warn("No documents provided for upsert", zap.String("index", string(indexID)))
		return nil
	}

	collectionName := formatCollectionName(indexID, revisionID)

	results, err := m.client.Collection(collectionName).Documents().Import(ctx, documents, typesense.ImportParams{
		Action: "upsert",
	})
	if err != nil {
		m.l.Error("Failed to bulk upsert documents", zap.String("collection", collectionName), zap.Error(err))
		return err
	}

	successCount, failureCount := 0, 0
	for _, result := range results {
		if result.Success {
			successCount++
		} else {
			failureCount++
			m.l.Warn("Document failed to upsert",
				zap.String("collection", collectionName),
				zap.String("error", result.Error),
			)
		}
	}

	m.l.Info("Bulk upsert completed",
		zap.String("collection", collectionName),
		zap.Int("successful_documents", successCount),
		zap.Int("failed_documents", failureCount),
	)
	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed to upsert into %s", failureCount, len(documents), collectionName)
	}
	return nil
}

// CommitRevision is called once all documents have been upserted. It points
// the aliases at the new revision and removes old collections no longer
// linked to an alias, keeping only the latest revision and the one before.
func (m *Manager) CommitRevision(ctx context.Context, revisionID RevisionID) error {
	for indexID := range m.collections {
		alias := string(indexID)
		newCollectionName := formatCollectionName(indexID, revisionID)

		// Step 1: Update the alias to point to the new collection
		_, err := m.client.Aliases().Upsert(ctx, alias, typesense.AliasSchema{
			CollectionName: newCollectionName,
		})
		if err != nil {
			m.l.Error("Failed to update alias", zap.String("alias", alias), zap.Error(err))
			return err
		}
		m.l.Info("Updated alias", zap.String("alias", alias), zap.String("collection", newCollectionName))

		// Step 2: Clean up old collections (keep only the last two)
		if err := m.pruneOldCollections(ctx, indexID, newCollectionName); err != nil {
			m.l.Error("Failed to clean up old collections", zap.String("alias", alias), zap.Error(err))
		}
	}

	return nil
}

// RevertRevision will remove the collections created for the given revisionID
func (m *Manager) RevertRevision(ctx context.Context, revisionID RevisionID) error {
	for indexID := range m.collections {
		collectionName := formatCollectionName(indexID, revisionID)

		_, err := m.client.Collection(collectionName).Delete(ctx)
		if err != nil {
			m.l.Error("Failed to delete collection", zap.String("collection", collectionName), zap.Error(err))
			return err
		}

		m.l.Info("Reverted and deleted collection", zap.String("collection", collectionName))
	}

	return nil
}

func (m *Manager) fetchExistingCollections(ctx context.Context) (map[string]bool, error) {
	collections, err := m.client.Collections().Retrieve(ctx)
	if err != nil {
		m.l.Error("Failed to retrieve collections", zap.Error(err))
		return nil, err
	}
	existing := make(map[string]bool, len(collections))
	for _, collection := range collections {
		existing[collection.Name] = true
	}
	return existing, nil
}

func (m *Manager) createCollectionIfNotExists(ctx context.Context, schema typesense.CollectionSchema, collectionName string) error {
	schema.Name = collectionName
	_, err := m.client.Collections().Create(ctx, schema)
	if errors.Is(err, typesense.ErrObjectAlreadyExists) {
		return nil
	}
	if err != nil {
		m.l.Error("Failed to create collection", zap.String("collection", collectionName), zap.Error(err))
		return err
	}
	return nil
}

// ensureAliasMapping makes sure an alias exists for the index. A missing or
// dangling alias is pointed at the newest existing revision so that searches
// keep working while the new revision is still being filled.
func (m *Manager) ensureAliasMapping(ctx context.Context, indexID IndexID, existingCollections map[string]bool) error {
	alias, err := m.client.Alias(string(indexID)).Retrieve(ctx)
	if err == nil && existingCollections[alias.CollectionName] {
		return nil
	}
	if err != nil && !errors.Is(err, typesense.ErrObjectNotFound) {
		return err
	}

	latest := latestRevisionCollection(string(indexID), existingCollections)
	if latest == "" {
		// Nothing to point at yet; the commit will create the mapping.
		return nil
	}
	_, err = m.client.Aliases().Upsert(ctx, string(indexID), typesense.AliasSchema{CollectionName: latest})
	return err
}

func (m *Manager) pruneOldCollections(ctx context.Context, indexID IndexID, keepCollectionName string) error {
	existing, err := m.fetchExistingCollections(ctx)
	if err != nil {
		return err
	}

	var revisions []string
	for name := range existing {
		if extractRevisionID(name, string(indexID)) != "" {
			revisions = append(revisions, name)
		}
	}
	// Revision IDs are lexically sortable timestamps.
	sort.Sort(sort.Reverse(sort.StringSlice(revisions)))

	for i, name := range revisions {
		if i < revisionsToKeep || name == keepCollectionName {
			continue
		}
		if _, err := m.client.Collection(name).Delete(ctx); err != nil {
			m.l.Warn("Failed to delete old collection", zap.String("collection", name), zap.Error(err))
			continue
		}
		m.l.Info("Deleted old collection", zap.String("collection", name))
	}
	return nil
}

func (m *Manager) generateRevisionID() RevisionID {
	return RevisionID(m.now().UTC().Format(revisionTimeLayout))
}

func formatCollectionName(indexID IndexID, revisionID RevisionID) string {
	return string(indexID) + "-" + string(revisionID)
}

// extractRevisionID returns the revision suffix of a collection name, or ""
// when the name does not belong to the given index.
func extractRevisionID(collectionName, indexID string) string {
	prefix := indexID + "-"
	if !strings.HasPrefix(collectionName, prefix) {
		return ""
	}
	revision := strings.TrimPrefix(collectionName, prefix)
	if _, err := time.Parse(revisionTimeLayout, revision); err != nil {
		return ""
	}
	return revision
}

func latestRevisionCollection(indexID string, existingCollections map[string]bool) string {
	latest := ""
	for name := range existingCollections {
		if extractRevisionID(name, indexID) == "" {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	return latest
}
