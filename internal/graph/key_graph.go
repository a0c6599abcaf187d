package graph

import (
	"context"
	"fmt"
	"sort"

	"i18n-helper/internal/index"
	"i18n-helper/internal/textutil"
	"i18n-helper/internal/worker"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

const syncBatchSize = 500

// KeyGraph mirrors the index into Neo4j as
// (:TranslationKey {key})-[:DEFINED_IN]->(:TranslationFile {path}).
type KeyGraph struct {
	driver neo4j.DriverWithContext
}

// NewKeyGraph creates a new key graph.
func NewKeyGraph(driver neo4j.DriverWithContext) *KeyGraph {
	return &KeyGraph{driver: driver}
}

// EnsureSchema creates the uniqueness constraints.
func (kg *KeyGraph) EnsureSchema(ctx context.Context) error {
	session := kg.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (k:TranslationKey) REQUIRE k.key IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (f:TranslationFile) REQUIRE f.path IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Sync replaces the DEFINED_IN edges of every file present in records with
// the records themselves, in one write transaction.
func (kg *KeyGraph) Sync(ctx context.Context, records []index.Record) error {
	session := kg.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	rows := toRows(records)
	files := sourceFiles(records)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, `
			MATCH (:TranslationKey)-[r:DEFINED_IN]->(f:TranslationFile)
			WHERE f.path IN $paths
			DELETE r
		`, map[string]any{"paths": files}); err != nil {
			return nil, fmt.Errorf("clear file edges: %w", err)
		}

		for _, chunk := range worker.Batch(rows, syncBatchSize) {
			if _, err := tx.Run(ctx, `
				UNWIND $rows AS row
				MERGE (f:TranslationFile {path: row.source})
				MERGE (k:TranslationKey {key: row.key})
				SET k.value = row.value
				MERGE (k)-[:DEFINED_IN]->(f)
			`, map[string]any{"rows": chunk}); err != nil {
				return nil, fmt.Errorf("merge keys: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("sync key graph: %w", err)
	}

	log.Info().Int("keys", len(rows)).Int("files", len(files)).Msg("Synced key graph")
	return nil
}

// KeysInFile returns the keys linked to a file, sorted.
func (kg *KeyGraph) KeysInFile(ctx context.Context, path string) ([]string, error) {
	session := kg.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (k:TranslationKey)-[:DEFINED_IN]->(:TranslationFile {path: $path})
		RETURN k.key AS key
		ORDER BY key
	`, map[string]any{"path": path})
	if err != nil {
		return nil, fmt.Errorf("query keys in file: %w", err)
	}

	var keys []string
	for result.Next(ctx) {
		key, _ := result.Record().Get("key")
		keys = append(keys, fmt.Sprintf("%v", key))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read keys in file: %w", err)
	}
	return keys, nil
}

func toRows(records []index.Record) []map[string]any {
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]any{
			"key":    r.Key,
			"value":  textutil.Display(r.Value),
			"source": r.Source,
		})
	}
	return rows
}

func sourceFiles(records []index.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Source] = struct{}{}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
