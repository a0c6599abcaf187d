package cli

import (
	"context"
	"fmt"

	"i18n-helper/internal/config"
	"i18n-helper/internal/graph"
	"i18n-helper/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func exportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Push a snapshot of the translation index to an external store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "postgres",
		Short: "Replace the translation_keys table with the current index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportPostgres(cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "neo4j",
		Short: "Sync the key and file graph with the current index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportNeo4j(cfg)
		},
	})

	return cmd
}

// runExportPostgres handles the `export postgres` command.
func runExportPostgres(cfg *config.Config) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}

	pgPool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	snapshots := store.NewSnapshotStore(pgPool)
	if err := snapshots.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := snapshots.Replace(ctx, s.Index().Records()); err != nil {
		return err
	}

	stored, err := snapshots.List(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("keys", len(stored)).Msg("PostgreSQL export complete")
	return nil
}

// runExportNeo4j handles the `export neo4j` command.
func runExportNeo4j(cfg *config.Config) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}

	neo4jDriver, err := connectNeo4j(ctx, cfg)
	if err != nil {
		return err
	}
	defer neo4jDriver.Close(ctx)

	keyGraph := graph.NewKeyGraph(neo4jDriver)
	if err := keyGraph.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	if err := keyGraph.Sync(ctx, s.Index().Records()); err != nil {
		return err
	}

	for _, file := range s.Index().Sources() {
		keys, err := keyGraph.KeysInFile(ctx, file)
		if err != nil {
			return err
		}
		log.Info().Str("file", file).Int("keys", len(keys)).Msg("Exported translation file")
	}
	return nil
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	return pgPool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	neo4jDriver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := neo4jDriver.VerifyConnectivity(ctx); err != nil {
		neo4jDriver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	return neo4jDriver, nil
}
