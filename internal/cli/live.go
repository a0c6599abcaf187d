package cli

import (
	"fmt"

	"i18n-helper/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func checkCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <directory>",
		Short: "Report t(\"key\") calls whose key is missing from the translation files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			s, err := openSession(ctx, cfg)
			if err != nil {
				return err
			}

			usages, err := s.Usages(ctx, args[0], cfg.WorkerCount)
			if err != nil {
				return err
			}

			missing := 0
			for _, u := range usages {
				if u.Found {
					continue
				}
				missing++
				fmt.Fprintln(cmd.OutOrStdout(), formatUsage(s.Root(), u))
			}

			log.Info().
				Int("usages", len(usages)).
				Int("missing", missing).
				Msg("Checked translation key usages")

			if missing > 0 {
				return fmt.Errorf("%d of %d translation key usages are missing", missing, len(usages))
			}
			return nil
		},
	}
}

func watchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Load the workspace and keep the index in step with file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			s, err := openSession(ctx, cfg)
			if err != nil {
				return err
			}
			if err := s.Watch(ctx); err != nil {
				return fmt.Errorf("watch translation files: %w", err)
			}

			log.Info().Int("keys", s.Index().Len()).Msg("Stopped watching")
			return nil
		},
	}
}
