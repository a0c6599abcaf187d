package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"i18n-helper/internal/config"
	"i18n-helper/internal/errs"
	"i18n-helper/internal/session"
	"i18n-helper/internal/textutil"
	"i18n-helper/internal/workspace"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoCall = errors.New("no translation call at offset")

func addCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Add translation files to the workspace config",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(cfg.Workspace)
			if err != nil {
				return fmt.Errorf("resolve workspace root: %w", err)
			}
			// File arguments are relative to the shell, not the workspace.
			paths := make([]string, 0, len(args))
			for _, p := range args {
				abs, err := filepath.Abs(p)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", p, err)
				}
				paths = append(paths, abs)
			}
			wsCfg, err := workspace.AddFiles(root, paths)
			if err != nil {
				return err
			}
			for _, ref := range wsCfg.TranslationFiles {
				fmt.Fprintln(cmd.OutOrStdout(), ref)
			}
			return nil
		},
	}
}

func lookupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <key>",
		Short: "Print the translation of a dotted key and the file it comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			t, ok := s.Index().LookupWithSource(args[0])
			if !ok {
				return errs.ForKey(errs.NotFound, args[0], "")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", textutil.Display(t.Value), workspace.Relativize(s.Root(), t.Source))
			return nil
		},
	}
}

func locateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <key>",
		Short: "Print where a dotted key is declared as file:line:column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			def, err := s.DefinitionOf(args[0])
			if err != nil {
				return err
			}
			printDefinition(cmd, s, def)
			return nil
		},
	}
}

func hoverCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "hover <file> <offset>",
		Short: "Show the translation for the t(\"key\") call at a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, offset, err := readCursor(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			h, ok := s.HoverAt(text, offset)
			if !ok {
				return errNoCall
			}
			fmt.Fprintln(cmd.OutOrStdout(), h.Markdown())
			return nil
		},
	}
}

func definitionCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "definition <file> <offset>",
		Short: "Locate the declaration of the t(\"key\") call at a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, offset, err := readCursor(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			def, ok, err := s.DefinitionAt(text, offset)
			if !ok {
				return errNoCall
			}
			if err != nil {
				return err
			}
			printDefinition(cmd, s, def)
			return nil
		},
	}
}

func listCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every translation key with its value and source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			s, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return writeRecords(cmd.OutOrStdout(), s.Root(), s.Index().Records(), format)
		},
	}

	cmd.Flags().String("format", "text", "Output format: text, tsv or json")

	return cmd
}

func printDefinition(cmd *cobra.Command, s *session.Session, def session.Definition) {
	if !def.Position.Matched {
		log.Warn().Str("key", def.Key).Str("file", def.File).Msg("Declaration line not found")
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatLocation(s.Root(), def))
}

func readCursor(path, offsetArg string) (string, int, error) {
	offset, err := strconv.Atoi(offsetArg)
	if err != nil || offset < 0 {
		return "", 0, fmt.Errorf("invalid offset %q", offsetArg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read source file: %w", err)
	}
	return string(data), offset, nil
}
