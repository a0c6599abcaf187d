package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"i18n-helper/internal/errs"

	"github.com/rs/zerolog/log"
)

// ConfigFileName is the conventional config file at the workspace root.
const ConfigFileName = "i18n-helper.json"

// DefaultFlag selects the first configured file.
const DefaultFlag = "1"

// DefaultComments documents the config keys inside the file itself.
var DefaultComments = map[string]string{
	"flag":             "Determines which translation file to use. 1 corresponds to the first file in 'translationFiles', 2 to the second, and so on.",
	"translationFiles": "List of translation file paths. Absolute or relative paths are supported.",
}

// Config describes which translation files participate and which one is
// active. Flag is a 1-based index into TranslationFiles; empty means all.
type Config struct {
	Comments         map[string]string `json:"__comments,omitempty"`
	Flag             string            `json:"flag,omitempty"`
	TranslationFiles []string          `json:"translationFiles"`
}

// Selector parses Flag. ok is false when no flag is set. A flag that is set
// but not an integer yields an InvalidSelector error.
func (c *Config) Selector() (n int, ok bool, err error) {
	if c.Flag == "" {
		return 0, false, nil
	}
	n, convErr := strconv.Atoi(c.Flag)
	if convErr != nil {
		return 0, true, &errs.Error{Kind: errs.InvalidSelector, Err: fmt.Errorf("flag %q is not an integer", c.Flag)}
	}
	return n, true, nil
}

// ConfigPath returns the config file location for a workspace root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// Load reads the workspace config fresh from disk.
func Load(root string) (*Config, error) {
	path := ConfigPath(root)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.New(errs.ConfigMissing, path, nil)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.ConfigParseError, path, err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, errs.New(errs.ConfigInvalid, path, errors.New("config must be a JSON object"))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.New(errs.ConfigInvalid, path, err)
	}

	cfg := &Config{}

	files, ok := raw["translationFiles"]
	if !ok || isNull(files) {
		return nil, errs.New(errs.ConfigInvalid, path, errors.New(`"translationFiles" must be an array`))
	}
	if err := json.Unmarshal(files, &cfg.TranslationFiles); err != nil {
		return nil, errs.New(errs.ConfigInvalid, path, errors.New(`"translationFiles" must be an array of strings`))
	}

	if flag, ok := raw["flag"]; ok && !isNull(flag) {
		cfg.Flag, err = decodeFlag(flag)
		if err != nil {
			return nil, errs.New(errs.ConfigInvalid, path, err)
		}
	}

	if comments, ok := raw["__comments"]; ok {
		// Comments are documentation only; a malformed block is ignored.
		if err := json.Unmarshal(comments, &cfg.Comments); err != nil {
			log.Debug().Err(err).Str("file", path).Msg("Ignoring malformed __comments")
			cfg.Comments = nil
		}
	}

	return cfg, nil
}

// Save writes cfg as indented JSON, creating parent directories as needed.
func Save(root string, cfg *Config) error {
	path := ConfigPath(root)

	out := *cfg
	if out.TranslationFiles == nil {
		out.TranslationFiles = []string{}
	}

	data, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// AddFiles merges new file references into the workspace config, creating
// it when missing. Paths are stored relative to root and de-duplicated by
// exact string, keeping first-seen order. A config that exists but cannot be
// read is reported rather than overwritten.
func AddFiles(root string, paths []string) (*Config, error) {
	cfg, err := Load(root)
	switch {
	case errs.IsKind(err, errs.ConfigMissing):
		cfg = &Config{TranslationFiles: []string{}}
	case err != nil:
		return nil, err
	}

	if cfg.Comments == nil {
		cfg.Comments = make(map[string]string, len(DefaultComments))
		for k, v := range DefaultComments {
			cfg.Comments[k] = v
		}
	}
	if cfg.Flag == "" {
		cfg.Flag = DefaultFlag
	}

	seen := make(map[string]struct{}, len(cfg.TranslationFiles)+len(paths))
	merged := make([]string, 0, len(cfg.TranslationFiles)+len(paths))
	add := func(ref string) {
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		merged = append(merged, ref)
	}
	for _, ref := range cfg.TranslationFiles {
		add(ref)
	}
	for _, p := range paths {
		add(Relativize(root, p))
	}
	cfg.TranslationFiles = merged

	if err := Save(root, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("file", ConfigPath(root)).
		Int("files", len(cfg.TranslationFiles)).
		Msg("Updated translation file list")
	return cfg, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeFlag accepts the flag as a JSON string or a JSON integer.
func decodeFlag(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String(), nil
	}
	return "", errors.New(`"flag" must be a string or a number`)
}
