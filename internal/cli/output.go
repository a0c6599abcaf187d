package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"i18n-helper/internal/index"
	"i18n-helper/internal/session"
	"i18n-helper/internal/textutil"
	"i18n-helper/internal/workspace"
)

type recordJSON struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

// writeRecords prints records as "text", "tsv" or "json". Sources are shown
// relative to root.
func writeRecords(w io.Writer, root string, records []index.Record, format string) error {
	switch format {
	case "json":
		out := make([]recordJSON, 0, len(records))
		for _, r := range records {
			out = append(out, recordJSON{Key: r.Key, Value: r.Value, Source: workspace.Relativize(root, r.Source)})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case "tsv":
		fmt.Fprintln(w, "key\tvalue\tsource")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				escapeTSV(r.Key),
				escapeTSV(textutil.Display(r.Value)),
				workspace.Relativize(root, r.Source),
			)
		}
	case "text", "":
		for _, r := range records {
			fmt.Fprintf(w, "%s = %s (%s)\n",
				r.Key,
				textutil.Truncate(textutil.Display(r.Value), 60),
				workspace.Relativize(root, r.Source),
			)
		}
	default:
		return fmt.Errorf("unknown format %q (want text, tsv or json)", format)
	}
	return nil
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

// formatLocation renders a definition as file:line:column, 1-based. When
// the declaration line was not found only the file is printed.
func formatLocation(root string, def session.Definition) string {
	file := workspace.Relativize(root, def.File)
	if !def.Position.Matched {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, def.Position.Line+1, def.Position.Column+1)
}

// formatUsage renders a missing key usage as file:line:column, 1-based.
func formatUsage(root string, u session.Usage) string {
	return fmt.Sprintf("%s:%d:%d: missing translation key %q",
		workspace.Relativize(root, u.File), u.Line, u.Column+1, u.Key)
}

