package locator

import (
	"errors"
	"os"
	"strings"

	"i18n-helper/internal/errs"

	"github.com/tidwall/gjson"
)

// Position is a 0-based line and byte column inside a translation file.
// Matched is false when the key exists in the file but no declaration line
// was found; Line and Column are then zero and carry no meaning.
type Position struct {
	Line    int
	Column  int
	Matched bool
}

// Locator finds where a dotted key is declared in a translation file.
type Locator interface {
	Locate(sourceFile, key string) (Position, error)
}

// LineLocator confirms the key path against the parsed JSON, then scans the
// raw lines for the first one that starts with the quoted last segment.
//
// The scan ignores the parent path: when the same leaf name appears under
// several parents it returns the first textual occurrence, which may belong
// to a different parent than the one addressed.
type LineLocator struct{}

func NewLineLocator() *LineLocator { return &LineLocator{} }

var _ Locator = (*LineLocator)(nil)

var errInvalidJSON = errors.New("invalid JSON")

func (l *LineLocator) Locate(sourceFile, key string) (Position, error) {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return Position{}, errs.New(errs.FileNotFound, sourceFile, err)
	}
	if !gjson.ValidBytes(data) {
		return Position{}, errs.New(errs.MalformedTranslationFile, sourceFile, errInvalidJSON)
	}

	segments := strings.Split(key, ".")
	if !gjson.GetBytes(data, jsonPath(segments)).Exists() {
		return Position{}, errs.ForKey(errs.KeyNotInFile, key, sourceFile)
	}

	needle := `"` + segments[len(segments)-1] + `"`
	for i, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), needle) {
			return Position{Line: i, Column: strings.Index(line, needle), Matched: true}, nil
		}
	}
	return Position{}, nil
}

// jsonPath builds a gjson path that addresses segments literally.
func jsonPath(segments []string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = gjson.Escape(s)
	}
	return strings.Join(escaped, ".")
}
