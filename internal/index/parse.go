package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"i18n-helper/internal/errs"
)

var errNotObject = errors.New("top-level JSON value is not an object")

// parseFile reads a translation file and returns its top-level object.
func parseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.New(errs.FileNotFound, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.New(errs.MalformedTranslationFile, path, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errs.New(errs.MalformedTranslationFile, path, errNotObject)
	}
	return obj, nil
}
