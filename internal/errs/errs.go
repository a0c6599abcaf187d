package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the translation core.
type Kind int

const (
	Unknown Kind = iota
	ConfigMissing
	ConfigInvalid
	ConfigParseError
	FileNotFound
	MalformedTranslationFile
	InvalidSelector
	KeyNotInFile
	NotFound
)

var kindNames = map[Kind]string{
	Unknown:                  "unknown",
	ConfigMissing:            "config missing",
	ConfigInvalid:            "config invalid",
	ConfigParseError:         "config parse error",
	FileNotFound:             "file not found",
	MalformedTranslationFile: "malformed translation file",
	InvalidSelector:          "invalid selector",
	KeyNotInFile:             "key not in file",
	NotFound:                 "not found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the structured failure surfaced to hosts. Path and Key name the
// offending file or translation key when known.
type Error struct {
	Kind Kind
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Key != "" && e.Path != "":
		msg = fmt.Sprintf("%s: key %q in %s", msg, e.Key, e.Path)
	case e.Key != "":
		msg = fmt.Sprintf("%s: key %q", msg, e.Key)
	case e.Path != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match for any *Error of the same kind, so callers can write
// errors.Is(err, &errs.Error{Kind: errs.ConfigMissing}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error for a file.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// ForKey builds an *Error for a translation key, optionally within a file.
func ForKey(kind Kind, key, path string) *Error {
	return &Error{Kind: kind, Key: key, Path: path}
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
