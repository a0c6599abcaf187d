package cursor

import "regexp"

// callPattern matches t("key"), t('key') and t(`key`).
var callPattern = regexp.MustCompile("t\\(['\"`](.+?)['\"`]\\)")

// KeyAtCursor returns the key of the first translation call in text whose
// span contains offset. offset is a byte offset; both span ends count as
// inside, so a cursor right after the closing parenthesis still matches.
func KeyAtCursor(text string, offset int) (string, bool) {
	if offset < 0 || offset > len(text) {
		return "", false
	}
	for _, loc := range callPattern.FindAllStringSubmatchIndex(text, -1) {
		if offset >= loc[0] && offset <= loc[1] {
			return text[loc[2]:loc[3]], true
		}
	}
	return "", false
}
