package parser

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// KeyCallParser extracts t("key") calls from JavaScript-family sources.
type KeyCallParser struct{}

func NewKeyCallParser() *KeyCallParser { return &KeyCallParser{} }

var keyCallExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".vue": true,
}

func (p *KeyCallParser) CanParse(ext string) bool {
	return keyCallExtensions[ext]
}

// keyCallPattern matches a t() call with a single quoted literal argument.
var keyCallPattern = regexp.MustCompile("\\bt\\(['\"`](.+?)['\"`]\\)")

// blockCommentOpen and blockCommentClose delimit /* ... */ comments.
const (
	blockCommentOpen  = "/*"
	blockCommentClose = "*/"
)

func (p *KeyCallParser) Parse(filePath string) (*ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	result := &ParseResult{FilePath: filePath}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	inBlockComment := false

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		codePart, offset := line, 0
		if inBlockComment {
			end := strings.Index(line, blockCommentClose)
			if end < 0 {
				continue
			}
			inBlockComment = false
			offset = end + len(blockCommentClose)
			codePart = line[offset:]
		}

		// Drop a trailing line comment, then a trailing unterminated block comment.
		if idx := lineCommentStart(codePart); idx >= 0 {
			codePart = codePart[:idx]
		}
		if idx := strings.LastIndex(codePart, blockCommentOpen); idx >= 0 && !isInsideString(codePart, idx) &&
			!strings.Contains(codePart[idx:], blockCommentClose) {
			codePart = codePart[:idx]
			inBlockComment = true
		}

		for _, loc := range keyCallPattern.FindAllStringSubmatchIndex(codePart, -1) {
			result.Usages = append(result.Usages, KeyUsage{
				Key:    codePart[loc[2]:loc[3]],
				File:   filePath,
				Line:   lineNum,
				Column: offset + loc[0],
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source file: %w", err)
	}

	return result, nil
}

// lineCommentStart returns the index of the first // outside a string
// literal, or -1.
func lineCommentStart(line string) int {
	from := 0
	for {
		idx := strings.Index(line[from:], "//")
		if idx < 0 {
			return -1
		}
		idx += from
		if !isInsideString(line, idx) {
			return idx
		}
		from = idx + 2
	}
}

// isInsideString checks if position idx is inside a string literal.
func isInsideString(line string, idx int) bool {
	var quote byte
	for i := 0; i < idx; i++ {
		ch := line[i]
		if ch == '\\' {
			i++
			continue
		}
		switch {
		case quote == 0 && (ch == '"' || ch == '\'' || ch == '`'):
			quote = ch
		case ch == quote:
			quote = 0
		}
	}
	return quote != 0
}
