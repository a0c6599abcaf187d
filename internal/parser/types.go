package parser

// KeyUsage is one translation call found in a source file.
type KeyUsage struct {
	// Key is the dotted translation key passed to t().
	Key string
	// File is the source file path.
	File string
	// Line is the 1-based line number in the source file.
	Line int
	// Column is the 0-based byte column of the call.
	Column int
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// Usages are the translation calls in file order.
	Usages []KeyUsage
}

// Parser extracts translation key usages from source files.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts translation calls from a file.
	Parse(filePath string) (*ParseResult, error)
}
