// Package mdast provides the core Markdown AST representation for mdlint.
// It defines a lossless, immutable view of Markdown files including:
// - FileSnapshot: the complete file representation
// - Token stream: every byte classified
// - AST nodes: structural representation referencing token spans
package mdast

import (
	"github.com/markward/mdlint/pkg/lineindex"
	"github.com/markward/mdlint/pkg/skipregion"
)

// FileSnapshot is an immutable, lossless view of a Markdown file at a specific time.
// It holds the raw content, line metadata, token stream, and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the full token stream covering every byte.
	Tokens []Token

	// Root is the AST root node (Document).
	Root *Node

	// Index supports byte-offset<->line/column and byte<->character
	// conversions in O(log n); built once per snapshot.
	Index *lineindex.Index

	// SkipFlags holds one entry per line describing which skip regions
	// (code blocks, front matter, HTML blocks, flavor-specific extension
	// blocks) it falls within. Populated by the parser after AST mapping so
	// InCodeBlock/InHTMLBlock can be merged in from the real parse tree.
	SkipFlags []skipregion.Flags

	// charFreq is a lazily-built histogram of byte values present in
	// Content, used by Rule.ShouldSkip to cheaply rule out rules whose
	// trigger characters never occur in the document.
	charFreq *[256]int
}

// CharFrequency returns the count of each byte value (0-255) in Content,
// computing it on first use and caching the result.
func (fs *FileSnapshot) CharFrequency() *[256]int {
	if fs.charFreq != nil {
		return fs.charFreq
	}
	var freq [256]int
	for _, b := range fs.Content {
		freq[b]++
	}
	fs.charFreq = &freq
	return fs.charFreq
}

// HasByte reports whether b occurs anywhere in Content, using the cached
// character-frequency table.
func (fs *FileSnapshot) HasByte(b byte) bool {
	return fs.CharFrequency()[b] > 0
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not tokenize or parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Tokens:  nil,
		Root:    nil,
	}
}
