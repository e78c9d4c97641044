// Package skipregion implements the skip-region detector: a single
// left-to-right scan over a document that classifies every line with the
// boolean membership flags rules use to avoid processing non-content
// regions (code blocks, front matter, HTML, and flavor-specific fenced
// extensions).
//
// Flavor gates which extended regions are recognized. CommonMark-level
// regions that are already correctly identified by the project's AST
// parser (fenced/indented code blocks, HTML blocks) are left false here and
// are merged in by the caller from the parsed AST; see
// pkg/parser/goldmark's skip-region integration. Detect focuses on the
// regions no general-purpose CommonMark parser understands: front matter,
// math blocks, and the MDX/Quarto/MkDocs/PyMdown/Kramdown extensions.
package skipregion

// Flavor selects which flavor-specific regions Detect recognizes.
type Flavor string

const (
	Standard Flavor = "standard"
	MkDocs   Flavor = "mkdocs"
	MDX      Flavor = "mdx"
	Quarto   Flavor = "quarto"
	Obsidian Flavor = "obsidian"
	Kramdown Flavor = "kramdown"
)

// HeadingInfo describes a heading line.
type HeadingInfo struct {
	Level    int
	Text     string
	CustomID string
}

// BlockquoteInfo describes a blockquote-prefixed line.
type BlockquoteInfo struct {
	Depth   int
	Content string
}

// ListItemInfo describes a list item marker line.
type ListItemInfo struct {
	Marker        string
	IsOrdered     bool
	Number        int
	MarkerColumn  int
	ContentColumn int
}

// Flags holds the per-line membership and structure data produced by
// Detect. Index i corresponds to the 0-indexed line i of the document.
type Flags struct {
	ByteOffset   int
	ByteLen      int
	Indent       int
	VisualIndent int
	IsBlank      bool

	InCodeBlock              bool
	InFrontMatter            bool
	InHTMLBlock              bool
	InHTMLComment            bool
	InMkdocstrings           bool
	InESMBlock               bool
	InMathBlock              bool
	InQuartoDiv              bool
	InJSXExpression          bool
	InMDXComment             bool
	InAdmonition             bool
	InContentTab             bool
	InDefinitionList         bool
	InPymdownBlock           bool
	InKramdownExtensionBlock bool
	IsHorizontalRule         bool
	IsDivMarker              bool

	Heading    *HeadingInfo
	Blockquote *BlockquoteInfo
	ListItem   *ListItemInfo
}

// InAnySkipRegion reports whether the line belongs to any region at all,
// used by should_skip-style fast paths.
func (f *Flags) InAnySkipRegion() bool {
	return f.InCodeBlock || f.InFrontMatter || f.InHTMLBlock || f.InHTMLComment ||
		f.InMkdocstrings || f.InESMBlock || f.InMathBlock || f.InQuartoDiv ||
		f.InJSXExpression || f.InMDXComment || f.InAdmonition || f.InContentTab ||
		f.InDefinitionList || f.InPymdownBlock || f.InKramdownExtensionBlock
}
