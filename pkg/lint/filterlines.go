package lint

import "github.com/markward/mdlint/pkg/skipregion"

// FilteredLine is one line surviving a LineFilter pass, paired with its
// skip-region flags so a rule can inspect heading/list/blockquote context
// without re-deriving it.
type FilteredLine struct {
	// LineNum is the 1-based line number within the file.
	LineNum int

	// Content is the raw line content (no trailing newline).
	Content string

	// Flags is the skip-region classification for this line.
	Flags skipregion.Flags
}

// LineFilter is a chainable builder describing which skip regions to
// exclude from iteration. The zero value excludes nothing; each Skip*
// method returns the receiver so calls can be chained, matching the style
// rules use to declare which non-content regions they don't want to see.
//
// This is the single supported way for a rule to exclude non-content lines
// from a scan: hand-rolled fence/front-matter checks should be replaced
// with a LineFilter built from the relevant Skip* calls.
type LineFilter struct {
	skipCodeBlocks       bool
	skipFrontMatter      bool
	skipHTMLBlocks       bool
	skipHTMLComments     bool
	skipMathBlocks       bool
	skipBlockquotes      bool
	skipMkdocstrings     bool
	skipAdmonitions      bool
	skipContentTabs      bool
	skipDefinitionLists  bool
	skipPymdownBlocks    bool
	skipKramdownBlocks   bool
	skipQuartoDivs       bool
	skipESM              bool
	skipJSXExpressions   bool
	skipMDXComments      bool
	skipBlankLines       bool
}

// NewLineFilter returns an empty LineFilter.
func NewLineFilter() *LineFilter {
	return &LineFilter{}
}

func (f *LineFilter) SkipCodeBlocks() *LineFilter      { f.skipCodeBlocks = true; return f }
func (f *LineFilter) SkipFrontMatter() *LineFilter     { f.skipFrontMatter = true; return f }
func (f *LineFilter) SkipHTMLBlocks() *LineFilter      { f.skipHTMLBlocks = true; return f }
func (f *LineFilter) SkipHTMLComments() *LineFilter    { f.skipHTMLComments = true; return f }
func (f *LineFilter) SkipMathBlocks() *LineFilter      { f.skipMathBlocks = true; return f }
func (f *LineFilter) SkipBlockquotes() *LineFilter     { f.skipBlockquotes = true; return f }
func (f *LineFilter) SkipMkdocstrings() *LineFilter    { f.skipMkdocstrings = true; return f }
func (f *LineFilter) SkipAdmonitions() *LineFilter     { f.skipAdmonitions = true; return f }
func (f *LineFilter) SkipContentTabs() *LineFilter     { f.skipContentTabs = true; return f }
func (f *LineFilter) SkipDefinitionLists() *LineFilter { f.skipDefinitionLists = true; return f }
func (f *LineFilter) SkipPymdownBlocks() *LineFilter   { f.skipPymdownBlocks = true; return f }
func (f *LineFilter) SkipKramdownBlocks() *LineFilter  { f.skipKramdownBlocks = true; return f }
func (f *LineFilter) SkipQuartoDivs() *LineFilter      { f.skipQuartoDivs = true; return f }
func (f *LineFilter) SkipESM() *LineFilter             { f.skipESM = true; return f }
func (f *LineFilter) SkipJSXExpressions() *LineFilter  { f.skipJSXExpressions = true; return f }
func (f *LineFilter) SkipMDXComments() *LineFilter     { f.skipMDXComments = true; return f }
func (f *LineFilter) SkipBlankLines() *LineFilter      { f.skipBlankLines = true; return f }

// SkipAllExtensionBlocks excludes every flavor-specific extension region in
// one call: MkDocs/PyMdown/Kramdown/Quarto blocks plus MDX's ESM, JSX, and
// comment regions. Rules that only care about plain-prose lines should
// start here rather than enumerating every Skip* call by hand.
func (f *LineFilter) SkipAllExtensionBlocks() *LineFilter {
	return f.SkipMkdocstrings().SkipAdmonitions().SkipContentTabs().
		SkipDefinitionLists().SkipPymdownBlocks().SkipKramdownBlocks().
		SkipQuartoDivs().SkipESM().SkipJSXExpressions().SkipMDXComments()
}

// excludes reports whether the given line's flags match any region this
// filter is configured to skip.
func (f *LineFilter) excludes(fl skipregion.Flags) bool {
	switch {
	case f.skipCodeBlocks && fl.InCodeBlock:
		return true
	case f.skipFrontMatter && fl.InFrontMatter:
		return true
	case f.skipHTMLBlocks && fl.InHTMLBlock:
		return true
	case f.skipHTMLComments && fl.InHTMLComment:
		return true
	case f.skipMathBlocks && fl.InMathBlock:
		return true
	case f.skipBlockquotes && fl.Blockquote != nil:
		return true
	case f.skipMkdocstrings && fl.InMkdocstrings:
		return true
	case f.skipAdmonitions && fl.InAdmonition:
		return true
	case f.skipContentTabs && fl.InContentTab:
		return true
	case f.skipDefinitionLists && fl.InDefinitionList:
		return true
	case f.skipPymdownBlocks && fl.InPymdownBlock:
		return true
	case f.skipKramdownBlocks && fl.InKramdownExtensionBlock:
		return true
	case f.skipQuartoDivs && fl.InQuartoDiv:
		return true
	case f.skipESM && fl.InESMBlock:
		return true
	case f.skipJSXExpressions && fl.InJSXExpression:
		return true
	case f.skipMDXComments && fl.InMDXComment:
		return true
	case f.skipBlankLines && fl.IsBlank:
		return true
	default:
		return false
	}
}

// Iterate returns every line of ctx.File surviving this filter, in document
// order. Rules should range over the result rather than indexing
// ctx.File.SkipFlags directly, so filter semantics stay centralized here.
func (f *LineFilter) Iterate(ctx *RuleContext) []FilteredLine {
	if ctx == nil || ctx.File == nil {
		return nil
	}
	file := ctx.File
	out := make([]FilteredLine, 0, len(file.SkipFlags))
	for i, flags := range file.SkipFlags {
		if f.excludes(flags) {
			continue
		}
		lineNum := i + 1
		out = append(out, FilteredLine{
			LineNum: lineNum,
			Content: string(file.LineContent(lineNum)),
			Flags:   flags,
		})
	}
	return out
}
